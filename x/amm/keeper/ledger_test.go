package keeper_test

import (
	"fmt"
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	keepertest "github.com/paw-chain/amm/testutil/keeper"
	"github.com/paw-chain/amm/x/amm/types"
)

func TestCreateSinglePool(t *testing.T) {
	f := keepertest.NewAMMFixture(t)
	creator := keepertest.TestAddr("creator")

	require.NoError(t, f.Keeper.CreateSinglePool(f.Ctx, creator, math.NewUint(1000), math.NewUint(1000), math.NewUint(500)))

	pool, exists, err := f.Keeper.GetSinglePool(f.Ctx)
	require.NoError(t, err)
	require.True(t, exists)
	require.Equal(t, [2]math.Uint{math.NewUint(1000), math.NewUint(1000)}, pool.Balances)
	require.Equal(t, math.NewUint(500), f.Keeper.GetLedgerBalance(f.Ctx, creator, 0))
	require.Equal(t, math.NewUint(500), f.Keeper.GetLedgerBalance(f.Ctx, creator, 1))

	err = f.Keeper.CreateSinglePool(f.Ctx, creator, math.NewUint(1), math.NewUint(1), math.NewUint(1))
	require.ErrorIs(t, err, types.ErrPoolAlreadyExists)
}

func TestCreateSinglePool_Invalid(t *testing.T) {
	f := keepertest.NewAMMFixture(t)
	creator := keepertest.TestAddr("creator")

	err := f.Keeper.CreateSinglePool(f.Ctx, creator, math.ZeroUint(), math.NewUint(1000), math.NewUint(1))
	require.ErrorIs(t, err, types.ErrNotEnoughBalance)

	err = f.Keeper.CreateSinglePool(f.Ctx, creator, types.MaxUint128.Add(math.OneUint()), math.NewUint(1000), math.NewUint(1))
	require.ErrorIs(t, err, types.ErrMath)

	_, exists, err := f.Keeper.GetSinglePool(f.Ctx)
	require.NoError(t, err)
	require.False(t, exists)
}

func TestSwapSingle(t *testing.T) {
	f := keepertest.NewAMMFixture(t)
	creator := keepertest.TestAddr("creator")
	require.NoError(t, f.Keeper.CreateSinglePool(f.Ctx, creator, math.NewUint(1000), math.NewUint(1000), math.NewUint(500)))

	out, err := f.Keeper.SwapSingle(f.Ctx, creator, math.NewUint(100), 0)
	require.NoError(t, err)
	require.Equal(t, math.NewUint(90), out)

	require.Equal(t, math.NewUint(400), f.Keeper.GetLedgerBalance(f.Ctx, creator, 0))
	require.Equal(t, math.NewUint(590), f.Keeper.GetLedgerBalance(f.Ctx, creator, 1))

	pool, _, err := f.Keeper.GetSinglePool(f.Ctx)
	require.NoError(t, err)
	require.Equal(t, [2]math.Uint{math.NewUint(1100), math.NewUint(910)}, pool.Balances)

	// and back again from index 1
	out, err = f.Keeper.SwapSingle(f.Ctx, creator, math.NewUint(90), 1)
	require.NoError(t, err)
	require.Equal(t, math.NewUint(99), out)
	require.Equal(t, math.NewUint(499), f.Keeper.GetLedgerBalance(f.Ctx, creator, 0))
	require.Equal(t, math.NewUint(500), f.Keeper.GetLedgerBalance(f.Ctx, creator, 1))

	events := f.Ctx.EventManager().Events()
	require.Equal(t, types.EventTypeSingleSwapped, events[len(events)-1].Type)
}

func TestSwapSingle_Errors(t *testing.T) {
	f := keepertest.NewAMMFixture(t)
	creator := keepertest.TestAddr("creator")
	stranger := keepertest.TestAddr("stranger")

	_, err := f.Keeper.SwapSingle(f.Ctx, creator, math.NewUint(1), 0)
	require.ErrorIs(t, err, types.ErrWrongIndex)

	require.NoError(t, f.Keeper.CreateSinglePool(f.Ctx, creator, math.NewUint(1000), math.NewUint(1000), math.NewUint(500)))
	before := f.Snapshot()

	_, err = f.Keeper.SwapSingle(f.Ctx, creator, math.NewUint(1), 2)
	require.ErrorIs(t, err, types.ErrWrongIndex)

	_, err = f.Keeper.SwapSingle(f.Ctx, creator, math.NewUint(501), 0)
	require.ErrorIs(t, err, types.ErrNotEnoughBalance)

	_, err = f.Keeper.SwapSingle(f.Ctx, stranger, math.NewUint(1), 1)
	require.ErrorIs(t, err, types.ErrNotEnoughBalance)

	_, err = f.Keeper.SwapSingle(f.Ctx, creator, types.MaxUint128.Add(math.OneUint()), 0)
	require.ErrorIs(t, err, types.ErrMath)

	require.Equal(t, before, f.Snapshot())
}

func TestLedgerBalance_Bounds(t *testing.T) {
	f := keepertest.NewAMMFixture(t)
	account := keepertest.TestAddr("account")

	require.True(t, f.Keeper.GetLedgerBalance(f.Ctx, account, 0).IsZero())

	require.NoError(t, f.Keeper.IncreaseBalance(f.Ctx, account, 0, types.MaxUint128))
	require.ErrorIs(t, f.Keeper.IncreaseBalance(f.Ctx, account, 0, math.OneUint()), types.ErrMath)
	require.Equal(t, types.MaxUint128, f.Keeper.GetLedgerBalance(f.Ctx, account, 0))

	require.NoError(t, f.Keeper.DecreaseBalance(f.Ctx, account, 0, types.MaxUint128))
	require.ErrorIs(t, f.Keeper.DecreaseBalance(f.Ctx, account, 0, math.OneUint()), types.ErrNotEnoughBalance)
	require.True(t, f.Keeper.GetLedgerBalance(f.Ctx, account, 0).IsZero())
}

func TestIterateLedger(t *testing.T) {
	f := keepertest.NewAMMFixture(t)
	alice := keepertest.TestAddr("alice")
	bob := keepertest.TestAddr("bob")

	require.NoError(t, f.Keeper.SetLedgerBalance(f.Ctx, alice, 0, math.NewUint(1)))
	require.NoError(t, f.Keeper.SetLedgerBalance(f.Ctx, alice, 1, math.NewUint(2)))
	require.NoError(t, f.Keeper.SetLedgerBalance(f.Ctx, bob, 1, math.NewUint(3)))

	seen := make(map[string]math.Uint)
	require.NoError(t, f.Keeper.IterateLedger(f.Ctx, func(account sdk.AccAddress, index uint32, amount math.Uint) bool {
		seen[fmt.Sprintf("%s/%d", account, index)] = amount
		return false
	}))
	require.Len(t, seen, 3)
	require.Equal(t, math.NewUint(2), seen[fmt.Sprintf("%s/1", alice)])
	require.Equal(t, math.NewUint(3), seen[fmt.Sprintf("%s/1", bob)])
}
