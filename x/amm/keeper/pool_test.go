package keeper_test

import (
	"math"
	"testing"

	sdkmath "cosmossdk.io/math"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	"github.com/stretchr/testify/require"

	keepertest "github.com/paw-chain/amm/testutil/keeper"
	"github.com/paw-chain/amm/x/amm/types"
)

func TestCreatePool_Valid(t *testing.T) {
	f := keepertest.NewAMMFixture(t)
	creator := keepertest.TestAddr("creator")
	f.Fund(t, creator, "uatom", 400)
	f.Fund(t, creator, "uosmo", 900)

	poolID, shares, err := f.Keeper.CreatePool(f.Ctx, creator, "uatom", sdkmath.NewUint(400), "uosmo", sdkmath.NewUint(900), 30)
	require.NoError(t, err)
	require.Equal(t, uint32(0), poolID)
	require.Equal(t, sdkmath.NewUint(600), shares)

	pool, err := f.Keeper.GetPool(f.Ctx, poolID)
	require.NoError(t, err)
	require.Equal(t, uint32(30), pool.Fee)
	require.Equal(t, sdkmath.NewUint(600), pool.TotalShares)
	require.Equal(t, [2]string{"uatom", "uosmo"}, pool.Tokens)
	require.Equal(t, [2]sdkmath.Uint{sdkmath.NewUint(400), sdkmath.NewUint(900)}, pool.Balances)

	// custody moved into the module account
	require.True(t, f.Tokens.BalanceOf(f.Ctx, "uatom", creator).IsZero())
	require.Equal(t, sdkmath.NewUint(900), f.Tokens.BalanceOf(f.Ctx, "uosmo", f.Keeper.GetModuleAddress()))

	// shares minted to the creator
	require.Equal(t, sdkmath.NewUint(600), f.Tokens.BalanceOf(f.Ctx, types.ShareDenom(poolID), creator))
	require.Equal(t, uint32(1), f.Keeper.GetPoolCounter(f.Ctx))

	events := f.Ctx.EventManager().Events()
	require.NotEmpty(t, events)
	require.Equal(t, types.EventTypePoolCreated, events[len(events)-1].Type)
}

func TestCreatePool_IdsIncrease(t *testing.T) {
	f := keepertest.NewAMMFixture(t)
	creator := keepertest.TestAddr("creator")

	first := f.CreateTestPool(t, creator, "a", 100, "b", 100, 1)
	second := f.CreateTestPool(t, creator, "a", 100, "b", 100, 9999)
	third := f.CreateTestPool(t, creator, "b", 50, "c", 50, 500)

	require.Equal(t, []uint32{0, 1, 2}, []uint32{first, second, third})
	require.Equal(t, uint32(3), f.Keeper.GetPoolCounter(f.Ctx))

	pools, err := f.Keeper.GetAllPools(f.Ctx)
	require.NoError(t, err)
	require.Len(t, pools, 3)
	for i, pool := range pools {
		require.Equal(t, uint32(i), pool.Id)
	}
}

func TestCreatePool_Errors(t *testing.T) {
	creator := keepertest.TestAddr("creator")
	hundred := sdkmath.NewUint(100)
	zero := sdkmath.ZeroUint()

	testCases := []struct {
		name           string
		token0, token1 string
		amount0        sdkmath.Uint
		amount1        sdkmath.Uint
		fee            uint32
		expErr         error
	}{
		{"equal tokens", "a", "a", hundred, hundred, 30, types.ErrEqualTokens},
		{"equal tokens checked before balances", "a", "a", zero, zero, 0, types.ErrEqualTokens},
		{"zero balance 0", "a", "b", zero, hundred, 30, types.ErrNotEnoughBalance},
		{"zero balance 1", "a", "b", hundred, zero, 30, types.ErrNotEnoughBalance},
		{"balances checked before fee", "a", "b", zero, hundred, 0, types.ErrNotEnoughBalance},
		{"zero fee", "a", "b", hundred, hundred, 0, types.ErrWrongFee},
		{"fee at denominator", "a", "b", hundred, hundred, 10000, types.ErrWrongFee},
		{"fee above denominator", "a", "b", hundred, hundred, 20000, types.ErrWrongFee},
		{"no allowance", "a", "b", hundred, hundred, 30, types.ErrPSP22},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := keepertest.NewAMMFixture(t)
			before := f.Snapshot()

			_, _, err := f.Keeper.CreatePool(f.Ctx, creator, tc.token0, tc.amount0, tc.token1, tc.amount1, tc.fee)
			require.ErrorIs(t, err, tc.expErr)
			require.Equal(t, uint32(0), f.Keeper.GetPoolCounter(f.Ctx))
			require.Equal(t, before, f.Snapshot())
		})
	}
}

func TestCreatePool_CustodyFailure(t *testing.T) {
	f := keepertest.NewAMMFixture(t)
	creator := keepertest.TestAddr("creator")
	f.Fund(t, creator, "a", 100)
	f.Fund(t, creator, "b", 100)
	f.Custody.FailTransferFrom["b"] = true

	_, _, err := f.Keeper.CreatePool(f.Ctx, creator, "a", sdkmath.NewUint(100), "b", sdkmath.NewUint(100), 30)
	require.ErrorIs(t, err, types.ErrPSP22)
	require.Contains(t, err.Error(), keepertest.ErrInjected.Error())
}

func TestCreatePool_MintFailure(t *testing.T) {
	f := keepertest.NewAMMFixture(t)
	creator := keepertest.TestAddr("creator")
	f.Fund(t, creator, "a", 100)
	f.Fund(t, creator, "b", 100)
	f.Shares.Fail = true

	_, _, err := f.Keeper.CreatePool(f.Ctx, creator, "a", sdkmath.NewUint(100), "b", sdkmath.NewUint(100), 30)
	require.ErrorIs(t, err, types.ErrPSP22)
}

func TestCreatePool_CounterOverflow(t *testing.T) {
	f := keepertest.NewAMMFixture(t)
	creator := keepertest.TestAddr("creator")
	f.Fund(t, creator, "a", 100)
	f.Fund(t, creator, "b", 100)
	f.Keeper.SetPoolCounter(f.Ctx, math.MaxUint32)

	_, _, err := f.Keeper.CreatePool(f.Ctx, creator, "a", sdkmath.NewUint(100), "b", sdkmath.NewUint(100), 30)
	require.ErrorIs(t, err, types.ErrMath)
}

func TestGetPool_NotFound(t *testing.T) {
	k, ctx := keepertest.AMMKeeper(t)
	_, err := k.GetPool(ctx, 42)
	require.ErrorIs(t, err, types.ErrWrongIndex)
}

func TestGetAllPools_Bounded(t *testing.T) {
	k, ctx := keepertest.AMMKeeper(t)
	for i := uint32(0); i < 120; i++ {
		require.NoError(t, k.SetPool(ctx, types.NewPool(i, "a", sdkmath.OneUint(), "b", sdkmath.OneUint(), 1, sdkmath.OneUint())))
	}
	pools, err := k.GetAllPools(ctx)
	require.NoError(t, err)
	require.Len(t, pools, 100)
}

func TestModuleAddress(t *testing.T) {
	k, _ := keepertest.AMMKeeper(t)
	require.Equal(t, authtypes.NewModuleAddress(types.ModuleName), k.GetModuleAddress())
}
