package keeper_test

import (
	"context"
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/stretchr/testify/require"

	keepertest "github.com/paw-chain/amm/testutil/keeper"
	"github.com/paw-chain/amm/x/token/keeper"
	"github.com/paw-chain/amm/x/token/types"
)

func TestMint(t *testing.T) {
	k, ctx := keepertest.TokenKeeper(t)
	alice := keepertest.TestAddr("alice")

	require.NoError(t, k.Mint(ctx, "a", alice, math.NewUint(100)))
	require.Equal(t, math.NewUint(100), k.BalanceOf(ctx, "a", alice))
	require.Equal(t, math.NewUint(100), k.TotalSupply(ctx, "a"))

	require.NoError(t, k.Mint(ctx, "a", alice, types.MaxAmount.Sub(math.NewUint(100))))
	require.ErrorIs(t, k.Mint(ctx, "a", alice, math.OneUint()), types.ErrInvalidAmount)
	require.Equal(t, types.MaxAmount, k.TotalSupply(ctx, "a"))

	require.ErrorIs(t, k.Mint(ctx, "", alice, math.OneUint()), types.ErrInvalidDenom)
}

func TestTransfer(t *testing.T) {
	k, ctx := keepertest.TokenKeeper(t)
	alice := keepertest.TestAddr("alice")
	bob := keepertest.TestAddr("bob")
	require.NoError(t, k.Mint(ctx, "a", alice, math.NewUint(100)))

	require.NoError(t, k.Transfer(ctx, "a", alice, bob, math.NewUint(40), nil))
	require.Equal(t, math.NewUint(60), k.BalanceOf(ctx, "a", alice))
	require.Equal(t, math.NewUint(40), k.BalanceOf(ctx, "a", bob))

	err := k.Transfer(ctx, "a", alice, bob, math.NewUint(61), nil)
	require.ErrorIs(t, err, types.ErrInsufficientFunds)

	// self transfers leave the balance untouched
	require.NoError(t, k.Transfer(ctx, "a", alice, alice, math.NewUint(60), nil))
	require.Equal(t, math.NewUint(60), k.BalanceOf(ctx, "a", alice))

	events := ctx.EventManager().Events()
	require.Equal(t, types.EventTypeTransfer, events[len(events)-1].Type)
}

func TestTransferFrom_Allowance(t *testing.T) {
	k, ctx := keepertest.TokenKeeper(t)
	owner := keepertest.TestAddr("owner")
	spender := keepertest.TestAddr("spender")
	dest := keepertest.TestAddr("dest")
	require.NoError(t, k.Mint(ctx, "a", owner, math.NewUint(100)))

	err := k.TransferFrom(ctx, "a", spender, owner, dest, math.NewUint(1), nil)
	require.ErrorIs(t, err, types.ErrInsufficientAllowance)

	require.NoError(t, k.Approve(ctx, "a", owner, spender, math.NewUint(50)))
	require.NoError(t, k.TransferFrom(ctx, "a", spender, owner, dest, math.NewUint(30), nil))
	require.Equal(t, math.NewUint(20), k.Allowance(ctx, "a", owner, spender))
	require.Equal(t, math.NewUint(30), k.BalanceOf(ctx, "a", dest))

	err = k.TransferFrom(ctx, "a", spender, owner, dest, math.NewUint(21), nil)
	require.ErrorIs(t, err, types.ErrInsufficientAllowance)

	// an owner moving its own funds needs no allowance
	require.NoError(t, k.TransferFrom(ctx, "a", owner, owner, dest, math.NewUint(70), nil))
	require.True(t, k.BalanceOf(ctx, "a", owner).IsZero())

	// allowance is per denom
	require.True(t, k.Allowance(ctx, "b", owner, spender).IsZero())
}

func TestApprove_Replaces(t *testing.T) {
	k, ctx := keepertest.TokenKeeper(t)
	owner := keepertest.TestAddr("owner")
	spender := keepertest.TestAddr("spender")

	require.NoError(t, k.Approve(ctx, "a", owner, spender, math.NewUint(50)))
	require.NoError(t, k.Approve(ctx, "a", owner, spender, math.NewUint(5)))
	require.Equal(t, math.NewUint(5), k.Allowance(ctx, "a", owner, spender))

	require.ErrorIs(t, k.Approve(ctx, "a", owner, spender, types.MaxAmount.Add(math.OneUint())), types.ErrInvalidAmount)
}

type recordingHooks struct {
	calls int
	err   error
}

func (h *recordingHooks) AfterTransfer(_ context.Context, _ string, _, _ sdk.AccAddress, _ math.Uint, _ []byte) error {
	h.calls++
	return h.err
}

func TestHooks(t *testing.T) {
	k, ctx := keepertest.TokenKeeper(t)
	alice := keepertest.TestAddr("alice")
	bob := keepertest.TestAddr("bob")
	require.NoError(t, k.Mint(ctx, "a", alice, math.NewUint(10)))

	first, second := &recordingHooks{}, &recordingHooks{}
	k.SetHooks(types.NewMultiTokenHooks(first, second))
	require.Panics(t, func() { k.SetHooks(first) })

	require.NoError(t, k.Transfer(ctx, "a", alice, bob, math.NewUint(1), nil))
	require.Equal(t, 1, first.calls)
	require.Equal(t, 1, second.calls)

	first.err = sdkerrors.ErrUnauthorized
	require.ErrorIs(t, k.Transfer(ctx, "a", alice, bob, math.NewUint(1), nil), sdkerrors.ErrUnauthorized)
	require.Equal(t, 1, second.calls)
}

func TestGenesis_RoundTrip(t *testing.T) {
	k, ctx := keepertest.TokenKeeper(t)
	alice := keepertest.TestAddr("alice")
	bob := keepertest.TestAddr("bob")
	require.NoError(t, k.Mint(ctx, "a", alice, math.NewUint(10)))
	require.NoError(t, k.Mint(ctx, "b", bob, math.NewUint(3)))
	require.NoError(t, k.Approve(ctx, "a", alice, bob, math.NewUint(4)))

	exported, err := k.ExportGenesis(ctx)
	require.NoError(t, err)
	require.Len(t, exported.Balances, 2)
	require.Len(t, exported.Allowances, 1)
	require.Equal(t, "a", exported.Allowances[0].Denom)

	fresh, freshCtx := keepertest.TokenKeeper(t)
	require.NoError(t, fresh.InitGenesis(freshCtx, *exported))
	require.Equal(t, math.NewUint(10), fresh.BalanceOf(freshCtx, "a", alice))
	require.Equal(t, math.NewUint(3), fresh.TotalSupply(freshCtx, "b"))
	require.Equal(t, math.NewUint(4), fresh.Allowance(freshCtx, "a", alice, bob))
}

func TestMsgServer(t *testing.T) {
	k, ctx := keepertest.TokenKeeper(t)
	ms := keeper.NewMsgServerImpl(k)
	alice := keepertest.TestAddr("alice")
	bob := keepertest.TestAddr("bob")

	require.NoError(t, ms.Mint(ctx, &types.MsgMint{Sender: alice.String(), To: alice.String(), Denom: "a", Amount: math.NewUint(5)}))
	require.NoError(t, ms.Transfer(ctx, &types.MsgTransfer{Sender: alice.String(), To: bob.String(), Denom: "a", Amount: math.NewUint(2)}))
	require.NoError(t, ms.Approve(ctx, &types.MsgApprove{Sender: alice.String(), Spender: bob.String(), Denom: "a", Amount: math.NewUint(1)}))
	require.Equal(t, math.NewUint(2), k.BalanceOf(ctx, "a", bob))

	err := ms.Transfer(ctx, &types.MsgTransfer{Sender: "bad", To: bob.String(), Denom: "a", Amount: math.NewUint(1)})
	require.ErrorIs(t, err, sdkerrors.ErrInvalidAddress)
}
