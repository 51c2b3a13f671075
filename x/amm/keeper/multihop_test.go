package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	keepertest "github.com/paw-chain/amm/testutil/keeper"
	"github.com/paw-chain/amm/x/amm/keeper"
	"github.com/paw-chain/amm/x/amm/types"
)

// setupChain creates pools a/b (id 0) and b/c (id 1), both 1000/1000.
func setupChain(t *testing.T) *keepertest.AMMFixture {
	f := keepertest.NewAMMFixture(t)
	lp := keepertest.TestAddr("lp")
	require.Equal(t, uint32(0), f.CreateTestPool(t, lp, "a", 1000, "b", 1000, 30))
	require.Equal(t, uint32(1), f.CreateTestPool(t, lp, "b", 1000, "c", 1000, 30))
	return f
}

func TestSwap_TwoHops(t *testing.T) {
	f := setupChain(t)
	trader := keepertest.TestAddr("trader")
	f.Fund(t, trader, "a", 100)

	out, err := f.Keeper.Swap(f.Ctx, trader, "a", "c", math.NewUint(100), math.NewUint(82), []uint32{0, 1})
	require.NoError(t, err)
	// 100 a -> 90 b -> floor(1000*90/1090) = 82 c
	require.Equal(t, math.NewUint(82), out)

	pool0, err := f.Keeper.GetPool(f.Ctx, 0)
	require.NoError(t, err)
	require.Equal(t, [2]math.Uint{math.NewUint(1100), math.NewUint(910)}, pool0.Balances)

	pool1, err := f.Keeper.GetPool(f.Ctx, 1)
	require.NoError(t, err)
	require.Equal(t, [2]math.Uint{math.NewUint(1090), math.NewUint(918)}, pool1.Balances)

	require.Equal(t, math.NewUint(82), f.Tokens.BalanceOf(f.Ctx, "c", trader))
	require.True(t, f.Tokens.BalanceOf(f.Ctx, "a", trader).IsZero())
	require.Equal(t, math.NewUint(2000), f.Tokens.BalanceOf(f.Ctx, "b", f.Keeper.GetModuleAddress()))

	events := f.Ctx.EventManager().Events()
	last := events[len(events)-1]
	require.Equal(t, types.EventTypeSwapped, last.Type)
	route, ok := last.GetAttribute(types.AttributeKeyRoute)
	require.True(t, ok)
	require.Equal(t, "0,1", route.Value)
}

func TestSwap_EmptyRoute(t *testing.T) {
	f := setupChain(t)
	trader := keepertest.TestAddr("trader")
	f.Fund(t, trader, "a", 10)

	// nothing to swap through: the input comes straight back
	out, err := f.Keeper.Swap(f.Ctx, trader, "a", "a", math.NewUint(10), math.NewUint(10), nil)
	require.NoError(t, err)
	require.Equal(t, math.NewUint(10), out)
	require.Equal(t, math.NewUint(10), f.Tokens.BalanceOf(f.Ctx, "a", trader))

	f.Fund(t, trader, "a", 10)
	_, err = f.MsgServer.Swap(f.Ctx, types.NewMsgSwap(trader.String(), "a", "b", math.NewUint(10), math.ZeroUint(), nil))
	require.ErrorIs(t, err, types.ErrWrongSwapArgs)
}

func TestSwap_FailuresRollBack(t *testing.T) {
	trader := keepertest.TestAddr("trader")

	tests := []struct {
		name     string
		tokenIn  string
		tokenOut string
		minOut   uint64
		route    []uint32
		wantErr  error
	}{
		{"min amount not reached", "a", "c", 83, []uint32{0, 1}, types.ErrReceivedTooLowAmount},
		{"route ends in another token", "a", "c", 0, []uint32{0}, types.ErrWrongSwapArgs},
		{"slippage checked before token", "a", "c", 91, []uint32{0}, types.ErrReceivedTooLowAmount},
		{"missing pool", "a", "c", 0, []uint32{0, 7}, types.ErrWrongIndex},
		{"token not in pool", "a", "c", 0, []uint32{1}, types.ErrWrongIndex},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := setupChain(t)
			f.Fund(t, trader, tc.tokenIn, 100)
			before := f.Snapshot()
			eventsBefore := len(f.Ctx.EventManager().Events())

			msg := types.NewMsgSwap(trader.String(), tc.tokenIn, tc.tokenOut, math.NewUint(100), math.NewUint(tc.minOut), tc.route)
			_, err := f.MsgServer.Swap(f.Ctx, msg)
			require.ErrorIs(t, err, tc.wantErr)
			require.Equal(t, before, f.Snapshot())
			require.Len(t, f.Ctx.EventManager().Events(), eventsBefore)
		})
	}
}

func TestSwap_SamePoolTwice(t *testing.T) {
	f := setupChain(t)
	trader := keepertest.TestAddr("trader")
	f.Fund(t, trader, "a", 100)

	quote, err := f.Keeper.SimulateSwap(f.Ctx, "a", math.NewUint(100), []uint32{0, 0})
	require.NoError(t, err)

	out, err := f.Keeper.Swap(f.Ctx, trader, "a", "a", math.NewUint(100), math.ZeroUint(), []uint32{0, 0})
	require.NoError(t, err)
	require.Equal(t, quote.AmountOut, out)
	// rounding always favors the pool
	require.True(t, out.LT(math.NewUint(100)))
}

func TestSimulateSwap_NoWrites(t *testing.T) {
	f := setupChain(t)
	before := f.Snapshot()

	quote, err := f.Keeper.SimulateSwap(f.Ctx, "a", math.NewUint(100), []uint32{0, 1})
	require.NoError(t, err)
	require.Equal(t, "c", quote.TokenOut)
	require.Equal(t, math.NewUint(82), quote.AmountOut)
	require.Equal(t, []math.Uint{math.NewUint(100), math.NewUint(90), math.NewUint(82)}, quote.HopAmounts)
	require.Len(t, quote.Pools, 2)
	require.Equal(t, before, f.Snapshot())

	_, err = f.Keeper.SimulateSwap(f.Ctx, "a", math.NewUint(100), []uint32{5})
	require.ErrorIs(t, err, types.ErrWrongIndex)

	_, err = f.Keeper.SimulateSwap(f.Ctx, "c", math.NewUint(100), []uint32{0})
	require.ErrorIs(t, err, types.ErrWrongIndex)
}

func TestFindRoutes(t *testing.T) {
	f := setupChain(t)
	lp := keepertest.TestAddr("lp")
	f.CreateTestPool(t, lp, "a", 1000, "c", 10, 30) // id 2, shallow direct pool

	routes, err := f.Keeper.FindRoutes(f.Ctx, "a", "c", 3)
	require.NoError(t, err)
	require.Equal(t, [][]uint32{{2}, {0, 1}}, routes)

	routes, err = f.Keeper.FindRoutes(f.Ctx, "a", "c", 1)
	require.NoError(t, err)
	require.Equal(t, [][]uint32{{2}}, routes)

	_, err = f.Keeper.FindRoutes(f.Ctx, "a", "a", 3)
	require.ErrorIs(t, err, types.ErrEqualTokens)

	_, err = f.Keeper.FindRoutes(f.Ctx, "a", "z", 3)
	require.ErrorIs(t, err, types.ErrWrongSwapArgs)
}

func TestFindBestRoute(t *testing.T) {
	f := setupChain(t)
	lp := keepertest.TestAddr("lp")
	f.CreateTestPool(t, lp, "a", 1000, "c", 10, 30)

	// the deep two-hop route beats the shallow direct pool
	quote, err := f.Keeper.FindBestRoute(f.Ctx, "a", "c", math.NewUint(100), types.MaxRouteHops)
	require.NoError(t, err)
	require.Equal(t, []uint32{0, 1}, quote.Route)
	require.Equal(t, math.NewUint(82), quote.AmountOut)
}

func TestFormatRoute(t *testing.T) {
	require.Equal(t, "", keeper.FormatRoute(nil))
	require.Equal(t, "3", keeper.FormatRoute([]uint32{3}))
	require.Equal(t, "0,1,2", keeper.FormatRoute([]uint32{0, 1, 2}))
}
