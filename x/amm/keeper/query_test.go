package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/cosmos/cosmos-sdk/types/query"
	"github.com/stretchr/testify/require"

	keepertest "github.com/paw-chain/amm/testutil/keeper"
	"github.com/paw-chain/amm/x/amm/keeper"
	"github.com/paw-chain/amm/x/amm/types"
)

func TestQueryPool(t *testing.T) {
	f := setupChain(t)
	qs := keeper.NewQueryServerImpl(*f.Keeper)

	res, err := qs.Pool(f.Ctx, &types.QueryPoolRequest{PoolId: 1})
	require.NoError(t, err)
	require.Equal(t, [2]string{"b", "c"}, res.Pool.Tokens)

	_, err = qs.Pool(f.Ctx, &types.QueryPoolRequest{PoolId: 9})
	require.ErrorIs(t, err, types.ErrWrongIndex)

	_, err = qs.Pool(f.Ctx, nil)
	require.Error(t, err)
}

func TestQueryPools_Pagination(t *testing.T) {
	f := setupChain(t)
	lp := keepertest.TestAddr("lp")
	f.CreateTestPool(t, lp, "c", 10, "d", 10, 30)
	qs := keeper.NewQueryServerImpl(*f.Keeper)

	res, err := qs.Pools(f.Ctx, &types.QueryPoolsRequest{})
	require.NoError(t, err)
	require.Len(t, res.Pools, 3)
	require.Equal(t, uint32(3), res.PoolCounter)

	page, err := qs.Pools(f.Ctx, &types.QueryPoolsRequest{Pagination: &query.PageRequest{Limit: 2}})
	require.NoError(t, err)
	require.Len(t, page.Pools, 2)
	require.Equal(t, uint32(0), page.Pools[0].Id)
	require.NotEmpty(t, page.Pagination.NextKey)

	next, err := qs.Pools(f.Ctx, &types.QueryPoolsRequest{Pagination: &query.PageRequest{Key: page.Pagination.NextKey, Limit: 2}})
	require.NoError(t, err)
	require.Len(t, next.Pools, 1)
	require.Equal(t, uint32(2), next.Pools[0].Id)
}

func TestQuerySingle(t *testing.T) {
	f := keepertest.NewAMMFixture(t)
	qs := keeper.NewQueryServerImpl(*f.Keeper)
	owner := keepertest.TestAddr("owner")

	_, err := qs.SinglePool(f.Ctx, &types.QuerySinglePoolRequest{})
	require.ErrorIs(t, err, types.ErrWrongIndex)

	require.NoError(t, f.Keeper.CreateSinglePool(f.Ctx, owner, math.NewUint(5), math.NewUint(6), math.NewUint(7)))

	single, err := qs.SinglePool(f.Ctx, &types.QuerySinglePoolRequest{})
	require.NoError(t, err)
	require.Equal(t, math.NewUint(6), single.SinglePool.Balances[1])

	bal, err := qs.LedgerBalance(f.Ctx, &types.QueryLedgerBalanceRequest{Account: owner.String(), Index: 1})
	require.NoError(t, err)
	require.Equal(t, math.NewUint(7), bal.Amount)

	_, err = qs.LedgerBalance(f.Ctx, &types.QueryLedgerBalanceRequest{Account: owner.String(), Index: 2})
	require.ErrorIs(t, err, types.ErrWrongIndex)

	_, err = qs.LedgerBalance(f.Ctx, &types.QueryLedgerBalanceRequest{Account: "bad", Index: 0})
	require.Error(t, err)
}

func TestQueryQuoteAndRoutes(t *testing.T) {
	f := setupChain(t)
	qs := keeper.NewQueryServerImpl(*f.Keeper)
	before := f.Snapshot()

	quote, err := qs.Quote(f.Ctx, &types.QueryQuoteRequest{TokenIn: "a", TokenOut: "c", AmountIn: math.NewUint(100)})
	require.NoError(t, err)
	require.Equal(t, []uint32{0, 1}, quote.Route)
	require.Equal(t, math.NewUint(82), quote.AmountOut)

	quote, err = qs.Quote(f.Ctx, &types.QueryQuoteRequest{TokenIn: "a", AmountIn: math.NewUint(100), Route: []uint32{0}})
	require.NoError(t, err)
	require.Equal(t, "b", quote.TokenOut)
	require.Equal(t, math.NewUint(90), quote.AmountOut)

	_, err = qs.Quote(f.Ctx, &types.QueryQuoteRequest{TokenIn: "a", TokenOut: "c"})
	require.Error(t, err)

	routes, err := qs.Routes(f.Ctx, &types.QueryRoutesRequest{TokenIn: "c", TokenOut: "a"})
	require.NoError(t, err)
	require.Equal(t, [][]uint32{{1, 0}}, routes.Routes)

	require.Equal(t, before, f.Snapshot())
}
