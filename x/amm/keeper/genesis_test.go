package keeper_test

import (
	"encoding/json"
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	keepertest "github.com/paw-chain/amm/testutil/keeper"
	"github.com/paw-chain/amm/x/amm/types"
)

func TestGenesis_Default(t *testing.T) {
	k, ctx := keepertest.AMMKeeper(t)

	got, err := k.ExportGenesis(ctx)
	require.NoError(t, err)
	require.Zero(t, got.PoolCounter)
	require.Empty(t, got.Pools)
	require.Nil(t, got.SinglePool)
	require.Empty(t, got.LedgerEntries)
}

func TestGenesis_RoundTrip(t *testing.T) {
	f := setupChain(t)
	trader := keepertest.TestAddr("trader")
	f.Fund(t, trader, "a", 50)
	_, err := f.Keeper.Swap(f.Ctx, trader, "a", "b", math.NewUint(50), math.ZeroUint(), []uint32{0})
	require.NoError(t, err)
	require.NoError(t, f.Keeper.CreateSinglePool(f.Ctx, trader, math.NewUint(700), math.NewUint(300), math.NewUint(25)))

	exported, err := f.Keeper.ExportGenesis(f.Ctx)
	require.NoError(t, err)
	require.Equal(t, uint32(2), exported.PoolCounter)
	require.Len(t, exported.Pools, 2)
	require.NotNil(t, exported.SinglePool)
	require.Len(t, exported.LedgerEntries, 2)

	bz, err := json.Marshal(exported)
	require.NoError(t, err)
	var decoded types.GenesisState
	require.NoError(t, json.Unmarshal(bz, &decoded))

	fresh := keepertest.NewAMMFixture(t)
	require.NoError(t, fresh.Keeper.InitGenesis(fresh.Ctx, decoded))

	reexported, err := fresh.Keeper.ExportGenesis(fresh.Ctx)
	require.NoError(t, err)
	rebz, err := json.Marshal(reexported)
	require.NoError(t, err)
	require.JSONEq(t, string(bz), string(rebz))

	// imported state is live: the next pool continues the id sequence
	lp := keepertest.TestAddr("lp")
	require.Equal(t, uint32(2), fresh.CreateTestPool(t, lp, "x", 10, "y", 10, 30))
}

func TestGenesis_InitRejectsInvalid(t *testing.T) {
	pool := types.NewPool(0, "a", math.NewUint(10), "b", math.NewUint(10), 30, math.NewUint(10))

	tests := []struct {
		name    string
		genesis types.GenesisState
	}{
		{
			name:    "pool id not below counter",
			genesis: types.GenesisState{PoolCounter: 0, Pools: []types.Pool{pool}},
		},
		{
			name:    "duplicate pool",
			genesis: types.GenesisState{PoolCounter: 1, Pools: []types.Pool{pool, pool}},
		},
		{
			name: "ledger index out of range",
			genesis: types.GenesisState{LedgerEntries: []types.LedgerEntry{
				{Account: keepertest.TestAddr("a").String(), Index: 2, Amount: math.OneUint()},
			}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			k, ctx := keepertest.AMMKeeper(t)
			require.Error(t, k.InitGenesis(ctx, tc.genesis))
		})
	}
}
