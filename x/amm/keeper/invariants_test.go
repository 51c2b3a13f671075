package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	keepertest "github.com/paw-chain/amm/testutil/keeper"
	"github.com/paw-chain/amm/x/amm/keeper"
)

func TestInvariants_Healthy(t *testing.T) {
	f := setupChain(t)
	trader := keepertest.TestAddr("trader")
	f.Fund(t, trader, "a", 100)
	_, err := f.Keeper.Swap(f.Ctx, trader, "a", "c", math.NewUint(100), math.ZeroUint(), []uint32{0, 1})
	require.NoError(t, err)

	require.NoError(t, f.Keeper.CreateSinglePool(f.Ctx, trader, math.NewUint(10), math.NewUint(10), math.NewUint(1)))

	msg, broken := keeper.AllInvariants(*f.Keeper)(f.Ctx)
	require.False(t, broken, msg)
}

func TestInvariants_Broken(t *testing.T) {
	tests := []struct {
		name   string
		breaks func(t *testing.T, f *keepertest.AMMFixture)
		want   string
	}{
		{
			name: "empty reserve",
			breaks: func(t *testing.T, f *keepertest.AMMFixture) {
				pool, err := f.Keeper.GetPool(f.Ctx, 0)
				require.NoError(t, err)
				pool.Balances[1] = math.ZeroUint()
				require.NoError(t, f.Keeper.SetPool(f.Ctx, pool))
			},
			want: "pool-reserves",
		},
		{
			name: "counter behind stored pools",
			breaks: func(t *testing.T, f *keepertest.AMMFixture) {
				f.Keeper.SetPoolCounter(f.Ctx, 1)
			},
			want: "pool-counter",
		},
		{
			name: "reserves exceed custody",
			breaks: func(t *testing.T, f *keepertest.AMMFixture) {
				pool, err := f.Keeper.GetPool(f.Ctx, 1)
				require.NoError(t, err)
				pool.Balances[0] = pool.Balances[0].Add(math.OneUint())
				require.NoError(t, f.Keeper.SetPool(f.Ctx, pool))
			},
			want: "module-balance",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := setupChain(t)
			tc.breaks(t, f)

			msg, broken := keeper.AllInvariants(*f.Keeper)(f.Ctx)
			require.True(t, broken)
			require.Contains(t, msg, tc.want)
		})
	}
}

func TestSinglePoolInvariant(t *testing.T) {
	f := keepertest.NewAMMFixture(t)
	k := *f.Keeper

	_, broken := keeper.SinglePoolInvariant(k)(f.Ctx)
	require.False(t, broken)

	require.NoError(t, f.Keeper.CreateSinglePool(f.Ctx, keepertest.TestAddr("c"), math.NewUint(10), math.NewUint(10), math.ZeroUint()))
	_, broken = keeper.SinglePoolInvariant(k)(f.Ctx)
	require.False(t, broken)

	pool, _, err := f.Keeper.GetSinglePool(f.Ctx)
	require.NoError(t, err)
	pool.Balances[0] = math.ZeroUint()
	require.NoError(t, f.Keeper.SetSinglePool(f.Ctx, pool))

	_, broken = keeper.SinglePoolInvariant(k)(f.Ctx)
	require.True(t, broken)
}
