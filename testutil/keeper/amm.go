package keeper

import (
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/paw-chain/amm/app"
	"github.com/paw-chain/amm/x/amm/keeper"
	"github.com/paw-chain/amm/x/amm/types"
	tokenkeeper "github.com/paw-chain/amm/x/token/keeper"
	tokentypes "github.com/paw-chain/amm/x/token/types"
)

// AMMFixture bundles an AMM keeper with the token ledger it custodies through.
type AMMFixture struct {
	Ctx        sdk.Context
	Keeper     *keeper.Keeper
	MsgServer  types.MsgServer
	Tokens     *tokenkeeper.Keeper
	Custody    *MockCustody
	Shares     *MockShareKeeper
	StateStore storetypes.CommitMultiStore
	AMMKey     *storetypes.KVStoreKey
	TokenKey   *storetypes.KVStoreKey
}

// NewAMMFixture creates an in-memory AMM keeper wired to a real token ledger
// through failure-injecting custody and share mocks.
func NewAMMFixture(t testing.TB) *AMMFixture {
	app.SetConfig("")

	ammKey := storetypes.NewKVStoreKey(types.StoreKey)
	tokenKey := storetypes.NewKVStoreKey(tokentypes.StoreKey)

	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(ammKey, storetypes.StoreTypeIAVL, db)
	stateStore.MountStoreWithDB(tokenKey, storetypes.StoreTypeIAVL, db)
	require.NoError(t, stateStore.LoadLatestVersion())

	tokens := tokenkeeper.NewKeeper(tokenKey)
	custody := NewMockCustody(tokens)
	shares := NewMockShareKeeper(tokens)

	k := keeper.NewKeeper(ammKey, custody, shares)

	ctx := sdk.NewContext(stateStore, cmtproto.Header{}, false, log.NewNopLogger())

	// Initialize module genesis
	require.NoError(t, k.InitGenesis(ctx, *types.DefaultGenesis()))

	return &AMMFixture{
		Ctx:        ctx,
		Keeper:     k,
		MsgServer:  keeper.NewMsgServerImpl(*k),
		Tokens:     tokens,
		Custody:    custody,
		Shares:     shares,
		StateStore: stateStore,
		AMMKey:     ammKey,
		TokenKey:   tokenKey,
	}
}

// AMMKeeper creates a test keeper for the AMM module with mock dependencies
func AMMKeeper(t testing.TB) (keeper.Keeper, sdk.Context) {
	f := NewAMMFixture(t)
	return *f.Keeper, f.Ctx
}

// Fund mints amount of denom to owner and approves the AMM module to spend all of it.
func (f *AMMFixture) Fund(t testing.TB, owner sdk.AccAddress, denom string, amount uint64) {
	require.NoError(t, f.Tokens.Mint(f.Ctx, denom, owner, math.NewUint(amount)))
	allowance := f.Tokens.Allowance(f.Ctx, denom, owner, f.Keeper.GetModuleAddress())
	require.NoError(t, f.Tokens.Approve(f.Ctx, denom, owner, f.Keeper.GetModuleAddress(), allowance.Add(math.NewUint(amount))))
}

// CreateTestPool funds creator and opens a pool, returning its id.
func (f *AMMFixture) CreateTestPool(t testing.TB, creator sdk.AccAddress, token0 string, amount0 uint64, token1 string, amount1 uint64, fee uint32) uint32 {
	f.Fund(t, creator, token0, amount0)
	f.Fund(t, creator, token1, amount1)
	poolID, _, err := f.Keeper.CreatePool(f.Ctx, creator, token0, math.NewUint(amount0), token1, math.NewUint(amount1), fee)
	require.NoError(t, err)
	return poolID
}

// Snapshot returns every key/value pair held by the AMM and token stores.
func (f *AMMFixture) Snapshot() map[string]string {
	snapshot := make(map[string]string)
	for _, key := range []*storetypes.KVStoreKey{f.AMMKey, f.TokenKey} {
		it := f.Ctx.KVStore(key).Iterator(nil, nil)
		for ; it.Valid(); it.Next() {
			snapshot[key.Name()+"/"+string(it.Key())] = string(it.Value())
		}
		it.Close()
	}
	return snapshot
}

// TestAddr returns a deterministic 20-byte account address derived from name.
func TestAddr(name string) sdk.AccAddress {
	bz := make([]byte, 20)
	copy(bz, name)
	return sdk.AccAddress(bz)
}
