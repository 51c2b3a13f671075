package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/paw-chain/amm/app/telemetry"
	ammkeeper "github.com/paw-chain/amm/x/amm/keeper"
	ammtypes "github.com/paw-chain/amm/x/amm/types"
	tokenkeeper "github.com/paw-chain/amm/x/token/keeper"
	tokentypes "github.com/paw-chain/amm/x/token/types"
)

// DefaultNodeHome is the default home directory for the daemon
var DefaultNodeHome string

// GenesisHeightKey is written to every module store by InitChain. IAVL
// commits an empty tree as an empty root value, which goleveldb reads back
// as absent, so no store may be left empty at a committed version.
var GenesisHeightKey = []byte{0x00}

func init() {
	userHomeDir, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}

	DefaultNodeHome = filepath.Join(userHomeDir, ".ammd")
}

// App hosts the AMM and token modules over a committed multistore. Every
// call runs against a branch that is written and committed only on success.
type App struct {
	mu     sync.Mutex
	logger log.Logger
	db     dbm.DB
	cms    storetypes.CommitMultiStore

	telemetry  *telemetry.Provider
	invariants *invariantRegistry

	// keys to access the substores
	keys map[string]*storetypes.KVStoreKey

	// keepers
	TokenKeeper *tokenkeeper.Keeper
	AmmKeeper   *ammkeeper.Keeper

	ammMsgServer   ammtypes.MsgServer
	ammQueryServer ammtypes.QueryServer
	tokenMsgServer tokenkeeper.MsgServer
}

// New returns an App with its stores loaded from db at the latest version.
func New(logger log.Logger, db dbm.DB) (*App, error) {
	keys := storetypes.NewKVStoreKeys(ammtypes.StoreKey, tokentypes.StoreKey)

	cms := store.NewCommitMultiStore(db, logger, metrics.NewNoOpMetrics())
	for _, key := range keys {
		cms.MountStoreWithDB(key, storetypes.StoreTypeIAVL, nil)
	}
	if err := cms.LoadLatestVersion(); err != nil {
		return nil, fmt.Errorf("load latest version: %w", err)
	}

	app := &App{
		logger: logger,
		db:     db,
		cms:    cms,
		keys:   keys,
	}

	app.TokenKeeper = tokenkeeper.NewKeeper(keys[tokentypes.StoreKey])
	app.AmmKeeper = ammkeeper.NewKeeper(
		keys[ammtypes.StoreKey],
		app.TokenKeeper,
		NewShareKeeper(app.TokenKeeper),
	)

	app.TokenKeeper.SetHooks(tokentypes.NewMultiTokenHooks(app.AmmKeeper.Hooks()))

	app.invariants = &invariantRegistry{}
	ammkeeper.RegisterInvariants(app.invariants, *app.AmmKeeper)

	app.ammMsgServer = ammkeeper.NewMsgServerImpl(*app.AmmKeeper)
	app.ammQueryServer = ammkeeper.NewQueryServerImpl(*app.AmmKeeper)
	app.tokenMsgServer = tokenkeeper.NewMsgServerImpl(app.TokenKeeper)

	return app, nil
}

// Logger returns the application logger
func (app *App) Logger() log.Logger { return app.logger }

// SetTelemetry attaches tracing and metrics to message delivery
func (app *App) SetTelemetry(provider *telemetry.Provider) {
	app.mu.Lock()
	defer app.mu.Unlock()
	app.telemetry = provider
}

// Height returns the last committed version
func (app *App) Height() int64 {
	return app.cms.LastCommitID().Version
}

// GetKey returns the KVStoreKey for the provided store key.
func (app *App) GetKey(storeKey string) *storetypes.KVStoreKey {
	return app.keys[storeKey]
}

// MsgServer returns the AMM transaction handler
func (app *App) MsgServer() ammtypes.MsgServer { return app.ammMsgServer }

// QueryServer returns the AMM query handler
func (app *App) QueryServer() ammtypes.QueryServer { return app.ammQueryServer }

// newContext builds a context over ms for the next height.
func (app *App) newContext(ms storetypes.MultiStore) sdk.Context {
	header := cmtproto.Header{
		ChainID: Name,
		Height:  app.Height() + 1,
		Time:    time.Now().UTC(),
	}
	return sdk.NewContext(ms, header, false, app.logger)
}

// Execute runs fn against a branch of the latest state. On success the branch
// is written and committed as a new version; on failure nothing is kept.
func (app *App) Execute(fn func(ctx sdk.Context) error) (sdk.Events, error) {
	app.mu.Lock()
	defer app.mu.Unlock()

	branch := app.cms.CacheMultiStore()
	ctx := app.newContext(branch)
	if err := fn(ctx); err != nil {
		return nil, err
	}

	branch.Write()
	commitID := app.cms.Commit()
	app.logger.Debug("committed", "height", commitID.Version, "hash", fmt.Sprintf("%X", commitID.Hash))
	return ctx.EventManager().Events(), nil
}

// Query runs fn against a throwaway branch of the latest state.
func (app *App) Query(fn func(ctx sdk.Context) error) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	return fn(app.newContext(app.cms.CacheMultiStore()))
}

// InitChain loads genesis into a fresh store. It fails once any version is committed.
func (app *App) InitChain(genesis GenesisState) error {
	if app.Height() > 0 {
		return fmt.Errorf("InitChain: state already initialized at height %d", app.Height())
	}
	if err := genesis.Validate(); err != nil {
		return fmt.Errorf("InitChain: %w", err)
	}
	ammGenesis, tokenGenesis, err := genesis.ModuleStates()
	if err != nil {
		return err
	}

	_, err = app.Execute(func(ctx sdk.Context) error {
		for _, key := range app.keys {
			ctx.KVStore(key).Set(GenesisHeightKey, sdk.Uint64ToBigEndian(uint64(ctx.BlockHeight())))
		}
		if err := app.TokenKeeper.InitGenesis(ctx, *tokenGenesis); err != nil {
			return err
		}
		return app.AmmKeeper.InitGenesis(ctx, *ammGenesis)
	})
	return err
}

// ExportGenesis returns the current state as a genesis document.
func (app *App) ExportGenesis() (GenesisState, error) {
	genesis := make(GenesisState)
	err := app.Query(func(ctx sdk.Context) error {
		amm, err := app.AmmKeeper.ExportGenesis(ctx)
		if err != nil {
			return err
		}
		token, err := app.TokenKeeper.ExportGenesis(ctx)
		if err != nil {
			return err
		}
		genesis[ammtypes.ModuleName] = mustMarshalJSON(amm)
		genesis[tokentypes.ModuleName] = mustMarshalJSON(token)
		return nil
	})
	return genesis, err
}

// DeliverMsg routes a message to its handler inside Execute and returns the handler's response.
func (app *App) DeliverMsg(msg interface{}) (interface{}, sdk.Events, error) {
	var res interface{}
	events, err := app.Execute(func(ctx sdk.Context) error {
		spanCtx, finish := app.telemetry.StartMessage(ctx.Context(), fmt.Sprintf("%T", msg), ctx.BlockHeight())
		var err error
		res, err = app.route(ctx.WithContext(spanCtx), msg)
		finish(err)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return res, events, nil
}

func (app *App) route(ctx context.Context, msg interface{}) (interface{}, error) {
	switch m := msg.(type) {
	case *ammtypes.MsgCreateSinglePool:
		return app.ammMsgServer.CreateSinglePool(ctx, m)
	case *ammtypes.MsgSwapSingle:
		return app.ammMsgServer.SwapSingle(ctx, m)
	case *ammtypes.MsgCreatePool:
		return app.ammMsgServer.CreatePool(ctx, m)
	case *ammtypes.MsgAddLiquidity:
		return app.ammMsgServer.AddLiquidity(ctx, m)
	case *ammtypes.MsgSwap:
		return app.ammMsgServer.Swap(ctx, m)
	case *tokentypes.MsgMint:
		return struct{}{}, app.tokenMsgServer.Mint(ctx, m)
	case *tokentypes.MsgTransfer:
		return struct{}{}, app.tokenMsgServer.Transfer(ctx, m)
	case *tokentypes.MsgApprove:
		return struct{}{}, app.tokenMsgServer.Approve(ctx, m)
	default:
		return nil, sdkerrors.ErrUnknownRequest.Wrapf("unrecognized message type %T", msg)
	}
}

// ModuleAddress returns the AMM custody account that must be approved before depositing.
func (app *App) ModuleAddress() sdk.AccAddress {
	return app.AmmKeeper.GetModuleAddress()
}

// Close releases the database
func (app *App) Close() error {
	return app.db.Close()
}

// ShareKeeper mints pool shares as token-module balances of denom amm/pool/<id>.
type ShareKeeper struct {
	tokens *tokenkeeper.Keeper
}

// NewShareKeeper returns a ShareKeeper over the token ledger
func NewShareKeeper(tokens *tokenkeeper.Keeper) ShareKeeper {
	return ShareKeeper{tokens: tokens}
}

// MintShares implements ammtypes.ShareKeeper
func (s ShareKeeper) MintShares(ctx context.Context, poolID uint32, to sdk.AccAddress, amount math.Uint) error {
	return s.tokens.Mint(ctx, ammtypes.ShareDenom(poolID), to, amount)
}

var _ ammtypes.ShareKeeper = ShareKeeper{}
