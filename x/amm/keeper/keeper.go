package keeper

import (
	"context"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"

	"github.com/paw-chain/amm/x/amm/types"
)

// Keeper of the amm store
type Keeper struct {
	storeKey    storetypes.StoreKey
	tokenKeeper types.TokenKeeper
	shareKeeper types.ShareKeeper
	moduleAddr  sdk.AccAddress
	metrics     *AMMMetrics
}

// NewKeeper creates a new amm Keeper instance
func NewKeeper(
	key storetypes.StoreKey,
	tokenKeeper types.TokenKeeper,
	shareKeeper types.ShareKeeper,
) *Keeper {
	return &Keeper{
		storeKey:    key,
		tokenKeeper: tokenKeeper,
		shareKeeper: shareKeeper,
		moduleAddr:  authtypes.NewModuleAddress(types.ModuleName),
		metrics:     NewAMMMetrics(),
	}
}

// getStore returns the KVStore for the amm module
func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return sdkCtx.KVStore(k.storeKey)
}

// GetModuleAddress returns the account that custodies pool reserves.
func (k Keeper) GetModuleAddress() sdk.AccAddress {
	return k.moduleAddr
}

// Logger returns a module-specific logger.
func (k Keeper) Logger(ctx context.Context) log.Logger {
	return sdk.UnwrapSDKContext(ctx).Logger().With("module", "x/"+types.ModuleName)
}
