package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/amm/x/amm/types"
)

// entrypointLock is held for the duration of any AMM entrypoint. Custody
// callbacks that re-enter the module observe it through the branched store.
const entrypointLock = "entrypoint"

// WithReentrancyGuard executes fn while holding the module-wide entrypoint lock.
// Stores the lock in the KVStore so it is visible to nested store branches.
func (k Keeper) WithReentrancyGuard(ctx context.Context, operation string, fn func() error) error {
	if err := k.acquireReentrancyLock(ctx, operation); err != nil {
		k.metrics.ReentrancyBlocked.WithLabelValues(operation).Inc()
		return err
	}
	defer k.releaseReentrancyLock(ctx)

	return fn()
}

// acquireReentrancyLock records operation as the lock holder or fails if one exists.
func (k Keeper) acquireReentrancyLock(ctx context.Context, operation string) error {
	store := k.getStore(ctx)
	key := ReentrancyLockKey(entrypointLock)

	if holder := store.Get(key); holder != nil {
		return types.ErrReentrancy.Wrapf("%s called while %s is in progress", operation, string(holder))
	}

	store.Set(key, []byte(operation))
	return nil
}

// releaseReentrancyLock releases the entrypoint lock
func (k Keeper) releaseReentrancyLock(ctx context.Context) {
	k.getStore(ctx).Delete(ReentrancyLockKey(entrypointLock))
}

// runAtomic executes fn against a branch of the multistore with its own event
// manager. The branch is written and its events forwarded only when fn succeeds.
func runAtomic(ctx context.Context, fn func(ctx sdk.Context) error) error {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	cms := sdkCtx.MultiStore().CacheMultiStore()
	branch := sdkCtx.WithMultiStore(cms).WithEventManager(sdk.NewEventManager())

	if err := fn(branch); err != nil {
		return err
	}

	cms.Write()
	sdkCtx.EventManager().EmitEvents(branch.EventManager().Events())
	return nil
}
