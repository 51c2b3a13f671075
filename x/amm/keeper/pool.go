package keeper

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"

	sdkmath "cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/amm/x/amm/types"
)

// MaxIterationLimit is the maximum number of items to return in unbounded queries
const MaxIterationLimit = 100

// GetPoolCounter returns the id the next created pool will receive.
func (k Keeper) GetPoolCounter(ctx context.Context) uint32 {
	bz := k.getStore(ctx).Get(PoolCounterKey)
	if bz == nil {
		return 0
	}
	return binary.BigEndian.Uint32(bz)
}

// SetPoolCounter sets the next pool id counter
func (k Keeper) SetPoolCounter(ctx context.Context, counter uint32) {
	k.getStore(ctx).Set(PoolCounterKey, poolIDBytes(counter))
}

// allocatePoolID returns the current counter and advances it. Ids are never reused.
func (k Keeper) allocatePoolID(ctx context.Context) (uint32, error) {
	poolID := k.GetPoolCounter(ctx)
	if poolID == math.MaxUint32 {
		return 0, types.ErrMath.Wrap("pool counter overflow")
	}
	k.SetPoolCounter(ctx, poolID+1)
	return poolID, nil
}

// CreatePool pulls both initial balances from the creator, mints
// floor(sqrt(amount0*amount1)) shares to them and registers the pool under a
// fresh id. Checks run in order: equal tokens, zero balances, fee range.
func (k Keeper) CreatePool(
	ctx context.Context,
	creator sdk.AccAddress,
	token0 string, amount0 sdkmath.Uint,
	token1 string, amount1 sdkmath.Uint,
	fee uint32,
) (uint32, sdkmath.Uint, error) {
	if token0 == token1 {
		return 0, sdkmath.Uint{}, types.ErrEqualTokens.Wrapf("token %s", token0)
	}
	if amount0.IsZero() || amount1.IsZero() {
		return 0, sdkmath.Uint{}, types.ErrNotEnoughBalance.Wrap("initial balances must be positive")
	}
	if err := types.ValidateFee(fee); err != nil {
		return 0, sdkmath.Uint{}, err
	}
	if !types.FitsUint128(amount0) || !types.FitsUint128(amount1) {
		return 0, sdkmath.Uint{}, types.ErrMath.Wrap("initial balance exceeds 128 bits")
	}

	moduleAddr := k.GetModuleAddress()
	for _, leg := range []struct {
		token  string
		amount sdkmath.Uint
	}{{token0, amount0}, {token1, amount1}} {
		if err := k.tokenKeeper.TransferFrom(ctx, leg.token, moduleAddr, creator, moduleAddr, leg.amount, nil); err != nil {
			return 0, sdkmath.Uint{}, types.ErrPSP22.Wrapf("transfer_from %s %s: %v", leg.amount, leg.token, err)
		}
	}

	shares, err := SqrtProduct(amount0, amount1)
	if err != nil {
		return 0, sdkmath.Uint{}, err
	}

	poolID, err := k.allocatePoolID(ctx)
	if err != nil {
		return 0, sdkmath.Uint{}, err
	}

	if err := k.shareKeeper.MintShares(ctx, poolID, creator, shares); err != nil {
		return 0, sdkmath.Uint{}, types.ErrPSP22.Wrapf("mint shares: %v", err)
	}

	pool := types.NewPool(poolID, token0, amount0, token1, amount1, fee, shares)
	if err := k.SetPool(ctx, pool); err != nil {
		return 0, sdkmath.Uint{}, fmt.Errorf("CreatePool: save pool: %w", err)
	}

	k.metrics.PoolCreationRate.Inc()
	k.metrics.PoolsTotal.Set(float64(poolID + 1))

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypePoolCreated,
			sdk.NewAttribute(types.AttributeKeyPoolID, fmt.Sprintf("%d", poolID)),
			sdk.NewAttribute(types.AttributeKeyCreator, creator.String()),
			sdk.NewAttribute(types.AttributeKeyToken0, token0),
			sdk.NewAttribute(types.AttributeKeyToken1, token1),
			sdk.NewAttribute(types.AttributeKeyAmount0, amount0.String()),
			sdk.NewAttribute(types.AttributeKeyAmount1, amount1.String()),
			sdk.NewAttribute(types.AttributeKeyFee, fmt.Sprintf("%d", fee)),
			sdk.NewAttribute(types.AttributeKeyShares, shares.String()),
		),
	)

	k.Logger(ctx).Debug("pool created", "pool_id", poolID, "token_0", token0, "token_1", token1, "shares", shares.String())

	return poolID, shares, nil
}

// GetPool retrieves a pool by id. A missing pool is ErrWrongIndex.
func (k Keeper) GetPool(ctx context.Context, poolID uint32) (types.Pool, error) {
	bz := k.getStore(ctx).Get(GetPoolKey(poolID))
	if bz == nil {
		return types.Pool{}, types.ErrWrongIndex.Wrapf("pool %d not found", poolID)
	}

	var pool types.Pool
	if err := json.Unmarshal(bz, &pool); err != nil {
		return types.Pool{}, fmt.Errorf("GetPool: unmarshal pool %d: %w", poolID, err)
	}
	return pool, nil
}

// SetPool saves a pool to the store
func (k Keeper) SetPool(ctx context.Context, pool types.Pool) error {
	bz, err := json.Marshal(pool)
	if err != nil {
		return fmt.Errorf("SetPool: marshal pool %d: %w", pool.Id, err)
	}
	k.getStore(ctx).Set(GetPoolKey(pool.Id), bz)
	return nil
}

// IteratePools iterates over all pools in id order
func (k Keeper) IteratePools(ctx context.Context, cb func(pool types.Pool) (stop bool)) error {
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), PoolKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var pool types.Pool
		if err := json.Unmarshal(iterator.Value(), &pool); err != nil {
			return fmt.Errorf("IteratePools: unmarshal pool: %w", err)
		}
		if cb(pool) {
			break
		}
	}
	return nil
}

// GetAllPools returns pools with a maximum limit to prevent DoS
func (k Keeper) GetAllPools(ctx context.Context) ([]types.Pool, error) {
	pools := make([]types.Pool, 0, MaxIterationLimit)
	err := k.IteratePools(ctx, func(pool types.Pool) bool {
		if len(pools) >= MaxIterationLimit {
			return true
		}
		pools = append(pools, pool)
		return false
	})
	return pools, err
}
