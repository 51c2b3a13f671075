package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/amm/x/amm/types"
)

// AddLiquidity deposits amount0 and amount1 into an existing pool and mints
// min(floor(amount_i * total_shares / reserve_i)) shares to the provider.
// The minted shares are added to total_shares and the pool is written back.
func (k Keeper) AddLiquidity(ctx context.Context, provider sdk.AccAddress, poolID uint32, amount0, amount1 math.Uint) (math.Uint, error) {
	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return math.Uint{}, err
	}
	if amount0.IsZero() || amount1.IsZero() {
		return math.Uint{}, types.ErrNotEnoughBalance.Wrap("deposit amounts must be positive")
	}
	if !types.FitsUint128(amount0) || !types.FitsUint128(amount1) {
		return math.Uint{}, types.ErrMath.Wrap("deposit exceeds 128 bits")
	}

	moduleAddr := k.GetModuleAddress()
	var shares math.Uint
	for i, deposit := range [2]math.Uint{amount0, amount1} {
		if err := k.tokenKeeper.TransferFrom(ctx, pool.Tokens[i], moduleAddr, provider, moduleAddr, deposit, nil); err != nil {
			return math.Uint{}, types.ErrPSP22.Wrapf("transfer_from %s %s: %v", deposit, pool.Tokens[i], err)
		}

		maybeShares, err := MulDiv(deposit, pool.TotalShares, pool.Balances[i])
		if err != nil {
			return math.Uint{}, err
		}
		pool.Balances[i], err = CheckedAdd(pool.Balances[i], deposit)
		if err != nil {
			return math.Uint{}, err
		}

		if i == 0 || maybeShares.LT(shares) {
			shares = maybeShares
		}
	}

	pool.TotalShares, err = CheckedAdd(pool.TotalShares, shares)
	if err != nil {
		return math.Uint{}, err
	}
	if err := k.SetPool(ctx, pool); err != nil {
		return math.Uint{}, fmt.Errorf("AddLiquidity: save pool: %w", err)
	}

	if err := k.shareKeeper.MintShares(ctx, poolID, provider, shares); err != nil {
		return math.Uint{}, types.ErrPSP22.Wrapf("mint shares: %v", err)
	}

	poolLabel := fmt.Sprintf("%d", poolID)
	k.metrics.LiquidityAdded.WithLabelValues(poolLabel, pool.Tokens[0]).Add(bigFloat(amount0))
	k.metrics.LiquidityAdded.WithLabelValues(poolLabel, pool.Tokens[1]).Add(bigFloat(amount1))
	k.metrics.SharesMinted.WithLabelValues(poolLabel).Add(bigFloat(shares))

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeLiquidityAdded,
			sdk.NewAttribute(types.AttributeKeyPoolID, poolLabel),
			sdk.NewAttribute(types.AttributeKeyProvider, provider.String()),
			sdk.NewAttribute(types.AttributeKeyAmount0, amount0.String()),
			sdk.NewAttribute(types.AttributeKeyAmount1, amount1.String()),
			sdk.NewAttribute(types.AttributeKeyShares, shares.String()),
		),
	)

	return shares, nil
}
