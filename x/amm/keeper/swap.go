package keeper

import (
	"context"

	"cosmossdk.io/math"

	"github.com/paw-chain/amm/x/amm/types"
)

// CalculateSwapOutput prices amountIn against reserves (reserveIn, reserveOut)
// on the constant-product curve and returns the payout with the updated reserves.
//
// The retained output reserve is rounded up, so the payout is
// reserveOut - ceil(reserveIn*reserveOut / (reserveIn+amountIn)), which equals
// floor(reserveOut*amountIn / (reserveIn+amountIn)). Truncation favors the pool
// and keeps reserveIn*reserveOut from decreasing. The fee is not applied.
func CalculateSwapOutput(reserveIn, reserveOut, amountIn math.Uint) (amountOut, newReserveIn, newReserveOut math.Uint, err error) {
	newReserveIn, err = CheckedAdd(reserveIn, amountIn)
	if err != nil {
		return math.Uint{}, math.Uint{}, math.Uint{}, err
	}

	retained, err := MulDivCeil(reserveIn, reserveOut, newReserveIn)
	if err != nil {
		return math.Uint{}, math.Uint{}, math.Uint{}, err
	}

	amountOut = SaturatingSub(reserveOut, retained)
	newReserveOut = SaturatingSub(reserveOut, amountOut)
	return amountOut, newReserveIn, newReserveOut, nil
}

// swapReserves applies one swap to a reserve pair, indexIn selecting the input side.
func swapReserves(balances [2]math.Uint, indexIn uint32, amountIn math.Uint) ([2]math.Uint, math.Uint, error) {
	if indexIn > 1 {
		return balances, math.Uint{}, types.ErrWrongIndex.Wrapf("asset index %d", indexIn)
	}
	indexOut := 1 - indexIn

	amountOut, newIn, newOut, err := CalculateSwapOutput(balances[indexIn], balances[indexOut], amountIn)
	if err != nil {
		return balances, math.Uint{}, err
	}

	balances[indexIn] = newIn
	balances[indexOut] = newOut
	return balances, amountOut, nil
}

// swapInPool swaps amountIn of tokenIn through one pool, persists the pool,
// and returns the output token and amount.
func (k Keeper) swapInPool(ctx context.Context, poolID uint32, tokenIn string, amountIn math.Uint) (string, math.Uint, error) {
	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return "", math.Uint{}, err
	}

	indexIn, ok := pool.IndexOf(tokenIn)
	if !ok {
		return "", math.Uint{}, types.ErrWrongIndex.Wrapf("token %s not in pool %d", tokenIn, poolID)
	}

	balances, amountOut, err := swapReserves(pool.Balances, uint32(indexIn), amountIn)
	if err != nil {
		return "", math.Uint{}, err
	}
	pool.Balances = balances

	if err := k.SetPool(ctx, pool); err != nil {
		return "", math.Uint{}, err
	}
	return pool.Tokens[1-indexIn], amountOut, nil
}
