package keeper

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/amm/x/amm/types"
)

// RegisterInvariants registers all AMM invariants
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "pool-reserves", PoolReservesInvariant(k))
	ir.RegisterRoute(types.ModuleName, "pool-counter", PoolCounterInvariant(k))
	ir.RegisterRoute(types.ModuleName, "module-balance", ModuleBalanceInvariant(k))
	ir.RegisterRoute(types.ModuleName, "single-pool", SinglePoolInvariant(k))
}

// AllInvariants runs all invariants of the AMM module
func AllInvariants(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		for _, inv := range []sdk.Invariant{
			PoolReservesInvariant(k),
			PoolCounterInvariant(k),
			ModuleBalanceInvariant(k),
			SinglePoolInvariant(k),
		} {
			if res, stop := inv(ctx); stop {
				return res, stop
			}
		}
		return "", false
	}
}

// PoolReservesInvariant checks every pool has distinct tokens, positive reserves and a valid fee
func PoolReservesInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		err := k.IteratePools(ctx, func(pool types.Pool) bool {
			if err := pool.Validate(); err != nil {
				count++
				msg += fmt.Sprintf("pool %d: %s\n", pool.Id, err)
			}
			return false
		})
		if err != nil {
			count++
			msg += fmt.Sprintf("iterate pools: %s\n", err)
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "pool-reserves",
			fmt.Sprintf("found %d invalid pools\n%s", count, msg),
		), broken
	}
}

// PoolCounterInvariant checks every stored pool id is below the counter
func PoolCounterInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		counter := k.GetPoolCounter(ctx)
		_ = k.IteratePools(ctx, func(pool types.Pool) bool {
			if pool.Id >= counter {
				count++
				msg += fmt.Sprintf("pool %d not below counter %d\n", pool.Id, counter)
			}
			return false
		})

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "pool-counter",
			fmt.Sprintf("found %d pools beyond the counter\n%s", count, msg),
		), broken
	}
}

// ModuleBalanceInvariant checks the custody account holds at least the sum of reserves per token.
// Several pools can share a token, so reserves are summed before comparing.
func ModuleBalanceInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		reserves := make(map[string]math.Uint)
		var order []string
		_ = k.IteratePools(ctx, func(pool types.Pool) bool {
			for i, token := range pool.Tokens {
				sum, ok := reserves[token]
				if !ok {
					sum = math.ZeroUint()
					order = append(order, token)
				}
				reserves[token] = sum.Add(pool.Balances[i])
			}
			return false
		})

		moduleAddr := k.GetModuleAddress()
		for _, token := range order {
			balance := k.tokenKeeper.BalanceOf(ctx, token, moduleAddr)
			if balance.LT(reserves[token]) {
				count++
				msg += fmt.Sprintf("token %s: module balance %s < reserves %s\n", token, balance, reserves[token])
			}
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "module-balance",
			fmt.Sprintf("found %d under-collateralized tokens\n%s", count, msg),
		), broken
	}
}

// SinglePoolInvariant checks the single pool, when created, has positive reserves
func SinglePoolInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		pool, exists, err := k.GetSinglePool(ctx)
		var msg string
		broken := false
		switch {
		case err != nil:
			broken, msg = true, err.Error()
		case exists:
			if verr := pool.Validate(); verr != nil {
				broken, msg = true, verr.Error()
			}
		}
		return sdk.FormatInvariant(types.ModuleName, "single-pool", msg), broken
	}
}
