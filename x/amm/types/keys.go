package types

import (
	"fmt"
	"math/big"

	"cosmossdk.io/math"
)

const (
	// ModuleName defines the module name
	ModuleName = "amm"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// RouterKey defines the module's message routing key
	RouterKey = ModuleName

	// FeeDenominator is the basis-point denominator for pool fees.
	FeeDenominator uint32 = 10000

	// MaxRouteHops bounds route discovery. Explicit routes passed to Swap are not bounded.
	MaxRouteHops = 5

	// ShareDenomPrefix prefixes the LP share token minted for every pool.
	ShareDenomPrefix = ModuleName + "/pool/"
)

// MaxUint128 is the largest reserve, share or ledger amount the module accepts (2^128 - 1).
var MaxUint128 = math.NewUintFromBigInt(
	new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1)),
)

// ShareDenom returns the LP share token denom for a pool.
func ShareDenom(poolID uint32) string {
	return fmt.Sprintf("%s%d", ShareDenomPrefix, poolID)
}

// FitsUint128 reports whether amount is representable as an unsigned 128-bit integer.
func FitsUint128(amount math.Uint) bool {
	return !amount.IsNil() && amount.BigInt().BitLen() <= 128
}
