package keeper_test

import (
	"math/big"
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/paw-chain/amm/x/amm/keeper"
	"github.com/paw-chain/amm/x/amm/types"
)

func uint128(hi, lo uint64) math.Uint {
	v := new(big.Int).Lsh(new(big.Int).SetUint64(hi), 64)
	return math.NewUintFromBigInt(v.Or(v, new(big.Int).SetUint64(lo)))
}

// FuzzSwapOverflow tests swap calculations with extreme values
func FuzzSwapOverflow(f *testing.F) {
	f.Add(uint64(0), uint64(1000), uint64(0), uint64(1000), uint64(0), uint64(100))
	f.Add(^uint64(0), ^uint64(0), ^uint64(0), ^uint64(0), uint64(0), uint64(1))
	f.Add(uint64(0), uint64(1), uint64(0), uint64(1), ^uint64(0), ^uint64(0))

	f.Fuzz(func(t *testing.T, inHi, inLo, outHi, outLo, amtHi, amtLo uint64) {
		reserveIn := uint128(inHi, inLo)
		reserveOut := uint128(outHi, outLo)
		amountIn := uint128(amtHi, amtLo)
		if reserveIn.IsZero() || reserveOut.IsZero() {
			return
		}

		out, newIn, newOut, err := keeper.CalculateSwapOutput(reserveIn, reserveOut, amountIn)
		if err != nil {
			require.ErrorIs(t, err, types.ErrMath)
			return
		}

		require.True(t, out.LT(reserveOut))
		require.True(t, types.FitsUint128(newIn))
		require.True(t, types.FitsUint128(newOut))
	})
}

// FuzzPoolSharesOverflow tests initial share calculation with extreme values
func FuzzPoolSharesOverflow(f *testing.F) {
	f.Add(uint64(0), uint64(400), uint64(0), uint64(900))
	f.Add(^uint64(0), ^uint64(0), ^uint64(0), ^uint64(0))

	f.Fuzz(func(t *testing.T, aHi, aLo, bHi, bLo uint64) {
		a, b := uint128(aHi, aLo), uint128(bHi, bLo)

		shares, err := keeper.SqrtProduct(a, b)
		require.NoError(t, err)

		// shares^2 <= a*b < (shares+1)^2
		product := new(big.Int).Mul(a.BigInt(), b.BigInt())
		sq := new(big.Int).Mul(shares.BigInt(), shares.BigInt())
		require.True(t, sq.Cmp(product) <= 0)
		next := new(big.Int).Add(shares.BigInt(), big.NewInt(1))
		require.True(t, new(big.Int).Mul(next, next).Cmp(product) > 0)
	})
}
