package keeper

import (
	"cosmossdk.io/math"
	"github.com/holiman/uint256"

	"github.com/paw-chain/amm/x/amm/types"
)

// Amounts are 128-bit bounded. Intermediates are computed at 256 bits so
// that a product of two amounts never wraps; results are narrowed back and
// anything that does not fit 128 bits is ErrMath.

func wide(a math.Uint) *uint256.Int {
	v, overflow := uint256.FromBig(a.BigInt())
	if overflow {
		// math.Uint is itself capped at 256 bits
		panic("amount exceeds 256 bits")
	}
	return v
}

func narrow(x *uint256.Int) (math.Uint, error) {
	if x.BitLen() > 128 {
		return math.Uint{}, types.ErrMath.Wrap("result exceeds 128 bits")
	}
	return math.NewUintFromBigInt(x.ToBig()), nil
}

// CastedMul multiplies two amounts into a 256-bit intermediate. It cannot overflow.
func CastedMul(a, b math.Uint) *uint256.Int {
	return new(uint256.Int).Mul(wide(a), wide(b))
}

// CheckedAdd adds two amounts and fails when the sum leaves the 128-bit range.
func CheckedAdd(a, b math.Uint) (math.Uint, error) {
	return narrow(new(uint256.Int).Add(wide(a), wide(b)))
}

// CheckedSub subtracts b from a and fails on underflow.
func CheckedSub(a, b math.Uint) (math.Uint, error) {
	if a.LT(b) {
		return math.Uint{}, types.ErrMath.Wrapf("underflow: %s - %s", a, b)
	}
	return a.Sub(b), nil
}

// SaturatingSub returns a-b, or zero when b > a.
func SaturatingSub(a, b math.Uint) math.Uint {
	if a.LT(b) {
		return math.ZeroUint()
	}
	return a.Sub(b)
}

// MulDiv returns floor(a*b/c).
func MulDiv(a, b, c math.Uint) (math.Uint, error) {
	if c.IsZero() {
		return math.Uint{}, types.ErrMath.Wrap("division by zero")
	}
	return narrow(new(uint256.Int).Div(CastedMul(a, b), wide(c)))
}

// MulDivCeil returns ceil(a*b/c).
func MulDivCeil(a, b, c math.Uint) (math.Uint, error) {
	if c.IsZero() {
		return math.Uint{}, types.ErrMath.Wrap("division by zero")
	}
	q, r := new(uint256.Int).DivMod(CastedMul(a, b), wide(c), new(uint256.Int))
	if !r.IsZero() {
		q.AddUint64(q, 1)
	}
	return narrow(q)
}

// SqrtProduct returns floor(sqrt(a*b)). For 128-bit inputs the result always fits.
func SqrtProduct(a, b math.Uint) (math.Uint, error) {
	return narrow(new(uint256.Int).Sqrt(CastedMul(a, b)))
}
