package types

import (
	"fmt"

	"cosmossdk.io/math"
)

// Pool is a two-asset constant-product pool. Balances are index-aligned with Tokens.
type Pool struct {
	Id          uint32       `json:"id"`
	Fee         uint32       `json:"fee"`
	TotalShares math.Uint    `json:"total_shares"`
	Tokens      [2]string    `json:"tokens"`
	Balances    [2]math.Uint `json:"balances"`
}

// NewPool creates a new Pool instance
func NewPool(id uint32, token0 string, balance0 math.Uint, token1 string, balance1 math.Uint, fee uint32, shares math.Uint) Pool {
	return Pool{
		Id:          id,
		Fee:         fee,
		TotalShares: shares,
		Tokens:      [2]string{token0, token1},
		Balances:    [2]math.Uint{balance0, balance1},
	}
}

// IndexOf returns the position of token in the pool.
func (p Pool) IndexOf(token string) (int, bool) {
	for i, t := range p.Tokens {
		if t == token {
			return i, true
		}
	}
	return 0, false
}

// ValidateFee checks fee lies strictly between zero and FeeDenominator.
func ValidateFee(fee uint32) error {
	if fee == 0 || fee >= FeeDenominator {
		return ErrWrongFee.Wrapf("fee %d must be in (0, %d)", fee, FeeDenominator)
	}
	return nil
}

// Validate checks the stored pool invariants.
func (p Pool) Validate() error {
	if p.Tokens[0] == "" || p.Tokens[1] == "" {
		return fmt.Errorf("pool %d: empty token", p.Id)
	}
	if p.Tokens[0] == p.Tokens[1] {
		return ErrEqualTokens.Wrapf("pool %d: %s", p.Id, p.Tokens[0])
	}
	if err := ValidateFee(p.Fee); err != nil {
		return err
	}
	for i, b := range p.Balances {
		if b.IsNil() || b.IsZero() {
			return ErrNotEnoughBalance.Wrapf("pool %d: reserve %d must be positive", p.Id, i)
		}
		if !FitsUint128(b) {
			return ErrMath.Wrapf("pool %d: reserve %d exceeds 128 bits", p.Id, i)
		}
	}
	if p.TotalShares.IsNil() || !FitsUint128(p.TotalShares) {
		return ErrMath.Wrapf("pool %d: invalid total shares", p.Id)
	}
	return nil
}

// SinglePool is the reserve pair of the ledger-backed single pool.
type SinglePool struct {
	Balances [2]math.Uint `json:"balances"`
}

// Validate checks both reserves are positive and representable.
func (p SinglePool) Validate() error {
	for i, b := range p.Balances {
		if b.IsNil() || b.IsZero() {
			return ErrNotEnoughBalance.Wrapf("single pool: reserve %d must be positive", i)
		}
		if !FitsUint128(b) {
			return ErrMath.Wrapf("single pool: reserve %d exceeds 128 bits", i)
		}
	}
	return nil
}

// LedgerEntry is one (account, asset index) balance of the single-pool ledger.
type LedgerEntry struct {
	Account string    `json:"account"`
	Index   uint32    `json:"index"`
	Amount  math.Uint `json:"amount"`
}
