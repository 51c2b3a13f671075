package types

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// MaxAmount bounds every balance, allowance and supply (2^128 - 1).
var MaxAmount = math.NewUintFromString("340282366920938463463374607431768211455")

// Balance is one (owner, denom) holding.
type Balance struct {
	Owner  string    `json:"owner"`
	Denom  string    `json:"denom"`
	Amount math.Uint `json:"amount"`
}

// Allowance is an approved spend limit.
type Allowance struct {
	Owner   string    `json:"owner"`
	Spender string    `json:"spender"`
	Denom   string    `json:"denom"`
	Amount  math.Uint `json:"amount"`
}

// GenesisState defines the token module's genesis state.
type GenesisState struct {
	Balances   []Balance   `json:"balances"`
	Allowances []Allowance `json:"allowances"`
}

// DefaultGenesis returns an empty ledger
func DefaultGenesis() *GenesisState {
	return &GenesisState{Balances: []Balance{}, Allowances: []Allowance{}}
}

// ValidateDenom rejects empty denoms.
func ValidateDenom(denom string) error {
	if denom == "" {
		return ErrInvalidDenom.Wrap("denom cannot be empty")
	}
	return nil
}

// Validate ensures the genesis state is well-formed.
func (gs GenesisState) Validate() error {
	for _, b := range gs.Balances {
		if _, err := sdk.AccAddressFromBech32(b.Owner); err != nil {
			return fmt.Errorf("balance owner %q: %w", b.Owner, err)
		}
		if err := ValidateDenom(b.Denom); err != nil {
			return err
		}
		if b.Amount.IsNil() || b.Amount.GT(MaxAmount) {
			return ErrInvalidAmount.Wrapf("balance %s/%s", b.Owner, b.Denom)
		}
	}
	for _, a := range gs.Allowances {
		if _, err := sdk.AccAddressFromBech32(a.Owner); err != nil {
			return fmt.Errorf("allowance owner %q: %w", a.Owner, err)
		}
		if _, err := sdk.AccAddressFromBech32(a.Spender); err != nil {
			return fmt.Errorf("allowance spender %q: %w", a.Spender, err)
		}
		if err := ValidateDenom(a.Denom); err != nil {
			return err
		}
		if a.Amount.IsNil() || a.Amount.GT(MaxAmount) {
			return ErrInvalidAmount.Wrapf("allowance %s/%s/%s", a.Owner, a.Spender, a.Denom)
		}
	}
	return nil
}
