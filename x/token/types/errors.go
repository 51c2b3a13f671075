package types

import (
	"cosmossdk.io/errors"
)

// Token module sentinel errors
var (
	ErrInsufficientFunds     = errors.Register(ModuleName, 2, "insufficient funds")
	ErrInsufficientAllowance = errors.Register(ModuleName, 3, "insufficient allowance")
	ErrInvalidAmount         = errors.Register(ModuleName, 4, "invalid amount")
	ErrInvalidDenom          = errors.Register(ModuleName, 5, "invalid denom")
)
