package types

import (
	"cosmossdk.io/errors"
)

// AMM module sentinel errors
var (
	ErrNotEnoughBalance     = errors.Register(ModuleName, 2, "not enough balance")
	ErrWrongIndex           = errors.Register(ModuleName, 3, "wrong index")
	ErrMath                 = errors.Register(ModuleName, 4, "math error")
	ErrEqualTokens          = errors.Register(ModuleName, 5, "pool tokens must differ")
	ErrPoolAlreadyExists    = errors.Register(ModuleName, 6, "pool already exists")
	ErrPSP22                = errors.Register(ModuleName, 7, "token transfer failed")
	ErrWrongFee             = errors.Register(ModuleName, 8, "wrong fee")
	ErrWrongSwapArgs        = errors.Register(ModuleName, 9, "wrong swap arguments")
	ErrReceivedTooLowAmount = errors.Register(ModuleName, 10, "received amount below minimum")
	ErrReentrancy           = errors.Register(ModuleName, 11, "reentrancy detected")
)
