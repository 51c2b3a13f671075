package types

import (
	"github.com/cosmos/cosmos-sdk/types/address"
)

const (
	// ModuleName defines the module name
	ModuleName = "token"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName
)

var (
	BalanceKeyPrefix   = []byte{0x01}
	AllowanceKeyPrefix = []byte{0x02}
	SupplyKeyPrefix    = []byte{0x03}
)

// BalanceKey returns the store key of owner's balance of denom
func BalanceKey(owner []byte, denom string) []byte {
	key := append([]byte{}, BalanceKeyPrefix...)
	key = append(key, address.MustLengthPrefix(owner)...)
	return append(key, denom...)
}

// AllowanceKey returns the store key of the amount spender may move from owner
func AllowanceKey(owner, spender []byte, denom string) []byte {
	key := append([]byte{}, AllowanceKeyPrefix...)
	key = append(key, address.MustLengthPrefix(owner)...)
	key = append(key, address.MustLengthPrefix(spender)...)
	return append(key, denom...)
}

// SupplyKey returns the store key of the total supply of denom
func SupplyKey(denom string) []byte {
	return append(append([]byte{}, SupplyKeyPrefix...), denom...)
}
