package keeper

import (
	"encoding/binary"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
)

var (
	// PoolKeyPrefix is the prefix for pool records keyed by big-endian id
	PoolKeyPrefix = []byte{0x01}

	// PoolCounterKey holds the next pool id
	PoolCounterKey = []byte{0x02}

	// SinglePoolKey holds the single-pool reserves
	SinglePoolKey = []byte{0x03}

	// LedgerKeyPrefix is the prefix for single-pool ledger balances
	LedgerKeyPrefix = []byte{0x04}

	// ReentrancyLockPrefix is the prefix for reentrancy locks
	ReentrancyLockPrefix = []byte{0x05}
)

func poolIDBytes(poolID uint32) []byte {
	bz := make([]byte, 4)
	binary.BigEndian.PutUint32(bz, poolID)
	return bz
}

// GetPoolKey returns the store key for a pool
func GetPoolKey(poolID uint32) []byte {
	return append(append([]byte{}, PoolKeyPrefix...), poolIDBytes(poolID)...)
}

// GetLedgerKey returns the store key for an (account, index) ledger balance
func GetLedgerKey(account sdk.AccAddress, index uint32) []byte {
	key := append([]byte{}, LedgerKeyPrefix...)
	key = append(key, address.MustLengthPrefix(account)...)
	return append(key, byte(index))
}

// splitLedgerKey recovers the account and index from a ledger key with the prefix stripped.
func splitLedgerKey(bz []byte) (sdk.AccAddress, uint32) {
	addrLen := int(bz[0])
	return sdk.AccAddress(bz[1 : 1+addrLen]), uint32(bz[1+addrLen])
}

// ReentrancyLockKey returns the store key for a reentrancy lock
func ReentrancyLockKey(lockKey string) []byte {
	return append(append([]byte{}, ReentrancyLockPrefix...), []byte(lockKey)...)
}
