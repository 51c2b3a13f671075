package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// GenesisState defines the AMM module's genesis state.
type GenesisState struct {
	PoolCounter   uint32        `json:"pool_counter"`
	Pools         []Pool        `json:"pools"`
	SinglePool    *SinglePool   `json:"single_pool,omitempty"`
	LedgerEntries []LedgerEntry `json:"ledger_entries"`
}

// DefaultGenesis returns an empty multi-pool registry with no single pool.
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		PoolCounter:   0,
		Pools:         []Pool{},
		LedgerEntries: []LedgerEntry{},
	}
}

// Validate ensures the genesis state is well-formed.
func (gs GenesisState) Validate() error {
	seen := make(map[uint32]struct{}, len(gs.Pools))
	for _, pool := range gs.Pools {
		if _, dup := seen[pool.Id]; dup {
			return fmt.Errorf("duplicate pool id %d", pool.Id)
		}
		seen[pool.Id] = struct{}{}
		if pool.Id >= gs.PoolCounter {
			return fmt.Errorf("pool id %d not below pool counter %d", pool.Id, gs.PoolCounter)
		}
		if err := pool.Validate(); err != nil {
			return fmt.Errorf("invalid pool %d: %w", pool.Id, err)
		}
	}

	if gs.SinglePool != nil {
		if err := gs.SinglePool.Validate(); err != nil {
			return err
		}
	}

	type ledgerKey struct {
		account string
		index   uint32
	}
	entries := make(map[ledgerKey]struct{}, len(gs.LedgerEntries))
	for _, e := range gs.LedgerEntries {
		if _, err := sdk.AccAddressFromBech32(e.Account); err != nil {
			return fmt.Errorf("ledger entry: invalid account %q: %w", e.Account, err)
		}
		if e.Index > 1 {
			return ErrWrongIndex.Wrapf("ledger entry %s: index %d", e.Account, e.Index)
		}
		if e.Amount.IsNil() || !FitsUint128(e.Amount) {
			return ErrMath.Wrapf("ledger entry %s/%d: invalid amount", e.Account, e.Index)
		}
		k := ledgerKey{e.Account, e.Index}
		if _, dup := entries[k]; dup {
			return fmt.Errorf("duplicate ledger entry %s/%d", e.Account, e.Index)
		}
		entries[k] = struct{}{}
	}
	return nil
}
