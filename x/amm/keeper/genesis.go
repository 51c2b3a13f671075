package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/amm/x/amm/types"
)

// InitGenesis initializes the amm module's state from a genesis state
func (k Keeper) InitGenesis(ctx context.Context, genState types.GenesisState) error {
	if err := genState.Validate(); err != nil {
		return fmt.Errorf("InitGenesis: %w", err)
	}

	k.SetPoolCounter(ctx, genState.PoolCounter)

	for _, pool := range genState.Pools {
		if err := k.SetPool(ctx, pool); err != nil {
			return fmt.Errorf("failed to set pool %d: %w", pool.Id, err)
		}
	}

	if genState.SinglePool != nil {
		if err := k.SetSinglePool(ctx, *genState.SinglePool); err != nil {
			return fmt.Errorf("failed to set single pool: %w", err)
		}
	}

	for _, entry := range genState.LedgerEntries {
		account, err := sdk.AccAddressFromBech32(entry.Account)
		if err != nil {
			return fmt.Errorf("ledger entry %s: %w", entry.Account, err)
		}
		if err := k.SetLedgerBalance(ctx, account, entry.Index, entry.Amount); err != nil {
			return fmt.Errorf("ledger entry %s/%d: %w", entry.Account, entry.Index, err)
		}
	}

	k.metrics.PoolsTotal.Set(float64(len(genState.Pools)))
	return nil
}

// ExportGenesis returns the amm module's exported genesis
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	genesis := types.DefaultGenesis()
	genesis.PoolCounter = k.GetPoolCounter(ctx)

	err := k.IteratePools(ctx, func(pool types.Pool) bool {
		genesis.Pools = append(genesis.Pools, pool)
		return false
	})
	if err != nil {
		return nil, fmt.Errorf("ExportGenesis: pools: %w", err)
	}

	single, exists, err := k.GetSinglePool(ctx)
	if err != nil {
		return nil, fmt.Errorf("ExportGenesis: single pool: %w", err)
	}
	if exists {
		genesis.SinglePool = &single
	}

	err = k.IterateLedger(ctx, func(account sdk.AccAddress, index uint32, amount math.Uint) bool {
		genesis.LedgerEntries = append(genesis.LedgerEntries, types.LedgerEntry{
			Account: account.String(),
			Index:   index,
			Amount:  amount,
		})
		return false
	})
	if err != nil {
		return nil, fmt.Errorf("ExportGenesis: ledger: %w", err)
	}

	return genesis, nil
}
