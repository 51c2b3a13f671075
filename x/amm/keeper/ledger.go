package keeper

import (
	"context"
	"encoding/json"
	"fmt"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/amm/x/amm/types"
)

// GetSinglePool returns the single pool and whether it has been created.
func (k Keeper) GetSinglePool(ctx context.Context) (types.SinglePool, bool, error) {
	bz := k.getStore(ctx).Get(SinglePoolKey)
	if bz == nil {
		return types.SinglePool{}, false, nil
	}
	var pool types.SinglePool
	if err := json.Unmarshal(bz, &pool); err != nil {
		return types.SinglePool{}, false, fmt.Errorf("GetSinglePool: unmarshal: %w", err)
	}
	return pool, true, nil
}

// SetSinglePool saves the single-pool reserves
func (k Keeper) SetSinglePool(ctx context.Context, pool types.SinglePool) error {
	bz, err := json.Marshal(pool)
	if err != nil {
		return fmt.Errorf("SetSinglePool: marshal: %w", err)
	}
	k.getStore(ctx).Set(SinglePoolKey, bz)
	return nil
}

// GetLedgerBalance returns the ledger balance of account at index, zero when absent.
func (k Keeper) GetLedgerBalance(ctx context.Context, account sdk.AccAddress, index uint32) math.Uint {
	bz := k.getStore(ctx).Get(GetLedgerKey(account, index))
	if bz == nil {
		return math.ZeroUint()
	}
	var amount math.Uint
	if err := amount.Unmarshal(bz); err != nil {
		panic(fmt.Errorf("GetLedgerBalance: corrupt balance for %s/%d: %w", account, index, err))
	}
	return amount
}

// SetLedgerBalance writes a ledger balance
func (k Keeper) SetLedgerBalance(ctx context.Context, account sdk.AccAddress, index uint32, amount math.Uint) error {
	bz, err := amount.Marshal()
	if err != nil {
		return fmt.Errorf("SetLedgerBalance: marshal: %w", err)
	}
	k.getStore(ctx).Set(GetLedgerKey(account, index), bz)
	return nil
}

// IncreaseBalance credits the ledger. Overflowing 128 bits is ErrMath.
func (k Keeper) IncreaseBalance(ctx context.Context, account sdk.AccAddress, index uint32, amount math.Uint) error {
	balance, err := CheckedAdd(k.GetLedgerBalance(ctx, account, index), amount)
	if err != nil {
		return err
	}
	return k.SetLedgerBalance(ctx, account, index, balance)
}

// DecreaseBalance debits the ledger. Underflow is ErrNotEnoughBalance.
func (k Keeper) DecreaseBalance(ctx context.Context, account sdk.AccAddress, index uint32, amount math.Uint) error {
	balance := k.GetLedgerBalance(ctx, account, index)
	if balance.LT(amount) {
		return types.ErrNotEnoughBalance.Wrapf("%s has %s at index %d, needs %s", account, balance, index, amount)
	}
	return k.SetLedgerBalance(ctx, account, index, balance.Sub(amount))
}

// IterateLedger walks every ledger balance in key order.
func (k Keeper) IterateLedger(ctx context.Context, cb func(account sdk.AccAddress, index uint32, amount math.Uint) (stop bool)) error {
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), LedgerKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		account, index := splitLedgerKey(iterator.Key()[len(LedgerKeyPrefix):])
		var amount math.Uint
		if err := amount.Unmarshal(iterator.Value()); err != nil {
			return fmt.Errorf("IterateLedger: unmarshal %s/%d: %w", account, index, err)
		}
		if cb(account, index, amount) {
			break
		}
	}
	return nil
}

// CreateSinglePool sets the single-pool reserves and seeds the creator's
// ledger with holding at both indices. It can run once.
func (k Keeper) CreateSinglePool(ctx context.Context, creator sdk.AccAddress, balance0, balance1, holding math.Uint) error {
	if _, exists, err := k.GetSinglePool(ctx); err != nil {
		return err
	} else if exists {
		return types.ErrPoolAlreadyExists.Wrap("single pool already created")
	}

	pool := types.SinglePool{Balances: [2]math.Uint{balance0, balance1}}
	if err := pool.Validate(); err != nil {
		return err
	}
	if !types.FitsUint128(holding) {
		return types.ErrMath.Wrap("holding exceeds 128 bits")
	}

	if err := k.SetSinglePool(ctx, pool); err != nil {
		return err
	}
	for _, index := range []uint32{0, 1} {
		if err := k.SetLedgerBalance(ctx, creator, index, holding); err != nil {
			return err
		}
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeSinglePoolInit,
			sdk.NewAttribute(types.AttributeKeyCreator, creator.String()),
			sdk.NewAttribute(types.AttributeKeyAmount0, balance0.String()),
			sdk.NewAttribute(types.AttributeKeyAmount1, balance1.String()),
			sdk.NewAttribute(types.AttributeKeyHolding, holding.String()),
		),
	)
	return nil
}

// SwapSingle swaps amountIn of the sender's ledger balance at indexIn for the
// opposite asset. The input is debited before pricing and the output credited after.
func (k Keeper) SwapSingle(ctx context.Context, sender sdk.AccAddress, amountIn math.Uint, indexIn uint32) (amountOut math.Uint, err error) {
	defer func() {
		status := "success"
		if err != nil {
			status = "failed"
		}
		k.metrics.SingleSwapsTotal.WithLabelValues(fmt.Sprintf("%d", indexIn), status).Inc()
	}()

	if indexIn > 1 {
		return math.Uint{}, types.ErrWrongIndex.Wrapf("asset index %d", indexIn)
	}
	if !types.FitsUint128(amountIn) {
		return math.Uint{}, types.ErrMath.Wrap("amount exceeds 128 bits")
	}

	pool, exists, err := k.GetSinglePool(ctx)
	if err != nil {
		return math.Uint{}, err
	}
	if !exists {
		return math.Uint{}, types.ErrWrongIndex.Wrap("single pool not created")
	}

	if err := k.DecreaseBalance(ctx, sender, indexIn, amountIn); err != nil {
		return math.Uint{}, err
	}

	balances, amountOut, err := swapReserves(pool.Balances, indexIn, amountIn)
	if err != nil {
		return math.Uint{}, err
	}

	if err := k.IncreaseBalance(ctx, sender, 1-indexIn, amountOut); err != nil {
		return math.Uint{}, err
	}

	pool.Balances = balances
	if err := k.SetSinglePool(ctx, pool); err != nil {
		return math.Uint{}, err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeSingleSwapped,
			sdk.NewAttribute(types.AttributeKeyIndexIn, fmt.Sprintf("%d", indexIn)),
			sdk.NewAttribute(types.AttributeKeyAmountIn, amountIn.String()),
			sdk.NewAttribute(types.AttributeKeyAmountOut, amountOut.String()),
			sdk.NewAttribute(types.AttributeKeyWho, sender.String()),
		),
	)

	return amountOut, nil
}
