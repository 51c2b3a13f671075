package keeper

import (
	"bytes"
	"context"
	"fmt"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/amm/x/token/types"
)

// Keeper is a fungible token ledger keyed by denom. It implements
// balance_of, allowance, approve, transfer, transfer_from and mint.
type Keeper struct {
	storeKey storetypes.StoreKey
	hooks    types.TokenHooks
}

// NewKeeper creates a new token Keeper instance
func NewKeeper(key storetypes.StoreKey) *Keeper {
	return &Keeper{storeKey: key}
}

// SetHooks sets the transfer hooks. It panics if called twice.
func (k *Keeper) SetHooks(h types.TokenHooks) *Keeper {
	if k.hooks != nil {
		panic("cannot set token hooks twice")
	}
	k.hooks = h
	return k
}

func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	return sdk.UnwrapSDKContext(ctx).KVStore(k.storeKey)
}

// Logger returns a module-specific logger.
func (k Keeper) Logger(ctx context.Context) log.Logger {
	return sdk.UnwrapSDKContext(ctx).Logger().With("module", "x/"+types.ModuleName)
}

func (k Keeper) getAmount(ctx context.Context, key []byte) math.Uint {
	bz := k.getStore(ctx).Get(key)
	if bz == nil {
		return math.ZeroUint()
	}
	var amount math.Uint
	if err := amount.Unmarshal(bz); err != nil {
		panic(fmt.Errorf("corrupt amount at %X: %w", key, err))
	}
	return amount
}

func (k Keeper) setAmount(ctx context.Context, key []byte, amount math.Uint) {
	store := k.getStore(ctx)
	if amount.IsZero() {
		store.Delete(key)
		return
	}
	bz, err := amount.Marshal()
	if err != nil {
		panic(err)
	}
	store.Set(key, bz)
}

// BalanceOf returns owner's balance of denom
func (k Keeper) BalanceOf(ctx context.Context, denom string, owner sdk.AccAddress) math.Uint {
	return k.getAmount(ctx, types.BalanceKey(owner, denom))
}

// Allowance returns how much spender may move out of owner's denom balance
func (k Keeper) Allowance(ctx context.Context, denom string, owner, spender sdk.AccAddress) math.Uint {
	return k.getAmount(ctx, types.AllowanceKey(owner, spender, denom))
}

// TotalSupply returns the minted supply of denom
func (k Keeper) TotalSupply(ctx context.Context, denom string) math.Uint {
	return k.getAmount(ctx, types.SupplyKey(denom))
}

// Approve sets spender's allowance over owner's denom balance, replacing any previous value.
func (k Keeper) Approve(ctx context.Context, denom string, owner, spender sdk.AccAddress, amount math.Uint) error {
	if err := types.ValidateDenom(denom); err != nil {
		return err
	}
	if amount.IsNil() || amount.GT(types.MaxAmount) {
		return types.ErrInvalidAmount.Wrapf("allowance %s", amount)
	}
	k.setAmount(ctx, types.AllowanceKey(owner, spender, denom), amount)

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeApproval,
			sdk.NewAttribute(types.AttributeKeyDenom, denom),
			sdk.NewAttribute(types.AttributeKeyOwner, owner.String()),
			sdk.NewAttribute(types.AttributeKeySpender, spender.String()),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		),
	)
	return nil
}

// Mint creates amount of denom in to's balance.
func (k Keeper) Mint(ctx context.Context, denom string, to sdk.AccAddress, amount math.Uint) error {
	if err := types.ValidateDenom(denom); err != nil {
		return err
	}
	if amount.IsNil() {
		return types.ErrInvalidAmount.Wrap("amount must be set")
	}

	supply := k.TotalSupply(ctx, denom).Add(amount)
	if supply.GT(types.MaxAmount) {
		return types.ErrInvalidAmount.Wrapf("supply of %s would exceed 128 bits", denom)
	}
	k.setAmount(ctx, types.SupplyKey(denom), supply)
	k.setAmount(ctx, types.BalanceKey(to, denom), k.BalanceOf(ctx, denom, to).Add(amount))

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeMint,
			sdk.NewAttribute(types.AttributeKeyDenom, denom),
			sdk.NewAttribute(types.AttributeKeyTo, to.String()),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		),
	)
	return nil
}

// Transfer moves amount of denom from from to to, then runs the transfer hooks.
func (k Keeper) Transfer(ctx context.Context, denom string, from, to sdk.AccAddress, amount math.Uint, data []byte) error {
	if err := types.ValidateDenom(denom); err != nil {
		return err
	}
	if amount.IsNil() {
		return types.ErrInvalidAmount.Wrap("amount must be set")
	}

	fromBalance := k.BalanceOf(ctx, denom, from)
	if fromBalance.LT(amount) {
		return types.ErrInsufficientFunds.Wrapf("%s has %s%s, needs %s", from, fromBalance, denom, amount)
	}

	if !bytes.Equal(from, to) {
		// total supply is bounded so the recipient cannot overflow
		k.setAmount(ctx, types.BalanceKey(from, denom), fromBalance.Sub(amount))
		k.setAmount(ctx, types.BalanceKey(to, denom), k.BalanceOf(ctx, denom, to).Add(amount))
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeTransfer,
			sdk.NewAttribute(types.AttributeKeyDenom, denom),
			sdk.NewAttribute(types.AttributeKeyFrom, from.String()),
			sdk.NewAttribute(types.AttributeKeyTo, to.String()),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		),
	)

	if k.hooks != nil {
		return k.hooks.AfterTransfer(ctx, denom, from, to, amount, data)
	}
	return nil
}

// TransferFrom moves amount from from to to on behalf of spender, consuming
// spender's allowance. A spender moving its own funds needs no allowance.
func (k Keeper) TransferFrom(ctx context.Context, denom string, spender, from, to sdk.AccAddress, amount math.Uint, data []byte) error {
	if amount.IsNil() {
		return types.ErrInvalidAmount.Wrap("amount must be set")
	}

	if !bytes.Equal(spender, from) {
		allowance := k.Allowance(ctx, denom, from, spender)
		if allowance.LT(amount) {
			return types.ErrInsufficientAllowance.Wrapf("%s may spend %s%s of %s, needs %s", spender, allowance, denom, from, amount)
		}
		k.setAmount(ctx, types.AllowanceKey(from, spender, denom), allowance.Sub(amount))
	}

	return k.Transfer(ctx, denom, from, to, amount, data)
}

// InitGenesis loads balances and allowances and rebuilds supplies.
func (k Keeper) InitGenesis(ctx context.Context, gs types.GenesisState) error {
	if err := gs.Validate(); err != nil {
		return fmt.Errorf("InitGenesis: %w", err)
	}
	for _, b := range gs.Balances {
		if err := k.Mint(ctx, b.Denom, sdk.MustAccAddressFromBech32(b.Owner), b.Amount); err != nil {
			return fmt.Errorf("balance %s/%s: %w", b.Owner, b.Denom, err)
		}
	}
	for _, a := range gs.Allowances {
		owner := sdk.MustAccAddressFromBech32(a.Owner)
		spender := sdk.MustAccAddressFromBech32(a.Spender)
		if err := k.Approve(ctx, a.Denom, owner, spender, a.Amount); err != nil {
			return fmt.Errorf("allowance %s/%s/%s: %w", a.Owner, a.Spender, a.Denom, err)
		}
	}
	return nil
}

// ExportGenesis returns every non-zero balance and allowance.
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	gs := types.DefaultGenesis()
	store := k.getStore(ctx)

	balances := storetypes.KVStorePrefixIterator(store, types.BalanceKeyPrefix)
	defer balances.Close()
	for ; balances.Valid(); balances.Next() {
		owner, rest := splitLengthPrefixed(balances.Key()[len(types.BalanceKeyPrefix):])
		var amount math.Uint
		if err := amount.Unmarshal(balances.Value()); err != nil {
			return nil, fmt.Errorf("ExportGenesis: balance: %w", err)
		}
		gs.Balances = append(gs.Balances, types.Balance{
			Owner:  sdk.AccAddress(owner).String(),
			Denom:  string(rest),
			Amount: amount,
		})
	}

	allowances := storetypes.KVStorePrefixIterator(store, types.AllowanceKeyPrefix)
	defer allowances.Close()
	for ; allowances.Valid(); allowances.Next() {
		owner, rest := splitLengthPrefixed(allowances.Key()[len(types.AllowanceKeyPrefix):])
		spender, denom := splitLengthPrefixed(rest)
		var amount math.Uint
		if err := amount.Unmarshal(allowances.Value()); err != nil {
			return nil, fmt.Errorf("ExportGenesis: allowance: %w", err)
		}
		gs.Allowances = append(gs.Allowances, types.Allowance{
			Owner:   sdk.AccAddress(owner).String(),
			Spender: sdk.AccAddress(spender).String(),
			Denom:   string(denom),
			Amount:  amount,
		})
	}
	return gs, nil
}

func splitLengthPrefixed(bz []byte) ([]byte, []byte) {
	n := int(bz[0])
	return bz[1 : 1+n], bz[1+n:]
}
