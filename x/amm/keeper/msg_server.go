package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/amm/x/amm/types"
)

type msgServer struct {
	Keeper
}

// NewMsgServerImpl returns an implementation of the amm MsgServer interface
func NewMsgServerImpl(keeper Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

var _ types.MsgServer = msgServer{}

// execute validates msg, then runs fn atomically under the reentrancy guard.
func (ms msgServer) execute(goCtx context.Context, operation string, msg interface{ ValidateBasic() error }, fn func(ctx sdk.Context) error) error {
	if err := msg.ValidateBasic(); err != nil {
		return errorsmod.Wrapf(err, "%s: validate", operation)
	}

	err := runAtomic(goCtx, func(ctx sdk.Context) error {
		return ms.WithReentrancyGuard(ctx, operation, func() error {
			return fn(ctx)
		})
	})
	if err != nil {
		ms.Logger(goCtx).Debug("operation failed", "operation", operation, "err", err)
		return errorsmod.Wrap(err, operation)
	}
	return nil
}

// CreateSinglePool handles initialization of the ledger-backed single pool
func (ms msgServer) CreateSinglePool(goCtx context.Context, msg *types.MsgCreateSinglePool) (*types.MsgCreateSinglePoolResponse, error) {
	err := ms.execute(goCtx, "CreateSinglePool", msg, func(ctx sdk.Context) error {
		creator := sdk.MustAccAddressFromBech32(msg.Creator)
		return ms.Keeper.CreateSinglePool(ctx, creator, msg.Balance0, msg.Balance1, msg.Holding)
	})
	if err != nil {
		return nil, err
	}
	return &types.MsgCreateSinglePoolResponse{}, nil
}

// SwapSingle handles a swap against the single pool
func (ms msgServer) SwapSingle(goCtx context.Context, msg *types.MsgSwapSingle) (*types.MsgSwapSingleResponse, error) {
	var amountOut math.Uint
	err := ms.execute(goCtx, "SwapSingle", msg, func(ctx sdk.Context) error {
		sender := sdk.MustAccAddressFromBech32(msg.Sender)
		out, err := ms.Keeper.SwapSingle(ctx, sender, msg.AmountIn, msg.IndexIn)
		amountOut = out
		return err
	})
	if err != nil {
		return nil, err
	}
	return &types.MsgSwapSingleResponse{AmountOut: amountOut}, nil
}

// CreatePool handles the creation of a new liquidity pool
func (ms msgServer) CreatePool(goCtx context.Context, msg *types.MsgCreatePool) (*types.MsgCreatePoolResponse, error) {
	var (
		poolID uint32
		shares math.Uint
	)
	err := ms.execute(goCtx, "CreatePool", msg, func(ctx sdk.Context) error {
		creator := sdk.MustAccAddressFromBech32(msg.Creator)
		id, minted, err := ms.Keeper.CreatePool(ctx, creator, msg.Token0, msg.Amount0, msg.Token1, msg.Amount1, msg.Fee)
		poolID, shares = id, minted
		return err
	})
	if err != nil {
		return nil, err
	}
	return &types.MsgCreatePoolResponse{PoolId: poolID, Shares: shares}, nil
}

// AddLiquidity handles adding liquidity to an existing pool
func (ms msgServer) AddLiquidity(goCtx context.Context, msg *types.MsgAddLiquidity) (*types.MsgAddLiquidityResponse, error) {
	var shares math.Uint
	err := ms.execute(goCtx, "AddLiquidity", msg, func(ctx sdk.Context) error {
		provider := sdk.MustAccAddressFromBech32(msg.Provider)
		minted, err := ms.Keeper.AddLiquidity(ctx, provider, msg.PoolId, msg.Amount0, msg.Amount1)
		shares = minted
		return err
	})
	if err != nil {
		return nil, err
	}
	return &types.MsgAddLiquidityResponse{Shares: shares}, nil
}

// Swap handles a routed swap across one or more pools
func (ms msgServer) Swap(goCtx context.Context, msg *types.MsgSwap) (*types.MsgSwapResponse, error) {
	var amountOut math.Uint
	err := ms.execute(goCtx, "Swap", msg, func(ctx sdk.Context) error {
		trader := sdk.MustAccAddressFromBech32(msg.Trader)
		out, err := ms.Keeper.Swap(ctx, trader, msg.TokenIn, msg.TokenOut, msg.AmountIn, msg.MinAmountOut, msg.Route)
		amountOut = out
		return err
	})
	if err != nil {
		return nil, err
	}
	return &types.MsgSwapResponse{AmountOut: amountOut}, nil
}
