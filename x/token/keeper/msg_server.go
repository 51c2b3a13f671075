package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/amm/x/token/types"
)

// MsgServer executes token messages. Callers provide atomicity by running
// it in a branched store.
type MsgServer struct {
	*Keeper
}

// NewMsgServerImpl returns the token message handler
func NewMsgServerImpl(k *Keeper) MsgServer {
	return MsgServer{Keeper: k}
}

// Mint handles MsgMint
func (ms MsgServer) Mint(ctx context.Context, msg *types.MsgMint) error {
	if err := msg.ValidateBasic(); err != nil {
		return err
	}
	return ms.Keeper.Mint(ctx, msg.Denom, sdk.MustAccAddressFromBech32(msg.To), msg.Amount)
}

// Transfer handles MsgTransfer
func (ms MsgServer) Transfer(ctx context.Context, msg *types.MsgTransfer) error {
	if err := msg.ValidateBasic(); err != nil {
		return err
	}
	return ms.Keeper.Transfer(ctx, msg.Denom, sdk.MustAccAddressFromBech32(msg.Sender), sdk.MustAccAddressFromBech32(msg.To), msg.Amount, nil)
}

// Approve handles MsgApprove
func (ms MsgServer) Approve(ctx context.Context, msg *types.MsgApprove) error {
	if err := msg.ValidateBasic(); err != nil {
		return err
	}
	return ms.Keeper.Approve(ctx, msg.Denom, sdk.MustAccAddressFromBech32(msg.Sender), sdk.MustAccAddressFromBech32(msg.Spender), msg.Amount)
}
