package types

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// TokenHooks is notified after every balance movement. A hook error aborts
// the transfer. Hooks may call into other modules, including the caller.
type TokenHooks interface {
	AfterTransfer(ctx context.Context, denom string, from, to sdk.AccAddress, amount math.Uint, data []byte) error
}

// MultiTokenHooks combines multiple token hooks into a single hook that calls all of them.
type MultiTokenHooks []TokenHooks

// NewMultiTokenHooks creates a new MultiTokenHooks from a list of hooks.
func NewMultiTokenHooks(hooks ...TokenHooks) MultiTokenHooks {
	return hooks
}

// AfterTransfer calls AfterTransfer on all registered hooks.
func (h MultiTokenHooks) AfterTransfer(ctx context.Context, denom string, from, to sdk.AccAddress, amount math.Uint, data []byte) error {
	for _, hook := range h {
		if hook == nil {
			continue
		}
		if err := hook.AfterTransfer(ctx, denom, from, to, amount, data); err != nil {
			return err
		}
	}
	return nil
}
