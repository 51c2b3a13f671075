package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	tokentypes "github.com/paw-chain/amm/x/token/types"
)

// Hooks receives token transfer notifications for the AMM custody account.
type Hooks struct {
	k Keeper
}

var _ tokentypes.TokenHooks = Hooks{}

// Hooks returns the wrapper struct for token hooks
func (k Keeper) Hooks() Hooks {
	return Hooks{k}
}

// AfterTransfer records every movement into or out of the custody account.
func (h Hooks) AfterTransfer(ctx context.Context, denom string, from, to sdk.AccAddress, amount math.Uint, _ []byte) error {
	moduleAddr := h.k.GetModuleAddress()
	switch {
	case from.Equals(to):
		return nil
	case to.Equals(moduleAddr):
		h.k.metrics.CustodyFlow.WithLabelValues(denom, "in").Add(bigFloat(amount))
	case from.Equals(moduleAddr):
		h.k.metrics.CustodyFlow.WithLabelValues(denom, "out").Add(bigFloat(amount))
	default:
		return nil
	}
	h.k.Logger(ctx).Debug("custody transfer", "denom", denom, "from", from.String(), "to", to.String(), "amount", amount.String())
	return nil
}
