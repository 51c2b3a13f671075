package types

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// TokenKeeper is the asset custody capability. The AMM pulls deposits with
// TransferFrom (spending an allowance granted to the module account) and pays
// out with Transfer. Implementations may call back into the AMM; see
// Keeper.WithReentrancyGuard.
type TokenKeeper interface {
	TransferFrom(ctx context.Context, token string, spender, from, to sdk.AccAddress, amount math.Uint, data []byte) error
	Transfer(ctx context.Context, token string, from, to sdk.AccAddress, amount math.Uint, data []byte) error
	BalanceOf(ctx context.Context, token string, owner sdk.AccAddress) math.Uint
}

// ShareKeeper issues liquidity-provider shares.
type ShareKeeper interface {
	MintShares(ctx context.Context, poolID uint32, to sdk.AccAddress, amount math.Uint) error
}
