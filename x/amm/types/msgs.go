package types

import (
	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	errortypes "github.com/cosmos/cosmos-sdk/types/errors"
)

// Messages carry only shape checks in ValidateBasic. Semantic ordering
// (equal tokens before balances before fee, and so on) is enforced by the
// keeper so that error precedence matches direct keeper calls.

// MsgCreateSinglePool initializes the ledger-backed single pool.
type MsgCreateSinglePool struct {
	Creator  string    `json:"creator"`
	Balance0 math.Uint `json:"balance_0"`
	Balance1 math.Uint `json:"balance_1"`
	Holding  math.Uint `json:"holding"`
}

// MsgCreateSinglePoolResponse is returned on success.
type MsgCreateSinglePoolResponse struct{}

func NewMsgCreateSinglePool(creator string, balance0, balance1, holding math.Uint) *MsgCreateSinglePool {
	return &MsgCreateSinglePool{Creator: creator, Balance0: balance0, Balance1: balance1, Holding: holding}
}

func (msg MsgCreateSinglePool) GetSigners() []sdk.AccAddress {
	return mustSigners(msg.Creator)
}

func (msg MsgCreateSinglePool) ValidateBasic() error {
	if err := validateAddress("creator", msg.Creator); err != nil {
		return err
	}
	if err := validateAmount("balance_0", msg.Balance0); err != nil {
		return err
	}
	if err := validateAmount("balance_1", msg.Balance1); err != nil {
		return err
	}
	return validateAmount("holding", msg.Holding)
}

// MsgSwapSingle swaps between the two ledger assets of the single pool.
type MsgSwapSingle struct {
	Sender   string    `json:"sender"`
	IndexIn  uint32    `json:"index_in"`
	AmountIn math.Uint `json:"amount_in"`
}

// MsgSwapSingleResponse reports the amount credited at the opposite index.
type MsgSwapSingleResponse struct {
	AmountOut math.Uint `json:"amount_out"`
}

func NewMsgSwapSingle(sender string, indexIn uint32, amountIn math.Uint) *MsgSwapSingle {
	return &MsgSwapSingle{Sender: sender, IndexIn: indexIn, AmountIn: amountIn}
}

func (msg MsgSwapSingle) GetSigners() []sdk.AccAddress {
	return mustSigners(msg.Sender)
}

func (msg MsgSwapSingle) ValidateBasic() error {
	if err := validateAddress("sender", msg.Sender); err != nil {
		return err
	}
	return validateAmount("amount_in", msg.AmountIn)
}

// MsgCreatePool opens a new two-token pool funded by the creator.
type MsgCreatePool struct {
	Creator string    `json:"creator"`
	Token0  string    `json:"token_0"`
	Amount0 math.Uint `json:"amount_0"`
	Token1  string    `json:"token_1"`
	Amount1 math.Uint `json:"amount_1"`
	Fee     uint32    `json:"fee"`
}

// MsgCreatePoolResponse returns the id of the new pool.
type MsgCreatePoolResponse struct {
	PoolId uint32    `json:"pool_id"`
	Shares math.Uint `json:"shares"`
}

func NewMsgCreatePool(creator, token0 string, amount0 math.Uint, token1 string, amount1 math.Uint, fee uint32) *MsgCreatePool {
	return &MsgCreatePool{
		Creator: creator,
		Token0:  token0,
		Amount0: amount0,
		Token1:  token1,
		Amount1: amount1,
		Fee:     fee,
	}
}

func (msg MsgCreatePool) GetSigners() []sdk.AccAddress {
	return mustSigners(msg.Creator)
}

func (msg MsgCreatePool) ValidateBasic() error {
	if err := validateAddress("creator", msg.Creator); err != nil {
		return err
	}
	if msg.Token0 == "" || msg.Token1 == "" {
		return sdkerrors.Wrap(errortypes.ErrInvalidRequest, "token identifiers cannot be empty")
	}
	if err := validateAmount("amount_0", msg.Amount0); err != nil {
		return err
	}
	return validateAmount("amount_1", msg.Amount1)
}

// MsgAddLiquidity deposits both tokens of an existing pool.
type MsgAddLiquidity struct {
	Provider string    `json:"provider"`
	PoolId   uint32    `json:"pool_id"`
	Amount0  math.Uint `json:"amount_0"`
	Amount1  math.Uint `json:"amount_1"`
}

// MsgAddLiquidityResponse returns the shares minted.
type MsgAddLiquidityResponse struct {
	Shares math.Uint `json:"shares"`
}

func NewMsgAddLiquidity(provider string, poolID uint32, amount0, amount1 math.Uint) *MsgAddLiquidity {
	return &MsgAddLiquidity{Provider: provider, PoolId: poolID, Amount0: amount0, Amount1: amount1}
}

func (msg MsgAddLiquidity) GetSigners() []sdk.AccAddress {
	return mustSigners(msg.Provider)
}

func (msg MsgAddLiquidity) ValidateBasic() error {
	if err := validateAddress("provider", msg.Provider); err != nil {
		return err
	}
	if err := validateAmount("amount_0", msg.Amount0); err != nil {
		return err
	}
	return validateAmount("amount_1", msg.Amount1)
}

// MsgSwap routes an input amount through one or more pools.
type MsgSwap struct {
	Trader       string    `json:"trader"`
	TokenIn      string    `json:"token_in"`
	TokenOut     string    `json:"token_out"`
	AmountIn     math.Uint `json:"amount_in"`
	MinAmountOut math.Uint `json:"min_amount_out"`
	Route        []uint32  `json:"route"`
}

// MsgSwapResponse reports the amount paid out.
type MsgSwapResponse struct {
	AmountOut math.Uint `json:"amount_out"`
}

func NewMsgSwap(trader, tokenIn, tokenOut string, amountIn, minAmountOut math.Uint, route []uint32) *MsgSwap {
	return &MsgSwap{
		Trader:       trader,
		TokenIn:      tokenIn,
		TokenOut:     tokenOut,
		AmountIn:     amountIn,
		MinAmountOut: minAmountOut,
		Route:        route,
	}
}

func (msg MsgSwap) GetSigners() []sdk.AccAddress {
	return mustSigners(msg.Trader)
}

func (msg MsgSwap) ValidateBasic() error {
	if err := validateAddress("trader", msg.Trader); err != nil {
		return err
	}
	if msg.TokenIn == "" || msg.TokenOut == "" {
		return sdkerrors.Wrap(errortypes.ErrInvalidRequest, "token identifiers cannot be empty")
	}
	if err := validateAmount("amount_in", msg.AmountIn); err != nil {
		return err
	}
	return validateAmount("min_amount_out", msg.MinAmountOut)
}

func validateAddress(field, addr string) error {
	if _, err := sdk.AccAddressFromBech32(addr); err != nil {
		return sdkerrors.Wrapf(errortypes.ErrInvalidAddress, "invalid %s address: %s", field, err)
	}
	return nil
}

func validateAmount(field string, amount math.Uint) error {
	if amount.IsNil() {
		return sdkerrors.Wrapf(errortypes.ErrInvalidRequest, "%s must be set", field)
	}
	if !FitsUint128(amount) {
		return ErrMath.Wrapf("%s exceeds 128 bits", field)
	}
	return nil
}

func mustSigners(addr string) []sdk.AccAddress {
	acc, err := sdk.AccAddressFromBech32(addr)
	if err != nil {
		panic(err)
	}
	return []sdk.AccAddress{acc}
}
