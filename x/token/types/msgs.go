package types

import (
	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	errortypes "github.com/cosmos/cosmos-sdk/types/errors"
)

// MsgMint credits To with newly created tokens. Issuance is open on
// development ledgers; production deployments gate it in the app.
type MsgMint struct {
	Sender string    `json:"sender"`
	To     string    `json:"to"`
	Denom  string    `json:"denom"`
	Amount math.Uint `json:"amount"`
}

// MsgTransfer moves tokens from Sender to To.
type MsgTransfer struct {
	Sender string    `json:"sender"`
	To     string    `json:"to"`
	Denom  string    `json:"denom"`
	Amount math.Uint `json:"amount"`
}

// MsgApprove sets Spender's allowance over Sender's balance.
type MsgApprove struct {
	Sender  string    `json:"sender"`
	Spender string    `json:"spender"`
	Denom   string    `json:"denom"`
	Amount  math.Uint `json:"amount"`
}

func (msg MsgMint) ValidateBasic() error {
	return validateTokenMsg(msg.Denom, msg.Amount, msg.Sender, msg.To)
}

func (msg MsgTransfer) ValidateBasic() error {
	return validateTokenMsg(msg.Denom, msg.Amount, msg.Sender, msg.To)
}

func (msg MsgApprove) ValidateBasic() error {
	return validateTokenMsg(msg.Denom, msg.Amount, msg.Sender, msg.Spender)
}

func validateTokenMsg(denom string, amount math.Uint, addrs ...string) error {
	for _, addr := range addrs {
		if _, err := sdk.AccAddressFromBech32(addr); err != nil {
			return sdkerrors.Wrapf(errortypes.ErrInvalidAddress, "invalid address %q: %s", addr, err)
		}
	}
	if err := ValidateDenom(denom); err != nil {
		return err
	}
	if amount.IsNil() || amount.GT(MaxAmount) {
		return ErrInvalidAmount.Wrap("amount must be set and fit 128 bits")
	}
	return nil
}
