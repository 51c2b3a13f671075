package types

const (
	EventTypeTransfer = "token_transfer"
	EventTypeApproval = "token_approval"
	EventTypeMint     = "token_mint"

	AttributeKeyDenom   = "denom"
	AttributeKeyFrom    = "from"
	AttributeKeyTo      = "to"
	AttributeKeyOwner   = "owner"
	AttributeKeySpender = "spender"
	AttributeKeyAmount  = "amount"
)
