package types

// Event types for the AMM module
const (
	EventTypePoolCreated    = "pool_created"
	EventTypeLiquidityAdded = "liquidity_added"
	EventTypeSwapped        = "swapped"
	EventTypeSingleSwapped  = "single_swapped"
	EventTypeSinglePoolInit = "single_pool_created"
)

// Event attribute keys
const (
	AttributeKeyPoolID    = "pool_id"
	AttributeKeyCreator   = "creator"
	AttributeKeyProvider  = "provider"
	AttributeKeyWho       = "who"
	AttributeKeyToken0    = "token_0"
	AttributeKeyToken1    = "token_1"
	AttributeKeyAmount0   = "amount_0"
	AttributeKeyAmount1   = "amount_1"
	AttributeKeyFee       = "fee"
	AttributeKeyShares    = "shares"
	AttributeKeyTokenIn   = "token_in"
	AttributeKeyTokenOut  = "token_out"
	AttributeKeyAmountIn  = "amount_in"
	AttributeKeyAmountOut = "amount_out"
	AttributeKeyIndexIn   = "index_in"
	AttributeKeyRoute     = "route"
	AttributeKeyHolding   = "holding"
)
