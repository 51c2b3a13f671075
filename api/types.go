package api

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	ammtypes "github.com/paw-chain/amm/x/amm/types"
)

// Amounts travel as decimal strings so 128-bit values survive JSON clients.

// ==================== Pool Types ====================

// CreatePoolRequest opens a pool funded by Creator
type CreatePoolRequest struct {
	Creator string `json:"creator" binding:"required"`
	Token0  string `json:"token_0" binding:"required"`
	Amount0 string `json:"amount_0" binding:"required"`
	Token1  string `json:"token_1" binding:"required"`
	Amount1 string `json:"amount_1" binding:"required"`
	Fee     uint32 `json:"fee"`
}

// AddLiquidityRequest deposits into the pool named in the path
type AddLiquidityRequest struct {
	Provider string `json:"provider" binding:"required"`
	Amount0  string `json:"amount_0" binding:"required"`
	Amount1  string `json:"amount_1" binding:"required"`
}

// PoolsResponse lists a page of pools
type PoolsResponse struct {
	Pools       []ammtypes.Pool `json:"pools"`
	PoolCounter uint32          `json:"pool_counter"`
	NextKey     []byte          `json:"next_key,omitempty"`
	Total       uint64          `json:"total,omitempty"`
}

// ==================== Swap Types ====================

// SwapRequest routes AmountIn of TokenIn through Route
type SwapRequest struct {
	Trader       string   `json:"trader" binding:"required"`
	TokenIn      string   `json:"token_in" binding:"required"`
	TokenOut     string   `json:"token_out" binding:"required"`
	AmountIn     string   `json:"amount_in" binding:"required"`
	MinAmountOut string   `json:"min_amount_out"`
	Route        []uint32 `json:"route"`
}

// ==================== Single Pool Types ====================

// CreateSinglePoolRequest initializes the single pool
type CreateSinglePoolRequest struct {
	Creator  string `json:"creator" binding:"required"`
	Balance0 string `json:"balance_0" binding:"required"`
	Balance1 string `json:"balance_1" binding:"required"`
	Holding  string `json:"holding" binding:"required"`
}

// SwapSingleRequest swaps ledger balance at IndexIn
type SwapSingleRequest struct {
	Sender   string `json:"sender" binding:"required"`
	IndexIn  uint32 `json:"index_in"`
	AmountIn string `json:"amount_in" binding:"required"`
}

// ==================== Token Types ====================

// MintRequest creates tokens for To
type MintRequest struct {
	Sender string `json:"sender" binding:"required"`
	To     string `json:"to" binding:"required"`
	Denom  string `json:"denom" binding:"required"`
	Amount string `json:"amount" binding:"required"`
}

// TransferRequest moves Sender's tokens to To
type TransferRequest struct {
	Sender string `json:"sender" binding:"required"`
	To     string `json:"to" binding:"required"`
	Denom  string `json:"denom" binding:"required"`
	Amount string `json:"amount" binding:"required"`
}

// ApproveRequest sets Spender's allowance over Sender's tokens
type ApproveRequest struct {
	Sender  string `json:"sender" binding:"required"`
	Spender string `json:"spender" binding:"required"`
	Denom   string `json:"denom" binding:"required"`
	Amount  string `json:"amount" binding:"required"`
}

// ==================== Common Types ====================

// TxResponse reports a committed message
type TxResponse struct {
	Height int64       `json:"height"`
	Result interface{} `json:"result"`
	Events sdk.Events  `json:"events"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	Codespace string `json:"codespace,omitempty"`
	ABCICode  uint32 `json:"abci_code,omitempty"`
	Details   string `json:"details,omitempty"`
}
