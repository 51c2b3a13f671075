package types

import (
	"context"

	"cosmossdk.io/math"
	"github.com/cosmos/cosmos-sdk/types/query"
)

// QueryServer is the read-only surface of the AMM module.
type QueryServer interface {
	Pool(context.Context, *QueryPoolRequest) (*QueryPoolResponse, error)
	Pools(context.Context, *QueryPoolsRequest) (*QueryPoolsResponse, error)
	SinglePool(context.Context, *QuerySinglePoolRequest) (*QuerySinglePoolResponse, error)
	LedgerBalance(context.Context, *QueryLedgerBalanceRequest) (*QueryLedgerBalanceResponse, error)
	Quote(context.Context, *QueryQuoteRequest) (*QueryQuoteResponse, error)
	Routes(context.Context, *QueryRoutesRequest) (*QueryRoutesResponse, error)
}

type QueryPoolRequest struct {
	PoolId uint32 `json:"pool_id"`
}

type QueryPoolResponse struct {
	Pool Pool `json:"pool"`
}

type QueryPoolsRequest struct {
	Pagination *query.PageRequest `json:"pagination,omitempty"`
}

type QueryPoolsResponse struct {
	Pools       []Pool              `json:"pools"`
	PoolCounter uint32              `json:"pool_counter"`
	Pagination  *query.PageResponse `json:"pagination,omitempty"`
}

type QuerySinglePoolRequest struct{}

type QuerySinglePoolResponse struct {
	SinglePool SinglePool `json:"single_pool"`
}

type QueryLedgerBalanceRequest struct {
	Account string `json:"account"`
	Index   uint32 `json:"index"`
}

type QueryLedgerBalanceResponse struct {
	Amount math.Uint `json:"amount"`
}

// QueryQuoteRequest prices a route. An empty route asks for the best
// discovered route to TokenOut.
type QueryQuoteRequest struct {
	TokenIn  string    `json:"token_in"`
	TokenOut string    `json:"token_out"`
	AmountIn math.Uint `json:"amount_in"`
	Route    []uint32  `json:"route"`
}

type QueryQuoteResponse struct {
	Route      []uint32    `json:"route"`
	TokenOut   string      `json:"token_out"`
	AmountOut  math.Uint   `json:"amount_out"`
	HopAmounts []math.Uint `json:"hop_amounts"`
}

type QueryRoutesRequest struct {
	TokenIn  string `json:"token_in"`
	TokenOut string `json:"token_out"`
	MaxHops  int    `json:"max_hops"`
}

type QueryRoutesResponse struct {
	Routes [][]uint32 `json:"routes"`
}
