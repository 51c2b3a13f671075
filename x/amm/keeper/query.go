package keeper

import (
	"context"
	"encoding/json"
	"fmt"

	"cosmossdk.io/store/prefix"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/cosmos/cosmos-sdk/types/query"

	"github.com/paw-chain/amm/x/amm/types"
)

type queryServer struct {
	Keeper
}

const (
	defaultPaginationLimit = 100
	maxPaginationLimit     = 1000
)

// NewQueryServerImpl returns an implementation of the amm QueryServer interface
func NewQueryServerImpl(keeper Keeper) types.QueryServer {
	return &queryServer{Keeper: keeper}
}

var _ types.QueryServer = queryServer{}

// Pool returns a specific pool by ID
func (qs queryServer) Pool(goCtx context.Context, req *types.QueryPoolRequest) (*types.QueryPoolResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}

	pool, err := qs.Keeper.GetPool(goCtx, req.PoolId)
	if err != nil {
		return nil, err
	}
	return &types.QueryPoolResponse{Pool: pool}, nil
}

// Pools returns pools in id order with pagination
func (qs queryServer) Pools(goCtx context.Context, req *types.QueryPoolsRequest) (*types.QueryPoolsResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}

	pageReq := req.Pagination
	if pageReq == nil {
		pageReq = &query.PageRequest{}
	}
	if pageReq.Limit == 0 {
		pageReq.Limit = defaultPaginationLimit
	}
	if pageReq.Limit > maxPaginationLimit {
		pageReq.Limit = maxPaginationLimit
	}

	poolStore := prefix.NewStore(qs.getStore(goCtx), PoolKeyPrefix)

	var pools []types.Pool
	pageRes, err := query.Paginate(poolStore, pageReq, func(key []byte, value []byte) error {
		var pool types.Pool
		if err := json.Unmarshal(value, &pool); err != nil {
			return err
		}
		pools = append(pools, pool)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("Pools: paginate: %w", err)
	}

	return &types.QueryPoolsResponse{
		Pools:       pools,
		PoolCounter: qs.GetPoolCounter(goCtx),
		Pagination:  pageRes,
	}, nil
}

// SinglePool returns the single-pool reserves
func (qs queryServer) SinglePool(goCtx context.Context, req *types.QuerySinglePoolRequest) (*types.QuerySinglePoolResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}

	pool, exists, err := qs.GetSinglePool(goCtx)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, types.ErrWrongIndex.Wrap("single pool not created")
	}
	return &types.QuerySinglePoolResponse{SinglePool: pool}, nil
}

// LedgerBalance returns one single-pool ledger balance
func (qs queryServer) LedgerBalance(goCtx context.Context, req *types.QueryLedgerBalanceRequest) (*types.QueryLedgerBalanceResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}
	account, err := sdk.AccAddressFromBech32(req.Account)
	if err != nil {
		return nil, sdkerrors.ErrInvalidAddress.Wrapf("invalid account: %s", err)
	}
	if req.Index > 1 {
		return nil, types.ErrWrongIndex.Wrapf("asset index %d", req.Index)
	}

	return &types.QueryLedgerBalanceResponse{
		Amount: qs.GetLedgerBalance(goCtx, account, req.Index),
	}, nil
}

// Quote simulates a swap without changing state
func (qs queryServer) Quote(goCtx context.Context, req *types.QueryQuoteRequest) (*types.QueryQuoteResponse, error) {
	if req == nil || req.AmountIn.IsNil() {
		return nil, sdkerrors.ErrInvalidRequest
	}

	var (
		quote SwapQuote
		err   error
	)
	if len(req.Route) == 0 {
		quote, err = qs.FindBestRoute(goCtx, req.TokenIn, req.TokenOut, req.AmountIn, types.MaxRouteHops)
	} else {
		quote, err = qs.SimulateSwap(goCtx, req.TokenIn, req.AmountIn, req.Route)
	}
	if err != nil {
		return nil, err
	}

	return &types.QueryQuoteResponse{
		Route:      quote.Route,
		TokenOut:   quote.TokenOut,
		AmountOut:  quote.AmountOut,
		HopAmounts: quote.HopAmounts,
	}, nil
}

// Routes lists candidate routes between two tokens
func (qs queryServer) Routes(goCtx context.Context, req *types.QueryRoutesRequest) (*types.QueryRoutesResponse, error) {
	if req == nil {
		return nil, sdkerrors.ErrInvalidRequest
	}

	routes, err := qs.FindRoutes(goCtx, req.TokenIn, req.TokenOut, req.MaxHops)
	if err != nil {
		return nil, err
	}
	return &types.QueryRoutesResponse{Routes: routes}, nil
}
