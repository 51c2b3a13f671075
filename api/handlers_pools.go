package api

import (
	"net/http"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/query"
	"github.com/gin-gonic/gin"

	ammtypes "github.com/paw-chain/amm/x/amm/types"
)

const (
	defaultPoolsLimit = 100
	maxPoolsLimit     = 1000
)

// deliver executes msg as one committed call and renders the result.
func (s *Server) deliver(c *gin.Context, status int, msg interface{}) {
	res, events, err := s.app.DeliverMsg(msg)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(status, TxResponse{
		Height: s.app.Height(),
		Result: res,
		Events: events,
	})
}

// handleGetModuleAddress returns the custody account deposits must approve
func (s *Server) handleGetModuleAddress(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"address": s.app.ModuleAddress().String()})
}

// handleGetPools returns a page of pools in id order
func (s *Server) handleGetPools(c *gin.Context) {
	limit, err := ParseOptionalInt(c, "limit", defaultPoolsLimit)
	if err != nil {
		badRequest(c, "Invalid limit", err)
		return
	}
	if limit > maxPoolsLimit {
		limit = maxPoolsLimit
	}
	offset, err := ParseOptionalInt(c, "offset", 0)
	if err != nil {
		badRequest(c, "Invalid offset", err)
		return
	}

	var res *ammtypes.QueryPoolsResponse
	err = s.app.Query(func(ctx sdk.Context) error {
		var qerr error
		res, qerr = s.app.QueryServer().Pools(ctx, &ammtypes.QueryPoolsRequest{
			Pagination: &query.PageRequest{Offset: uint64(offset), Limit: uint64(limit), CountTotal: true},
		})
		return qerr
	})
	if err != nil {
		s.writeError(c, err)
		return
	}

	pools := res.Pools
	if pools == nil {
		pools = []ammtypes.Pool{}
	}
	out := PoolsResponse{Pools: pools, PoolCounter: res.PoolCounter}
	if res.Pagination != nil {
		out.NextKey = res.Pagination.NextKey
		out.Total = res.Pagination.Total
	}
	c.JSON(http.StatusOK, out)
}

// handleGetPool returns a specific pool
func (s *Server) handleGetPool(c *gin.Context) {
	poolID, err := ParsePoolID(c.Param("pool_id"))
	if err != nil {
		badRequest(c, "Invalid pool ID", err)
		return
	}

	var res *ammtypes.QueryPoolResponse
	err = s.app.Query(func(ctx sdk.Context) error {
		var qerr error
		res, qerr = s.app.QueryServer().Pool(ctx, &ammtypes.QueryPoolRequest{PoolId: poolID})
		return qerr
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res.Pool)
}

// handleCreatePool opens a new pool
func (s *Server) handleCreatePool(c *gin.Context) {
	var req CreatePoolRequest
	if err := ValidateAndBindJSON(c, &req); err != nil {
		badRequest(c, "Invalid request", err)
		return
	}
	if err := ValidateAddress(req.Creator); err != nil {
		badRequest(c, "Invalid creator address", err)
		return
	}
	amount0, err := ParseAmount("amount_0", req.Amount0)
	if err != nil {
		badRequest(c, "Invalid amount", err)
		return
	}
	amount1, err := ParseAmount("amount_1", req.Amount1)
	if err != nil {
		badRequest(c, "Invalid amount", err)
		return
	}

	s.deliver(c, http.StatusCreated, ammtypes.NewMsgCreatePool(req.Creator, req.Token0, amount0, req.Token1, amount1, req.Fee))
}

// handleAddLiquidity adds liquidity to a pool
func (s *Server) handleAddLiquidity(c *gin.Context) {
	poolID, err := ParsePoolID(c.Param("pool_id"))
	if err != nil {
		badRequest(c, "Invalid pool ID", err)
		return
	}

	var req AddLiquidityRequest
	if err := ValidateAndBindJSON(c, &req); err != nil {
		badRequest(c, "Invalid request", err)
		return
	}
	if err := ValidateAddress(req.Provider); err != nil {
		badRequest(c, "Invalid provider address", err)
		return
	}
	amount0, err := ParseAmount("amount_0", req.Amount0)
	if err != nil {
		badRequest(c, "Invalid amount", err)
		return
	}
	amount1, err := ParseAmount("amount_1", req.Amount1)
	if err != nil {
		badRequest(c, "Invalid amount", err)
		return
	}

	s.deliver(c, http.StatusOK, ammtypes.NewMsgAddLiquidity(req.Provider, poolID, amount0, amount1))
}
