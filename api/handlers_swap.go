package api

import (
	"net/http"
	"strconv"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/gin-gonic/gin"

	ammtypes "github.com/paw-chain/amm/x/amm/types"
)

// handleSwap executes a routed swap
func (s *Server) handleSwap(c *gin.Context) {
	var req SwapRequest
	if err := ValidateAndBindJSON(c, &req); err != nil {
		badRequest(c, "Invalid request", err)
		return
	}
	if err := ValidateAddress(req.Trader); err != nil {
		badRequest(c, "Invalid trader address", err)
		return
	}
	if len(req.Route) > ammtypes.MaxRouteHops {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Route too long", Code: "INVALID_REQUEST"})
		return
	}
	amountIn, err := ParseAmount("amount_in", req.AmountIn)
	if err != nil {
		badRequest(c, "Invalid amount", err)
		return
	}
	minAmountOut := math.ZeroUint()
	if req.MinAmountOut != "" {
		if minAmountOut, err = ParseAmount("min_amount_out", req.MinAmountOut); err != nil {
			badRequest(c, "Invalid amount", err)
			return
		}
	}

	s.deliver(c, http.StatusOK, ammtypes.NewMsgSwap(req.Trader, req.TokenIn, req.TokenOut, amountIn, minAmountOut, req.Route))
}

// handleQuote prices a swap without executing it. Without a route the best
// discovered route is used.
func (s *Server) handleQuote(c *gin.Context) {
	amountIn, err := ParseAmount("amount_in", c.Query("amount_in"))
	if err != nil {
		badRequest(c, "Invalid amount", err)
		return
	}
	route, err := ParseRoute(c.Query("route"))
	if err != nil {
		badRequest(c, "Invalid route", err)
		return
	}

	req := &ammtypes.QueryQuoteRequest{
		TokenIn:  c.Query("token_in"),
		TokenOut: c.Query("token_out"),
		AmountIn: amountIn,
		Route:    route,
	}

	var res *ammtypes.QueryQuoteResponse
	err = s.app.Query(func(ctx sdk.Context) error {
		var qerr error
		res, qerr = s.app.QueryServer().Quote(ctx, req)
		return qerr
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// handleRoutes lists candidate routes between two tokens
func (s *Server) handleRoutes(c *gin.Context) {
	maxHops, err := ParseOptionalInt(c, "max_hops", ammtypes.MaxRouteHops)
	if err != nil {
		badRequest(c, "Invalid max_hops", err)
		return
	}

	var res *ammtypes.QueryRoutesResponse
	err = s.app.Query(func(ctx sdk.Context) error {
		var qerr error
		res, qerr = s.app.QueryServer().Routes(ctx, &ammtypes.QueryRoutesRequest{
			TokenIn:  c.Query("token_in"),
			TokenOut: c.Query("token_out"),
			MaxHops:  maxHops,
		})
		return qerr
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// handleGetSinglePool returns the single-pool reserves
func (s *Server) handleGetSinglePool(c *gin.Context) {
	var res *ammtypes.QuerySinglePoolResponse
	err := s.app.Query(func(ctx sdk.Context) error {
		var qerr error
		res, qerr = s.app.QueryServer().SinglePool(ctx, &ammtypes.QuerySinglePoolRequest{})
		return qerr
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res.SinglePool)
}

// handleGetLedgerBalance returns one single-pool ledger balance
func (s *Server) handleGetLedgerBalance(c *gin.Context) {
	index, err := strconv.ParseUint(c.Param("index"), 10, 32)
	if err != nil {
		badRequest(c, "Invalid index", err)
		return
	}

	var res *ammtypes.QueryLedgerBalanceResponse
	err = s.app.Query(func(ctx sdk.Context) error {
		var qerr error
		res, qerr = s.app.QueryServer().LedgerBalance(ctx, &ammtypes.QueryLedgerBalanceRequest{
			Account: c.Param("account"),
			Index:   uint32(index),
		})
		return qerr
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// handleCreateSinglePool initializes the single pool
func (s *Server) handleCreateSinglePool(c *gin.Context) {
	var req CreateSinglePoolRequest
	if err := ValidateAndBindJSON(c, &req); err != nil {
		badRequest(c, "Invalid request", err)
		return
	}
	if err := ValidateAddress(req.Creator); err != nil {
		badRequest(c, "Invalid creator address", err)
		return
	}

	var amounts [3]math.Uint
	for i, field := range []struct{ name, value string }{
		{"balance_0", req.Balance0},
		{"balance_1", req.Balance1},
		{"holding", req.Holding},
	} {
		amount, err := ParseAmount(field.name, field.value)
		if err != nil {
			badRequest(c, "Invalid amount", err)
			return
		}
		amounts[i] = amount
	}

	s.deliver(c, http.StatusCreated, ammtypes.NewMsgCreateSinglePool(req.Creator, amounts[0], amounts[1], amounts[2]))
}

// handleSwapSingle swaps against the single pool
func (s *Server) handleSwapSingle(c *gin.Context) {
	var req SwapSingleRequest
	if err := ValidateAndBindJSON(c, &req); err != nil {
		badRequest(c, "Invalid request", err)
		return
	}
	if err := ValidateAddress(req.Sender); err != nil {
		badRequest(c, "Invalid sender address", err)
		return
	}
	amountIn, err := ParseAmount("amount_in", req.AmountIn)
	if err != nil {
		badRequest(c, "Invalid amount", err)
		return
	}

	s.deliver(c, http.StatusOK, ammtypes.NewMsgSwapSingle(req.Sender, req.IndexIn, amountIn))
}
