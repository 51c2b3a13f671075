package api

import (
	"net/http"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/gin-gonic/gin"

	tokentypes "github.com/paw-chain/amm/x/token/types"
)

// handleGetTokenBalance returns ?owner's balance of ?denom
func (s *Server) handleGetTokenBalance(c *gin.Context) {
	denom := c.Query("denom")
	owner, err := sdk.AccAddressFromBech32(c.Query("owner"))
	if err != nil {
		badRequest(c, "Invalid owner address", err)
		return
	}

	var balance math.Uint
	_ = s.app.Query(func(ctx sdk.Context) error {
		balance = s.app.TokenKeeper.BalanceOf(ctx, denom, owner)
		return nil
	})
	c.JSON(http.StatusOK, gin.H{"denom": denom, "owner": owner.String(), "amount": balance})
}

// handleGetAllowance returns how much ?spender may move of ?owner's ?denom
func (s *Server) handleGetAllowance(c *gin.Context) {
	denom := c.Query("denom")
	owner, err := sdk.AccAddressFromBech32(c.Query("owner"))
	if err != nil {
		badRequest(c, "Invalid owner address", err)
		return
	}
	spender, err := sdk.AccAddressFromBech32(c.Query("spender"))
	if err != nil {
		badRequest(c, "Invalid spender address", err)
		return
	}

	var allowance math.Uint
	_ = s.app.Query(func(ctx sdk.Context) error {
		allowance = s.app.TokenKeeper.Allowance(ctx, denom, owner, spender)
		return nil
	})
	c.JSON(http.StatusOK, gin.H{"denom": denom, "owner": owner.String(), "spender": spender.String(), "amount": allowance})
}

// handleMint credits new tokens
func (s *Server) handleMint(c *gin.Context) {
	var req MintRequest
	if err := ValidateAndBindJSON(c, &req); err != nil {
		badRequest(c, "Invalid request", err)
		return
	}
	amount, err := ParseAmount("amount", req.Amount)
	if err != nil {
		badRequest(c, "Invalid amount", err)
		return
	}
	s.deliver(c, http.StatusOK, &tokentypes.MsgMint{Sender: req.Sender, To: req.To, Denom: req.Denom, Amount: amount})
}

// handleTransfer moves tokens between accounts
func (s *Server) handleTransfer(c *gin.Context) {
	var req TransferRequest
	if err := ValidateAndBindJSON(c, &req); err != nil {
		badRequest(c, "Invalid request", err)
		return
	}
	amount, err := ParseAmount("amount", req.Amount)
	if err != nil {
		badRequest(c, "Invalid amount", err)
		return
	}
	s.deliver(c, http.StatusOK, &tokentypes.MsgTransfer{Sender: req.Sender, To: req.To, Denom: req.Denom, Amount: amount})
}

// handleApprove sets an allowance
func (s *Server) handleApprove(c *gin.Context) {
	var req ApproveRequest
	if err := ValidateAndBindJSON(c, &req); err != nil {
		badRequest(c, "Invalid request", err)
		return
	}
	amount, err := ParseAmount("amount", req.Amount)
	if err != nil {
		badRequest(c, "Invalid amount", err)
		return
	}
	s.deliver(c, http.StatusOK, &tokentypes.MsgApprove{Sender: req.Sender, Spender: req.Spender, Denom: req.Denom, Amount: amount})
}
