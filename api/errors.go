package api

import (
	"errors"
	"net/http"

	errorsmod "cosmossdk.io/errors"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/gin-gonic/gin"

	ammtypes "github.com/paw-chain/amm/x/amm/types"
	tokentypes "github.com/paw-chain/amm/x/token/types"
)

// httpStatus maps a module error to the HTTP status returned for it.
func httpStatus(err error) int {
	switch {
	case errors.Is(err, ammtypes.ErrWrongIndex):
		return http.StatusNotFound
	case errors.Is(err, ammtypes.ErrPoolAlreadyExists),
		errors.Is(err, ammtypes.ErrReentrancy):
		return http.StatusConflict
	case errors.Is(err, sdkerrors.ErrInvalidAddress),
		errors.Is(err, sdkerrors.ErrInvalidRequest),
		errors.Is(err, sdkerrors.ErrUnknownRequest),
		errors.Is(err, tokentypes.ErrInvalidAmount),
		errors.Is(err, tokentypes.ErrInvalidDenom):
		return http.StatusBadRequest
	}

	codespace, _, _ := errorsmod.ABCIInfo(err, false)
	switch codespace {
	case ammtypes.ModuleName, tokentypes.ModuleName:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err with its codespace and code. Errors outside the
// registered codespaces are reported as internal without their message.
func (s *Server) writeError(c *gin.Context, err error) {
	status := httpStatus(err)
	codespace, code, msg := errorsmod.ABCIInfo(err, false)

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "path", c.Request.URL.Path, "request_id", c.GetString("request_id"), "err", err)
		c.JSON(status, ErrorResponse{Error: "Internal server error", Code: "INTERNAL_ERROR"})
		return
	}

	c.JSON(status, ErrorResponse{
		Error:     msg,
		Code:      http.StatusText(status),
		Codespace: codespace,
		ABCICode:  code,
	})
}

// badRequest renders a request validation failure
func badRequest(c *gin.Context, message string, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   message,
		Code:    "INVALID_REQUEST",
		Details: err.Error(),
	})
}
