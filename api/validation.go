package api

import (
	"fmt"
	"strconv"
	"strings"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"

	ammtypes "github.com/paw-chain/amm/x/amm/types"
)

// Validation constants
const (
	MaxRequestSize     = 1 << 20 // 1 MB
	MaxAmountLength    = 39      // digits in 2^128 - 1
	MaxAddressLength   = 100
	MaxRequestIDLength = 128
)

// ValidateAddress validates a bech32 account address
func ValidateAddress(address string) error {
	if address == "" {
		return fmt.Errorf("address is required")
	}
	if len(address) > MaxAddressLength {
		return fmt.Errorf("address too long")
	}
	if _, err := sdk.AccAddressFromBech32(address); err != nil {
		return fmt.Errorf("invalid address: %w", err)
	}
	return nil
}

// ParseAmount parses a non-negative integer amount string
func ParseAmount(field, amount string) (math.Uint, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return math.Uint{}, fmt.Errorf("%s is required", field)
	}
	if len(amount) > MaxAmountLength {
		return math.Uint{}, fmt.Errorf("%s too long", field)
	}
	for _, r := range amount {
		if r < '0' || r > '9' {
			return math.Uint{}, fmt.Errorf("%s must be a non-negative integer", field)
		}
	}
	value, err := math.ParseUint(amount)
	if err != nil {
		return math.Uint{}, fmt.Errorf("invalid %s: %w", field, err)
	}
	return value, nil
}

// ParsePoolID parses a pool id path parameter
func ParsePoolID(poolID string) (uint32, error) {
	id, err := strconv.ParseUint(poolID, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid pool ID %q", poolID)
	}
	return uint32(id), nil
}

// ParseRoute parses a comma separated list of pool ids
func ParseRoute(route string) ([]uint32, error) {
	if route == "" {
		return nil, nil
	}
	parts := strings.Split(route, ",")
	if len(parts) > ammtypes.MaxRouteHops {
		return nil, fmt.Errorf("route longer than %d hops", ammtypes.MaxRouteHops)
	}
	ids := make([]uint32, 0, len(parts))
	for _, part := range parts {
		id, err := ParsePoolID(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// ParseOptionalInt reads an integer query parameter, returning def when absent
func ParseOptionalInt(c *gin.Context, key string, def int) (int, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return def, nil
	}
	value, err := cast.ToIntE(raw)
	if err != nil || value < 0 {
		return 0, fmt.Errorf("invalid %s %q", key, raw)
	}
	return value, nil
}

// ValidateAndBindJSON validates and binds JSON with size limit
func ValidateAndBindJSON(c *gin.Context, obj interface{}) error {
	if c.Request.ContentLength > MaxRequestSize {
		return fmt.Errorf("request body too large (max %d bytes)", MaxRequestSize)
	}
	if err := c.ShouldBindJSON(obj); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}
