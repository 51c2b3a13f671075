package keeper

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/amm/x/amm/types"
)

// Route finding constants - bounded to prevent resource exhaustion
const (
	MaxRouteSearchPools = 100 // Maximum pools to consider in route search
	MaxRouteCandidates  = 10  // Maximum candidate routes to evaluate
)

// SwapQuote is the result of pricing a route without executing it.
type SwapQuote struct {
	Route      []uint32     `json:"route"`
	TokenOut   string       `json:"token_out"`
	AmountIn   math.Uint    `json:"amount_in"`
	AmountOut  math.Uint    `json:"amount_out"`
	HopAmounts []math.Uint  `json:"hop_amounts"`
	Pools      []types.Pool `json:"pools"`
}

// Swap pulls amountIn of tokenIn from the trader, swaps it through every pool
// of route in order and pays the final amount out in tokenOut. Each hop's pool
// is persisted as soon as it is priced. The slippage bound is checked before
// the output token, and both before the payout. Callers must run Swap in a
// branched store (see msgServer) so a late failure discards earlier hops.
func (k Keeper) Swap(
	ctx context.Context,
	trader sdk.AccAddress,
	tokenIn, tokenOut string,
	amountIn, minAmountOut math.Uint,
	route []uint32,
) (amountOut math.Uint, err error) {
	start := time.Now()
	defer func() {
		k.metrics.SwapLatency.Observe(time.Since(start).Seconds())
		status := "success"
		if err != nil {
			status = "failed"
		}
		k.metrics.SwapsTotal.WithLabelValues(tokenIn, tokenOut, status).Inc()
	}()

	if !types.FitsUint128(amountIn) || !types.FitsUint128(minAmountOut) {
		return math.Uint{}, types.ErrMath.Wrap("amount exceeds 128 bits")
	}

	moduleAddr := k.GetModuleAddress()
	if err := k.tokenKeeper.TransferFrom(ctx, tokenIn, moduleAddr, trader, moduleAddr, amountIn, nil); err != nil {
		return math.Uint{}, types.ErrPSP22.Wrapf("transfer_from %s %s: %v", amountIn, tokenIn, err)
	}

	currentToken, currentAmount := tokenIn, amountIn
	for i, poolID := range route {
		currentToken, currentAmount, err = k.swapInPool(ctx, poolID, currentToken, currentAmount)
		if err != nil {
			return math.Uint{}, errorsmod.Wrapf(err, "hop %d", i)
		}
	}

	if currentAmount.LT(minAmountOut) {
		return math.Uint{}, types.ErrReceivedTooLowAmount.Wrapf("received %s, minimum %s", currentAmount, minAmountOut)
	}
	if currentToken != tokenOut {
		return math.Uint{}, types.ErrWrongSwapArgs.Wrapf("route ends in %s, requested %s", currentToken, tokenOut)
	}

	if err := k.tokenKeeper.Transfer(ctx, tokenOut, moduleAddr, trader, currentAmount, nil); err != nil {
		return math.Uint{}, types.ErrPSP22.Wrapf("transfer %s %s: %v", currentAmount, tokenOut, err)
	}

	k.metrics.RouteHops.Observe(float64(len(route)))
	k.metrics.SwapVolume.WithLabelValues(tokenIn).Add(bigFloat(amountIn))

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeSwapped,
			sdk.NewAttribute(types.AttributeKeyTokenIn, tokenIn),
			sdk.NewAttribute(types.AttributeKeyTokenOut, tokenOut),
			sdk.NewAttribute(types.AttributeKeyAmountIn, amountIn.String()),
			sdk.NewAttribute(types.AttributeKeyAmountOut, currentAmount.String()),
			sdk.NewAttribute(types.AttributeKeyWho, trader.String()),
			sdk.NewAttribute(types.AttributeKeyRoute, FormatRoute(route)),
		),
	)

	return currentAmount, nil
}

// SimulateSwap prices a route against current reserves without writing
// anything. A pool visited twice sees the reserves left by its earlier hop.
func (k Keeper) SimulateSwap(ctx context.Context, tokenIn string, amountIn math.Uint, route []uint32) (SwapQuote, error) {
	if !types.FitsUint128(amountIn) {
		return SwapQuote{}, types.ErrMath.Wrap("amount exceeds 128 bits")
	}

	quote := SwapQuote{
		Route:      route,
		AmountIn:   amountIn,
		HopAmounts: make([]math.Uint, 0, len(route)+1),
		Pools:      make([]types.Pool, 0, len(route)),
	}
	quote.HopAmounts = append(quote.HopAmounts, amountIn)

	// Track simulated pool state
	poolStates := make(map[uint32]types.Pool)

	currentToken, currentAmount := tokenIn, amountIn
	for i, poolID := range route {
		pool, exists := poolStates[poolID]
		if !exists {
			var err error
			pool, err = k.GetPool(ctx, poolID)
			if err != nil {
				return SwapQuote{}, errorsmod.Wrapf(err, "hop %d", i)
			}
		}

		indexIn, ok := pool.IndexOf(currentToken)
		if !ok {
			return SwapQuote{}, types.ErrWrongIndex.Wrapf("hop %d: token %s not in pool %d", i, currentToken, poolID)
		}

		balances, out, err := swapReserves(pool.Balances, uint32(indexIn), currentAmount)
		if err != nil {
			return SwapQuote{}, errorsmod.Wrapf(err, "hop %d", i)
		}
		pool.Balances = balances
		poolStates[poolID] = pool

		currentToken, currentAmount = pool.Tokens[1-indexIn], out
		quote.HopAmounts = append(quote.HopAmounts, out)
		quote.Pools = append(quote.Pools, pool)
	}

	quote.TokenOut = currentToken
	quote.AmountOut = currentAmount
	return quote, nil
}

// tokenGraph represents the pool connectivity graph for route finding
type tokenGraph struct {
	edges map[string][]poolEdge
}

// poolEdge represents a connection between tokens via a pool
type poolEdge struct {
	poolID   uint32
	tokenOut string
}

type routeNode struct {
	token  string
	route  []uint32
	tokens []string
}

// buildTokenGraph builds an adjacency graph from pools.
// Limits to MaxRouteSearchPools for bounded memory usage.
func (k Keeper) buildTokenGraph(ctx context.Context) (*tokenGraph, error) {
	graph := &tokenGraph{edges: make(map[string][]poolEdge)}

	poolCount := 0
	err := k.IteratePools(ctx, func(pool types.Pool) bool {
		poolCount++
		if poolCount > MaxRouteSearchPools {
			return true
		}
		graph.edges[pool.Tokens[0]] = append(graph.edges[pool.Tokens[0]], poolEdge{poolID: pool.Id, tokenOut: pool.Tokens[1]})
		graph.edges[pool.Tokens[1]] = append(graph.edges[pool.Tokens[1]], poolEdge{poolID: pool.Id, tokenOut: pool.Tokens[0]})
		return false
	})
	if err != nil {
		return nil, fmt.Errorf("buildTokenGraph: iterate pools: %w", err)
	}
	return graph, nil
}

// findRoutesWithBFS returns up to MaxRouteCandidates cycle-free routes from
// tokenIn to tokenOut, shorter routes first.
func findRoutesWithBFS(graph *tokenGraph, tokenIn, tokenOut string, maxHops int) [][]uint32 {
	var routes [][]uint32

	queue := []routeNode{{token: tokenIn, tokens: []string{tokenIn}}}
	for len(queue) > 0 && len(routes) < MaxRouteCandidates {
		current := queue[0]
		queue = queue[1:]

		if len(current.route) >= maxHops {
			continue
		}

		for _, edge := range graph.edges[current.token] {
			if containsToken(current.tokens, edge.tokenOut) {
				continue
			}

			next := make([]uint32, len(current.route)+1)
			copy(next, current.route)
			next[len(current.route)] = edge.poolID

			if edge.tokenOut == tokenOut {
				routes = append(routes, next)
				if len(routes) >= MaxRouteCandidates {
					break
				}
				continue
			}

			tokens := make([]string, len(current.tokens)+1)
			copy(tokens, current.tokens)
			tokens[len(current.tokens)] = edge.tokenOut
			queue = append(queue, routeNode{token: edge.tokenOut, route: next, tokens: tokens})
		}
	}
	return routes
}

func containsToken(tokens []string, token string) bool {
	for _, t := range tokens {
		if t == token {
			return true
		}
	}
	return false
}

// FindRoutes returns candidate routes between two tokens up to maxHops pools long.
// maxHops outside 1..MaxRouteHops falls back to MaxRouteHops.
func (k Keeper) FindRoutes(ctx context.Context, tokenIn, tokenOut string, maxHops int) ([][]uint32, error) {
	if maxHops <= 0 || maxHops > types.MaxRouteHops {
		maxHops = types.MaxRouteHops
	}
	if tokenIn == tokenOut {
		return nil, types.ErrEqualTokens.Wrap("tokenIn and tokenOut must be different")
	}

	graph, err := k.buildTokenGraph(ctx)
	if err != nil {
		return nil, fmt.Errorf("FindRoutes: build token graph: %w", err)
	}

	routes := findRoutesWithBFS(graph, tokenIn, tokenOut, maxHops)
	if len(routes) == 0 {
		return nil, types.ErrWrongSwapArgs.Wrapf("no route from %s to %s within %d hops", tokenIn, tokenOut, maxHops)
	}
	return routes, nil
}

// FindBestRoute simulates every candidate route and returns the one with the largest output.
func (k Keeper) FindBestRoute(ctx context.Context, tokenIn, tokenOut string, amountIn math.Uint, maxHops int) (SwapQuote, error) {
	routes, err := k.FindRoutes(ctx, tokenIn, tokenOut, maxHops)
	if err != nil {
		return SwapQuote{}, err
	}

	var (
		best  SwapQuote
		found bool
	)
	for _, route := range routes {
		quote, err := k.SimulateSwap(ctx, tokenIn, amountIn, route)
		if err != nil {
			continue
		}
		if !found || quote.AmountOut.GT(best.AmountOut) {
			best, found = quote, true
		}
	}
	if !found {
		return SwapQuote{}, types.ErrWrongSwapArgs.Wrapf("no viable route from %s to %s", tokenIn, tokenOut)
	}
	return best, nil
}

// FormatRoute renders a route as a comma separated list of pool ids.
func FormatRoute(route []uint32) string {
	parts := make([]string, len(route))
	for i, id := range route {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return strings.Join(parts, ",")
}

func bigFloat(amount math.Uint) float64 {
	f, _ := new(big.Float).SetInt(amount.BigInt()).Float64()
	return f
}
