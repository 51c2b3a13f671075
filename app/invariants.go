package app

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// InvariantResult is the outcome of one registered invariant.
type InvariantResult struct {
	Route   string `json:"route"`
	Broken  bool   `json:"broken"`
	Message string `json:"message,omitempty"`
}

type invariantRoute struct {
	route     string
	invariant sdk.Invariant
}

// invariantRegistry collects module invariants in registration order.
type invariantRegistry struct {
	routes []invariantRoute
}

var _ sdk.InvariantRegistry = (*invariantRegistry)(nil)

// RegisterRoute implements sdk.InvariantRegistry
func (r *invariantRegistry) RegisterRoute(moduleName, route string, invar sdk.Invariant) {
	r.routes = append(r.routes, invariantRoute{
		route:     fmt.Sprintf("%s/%s", moduleName, route),
		invariant: invar,
	})
}

// CheckInvariants evaluates every registered invariant against the latest state.
// It returns all results and an error naming the first broken route.
func (app *App) CheckInvariants() ([]InvariantResult, error) {
	results := make([]InvariantResult, 0, len(app.invariants.routes))
	err := app.Query(func(ctx sdk.Context) error {
		for _, r := range app.invariants.routes {
			msg, broken := r.invariant(ctx)
			results = append(results, InvariantResult{Route: r.route, Broken: broken, Message: msg})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, res := range results {
		if res.Broken {
			app.logger.Error("invariant broken", "route", res.Route, "msg", res.Message)
			return results, fmt.Errorf("invariant broken: %s: %s", res.Route, res.Message)
		}
	}
	return results, nil
}
