package cmd

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/query"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/paw-chain/amm/api"
	"github.com/paw-chain/amm/app"
	ammtypes "github.com/paw-chain/amm/x/amm/types"
)

const (
	flagLimit   = "limit"
	flagOffset  = "offset"
	flagMaxHops = "max-hops"
)

func queryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "query",
		Aliases:                    []string{"q"},
		Short:                      "Querying subcommands",
		SuggestionsMinimumDistance: 2,
		RunE:                       validateCmd,
	}

	cmd.AddCommand(
		CmdQueryPool(),
		CmdQueryPools(),
		CmdQuerySinglePool(),
		CmdQueryLedger(),
		CmdQueryQuote(),
		CmdQueryRoutes(),
		CmdQueryBalance(),
		CmdQueryAllowance(),
		CmdQueryModuleAddress(),
		CmdQueryInvariants(),
	)

	return cmd
}

// runQuery evaluates fn against the latest committed state and prints its result.
func runQuery(cmd *cobra.Command, fn func(ctx sdk.Context, application *app.App) (interface{}, error)) error {
	return withApp(cmd, func(_ *nodeContext, application *app.App) error {
		var res interface{}
		err := application.Query(func(ctx sdk.Context) error {
			var qerr error
			res, qerr = fn(ctx, application)
			return qerr
		})
		if err != nil {
			return err
		}
		return printJSON(cmd, res)
	})
}

// CmdQueryPool shows one pool
func CmdQueryPool() *cobra.Command {
	return &cobra.Command{
		Use:   "pool [pool-id]",
		Short: "Show a pool by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			poolID, err := api.ParsePoolID(args[0])
			if err != nil {
				return err
			}
			return runQuery(cmd, func(ctx sdk.Context, application *app.App) (interface{}, error) {
				return application.QueryServer().Pool(ctx, &ammtypes.QueryPoolRequest{PoolId: poolID})
			})
		},
	}
}

// CmdQueryPools lists pools in id order
func CmdQueryPools() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pools",
		Short: "List pools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			limit, _ := cmd.Flags().GetUint64(flagLimit)
			offset, _ := cmd.Flags().GetUint64(flagOffset)
			req := &ammtypes.QueryPoolsRequest{
				Pagination: &query.PageRequest{Limit: limit, Offset: offset},
			}
			return runQuery(cmd, func(ctx sdk.Context, application *app.App) (interface{}, error) {
				return application.QueryServer().Pools(ctx, req)
			})
		},
	}

	cmd.Flags().Uint64(flagLimit, 100, "Maximum number of pools to return")
	cmd.Flags().Uint64(flagOffset, 0, "Number of pools to skip")

	return cmd
}

// CmdQuerySinglePool shows the single pool
func CmdQuerySinglePool() *cobra.Command {
	return &cobra.Command{
		Use:   "single-pool",
		Short: "Show the single pool",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runQuery(cmd, func(ctx sdk.Context, application *app.App) (interface{}, error) {
				return application.QueryServer().SinglePool(ctx, &ammtypes.QuerySinglePoolRequest{})
			})
		},
	}
}

// CmdQueryLedger shows one ledger entry of the single pool
func CmdQueryLedger() *cobra.Command {
	return &cobra.Command{
		Use:   "ledger [account] [index]",
		Short: "Show an account's single-pool ledger balance at index 0 or 1",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := resolveAddress(cmd, args[0])
			if err != nil {
				return err
			}
			index, err := cast.ToUint32E(args[1])
			if err != nil {
				return fmt.Errorf("invalid index %q: %w", args[1], err)
			}
			return runQuery(cmd, func(ctx sdk.Context, application *app.App) (interface{}, error) {
				return application.QueryServer().LedgerBalance(ctx, &ammtypes.QueryLedgerBalanceRequest{Account: account, Index: index})
			})
		},
	}
}

// CmdQueryQuote simulates a swap without committing it
func CmdQueryQuote() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "quote [token-in] [token-out] [amount-in]",
		Aliases: []string{"simulate"},
		Short:   "Simulate a swap along --route, or along the best route when omitted",
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			amountIn, err := api.ParseAmount("amount-in", args[2])
			if err != nil {
				return err
			}
			rawRoute, _ := cmd.Flags().GetString(flagRoute)
			route, err := api.ParseRoute(rawRoute)
			if err != nil {
				return err
			}
			req := &ammtypes.QueryQuoteRequest{TokenIn: args[0], TokenOut: args[1], AmountIn: amountIn, Route: route}
			return runQuery(cmd, func(ctx sdk.Context, application *app.App) (interface{}, error) {
				return application.QueryServer().Quote(ctx, req)
			})
		},
	}

	cmd.Flags().String(flagRoute, "", "Comma separated pool ids, e.g. 0,3")

	return cmd
}

// CmdQueryRoutes lists candidate routes between two tokens
func CmdQueryRoutes() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "routes [token-in] [token-out]",
		Short: "List routes between two tokens, shortest first",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			maxHops, _ := cmd.Flags().GetInt(flagMaxHops)
			req := &ammtypes.QueryRoutesRequest{TokenIn: args[0], TokenOut: args[1], MaxHops: maxHops}
			return runQuery(cmd, func(ctx sdk.Context, application *app.App) (interface{}, error) {
				return application.QueryServer().Routes(ctx, req)
			})
		},
	}

	cmd.Flags().Int(flagMaxHops, ammtypes.MaxRouteHops, "Maximum number of hops per route")

	return cmd
}

// CmdQueryBalance shows a token balance
func CmdQueryBalance() *cobra.Command {
	return &cobra.Command{
		Use:   "balance [denom] [owner]",
		Short: "Show an account's token balance",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := resolveAccAddress(cmd, args[1])
			if err != nil {
				return err
			}
			return runQuery(cmd, func(ctx sdk.Context, application *app.App) (interface{}, error) {
				return tokenAmount{Denom: args[0], Amount: application.TokenKeeper.BalanceOf(ctx, args[0], owner)}, nil
			})
		},
	}
}

// CmdQueryAllowance shows how much spender may move on behalf of owner
func CmdQueryAllowance() *cobra.Command {
	return &cobra.Command{
		Use:   "allowance [denom] [owner] [spender]",
		Short: "Show a token allowance",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := resolveAccAddress(cmd, args[1])
			if err != nil {
				return err
			}
			spender, err := resolveAccAddress(cmd, args[2])
			if err != nil {
				return err
			}
			return runQuery(cmd, func(ctx sdk.Context, application *app.App) (interface{}, error) {
				return tokenAmount{Denom: args[0], Amount: application.TokenKeeper.Allowance(ctx, args[0], owner, spender)}, nil
			})
		},
	}
}

// CmdQueryModuleAddress shows the custody account to approve before depositing
func CmdQueryModuleAddress() *cobra.Command {
	return &cobra.Command{
		Use:   "module-address",
		Short: "Show the AMM module custody address",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runQuery(cmd, func(_ sdk.Context, application *app.App) (interface{}, error) {
				return map[string]string{"address": application.ModuleAddress().String()}, nil
			})
		},
	}
}

// CmdQueryInvariants runs every registered invariant against the latest state
func CmdQueryInvariants() *cobra.Command {
	return &cobra.Command{
		Use:   "invariants",
		Short: "Check pool reserves, pool counter, module balance and single pool invariants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(_ *nodeContext, application *app.App) error {
				results, err := application.CheckInvariants()
				if results != nil {
					if perr := printJSON(cmd, results); perr != nil {
						return perr
					}
				}
				return err
			})
		},
	}
}

type tokenAmount struct {
	Denom  string    `json:"denom"`
	Amount math.Uint `json:"amount"`
}

func resolveAccAddress(cmd *cobra.Command, value string) (sdk.AccAddress, error) {
	addr, err := resolveAddress(cmd, value)
	if err != nil {
		return nil, err
	}
	return sdk.AccAddressFromBech32(addr)
}
