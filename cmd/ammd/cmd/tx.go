package cmd

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/paw-chain/amm/api"
	"github.com/paw-chain/amm/app"
	ammtypes "github.com/paw-chain/amm/x/amm/types"
	tokentypes "github.com/paw-chain/amm/x/token/types"
)

const (
	flagMinAmountOut = "min-amount-out"
	flagRoute        = "route"
)

// txOutput is printed after every committed transaction
type txOutput struct {
	Height int64       `json:"height"`
	Result interface{} `json:"result"`
	Events sdk.Events  `json:"events"`
}

func txCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "tx",
		Short:                      "Transactions subcommands",
		SuggestionsMinimumDistance: 2,
		RunE:                       validateCmd,
	}

	cmd.PersistentFlags().String(FlagFrom, "", "Sender: bech32 address or key name")

	cmd.AddCommand(
		CmdCreateSinglePool(),
		CmdSwapSingle(),
		CmdCreatePool(),
		CmdAddLiquidity(),
		CmdSwap(),
		tokenTxCommand(),
	)

	return cmd
}

// validateCmd rejects unknown subcommands of a command group
func validateCmd(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unknown command %q for %q", args[0], cmd.CommandPath())
	}
	return cmd.Help()
}

// deliverTx commits msg and prints the handler response with its events.
func deliverTx(cmd *cobra.Command, msg interface{}) error {
	return withApp(cmd, func(nc *nodeContext, application *app.App) error {
		res, events, err := application.DeliverMsg(msg)
		if err != nil {
			return err
		}
		nc.Logger.Debug("delivered", "msg", fmt.Sprintf("%T", msg), "height", application.Height())
		return printJSON(cmd, txOutput{Height: application.Height(), Result: res, Events: events})
	})
}

func fromAddress(cmd *cobra.Command) (string, error) {
	from, err := cmd.Flags().GetString(FlagFrom)
	if err != nil {
		return "", err
	}
	if from == "" {
		return "", fmt.Errorf("--%s is required", FlagFrom)
	}
	return resolveAddress(cmd, from)
}

// CmdCreateSinglePool initializes the ledger-backed single pool
func CmdCreateSinglePool() *cobra.Command {
	return &cobra.Command{
		Use:   "create-single-pool [balance0] [balance1] [holding]",
		Short: "Initialize the single pool and its per-account ledger bound",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			creator, err := fromAddress(cmd)
			if err != nil {
				return err
			}
			balance0, err := api.ParseAmount("balance0", args[0])
			if err != nil {
				return err
			}
			balance1, err := api.ParseAmount("balance1", args[1])
			if err != nil {
				return err
			}
			holding, err := api.ParseAmount("holding", args[2])
			if err != nil {
				return err
			}
			return deliverTx(cmd, ammtypes.NewMsgCreateSinglePool(creator, balance0, balance1, holding))
		},
	}
}

// CmdSwapSingle swaps between the two ledger assets of the single pool
func CmdSwapSingle() *cobra.Command {
	return &cobra.Command{
		Use:   "swap-single [index-in] [amount-in]",
		Short: "Swap ledger asset index-in (0 or 1) for the other asset",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sender, err := fromAddress(cmd)
			if err != nil {
				return err
			}
			indexIn, err := cast.ToUint32E(args[0])
			if err != nil {
				return fmt.Errorf("invalid index %q: %w", args[0], err)
			}
			amountIn, err := api.ParseAmount("amount-in", args[1])
			if err != nil {
				return err
			}
			return deliverTx(cmd, ammtypes.NewMsgSwapSingle(sender, indexIn, amountIn))
		},
	}
}

// CmdCreatePool opens a new two-token pool
func CmdCreatePool() *cobra.Command {
	return &cobra.Command{
		Use:   "create-pool [token0] [amount0] [token1] [amount1] [fee]",
		Short: "Create a pool funded from the sender's approved balances",
		Long: `Create a two-token pool. The sender must have approved the AMM module account
(spender "amm") for both amounts. Fee is in units of 1/10000 and must be below 10000.`,
		Args: cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			creator, err := fromAddress(cmd)
			if err != nil {
				return err
			}
			amount0, err := api.ParseAmount("amount0", args[1])
			if err != nil {
				return err
			}
			amount1, err := api.ParseAmount("amount1", args[3])
			if err != nil {
				return err
			}
			fee, err := cast.ToUint32E(args[4])
			if err != nil {
				return fmt.Errorf("invalid fee %q: %w", args[4], err)
			}
			return deliverTx(cmd, ammtypes.NewMsgCreatePool(creator, args[0], amount0, args[2], amount1, fee))
		},
	}
}

// CmdAddLiquidity deposits into an existing pool
func CmdAddLiquidity() *cobra.Command {
	return &cobra.Command{
		Use:   "add-liquidity [pool-id] [amount0] [amount1]",
		Short: "Deposit both tokens of a pool in exchange for shares",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := fromAddress(cmd)
			if err != nil {
				return err
			}
			poolID, err := api.ParsePoolID(args[0])
			if err != nil {
				return err
			}
			amount0, err := api.ParseAmount("amount0", args[1])
			if err != nil {
				return err
			}
			amount1, err := api.ParseAmount("amount1", args[2])
			if err != nil {
				return err
			}
			return deliverTx(cmd, ammtypes.NewMsgAddLiquidity(provider, poolID, amount0, amount1))
		},
	}
}

// CmdSwap performs a routed swap
func CmdSwap() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "swap [token-in] [token-out] [amount-in]",
		Short: "Swap along a route of pool ids",
		Long: `Swap amount-in of token-in for token-out along --route, a comma separated list
of pool ids traversed in order. The whole route reverts if the final amount is
below --min-amount-out.

Example:
  ammd tx swap uatom uosmo 1000 --route 0,3 --min-amount-out 950 --from alice`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			trader, err := fromAddress(cmd)
			if err != nil {
				return err
			}
			amountIn, err := api.ParseAmount("amount-in", args[2])
			if err != nil {
				return err
			}
			rawMin, _ := cmd.Flags().GetString(flagMinAmountOut)
			minAmountOut, err := api.ParseAmount(flagMinAmountOut, rawMin)
			if err != nil {
				return err
			}
			rawRoute, _ := cmd.Flags().GetString(flagRoute)
			route, err := api.ParseRoute(rawRoute)
			if err != nil {
				return err
			}
			return deliverTx(cmd, ammtypes.NewMsgSwap(trader, args[0], args[1], amountIn, minAmountOut, route))
		},
	}

	cmd.Flags().String(flagMinAmountOut, "0", "Minimum acceptable output amount")
	cmd.Flags().String(flagRoute, "", "Comma separated pool ids, e.g. 0,3")

	return cmd
}

func tokenTxCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Token ledger transactions",
		RunE:  validateCmd,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "mint [denom] [amount] [to]",
			Short: "Credit newly minted tokens",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				return deliverTokenMsg(cmd, args, func(sender, to string, amount string) (interface{}, error) {
					value, err := api.ParseAmount("amount", amount)
					if err != nil {
						return nil, err
					}
					return &tokentypes.MsgMint{Sender: sender, To: to, Denom: args[0], Amount: value}, nil
				})
			},
		},
		&cobra.Command{
			Use:   "transfer [denom] [amount] [to]",
			Short: "Transfer tokens to another account",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				return deliverTokenMsg(cmd, args, func(sender, to string, amount string) (interface{}, error) {
					value, err := api.ParseAmount("amount", amount)
					if err != nil {
						return nil, err
					}
					return &tokentypes.MsgTransfer{Sender: sender, To: to, Denom: args[0], Amount: value}, nil
				})
			},
		},
		&cobra.Command{
			Use:   "approve [denom] [amount] [spender]",
			Short: `Set the allowance of spender; use "amm" for the AMM module account`,
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				return deliverTokenMsg(cmd, args, func(sender, spender string, amount string) (interface{}, error) {
					value, err := api.ParseAmount("amount", amount)
					if err != nil {
						return nil, err
					}
					return &tokentypes.MsgApprove{Sender: sender, Spender: spender, Denom: args[0], Amount: value}, nil
				})
			},
		},
	)

	return cmd
}

// deliverTokenMsg resolves --from and the counterparty in args[2], then
// delivers the message built from them.
func deliverTokenMsg(cmd *cobra.Command, args []string, build func(sender, counterparty, amount string) (interface{}, error)) error {
	sender, err := fromAddress(cmd)
	if err != nil {
		return err
	}
	counterparty, err := resolveAddress(cmd, args[2])
	if err != nil {
		return err
	}
	msg, err := build(sender, counterparty, args[1])
	if err != nil {
		return err
	}
	return deliverTx(cmd, msg)
}
