package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"cosmossdk.io/log"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/crypto/keyring"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/paw-chain/amm/app"
)

const (
	FlagHome      = "home"
	FlagLogLevel  = "log_level"
	FlagLogFormat = "log_format"
)

type contextKey struct{}

// nodeContext carries what PersistentPreRunE resolved to every subcommand.
type nodeContext struct {
	Home   string
	Config *Config
	Logger log.Logger
}

// NewRootCmd creates the root command for ammd. It is called once in the
// main function.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ammd",
		Short: "Constant-product AMM node",
		Long: `ammd hosts a constant-product automated market maker over a local state store.

It manages a registry of two-token pools with multi-hop routing, a ledger-backed
single pool, and a minimal fungible token ledger used for custody.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// set the default command outputs
			cmd.SetOut(cmd.OutOrStdout())
			cmd.SetErr(cmd.ErrOrStderr())

			home, err := cmd.Flags().GetString(FlagHome)
			if err != nil {
				return err
			}

			cfg, err := ReadConfig(home, cmd.Flags())
			if err != nil {
				return err
			}

			app.SetConfig(cfg.Bech32Prefix)

			logger, err := NewLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(context.WithValue(ctx, contextKey{}, &nodeContext{
				Home:   home,
				Config: cfg,
				Logger: logger,
			}))
			return nil
		},
	}

	rootCmd.PersistentFlags().String(FlagHome, app.DefaultNodeHome, "directory for config and data")
	rootCmd.PersistentFlags().String(FlagLogLevel, "info", "log level (trace|debug|info|warn|error)")
	rootCmd.PersistentFlags().String(FlagLogFormat, "plain", "log output format (plain|json)")
	rootCmd.PersistentFlags().String(FlagKeyringBackend, keyring.BackendTest, "Select keyring backend (os|file|test|memory)")

	rootCmd.AddCommand(
		InitCmd(),
		KeysCmd(),
		txCommand(),
		queryCommand(),
		ServeCmd(),
		ExportCmd(),
	)

	return rootCmd
}

// NewLogger builds the node logger from the configured level and format.
func NewLogger(cfg *Config, out io.Writer) (log.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	opts := []log.Option{log.LevelOption(level)}
	if cfg.LogFormat == "json" {
		opts = append(opts, log.OutputJSONOption())
	} else {
		opts = append(opts, log.ColorOption(false))
	}
	return log.NewLogger(out, opts...), nil
}

func getNodeContext(cmd *cobra.Command) (*nodeContext, error) {
	if ctx := cmd.Context(); ctx != nil {
		if nc, ok := ctx.Value(contextKey{}).(*nodeContext); ok {
			return nc, nil
		}
	}
	return nil, fmt.Errorf("%s: node context not initialized", cmd.CommandPath())
}

// openApp opens the state database under <home>/data.
func openApp(nc *nodeContext) (*app.App, error) {
	db, err := dbm.NewDB(app.Name, dbm.BackendType(nc.Config.DBBackend), filepath.Join(nc.Home, "data"))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	application, err := app.New(nc.Logger, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return application, nil
}

// withApp opens the application for the duration of fn.
func withApp(cmd *cobra.Command, fn func(nc *nodeContext, application *app.App) error) error {
	nc, err := getNodeContext(cmd)
	if err != nil {
		return err
	}
	application, err := openApp(nc)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := application.Close(); cerr != nil {
			nc.Logger.Error("failed to close database", "error", cerr)
		}
	}()
	return fn(nc, application)
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	bz, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(bz))
	return err
}
