package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	cmtos "github.com/cometbft/cometbft/libs/os"
	"github.com/spf13/cobra"

	"github.com/paw-chain/amm/app"
)

const (
	flagOverwrite = "overwrite"
	flagGenesis   = "genesis"
)

// InitCmd returns a command that writes config.toml and genesis.json and
// loads the genesis into an empty state store.
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration, genesis and state",
		Long: `Initialize the node's configuration files and load genesis into the state store.

Example:
  ammd init --home ~/.ammd
  ammd init --genesis exported.json --home /tmp/ammd
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			nc, err := getNodeContext(cmd)
			if err != nil {
				return err
			}

			overwrite, _ := cmd.Flags().GetBool(flagOverwrite)
			source, _ := cmd.Flags().GetString(flagGenesis)

			if err := cmtos.EnsureDir(filepath.Join(nc.Home, "config"), 0o755); err != nil {
				return err
			}
			if overwrite || !cmtos.FileExists(configPath(nc.Home)) {
				if err := WriteConfig(nc.Home, nc.Config); err != nil {
					return fmt.Errorf("failed to write config: %w", err)
				}
			}

			genesis := app.NewDefaultGenesisState()
			if source != "" {
				if genesis, err = readGenesis(source); err != nil {
					return err
				}
			}
			if err := genesis.Validate(); err != nil {
				return fmt.Errorf("invalid genesis: %w", err)
			}

			dst := genesisPath(nc.Home)
			if cmtos.FileExists(dst) && !overwrite {
				return fmt.Errorf("genesis.json file already exists: %v", dst)
			}
			if err := writeGenesis(dst, genesis); err != nil {
				return err
			}

			return withApp(cmd, func(nc *nodeContext, application *app.App) error {
				if err := application.InitChain(genesis); err != nil {
					return err
				}
				nc.Logger.Info("initialized state", "home", nc.Home, "height", application.Height())
				return printJSON(cmd, map[string]interface{}{
					"home":    nc.Home,
					"genesis": dst,
					"height":  application.Height(),
				})
			})
		},
	}

	cmd.Flags().Bool(flagOverwrite, false, "overwrite existing config.toml and genesis.json")
	cmd.Flags().String(flagGenesis, "", "genesis file to load instead of the default empty state")

	return cmd
}

func readGenesis(path string) (app.GenesisState, error) {
	bz, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read genesis: %w", err)
	}
	var genesis app.GenesisState
	if err := json.Unmarshal(bz, &genesis); err != nil {
		return nil, fmt.Errorf("failed to decode genesis %s: %w", path, err)
	}
	return genesis, nil
}

func writeGenesis(path string, genesis app.GenesisState) error {
	bz, err := json.MarshalIndent(genesis, "", "  ")
	if err != nil {
		return err
	}
	return cmtos.WriteFile(path, bz, 0o644)
}
