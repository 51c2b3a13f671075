package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/paw-chain/amm/app"
)

const flagOutputDocument = "output-document"

// ExportCmd dumps the current state as a genesis document
func ExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export state to genesis JSON",
		Long: `Export the pool registry, single pool, ledger and token balances as a genesis
document that "ammd init --genesis" accepts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			output, _ := cmd.Flags().GetString(flagOutputDocument)

			return withApp(cmd, func(nc *nodeContext, application *app.App) error {
				genesis, err := application.ExportGenesis()
				if err != nil {
					return fmt.Errorf("failed to export state: %w", err)
				}
				if output == "" {
					return printJSON(cmd, genesis)
				}
				if err := writeGenesis(output, genesis); err != nil {
					return err
				}
				nc.Logger.Info("exported genesis", "height", application.Height(), "file", output)
				return nil
			})
		},
	}

	cmd.Flags().String(flagOutputDocument, "", "Write the genesis to this file instead of stdout")

	return cmd
}
