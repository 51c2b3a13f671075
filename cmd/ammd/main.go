package main

import (
	"context"
	"os"

	"github.com/paw-chain/amm/cmd/ammd/cmd"
)

func main() {
	rootCmd := cmd.NewRootCmd()

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
