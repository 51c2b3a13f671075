package keeper

import (
	"testing"

	"cosmossdk.io/log"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/stretchr/testify/require"

	"github.com/paw-chain/amm/app"
)

// SetupTestApp initializes an in-memory application with default genesis
func SetupTestApp(t testing.TB) *app.App {
	app.SetConfig("")

	testApp, err := app.New(log.NewNopLogger(), dbm.NewMemDB())
	require.NoError(t, err)
	require.NoError(t, testApp.InitChain(app.NewDefaultGenesisState()))

	return testApp
}
