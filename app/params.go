package app

import (
	"sync"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

const (
	// Name is the application name
	Name = "ammd"

	// Bech32PrefixAccAddr defines the default Bech32 prefix of an account's address
	Bech32PrefixAccAddr = "paw"

	// CoinType is the coin type as defined in SLIP44
	CoinType = 118
)

var configOnce sync.Once

// SetConfig sets the global address configuration. Only the first call takes
// effect; an empty prefix selects Bech32PrefixAccAddr.
func SetConfig(accountPrefix string) {
	configOnce.Do(func() {
		if accountPrefix == "" {
			accountPrefix = Bech32PrefixAccAddr
		}
		config := sdk.GetConfig()
		config.SetBech32PrefixForAccount(accountPrefix, accountPrefix+"pub")
		config.SetBech32PrefixForValidator(accountPrefix+"valoper", accountPrefix+"valoperpub")
		config.SetBech32PrefixForConsensusNode(accountPrefix+"valcons", accountPrefix+"valconspub")
		config.SetCoinType(CoinType)
		config.Seal()
	})
}
