package app

import (
	"encoding/json"
	"fmt"

	ammtypes "github.com/paw-chain/amm/x/amm/types"
	tokentypes "github.com/paw-chain/amm/x/token/types"
)

// GenesisState represents the genesis state of the application, keyed by module name
type GenesisState map[string]json.RawMessage

// NewDefaultGenesisState returns an empty pool registry and token ledger
func NewDefaultGenesisState() GenesisState {
	return GenesisState{
		ammtypes.ModuleName:   mustMarshalJSON(ammtypes.DefaultGenesis()),
		tokentypes.ModuleName: mustMarshalJSON(tokentypes.DefaultGenesis()),
	}
}

// ModuleStates decodes both module sections, defaulting missing ones.
func (gs GenesisState) ModuleStates() (*ammtypes.GenesisState, *tokentypes.GenesisState, error) {
	amm := ammtypes.DefaultGenesis()
	if raw, ok := gs[ammtypes.ModuleName]; ok {
		if err := json.Unmarshal(raw, amm); err != nil {
			return nil, nil, fmt.Errorf("decode %s genesis: %w", ammtypes.ModuleName, err)
		}
	}
	token := tokentypes.DefaultGenesis()
	if raw, ok := gs[tokentypes.ModuleName]; ok {
		if err := json.Unmarshal(raw, token); err != nil {
			return nil, nil, fmt.Errorf("decode %s genesis: %w", tokentypes.ModuleName, err)
		}
	}
	return amm, token, nil
}

// Validate checks every module section
func (gs GenesisState) Validate() error {
	amm, token, err := gs.ModuleStates()
	if err != nil {
		return err
	}
	if err := amm.Validate(); err != nil {
		return fmt.Errorf("%s genesis: %w", ammtypes.ModuleName, err)
	}
	if err := token.Validate(); err != nil {
		return fmt.Errorf("%s genesis: %w", tokentypes.ModuleName, err)
	}
	return nil
}

func mustMarshalJSON(v interface{}) json.RawMessage {
	bz, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return bz
}
