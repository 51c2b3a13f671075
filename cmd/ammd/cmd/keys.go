package cmd

import (
	"crypto/rand"
	"fmt"
	"strings"

	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	cryptocodec "github.com/cosmos/cosmos-sdk/crypto/codec"
	"github.com/cosmos/cosmos-sdk/crypto/hd"
	"github.com/cosmos/cosmos-sdk/crypto/keyring"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	"github.com/cosmos/go-bip39"
	"github.com/spf13/cobra"

	ammtypes "github.com/paw-chain/amm/x/amm/types"
)

const (
	FlagKeyringBackend = "keyring-backend"
	FlagFrom           = "from"

	flagMnemonicLength = "mnemonic-length"
	flagNoBackup       = "no-backup"
	flagAccount        = "account"
	flagIndex          = "index"
)

// KeysCmd returns the keys command. Keys only name accounts; requests are
// not signed, so the keyring is a local address book with recoverable
// BIP39 mnemonics.
func KeysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage named accounts with BIP39 mnemonic support",
	}

	cmd.AddCommand(
		AddKeyCommand(),
		ListKeysCommand(),
		ShowKeysCommand(),
	)

	return cmd
}

// AddKeyCommand creates a new key from a freshly generated mnemonic
func AddKeyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a new key with BIP39 mnemonic generation",
		Long: `Add a new key to the keyring from a freshly generated BIP39 mnemonic.

Examples:
  ammd keys add alice                           # Generate 24-word mnemonic (default)
  ammd keys add alice --mnemonic-length 12      # Generate 12-word mnemonic
  ammd keys add alice --no-backup               # Skip mnemonic display`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kr, err := openKeyring(cmd)
			if err != nil {
				return err
			}

			name := strings.TrimSpace(args[0])
			if name == "" {
				return fmt.Errorf("argument 'name' cannot be empty")
			}

			mnemonicLength, _ := cmd.Flags().GetInt(flagMnemonicLength)
			noBackup, _ := cmd.Flags().GetBool(flagNoBackup)
			account, _ := cmd.Flags().GetUint32(flagAccount)
			index, _ := cmd.Flags().GetUint32(flagIndex)

			// 12 words = 128 bits, 24 words = 256 bits
			var entropySize int
			switch mnemonicLength {
			case 12:
				entropySize = 128 / 8
			case 24:
				entropySize = 256 / 8
			default:
				return fmt.Errorf("mnemonic length must be 12 or 24 words")
			}

			entropy := make([]byte, entropySize)
			if _, err := rand.Read(entropy); err != nil {
				return fmt.Errorf("failed to generate secure entropy: %w", err)
			}
			mnemonic, err := bip39.NewMnemonic(entropy)
			if err != nil {
				return fmt.Errorf("failed to generate mnemonic: %w", err)
			}
			if !bip39.IsMnemonicValid(mnemonic) {
				return fmt.Errorf("generated mnemonic failed validation")
			}

			hdPath := hd.CreateHDPath(sdk.GetConfig().GetCoinType(), account, index)
			record, err := kr.NewAccount(name, mnemonic, keyring.DefaultBIP39Passphrase, hdPath.String(), hd.Secp256k1)
			if err != nil {
				return fmt.Errorf("failed to create key: %w", err)
			}
			addr, err := record.GetAddress()
			if err != nil {
				return fmt.Errorf("failed to get address: %w", err)
			}

			out := map[string]string{"name": name, "address": addr.String()}
			if !noBackup {
				out["mnemonic"] = mnemonic
			}
			return printJSON(cmd, out)
		},
	}

	cmd.Flags().Int(flagMnemonicLength, 24, "Mnemonic length (12 or 24 words)")
	cmd.Flags().Bool(flagNoBackup, false, "Do not print the mnemonic")
	cmd.Flags().Uint32(flagAccount, 0, "Account number for HD derivation")
	cmd.Flags().Uint32(flagIndex, 0, "Address index number for HD derivation")

	return cmd
}

// ListKeysCommand lists every key in the keyring
func ListKeysCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			kr, err := openKeyring(cmd)
			if err != nil {
				return err
			}
			records, err := kr.List()
			if err != nil {
				return err
			}

			out := make([]map[string]string, 0, len(records))
			for _, record := range records {
				addr, err := record.GetAddress()
				if err != nil {
					return err
				}
				out = append(out, map[string]string{"name": record.Name, "address": addr.String()})
			}
			return printJSON(cmd, out)
		},
	}
}

// ShowKeysCommand prints the address of a named key
func ShowKeysCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [name]",
		Short: "Show key address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kr, err := openKeyring(cmd)
			if err != nil {
				return err
			}
			record, err := kr.Key(args[0])
			if err != nil {
				return err
			}
			addr, err := record.GetAddress()
			if err != nil {
				return err
			}
			return printJSON(cmd, map[string]string{"name": record.Name, "address": addr.String()})
		},
	}
}

// openKeyring opens the keyring under the node home with the backend from
// --keyring-backend.
func openKeyring(cmd *cobra.Command) (keyring.Keyring, error) {
	nc, err := getNodeContext(cmd)
	if err != nil {
		return nil, err
	}
	backend, err := cmd.Flags().GetString(FlagKeyringBackend)
	if err != nil {
		return nil, err
	}

	registry := codectypes.NewInterfaceRegistry()
	cryptocodec.RegisterInterfaces(registry)
	cdc := codec.NewProtoCodec(registry)

	return keyring.New(sdk.KeyringServiceName(), backend, nc.Home, cmd.InOrStdin(), cdc)
}

// resolveAddress accepts a bech32 address, the AMM module name, or the name
// of a key in the keyring.
func resolveAddress(cmd *cobra.Command, value string) (string, error) {
	if value == "" {
		return "", fmt.Errorf("address cannot be empty")
	}
	if _, err := sdk.AccAddressFromBech32(value); err == nil {
		return value, nil
	}
	if value == ammtypes.ModuleName {
		return authtypes.NewModuleAddress(ammtypes.ModuleName).String(), nil
	}

	kr, err := openKeyring(cmd)
	if err != nil {
		return "", err
	}
	record, err := kr.Key(value)
	if err != nil {
		return "", fmt.Errorf("%q is neither an address nor a known key: %w", value, err)
	}
	addr, err := record.GetAddress()
	if err != nil {
		return "", err
	}
	return addr.String(), nil
}
