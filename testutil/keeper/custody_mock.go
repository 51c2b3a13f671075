package keeper

import (
	"context"
	"errors"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/amm/x/amm/types"
	tokenkeeper "github.com/paw-chain/amm/x/token/keeper"
)

var (
	// ErrInjected is returned by mocks configured to fail.
	ErrInjected = errors.New("injected failure")

	_ types.TokenKeeper = (*MockCustody)(nil)
	_ types.ShareKeeper = (*MockShareKeeper)(nil)
)

// MockCustody forwards to a token ledger and can fail selected calls.
type MockCustody struct {
	Tokens *tokenkeeper.Keeper

	// FailTransferFrom and FailTransfer fail the call for the given denom.
	FailTransferFrom map[string]bool
	FailTransfer     map[string]bool

	// BeforeTransfer runs ahead of every Transfer and TransferFrom and can
	// call back into the AMM. A non-nil error aborts the custody call.
	BeforeTransfer func(ctx context.Context, denom string) error

	TransferFromCalls int
	TransferCalls     int
}

// NewMockCustody returns a MockCustody over tokens
func NewMockCustody(tokens *tokenkeeper.Keeper) *MockCustody {
	return &MockCustody{
		Tokens:           tokens,
		FailTransferFrom: make(map[string]bool),
		FailTransfer:     make(map[string]bool),
	}
}

func (m *MockCustody) TransferFrom(ctx context.Context, token string, spender, from, to sdk.AccAddress, amount math.Uint, data []byte) error {
	m.TransferFromCalls++
	if m.FailTransferFrom[token] {
		return ErrInjected
	}
	if m.BeforeTransfer != nil {
		if err := m.BeforeTransfer(ctx, token); err != nil {
			return err
		}
	}
	return m.Tokens.TransferFrom(ctx, token, spender, from, to, amount, data)
}

func (m *MockCustody) Transfer(ctx context.Context, token string, from, to sdk.AccAddress, amount math.Uint, data []byte) error {
	m.TransferCalls++
	if m.FailTransfer[token] {
		return ErrInjected
	}
	if m.BeforeTransfer != nil {
		if err := m.BeforeTransfer(ctx, token); err != nil {
			return err
		}
	}
	return m.Tokens.Transfer(ctx, token, from, to, amount, data)
}

func (m *MockCustody) BalanceOf(ctx context.Context, token string, owner sdk.AccAddress) math.Uint {
	return m.Tokens.BalanceOf(ctx, token, owner)
}

// MockShareKeeper mints LP shares on the token ledger and records every mint.
type MockShareKeeper struct {
	Tokens *tokenkeeper.Keeper
	Fail   bool
	Minted map[uint32]math.Uint
}

// NewMockShareKeeper returns a MockShareKeeper over tokens
func NewMockShareKeeper(tokens *tokenkeeper.Keeper) *MockShareKeeper {
	return &MockShareKeeper{Tokens: tokens, Minted: make(map[uint32]math.Uint)}
}

func (m *MockShareKeeper) MintShares(ctx context.Context, poolID uint32, to sdk.AccAddress, amount math.Uint) error {
	if m.Fail {
		return ErrInjected
	}
	if err := m.Tokens.Mint(ctx, types.ShareDenom(poolID), to, amount); err != nil {
		return err
	}
	prev, ok := m.Minted[poolID]
	if !ok {
		prev = math.ZeroUint()
	}
	m.Minted[poolID] = prev.Add(amount)
	return nil
}
