package ibctesting

import (
	"testing"

	sdkmath "cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/cosmos/simibc/simapp"
)

// DefaultGenesisAccountBalance is the balance of every denom funded to the sender account.
var DefaultGenesisAccountBalance = sdkmath.NewInt(10_000_000)

// TestChain is a simulated chain with a funded sender account.
type TestChain struct {
	testing.TB

	Coordinator *Coordinator
	App         *simapp.SimApp
	ChainID     string

	// SenderAccount is funded in sdk.DefaultBondDenom and TestDenom at genesis.
	SenderAccount string
}

// TestDenom is the second native denomination funded at genesis.
const TestDenom = "ufund"

// NewTestChain initializes a new test chain with a default of 1 funded sender account.
func NewTestChain(tb testing.TB, coord *Coordinator, chainID string, opts ...simapp.Option) *TestChain {
	tb.Helper()

	sender := MakeAddress(chainID + "/sender")
	genesis := map[string]sdk.Coins{
		sender: sdk.NewCoins(
			sdk.NewCoin(sdk.DefaultBondDenom, DefaultGenesisAccountBalance),
			sdk.NewCoin(TestDenom, DefaultGenesisAccountBalance),
		),
	}

	opts = append([]simapp.Option{
		simapp.WithChainID(chainID),
		simapp.WithGenesisBalances(genesis),
	}, opts...)

	return &TestChain{
		TB:            tb,
		Coordinator:   coord,
		App:           simapp.New(opts...),
		ChainID:       chainID,
		SenderAccount: sender,
	}
}

// GetContext returns the current context for the application.
func (chain *TestChain) GetContext() sdk.Context {
	return chain.App.Context()
}

// GetSimApp returns the SimApp of the chain.
func (chain *TestChain) GetSimApp() *simapp.SimApp {
	return chain.App
}

// NextBlock commits the current block and starts the next one.
func (chain *TestChain) NextBlock() {
	chain.App.NextBlock()
}

// SendMsg executes a user message and returns the result or an error.
func (chain *TestChain) SendMsg(msg simapp.Msg) (*sdk.Result, error) {
	return chain.App.Execute(msg)
}

// GetBalance returns the balance of denom held by addr.
func (chain *TestChain) GetBalance(addr, denom string) sdk.Coin {
	return chain.App.GetBalance(addr, denom)
}

// GetTimeoutHeight is a convenience function which returns a height 100 blocks
// past the current block height of the chain.
func (chain *TestChain) GetTimeoutHeight() uint64 {
	return uint64(chain.App.BlockHeight()) + 100
}
