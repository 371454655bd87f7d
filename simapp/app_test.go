package simapp_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	sdkmath "cosmossdk.io/math"

	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"

	sdk "github.com/cosmos/cosmos-sdk/types"

	connectiontypes "github.com/cosmos/simibc/modules/core/03-connection/types"
	ibcerrors "github.com/cosmos/simibc/modules/core/errors"
	"github.com/cosmos/simibc/simapp"
	"github.com/cosmos/simibc/simapp/bank"
)

type unknownMsg struct{}

func (unknownMsg) ValidateBasic() error { return nil }
func (unknownMsg) GetSigner() string    { return "alice" }

func TestNew(t *testing.T) {
	app := simapp.New(
		simapp.WithChainID("chain-a"),
		simapp.WithGenesisBalances(map[string]sdk.Coins{
			"alice": sdk.NewCoins(sdk.NewInt64Coin("stake", 10)),
		}),
		simapp.WithGenesisBalances(map[string]sdk.Coins{
			"alice": sdk.NewCoins(sdk.NewInt64Coin("stake", 5)),
		}),
	)

	require.Equal(t, "chain-a", app.ChainID())
	require.Equal(t, int64(1), app.BlockHeight())
	require.Equal(t, simapp.DefaultGenesisTime, app.BlockTime())
	require.Equal(t, sdkmath.NewInt(15), app.GetBalance("alice", "stake").Amount)
	require.Equal(t, []string{"mock", "transfer"}, app.IBCKeeper.Router().Keys())
}

func TestNextBlock(t *testing.T) {
	app := simapp.New()

	app.NextBlock()
	require.Equal(t, int64(2), app.BlockHeight())
	require.Equal(t, simapp.DefaultGenesisTime.Add(simapp.BlockTime), app.BlockTime())
	require.Equal(t, int64(2), app.Context().BlockHeight())

	app.UpdateBlock(func(header *cmtproto.Header) {
		header.Height += 10
	})
	require.Equal(t, int64(12), app.BlockHeight())
}

func TestExecute(t *testing.T) {
	app := simapp.New(simapp.WithGenesisBalances(map[string]sdk.Coins{
		"alice": sdk.NewCoins(sdk.NewInt64Coin("stake", 10)),
	}))

	res, err := app.Execute(bank.NewMsgSend("alice", "bob", sdk.NewCoins(sdk.NewInt64Coin("stake", 4))))
	require.NoError(t, err)
	require.NotEmpty(t, res.Events)
	require.Equal(t, sdkmath.NewInt(4), app.GetBalance("bob", "stake").Amount)

	// failed messages leave no state behind
	_, err = app.Execute(bank.NewMsgSend("alice", "bob", sdk.NewCoins(sdk.NewInt64Coin("stake", 7))))
	require.Error(t, err)
	require.Equal(t, sdkmath.NewInt(6), app.GetBalance("alice", "stake").Amount)

	_, err = app.Execute(unknownMsg{})
	require.ErrorIs(t, err, ibcerrors.ErrUnknownRequest)
}

func TestSudo(t *testing.T) {
	app := simapp.New()

	res, err := app.Sudo(connectiontypes.NewMsgCreateConnection("chain-b", "", ""))
	require.NoError(t, err)
	require.Equal(t, "connection-0", string(res.Data))

	_, err = app.Sudo(connectiontypes.NewMsgCreateConnection("chain-b", "connection-4", "connection-0"))
	require.ErrorIs(t, err, connectiontypes.ErrConnectionNotFound)

	res, err = app.Sudo(connectiontypes.NewMsgCreateConnection("chain-b", "", ""))
	require.NoError(t, err)
	require.Equal(t, "connection-1", string(res.Data))
}

func TestWithBlockHeader(t *testing.T) {
	genesisTime := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	app := simapp.New(simapp.WithBlockHeader(cmtproto.Header{
		ChainID: "chain-c",
		Height:  100,
		Time:    genesisTime,
	}))

	require.Equal(t, "chain-c", app.ChainID())
	require.Equal(t, int64(100), app.BlockHeight())
	require.Equal(t, genesisTime, app.BlockTime())

	ctx := app.Context()
	require.Equal(t, "chain-c", ctx.ChainID())
	require.Equal(t, int64(100), ctx.BlockHeight())

	app.NextBlock()
	require.Equal(t, int64(101), app.BlockHeight())
	require.Equal(t, genesisTime.Add(simapp.BlockTime), app.BlockTime())
}

func TestGenesisRejectsVoucherShapedDenom(t *testing.T) {
	require.Panics(t, func() {
		simapp.New(simapp.WithGenesisBalances(map[string]sdk.Coins{
			"alice": sdk.NewCoins(sdk.NewInt64Coin("ibc/channel-0/ufund", 10)),
		}))
	})
}
