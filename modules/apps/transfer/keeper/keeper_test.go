package keeper_test

import (
	"testing"

	testifysuite "github.com/stretchr/testify/suite"

	sdkmath "cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"

	ibctesting "github.com/cosmos/simibc/testing"
)

type KeeperTestSuite struct {
	testifysuite.Suite

	coordinator *ibctesting.Coordinator
	chainA      *ibctesting.TestChain
}

func (s *KeeperTestSuite) SetupTest() {
	s.coordinator = ibctesting.NewCoordinator(s.T(), 1)
	s.chainA = s.coordinator.GetChain(ibctesting.GetChainID(1))
}

func TestKeeperTestSuite(t *testing.T) {
	testifysuite.Run(t, new(KeeperTestSuite))
}

func (s *KeeperTestSuite) TestTotalEscrow() {
	ctx := s.chainA.GetContext()
	k := s.chainA.App.TransferKeeper

	s.Require().True(k.GetTotalEscrowForDenom(ctx, "uatom").IsZero())
	s.Require().Empty(k.GetAllTotalEscrowed(ctx))

	k.SetTotalEscrowForDenom(ctx, sdk.NewCoin("uatom", sdkmath.NewInt(100)))
	k.SetTotalEscrowForDenom(ctx, sdk.NewCoin("stake", sdkmath.NewInt(7)))
	s.Require().Equal(sdkmath.NewInt(100), k.GetTotalEscrowForDenom(ctx, "uatom").Amount)
	s.Require().Equal(sdk.NewCoins(sdk.NewCoin("stake", sdkmath.NewInt(7)), sdk.NewCoin("uatom", sdkmath.NewInt(100))), k.GetAllTotalEscrowed(ctx))

	// a zero amount removes the entry
	k.SetTotalEscrowForDenom(ctx, sdk.NewCoin("uatom", sdkmath.ZeroInt()))
	has, err := k.TotalEscrow.Has(ctx, "uatom")
	s.Require().NoError(err)
	s.Require().False(has)
	s.Require().Equal(sdk.NewCoins(sdk.NewCoin("stake", sdkmath.NewInt(7))), k.GetAllTotalEscrowed(ctx))

	s.Require().Panics(func() {
		k.SetTotalEscrowForDenom(ctx, sdk.Coin{Denom: "uatom", Amount: sdkmath.NewInt(-1)})
	})
}
