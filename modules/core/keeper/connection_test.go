package keeper_test

import (
	connectiontypes "github.com/cosmos/simibc/modules/core/03-connection/types"
	ibcerrors "github.com/cosmos/simibc/modules/core/errors"
	ibctesting "github.com/cosmos/simibc/testing"
)

func (s *KeeperTestSuite) TestCreateConnection() {
	app := s.chainA.App

	res, err := app.Sudo(connectiontypes.NewMsgCreateConnection(s.chainB.ChainID, "", ""))
	s.Require().NoError(err)
	s.Require().Equal("connection-0", string(res.Data))

	connectionID, err := ibctesting.ParseConnectionIDFromEvents(res.Events)
	s.Require().NoError(err)
	s.Require().Equal("connection-0", connectionID)

	connection, err := app.IBCKeeper.GetConnection(s.chainA.GetContext(), connectionID)
	s.Require().NoError(err)
	s.Require().False(connection.HasCounterparty())
	s.Require().Equal(s.chainB.ChainID, connection.CounterpartyChainID)

	// record the counterparty connection
	_, err = app.Sudo(connectiontypes.NewMsgCreateConnection(s.chainB.ChainID, connectionID, "connection-7"))
	s.Require().NoError(err)

	connection, err = app.IBCKeeper.GetConnection(s.chainA.GetContext(), connectionID)
	s.Require().NoError(err)
	s.Require().Equal("connection-7", connection.CounterpartyConnectionID)

	// an update without counterparty keeps the recorded one
	_, err = app.Sudo(connectiontypes.NewMsgCreateConnection(s.chainB.ChainID, connectionID, ""))
	s.Require().NoError(err)

	connection, err = app.IBCKeeper.GetConnection(s.chainA.GetContext(), connectionID)
	s.Require().NoError(err)
	s.Require().Equal("connection-7", connection.CounterpartyConnectionID)

	// a new connection towards the same chain gets its own identifier
	res, err = app.Sudo(connectiontypes.NewMsgCreateConnection(s.chainB.ChainID, "", ""))
	s.Require().NoError(err)
	s.Require().Equal("connection-1", string(res.Data))

	connections, err := app.IBCKeeper.GetChainConnections(s.chainA.GetContext(), s.chainB.ChainID)
	s.Require().NoError(err)
	s.Require().Len(connections, 2)
	s.Require().Equal("connection-0", connections[0].ConnectionID)
	s.Require().Equal("connection-1", connections[1].ConnectionID)

	connections, err = app.IBCKeeper.GetChainConnections(s.chainA.GetContext(), "unknown-chain")
	s.Require().NoError(err)
	s.Require().Empty(connections)
}

func (s *KeeperTestSuite) TestCreateConnectionFailures() {
	app := s.chainA.App

	res, err := app.Sudo(connectiontypes.NewMsgCreateConnection(s.chainB.ChainID, "", ""))
	s.Require().NoError(err)
	connectionID := string(res.Data)

	testCases := []struct {
		name   string
		msg    *connectiontypes.MsgCreateConnection
		expErr error
	}{
		{
			"empty remote chain id",
			connectiontypes.NewMsgCreateConnection("", "", ""),
			ibcerrors.ErrInvalidChainID,
		},
		{
			"connection not found",
			connectiontypes.NewMsgCreateConnection(s.chainB.ChainID, "connection-9", "connection-0"),
			connectiontypes.ErrConnectionNotFound,
		},
		{
			"counterparty chain mismatch",
			connectiontypes.NewMsgCreateConnection("other-chain", connectionID, "connection-0"),
			connectiontypes.ErrConnectionChainMismatch,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := app.Sudo(tc.msg)
			s.Require().ErrorIs(err, tc.expErr)
		})
	}

	// failed messages leave no state behind
	connection, err := app.IBCKeeper.GetConnection(s.chainA.GetContext(), connectionID)
	s.Require().NoError(err)
	s.Require().Equal(s.chainB.ChainID, connection.CounterpartyChainID)
	s.Require().False(connection.HasCounterparty())
}

func (s *KeeperTestSuite) TestSetupConnections() {
	path := ibctesting.NewPath(s.chainA, s.chainB)
	path.SetupConnections()

	s.Require().Equal(path.EndpointB.ConnectionID, path.EndpointA.GetConnection().CounterpartyConnectionID)
	s.Require().Equal(path.EndpointA.ConnectionID, path.EndpointB.GetConnection().CounterpartyConnectionID)
	s.Require().Equal(s.chainA.ChainID, path.EndpointB.GetConnection().CounterpartyChainID)
}
