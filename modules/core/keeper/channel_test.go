package keeper_test

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	ibcchanneltypes "github.com/cosmos/ibc-go/v10/modules/core/04-channel/types"

	transfertypes "github.com/cosmos/simibc/modules/apps/transfer/types"
	connectiontypes "github.com/cosmos/simibc/modules/core/03-connection/types"
	channeltypes "github.com/cosmos/simibc/modules/core/04-channel/types"
	"github.com/cosmos/simibc/relayer"
	ibctesting "github.com/cosmos/simibc/testing"
	"github.com/cosmos/simibc/testing/mock"
)

func (s *KeeperTestSuite) TestOpenChannel() {
	var (
		path *ibctesting.Path
		msg  *channeltypes.MsgOpenChannel
	)

	testCases := []struct {
		name       string
		malleate   func()
		expChannel string
		expVersion string
		expErr     error
	}{
		{
			"success: init with default version",
			func() {},
			"channel-0", mock.Version, nil,
		},
		{
			"success: init with version",
			func() {
				msg.Version = "custom-version"
			},
			"channel-0", "custom-version", nil,
		},
		{
			"success: try echoes the counterparty version",
			func() {
				msg = channeltypes.NewMsgChannelOpenTry(
					path.EndpointA.ConnectionID, mock.PortID, "", channeltypes.UNORDERED,
					channeltypes.NewEndpoint(mock.PortID, "channel-3"), "counterparty-version",
				)
			},
			"channel-0", "counterparty-version", nil,
		},
		{
			"success: channel identifiers are allocated per port",
			func() {
				_, err := path.EndpointA.Sudo(channeltypes.NewMsgChannelOpenInit(path.EndpointA.ConnectionID, mock.PortID, "", channeltypes.ORDERED, mock.PortID))
				s.Require().NoError(err)
			},
			"channel-1", mock.Version, nil,
		},
		{
			"connection not found",
			func() {
				msg.ConnectionID = "connection-9"
			},
			"", "", connectiontypes.ErrConnectionNotFound,
		},
		{
			"port not bound on init",
			func() {
				msg.PortID = "unbound"
			},
			"", "", channeltypes.ErrPortMismatch,
		},
		{
			"port not bound on try",
			func() {
				msg = channeltypes.NewMsgChannelOpenTry(
					path.EndpointA.ConnectionID, "unbound", "", channeltypes.UNORDERED,
					channeltypes.NewEndpoint(mock.PortID, "channel-0"), mock.Version,
				)
			},
			"", "", channeltypes.ErrPortMismatch,
		},
		{
			"application rejects the version",
			func() {
				msg.PortID = transfertypes.PortID
				msg.Version = "ics20-2"
			},
			"", "", transfertypes.ErrInvalidVersion,
		},
		{
			"application callback fails",
			func() {
				s.chainA.App.MockApp.OnChanOpenInit = func(sdk.Context, channeltypes.Order, string, string, string, channeltypes.Endpoint, string) (string, error) {
					return "", mock.MockApplicationCallbackError
				}
			},
			"", "", mock.MockApplicationCallbackError,
		},
		{
			"application returns an empty version",
			func() {
				s.chainA.App.MockApp.OnChanOpenInit = func(sdk.Context, channeltypes.Order, string, string, string, channeltypes.Endpoint, string) (string, error) {
					return "", nil
				}
			},
			"", "", channeltypes.ErrInvalidChannelVersion,
		},
		{
			"invalid ordering",
			func() {
				msg.Order = ibcchanneltypes.NONE
			},
			"", "", channeltypes.ErrInvalidChannelOrdering,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.SetupTest() // reset

			path = ibctesting.NewPath(s.chainA, s.chainB)
			path.SetupConnections()

			msg = channeltypes.NewMsgChannelOpenInit(path.EndpointA.ConnectionID, mock.PortID, "", channeltypes.ORDERED, mock.PortID)

			tc.malleate()

			res, err := path.EndpointA.Sudo(msg)
			if tc.expErr != nil {
				s.Require().ErrorIs(err, tc.expErr)
				return
			}

			s.Require().NoError(err)
			s.Require().Equal(tc.expChannel, string(res.Data))

			eventType := channeltypes.EventTypeChannelOpenInit
			if msg.IsTry() {
				eventType = channeltypes.EventTypeChannelOpenTry
			}
			channelID, err := relayer.EventAttributeValue(res.Events, eventType, channeltypes.AttributeKeyChannelID)
			s.Require().NoError(err)
			s.Require().Equal(tc.expChannel, channelID)

			version, err := relayer.EventAttributeValue(res.Events, eventType, channeltypes.AttributeKeyVersion)
			s.Require().NoError(err)
			s.Require().Equal(tc.expVersion, version)

			handshake, err := s.chainA.App.IBCKeeper.ChannelHandshakes.Get(s.chainA.GetContext(), collectionsKey(msg.PortID, channelID))
			s.Require().NoError(err)
			s.Require().Equal(tc.expVersion, handshake.Version)
			s.Require().Equal(msg.Order, handshake.Order)

			// the channel is not established before the handshake completes
			has, err := s.chainA.App.IBCKeeper.Channels.Has(s.chainA.GetContext(), collectionsKey(msg.PortID, channelID))
			s.Require().NoError(err)
			s.Require().False(has)
		})
	}
}

func (s *KeeperTestSuite) TestConnectChannel() {
	path := ibctesting.NewPath(s.chainA, s.chainB)
	path.SetupConnections()

	initRes, err := path.EndpointA.Sudo(channeltypes.NewMsgChannelOpenInit(path.EndpointA.ConnectionID, mock.PortID, "", channeltypes.UNORDERED, mock.PortID))
	s.Require().NoError(err)
	channelA := string(initRes.Data)

	tryRes, err := path.EndpointB.Sudo(channeltypes.NewMsgChannelOpenTry(
		path.EndpointB.ConnectionID, mock.PortID, "", channeltypes.UNORDERED,
		channeltypes.NewEndpoint(mock.PortID, channelA), mock.Version,
	))
	s.Require().NoError(err)
	channelB := string(tryRes.Data)

	// no handshake on the channel
	_, err = path.EndpointA.Sudo(channeltypes.NewMsgConnectChannel(mock.PortID, "channel-5", channeltypes.NewEndpoint(mock.PortID, channelB), mock.Version))
	s.Require().ErrorIs(err, channeltypes.ErrHandshakeNotFound)

	// the application can abort the handshake
	s.chainA.App.MockApp.OnChanOpenAck = func(sdk.Context, string, string, string, string) error {
		return mock.MockApplicationCallbackError
	}
	_, err = path.EndpointA.Sudo(channeltypes.NewMsgConnectChannel(mock.PortID, channelA, channeltypes.NewEndpoint(mock.PortID, channelB), mock.Version))
	s.Require().ErrorIs(err, mock.MockApplicationCallbackError)
	s.chainA.App.MockApp.OnChanOpenAck = nil

	// ACK
	res, err := path.EndpointA.Sudo(channeltypes.NewMsgConnectChannel(mock.PortID, channelA, channeltypes.NewEndpoint(mock.PortID, channelB), mock.Version))
	s.Require().NoError(err)
	s.Require().True(relayer.HasEvent(res.Events, channeltypes.EventTypeChannelOpenAck))

	// CONFIRM
	res, err = path.EndpointB.Sudo(channeltypes.NewMsgConnectChannel(mock.PortID, channelB, channeltypes.NewEndpoint(mock.PortID, channelA), mock.Version))
	s.Require().NoError(err)
	s.Require().True(relayer.HasEvent(res.Events, channeltypes.EventTypeChannelOpenConfirm))

	// the handshake is consumed
	_, err = path.EndpointA.Sudo(channeltypes.NewMsgConnectChannel(mock.PortID, channelA, channeltypes.NewEndpoint(mock.PortID, channelB), mock.Version))
	s.Require().ErrorIs(err, channeltypes.ErrHandshakeNotFound)

	path.EndpointA.ChannelID = channelA
	path.EndpointB.ChannelID = channelB

	channelInfoA := path.EndpointA.GetChannel()
	s.Require().True(channelInfoA.Open)
	s.Require().Equal(uint64(1), channelInfoA.NextSequenceSend)
	s.Require().Equal(channeltypes.NewEndpoint(mock.PortID, channelB), channelInfoA.Channel.CounterpartyEndpoint)
	s.Require().Equal(path.EndpointA.ConnectionID, channelInfoA.Channel.ConnectionID)

	channelInfoB := path.EndpointB.GetChannel()
	s.Require().True(channelInfoB.Open)
	s.Require().Equal(channeltypes.NewEndpoint(mock.PortID, channelA), channelInfoB.Channel.CounterpartyEndpoint)
	s.Require().Equal(mock.Version, channelInfoB.Channel.Version)
}

func (s *KeeperTestSuite) TestCloseChannel() {
	path := s.newMockPath(channeltypes.UNORDERED)

	var closeInitCalls int
	s.chainA.App.MockApp.OnChanCloseInit = func(sdk.Context, string, string) error {
		closeInitCalls++
		return nil
	}

	res, err := path.EndpointA.Sudo(channeltypes.NewMsgCloseChannel(mock.PortID, path.EndpointA.ChannelID, true))
	s.Require().NoError(err)
	s.Require().True(relayer.HasEvent(res.Events, channeltypes.EventTypeChannelCloseInit))
	s.Require().False(path.EndpointA.GetChannel().Open)
	s.Require().Equal(1, closeInitCalls)

	// closing a closed channel end only emits the event
	res, err = path.EndpointA.Sudo(channeltypes.NewMsgCloseChannel(mock.PortID, path.EndpointA.ChannelID, false))
	s.Require().NoError(err)
	s.Require().True(relayer.HasEvent(res.Events, channeltypes.EventTypeChannelCloseConfirm))
	s.Require().Equal(1, closeInitCalls)

	// the counterparty end is untouched
	s.Require().True(path.EndpointB.GetChannel().Open)

	s.Require().NoError(path.EndpointB.CloseChannel(false))
	s.Require().False(path.EndpointB.GetChannel().Open)

	_, err = path.EndpointA.Sudo(channeltypes.NewMsgCloseChannel(mock.PortID, "channel-9", true))
	s.Require().ErrorIs(err, channeltypes.ErrChannelNotFound)
}

func (s *KeeperTestSuite) TestCreateChannelUnboundPort() {
	path := ibctesting.NewPath(s.chainA, s.chainB)
	path.SetupConnections()
	path.EndpointB.ChannelConfig.PortID = "unbound"

	_, err := path.CreateChannelsWithResult()
	s.Require().ErrorIs(err, channeltypes.ErrPortMismatch)

	channels, err := s.chainA.App.IBCKeeper.GetChannels(s.chainA.GetContext(), mock.PortID)
	s.Require().NoError(err)
	s.Require().Empty(channels)

	channels, err = s.chainB.App.IBCKeeper.GetChannels(s.chainB.GetContext(), "unbound")
	s.Require().NoError(err)
	s.Require().Empty(channels)
}
