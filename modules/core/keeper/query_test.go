package keeper_test

import (
	"encoding/json"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	connectiontypes "github.com/cosmos/simibc/modules/core/03-connection/types"
	channeltypes "github.com/cosmos/simibc/modules/core/04-channel/types"
	"github.com/cosmos/simibc/testing/mock"
)

type unknownQueryRequest struct{}

func (unknownQueryRequest) ValidateBasic() error { return nil }

func (s *KeeperTestSuite) TestQueryChannel() {
	path := s.newMockPath(channeltypes.ORDERED)

	bz, err := s.chainA.App.Query(&channeltypes.QueryChannelRequest{PortID: mock.PortID, ChannelID: path.EndpointA.ChannelID})
	s.Require().NoError(err)

	var res channeltypes.QueryChannelResponse
	s.Require().NoError(json.Unmarshal(bz, &res))
	s.Require().NotNil(res.Channel)
	s.Require().Equal(path.EndpointA.ChannelID, res.Channel.ChannelID)
	s.Require().Equal(channeltypes.ORDERED, res.Channel.ChannelInfo.Channel.Order)
	s.Require().True(res.Channel.ChannelInfo.Open)

	// a missing channel is not an error
	bz, err = s.chainA.App.Query(&channeltypes.QueryChannelRequest{PortID: mock.PortID, ChannelID: "channel-7"})
	s.Require().NoError(err)

	res = channeltypes.QueryChannelResponse{}
	s.Require().NoError(json.Unmarshal(bz, &res))
	s.Require().Nil(res.Channel)

	_, err = s.chainA.App.Query(&channeltypes.QueryChannelInfoRequest{PortID: mock.PortID, ChannelID: "channel-7"})
	s.Require().Equal(codes.NotFound, status.Code(err))
}

func (s *KeeperTestSuite) TestQueryChannels() {
	s.newMockPath(channeltypes.ORDERED)
	s.newMockPath(channeltypes.UNORDERED)

	bz, err := s.chainB.App.Query(&channeltypes.QueryChannelsRequest{PortID: mock.PortID})
	s.Require().NoError(err)

	var res channeltypes.QueryChannelsResponse
	s.Require().NoError(json.Unmarshal(bz, &res))
	s.Require().Len(res.Channels, 2)
	s.Require().Equal("channel-0", res.Channels[0].ChannelID)
	s.Require().Equal("channel-1", res.Channels[1].ChannelID)
	s.Require().Equal(channeltypes.UNORDERED, res.Channels[1].ChannelInfo.Channel.Order)
}

func (s *KeeperTestSuite) TestQueryConnections() {
	path := s.newMockPath(channeltypes.UNORDERED)

	bz, err := s.chainA.App.Query(&connectiontypes.QueryConnectedChainRequest{ConnectionID: path.EndpointA.ConnectionID})
	s.Require().NoError(err)

	var connection connectiontypes.Connection
	s.Require().NoError(json.Unmarshal(bz, &connection))
	s.Require().Equal(s.chainB.ChainID, connection.CounterpartyChainID)
	s.Require().Equal(path.EndpointB.ConnectionID, connection.CounterpartyConnectionID)

	bz, err = s.chainA.App.Query(&connectiontypes.QueryChainConnectionsRequest{ChainID: s.chainB.ChainID})
	s.Require().NoError(err)

	var res connectiontypes.QueryChainConnectionsResponse
	s.Require().NoError(json.Unmarshal(bz, &res))
	s.Require().Len(res.Connections, 1)
	s.Require().Equal(path.EndpointA.ConnectionID, res.Connections[0].ConnectionID)

	_, err = s.chainA.App.Query(&connectiontypes.QueryConnectedChainRequest{ConnectionID: "connection-8"})
	s.Require().Equal(codes.NotFound, status.Code(err))
}

func (s *KeeperTestSuite) TestQueryPackets() {
	path := s.newMockPath(channeltypes.UNORDERED)
	packet := s.sendMockPacket(path, mockData, s.defaultTimeoutHeight(), 0)

	res, err := path.EndpointB.RecvPacket(packet)
	s.Require().NoError(err)

	bz, err := s.chainB.App.Query(&channeltypes.QueryPacketAcknowledgementRequest{
		PortID:    packet.DestinationPort,
		ChannelID: packet.DestinationChannel,
		Sequence:  packet.Sequence,
	})
	s.Require().NoError(err)

	var ack channeltypes.PacketAck
	s.Require().NoError(json.Unmarshal(bz, &ack))
	s.Require().Equal(res.Data, ack.Ack)

	_, err = path.EndpointA.QueryPacket(2)
	s.Require().Equal(codes.NotFound, status.Code(err))
}

func (s *KeeperTestSuite) TestQueryInvalidRequests() {
	_, err := s.chainA.App.Query(unknownQueryRequest{})
	s.Require().Equal(codes.Unimplemented, status.Code(err))

	_, err = s.chainA.App.Query(&channeltypes.QuerySendPacketRequest{PortID: mock.PortID, ChannelID: "channel-0", Sequence: 0})
	s.Require().Equal(codes.InvalidArgument, status.Code(err))

	_, err = s.chainA.App.Query(&connectiontypes.QueryChainConnectionsRequest{})
	s.Require().Equal(codes.InvalidArgument, status.Code(err))

	_, err = s.chainA.App.IBCKeeper.Query(s.chainA.GetContext(), nil)
	s.Require().Equal(codes.InvalidArgument, status.Code(err))
}
