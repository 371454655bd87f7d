package keeper_test

import (
	"errors"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"

	clienttypes "github.com/cosmos/ibc-go/v10/modules/core/02-client/types"
	ibcchanneltypes "github.com/cosmos/ibc-go/v10/modules/core/04-channel/types"
	ibcexported "github.com/cosmos/ibc-go/v10/modules/core/exported"

	channeltypes "github.com/cosmos/simibc/modules/core/04-channel/types"
	coretypes "github.com/cosmos/simibc/modules/core/types"
	"github.com/cosmos/simibc/relayer"
	ibctesting "github.com/cosmos/simibc/testing"
	"github.com/cosmos/simibc/testing/mock"
)

func (s *KeeperTestSuite) TestSendPacket() {
	path := s.newMockPath(channeltypes.UNORDERED)

	sequence, err := path.EndpointA.SendPacket(s.defaultTimeoutHeight(), 0, mockData)
	s.Require().NoError(err)
	s.Require().Equal(uint64(1), sequence)

	sequence, err = path.EndpointA.SendPacket(clienttypes.ZeroHeight(), uint64(s.chainB.App.BlockTime().Add(100 * time.Second).UnixNano()), mockData)
	s.Require().NoError(err)
	s.Require().Equal(uint64(2), sequence)

	packet, err := path.EndpointA.QueryPacket(2)
	s.Require().NoError(err)
	s.Require().Equal(mockData, packet.Data)
	s.Require().Equal(path.EndpointB.ChannelConfig.PortID, packet.DestinationPort)
	s.Require().Equal(path.EndpointB.ChannelID, packet.DestinationChannel)
	s.Require().False(packet.IsAcknowledged())
	s.Require().Equal(uint64(3), path.EndpointA.GetChannel().NextSequenceSend)

	// the counterparty channel end keeps its own sequence
	sequence, err = path.EndpointB.SendPacket(clienttypes.NewHeight(0, s.chainA.GetTimeoutHeight()), 0, mockData)
	s.Require().NoError(err)
	s.Require().Equal(uint64(1), sequence)

	_, err = path.EndpointA.SendPacket(clienttypes.ZeroHeight(), 0, mockData)
	s.Require().ErrorIs(err, channeltypes.ErrInvalidTimeout)

	_, err = path.EndpointA.Sudo(channeltypes.NewMsgSendPacket(mock.PortID, "channel-9", mockData, channeltypes.NewTimeout(s.defaultTimeoutHeight(), 0)))
	s.Require().ErrorIs(err, channeltypes.ErrChannelNotFound)

	s.Require().NoError(path.EndpointA.CloseChannel(true))
	_, err = path.EndpointA.SendPacket(s.defaultTimeoutHeight(), 0, mockData)
	s.Require().ErrorIs(err, channeltypes.ErrChannelClosed)
}

func (s *KeeperTestSuite) TestSendPacketEvent() {
	path := s.newMockPath(channeltypes.UNORDERED)

	res, err := path.EndpointA.Sudo(channeltypes.NewMsgSendPacket(mock.PortID, path.EndpointA.ChannelID, mockData, channeltypes.NewTimeout(s.defaultTimeoutHeight(), 0)))
	s.Require().NoError(err)
	s.Require().Equal(sdk.Uint64ToBigEndian(1), res.Data)

	for key, expValue := range map[string]string{
		channeltypes.AttributeKeySequence:   "1",
		channeltypes.AttributeKeySrcPort:    mock.PortID,
		channeltypes.AttributeKeySrcChannel: path.EndpointA.ChannelID,
		channeltypes.AttributeKeyDstChannel: path.EndpointB.ChannelID,
	} {
		value, err := relayer.EventAttributeValue(res.Events, channeltypes.EventTypeSendPacket, key)
		s.Require().NoError(err)
		s.Require().Equal(expValue, value, key)
	}
}

func (s *KeeperTestSuite) TestRecvPacket() {
	testCases := []struct {
		name     string
		data     []byte
		malleate func()
		expAck   []byte
	}{
		{
			"success: result acknowledgement",
			mockData,
			func() {},
			mock.MockAcknowledgement.Acknowledgement(),
		},
		{
			"success: error acknowledgement",
			mock.MockFailPacketData,
			func() {},
			mock.MockFailAcknowledgement.Acknowledgement(),
		},
		{
			"success: application acknowledgement",
			mockData,
			func() {
				s.chainB.App.MockApp.OnRecvPacket = func(sdk.Context, string, ibcchanneltypes.Packet, string) ibcexported.Acknowledgement {
					return ibcchanneltypes.NewResultAcknowledgement([]byte("custom"))
				}
			},
			ibcchanneltypes.NewResultAcknowledgement([]byte("custom")).Acknowledgement(),
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.SetupTest() // reset

			path := s.newMockPath(channeltypes.UNORDERED)
			tc.malleate()

			packet := s.sendMockPacket(path, tc.data, s.defaultTimeoutHeight(), 0)

			res, err := path.EndpointB.RecvPacket(packet)
			s.Require().NoError(err)
			s.Require().Equal(tc.expAck, res.Data)

			s.Require().True(relayer.HasEvent(res.Events, channeltypes.EventTypeRecvPacket))
			ackHex, err := relayer.EventAttributeValue(res.Events, channeltypes.EventTypeWriteAck, channeltypes.AttributeKeyAckHex)
			s.Require().NoError(err)
			s.Require().NotEmpty(ackHex)

			// the receiving chain stores the acknowledgement
			ack, err := s.chainB.App.IBCKeeper.PacketAcks.Get(s.chainB.GetContext(), packetKey(packet.DestinationPort, packet.DestinationChannel, packet.Sequence))
			s.Require().NoError(err)
			s.Require().Equal(tc.expAck, ack.Ack)

			// a packet is received at most once
			_, err = path.EndpointB.RecvPacket(packet)
			s.Require().ErrorIs(err, channeltypes.ErrPacketReceived)
		})
	}
}

func (s *KeeperTestSuite) TestRecvPacketApplicationEvents() {
	path := s.newMockPath(channeltypes.UNORDERED)

	packet := s.sendMockPacket(path, mockData, s.defaultTimeoutHeight(), 0)
	res, err := path.EndpointB.RecvPacket(packet)
	s.Require().NoError(err)

	value, err := relayer.EventAttributeValue(res.Events, mock.MockEventTypeRecvPacket, mock.MockAttributeKey1)
	s.Require().NoError(err)
	s.Require().Equal(mock.MockAttributeValue1, value)

	// events of a failed acknowledgement are kept with error suffixed attribute keys
	packet = s.sendMockPacket(path, mock.MockFailPacketData, s.defaultTimeoutHeight(), 0)
	res, err = path.EndpointB.RecvPacket(packet)
	s.Require().NoError(err)

	_, err = relayer.EventAttributeValue(res.Events, mock.MockEventTypeRecvPacket, mock.MockAttributeKey1)
	s.Require().ErrorIs(err, relayer.ErrMissingEventAttribute)

	value, err = relayer.EventAttributeValue(res.Events, mock.MockEventTypeRecvPacket, mock.MockAttributeKey1+coretypes.ErrorAttributeKeySuffix)
	s.Require().NoError(err)
	s.Require().Equal(mock.MockAttributeValue1, value)
}

func (s *KeeperTestSuite) TestRecvPacketTimeout() {
	testCases := []struct {
		name         string
		order        channeltypes.Order
		malleate     func(path *ibctesting.Path) channeltypes.PacketData
		expCloseInit bool
	}{
		{
			"timeout height elapsed on ordered channel",
			channeltypes.ORDERED,
			func(p *ibctesting.Path) channeltypes.PacketData {
				return s.sendMockPacket(p, mockData, clienttypes.NewHeight(0, uint64(s.chainB.App.BlockHeight())), 0)
			},
			true,
		},
		{
			"timeout height elapsed on unordered channel",
			channeltypes.UNORDERED,
			func(p *ibctesting.Path) channeltypes.PacketData {
				return s.sendMockPacket(p, mockData, clienttypes.NewHeight(0, uint64(s.chainB.App.BlockHeight())), 0)
			},
			false,
		},
		{
			"timeout timestamp elapsed",
			channeltypes.UNORDERED,
			func(p *ibctesting.Path) channeltypes.PacketData {
				return s.sendMockPacket(p, mockData, clienttypes.ZeroHeight(), uint64(s.chainB.App.BlockTime().UnixNano()))
			},
			false,
		},
		{
			"destination channel closed",
			channeltypes.UNORDERED,
			func(p *ibctesting.Path) channeltypes.PacketData {
				packet := s.sendMockPacket(p, mockData, s.defaultTimeoutHeight(), 0)
				s.Require().NoError(p.EndpointB.CloseChannel(true))
				return packet
			},
			false,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.SetupTest() // reset

			p := s.newMockPath(tc.order)
			packet := tc.malleate(p)

			var recvCalled bool
			s.chainB.App.MockApp.OnRecvPacket = func(sdk.Context, string, ibcchanneltypes.Packet, string) ibcexported.Acknowledgement {
				recvCalled = true
				return mock.MockAcknowledgement
			}

			res, err := p.EndpointB.RecvPacket(packet)
			s.Require().NoError(err)
			s.Require().Nil(res.Data)
			s.Require().False(recvCalled)
			s.Require().True(relayer.HasEvent(res.Events, channeltypes.EventTypeTimeoutReceivedPacket))
			s.Require().False(relayer.HasEvent(res.Events, channeltypes.EventTypeWriteAck))
			s.Require().Equal(tc.expCloseInit, relayer.HasEvent(res.Events, channeltypes.EventTypeChannelCloseInit))

			receipt, err := s.chainB.App.IBCKeeper.PacketReceipts.Get(s.chainB.GetContext(), packetKey(packet.DestinationPort, packet.DestinationChannel, packet.Sequence))
			s.Require().NoError(err)
			s.Require().True(receipt.TimedOut)

			if tc.order == channeltypes.ORDERED {
				s.Require().False(p.EndpointB.GetChannel().Open)
			}

			// the timeout is delivered back to the sender
			s.Require().NoError(p.EndpointA.TimeoutPacket(packet))
			s.Require().Equal(tc.order != channeltypes.ORDERED, p.EndpointA.GetChannel().Open)

			err = p.EndpointA.TimeoutPacket(packet)
			s.Require().ErrorIs(err, channeltypes.ErrPacketTimedOut)

			err = p.EndpointA.AcknowledgePacket(packet, mock.MockAcknowledgement.Acknowledgement())
			s.Require().ErrorIs(err, channeltypes.ErrPacketTimedOut)
		})
	}
}

func (s *KeeperTestSuite) TestRecvPacketFailures() {
	path := s.newMockPath(channeltypes.UNORDERED)
	packet := s.sendMockPacket(path, mockData, s.defaultTimeoutHeight(), 0)

	unknown := packet
	unknown.DestinationChannel = "channel-9"
	_, err := path.EndpointB.RecvPacket(unknown)
	s.Require().ErrorIs(err, channeltypes.ErrChannelNotFound)

	invalid := packet
	invalid.Sequence = 0
	_, err = path.EndpointB.RecvPacket(invalid)
	s.Require().ErrorIs(err, channeltypes.ErrInvalidPacket)

	s.chainB.App.MockApp.OnRecvPacket = func(sdk.Context, string, ibcchanneltypes.Packet, string) ibcexported.Acknowledgement {
		return nil
	}
	_, err = path.EndpointB.RecvPacket(packet)
	s.Require().ErrorIs(err, channeltypes.ErrInvalidAcknowledgement)

	// the failed receive leaves no receipt behind
	has, err := s.chainB.App.IBCKeeper.PacketReceipts.Has(s.chainB.GetContext(), packetKey(packet.DestinationPort, packet.DestinationChannel, packet.Sequence))
	s.Require().NoError(err)
	s.Require().False(has)
}

func (s *KeeperTestSuite) TestAcknowledgePacket() {
	path := s.newMockPath(channeltypes.UNORDERED)
	packet := s.sendMockPacket(path, mockData, s.defaultTimeoutHeight(), 0)

	res, err := path.EndpointB.RecvPacket(packet)
	s.Require().NoError(err)
	ack := res.Data

	err = path.EndpointA.AcknowledgePacket(packet, nil)
	s.Require().ErrorIs(err, channeltypes.ErrInvalidAcknowledgement)

	unknown := packet
	unknown.Sequence = 5
	err = path.EndpointA.AcknowledgePacket(unknown, ack)
	s.Require().ErrorIs(err, channeltypes.ErrPacketNotFound)

	// a failing callback leaves the packet pending
	s.chainA.App.MockApp.OnAcknowledgementPacket = func(sdk.Context, string, ibcchanneltypes.Packet, []byte, string) error {
		return mock.MockApplicationCallbackError
	}
	err = path.EndpointA.AcknowledgePacket(packet, ack)
	s.Require().ErrorIs(err, mock.MockApplicationCallbackError)

	stored, err := path.EndpointA.QueryPacket(packet.Sequence)
	s.Require().NoError(err)
	s.Require().False(stored.IsAcknowledged())

	var received []byte
	s.chainA.App.MockApp.OnAcknowledgementPacket = func(_ sdk.Context, _ string, _ ibcchanneltypes.Packet, acknowledgement []byte, relayerAddr string) error {
		received = acknowledgement
		if relayerAddr == "" {
			return errors.New("relayer address not set")
		}
		return nil
	}
	res, err = path.EndpointA.Sudo(channeltypes.NewMsgAcknowledgePacket(packet, ack))
	s.Require().NoError(err)
	s.Require().Equal(ack, received)
	s.Require().True(relayer.HasEvent(res.Events, channeltypes.EventTypeAcknowledgePacket))

	stored, err = path.EndpointA.QueryPacket(packet.Sequence)
	s.Require().NoError(err)
	s.Require().Equal(ack, stored.Ack)

	err = path.EndpointA.AcknowledgePacket(packet, ack)
	s.Require().ErrorIs(err, channeltypes.ErrPacketAcknowledged)

	err = path.EndpointA.TimeoutPacket(packet)
	s.Require().ErrorIs(err, channeltypes.ErrPacketAcknowledged)
}

func (s *KeeperTestSuite) TestTimeoutPacketCallbackError() {
	path := s.newMockPath(channeltypes.ORDERED)
	packet := s.sendMockPacket(path, mockData, clienttypes.NewHeight(0, uint64(s.chainB.App.BlockHeight())), 0)

	_, err := path.EndpointB.RecvPacket(packet)
	s.Require().NoError(err)

	s.chainA.App.MockApp.OnTimeoutPacket = func(sdk.Context, string, ibcchanneltypes.Packet, string) error {
		return mock.MockApplicationCallbackError
	}
	err = path.EndpointA.TimeoutPacket(packet)
	s.Require().ErrorIs(err, mock.MockApplicationCallbackError)

	// nothing was written by the failed timeout
	s.Require().True(path.EndpointA.GetChannel().Open)

	s.chainA.App.MockApp.OnTimeoutPacket = nil
	res, err := path.EndpointA.Sudo(channeltypes.NewMsgTimeoutPacket(packet))
	s.Require().NoError(err)
	s.Require().True(relayer.HasEvent(res.Events, channeltypes.EventTypeTimeoutPacket))
	s.Require().True(relayer.HasEvent(res.Events, mock.MockEventTypeTimeoutPacket))
	s.Require().False(path.EndpointA.GetChannel().Open)
}
