package keeper

import (
	"encoding/hex"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	connectiontypes "github.com/cosmos/simibc/modules/core/03-connection/types"
	channeltypes "github.com/cosmos/simibc/modules/core/04-channel/types"
)

// emitConnectionOpenEvent emits an event for a created or updated connection.
func emitConnectionOpenEvent(ctx sdk.Context, connectionID string, connection connectiontypes.Connection) {
	ctx.EventManager().EmitEvents(sdk.Events{
		sdk.NewEvent(
			connectiontypes.EventTypeConnectionOpen,
			sdk.NewAttribute(connectiontypes.AttributeKeyConnectionID, connectionID),
			sdk.NewAttribute(connectiontypes.AttributeKeyCounterpartyChainID, connection.CounterpartyChainID),
			sdk.NewAttribute(connectiontypes.AttributeKeyCounterpartyConnectionID, connection.CounterpartyConnectionID),
		),
		sdk.NewEvent(
			sdk.EventTypeMessage,
			sdk.NewAttribute(sdk.AttributeKeyModule, connectiontypes.AttributeValueCategory),
		),
	})
}

// emitChannelOpenEvent emits a channel_open_init or channel_open_try event.
func emitChannelOpenEvent(ctx sdk.Context, eventType string, handshake channeltypes.ChannelHandshakeInfo) {
	ctx.EventManager().EmitEvents(sdk.Events{
		sdk.NewEvent(
			eventType,
			sdk.NewAttribute(channeltypes.AttributeKeyPortID, handshake.LocalEndpoint.PortID),
			sdk.NewAttribute(channeltypes.AttributeKeyChannelID, handshake.LocalEndpoint.ChannelID),
			sdk.NewAttribute(channeltypes.AttributeKeyCounterpartyPortID, handshake.RemoteEndpoint.PortID),
			sdk.NewAttribute(channeltypes.AttributeKeyCounterpartyChannelID, handshake.RemoteEndpoint.ChannelID),
			sdk.NewAttribute(channeltypes.AttributeKeyConnectionID, handshake.ConnectionID),
			sdk.NewAttribute(channeltypes.AttributeKeyVersion, handshake.Version),
		),
		sdk.NewEvent(
			sdk.EventTypeMessage,
			sdk.NewAttribute(sdk.AttributeKeyModule, channeltypes.AttributeValueCategory),
		),
	})
}

// emitChannelEvent emits the ack, confirm and close events of an established channel end.
func emitChannelEvent(ctx sdk.Context, eventType string, channel channeltypes.Channel) {
	ctx.EventManager().EmitEvents(sdk.Events{
		sdk.NewEvent(
			eventType,
			sdk.NewAttribute(channeltypes.AttributeKeyPortID, channel.Endpoint.PortID),
			sdk.NewAttribute(channeltypes.AttributeKeyChannelID, channel.Endpoint.ChannelID),
			sdk.NewAttribute(channeltypes.AttributeKeyCounterpartyPortID, channel.CounterpartyEndpoint.PortID),
			sdk.NewAttribute(channeltypes.AttributeKeyCounterpartyChannelID, channel.CounterpartyEndpoint.ChannelID),
			sdk.NewAttribute(channeltypes.AttributeKeyConnectionID, channel.ConnectionID),
			sdk.NewAttribute(channeltypes.AttributeKeyVersion, channel.Version),
		),
		sdk.NewEvent(
			sdk.EventTypeMessage,
			sdk.NewAttribute(sdk.AttributeKeyModule, channeltypes.AttributeValueCategory),
		),
	})
}

// packetAttributes returns the attributes shared by the send, receive and receive timeout
// events.
func packetAttributes(packet channeltypes.PacketData, channel channeltypes.Channel) []sdk.Attribute {
	return []sdk.Attribute{
		sdk.NewAttribute(channeltypes.AttributeKeyData, string(packet.Data)),
		sdk.NewAttribute(channeltypes.AttributeKeyDataHex, hex.EncodeToString(packet.Data)),
		sdk.NewAttribute(channeltypes.AttributeKeyTimeoutHeight, packet.Timeout.Height.String()),
		sdk.NewAttribute(channeltypes.AttributeKeyTimeoutTimestamp, fmt.Sprintf("%d", packet.Timeout.Timestamp)),
		sdk.NewAttribute(channeltypes.AttributeKeySequence, fmt.Sprintf("%d", packet.Sequence)),
		sdk.NewAttribute(channeltypes.AttributeKeySrcPort, packet.SourcePort),
		sdk.NewAttribute(channeltypes.AttributeKeySrcChannel, packet.SourceChannel),
		sdk.NewAttribute(channeltypes.AttributeKeyDstPort, packet.DestinationPort),
		sdk.NewAttribute(channeltypes.AttributeKeyDstChannel, packet.DestinationChannel),
		sdk.NewAttribute(channeltypes.AttributeKeyChannelOrdering, channel.Order.String()),
		sdk.NewAttribute(channeltypes.AttributeKeyConnection, channel.ConnectionID),
	}
}

// emitPacketEvent emits a send_packet, recv_packet or timeout_received_packet event.
func emitPacketEvent(ctx sdk.Context, eventType string, packet channeltypes.PacketData, channel channeltypes.Channel) {
	ctx.EventManager().EmitEvents(sdk.Events{
		sdk.NewEvent(eventType, packetAttributes(packet, channel)...),
		sdk.NewEvent(
			sdk.EventTypeMessage,
			sdk.NewAttribute(sdk.AttributeKeyModule, channeltypes.AttributeValueCategory),
		),
	})
}

// emitWriteAcknowledgementEvent emits an event that the relayer can query for
func emitWriteAcknowledgementEvent(ctx sdk.Context, packet channeltypes.PacketData, channel channeltypes.Channel, ack []byte) {
	ctx.EventManager().EmitEvents(sdk.Events{
		sdk.NewEvent(
			channeltypes.EventTypeWriteAck,
			sdk.NewAttribute(channeltypes.AttributeKeyData, string(packet.Data)),
			sdk.NewAttribute(channeltypes.AttributeKeyDataHex, hex.EncodeToString(packet.Data)),
			sdk.NewAttribute(channeltypes.AttributeKeyTimeoutHeight, packet.Timeout.Height.String()),
			sdk.NewAttribute(channeltypes.AttributeKeyTimeoutTimestamp, fmt.Sprintf("%d", packet.Timeout.Timestamp)),
			sdk.NewAttribute(channeltypes.AttributeKeySequence, fmt.Sprintf("%d", packet.Sequence)),
			sdk.NewAttribute(channeltypes.AttributeKeySrcPort, packet.SourcePort),
			sdk.NewAttribute(channeltypes.AttributeKeySrcChannel, packet.SourceChannel),
			sdk.NewAttribute(channeltypes.AttributeKeyDstPort, packet.DestinationPort),
			sdk.NewAttribute(channeltypes.AttributeKeyDstChannel, packet.DestinationChannel),
			sdk.NewAttribute(channeltypes.AttributeKeyAck, string(ack)),
			sdk.NewAttribute(channeltypes.AttributeKeyAckHex, hex.EncodeToString(ack)),
			sdk.NewAttribute(channeltypes.AttributeKeyConnection, channel.ConnectionID),
		),
		sdk.NewEvent(
			sdk.EventTypeMessage,
			sdk.NewAttribute(sdk.AttributeKeyModule, channeltypes.AttributeValueCategory),
		),
	})
}

// emitAcknowledgePacketEvent emits an acknowledge packet event on the sending chain.
func emitAcknowledgePacketEvent(ctx sdk.Context, packet channeltypes.PacketData, channel channeltypes.Channel) {
	ctx.EventManager().EmitEvents(sdk.Events{
		sdk.NewEvent(
			channeltypes.EventTypeAcknowledgePacket,
			sdk.NewAttribute(channeltypes.AttributeKeyTimeoutHeight, packet.Timeout.Height.String()),
			sdk.NewAttribute(channeltypes.AttributeKeyTimeoutTimestamp, fmt.Sprintf("%d", packet.Timeout.Timestamp)),
			sdk.NewAttribute(channeltypes.AttributeKeySequence, fmt.Sprintf("%d", packet.Sequence)),
			sdk.NewAttribute(channeltypes.AttributeKeySrcPort, packet.SourcePort),
			sdk.NewAttribute(channeltypes.AttributeKeySrcChannel, packet.SourceChannel),
			sdk.NewAttribute(channeltypes.AttributeKeyDstPort, packet.DestinationPort),
			sdk.NewAttribute(channeltypes.AttributeKeyDstChannel, packet.DestinationChannel),
			sdk.NewAttribute(channeltypes.AttributeKeyChannelOrdering, channel.Order.String()),
			sdk.NewAttribute(channeltypes.AttributeKeyConnection, channel.ConnectionID),
		),
		sdk.NewEvent(
			sdk.EventTypeMessage,
			sdk.NewAttribute(sdk.AttributeKeyModule, channeltypes.AttributeValueCategory),
		),
	})
}

// emitTimeoutPacketEvent emits a timeout packet event on the sending chain.
func emitTimeoutPacketEvent(ctx sdk.Context, packet channeltypes.PacketData, channel channeltypes.Channel) {
	ctx.EventManager().EmitEvents(sdk.Events{
		sdk.NewEvent(
			channeltypes.EventTypeTimeoutPacket,
			sdk.NewAttribute(channeltypes.AttributeKeyTimeoutHeight, packet.Timeout.Height.String()),
			sdk.NewAttribute(channeltypes.AttributeKeyTimeoutTimestamp, fmt.Sprintf("%d", packet.Timeout.Timestamp)),
			sdk.NewAttribute(channeltypes.AttributeKeySequence, fmt.Sprintf("%d", packet.Sequence)),
			sdk.NewAttribute(channeltypes.AttributeKeySrcPort, packet.SourcePort),
			sdk.NewAttribute(channeltypes.AttributeKeySrcChannel, packet.SourceChannel),
			sdk.NewAttribute(channeltypes.AttributeKeyDstPort, packet.DestinationPort),
			sdk.NewAttribute(channeltypes.AttributeKeyDstChannel, packet.DestinationChannel),
			sdk.NewAttribute(channeltypes.AttributeKeyChannelOrdering, channel.Order.String()),
		),
		sdk.NewEvent(
			sdk.EventTypeMessage,
			sdk.NewAttribute(sdk.AttributeKeyModule, channeltypes.AttributeValueCategory),
		),
	})
}
