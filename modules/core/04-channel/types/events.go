package types

import (
	"fmt"

	"github.com/cosmos/simibc/modules/core/exported"
)

// Channel and packet event types and attribute keys.
const (
	AttributeKeyConnectionID          = "connection_id"
	AttributeKeyPortID                = "port_id"
	AttributeKeyChannelID             = "channel_id"
	AttributeKeyVersion               = "version"
	AttributeKeyCounterpartyPortID    = "counterparty_port_id"
	AttributeKeyCounterpartyChannelID = "counterparty_channel_id"

	EventTypeSendPacket            = "send_packet"
	EventTypeRecvPacket            = "recv_packet"
	EventTypeWriteAck              = "write_acknowledgement"
	EventTypeAcknowledgePacket     = "acknowledge_packet"
	EventTypeTimeoutPacket         = "timeout_packet"
	EventTypeTimeoutReceivedPacket = "timeout_received_packet"

	// raw bytes as a string, readable for text payloads only; the relayer reads the hex forms
	AttributeKeyData = "packet_data"
	AttributeKeyAck  = "packet_ack"

	AttributeKeyDataHex          = "packet_data_hex"
	AttributeKeyAckHex           = "packet_ack_hex"
	AttributeKeyTimeoutHeight    = "packet_timeout_height"
	AttributeKeyTimeoutTimestamp = "packet_timeout_timestamp"
	AttributeKeySequence         = "packet_sequence"
	AttributeKeySrcPort          = "packet_src_port"
	AttributeKeySrcChannel       = "packet_src_channel"
	AttributeKeyDstPort          = "packet_dst_port"
	AttributeKeyDstChannel       = "packet_dst_channel"
	AttributeKeyChannelOrdering  = "packet_channel_ordering"
	AttributeKeyConnection       = "packet_connection"
)

// Handshake event types.
var (
	EventTypeChannelOpenInit     = "channel_open_init"
	EventTypeChannelOpenTry      = "channel_open_try"
	EventTypeChannelOpenAck      = "channel_open_ack"
	EventTypeChannelOpenConfirm  = "channel_open_confirm"
	EventTypeChannelCloseInit    = "channel_close_init"
	EventTypeChannelCloseConfirm = "channel_close_confirm"
)

// AttributeValueCategory is the module attribute of the message events of channel handlers.
var AttributeValueCategory = fmt.Sprintf("%s_%s", exported.ModuleName, SubModuleName)
