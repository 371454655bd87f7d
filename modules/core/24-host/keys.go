package host

import "cosmossdk.io/collections"

// StoreKey is the name of the KVStore holding every IBC record of a chain.
const StoreKey = "ibc"

// Collection names of the IBC records. They double as schema names and appear in
// collections error messages.
const (
	KeyConnections        = "connections"
	KeyConnectionsByChain = "connections_by_chain"
	KeyConnectionSequence = "connection_sequence"
	KeyPorts              = "ports"
	KeyChannelHandshakes  = "channel_handshakes"
	KeyChannels           = "channels"
	KeyPacketSends        = "packet_sends"
	KeyPacketReceipts     = "packet_receipts"
	KeyPacketAcks         = "packet_acks"
	KeyPacketTimeouts     = "packet_timeouts"
)

// Store prefixes of the IBC records.
var (
	ConnectionsPrefix        = collections.NewPrefix(1)
	ConnectionsByChainPrefix = collections.NewPrefix(2)
	ConnectionSequencePrefix = collections.NewPrefix(3)
	PortsPrefix              = collections.NewPrefix(4)
	ChannelHandshakesPrefix  = collections.NewPrefix(5)
	ChannelsPrefix           = collections.NewPrefix(6)
	PacketSendsPrefix        = collections.NewPrefix(7)
	PacketReceiptsPrefix     = collections.NewPrefix(8)
	PacketAcksPrefix         = collections.NewPrefix(9)
	PacketTimeoutsPrefix     = collections.NewPrefix(10)
)
