package types

import (
	"time"

	errorsmod "cosmossdk.io/errors"

	clienttypes "github.com/cosmos/ibc-go/v10/modules/core/02-client/types"
	ibcchanneltypes "github.com/cosmos/ibc-go/v10/modules/core/04-channel/types"
)

// Timeout bounds the delivery of a packet by a height on the destination chain, a
// timestamp in nanoseconds since the unix epoch, or both. Zero values disable a bound.
type Timeout struct {
	Height    clienttypes.Height `json:"height"`
	Timestamp uint64             `json:"timestamp,omitempty"`
}

// NewTimeout returns a new Timeout instance.
func NewTimeout(height clienttypes.Height, timestamp uint64) Timeout {
	return Timeout{Height: height, Timestamp: timestamp}
}

// IsValid returns true if either the height or the timestamp is set.
func (t Timeout) IsValid() bool {
	return !t.Height.IsZero() || t.Timestamp != 0
}

// Elapsed reports whether a chain at the given height and block time can no longer
// deliver a packet bounded by this timeout.
func (t Timeout) Elapsed(height uint64, blockTime time.Time) bool {
	if !t.Height.IsZero() && t.Height.RevisionHeight <= height {
		return true
	}
	return t.Timestamp != 0 && t.Timestamp <= uint64(blockTime.UnixNano())
}

// PacketData is the sender side record of a packet. Ack stays nil while the packet waits
// for its acknowledgement.
type PacketData struct {
	Ack                []byte  `json:"ack,omitempty"`
	SourcePort         string  `json:"src_port_id"`
	SourceChannel      string  `json:"src_channel_id"`
	DestinationPort    string  `json:"dst_port_id"`
	DestinationChannel string  `json:"dst_channel_id"`
	Sequence           uint64  `json:"sequence"`
	Data               []byte  `json:"data"`
	Timeout            Timeout `json:"timeout"`
}

// ValidateBasic checks the identifiers, the sequence and the timeout of the packet.
func (p PacketData) ValidateBasic() error {
	if err := NewEndpoint(p.SourcePort, p.SourceChannel).ValidateBasic(false); err != nil {
		return errorsmod.Wrap(ErrInvalidPacket, err.Error())
	}
	if err := NewEndpoint(p.DestinationPort, p.DestinationChannel).ValidateBasic(false); err != nil {
		return errorsmod.Wrap(ErrInvalidPacket, err.Error())
	}
	if p.Sequence == 0 {
		return errorsmod.Wrap(ErrInvalidPacket, "packet sequence cannot be 0")
	}
	if !p.Timeout.IsValid() {
		return errorsmod.Wrap(ErrInvalidTimeout, "packet timeout height and packet timeout timestamp cannot both be 0")
	}
	return nil
}

// IsAcknowledged reports whether an acknowledgement has been recorded for the packet.
func (p PacketData) IsAcknowledged() bool {
	return p.Ack != nil
}

// ToPacket converts the record into the ibc-go packet handed to application callbacks.
func (p PacketData) ToPacket() ibcchanneltypes.Packet {
	return ibcchanneltypes.NewPacket(
		p.Data, p.Sequence,
		p.SourcePort, p.SourceChannel,
		p.DestinationPort, p.DestinationChannel,
		p.Timeout.Height, p.Timeout.Timestamp,
	)
}

// PacketReceipt is the receiver side record of a packet.
type PacketReceipt struct {
	Packet   PacketData `json:"packet"`
	TimedOut bool       `json:"timed_out"`
}

// PacketAck is the acknowledgement written by the receiving chain.
type PacketAck struct {
	Ack []byte `json:"ack"`
}
