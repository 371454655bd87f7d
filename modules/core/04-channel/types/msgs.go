package types

import (
	errorsmod "cosmossdk.io/errors"

	host "github.com/cosmos/simibc/modules/core/24-host"
	ibcerrors "github.com/cosmos/simibc/modules/core/errors"
	"github.com/cosmos/simibc/modules/core/exported"
)

var (
	_ exported.SudoMsg = (*MsgOpenChannel)(nil)
	_ exported.SudoMsg = (*MsgConnectChannel)(nil)
	_ exported.SudoMsg = (*MsgCloseChannel)(nil)
	_ exported.SudoMsg = (*MsgSendPacket)(nil)
	_ exported.SudoMsg = (*MsgRecvPacket)(nil)
	_ exported.SudoMsg = (*MsgAcknowledgePacket)(nil)
	_ exported.SudoMsg = (*MsgTimeoutPacket)(nil)
)

// MsgOpenChannel runs the first handshake step of a channel end. Without a counterparty
// version it is the INIT step, with one it is the TRY step and the counterparty channel
// identifier must be known.
type MsgOpenChannel struct {
	ConnectionID        string   `json:"connection_id"`
	PortID              string   `json:"port_id"`
	Version             string   `json:"version"`
	Order               Order    `json:"order"`
	CounterpartyVersion string   `json:"counterparty_version,omitempty"`
	Counterparty        Endpoint `json:"counterparty_endpoint"`
}

// NewMsgChannelOpenInit returns the INIT step message.
func NewMsgChannelOpenInit(connectionID, portID, version string, order Order, counterpartyPortID string) *MsgOpenChannel {
	return &MsgOpenChannel{
		ConnectionID: connectionID,
		PortID:       portID,
		Version:      version,
		Order:        order,
		Counterparty: NewEndpoint(counterpartyPortID, ""),
	}
}

// NewMsgChannelOpenTry returns the TRY step message.
func NewMsgChannelOpenTry(connectionID, portID, version string, order Order, counterparty Endpoint, counterpartyVersion string) *MsgOpenChannel {
	return &MsgOpenChannel{
		ConnectionID:        connectionID,
		PortID:              portID,
		Version:             version,
		Order:               order,
		CounterpartyVersion: counterpartyVersion,
		Counterparty:        counterparty,
	}
}

// IsTry reports whether the message is the TRY step of the handshake.
func (msg *MsgOpenChannel) IsTry() bool {
	return msg.CounterpartyVersion != ""
}

// Type implements exported.SudoMsg.
func (msg *MsgOpenChannel) Type() string {
	if msg.IsTry() {
		return "channel_open_try"
	}
	return "channel_open_init"
}

// ValidateBasic implements exported.SudoMsg.
func (msg *MsgOpenChannel) ValidateBasic() error {
	if err := host.ConnectionIdentifierValidator(msg.ConnectionID); err != nil {
		return errorsmod.Wrap(err, "invalid connection ID")
	}
	if err := host.PortIdentifierValidator(msg.PortID); err != nil {
		return errorsmod.Wrap(err, "invalid port ID")
	}
	if msg.Order != ORDERED && msg.Order != UNORDERED {
		return errorsmod.Wrapf(ErrInvalidChannelOrdering, "channel order %s is not supported", msg.Order)
	}
	if err := msg.Counterparty.ValidateBasic(!msg.IsTry()); err != nil {
		return errorsmod.Wrap(err, "invalid counterparty")
	}
	if !msg.IsTry() && msg.Counterparty.ChannelID != "" {
		return errorsmod.Wrap(ErrInvalidChannelState, "counterparty channel identifier must be empty on channel open init")
	}
	return nil
}

// MsgConnectChannel runs the final handshake step of a channel end. It is the ACK step on
// the chain that ran INIT and the CONFIRM step on the chain that ran TRY.
type MsgConnectChannel struct {
	PortID              string   `json:"port_id"`
	ChannelID           string   `json:"channel_id"`
	CounterpartyVersion string   `json:"counterparty_version,omitempty"`
	Counterparty        Endpoint `json:"counterparty_endpoint"`
}

// NewMsgConnectChannel returns a new MsgConnectChannel instance.
func NewMsgConnectChannel(portID, channelID string, counterparty Endpoint, counterpartyVersion string) *MsgConnectChannel {
	return &MsgConnectChannel{
		PortID:              portID,
		ChannelID:           channelID,
		CounterpartyVersion: counterpartyVersion,
		Counterparty:        counterparty,
	}
}

// Type implements exported.SudoMsg.
func (*MsgConnectChannel) Type() string { return "channel_connect" }

// ValidateBasic implements exported.SudoMsg.
func (msg *MsgConnectChannel) ValidateBasic() error {
	if err := NewEndpoint(msg.PortID, msg.ChannelID).ValidateBasic(false); err != nil {
		return err
	}
	if err := msg.Counterparty.ValidateBasic(false); err != nil {
		return errorsmod.Wrap(err, "invalid counterparty")
	}
	return nil
}

// MsgCloseChannel closes a channel end. Init is set on the chain that starts the closing.
type MsgCloseChannel struct {
	PortID    string `json:"port_id"`
	ChannelID string `json:"channel_id"`
	Init      bool   `json:"init"`
}

// NewMsgCloseChannel returns a new MsgCloseChannel instance.
func NewMsgCloseChannel(portID, channelID string, init bool) *MsgCloseChannel {
	return &MsgCloseChannel{PortID: portID, ChannelID: channelID, Init: init}
}

// Type implements exported.SudoMsg.
func (msg *MsgCloseChannel) Type() string {
	if msg.Init {
		return "channel_close_init"
	}
	return "channel_close_confirm"
}

// ValidateBasic implements exported.SudoMsg.
func (msg *MsgCloseChannel) ValidateBasic() error {
	return NewEndpoint(msg.PortID, msg.ChannelID).ValidateBasic(false)
}

// MsgSendPacket sends Data over an open channel on behalf of the module bound to PortID.
type MsgSendPacket struct {
	PortID    string  `json:"port_id"`
	ChannelID string  `json:"channel_id"`
	Data      []byte  `json:"data"`
	Timeout   Timeout `json:"timeout"`
}

// NewMsgSendPacket returns a new MsgSendPacket instance.
func NewMsgSendPacket(portID, channelID string, data []byte, timeout Timeout) *MsgSendPacket {
	return &MsgSendPacket{PortID: portID, ChannelID: channelID, Data: data, Timeout: timeout}
}

// Type implements exported.SudoMsg.
func (*MsgSendPacket) Type() string { return "send_packet" }

// ValidateBasic implements exported.SudoMsg.
func (msg *MsgSendPacket) ValidateBasic() error {
	if err := NewEndpoint(msg.PortID, msg.ChannelID).ValidateBasic(false); err != nil {
		return err
	}
	if !msg.Timeout.IsValid() {
		return errorsmod.Wrap(ErrInvalidTimeout, "packet timeout height and packet timeout timestamp cannot both be 0")
	}
	return nil
}

// MsgRecvPacket delivers a packet to the destination chain.
type MsgRecvPacket struct {
	Packet PacketData `json:"packet"`
}

// NewMsgRecvPacket returns a new MsgRecvPacket instance.
func NewMsgRecvPacket(packet PacketData) *MsgRecvPacket {
	return &MsgRecvPacket{Packet: packet}
}

// Type implements exported.SudoMsg.
func (*MsgRecvPacket) Type() string { return "recv_packet" }

// ValidateBasic implements exported.SudoMsg.
func (msg *MsgRecvPacket) ValidateBasic() error {
	return msg.Packet.ValidateBasic()
}

// MsgAcknowledgePacket delivers the acknowledgement of a packet back to its source chain.
type MsgAcknowledgePacket struct {
	Packet          PacketData `json:"packet"`
	Acknowledgement []byte     `json:"acknowledgement"`
}

// NewMsgAcknowledgePacket returns a new MsgAcknowledgePacket instance.
func NewMsgAcknowledgePacket(packet PacketData, ack []byte) *MsgAcknowledgePacket {
	return &MsgAcknowledgePacket{Packet: packet, Acknowledgement: ack}
}

// Type implements exported.SudoMsg.
func (*MsgAcknowledgePacket) Type() string { return "acknowledge_packet" }

// ValidateBasic implements exported.SudoMsg.
func (msg *MsgAcknowledgePacket) ValidateBasic() error {
	if len(msg.Acknowledgement) == 0 {
		return errorsmod.Wrap(ErrInvalidAcknowledgement, "ack bytes cannot be empty")
	}
	return msg.Packet.ValidateBasic()
}

// MsgTimeoutPacket notifies the source chain that a packet timed out on its destination.
type MsgTimeoutPacket struct {
	Packet PacketData `json:"packet"`
}

// NewMsgTimeoutPacket returns a new MsgTimeoutPacket instance.
func NewMsgTimeoutPacket(packet PacketData) *MsgTimeoutPacket {
	return &MsgTimeoutPacket{Packet: packet}
}

// Type implements exported.SudoMsg.
func (*MsgTimeoutPacket) Type() string { return "timeout_packet" }

// ValidateBasic implements exported.SudoMsg.
func (msg *MsgTimeoutPacket) ValidateBasic() error {
	return msg.Packet.ValidateBasic()
}

// validateSequence is shared by the packet queries.
func validateSequence(sequence uint64) error {
	if sequence == 0 {
		return errorsmod.Wrap(ibcerrors.ErrInvalidRequest, "packet sequence cannot be 0")
	}
	return nil
}
