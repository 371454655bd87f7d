package types

import (
	"fmt"

	"gopkg.in/yaml.v2"

	errorsmod "cosmossdk.io/errors"

	ibcchanneltypes "github.com/cosmos/ibc-go/v10/modules/core/04-channel/types"

	host "github.com/cosmos/simibc/modules/core/24-host"
)

// Order aliases the ibc-go channel ordering so callers need not import ibc-go directly.
type Order = ibcchanneltypes.Order

const (
	ORDERED   = ibcchanneltypes.ORDERED
	UNORDERED = ibcchanneltypes.UNORDERED
)

// Endpoint identifies one end of a channel on its chain.
type Endpoint struct {
	PortID    string `json:"port_id" yaml:"port_id"`
	ChannelID string `json:"channel_id" yaml:"channel_id"`
}

// NewEndpoint returns a new Endpoint instance.
func NewEndpoint(portID, channelID string) Endpoint {
	return Endpoint{PortID: portID, ChannelID: channelID}
}

// String implements fmt.Stringer.
func (e Endpoint) String() string {
	return fmt.Sprintf("%s/%s", e.PortID, e.ChannelID)
}

// ValidateBasic performs a basic validation of the endpoint identifiers. An empty channel
// identifier is only accepted when allowEmptyChannel is set.
func (e Endpoint) ValidateBasic(allowEmptyChannel bool) error {
	if err := host.PortIdentifierValidator(e.PortID); err != nil {
		return errorsmod.Wrapf(err, "invalid port ID %s", e.PortID)
	}
	if allowEmptyChannel && e.ChannelID == "" {
		return nil
	}
	if err := host.ChannelIdentifierValidator(e.ChannelID); err != nil {
		return errorsmod.Wrapf(err, "invalid channel ID %s", e.ChannelID)
	}
	return nil
}

// HandshakeState is the progress of a channel handshake on one chain.
type HandshakeState string

const (
	StateInit    HandshakeState = "STATE_INIT"
	StateTry     HandshakeState = "STATE_TRYOPEN"
	StateAck     HandshakeState = "STATE_ACK"
	StateConfirm HandshakeState = "STATE_CONFIRM"
)

// ChannelHandshakeInfo is the record of a channel end that has not completed its handshake.
type ChannelHandshakeInfo struct {
	ConnectionID   string         `json:"connection_id" yaml:"connection_id"`
	LocalEndpoint  Endpoint       `json:"local_endpoint" yaml:"local_endpoint"`
	RemoteEndpoint Endpoint       `json:"remote_endpoint" yaml:"remote_endpoint"`
	State          HandshakeState `json:"state" yaml:"state"`
	Order          Order          `json:"order" yaml:"order"`
	Version        string         `json:"version" yaml:"version"`
}

// Channel describes an established channel end.
type Channel struct {
	Endpoint             Endpoint `json:"endpoint" yaml:"endpoint"`
	CounterpartyEndpoint Endpoint `json:"counterparty_endpoint" yaml:"counterparty_endpoint"`
	Order                Order    `json:"order" yaml:"order"`
	Version              string   `json:"version" yaml:"version"`
	ConnectionID         string   `json:"connection_id" yaml:"connection_id"`
}

// ChannelInfo is the record of an established channel end. Open only goes from true to
// false.
type ChannelInfo struct {
	NextSequenceSend uint64  `json:"next_sequence_send" yaml:"next_sequence_send"`
	Channel          Channel `json:"channel" yaml:"channel"`
	Open             bool    `json:"open" yaml:"open"`
}

// NewChannelInfo returns an open ChannelInfo whose first packet gets sequence 1.
func NewChannelInfo(channel Channel) ChannelInfo {
	return ChannelInfo{
		NextSequenceSend: 1,
		Channel:          channel,
		Open:             true,
	}
}

// String implements fmt.Stringer.
func (ci ChannelInfo) String() string {
	out, _ := yaml.Marshal(ci)
	return string(out)
}

// IdentifiedChannel pairs a ChannelInfo with its local identifiers.
type IdentifiedChannel struct {
	PortID      string      `json:"port_id"`
	ChannelID   string      `json:"channel_id"`
	ChannelInfo ChannelInfo `json:"channel_info"`
}

// PortInfo holds the per port channel identifier counter.
type PortInfo struct {
	NextChannelSequence uint64 `json:"next_channel_sequence"`
}
