package types

import (
	host "github.com/cosmos/simibc/modules/core/24-host"
	"github.com/cosmos/simibc/modules/core/exported"
)

var (
	_ exported.QueryRequest = (*QuerySendPacketRequest)(nil)
	_ exported.QueryRequest = (*QueryChannelInfoRequest)(nil)
	_ exported.QueryRequest = (*QueryChannelRequest)(nil)
	_ exported.QueryRequest = (*QueryChannelsRequest)(nil)
	_ exported.QueryRequest = (*QueryPacketAcknowledgementRequest)(nil)
)

// QuerySendPacketRequest asks the sending chain for a packet it sent. The response is the
// JSON encoded PacketData.
type QuerySendPacketRequest struct {
	PortID    string `json:"port_id"`
	ChannelID string `json:"channel_id"`
	Sequence  uint64 `json:"sequence"`
}

// ValidateBasic implements exported.QueryRequest.
func (req *QuerySendPacketRequest) ValidateBasic() error {
	if err := NewEndpoint(req.PortID, req.ChannelID).ValidateBasic(false); err != nil {
		return err
	}
	return validateSequence(req.Sequence)
}

// QueryChannelInfoRequest asks for an established channel end. The response is the JSON
// encoded ChannelInfo.
type QueryChannelInfoRequest struct {
	PortID    string `json:"port_id"`
	ChannelID string `json:"channel_id"`
}

// ValidateBasic implements exported.QueryRequest.
func (req *QueryChannelInfoRequest) ValidateBasic() error {
	return NewEndpoint(req.PortID, req.ChannelID).ValidateBasic(false)
}

// QueryChannelRequest asks for a channel end that may not exist. The response is the JSON
// encoded QueryChannelResponse.
type QueryChannelRequest struct {
	PortID    string `json:"port_id"`
	ChannelID string `json:"channel_id"`
}

// ValidateBasic implements exported.QueryRequest.
func (req *QueryChannelRequest) ValidateBasic() error {
	return NewEndpoint(req.PortID, req.ChannelID).ValidateBasic(false)
}

// QueryChannelResponse carries a channel end, nil when it does not exist.
type QueryChannelResponse struct {
	Channel *IdentifiedChannel `json:"channel"`
}

// QueryChannelsRequest lists the established channels bound to a port. The response is
// the JSON encoded QueryChannelsResponse.
type QueryChannelsRequest struct {
	PortID string `json:"port_id"`
}

// ValidateBasic implements exported.QueryRequest.
func (req *QueryChannelsRequest) ValidateBasic() error {
	return host.PortIdentifierValidator(req.PortID)
}

// QueryChannelsResponse lists channels ordered by channel identifier bytes.
type QueryChannelsResponse struct {
	Channels []IdentifiedChannel `json:"channels"`
}

// QueryPacketAcknowledgementRequest asks the receiving chain for the acknowledgement it
// wrote for a packet. The response is the JSON encoded PacketAck.
type QueryPacketAcknowledgementRequest struct {
	PortID    string `json:"port_id"`
	ChannelID string `json:"channel_id"`
	Sequence  uint64 `json:"sequence"`
}

// ValidateBasic implements exported.QueryRequest.
func (req *QueryPacketAcknowledgementRequest) ValidateBasic() error {
	if err := NewEndpoint(req.PortID, req.ChannelID).ValidateBasic(false); err != nil {
		return err
	}
	return validateSequence(req.Sequence)
}
