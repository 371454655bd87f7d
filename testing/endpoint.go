package ibctesting

import (
	"encoding/json"

	"github.com/stretchr/testify/require"

	sdk "github.com/cosmos/cosmos-sdk/types"

	clienttypes "github.com/cosmos/ibc-go/v10/modules/core/02-client/types"

	connectiontypes "github.com/cosmos/simibc/modules/core/03-connection/types"
	channeltypes "github.com/cosmos/simibc/modules/core/04-channel/types"
	"github.com/cosmos/simibc/modules/core/exported"
)

// Endpoint is a which represents a channel endpoint and its associated
// connection. It contains a pointer to the counterparty endpoint.
type Endpoint struct {
	Chain        *TestChain
	Counterparty *Endpoint
	ConnectionID string
	ChannelID    string

	ChannelConfig *ChannelConfig
}

// NewEndpoint constructs a new endpoint without the counterparty.
// CONTRACT: the counterparty endpoint must be set by the caller.
func NewEndpoint(chain *TestChain, channelConfig *ChannelConfig) *Endpoint {
	return &Endpoint{
		Chain:         chain,
		ChannelConfig: channelConfig,
	}
}

// NewDefaultEndpoint constructs a new endpoint using default values.
// CONTRACT: the counterparty endpoint must be set by the caller.
func NewDefaultEndpoint(chain *TestChain) *Endpoint {
	return NewEndpoint(chain, NewChannelConfig())
}

// Sudo runs a privileged ibc message on the chain of the endpoint.
func (endpoint *Endpoint) Sudo(msg exported.SudoMsg) (*sdk.Result, error) {
	return endpoint.Chain.App.Sudo(msg)
}

// GetConnection retrieves the connection end of this endpoint. It fails the test
// if the connection does not exist.
func (endpoint *Endpoint) GetConnection() connectiontypes.Connection {
	connection, err := endpoint.Chain.App.IBCKeeper.GetConnection(endpoint.Chain.GetContext(), endpoint.ConnectionID)
	require.NoError(endpoint.Chain, err)
	return connection
}

// GetChannel retrieves the channel end of this endpoint. It fails the test
// if the channel does not exist.
func (endpoint *Endpoint) GetChannel() channeltypes.ChannelInfo {
	bz, err := endpoint.Chain.App.Query(&channeltypes.QueryChannelInfoRequest{
		PortID:    endpoint.ChannelConfig.PortID,
		ChannelID: endpoint.ChannelID,
	})
	require.NoError(endpoint.Chain, err)

	var channelInfo channeltypes.ChannelInfo
	require.NoError(endpoint.Chain, json.Unmarshal(bz, &channelInfo))
	return channelInfo
}

// SendPacket sends a packet through the channel keeper using the associated endpoint
// The counterparty client is updated so proofs can be sent to the counterparty chain.
// The packet sequence generated for the packet to be sent is returned. An error
// is returned if one occurs.
func (endpoint *Endpoint) SendPacket(
	timeoutHeight clienttypes.Height,
	timeoutTimestamp uint64,
	data []byte,
) (uint64, error) {
	res, err := endpoint.Sudo(channeltypes.NewMsgSendPacket(
		endpoint.ChannelConfig.PortID, endpoint.ChannelID, data,
		channeltypes.NewTimeout(timeoutHeight, timeoutTimestamp),
	))
	if err != nil {
		return 0, err
	}
	return sdk.BigEndianToUint64(res.Data), nil
}

// RecvPacket receives a packet on the associated endpoint.
func (endpoint *Endpoint) RecvPacket(packet channeltypes.PacketData) (*sdk.Result, error) {
	return endpoint.Sudo(channeltypes.NewMsgRecvPacket(packet))
}

// AcknowledgePacket sends a MsgAcknowledgePacket to the channel associated with the endpoint.
func (endpoint *Endpoint) AcknowledgePacket(packet channeltypes.PacketData, ack []byte) error {
	_, err := endpoint.Sudo(channeltypes.NewMsgAcknowledgePacket(packet, ack))
	return err
}

// TimeoutPacket sends a MsgTimeoutPacket to the channel associated with the endpoint.
func (endpoint *Endpoint) TimeoutPacket(packet channeltypes.PacketData) error {
	_, err := endpoint.Sudo(channeltypes.NewMsgTimeoutPacket(packet))
	return err
}

// CloseChannel closes the channel end of the endpoint.
func (endpoint *Endpoint) CloseChannel(init bool) error {
	_, err := endpoint.Sudo(channeltypes.NewMsgCloseChannel(endpoint.ChannelConfig.PortID, endpoint.ChannelID, init))
	return err
}

// QueryPacket returns the sender record of a packet sent on the endpoint.
func (endpoint *Endpoint) QueryPacket(sequence uint64) (channeltypes.PacketData, error) {
	bz, err := endpoint.Chain.App.Query(&channeltypes.QuerySendPacketRequest{
		PortID:    endpoint.ChannelConfig.PortID,
		ChannelID: endpoint.ChannelID,
		Sequence:  sequence,
	})
	if err != nil {
		return channeltypes.PacketData{}, err
	}

	var packet channeltypes.PacketData
	if err := json.Unmarshal(bz, &packet); err != nil {
		return channeltypes.PacketData{}, err
	}
	return packet, nil
}
