package ibctesting

import (
	"github.com/stretchr/testify/require"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/cosmos/simibc/relayer"
)

// Path contains two endpoints representing two chains connected over IBC
type Path struct {
	EndpointA *Endpoint
	EndpointB *Endpoint

	relayer *relayer.Relayer
}

// NewPath constructs an endpoint for each chain using the default values
// for the endpoints. Each endpoint is updated to have a pointer to the
// counterparty endpoint.
func NewPath(chainA, chainB *TestChain) *Path {
	endpointA := NewDefaultEndpoint(chainA)
	endpointB := NewDefaultEndpoint(chainB)

	endpointA.Counterparty = endpointB
	endpointB.Counterparty = endpointA

	return &Path{
		EndpointA: endpointA,
		EndpointB: endpointB,
		relayer:   chainA.Coordinator.Relayer,
	}
}

// NewTransferPath constructs a new path between each chain suitable for use with
// the transfer module.
func NewTransferPath(chainA, chainB *TestChain) *Path {
	path := NewPath(chainA, chainB)
	path.EndpointA.ChannelConfig.PortID = TransferPort
	path.EndpointB.ChannelConfig.PortID = TransferPort

	path.EndpointA.ChannelConfig.Version = TransferVersion
	path.EndpointB.ChannelConfig.Version = TransferVersion

	return path
}

// Setup constructs a connection and a channel on both chainA and chainB. It will fail if
// any error occurs.
func (path *Path) Setup() {
	path.SetupConnections()
	path.CreateChannels()
}

// SetupConnections creates a connection end on both chains and records each other as
// counterparty.
func (path *Path) SetupConnections() {
	connectionA, connectionB, err := path.relayer.CreateConnection(path.EndpointA.Chain.App, path.EndpointB.Chain.App)
	require.NoError(path.EndpointA.Chain, err)

	path.EndpointA.ConnectionID = connectionA
	path.EndpointB.ConnectionID = connectionB
}

// CreateChannels runs the channel handshake from chainA to chainB. It assumes the
// connections already exist.
func (path *Path) CreateChannels() {
	_, err := path.CreateChannelsWithResult()
	require.NoError(path.EndpointA.Chain, err)
}

// CreateChannelsWithResult runs the channel handshake from chainA to chainB and returns the
// response of every step or the first error.
func (path *Path) CreateChannelsWithResult() (*relayer.ChannelCreationResult, error) {
	res, err := path.relayer.CreateChannel(
		path.EndpointA.Chain.App, path.EndpointB.Chain.App,
		path.EndpointA.ConnectionID,
		path.EndpointA.ChannelConfig.PortID, path.EndpointB.ChannelConfig.PortID,
		path.EndpointA.ChannelConfig.Version, path.EndpointA.ChannelConfig.Order,
	)
	if err != nil {
		return nil, err
	}

	path.EndpointA.ChannelID = res.SrcChannel
	path.EndpointB.ChannelID = res.DstChannel
	return res, nil
}

// RelayPacket relays a packet sent on one endpoint to its counterparty and relays the
// outcome back.
func (path *Path) RelayPacket(src *Endpoint, sequence uint64) (*relayer.RelayPacketResult, error) {
	return path.relayer.RelayPacket(src.Chain.App, src.Counterparty.Chain.App, src.ChannelConfig.PortID, src.ChannelID, sequence)
}

// RelayPacketsInTx relays every packet sent by src in the transaction result res.
func (path *Path) RelayPacketsInTx(src *Endpoint, res *sdk.Result) ([]*relayer.RelayPacketResult, error) {
	return path.relayer.RelayPacketsInTx(src.Chain.App, src.Counterparty.Chain.App, res)
}

// Reverse returns a path with endpoint A and endpoint B swapped.
func (path *Path) Reverse() *Path {
	return &Path{
		EndpointA: path.EndpointB,
		EndpointB: path.EndpointA,
		relayer:   path.relayer,
	}
}
