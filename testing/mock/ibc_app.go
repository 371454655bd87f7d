package mock

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	ibcchanneltypes "github.com/cosmos/ibc-go/v10/modules/core/04-channel/types"
	ibcexported "github.com/cosmos/ibc-go/v10/modules/core/exported"

	channeltypes "github.com/cosmos/simibc/modules/core/04-channel/types"
)

// IBCApp contains IBC application module callbacks as defined in 05-port. A nil callback
// falls back to the default mock behaviour.
type IBCApp struct {
	PortID string

	OnChanOpenInit func(
		ctx sdk.Context,
		order channeltypes.Order,
		connectionID string,
		portID string,
		channelID string,
		counterparty channeltypes.Endpoint,
		version string,
	) (string, error)

	OnChanOpenTry func(
		ctx sdk.Context,
		order channeltypes.Order,
		connectionID string,
		portID,
		channelID string,
		counterparty channeltypes.Endpoint,
		counterpartyVersion string,
	) (version string, err error)

	OnChanOpenAck func(
		ctx sdk.Context,
		portID,
		channelID string,
		counterpartyChannelID string,
		counterpartyVersion string,
	) error

	OnChanOpenConfirm func(
		ctx sdk.Context,
		portID,
		channelID string,
	) error

	OnChanCloseInit func(
		ctx sdk.Context,
		portID,
		channelID string,
	) error

	OnChanCloseConfirm func(
		ctx sdk.Context,
		portID,
		channelID string,
	) error

	// OnRecvPacket must return an acknowledgement that implements the Acknowledgement interface.
	// If the acknowledgement returned is successful, the state changes on callback are written,
	// otherwise the application state changes are discarded.
	OnRecvPacket func(
		ctx sdk.Context,
		channelVersion string,
		packet ibcchanneltypes.Packet,
		relayer string,
	) ibcexported.Acknowledgement

	OnAcknowledgementPacket func(
		ctx sdk.Context,
		channelVersion string,
		packet ibcchanneltypes.Packet,
		acknowledgement []byte,
		relayer string,
	) error

	OnTimeoutPacket func(
		ctx sdk.Context,
		channelVersion string,
		packet ibcchanneltypes.Packet,
		relayer string,
	) error
}

// NewIBCApp returns a IBCApp bound to portID.
func NewIBCApp(portID string) *IBCApp {
	return &IBCApp{
		PortID: portID,
	}
}
