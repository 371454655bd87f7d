package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	clienttypes "github.com/cosmos/ibc-go/v10/modules/core/02-client/types"
	ibcchanneltypes "github.com/cosmos/ibc-go/v10/modules/core/04-channel/types"
	ibcexported "github.com/cosmos/ibc-go/v10/modules/core/exported"

	channeltypes "github.com/cosmos/simibc/modules/core/04-channel/types"
)

// IBCModule is the set of callbacks an application bound to a port receives from the IBC
// keeper. Returning an error from a handshake or packet callback fails the sudo message.
type IBCModule interface {
	// OnChanOpenInit approves the INIT step. It returns the proposed version, or the
	// default version of the application when the proposal is empty.
	OnChanOpenInit(
		ctx sdk.Context,
		order channeltypes.Order,
		connectionID string,
		portID string,
		channelID string,
		counterparty channeltypes.Endpoint,
		version string,
	) (string, error)

	// OnChanOpenTry approves the TRY step. The returned version becomes the version of
	// the local channel end.
	OnChanOpenTry(
		ctx sdk.Context,
		order channeltypes.Order,
		connectionID string,
		portID,
		channelID string,
		counterparty channeltypes.Endpoint,
		counterpartyVersion string,
	) (version string, err error)

	// OnChanOpenAck aborts the handshake when the counterparty version is unacceptable.
	OnChanOpenAck(
		ctx sdk.Context,
		portID,
		channelID string,
		counterpartyChannelID string,
		counterpartyVersion string,
	) error

	OnChanOpenConfirm(
		ctx sdk.Context,
		portID,
		channelID string,
	) error

	OnChanCloseInit(
		ctx sdk.Context,
		portID,
		channelID string,
	) error

	OnChanCloseConfirm(
		ctx sdk.Context,
		portID,
		channelID string,
	) error

	// OnRecvPacket returns the acknowledgement written for the packet. State changes are
	// kept for successful acknowledgements only. A nil acknowledgement is rejected.
	OnRecvPacket(
		ctx sdk.Context,
		channelVersion string,
		packet ibcchanneltypes.Packet,
		relayer string,
	) ibcexported.Acknowledgement

	OnAcknowledgementPacket(
		ctx sdk.Context,
		channelVersion string,
		packet ibcchanneltypes.Packet,
		acknowledgement []byte,
		relayer string,
	) error

	OnTimeoutPacket(
		ctx sdk.Context,
		channelVersion string,
		packet ibcchanneltypes.Packet,
		relayer string,
	) error
}

// ICS4Wrapper is what applications use to send packets and to look up the version of an
// open channel end.
type ICS4Wrapper interface {
	SendPacket(
		ctx sdk.Context,
		sourcePort string,
		sourceChannel string,
		timeoutHeight clienttypes.Height,
		timeoutTimestamp uint64,
		data []byte,
	) (sequence uint64, err error)

	GetAppVersion(
		ctx sdk.Context,
		portID,
		channelID string,
	) (string, bool)
}
