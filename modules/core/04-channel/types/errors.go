package types

import (
	errorsmod "cosmossdk.io/errors"
)

const codespace = "simibc-" + SubModuleName

// IBC channel sentinel errors
var (
	ErrChannelNotFound          = errorsmod.Register(codespace, 2, "channel not found")
	ErrChannelClosed            = errorsmod.Register(codespace, 3, "channel is closed")
	ErrHandshakeNotFound        = errorsmod.Register(codespace, 4, "channel handshake not found")
	ErrInvalidChannelState      = errorsmod.Register(codespace, 5, "invalid channel state")
	ErrInvalidChannelOrdering   = errorsmod.Register(codespace, 6, "invalid channel ordering")
	ErrInvalidChannelVersion    = errorsmod.Register(codespace, 7, "invalid channel version")
	ErrPortMismatch             = errorsmod.Register(codespace, 8, "port mismatch")
	ErrInvalidPacket            = errorsmod.Register(codespace, 9, "invalid packet")
	ErrPacketNotFound           = errorsmod.Register(codespace, 10, "packet not found")
	ErrPacketReceived           = errorsmod.Register(codespace, 11, "packet already received")
	ErrPacketAcknowledged       = errorsmod.Register(codespace, 12, "packet already acknowledged")
	ErrPacketTimedOut           = errorsmod.Register(codespace, 13, "packet already timed out")
	ErrInvalidAcknowledgement   = errorsmod.Register(codespace, 14, "invalid acknowledgement")
	ErrInvalidTimeout           = errorsmod.Register(codespace, 15, "invalid packet timeout")
)
