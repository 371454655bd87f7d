package types

import (
	errorsmod "cosmossdk.io/errors"
)

const codespace = "simibc-" + ModuleName

// IBC transfer sentinel errors
var (
	ErrInvalidPacketTimeout    = errorsmod.Register(codespace, 2, "invalid packet timeout")
	ErrInvalidDenomForTransfer = errorsmod.Register(codespace, 3, "invalid denomination for cross-chain transfer")
	ErrInvalidVersion          = errorsmod.Register(codespace, 4, "invalid ICS20 version")
	ErrInvalidAmount           = errorsmod.Register(codespace, 5, "invalid token amount")
	ErrInvalidMemo             = errorsmod.Register(codespace, 6, "invalid memo")
	ErrInvalidAcknowledgement  = errorsmod.Register(codespace, 7, "invalid acknowledgement")
	ErrInvalidPacketData       = errorsmod.Register(codespace, 8, "invalid packet data")
)
