package errors

import (
	errorsmod "cosmossdk.io/errors"
)

// the codespace is distinct from ibc-go's own "ibc" codespace which is registered by the
// imported ibc-go packages
const codespace = "simibc"

var (
	// ErrUnknownRequest is used when a sudo message, user message or query is not understood.
	ErrUnknownRequest = errorsmod.Register(codespace, 2, "unknown request")

	// ErrInvalidRequest defines an error where the request contains invalid data.
	ErrInvalidRequest = errorsmod.Register(codespace, 3, "invalid request")

	// ErrInvalidChainID defines an error when the chain-id is invalid.
	ErrInvalidChainID = errorsmod.Register(codespace, 5, "invalid chain-id")
)
