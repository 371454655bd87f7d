package relayer

import (
	errorsmod "cosmossdk.io/errors"
)

const codespace = "simibc-relayer"

var (
	ErrMissingEventAttribute = errorsmod.Register(codespace, 2, "missing event attribute")
	ErrMalformedEvent        = errorsmod.Register(codespace, 3, "malformed event")
	ErrMissingCounterparty   = errorsmod.Register(codespace, 4, "connection has no counterparty")
)
