package types

import (
	errorsmod "cosmossdk.io/errors"
)

// SubModuleName is the name of the connection submodule, used in logs and as error codespace.
const SubModuleName = "connection"

// IBC connection sentinel errors
var (
	ErrConnectionNotFound      = errorsmod.Register("simibc-"+SubModuleName, 2, "connection not found")
	ErrConnectionChainMismatch = errorsmod.Register("simibc-"+SubModuleName, 4, "connection counterparty chain mismatch")
)
