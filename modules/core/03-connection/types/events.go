package types

import (
	"fmt"

	"github.com/cosmos/simibc/modules/core/exported"
)

// IBC connection events
const (
	EventTypeConnectionOpen = "connection_open"

	AttributeKeyConnectionID             = "connection_id"
	AttributeKeyCounterpartyChainID      = "counterparty_chain_id"
	AttributeKeyCounterpartyConnectionID = "counterparty_connection_id"
)

// AttributeValueCategory is the module attribute of the message events of connection handlers.
var AttributeValueCategory = fmt.Sprintf("%s_%s", exported.ModuleName, SubModuleName)
