package types

import (
	errorsmod "cosmossdk.io/errors"

	host "github.com/cosmos/simibc/modules/core/24-host"
	ibcerrors "github.com/cosmos/simibc/modules/core/errors"
	"github.com/cosmos/simibc/modules/core/exported"
)

var _ exported.SudoMsg = (*MsgCreateConnection)(nil)

// MsgCreateConnection creates a new connection end towards RemoteChainID, or records the
// counterparty of an existing one when ConnectionID is set.
type MsgCreateConnection struct {
	RemoteChainID            string `json:"remote_chain_id"`
	ConnectionID             string `json:"connection_id,omitempty"`
	CounterpartyConnectionID string `json:"counterparty_connection_id,omitempty"`
}

// NewMsgCreateConnection creates a new MsgCreateConnection instance.
func NewMsgCreateConnection(remoteChainID, connectionID, counterpartyConnectionID string) *MsgCreateConnection {
	return &MsgCreateConnection{
		RemoteChainID:            remoteChainID,
		ConnectionID:             connectionID,
		CounterpartyConnectionID: counterpartyConnectionID,
	}
}

// Type implements exported.SudoMsg.
func (*MsgCreateConnection) Type() string { return "create_connection" }

// ValidateBasic implements exported.SudoMsg.
func (msg *MsgCreateConnection) ValidateBasic() error {
	if msg.RemoteChainID == "" {
		return errorsmod.Wrap(ibcerrors.ErrInvalidChainID, "remote chain id cannot be empty")
	}
	if msg.ConnectionID != "" {
		if err := host.ConnectionIdentifierValidator(msg.ConnectionID); err != nil {
			return errorsmod.Wrap(err, "invalid connection ID")
		}
	}
	if msg.CounterpartyConnectionID != "" {
		if err := host.ConnectionIdentifierValidator(msg.CounterpartyConnectionID); err != nil {
			return errorsmod.Wrap(err, "invalid counterparty connection ID")
		}
	}
	return nil
}
