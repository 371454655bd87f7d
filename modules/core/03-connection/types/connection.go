package types

import (
	"gopkg.in/yaml.v2"
)

// Connection is the local record of a link to a remote chain. The counterparty connection
// identifier is empty until the remote side has created its own end.
type Connection struct {
	CounterpartyConnectionID string `json:"counterparty_connection_id,omitempty" yaml:"counterparty_connection_id"`
	CounterpartyChainID      string `json:"counterparty_chain_id" yaml:"counterparty_chain_id"`
}

// NewConnection creates a new Connection instance.
func NewConnection(counterpartyChainID, counterpartyConnectionID string) Connection {
	return Connection{
		CounterpartyConnectionID: counterpartyConnectionID,
		CounterpartyChainID:      counterpartyChainID,
	}
}

// HasCounterparty reports whether the remote end of the connection is known.
func (c Connection) HasCounterparty() bool {
	return c.CounterpartyConnectionID != ""
}

// String implements fmt.Stringer.
func (c Connection) String() string {
	out, _ := yaml.Marshal(c)
	return string(out)
}

// IdentifiedConnection pairs a Connection with its local identifier.
type IdentifiedConnection struct {
	ConnectionID string     `json:"connection_id"`
	Connection   Connection `json:"connection"`
}
