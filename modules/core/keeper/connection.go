package keeper

import (
	"errors"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"

	sdk "github.com/cosmos/cosmos-sdk/types"

	connectiontypes "github.com/cosmos/simibc/modules/core/03-connection/types"
	host "github.com/cosmos/simibc/modules/core/24-host"
)

// CreateConnection creates a connection end towards msg.RemoteChainID with an unknown
// counterparty, or records the counterparty connection of the existing end msg.ConnectionID.
// It returns the identifier of the connection end.
func (k *Keeper) CreateConnection(ctx sdk.Context, msg *connectiontypes.MsgCreateConnection) (string, error) {
	connectionID := msg.ConnectionID
	connection := connectiontypes.NewConnection(msg.RemoteChainID, msg.CounterpartyConnectionID)

	if connectionID == "" {
		sequence, err := k.ConnectionSequence.Next(ctx)
		if err != nil {
			return "", err
		}
		connectionID = host.FormatConnectionIdentifier(sequence)
	} else {
		existing, err := k.GetConnection(ctx, connectionID)
		if err != nil {
			return "", err
		}
		if existing.CounterpartyChainID != msg.RemoteChainID {
			return "", errorsmod.Wrapf(
				connectiontypes.ErrConnectionChainMismatch,
				"connection %s links to chain %s, not %s", connectionID, existing.CounterpartyChainID, msg.RemoteChainID,
			)
		}
		if !connection.HasCounterparty() {
			connection.CounterpartyConnectionID = existing.CounterpartyConnectionID
		}
	}

	if err := k.Connections.Set(ctx, connectionID, connection); err != nil {
		return "", err
	}

	k.Logger(ctx).Info("connection open", "connection-id", connectionID, "counterparty-chain-id", connection.CounterpartyChainID, "counterparty-connection-id", connection.CounterpartyConnectionID)

	emitConnectionOpenEvent(ctx, connectionID, connection)

	return connectionID, nil
}

// GetConnection loads a connection end.
func (k *Keeper) GetConnection(ctx sdk.Context, connectionID string) (connectiontypes.Connection, error) {
	connection, err := k.Connections.Get(ctx, connectionID)
	if errors.Is(err, collections.ErrNotFound) {
		return connectiontypes.Connection{}, errorsmod.Wrapf(connectiontypes.ErrConnectionNotFound, "connection ID (%s)", connectionID)
	}
	return connection, err
}

// GetChainConnections returns every connection end towards a chain ordered by identifier.
func (k *Keeper) GetChainConnections(ctx sdk.Context, chainID string) ([]connectiontypes.IdentifiedConnection, error) {
	iter, err := k.Connections.Indexes.Chain.MatchExact(ctx, chainID)
	if err != nil {
		return nil, err
	}

	connectionIDs, err := iter.PrimaryKeys()
	if err != nil {
		return nil, err
	}

	connections := make([]connectiontypes.IdentifiedConnection, 0, len(connectionIDs))
	for _, connectionID := range connectionIDs {
		connection, err := k.Connections.Get(ctx, connectionID)
		if err != nil {
			return nil, err
		}
		connections = append(connections, connectiontypes.IdentifiedConnection{ConnectionID: connectionID, Connection: connection})
	}

	return connections, nil
}
