package keeper

import (
	"errors"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"

	sdk "github.com/cosmos/cosmos-sdk/types"

	channeltypes "github.com/cosmos/simibc/modules/core/04-channel/types"
	host "github.com/cosmos/simibc/modules/core/24-host"
)

// OpenChannel runs the INIT or TRY step of a channel handshake. It allocates the next
// channel identifier of the port, lets the bound application approve and pick the version,
// and stores the pending handshake. It returns the new channel identifier and version.
func (k *Keeper) OpenChannel(ctx sdk.Context, msg *channeltypes.MsgOpenChannel) (string, string, error) {
	if _, err := k.GetConnection(ctx, msg.ConnectionID); err != nil {
		return "", "", err
	}

	cbs, err := k.route(ctx, msg.PortID)
	if err != nil {
		return "", "", err
	}

	channelID, err := k.generateChannelIdentifier(ctx, msg.PortID)
	if err != nil {
		return "", "", err
	}

	var (
		version   string
		state     channeltypes.HandshakeState
		eventType string
	)
	if msg.IsTry() {
		state, eventType = channeltypes.StateTry, channeltypes.EventTypeChannelOpenTry
		version, err = cbs.OnChanOpenTry(ctx, msg.Order, msg.ConnectionID, msg.PortID, channelID, msg.Counterparty, msg.CounterpartyVersion)
		if err != nil {
			return "", "", errorsmod.Wrapf(err, "channel open try callback failed for port ID: %s, channel ID: %s", msg.PortID, channelID)
		}
	} else {
		state, eventType = channeltypes.StateInit, channeltypes.EventTypeChannelOpenInit
		version, err = cbs.OnChanOpenInit(ctx, msg.Order, msg.ConnectionID, msg.PortID, channelID, msg.Counterparty, msg.Version)
		if err != nil {
			return "", "", errorsmod.Wrapf(err, "channel open init callback failed for port ID: %s, channel ID: %s", msg.PortID, channelID)
		}
	}

	if version == "" {
		return "", "", errorsmod.Wrapf(channeltypes.ErrInvalidChannelVersion, "application bound to port %s returned an empty version", msg.PortID)
	}

	handshake := channeltypes.ChannelHandshakeInfo{
		ConnectionID:   msg.ConnectionID,
		LocalEndpoint:  channeltypes.NewEndpoint(msg.PortID, channelID),
		RemoteEndpoint: msg.Counterparty,
		State:          state,
		Order:          msg.Order,
		Version:        version,
	}
	if err := k.ChannelHandshakes.Set(ctx, collections.Join(msg.PortID, channelID), handshake); err != nil {
		return "", "", err
	}

	k.Logger(ctx).Info("channel state updated", "port-id", msg.PortID, "channel-id", channelID, "state", state)

	emitChannelOpenEvent(ctx, eventType, handshake)

	return channelID, version, nil
}

// ConnectChannel runs the ACK step on a channel end in INIT state, or the CONFIRM step on a
// channel end in TRY state, and promotes the handshake to an open ChannelInfo.
func (k *Keeper) ConnectChannel(ctx sdk.Context, msg *channeltypes.MsgConnectChannel) error {
	key := collections.Join(msg.PortID, msg.ChannelID)
	handshake, err := k.ChannelHandshakes.Get(ctx, key)
	if errors.Is(err, collections.ErrNotFound) {
		return errorsmod.Wrapf(channeltypes.ErrHandshakeNotFound, "port ID (%s) channel ID (%s)", msg.PortID, msg.ChannelID)
	} else if err != nil {
		return err
	}

	cbs, err := k.route(ctx, msg.PortID)
	if err != nil {
		return err
	}

	channel := channeltypes.Channel{
		Endpoint:             handshake.LocalEndpoint,
		CounterpartyEndpoint: msg.Counterparty,
		Order:                handshake.Order,
		Version:              handshake.Version,
		ConnectionID:         handshake.ConnectionID,
	}

	var (
		state     channeltypes.HandshakeState
		eventType string
	)
	switch handshake.State {
	case channeltypes.StateInit:
		state, eventType = channeltypes.StateAck, channeltypes.EventTypeChannelOpenAck
		if msg.CounterpartyVersion != "" {
			channel.Version = msg.CounterpartyVersion
		}
		if err := cbs.OnChanOpenAck(ctx, msg.PortID, msg.ChannelID, msg.Counterparty.ChannelID, channel.Version); err != nil {
			return errorsmod.Wrapf(err, "channel open ack callback failed for port ID: %s, channel ID: %s", msg.PortID, msg.ChannelID)
		}
	case channeltypes.StateTry:
		state, eventType = channeltypes.StateConfirm, channeltypes.EventTypeChannelOpenConfirm
		if err := cbs.OnChanOpenConfirm(ctx, msg.PortID, msg.ChannelID); err != nil {
			return errorsmod.Wrapf(err, "channel open confirm callback failed for port ID: %s, channel ID: %s", msg.PortID, msg.ChannelID)
		}
	default:
		return errorsmod.Wrapf(channeltypes.ErrInvalidChannelState, "channel handshake state is not INIT or TRYOPEN (got %s)", handshake.State)
	}

	if err := k.ChannelHandshakes.Remove(ctx, key); err != nil {
		return err
	}
	if err := k.Channels.Set(ctx, key, channeltypes.NewChannelInfo(channel)); err != nil {
		return err
	}

	k.Logger(ctx).Info("channel state updated", "port-id", msg.PortID, "channel-id", msg.ChannelID, "state", state)

	emitChannelEvent(ctx, eventType, channel)

	return nil
}

// CloseChannel closes an established channel end. The application is only notified when
// the end was still open.
func (k *Keeper) CloseChannel(ctx sdk.Context, msg *channeltypes.MsgCloseChannel) error {
	channelInfo, err := k.getChannelInfo(ctx, msg.PortID, msg.ChannelID)
	if err != nil {
		return err
	}

	wasOpen := channelInfo.Open
	channelInfo.Open = false
	if err := k.Channels.Set(ctx, collections.Join(msg.PortID, msg.ChannelID), channelInfo); err != nil {
		return err
	}

	eventType := channeltypes.EventTypeChannelCloseConfirm
	if msg.Init {
		eventType = channeltypes.EventTypeChannelCloseInit
	}

	if wasOpen {
		cbs, err := k.route(ctx, msg.PortID)
		if err != nil {
			return err
		}

		if msg.Init {
			err = cbs.OnChanCloseInit(ctx, msg.PortID, msg.ChannelID)
		} else {
			err = cbs.OnChanCloseConfirm(ctx, msg.PortID, msg.ChannelID)
		}
		if err != nil {
			return errorsmod.Wrapf(err, "%s callback failed for port ID: %s, channel ID: %s", eventType, msg.PortID, msg.ChannelID)
		}
	}

	k.Logger(ctx).Info("channel closed", "port-id", msg.PortID, "channel-id", msg.ChannelID, "event", eventType)

	emitChannelEvent(ctx, eventType, channelInfo.Channel)

	return nil
}

// GetChannels returns the channel ends bound to a port ordered by channel identifier.
func (k *Keeper) GetChannels(ctx sdk.Context, portID string) ([]channeltypes.IdentifiedChannel, error) {
	var channels []channeltypes.IdentifiedChannel
	err := k.Channels.Walk(ctx, collections.NewPrefixedPairRange[string, string](portID), func(key ChannelKey, channelInfo channeltypes.ChannelInfo) (bool, error) {
		channels = append(channels, channeltypes.IdentifiedChannel{
			PortID:      key.K1(),
			ChannelID:   key.K2(),
			ChannelInfo: channelInfo,
		})
		return false, nil
	})
	return channels, err
}

// generateChannelIdentifier returns the next channel identifier of a port.
func (k *Keeper) generateChannelIdentifier(ctx sdk.Context, portID string) (string, error) {
	portInfo, err := k.Ports.Get(ctx, portID)
	if err != nil && !errors.Is(err, collections.ErrNotFound) {
		return "", err
	}

	channelID := host.FormatChannelIdentifier(portInfo.NextChannelSequence)
	portInfo.NextChannelSequence++

	if err := k.Ports.Set(ctx, portID, portInfo); err != nil {
		return "", err
	}
	return channelID, nil
}
