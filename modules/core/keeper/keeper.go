package keeper

import (
	"errors"

	"cosmossdk.io/collections"
	"cosmossdk.io/collections/indexes"
	corestore "cosmossdk.io/core/store"
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"

	sdk "github.com/cosmos/cosmos-sdk/types"

	internalcollections "github.com/cosmos/simibc/internal/collections"
	connectiontypes "github.com/cosmos/simibc/modules/core/03-connection/types"
	channeltypes "github.com/cosmos/simibc/modules/core/04-channel/types"
	porttypes "github.com/cosmos/simibc/modules/core/05-port/types"
	host "github.com/cosmos/simibc/modules/core/24-host"
	"github.com/cosmos/simibc/modules/core/exported"
)

var _ porttypes.ICS4Wrapper = (*Keeper)(nil)

// ChannelKey identifies a channel end by port and channel identifiers.
type ChannelKey = collections.Pair[string, string]

// PacketKey identifies a packet by port, channel and sequence.
type PacketKey = collections.Triple[string, string, uint64]

// ConnectionIndexes indexes connections by the chain id of their counterparty.
type ConnectionIndexes struct {
	Chain *indexes.Multi[string, string, connectiontypes.Connection]
}

// IndexesList implements collections.Indexes.
func (i ConnectionIndexes) IndexesList() []collections.Index[string, connectiontypes.Connection] {
	return []collections.Index[string, connectiontypes.Connection]{i.Chain}
}

// Keeper holds every IBC record of a chain and drives the application callbacks of the
// modules bound through the port router.
type Keeper struct {
	storeService corestore.KVStoreService
	router       *porttypes.Router

	Schema             collections.Schema
	Connections        *collections.IndexedMap[string, connectiontypes.Connection, ConnectionIndexes]
	ConnectionSequence collections.Sequence
	Ports              collections.Map[string, channeltypes.PortInfo]
	ChannelHandshakes  collections.Map[ChannelKey, channeltypes.ChannelHandshakeInfo]
	Channels           collections.Map[ChannelKey, channeltypes.ChannelInfo]
	PacketSends        collections.Map[PacketKey, channeltypes.PacketData]
	PacketReceipts     collections.Map[PacketKey, channeltypes.PacketReceipt]
	PacketAcks         collections.Map[PacketKey, channeltypes.PacketAck]
	PacketTimeouts     collections.Map[PacketKey, bool]
}

// NewKeeper creates a new IBC Keeper instance
func NewKeeper(storeService corestore.KVStoreService) *Keeper {
	sb := collections.NewSchemaBuilder(storeService)
	packetKeyCodec := collections.TripleKeyCodec(collections.StringKey, collections.StringKey, collections.Uint64Key)
	channelKeyCodec := collections.PairKeyCodec(collections.StringKey, collections.StringKey)

	k := &Keeper{
		storeService: storeService,
		Connections: collections.NewIndexedMap(
			sb, host.ConnectionsPrefix, host.KeyConnections,
			collections.StringKey, internalcollections.JSONValue[connectiontypes.Connection](),
			ConnectionIndexes{
				Chain: indexes.NewMulti(
					sb, host.ConnectionsByChainPrefix, host.KeyConnectionsByChain,
					collections.StringKey, collections.StringKey,
					func(_ string, connection connectiontypes.Connection) (string, error) {
						return connection.CounterpartyChainID, nil
					},
				),
			},
		),
		ConnectionSequence: collections.NewSequence(sb, host.ConnectionSequencePrefix, host.KeyConnectionSequence),
		Ports:              collections.NewMap(sb, host.PortsPrefix, host.KeyPorts, collections.StringKey, internalcollections.JSONValue[channeltypes.PortInfo]()),
		ChannelHandshakes:  collections.NewMap(sb, host.ChannelHandshakesPrefix, host.KeyChannelHandshakes, channelKeyCodec, internalcollections.JSONValue[channeltypes.ChannelHandshakeInfo]()),
		Channels:           collections.NewMap(sb, host.ChannelsPrefix, host.KeyChannels, channelKeyCodec, internalcollections.JSONValue[channeltypes.ChannelInfo]()),
		PacketSends:        collections.NewMap(sb, host.PacketSendsPrefix, host.KeyPacketSends, packetKeyCodec, internalcollections.JSONValue[channeltypes.PacketData]()),
		PacketReceipts:     collections.NewMap(sb, host.PacketReceiptsPrefix, host.KeyPacketReceipts, packetKeyCodec, internalcollections.JSONValue[channeltypes.PacketReceipt]()),
		PacketAcks:         collections.NewMap(sb, host.PacketAcksPrefix, host.KeyPacketAcks, packetKeyCodec, internalcollections.JSONValue[channeltypes.PacketAck]()),
		PacketTimeouts:     collections.NewMap(sb, host.PacketTimeoutsPrefix, host.KeyPacketTimeouts, packetKeyCodec, collections.BoolValue),
	}

	schema, err := sb.Build()
	if err != nil {
		panic(err)
	}
	k.Schema = schema

	return k
}

// SetRouter sets the Router in IBC Keeper and seals it. The method panics if
// there is an existing router that's already sealed.
func (k *Keeper) SetRouter(rtr *porttypes.Router) {
	if k.router != nil && k.router.Sealed() {
		panic(errors.New("cannot reset a sealed router"))
	}

	k.router = rtr
	k.router.Seal()
}

// Router returns the port router of the keeper.
func (k *Keeper) Router() *porttypes.Router {
	return k.router
}

// Logger returns a module-specific logger.
func (Keeper) Logger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", "x/"+exported.ModuleName)
}

// GetAppVersion returns the version of an established channel end. It implements
// porttypes.ICS4Wrapper.
func (k *Keeper) GetAppVersion(ctx sdk.Context, portID, channelID string) (string, bool) {
	channelInfo, err := k.Channels.Get(ctx, collections.Join(portID, channelID))
	if err != nil {
		return "", false
	}
	return channelInfo.Channel.Version, true
}

// route returns the application bound to a port or a port mismatch error.
func (k *Keeper) route(ctx sdk.Context, portID string) (porttypes.IBCModule, error) {
	if k.router == nil {
		return nil, errorsmod.Wrap(channeltypes.ErrPortMismatch, "no router configured")
	}
	cbs, ok := k.router.Route(portID)
	if !ok {
		return nil, errorsmod.Wrapf(channeltypes.ErrPortMismatch, "port %s is not bound to a module on chain %s", portID, ctx.ChainID())
	}
	return cbs, nil
}

// getChannelInfo loads an established channel end.
func (k *Keeper) getChannelInfo(ctx sdk.Context, portID, channelID string) (channeltypes.ChannelInfo, error) {
	channelInfo, err := k.Channels.Get(ctx, collections.Join(portID, channelID))
	if errors.Is(err, collections.ErrNotFound) {
		return channeltypes.ChannelInfo{}, errorsmod.Wrapf(channeltypes.ErrChannelNotFound, "port ID (%s) channel ID (%s)", portID, channelID)
	}
	return channelInfo, err
}
