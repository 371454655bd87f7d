package keeper

import (
	"errors"
	"strconv"

	metrics "github.com/hashicorp/go-metrics"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"

	"github.com/cosmos/cosmos-sdk/telemetry"
	sdk "github.com/cosmos/cosmos-sdk/types"

	clienttypes "github.com/cosmos/ibc-go/v10/modules/core/02-client/types"

	channeltypes "github.com/cosmos/simibc/modules/core/04-channel/types"
	"github.com/cosmos/simibc/modules/core/exported"
	coremetrics "github.com/cosmos/simibc/modules/core/metrics"
	coretypes "github.com/cosmos/simibc/modules/core/types"
)

// SendPacket stores a packet on an open channel end and emits the send_packet event the
// relayer picks it up from. The packet gets the next send sequence of the channel, which
// is returned. It implements porttypes.ICS4Wrapper.
func (k *Keeper) SendPacket(
	ctx sdk.Context,
	sourcePort string,
	sourceChannel string,
	timeoutHeight clienttypes.Height,
	timeoutTimestamp uint64,
	data []byte,
) (uint64, error) {
	channelInfo, err := k.getChannelInfo(ctx, sourcePort, sourceChannel)
	if err != nil {
		return 0, err
	}
	if !channelInfo.Open {
		return 0, errorsmod.Wrapf(channeltypes.ErrChannelClosed, "port ID (%s) channel ID (%s)", sourcePort, sourceChannel)
	}

	timeout := channeltypes.NewTimeout(timeoutHeight, timeoutTimestamp)
	if !timeout.IsValid() {
		return 0, errorsmod.Wrap(channeltypes.ErrInvalidTimeout, "packet timeout height and packet timeout timestamp cannot both be 0")
	}

	sequence := channelInfo.NextSequenceSend
	channelInfo.NextSequenceSend++
	if err := k.Channels.Set(ctx, collections.Join(sourcePort, sourceChannel), channelInfo); err != nil {
		return 0, err
	}

	packet := channeltypes.PacketData{
		SourcePort:         sourcePort,
		SourceChannel:      sourceChannel,
		DestinationPort:    channelInfo.Channel.CounterpartyEndpoint.PortID,
		DestinationChannel: channelInfo.Channel.CounterpartyEndpoint.ChannelID,
		Sequence:           sequence,
		Data:               data,
		Timeout:            timeout,
	}
	if err := k.PacketSends.Set(ctx, collections.Join3(sourcePort, sourceChannel, sequence), packet); err != nil {
		return 0, err
	}

	emitPacketEvent(ctx, channeltypes.EventTypeSendPacket, packet, channelInfo.Channel)

	k.Logger(ctx).Debug(
		"packet sent",
		"sequence", strconv.FormatUint(sequence, 10),
		"src_port", sourcePort,
		"src_channel", sourceChannel,
		"dst_port", packet.DestinationPort,
		"dst_channel", packet.DestinationChannel,
	)

	defer telemetry.IncrCounterWithLabels(
		[]string{"ibc", channeltypes.EventTypeSendPacket},
		1,
		[]metrics.Label{
			telemetry.NewLabel(coremetrics.LabelSourcePort, sourcePort),
			telemetry.NewLabel(coremetrics.LabelSourceChannel, sourceChannel),
		},
	)

	return sequence, nil
}

// RecvPacket delivers a packet on its destination chain. A packet whose channel end is
// closed, or whose timeout has elapsed, is recorded as timed out: no acknowledgement is
// written and an ordered channel end gets closed. Otherwise the bound application
// processes the packet and the acknowledgement it returns is stored and emitted. The
// application state changes are only kept for successful acknowledgements.
func (k *Keeper) RecvPacket(ctx sdk.Context, msg *channeltypes.MsgRecvPacket) ([]byte, error) {
	packet := msg.Packet

	channelInfo, err := k.getChannelInfo(ctx, packet.DestinationPort, packet.DestinationChannel)
	if err != nil {
		return nil, err
	}

	key := collections.Join3(packet.DestinationPort, packet.DestinationChannel, packet.Sequence)
	received, err := k.PacketReceipts.Has(ctx, key)
	if err != nil {
		return nil, err
	}
	if received {
		return nil, errorsmod.Wrapf(channeltypes.ErrPacketReceived, "port ID (%s) channel ID (%s) sequence (%d)", packet.DestinationPort, packet.DestinationChannel, packet.Sequence)
	}

	timedOut := !channelInfo.Open || packet.Timeout.Elapsed(uint64(ctx.BlockHeight()), ctx.BlockTime())
	if err := k.PacketReceipts.Set(ctx, key, channeltypes.PacketReceipt{Packet: packet, TimedOut: timedOut}); err != nil {
		return nil, err
	}

	if timedOut {
		if channelInfo.Channel.Order == channeltypes.ORDERED && channelInfo.Open {
			if err := k.CloseChannel(ctx, channeltypes.NewMsgCloseChannel(packet.DestinationPort, packet.DestinationChannel, true)); err != nil {
				return nil, err
			}
		}

		emitPacketEvent(ctx, channeltypes.EventTypeTimeoutReceivedPacket, packet, channelInfo.Channel)

		k.Logger(ctx).Info("packet received after timeout", "sequence", strconv.FormatUint(packet.Sequence, 10), "dst_port", packet.DestinationPort, "dst_channel", packet.DestinationChannel)
		return nil, nil
	}

	cbs, err := k.route(ctx, packet.DestinationPort)
	if err != nil {
		return nil, err
	}

	// cache the application state so that failed acknowledgements leave no trace
	cacheCtx, writeFn := ctx.CacheContext()
	ack := cbs.OnRecvPacket(cacheCtx, channelInfo.Channel.Version, packet.ToPacket(), exported.RelayerAddress)
	if ack == nil {
		return nil, errorsmod.Wrap(channeltypes.ErrInvalidAcknowledgement, "asynchronous acknowledgements are not supported")
	}
	if ack.Success() {
		writeFn()
	} else {
		ctx.EventManager().EmitEvents(coretypes.ConvertToErrorEvents(cacheCtx.EventManager().Events()))
	}

	ackBz := ack.Acknowledgement()
	if len(ackBz) == 0 {
		return nil, errorsmod.Wrap(channeltypes.ErrInvalidAcknowledgement, "acknowledgement cannot be empty")
	}
	if err := k.PacketAcks.Set(ctx, key, channeltypes.PacketAck{Ack: ackBz}); err != nil {
		return nil, err
	}

	emitPacketEvent(ctx, channeltypes.EventTypeRecvPacket, packet, channelInfo.Channel)
	emitWriteAcknowledgementEvent(ctx, packet, channelInfo.Channel, ackBz)

	k.Logger(ctx).Debug("packet received", "sequence", strconv.FormatUint(packet.Sequence, 10), "dst_port", packet.DestinationPort, "dst_channel", packet.DestinationChannel, "success", ack.Success())

	defer telemetry.IncrCounterWithLabels(
		[]string{"ibc", channeltypes.EventTypeRecvPacket},
		1,
		[]metrics.Label{
			telemetry.NewLabel(coremetrics.LabelSourcePort, packet.SourcePort),
			telemetry.NewLabel(coremetrics.LabelSourceChannel, packet.SourceChannel),
			telemetry.NewLabel(coremetrics.LabelDestinationPort, packet.DestinationPort),
			telemetry.NewLabel(coremetrics.LabelDestinationChannel, packet.DestinationChannel),
		},
	)

	return ackBz, nil
}

// AcknowledgePacket delivers the acknowledgement of a packet to its sending chain and
// removes the packet from the pending set.
func (k *Keeper) AcknowledgePacket(ctx sdk.Context, msg *channeltypes.MsgAcknowledgePacket) error {
	packet, channelInfo, err := k.getPendingPacket(ctx, msg.Packet)
	if err != nil {
		return err
	}

	packet.Ack = msg.Acknowledgement
	if err := k.PacketSends.Set(ctx, collections.Join3(packet.SourcePort, packet.SourceChannel, packet.Sequence), packet); err != nil {
		return err
	}

	cbs, err := k.route(ctx, packet.SourcePort)
	if err != nil {
		return err
	}

	if err := cbs.OnAcknowledgementPacket(ctx, channelInfo.Channel.Version, packet.ToPacket(), msg.Acknowledgement, exported.RelayerAddress); err != nil {
		return errorsmod.Wrap(err, "acknowledge packet callback failed")
	}

	emitAcknowledgePacketEvent(ctx, packet, channelInfo.Channel)

	k.Logger(ctx).Debug("packet acknowledged", "sequence", strconv.FormatUint(packet.Sequence, 10), "src_port", packet.SourcePort, "src_channel", packet.SourceChannel)

	defer telemetry.IncrCounterWithLabels(
		[]string{"ibc", channeltypes.EventTypeAcknowledgePacket},
		1,
		[]metrics.Label{
			telemetry.NewLabel(coremetrics.LabelSourcePort, packet.SourcePort),
			telemetry.NewLabel(coremetrics.LabelSourceChannel, packet.SourceChannel),
		},
	)

	return nil
}

// getPendingPacket loads the stored record of a packet sent by this chain together with its
// channel end. The packet must neither be acknowledged nor timed out.
func (k *Keeper) getPendingPacket(ctx sdk.Context, msgPacket channeltypes.PacketData) (channeltypes.PacketData, channeltypes.ChannelInfo, error) {
	key := collections.Join3(msgPacket.SourcePort, msgPacket.SourceChannel, msgPacket.Sequence)

	packet, err := k.PacketSends.Get(ctx, key)
	if errors.Is(err, collections.ErrNotFound) {
		return channeltypes.PacketData{}, channeltypes.ChannelInfo{}, errorsmod.Wrapf(
			channeltypes.ErrPacketNotFound, "port ID (%s) channel ID (%s) sequence (%d)", msgPacket.SourcePort, msgPacket.SourceChannel, msgPacket.Sequence,
		)
	} else if err != nil {
		return channeltypes.PacketData{}, channeltypes.ChannelInfo{}, err
	}

	if packet.IsAcknowledged() {
		return channeltypes.PacketData{}, channeltypes.ChannelInfo{}, errorsmod.Wrapf(channeltypes.ErrPacketAcknowledged, "sequence (%d)", packet.Sequence)
	}

	timedOut, err := k.PacketTimeouts.Has(ctx, key)
	if err != nil {
		return channeltypes.PacketData{}, channeltypes.ChannelInfo{}, err
	}
	if timedOut {
		return channeltypes.PacketData{}, channeltypes.ChannelInfo{}, errorsmod.Wrapf(channeltypes.ErrPacketTimedOut, "sequence (%d)", packet.Sequence)
	}

	channelInfo, err := k.getChannelInfo(ctx, packet.SourcePort, packet.SourceChannel)
	if err != nil {
		return channeltypes.PacketData{}, channeltypes.ChannelInfo{}, err
	}

	return packet, channelInfo, nil
}
