package keeper

import (
	"strconv"

	metrics "github.com/hashicorp/go-metrics"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"

	"github.com/cosmos/cosmos-sdk/telemetry"
	sdk "github.com/cosmos/cosmos-sdk/types"

	channeltypes "github.com/cosmos/simibc/modules/core/04-channel/types"
	"github.com/cosmos/simibc/modules/core/exported"
	coremetrics "github.com/cosmos/simibc/modules/core/metrics"
)

// TimeoutPacket is called on the sending chain once the destination chain recorded the
// packet as timed out. The bound application reverts the effects of the send, and an
// ordered channel end is closed.
func (k *Keeper) TimeoutPacket(ctx sdk.Context, msg *channeltypes.MsgTimeoutPacket) error {
	packet, channelInfo, err := k.getPendingPacket(ctx, msg.Packet)
	if err != nil {
		return err
	}

	if err := k.PacketTimeouts.Set(ctx, collections.Join3(packet.SourcePort, packet.SourceChannel, packet.Sequence), true); err != nil {
		return err
	}

	cbs, err := k.route(ctx, packet.SourcePort)
	if err != nil {
		return err
	}

	if err := cbs.OnTimeoutPacket(ctx, channelInfo.Channel.Version, packet.ToPacket(), exported.RelayerAddress); err != nil {
		return errorsmod.Wrap(err, "timeout packet callback failed")
	}

	emitTimeoutPacketEvent(ctx, packet, channelInfo.Channel)

	if channelInfo.Channel.Order == channeltypes.ORDERED && channelInfo.Open {
		if err := k.CloseChannel(ctx, channeltypes.NewMsgCloseChannel(packet.SourcePort, packet.SourceChannel, true)); err != nil {
			return err
		}
	}

	k.Logger(ctx).Info("packet timed out", "sequence", strconv.FormatUint(packet.Sequence, 10), "src_port", packet.SourcePort, "src_channel", packet.SourceChannel)

	defer telemetry.IncrCounterWithLabels(
		[]string{"ibc", "timeout", "packet"},
		1,
		[]metrics.Label{
			telemetry.NewLabel(coremetrics.LabelSourcePort, packet.SourcePort),
			telemetry.NewLabel(coremetrics.LabelSourceChannel, packet.SourceChannel),
		},
	)

	return nil
}
