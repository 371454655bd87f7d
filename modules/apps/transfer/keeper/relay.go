package keeper

import (
	"fmt"

	metrics "github.com/hashicorp/go-metrics"

	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"

	"github.com/cosmos/cosmos-sdk/telemetry"
	sdk "github.com/cosmos/cosmos-sdk/types"

	clienttypes "github.com/cosmos/ibc-go/v10/modules/core/02-client/types"
	ibcchanneltypes "github.com/cosmos/ibc-go/v10/modules/core/04-channel/types"

	"github.com/cosmos/simibc/modules/apps/transfer/types"
	channeltypes "github.com/cosmos/simibc/modules/core/04-channel/types"
	coremetrics "github.com/cosmos/simibc/modules/core/metrics"
)

// sendTransfer moves coin out of the sender account and sends the packet describing it.
//
// A native denomination, or a voucher that did not arrive over this channel, is locked in
// the escrow account of the channel end. A voucher going back over the channel it arrived
// on is burned, since the counterparty still holds the escrowed original. The packet
// always carries the full denomination path as known on this chain, e.g. "ufund" or
// "transfer/channel-0/ufund"; the receiving chain derives its local denomination from it.
func (k Keeper) sendTransfer(
	ctx sdk.Context,
	sourcePort,
	sourceChannel string,
	coin sdk.Coin,
	sender string,
	receiver string,
	timeoutHeight clienttypes.Height,
	timeoutTimestamp uint64,
	memo string,
) (uint64, error) {
	appVersion, found := k.ics4Wrapper.GetAppVersion(ctx, sourcePort, sourceChannel)
	if !found {
		return 0, errorsmod.Wrapf(channeltypes.ErrChannelNotFound, "port ID (%s) channel ID (%s)", sourcePort, sourceChannel)
	}
	if appVersion != types.Version {
		return 0, errorsmod.Wrapf(types.ErrInvalidVersion, "channel version %s is not %s", appVersion, types.Version)
	}

	fullDenomPath := types.GetFullDenomPath(coin.Denom)
	isSource := types.SenderChainIsSource(sourcePort, sourceChannel, fullDenomPath)

	if isSource {
		if err := k.escrowToken(ctx, sender, types.GetEscrowAddress(sourcePort, sourceChannel), coin); err != nil {
			return 0, err
		}
	} else if err := k.bankKeeper.BurnCoins(ctx, sender, sdk.NewCoins(coin)); err != nil {
		return 0, err
	}

	packetData := types.NewFungibleTokenPacketData(fullDenomPath, coin.Amount.String(), sender, receiver, memo)
	sequence, err := k.ics4Wrapper.SendPacket(ctx, sourcePort, sourceChannel, timeoutHeight, timeoutTimestamp, packetData.GetBytes())
	if err != nil {
		return 0, err
	}

	k.Logger(ctx).Debug("transfer sent", "sequence", sequence, "denom", fullDenomPath, "amount", coin.Amount.String(), "source", isSource)

	defer reportTransfer("send", sourcePort, sourceChannel, fullDenomPath, coin.Amount, isSource)

	return sequence, nil
}

// OnRecvPacket credits the receiver of a transfer. Tokens this chain escrowed earlier come
// back out of the escrow account of the destination channel end; any other denomination is
// minted as the voucher ibc/<destination channel>/<denomination path>.
func (k Keeper) OnRecvPacket(ctx sdk.Context, packet ibcchanneltypes.Packet, data types.FungibleTokenPacketData) error {
	if err := data.ValidateBasic(); err != nil {
		return errorsmod.Wrap(err, "error validating ICS-20 transfer packet data")
	}

	amount, err := parseAmount(data.Amount)
	if err != nil {
		return err
	}

	// a token returning home carries the prefix of the channel end it left through
	returning := types.ReceiverChainIsSource(packet.GetSourcePort(), packet.GetSourceChannel(), data.Denom)

	if returning {
		baseDenom := data.Denom[len(types.GetDenomPrefix(packet.GetSourcePort(), packet.GetSourceChannel())):]
		token := sdk.NewCoin(types.GetLocalDenom(baseDenom), amount)

		if err := k.unescrowToken(ctx, types.GetEscrowAddress(packet.GetDestPort(), packet.GetDestChannel()), data.Receiver, token); err != nil {
			return err
		}

		defer reportTransfer("receive", packet.GetSourcePort(), packet.GetSourceChannel(), baseDenom, amount, true)
		return nil
	}

	voucherDenom := types.GetVoucherDenom(types.GetPrefixedDenom(packet.GetDestPort(), packet.GetDestChannel(), data.Denom))
	ctx.EventManager().EmitEvent(
		sdk.NewEvent(types.EventTypeDenom, sdk.NewAttribute(types.AttributeKeyDenom, voucherDenom)),
	)

	if err := k.bankKeeper.MintCoins(ctx, data.Receiver, sdk.NewCoins(sdk.NewCoin(voucherDenom, amount))); err != nil {
		return errorsmod.Wrap(err, "failed to mint IBC tokens")
	}

	defer reportTransfer("receive", packet.GetSourcePort(), packet.GetSourceChannel(), data.Denom, amount, false)
	return nil
}

// OnAcknowledgementPacket refunds the sender when the receiving chain wrote an error
// acknowledgement. Result acknowledgements need no further action.
func (k Keeper) OnAcknowledgementPacket(ctx sdk.Context, packet ibcchanneltypes.Packet, data types.FungibleTokenPacketData, ack ibcchanneltypes.Acknowledgement) error {
	switch ack.Response.(type) {
	case *ibcchanneltypes.Acknowledgement_Result:
		return nil
	case *ibcchanneltypes.Acknowledgement_Error:
		return k.refundPacketToken(ctx, packet, data)
	default:
		return errorsmod.Wrapf(types.ErrInvalidAcknowledgement, "unexpected acknowledgement response %T", ack.Response)
	}
}

// OnTimeoutPacket refunds the sender of a packet that was never received.
func (k Keeper) OnTimeoutPacket(ctx sdk.Context, packet ibcchanneltypes.Packet, data types.FungibleTokenPacketData) error {
	return k.refundPacketToken(ctx, packet, data)
}

// refundPacketToken reverts sendTransfer: escrowed tokens are released to the sender and
// burned vouchers are minted again.
func (k Keeper) refundPacketToken(ctx sdk.Context, packet ibcchanneltypes.Packet, data types.FungibleTokenPacketData) error {
	amount, err := parseAmount(data.Amount)
	if err != nil {
		return err
	}
	token := sdk.NewCoin(types.GetLocalDenom(data.Denom), amount)

	k.Logger(ctx).Info("refunding transfer", "sequence", packet.GetSequence(), "sender", data.Sender, "token", token.String())

	if types.SenderChainIsSource(packet.GetSourcePort(), packet.GetSourceChannel(), data.Denom) {
		return k.unescrowToken(ctx, types.GetEscrowAddress(packet.GetSourcePort(), packet.GetSourceChannel()), data.Sender, token)
	}
	return k.bankKeeper.MintCoins(ctx, data.Sender, sdk.NewCoins(token))
}

// escrowToken locks token in the escrow account and adds it to the escrow total of its
// denomination.
func (k Keeper) escrowToken(ctx sdk.Context, sender, escrowAddress string, token sdk.Coin) error {
	if err := k.bankKeeper.SendCoins(ctx, sender, escrowAddress, sdk.NewCoins(token)); err != nil {
		return err
	}

	total := k.GetTotalEscrowForDenom(ctx, token.GetDenom())
	k.SetTotalEscrowForDenom(ctx, total.Add(token))
	return nil
}

// unescrowToken releases token from the escrow account and deducts it from the escrow
// total of its denomination.
func (k Keeper) unescrowToken(ctx sdk.Context, escrowAddress, receiver string, token sdk.Coin) error {
	if err := k.bankKeeper.SendCoins(ctx, escrowAddress, receiver, sdk.NewCoins(token)); err != nil {
		// the escrow account only ever holds what was sent through its channel end
		return errorsmod.Wrap(err, "unable to unescrow tokens")
	}

	total := k.GetTotalEscrowForDenom(ctx, token.GetDenom())
	remaining, err := total.SafeSub(token)
	if err != nil {
		return fmt.Errorf("unable to deduct %s from total escrow %s: %w", token, total, err)
	}
	k.SetTotalEscrowForDenom(ctx, remaining)
	return nil
}

func parseAmount(amount string) (sdkmath.Int, error) {
	parsed, ok := sdkmath.NewIntFromString(amount)
	if !ok {
		return sdkmath.Int{}, errorsmod.Wrapf(types.ErrInvalidAmount, "unable to parse transfer amount: %s", amount)
	}
	return parsed, nil
}

// reportTransfer records the amount and count of a transfer leg.
func reportTransfer(leg, sourcePort, sourceChannel, denom string, amount sdkmath.Int, source bool) {
	if amount.IsInt64() {
		telemetry.SetGaugeWithLabels(
			[]string{"ibc", types.ModuleName, "packet", leg},
			float32(amount.Int64()),
			[]metrics.Label{telemetry.NewLabel(coremetrics.LabelDenom, denom)},
		)
	}

	telemetry.IncrCounterWithLabels(
		[]string{"ibc", types.ModuleName, leg},
		1,
		[]metrics.Label{
			telemetry.NewLabel(coremetrics.LabelSourcePort, sourcePort),
			telemetry.NewLabel(coremetrics.LabelSourceChannel, sourceChannel),
			telemetry.NewLabel(coremetrics.LabelSource, fmt.Sprintf("%t", source)),
		},
	)
}
