package transfer

import (
	"strconv"
	"strings"

	errorsmod "cosmossdk.io/errors"

	sdk "github.com/cosmos/cosmos-sdk/types"

	ibcchanneltypes "github.com/cosmos/ibc-go/v10/modules/core/04-channel/types"
	ibcexported "github.com/cosmos/ibc-go/v10/modules/core/exported"

	"github.com/cosmos/simibc/modules/apps/transfer/keeper"
	"github.com/cosmos/simibc/modules/apps/transfer/types"
	channeltypes "github.com/cosmos/simibc/modules/core/04-channel/types"
	porttypes "github.com/cosmos/simibc/modules/core/05-port/types"
)

var _ porttypes.IBCModule = (*IBCModule)(nil)

// IBCModule binds the transfer keeper to the transfer port.
type IBCModule struct {
	keeper keeper.Keeper
}

// NewIBCModule creates a new IBCModule given the keeper
func NewIBCModule(k keeper.Keeper) IBCModule {
	return IBCModule{
		keeper: k,
	}
}

func validateVersion(version string) error {
	if version != types.Version {
		return errorsmod.Wrapf(types.ErrInvalidVersion, "expected %s, got %s", types.Version, version)
	}
	return nil
}

// OnChanOpenInit accepts ics20-1 only. An empty proposal selects it.
func (IBCModule) OnChanOpenInit(
	_ sdk.Context,
	_ channeltypes.Order,
	_ string,
	_ string,
	_ string,
	_ channeltypes.Endpoint,
	version string,
) (string, error) {
	if strings.TrimSpace(version) == "" {
		return types.Version, nil
	}
	if err := validateVersion(version); err != nil {
		return "", err
	}
	return version, nil
}

// OnChanOpenTry implements the IBCModule interface.
func (IBCModule) OnChanOpenTry(
	_ sdk.Context,
	_ channeltypes.Order,
	_ string,
	_,
	_ string,
	_ channeltypes.Endpoint,
	counterpartyVersion string,
) (string, error) {
	if err := validateVersion(counterpartyVersion); err != nil {
		return "", errorsmod.Wrap(err, "invalid counterparty version")
	}
	return types.Version, nil
}

// OnChanOpenAck implements the IBCModule interface.
func (IBCModule) OnChanOpenAck(_ sdk.Context, _, _ string, _ string, counterpartyVersion string) error {
	if err := validateVersion(counterpartyVersion); err != nil {
		return errorsmod.Wrap(err, "invalid counterparty version")
	}
	return nil
}

// OnChanOpenConfirm implements the IBCModule interface.
func (IBCModule) OnChanOpenConfirm(_ sdk.Context, _, _ string) error { return nil }

// OnChanCloseInit implements the IBCModule interface. Funds still in flight are refunded
// through the timeouts of their packets.
func (IBCModule) OnChanCloseInit(_ sdk.Context, _, _ string) error { return nil }

// OnChanCloseConfirm implements the IBCModule interface.
func (IBCModule) OnChanCloseConfirm(_ sdk.Context, _, _ string) error { return nil }

// OnRecvPacket credits the receiver. Undecodable packet data and failed credits are
// reported as error acknowledgements, so the result is never nil.
func (im IBCModule) OnRecvPacket(
	ctx sdk.Context,
	_ string,
	packet ibcchanneltypes.Packet,
	_ string,
) ibcexported.Acknowledgement {
	data, err := types.UnmarshalPacketData(packet.GetData())
	if err == nil {
		err = im.keeper.OnRecvPacket(ctx, packet, data)
	}

	var ack ibcchanneltypes.Acknowledgement
	attributes := append(packetDataAttributes(data), sdk.NewAttribute(types.AttributeKeyAckSuccess, strconv.FormatBool(err == nil)))
	if err != nil {
		im.keeper.Logger(ctx).Error("ICS-20 packet not handled", "sequence", packet.Sequence, "error", err.Error())
		ack = ibcchanneltypes.NewErrorAcknowledgement(err)
		attributes = append(attributes, sdk.NewAttribute(types.AttributeKeyAckError, err.Error()))
	} else {
		im.keeper.Logger(ctx).Info("successfully handled ICS-20 packet", "sequence", packet.Sequence)
		ack = ibcchanneltypes.NewResultAcknowledgement([]byte{byte(1)})
	}

	ctx.EventManager().EmitEvent(sdk.NewEvent(types.EventTypePacket, attributes...))

	return ack
}

// OnAcknowledgementPacket decodes the ibc-go JSON acknowledgement and refunds the sender of
// a failed transfer.
func (im IBCModule) OnAcknowledgementPacket(
	ctx sdk.Context,
	_ string,
	packet ibcchanneltypes.Packet,
	acknowledgement []byte,
	_ string,
) error {
	var ack ibcchanneltypes.Acknowledgement
	if err := ibcchanneltypes.SubModuleCdc.UnmarshalJSON(acknowledgement, &ack); err != nil {
		return errorsmod.Wrapf(types.ErrInvalidAcknowledgement, "cannot unmarshal ICS-20 transfer packet acknowledgement: %v", err)
	}

	data, err := types.UnmarshalPacketData(packet.GetData())
	if err != nil {
		return err
	}

	if err := im.keeper.OnAcknowledgementPacket(ctx, packet, data, ack); err != nil {
		return err
	}

	outcome := sdk.NewAttribute(types.AttributeKeyAckSuccess, string(ack.GetResult()))
	if !ack.Success() {
		outcome = sdk.NewAttribute(types.AttributeKeyAckError, ack.GetError())
	}

	ctx.EventManager().EmitEvents(sdk.Events{
		sdk.NewEvent(types.EventTypePacket, append(packetDataAttributes(data), sdk.NewAttribute(types.AttributeKeyAck, ack.String()))...),
		sdk.NewEvent(types.EventTypePacket, outcome),
	})

	return nil
}

// OnTimeoutPacket refunds the sender of a packet that timed out.
func (im IBCModule) OnTimeoutPacket(
	ctx sdk.Context,
	_ string,
	packet ibcchanneltypes.Packet,
	_ string,
) error {
	data, err := types.UnmarshalPacketData(packet.GetData())
	if err != nil {
		return err
	}

	if err := im.keeper.OnTimeoutPacket(ctx, packet, data); err != nil {
		return err
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeTimeout,
			sdk.NewAttribute(sdk.AttributeKeyModule, types.ModuleName),
			sdk.NewAttribute(types.AttributeKeyRefundReceiver, data.Sender),
			sdk.NewAttribute(types.AttributeKeyRefundDenom, data.Denom),
			sdk.NewAttribute(types.AttributeKeyRefundAmount, data.Amount),
			sdk.NewAttribute(types.AttributeKeyMemo, data.Memo),
		),
	)

	return nil
}

func packetDataAttributes(data types.FungibleTokenPacketData) []sdk.Attribute {
	return []sdk.Attribute{
		sdk.NewAttribute(sdk.AttributeKeyModule, types.ModuleName),
		sdk.NewAttribute(types.AttributeKeySender, data.Sender),
		sdk.NewAttribute(types.AttributeKeyReceiver, data.Receiver),
		sdk.NewAttribute(types.AttributeKeyDenom, data.Denom),
		sdk.NewAttribute(types.AttributeKeyAmount, data.Amount),
		sdk.NewAttribute(types.AttributeKeyMemo, data.Memo),
	}
}
