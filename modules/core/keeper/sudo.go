package keeper

import (
	errorsmod "cosmossdk.io/errors"

	sdk "github.com/cosmos/cosmos-sdk/types"

	connectiontypes "github.com/cosmos/simibc/modules/core/03-connection/types"
	channeltypes "github.com/cosmos/simibc/modules/core/04-channel/types"
	ibcerrors "github.com/cosmos/simibc/modules/core/errors"
	"github.com/cosmos/simibc/modules/core/exported"
)

// Sudo executes a privileged message. Events are emitted on the context event manager;
// the returned bytes are the message response: the new connection or channel identifier,
// the send sequence, or the acknowledgement written by RecvPacket. The caller is expected
// to discard the state changes of a failed message.
func (k *Keeper) Sudo(ctx sdk.Context, msg exported.SudoMsg) ([]byte, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	k.Logger(ctx).Debug("handling sudo message", "type", msg.Type())

	switch msg := msg.(type) {
	case *connectiontypes.MsgCreateConnection:
		connectionID, err := k.CreateConnection(ctx, msg)
		return []byte(connectionID), err
	case *channeltypes.MsgOpenChannel:
		channelID, _, err := k.OpenChannel(ctx, msg)
		return []byte(channelID), err
	case *channeltypes.MsgConnectChannel:
		return nil, k.ConnectChannel(ctx, msg)
	case *channeltypes.MsgCloseChannel:
		return nil, k.CloseChannel(ctx, msg)
	case *channeltypes.MsgSendPacket:
		sequence, err := k.SendPacket(ctx, msg.PortID, msg.ChannelID, msg.Timeout.Height, msg.Timeout.Timestamp, msg.Data)
		if err != nil {
			return nil, err
		}
		return sdk.Uint64ToBigEndian(sequence), nil
	case *channeltypes.MsgRecvPacket:
		return k.RecvPacket(ctx, msg)
	case *channeltypes.MsgAcknowledgePacket:
		return nil, k.AcknowledgePacket(ctx, msg)
	case *channeltypes.MsgTimeoutPacket:
		return nil, k.TimeoutPacket(ctx, msg)
	default:
		return nil, errorsmod.Wrapf(ibcerrors.ErrUnknownRequest, "unrecognized sudo message type: %T", msg)
	}
}
