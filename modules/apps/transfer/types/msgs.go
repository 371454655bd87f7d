package types

import (
	"strings"

	errorsmod "cosmossdk.io/errors"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	clienttypes "github.com/cosmos/ibc-go/v10/modules/core/02-client/types"

	channeltypes "github.com/cosmos/simibc/modules/core/04-channel/types"
)

// MsgTransfer defines a msg to transfer fungible tokens (i.e Coins) between
// ICS20 enabled chains.
type MsgTransfer struct {
	// the port on which the packet will be sent
	SourcePort string `json:"source_port"`
	// the channel by which the packet will be sent
	SourceChannel string `json:"source_channel"`
	// the token to be transferred
	Token sdk.Coin `json:"token"`
	// the sender address
	Sender string `json:"sender"`
	// the recipient address on the destination chain
	Receiver string `json:"receiver"`
	// Timeout height relative to the current block height.
	// The timeout is disabled when set to 0.
	TimeoutHeight clienttypes.Height `json:"timeout_height"`
	// Timeout timestamp in absolute nanoseconds since unix epoch.
	// The timeout is disabled when set to 0.
	TimeoutTimestamp uint64 `json:"timeout_timestamp"`
	// optional memo
	Memo string `json:"memo,omitempty"`
}

// NewMsgTransfer creates a new MsgTransfer instance
func NewMsgTransfer(
	sourcePort, sourceChannel string,
	token sdk.Coin, sender, receiver string,
	timeoutHeight clienttypes.Height, timeoutTimestamp uint64,
	memo string,
) *MsgTransfer {
	return &MsgTransfer{
		SourcePort:       sourcePort,
		SourceChannel:    sourceChannel,
		Token:            token,
		Sender:           sender,
		Receiver:         receiver,
		TimeoutHeight:    timeoutHeight,
		TimeoutTimestamp: timeoutTimestamp,
		Memo:             memo,
	}
}

// ValidateBasic performs a basic check of the MsgTransfer fields.
// NOTE: timeout height or timestamp values can be 0 to disable the timeout.
// NOTE: The recipient addresses format is not validated as the format defined by
// the chain is not known to IBC.
func (msg *MsgTransfer) ValidateBasic() error {
	if err := channeltypes.NewEndpoint(msg.SourcePort, msg.SourceChannel).ValidateBasic(false); err != nil {
		return err
	}
	if !msg.Token.IsValid() {
		return errorsmod.Wrap(sdkerrors.ErrInvalidCoins, msg.Token.String())
	}
	if !msg.Token.IsPositive() {
		return errorsmod.Wrap(sdkerrors.ErrInsufficientFunds, msg.Token.String())
	}
	if strings.TrimSpace(msg.Sender) == "" {
		return errorsmod.Wrap(sdkerrors.ErrInvalidAddress, "missing sender address")
	}
	if strings.TrimSpace(msg.Receiver) == "" {
		return errorsmod.Wrap(sdkerrors.ErrInvalidAddress, "missing recipient address")
	}
	if len(msg.Memo) > MaximumMemoLength {
		return errorsmod.Wrapf(ErrInvalidMemo, "memo must not exceed %d bytes", MaximumMemoLength)
	}
	if msg.TimeoutHeight.IsZero() && msg.TimeoutTimestamp == 0 {
		return errorsmod.Wrap(ErrInvalidPacketTimeout, "timeout height and timeout timestamp cannot both be 0")
	}
	return nil
}

// GetSigner returns the account that authorizes the transfer.
func (msg *MsgTransfer) GetSigner() string {
	return msg.Sender
}

// MsgTransferResponse defines the Msg/Transfer response type.
type MsgTransferResponse struct {
	// sequence number of the transfer packet sent
	Sequence uint64 `json:"sequence"`
}
