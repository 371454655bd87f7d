package types

import (
	"encoding/json"
	"strings"

	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// MaximumMemoLength is the maximum length of the memo field of a transfer.
const MaximumMemoLength = 32768

// FungibleTokenPacketData defines a struct for the packet payload
type FungibleTokenPacketData struct {
	// the token denomination to be transferred
	Denom string `json:"denom"`
	// the token amount to be transferred
	Amount string `json:"amount"`
	// the sender address
	Sender string `json:"sender"`
	// the recipient address on the destination chain
	Receiver string `json:"receiver"`
	// optional memo
	Memo string `json:"memo,omitempty"`
}

// NewFungibleTokenPacketData constructs a new FungibleTokenPacketData instance
func NewFungibleTokenPacketData(
	denom string, amount string,
	sender, receiver string,
	memo string,
) FungibleTokenPacketData {
	return FungibleTokenPacketData{
		Denom:    denom,
		Amount:   amount,
		Sender:   sender,
		Receiver: receiver,
		Memo:     memo,
	}
}

// ValidateBasic is used for validating the token transfer.
// NOTE: The addresses formats are not validated as the sender and recipient can have different
// formats defined by their corresponding chains that are not known to IBC.
func (ftpd FungibleTokenPacketData) ValidateBasic() error {
	amount, ok := sdkmath.NewIntFromString(ftpd.Amount)
	if !ok {
		return errorsmod.Wrapf(ErrInvalidAmount, "unable to parse transfer amount (%s) into math.Int", ftpd.Amount)
	}
	if !amount.IsPositive() {
		return errorsmod.Wrapf(ErrInvalidAmount, "amount must be strictly positive: got %d", amount)
	}
	if strings.TrimSpace(ftpd.Sender) == "" {
		return errorsmod.Wrap(sdkerrors.ErrInvalidAddress, "sender address cannot be blank")
	}
	if strings.TrimSpace(ftpd.Receiver) == "" {
		return errorsmod.Wrap(sdkerrors.ErrInvalidAddress, "receiver address cannot be blank")
	}
	if len(ftpd.Memo) > MaximumMemoLength {
		return errorsmod.Wrapf(ErrInvalidMemo, "memo must not exceed %d bytes", MaximumMemoLength)
	}
	return sdk.ValidateDenom(ftpd.Denom)
}

// GetBytes is a helper for serialising
func (ftpd FungibleTokenPacketData) GetBytes() []byte {
	bz, err := json.Marshal(ftpd)
	if err != nil {
		panic(err)
	}
	return sdk.MustSortJSON(bz)
}

// UnmarshalPacketData decodes packet data bytes into FungibleTokenPacketData.
func UnmarshalPacketData(bz []byte) (FungibleTokenPacketData, error) {
	var data FungibleTokenPacketData
	if err := json.Unmarshal(bz, &data); err != nil {
		return FungibleTokenPacketData{}, errorsmod.Wrapf(ErrInvalidPacketData, "cannot unmarshal ICS-20 transfer packet data: %s", err)
	}
	return data, nil
}
