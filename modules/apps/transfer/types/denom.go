package types

import (
	"fmt"
	"strings"

	errorsmod "cosmossdk.io/errors"

	host "github.com/cosmos/simibc/modules/core/24-host"
)

// GetDenomPrefix returns the receiving denomination prefix
func GetDenomPrefix(portID, channelID string) string {
	return fmt.Sprintf("%s/%s/", portID, channelID)
}

// GetPrefixedDenom returns the denomination with the portID and channelID prefixed
func GetPrefixedDenom(portID, channelID, baseDenom string) string {
	return fmt.Sprintf("%s/%s/%s", portID, channelID, baseDenom)
}

// SenderChainIsSource returns false if the denomination originally came
// from the receiving chain and true otherwise.
func SenderChainIsSource(sourcePort, sourceChannel, denom string) bool {
	// This is the prefix that would have been prefixed to the denomination
	// on sender chain IF and only if the token originally came from the
	// receiving chain.

	return !ReceiverChainIsSource(sourcePort, sourceChannel, denom)
}

// ReceiverChainIsSource returns true if the denomination originally came
// from the receiving chain and false otherwise.
func ReceiverChainIsSource(sourcePort, sourceChannel, denom string) bool {
	// The prefix passed in should contain the SourcePort and SourceChannel.
	// If  the receiver chain originally sent the token to the sender chain
	// the denom will have the sender's SourcePort and SourceChannel as the
	// prefix.

	voucherPrefix := GetDenomPrefix(sourcePort, sourceChannel)
	return strings.HasPrefix(denom, voucherPrefix)
}

// GetVoucherDenom returns the local denomination of a full denomination path received over
// a channel of the transfer port: "transfer/channel-3/uatom" becomes "ibc/channel-3/uatom".
func GetVoucherDenom(fullDenomPath string) string {
	return DenomPrefix + "/" + strings.TrimPrefix(fullDenomPath, PortID+"/")
}

// GetFullDenomPath returns the denomination path carried in packet data for a local
// denomination. Native denominations are carried as is, vouchers get their trace back.
func GetFullDenomPath(denom string) string {
	if !IsVoucherDenom(denom) {
		return denom
	}
	return PortID + "/" + strings.TrimPrefix(denom, DenomPrefix+"/")
}

// IsVoucherDenom reports whether denom has the shape of a voucher minted by the transfer
// module. The check is by prefix only, so native denominations must never take that shape;
// see ValidateNativeDenom.
func IsVoucherDenom(denom string) bool {
	return strings.HasPrefix(denom, DenomPrefix+"/"+host.ChannelPrefix)
}

// ValidateNativeDenom rejects native denominations that would be mistaken for vouchers and
// rewritten to a transfer path when sent.
func ValidateNativeDenom(denom string) error {
	if IsVoucherDenom(denom) {
		return errorsmod.Wrapf(ErrInvalidDenomForTransfer, "native denomination %s cannot use the voucher prefix %s/%s", denom, DenomPrefix, host.ChannelPrefix)
	}
	return nil
}

// GetLocalDenom returns the local denomination of a full denomination path. It is the
// inverse of GetFullDenomPath.
func GetLocalDenom(fullDenomPath string) string {
	if strings.HasPrefix(fullDenomPath, PortID+"/"+host.ChannelPrefix) {
		return GetVoucherDenom(fullDenomPath)
	}
	return fullDenomPath
}
