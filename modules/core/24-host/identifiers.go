package host

import (
	"fmt"
	"regexp"
	"strings"

	errorsmod "cosmossdk.io/errors"

	ibcerrors "github.com/cosmos/simibc/modules/core/errors"
)

const (
	// ConnectionPrefix is the prefix of every connection identifier.
	ConnectionPrefix = "connection-"
	// ChannelPrefix is the prefix of every channel identifier.
	ChannelPrefix = "channel-"
)

// IsValidID defines regular expression to check if the string consist of
// characters in one of the following categories only:
// - Alphanumeric
// - `.`, `_`, `+`, `-`, `#`
// - `[`, `]`, `<`, `>`
var IsValidID = regexp.MustCompile(`^[a-zA-Z0-9\.\_\+\-\#\[\]\<\>]+$`).MatchString

// FormatConnectionIdentifier returns the connection identifier with the sequence appended.
func FormatConnectionIdentifier(sequence uint64) string {
	return fmt.Sprintf("%s%d", ConnectionPrefix, sequence)
}

// FormatChannelIdentifier returns the channel identifier with the sequence appended.
func FormatChannelIdentifier(sequence uint64) string {
	return fmt.Sprintf("%s%d", ChannelPrefix, sequence)
}

// PortIdentifierValidator performs a default validation of a port identifier.
func PortIdentifierValidator(id string) error {
	return defaultIdentifierValidator(id, 2, 128)
}

// ChannelIdentifierValidator performs a default validation of a channel identifier.
func ChannelIdentifierValidator(id string) error {
	return defaultIdentifierValidator(id, 8, 64)
}

// ConnectionIdentifierValidator performs a default validation of a connection identifier.
func ConnectionIdentifierValidator(id string) error {
	return defaultIdentifierValidator(id, 10, 64)
}

func defaultIdentifierValidator(id string, minLength, maxLength int) error {
	if strings.TrimSpace(id) == "" {
		return errorsmod.Wrap(ibcerrors.ErrInvalidRequest, "identifier cannot be blank")
	}
	// valid id MUST NOT contain "/" separator
	if strings.Contains(id, "/") {
		return errorsmod.Wrapf(ibcerrors.ErrInvalidRequest, "identifier %s cannot contain separator '/'", id)
	}
	// valid id must fit the length requirements
	if len(id) < minLength || len(id) > maxLength {
		return errorsmod.Wrapf(ibcerrors.ErrInvalidRequest, "identifier %s has invalid length: %d, must be between %d-%d characters", id, len(id), minLength, maxLength)
	}
	// valid id must contain only lower alphabetic characters
	if !IsValidID(id) {
		return errorsmod.Wrapf(
			ibcerrors.ErrInvalidRequest,
			"identifier %s must contain only alphanumeric or the following characters: '.', '_', '+', '-', '#', '[', ']', '<', '>'",
			id,
		)
	}
	return nil
}
