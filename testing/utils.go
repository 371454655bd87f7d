package ibctesting

import (
	"crypto/sha256"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// MakeAddress returns a deterministic bech32 account address derived from seed.
func MakeAddress(seed string) string {
	hash := sha256.Sum256([]byte(seed))
	return sdk.AccAddress(hash[:20]).String()
}

// RequireErrorIsOrContains verifies that the passed error is either a target error or contains its error message.
func RequireErrorIsOrContains(t *testing.T, err, targetError error, msgAndArgs ...any) {
	t.Helper()
	require.Error(t, err)
	require.True(
		t,
		errors.Is(err, targetError) ||
			strings.Contains(err.Error(), targetError.Error()),
		msgAndArgs...)
}
