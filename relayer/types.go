package relayer

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/cosmos/simibc/modules/core/exported"
)

// Chain is the privileged entry point of a simulated chain the relayer drives.
type Chain interface {
	ChainID() string
	Sudo(msg exported.SudoMsg) (*sdk.Result, error)
	Query(req exported.QueryRequest) ([]byte, error)
}

// ChannelCreationResult holds the responses of the four handshake steps and the
// identifiers of both channel ends.
type ChannelCreationResult struct {
	Init    *sdk.Result
	Try     *sdk.Result
	Ack     *sdk.Result
	Confirm *sdk.Result

	SrcChannel string
	DstChannel string
}

// RelayPacketResult is the outcome of relaying one packet. Result is either a
// *TimeoutResult or an *AcknowledgementResult.
type RelayPacketResult struct {
	ReceiveTx *sdk.Result
	Result    RelayingResult
}

// RelayingResult is implemented by TimeoutResult and AcknowledgementResult.
type RelayingResult interface {
	isRelayingResult()
}

// TimeoutResult is returned when the destination chain recorded the packet as timed out.
// CloseChannelConfirm is set when the destination closed its ordered channel end.
type TimeoutResult struct {
	TimeoutTx           *sdk.Result
	CloseChannelConfirm *sdk.Result
}

// AcknowledgementResult is returned when the destination chain acknowledged the packet.
type AcknowledgementResult struct {
	Tx  *sdk.Result
	Ack []byte
}

func (*TimeoutResult) isRelayingResult()         {}
func (*AcknowledgementResult) isRelayingResult() {}
