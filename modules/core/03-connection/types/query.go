package types

import (
	errorsmod "cosmossdk.io/errors"

	host "github.com/cosmos/simibc/modules/core/24-host"
	ibcerrors "github.com/cosmos/simibc/modules/core/errors"
	"github.com/cosmos/simibc/modules/core/exported"
)

var (
	_ exported.QueryRequest = (*QueryConnectedChainRequest)(nil)
	_ exported.QueryRequest = (*QueryChainConnectionsRequest)(nil)
)

// QueryConnectedChainRequest asks for the Connection stored under ConnectionID. The
// response is the JSON encoded Connection.
type QueryConnectedChainRequest struct {
	ConnectionID string `json:"connection_id"`
}

// ValidateBasic implements exported.QueryRequest.
func (req *QueryConnectedChainRequest) ValidateBasic() error {
	return host.ConnectionIdentifierValidator(req.ConnectionID)
}

// QueryChainConnectionsRequest asks for every connection towards ChainID. The response is
// the JSON encoded QueryChainConnectionsResponse.
type QueryChainConnectionsRequest struct {
	ChainID string `json:"chain_id"`
}

// ValidateBasic implements exported.QueryRequest.
func (req *QueryChainConnectionsRequest) ValidateBasic() error {
	if req.ChainID == "" {
		return errorsmod.Wrap(ibcerrors.ErrInvalidChainID, "chain id cannot be empty")
	}
	return nil
}

// QueryChainConnectionsResponse lists the connections towards a chain ordered by identifier.
type QueryChainConnectionsResponse struct {
	Connections []IdentifiedConnection `json:"connections"`
}
