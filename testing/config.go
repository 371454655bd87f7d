package ibctesting

import (
	transfertypes "github.com/cosmos/simibc/modules/apps/transfer/types"
	channeltypes "github.com/cosmos/simibc/modules/core/04-channel/types"
	"github.com/cosmos/simibc/testing/mock"
)

const (
	// TransferPort is the port of the ICS-20 application.
	TransferPort = transfertypes.PortID
	// MockPort is the port of the mock application.
	MockPort = mock.PortID

	// DefaultChannelVersion is the version of mock channels.
	DefaultChannelVersion = mock.Version
	// TransferVersion is the version of transfer channels.
	TransferVersion = transfertypes.Version
)

type ChannelConfig struct {
	PortID  string
	Version string
	Order   channeltypes.Order
}

func NewChannelConfig() *ChannelConfig {
	return &ChannelConfig{
		PortID:  mock.PortID,
		Version: DefaultChannelVersion,
		Order:   channeltypes.UNORDERED,
	}
}
