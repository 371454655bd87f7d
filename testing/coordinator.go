package ibctesting

import (
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"cosmossdk.io/log"

	"github.com/cosmos/simibc/relayer"
)

var (
	ChainIDPrefix = "testchain"
	// to disable revision format, set ChainIDSuffix to ""
	ChainIDSuffix = "-1"
)

// Coordinator is a testing struct which contains N TestChain's and the relayer moving
// messages between them.
type Coordinator struct {
	*testing.T

	Chains  map[string]*TestChain
	Relayer *relayer.Relayer
}

// NewCoordinator initializes Coordinator with N TestChain's
func NewCoordinator(t *testing.T, n int) *Coordinator {
	t.Helper()
	chains := make(map[string]*TestChain)
	coord := &Coordinator{
		T:       t,
		Relayer: relayer.New(log.NewTestLogger(t)),
	}

	for i := 1; i <= n; i++ {
		chainID := GetChainID(i)
		chains[chainID] = NewTestChain(t, coord, chainID)
	}
	coord.Chains = chains

	return coord
}

// Setup constructs a connection and a channel on both chains provided. It will fail if
// any error occurs.
func (*Coordinator) Setup(path *Path) {
	path.Setup()
}

// CreateMockChannels constructs and executes channel handshake messages to create OPEN
// channels that use a mock application module. The function expects the channels to be
// successfully opened otherwise testing will fail.
func (*Coordinator) CreateMockChannels(path *Path) {
	path.EndpointA.ChannelConfig.PortID = MockPort
	path.EndpointB.ChannelConfig.PortID = MockPort

	path.CreateChannels()
}

// CreateTransferChannels constructs and executes channel handshake messages to create OPEN
// ibc-transfer channels on chainA and chainB. The function expects the channels to be
// successfully opened otherwise testing will fail.
func (*Coordinator) CreateTransferChannels(path *Path) {
	path.EndpointA.ChannelConfig.PortID = TransferPort
	path.EndpointA.ChannelConfig.Version = TransferVersion
	path.EndpointB.ChannelConfig.PortID = TransferPort
	path.EndpointB.ChannelConfig.Version = TransferVersion

	path.CreateChannels()
}

// GetChain returns the TestChain using the given chainID and returns an error if it does
// not exist.
func (coord *Coordinator) GetChain(chainID string) *TestChain {
	chain, found := coord.Chains[chainID]
	require.True(coord.T, found, fmt.Sprintf("%s chain does not exist", chainID))
	return chain
}

// GetChainID returns the chainID used for the provided index.
func GetChainID(index int) string {
	return ChainIDPrefix + strconv.Itoa(index) + ChainIDSuffix
}

// CommitBlock commits a block on the provided chains.
//
// CONTRACT: the passed in list of chains must not contain duplicates
func (*Coordinator) CommitBlock(chains ...*TestChain) {
	for _, chain := range chains {
		chain.NextBlock()
	}
}

// CommitNBlocks commits n blocks to state and updates the block height by 1 for each commit.
func (*Coordinator) CommitNBlocks(chain *TestChain, n uint64) {
	for i := uint64(0); i < n; i++ {
		chain.NextBlock()
	}
}
