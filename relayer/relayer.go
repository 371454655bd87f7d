package relayer

import (
	"encoding/hex"
	"encoding/json"
	"strconv"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"

	abci "github.com/cometbft/cometbft/abci/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	connectiontypes "github.com/cosmos/simibc/modules/core/03-connection/types"
	channeltypes "github.com/cosmos/simibc/modules/core/04-channel/types"
)

// Relayer ferries handshake and packet messages between two chains. It reads the events
// of one chain and calls the privileged entry point of the other. It keeps no state, and a
// relay sequence stops at the first error.
type Relayer struct {
	logger log.Logger
}

// New returns a Relayer logging through logger, or a no-op logger when nil.
func New(logger log.Logger) *Relayer {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Relayer{logger: logger.With("module", "relayer")}
}

// CreateConnection links chain1 and chain2 with a new connection end on each chain and
// returns both connection identifiers.
func (r *Relayer) CreateConnection(chain1, chain2 Chain) (string, string, error) {
	res, err := chain1.Sudo(connectiontypes.NewMsgCreateConnection(chain2.ChainID(), "", ""))
	if err != nil {
		return "", "", err
	}
	connectionID1, err := EventAttributeValue(res.Events, connectiontypes.EventTypeConnectionOpen, connectiontypes.AttributeKeyConnectionID)
	if err != nil {
		return "", "", err
	}

	res, err = chain2.Sudo(connectiontypes.NewMsgCreateConnection(chain1.ChainID(), "", connectionID1))
	if err != nil {
		return "", "", err
	}
	connectionID2, err := EventAttributeValue(res.Events, connectiontypes.EventTypeConnectionOpen, connectiontypes.AttributeKeyConnectionID)
	if err != nil {
		return "", "", err
	}

	if _, err := chain1.Sudo(connectiontypes.NewMsgCreateConnection(chain2.ChainID(), connectionID1, connectionID2)); err != nil {
		return "", "", err
	}

	r.logger.Debug("connection created", "chain1", chain1.ChainID(), "connection1", connectionID1, "chain2", chain2.ChainID(), "connection2", connectionID2)

	return connectionID1, connectionID2, nil
}

// CreateChannel runs the four step channel handshake over connectionID of chain1 between
// port1 on chain1 and port2 on chain2.
func (r *Relayer) CreateChannel(
	chain1, chain2 Chain,
	connectionID string,
	port1, port2 string,
	version string,
	order channeltypes.Order,
) (*ChannelCreationResult, error) {
	// INIT
	initRes, err := chain1.Sudo(channeltypes.NewMsgChannelOpenInit(connectionID, port1, version, order, port2))
	if err != nil {
		return nil, err
	}
	srcChannel, err := EventAttributeValue(initRes.Events, channeltypes.EventTypeChannelOpenInit, channeltypes.AttributeKeyChannelID)
	if err != nil {
		return nil, err
	}
	srcVersion, err := EventAttributeValue(initRes.Events, channeltypes.EventTypeChannelOpenInit, channeltypes.AttributeKeyVersion)
	if err != nil {
		return nil, err
	}

	// TRY
	bz, err := chain1.Query(&connectiontypes.QueryConnectedChainRequest{ConnectionID: connectionID})
	if err != nil {
		return nil, err
	}
	var connection connectiontypes.Connection
	if err := json.Unmarshal(bz, &connection); err != nil {
		return nil, err
	}
	if !connection.HasCounterparty() {
		return nil, errorsmod.Wrapf(ErrMissingCounterparty, "connection %s on chain %s", connectionID, chain1.ChainID())
	}

	tryRes, err := chain2.Sudo(channeltypes.NewMsgChannelOpenTry(
		connection.CounterpartyConnectionID, port2, version, order,
		channeltypes.NewEndpoint(port1, srcChannel), srcVersion,
	))
	if err != nil {
		return nil, err
	}
	dstChannel, err := EventAttributeValue(tryRes.Events, channeltypes.EventTypeChannelOpenTry, channeltypes.AttributeKeyChannelID)
	if err != nil {
		return nil, err
	}
	dstVersion, err := EventAttributeValue(tryRes.Events, channeltypes.EventTypeChannelOpenTry, channeltypes.AttributeKeyVersion)
	if err != nil {
		return nil, err
	}

	// ACK
	ackRes, err := chain1.Sudo(channeltypes.NewMsgConnectChannel(port1, srcChannel, channeltypes.NewEndpoint(port2, dstChannel), dstVersion))
	if err != nil {
		return nil, err
	}

	// CONFIRM
	confirmRes, err := chain2.Sudo(channeltypes.NewMsgConnectChannel(port2, dstChannel, channeltypes.NewEndpoint(port1, srcChannel), srcVersion))
	if err != nil {
		return nil, err
	}

	r.logger.Debug(
		"channel created",
		"chain1", chain1.ChainID(), "port1", port1, "channel1", srcChannel,
		"chain2", chain2.ChainID(), "port2", port2, "channel2", dstChannel,
		"version", dstVersion, "order", order.String(),
	)

	return &ChannelCreationResult{
		Init:       initRes,
		Try:        tryRes,
		Ack:        ackRes,
		Confirm:    confirmRes,
		SrcChannel: srcChannel,
		DstChannel: dstChannel,
	}, nil
}

// RelayPacket delivers the packet sent by chain1 on srcPort/srcChannel with the given
// sequence to chain2 and relays the outcome back to chain1: the acknowledgement, or the
// timeout along with the closure of an ordered channel.
func (r *Relayer) RelayPacket(chain1, chain2 Chain, srcPort, srcChannel string, sequence uint64) (*RelayPacketResult, error) {
	bz, err := chain1.Query(&channeltypes.QuerySendPacketRequest{PortID: srcPort, ChannelID: srcChannel, Sequence: sequence})
	if err != nil {
		return nil, err
	}
	var packet channeltypes.PacketData
	if err := json.Unmarshal(bz, &packet); err != nil {
		return nil, err
	}
	// the sender record carries the acknowledgement once relayed
	packet.Ack = nil

	receiveRes, err := chain2.Sudo(channeltypes.NewMsgRecvPacket(packet))
	if err != nil {
		return nil, err
	}

	if HasEvent(receiveRes.Events, channeltypes.EventTypeTimeoutReceivedPacket) {
		timeoutRes, err := chain1.Sudo(channeltypes.NewMsgTimeoutPacket(packet))
		if err != nil {
			return nil, err
		}

		result := &TimeoutResult{TimeoutTx: timeoutRes}
		if HasEvent(receiveRes.Events, channeltypes.EventTypeChannelCloseInit) {
			result.CloseChannelConfirm, err = chain1.Sudo(channeltypes.NewMsgCloseChannel(srcPort, srcChannel, false))
			if err != nil {
				return nil, err
			}
		}

		r.logger.Debug("packet timed out", "src_chain", chain1.ChainID(), "src_port", srcPort, "src_channel", srcChannel, "sequence", sequence)

		return &RelayPacketResult{ReceiveTx: receiveRes, Result: result}, nil
	}

	ackHex, err := EventAttributeValue(receiveRes.Events, channeltypes.EventTypeWriteAck, channeltypes.AttributeKeyAckHex)
	if err != nil {
		return nil, err
	}
	ack, err := hex.DecodeString(ackHex)
	if err != nil {
		return nil, errorsmod.Wrapf(ErrMalformedEvent, "%s is not hex encoded: %s", channeltypes.AttributeKeyAckHex, err)
	}

	ackRes, err := chain1.Sudo(channeltypes.NewMsgAcknowledgePacket(packet, ack))
	if err != nil {
		return nil, err
	}

	r.logger.Debug("packet acknowledged", "src_chain", chain1.ChainID(), "src_port", srcPort, "src_channel", srcChannel, "sequence", sequence)

	return &RelayPacketResult{
		ReceiveTx: receiveRes,
		Result:    &AcknowledgementResult{Tx: ackRes, Ack: ack},
	}, nil
}

// RelayPacketsInTx relays every packet whose send_packet event appears in res, in the
// order the events were emitted.
func (r *Relayer) RelayPacketsInTx(chain1, chain2 Chain, res *sdk.Result) ([]*RelayPacketResult, error) {
	packets, err := sentPackets(res.Events)
	if err != nil {
		return nil, err
	}

	results := make([]*RelayPacketResult, 0, len(packets))
	for _, packet := range packets {
		result, err := r.RelayPacket(chain1, chain2, packet.SourcePort, packet.SourceChannel, packet.Sequence)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

// sentPackets correlates the sequence, source channel and source port attributes of the
// send_packet events by position.
func sentPackets(events []abci.Event) ([]channeltypes.PacketData, error) {
	sequences := AllEventAttributeValues(events, channeltypes.EventTypeSendPacket, channeltypes.AttributeKeySequence)
	channels := AllEventAttributeValues(events, channeltypes.EventTypeSendPacket, channeltypes.AttributeKeySrcChannel)
	ports := AllEventAttributeValues(events, channeltypes.EventTypeSendPacket, channeltypes.AttributeKeySrcPort)

	if len(sequences) != len(channels) || len(sequences) != len(ports) {
		return nil, errorsmod.Wrapf(
			ErrMalformedEvent, "%s event lists %d sequences, %d source channels and %d source ports",
			channeltypes.EventTypeSendPacket, len(sequences), len(channels), len(ports),
		)
	}

	packets := make([]channeltypes.PacketData, len(sequences))
	for i, value := range sequences {
		sequence, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return nil, errorsmod.Wrapf(ErrMalformedEvent, "invalid %s %q", channeltypes.AttributeKeySequence, value)
		}
		packets[i] = channeltypes.PacketData{
			SourcePort:    ports[i],
			SourceChannel: channels[i],
			Sequence:      sequence,
		}
	}
	return packets, nil
}
