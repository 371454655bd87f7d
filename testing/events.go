package ibctesting

import (
	"encoding/hex"
	"fmt"
	"strconv"

	testifysuite "github.com/stretchr/testify/suite"

	abci "github.com/cometbft/cometbft/abci/types"

	clienttypes "github.com/cosmos/ibc-go/v10/modules/core/02-client/types"

	connectiontypes "github.com/cosmos/simibc/modules/core/03-connection/types"
	channeltypes "github.com/cosmos/simibc/modules/core/04-channel/types"
	"github.com/cosmos/simibc/relayer"
)

// ParseConnectionIDFromEvents returns the identifier of the connection created or updated
// by a MsgCreateConnection.
func ParseConnectionIDFromEvents(events []abci.Event) (string, error) {
	return relayer.EventAttributeValue(events, connectiontypes.EventTypeConnectionOpen, connectiontypes.AttributeKeyConnectionID)
}

// ParseChannelIDFromEvents returns the identifier of the channel end opened by a
// MsgOpenChannel.
func ParseChannelIDFromEvents(events []abci.Event) (string, error) {
	if id, err := relayer.EventAttributeValue(events, channeltypes.EventTypeChannelOpenInit, channeltypes.AttributeKeyChannelID); err == nil {
		return id, nil
	}
	return relayer.EventAttributeValue(events, channeltypes.EventTypeChannelOpenTry, channeltypes.AttributeKeyChannelID)
}

// ParsePacketFromEvents returns the first packet announced by a send_packet event.
func ParsePacketFromEvents(events []abci.Event) (channeltypes.PacketData, error) {
	packets, err := ParsePacketsFromEvents(channeltypes.EventTypeSendPacket, events)
	if err != nil {
		return channeltypes.PacketData{}, err
	}
	return packets[0], nil
}

// ParsePacketsFromEvents rebuilds the packets carried by every event of the given type,
// in emission order.
func ParsePacketsFromEvents(eventType string, events []abci.Event) ([]channeltypes.PacketData, error) {
	var packets []channeltypes.PacketData
	for _, ev := range events {
		if ev.Type != eventType {
			continue
		}
		packet, err := packetFromAttributes(attributeMap(ev))
		if err != nil {
			return nil, fmt.Errorf("ibctesting.ParsePacketsFromEvents: %w", err)
		}
		packets = append(packets, packet)
	}
	if len(packets) == 0 {
		return nil, fmt.Errorf("ibctesting.ParsePacketsFromEvents: %s event not found", eventType)
	}
	return packets, nil
}

func packetFromAttributes(attrs map[string]string) (channeltypes.PacketData, error) {
	packet := channeltypes.PacketData{
		SourcePort:         attrs[channeltypes.AttributeKeySrcPort],
		SourceChannel:      attrs[channeltypes.AttributeKeySrcChannel],
		DestinationPort:    attrs[channeltypes.AttributeKeyDstPort],
		DestinationChannel: attrs[channeltypes.AttributeKeyDstChannel],
	}

	var err error
	if packet.Data, err = hex.DecodeString(attrs[channeltypes.AttributeKeyDataHex]); err != nil {
		return packet, err
	}
	if packet.Sequence, err = strconv.ParseUint(attrs[channeltypes.AttributeKeySequence], 10, 64); err != nil {
		return packet, err
	}
	if packet.Timeout.Height, err = clienttypes.ParseHeight(attrs[channeltypes.AttributeKeyTimeoutHeight]); err != nil {
		return packet, err
	}
	if packet.Timeout.Timestamp, err = strconv.ParseUint(attrs[channeltypes.AttributeKeyTimeoutTimestamp], 10, 64); err != nil {
		return packet, err
	}
	return packet, nil
}

// ParseAckFromEvents returns the acknowledgement announced by a write_acknowledgement event.
func ParseAckFromEvents(events []abci.Event) ([]byte, error) {
	ackHex, err := relayer.EventAttributeValue(events, channeltypes.EventTypeWriteAck, channeltypes.AttributeKeyAckHex)
	if err != nil {
		return nil, err
	}
	return hex.DecodeString(ackHex)
}

// AssertEvents requires every expected event to appear in actual. An actual event matches
// when it has the same type, the same number of attributes and contains every expected
// attribute.
func AssertEvents(suite *testifysuite.Suite, expected, actual []abci.Event) {
	for _, expectedEvent := range expected {
		suite.Require().True(containsEvent(actual, expectedEvent), "event: %s was not found in events", expectedEvent.Type)
	}
}

func containsEvent(events []abci.Event, expected abci.Event) bool {
	for _, ev := range events {
		if ev.Type != expected.Type || len(ev.Attributes) != len(expected.Attributes) {
			continue
		}
		attrs := attributeMap(ev)
		matched := true
		for _, attr := range expected.Attributes {
			if value, ok := attrs[attr.Key]; !ok || value != attr.Value {
				matched = false
				break
			}
		}
		if matched {
			return true
		}
	}
	return false
}

// attributeMap indexes the attributes of an event by key. The indexed flag is ignored as
// it depends on how the events were retrieved.
func attributeMap(ev abci.Event) map[string]string {
	attrs := make(map[string]string, len(ev.Attributes))
	for _, attr := range ev.Attributes {
		if _, ok := attrs[attr.Key]; !ok {
			attrs[attr.Key] = attr.Value
		}
	}
	return attrs
}
