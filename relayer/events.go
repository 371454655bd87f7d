package relayer

import (
	"slices"

	errorsmod "cosmossdk.io/errors"

	abci "github.com/cometbft/cometbft/abci/types"
)

// EventAttributeValue returns the value of attributeKey in the first event of type
// eventType that carries it.
func EventAttributeValue(events []abci.Event, eventType, attributeKey string) (string, error) {
	for _, ev := range events {
		if ev.Type != eventType {
			continue
		}
		if attribute, found := attributeByKey(ev.Attributes, attributeKey); found {
			return attribute.Value, nil
		}
	}
	return "", errorsmod.Wrapf(ErrMissingEventAttribute, "event type %s, attribute key %s", eventType, attributeKey)
}

// AllEventAttributeValues returns the values of attributeKey in every event of type
// eventType, in emission order.
func AllEventAttributeValues(events []abci.Event, eventType, attributeKey string) []string {
	var values []string
	for _, ev := range events {
		if ev.Type != eventType {
			continue
		}
		for _, attribute := range ev.Attributes {
			if attribute.Key == attributeKey {
				values = append(values, attribute.Value)
			}
		}
	}
	return values
}

// HasEvent reports whether an event of type eventType was emitted.
func HasEvent(events []abci.Event, eventType string) bool {
	return slices.ContainsFunc(events, func(ev abci.Event) bool { return ev.Type == eventType })
}

// attributeByKey returns the event attribute keyed by the given key and a boolean indicating its presence in the given attributes.
func attributeByKey(attributes []abci.EventAttribute, key string) (abci.EventAttribute, bool) {
	idx := slices.IndexFunc(attributes, func(a abci.EventAttribute) bool { return a.Key == key })
	if idx == -1 {
		return abci.EventAttribute{}, false
	}
	return attributes[idx], true
}
