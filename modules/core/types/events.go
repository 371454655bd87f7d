package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// ErrorAttributeKeySuffix marks the attributes of application events that were emitted
// while the application produced an error acknowledgement.
const ErrorAttributeKeySuffix = "-error"

// ConvertToErrorEvents returns a copy of events in which every attribute key carries
// ErrorAttributeKeySuffix. Event types are kept as is.
func ConvertToErrorEvents(events sdk.Events) sdk.Events {
	if events == nil {
		return nil
	}

	converted := make(sdk.Events, 0, len(events))
	for _, event := range events {
		attributes := make([]sdk.Attribute, 0, len(event.Attributes))
		for _, attr := range event.Attributes {
			attributes = append(attributes, sdk.NewAttribute(errorKey(attr.Key), attr.Value))
		}
		converted = append(converted, sdk.NewEvent(event.Type, attributes...))
	}

	return converted
}

func errorKey(key string) string {
	return key + ErrorAttributeKeySuffix
}
