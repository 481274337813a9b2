package party

import (
	"encoding/json"
	"fmt"
)

// decodes an inbound event payload into its typed response
func DecodeEvent(event string, data json.RawMessage) (Response, error) {
	switch event {
	case EventJoin, EventHost:
		var payload CountPayload
		if err := bindPayload(event, data, &payload); err != nil {
			return nil, err
		}

		if event == EventHost {
			return Hosted{NumUsers: *payload.NumUsers}, nil
		}

		return Joined{NumUsers: *payload.NumUsers}, nil

	case EventHostError:
		var payload HostErrorPayload
		if err := bindPayload(event, data, &payload); err != nil {
			return nil, err
		}

		return HostFailed{Message: payload.Error}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnexpectedEvent, event)
	}
}

// unmarshals and validates a payload
func bindPayload(event string, data json.RawMessage, v any) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: %s: empty payload", ErrMalformedPayload, event)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformedPayload, event, err)
	}

	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformedPayload, event, err)
	}

	return nil
}

var hostErrorFields = map[string]*FieldError{
	HostErrorPartyInUse:    {Field: FieldPartyID, Reason: ReasonPartyInUse},
	HostErrorPartyNotFound: {Field: FieldPartyID, Reason: ReasonPartyNotFound},
}

// maps a server error string to a field error by exact match
func MapHostError(message string) (*FieldError, bool) {
	fe, ok := hostErrorFields[message]
	if !ok {
		return nil, false
	}

	return &FieldError{Field: fe.Field, Reason: fe.Reason}, true
}
