//go:generate go run go.uber.org/mock/mockgen -destination=mocks/mock_party.go -package=mocks . Emitter,Handler

package party

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// outbound event names
const (
	// asks the server to join an existing party
	EventJoinParty = "join party"

	// asks the server to create a party with the caller as host
	EventCreateParty = "create party"
)

// inbound event names
const (
	// is sent when a join succeeded
	EventJoin = "join"

	// is sent when a create succeeded
	EventHost = "host"

	// is sent when a join or create failed
	EventHostError = "host error"
)

// server error strings, matched verbatim
const (
	HostErrorPartyInUse    = "Party already in use"
	HostErrorPartyNotFound = "Party does not exist"
)

// default bound on how long a request waits for the server
const DefaultRequestTimeout = 10 * time.Second

// errors
var (
	ErrRequestInFlight  = errors.New("a party request is already in flight")
	ErrRequestTimeout   = errors.New("timed out waiting for the party server")
	ErrCompleted        = errors.New("party session already completed")
	ErrMalformedPayload = errors.New("malformed party payload")
	ErrUnexpectedEvent  = errors.New("unexpected party event")
)

// the kind of request a session sends
type Intent int

const (
	IntentJoin Intent = iota
	IntentCreate
)

// returns the outbound event name for the intent
func (i Intent) Event() string {
	if i == IntentCreate {
		return EventCreateParty
	}

	return EventJoinParty
}

func (i Intent) String() string {
	switch i {
	case IntentJoin:
		return "join"
	case IntentCreate:
		return "create"
	default:
		return fmt.Sprintf("intent(%d)", int(i))
	}
}

// a form field that can carry a validation message
type Field int

const (
	FieldUsername Field = iota
	FieldPartyID
)

func (f Field) String() string {
	switch f {
	case FieldUsername:
		return "username"
	case FieldPartyID:
		return "party_id"
	default:
		return fmt.Sprintf("field(%d)", int(f))
	}
}

// why a field was rejected. the text shown to the user is looked up by the caller.
type Reason int

const (
	ReasonRequired Reason = iota
	ReasonPartyInUse
	ReasonPartyNotFound
)

func (r Reason) String() string {
	switch r {
	case ReasonRequired:
		return "required"
	case ReasonPartyInUse:
		return "party_in_use"
	case ReasonPartyNotFound:
		return "party_not_found"
	default:
		return fmt.Sprintf("reason(%d)", int(r))
	}
}

// a field-level failure, from local validation or from a known server error
type FieldError struct {
	Field  Field
	Reason Reason
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// a host error string the client does not know how to map to a field
type UnknownHostError struct {
	Message string
}

func (e *UnknownHostError) Error() string {
	return fmt.Sprintf("party server error: %s", e.Message)
}

// one join or create attempt
type Request struct {
	ID       string
	Intent   Intent
	Username string
	PartyID  string
}

// handed to the caller when a session completes
type Result struct {
	Username string `json:"username"`
	NumUsers int    `json:"numUsers"`
}

// contains the payload of a join or host event
type CountPayload struct {
	NumUsers *int `json:"numUsers" validate:"required,gte=0"`
}

// contains the payload of a host error event
type HostErrorPayload struct {
	Error string `json:"error" validate:"required"`
}

// decoded inbound event
type Response interface {
	event() string
}

// a join succeeded
type Joined struct {
	NumUsers int
}

// a create succeeded
type Hosted struct {
	NumUsers int
}

// a join or create failed
type HostFailed struct {
	Message string
}

func (Joined) event() string     { return EventJoin }
func (Hosted) event() string     { return EventHost }
func (HostFailed) event() string { return EventHostError }

// receives session outcomes. methods are called from the transport goroutine and
// must not block or close the subscription they were delivered through.
type Handler interface {
	// the server accepted the request
	OnComplete(result Result)

	// the server rejected the request with a known error
	OnFormError(err *FieldError)

	// the request ended without a result (timeout, unknown server error)
	OnFailure(err error)

	// an inbound event could not be decoded; the session state is unchanged
	OnProtocolError(err error)
}

// the socket surface a session needs
type Emitter interface {
	Emit(event string, payload any) error
	On(event string, fn func(json.RawMessage)) (off func())
}
