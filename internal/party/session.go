package party

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"codeberg.org/partyline/client/internal/logger"
)

// where a session is in its request cycle
type State int

const (
	StateIdle State = iota
	StateAwaiting
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaiting:
		return "awaiting_server"
	case StateCompleted:
		return "completed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// configures a Session
type Option func(*Session)

// bounds how long a request waits for the server. zero or less disables the bound.
func WithRequestTimeout(d time.Duration) Option {
	return func(s *Session) {
		s.timeout = d
	}
}

// replaces the clock used for request timeouts
func WithClock(clock clockwork.Clock) Option {
	return func(s *Session) {
		s.clock = clock
	}
}

// drives one join/create flow over an Emitter. at most one request is in flight.
type Session struct {
	emitter Emitter
	clock   clockwork.Clock
	timeout time.Duration

	// guards state, pending, timer and sub
	mu      sync.Mutex
	state   State
	pending *Request
	timer   clockwork.Timer
	sub     *Subscription

	// serializes handler calls with Subscription.Close
	dispatchMu sync.Mutex
}

// creates a session that sends requests through emitter
func NewSession(emitter Emitter, opts ...Option) *Session {
	s := &Session{
		emitter: emitter,
		clock:   clockwork.NewRealClock(),
		timeout: DefaultRequestTimeout,
		state:   StateIdle,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// returns the current state
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

// returns a copy of the in-flight request
func (s *Session) Pending() (Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending == nil {
		return Request{}, false
	}

	return *s.pending, true
}

// sends a join intent for partyID
func (s *Session) RequestJoin(partyID string) error {
	return s.emit(IntentJoin, partyID)
}

// sends a create intent for partyID
func (s *Session) RequestCreate(partyID string) error {
	return s.emit(IntentCreate, partyID)
}

func (s *Session) emit(intent Intent, partyID string) error {
	if err := s.emitter.Emit(intent.Event(), partyID); err != nil {
		return fmt.Errorf("failed to send %s request: %w", intent, err)
	}

	return nil
}

// validates the form and asks to join the party
func (s *Session) AttemptJoin(username, partyID string) error {
	return s.attempt(IntentJoin, username, partyID)
}

// validates the form and asks to create the party
func (s *Session) AttemptHost(username, partyID string) error {
	return s.attempt(IntentCreate, username, partyID)
}

func (s *Session) attempt(intent Intent, username, partyID string) error {
	form, fe := Validate(username, partyID)
	if fe != nil {
		return fe
	}

	s.mu.Lock()

	switch s.state {
	case StateCompleted:
		s.mu.Unlock()
		return ErrCompleted
	case StateAwaiting:
		s.mu.Unlock()
		return ErrRequestInFlight
	}

	req := &Request{
		ID:       uuid.NewString(),
		Intent:   intent,
		Username: form.Username,
		PartyID:  form.PartyID,
	}

	s.pending = req
	s.state = StateAwaiting

	if s.timeout > 0 {
		id := req.ID
		s.timer = s.clock.AfterFunc(s.timeout, func() {
			s.expire(id)
		})
	}

	s.mu.Unlock()

	log := logger.With("attempt_id", req.ID, "intent", intent.String(), "party_id", req.PartyID)

	if err := s.emit(intent, req.PartyID); err != nil {
		s.mu.Lock()
		if s.pending == req {
			s.reset(StateIdle)
		}
		s.mu.Unlock()

		log.Warn("party request not sent", "error", err)
		return err
	}

	log.Debug("awaiting party server")

	return nil
}

// stops the timer and moves to next. must be called with mu held.
func (s *Session) reset(next State) {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}

	s.pending = nil
	s.state = next
}

// fires when a request has waited too long
func (s *Session) expire(id string) {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	s.mu.Lock()
	if s.state != StateAwaiting || s.pending == nil || s.pending.ID != id {
		s.mu.Unlock()
		return
	}

	s.reset(StateIdle)
	sub := s.sub
	timeout := s.timeout
	s.mu.Unlock()

	logger.Warn("party request timed out", "attempt_id", id, "timeout", timeout)

	if sub != nil && !sub.closed {
		sub.handler.OnFailure(fmt.Errorf("%w after %s", ErrRequestTimeout, timeout))
	}
}

// registers h for the inbound party events. an earlier subscription is closed.
func (s *Session) Attach(h Handler) *Subscription {
	sub := &Subscription{session: s, handler: h}

	for _, event := range []string{EventJoin, EventHost, EventHostError} {
		event := event
		sub.offs = append(sub.offs, s.emitter.On(event, func(data json.RawMessage) {
			s.receive(sub, event, data)
		}))
	}

	s.mu.Lock()
	prev := s.sub
	s.sub = sub
	s.mu.Unlock()

	if prev != nil {
		prev.Close()
	}

	return sub
}

// handles one inbound event for sub
func (s *Session) receive(sub *Subscription, event string, data json.RawMessage) {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	if sub.closed {
		return
	}

	resp, err := DecodeEvent(event, data)
	if err != nil {
		logger.Warn("dropping party event", "event", event, "error", err)
		sub.handler.OnProtocolError(err)
		return
	}

	if deliver := s.resolve(resp); deliver != nil {
		deliver(sub.handler)
	}
}

// applies a response to the state machine and returns the handler call it produces
func (s *Session) resolve(resp Response) func(Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateAwaiting || s.pending == nil {
		logger.Debug("no party request in flight, ignoring event",
			"event", resp.event(),
			"state", s.state.String(),
		)
		return nil
	}

	req := s.pending

	switch r := resp.(type) {
	case Joined:
		return s.complete(req, r.NumUsers, resp.event())

	case Hosted:
		return s.complete(req, r.NumUsers, resp.event())

	case HostFailed:
		s.reset(StateIdle)

		if fe, ok := MapHostError(r.Message); ok {
			logger.Info("party request rejected",
				"attempt_id", req.ID,
				"field", fe.Field.String(),
				"reason", fe.Reason.String(),
			)
			return func(h Handler) { h.OnFormError(fe) }
		}

		logger.Warn("unrecognized party server error",
			"attempt_id", req.ID,
			"message", r.Message,
		)
		err := &UnknownHostError{Message: r.Message}
		return func(h Handler) { h.OnFailure(err) }
	}

	return nil
}

// must be called with mu held
func (s *Session) complete(req *Request, numUsers int, event string) func(Handler) {
	s.reset(StateCompleted)

	result := Result{Username: req.Username, NumUsers: numUsers}

	logger.Info("party request completed",
		"attempt_id", req.ID,
		"intent", req.Intent.String(),
		"event", event,
		"num_users", numUsers,
	)

	return func(h Handler) { h.OnComplete(result) }
}

// a scoped registration of a Handler on a Session
type Subscription struct {
	session *Session
	handler Handler
	offs    []func()

	// guarded by session.dispatchMu
	closed bool
}

// removes the listeners. once Close returns the handler is not called again.
// safe to call more than once.
func (sub *Subscription) Close() {
	s := sub.session

	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	if sub.closed {
		return
	}

	sub.closed = true

	for _, off := range sub.offs {
		off()
	}

	s.mu.Lock()
	if s.sub == sub {
		s.sub = nil
	}
	s.mu.Unlock()
}
