package tui

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/partyline/client/internal/logger"
	"codeberg.org/partyline/client/internal/party"
)

type emitted struct {
	event   string
	payload any
}

// in-memory stand-in for the socket
type fakeEmitter struct {
	mu        sync.Mutex
	emits     []emitted
	nextID    int
	listeners map[string]map[int]func(json.RawMessage)
}

func newFakeEmitter() *fakeEmitter {
	return &fakeEmitter{listeners: make(map[string]map[int]func(json.RawMessage))}
}

func (f *fakeEmitter) Emit(event string, payload any) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.emits = append(f.emits, emitted{event: event, payload: payload})
	return nil
}

func (f *fakeEmitter) On(event string, fn func(json.RawMessage)) func() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.listeners[event] == nil {
		f.listeners[event] = make(map[int]func(json.RawMessage))
	}
	f.nextID++
	id := f.nextID
	f.listeners[event][id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.listeners[event], id)
			f.mu.Unlock()
		})
	}
}

func (f *fakeEmitter) fire(event, data string) {
	f.mu.Lock()
	var fns []func(json.RawMessage)
	for _, fn := range f.listeners[event] {
		fns = append(fns, fn)
	}
	f.mu.Unlock()

	for _, fn := range fns {
		fn(json.RawMessage(data))
	}
}

func (f *fakeEmitter) sent() []emitted {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]emitted(nil), f.emits...)
}

func (f *fakeEmitter) listenerCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := 0
	for _, fns := range f.listeners {
		n += len(fns)
	}
	return n
}

func newScreen(t *testing.T, opts ...ScreenOption) (*LoginScreen, *fakeEmitter) {
	t.Helper()
	logger.Discard()

	em := newFakeEmitter()
	screen := NewLoginScreen(party.NewSession(em), opts...)
	screen.Init()
	t.Cleanup(screen.Close)

	return screen, em
}

func key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func typeText(m *LoginScreen, text string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

// pulls the next session event off the bridge and feeds it to Update
func deliverNext(t *testing.T, m *LoginScreen) tea.Cmd {
	t.Helper()

	select {
	case msg := <-m.events:
		_, cmd := m.Update(msg)
		return cmd
	case <-time.After(2 * time.Second):
		t.Fatal("no session event was delivered")
		return nil
	}
}

func TestEmptyFieldsDoNotEmit(t *testing.T) {
	screen, em := newScreen(t)

	screen.Update(key(tea.KeyEnter))

	assert.Empty(t, em.sent())
	assert.Equal(t, DefaultMessages().Required, screen.fieldErrs[party.FieldUsername])
	assert.Empty(t, screen.fieldErrs[party.FieldPartyID])
	assert.Equal(t, party.FieldUsername, screen.focus)
	assert.False(t, screen.awaiting)
}

func TestMissingPartyIDFocusesIt(t *testing.T) {
	screen, em := newScreen(t)

	typeText(screen, "alice")
	screen.Update(key(tea.KeyCtrlN))

	assert.Empty(t, em.sent())
	assert.Empty(t, screen.fieldErrs[party.FieldUsername])
	assert.Equal(t, DefaultMessages().Required, screen.fieldErrs[party.FieldPartyID])
	assert.Equal(t, party.FieldPartyID, screen.focus)
}

func TestTypingAndFocus(t *testing.T) {
	screen, _ := newScreen(t)

	typeText(screen, "alice")
	screen.Update(key(tea.KeyTab))
	typeText(screen, "p1")

	assert.Equal(t, "alice", screen.inputs[party.FieldUsername].Value())
	assert.Equal(t, "p1", screen.inputs[party.FieldPartyID].Value())
	assert.Equal(t, party.FieldPartyID, screen.focus)

	screen.Update(key(tea.KeyTab))
	assert.Equal(t, party.FieldUsername, screen.focus)

	screen.Update(key(tea.KeyShiftTab))
	assert.Equal(t, party.FieldPartyID, screen.focus)
}

func TestJoinCompletes(t *testing.T) {
	screen, em := newScreen(t, WithPrefill("alice", "p1"))

	screen.Update(key(tea.KeyEnter))

	require.Equal(t, []emitted{{event: party.EventJoinParty, payload: "p1"}}, em.sent())
	assert.True(t, screen.awaiting)

	em.fire(party.EventJoin, `{"numUsers":4}`)
	cmd := deliverNext(t, screen)

	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())

	result, ok := screen.Result()
	assert.True(t, ok)
	assert.Equal(t, party.Result{Username: "alice", NumUsers: 4}, result)
	assert.Contains(t, screen.View(), "joined as alice")

	// completion tears the listeners down
	assert.Zero(t, em.listenerCount())
}

func TestHostSendsCreate(t *testing.T) {
	screen, em := newScreen(t, WithPrefill("bob", "p9"))

	screen.Update(key(tea.KeyCtrlN))

	assert.Equal(t, []emitted{{event: party.EventCreateParty, payload: "p9"}}, em.sent())

	em.fire(party.EventHost, `{"numUsers":1}`)
	deliverNext(t, screen)

	result, ok := screen.Result()
	assert.True(t, ok)
	assert.Equal(t, party.Result{Username: "bob", NumUsers: 1}, result)
}

func TestHostErrorsShowOnPartyField(t *testing.T) {
	tests := []struct {
		serverError string
		want        string
	}{
		{party.HostErrorPartyInUse, DefaultMessages().PartyInUse},
		{party.HostErrorPartyNotFound, DefaultMessages().PartyNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.serverError, func(t *testing.T) {
			screen, em := newScreen(t, WithPrefill("alice", "p1"))

			screen.Update(key(tea.KeyCtrlN))

			data, err := json.Marshal(party.HostErrorPayload{Error: tt.serverError})
			require.NoError(t, err)
			em.fire(party.EventHostError, string(data))
			deliverNext(t, screen)

			assert.Equal(t, tt.want, screen.fieldErrs[party.FieldPartyID])
			assert.Equal(t, party.FieldPartyID, screen.focus)
			assert.False(t, screen.awaiting)

			_, ok := screen.Result()
			assert.False(t, ok)
			assert.Contains(t, screen.View(), tt.want)
		})
	}
}

func TestUnknownHostErrorShowsStatus(t *testing.T) {
	screen, em := newScreen(t, WithPrefill("alice", "p1"))

	screen.Update(key(tea.KeyEnter))
	em.fire(party.EventHostError, `{"error":"Server full"}`)
	deliverNext(t, screen)

	assert.Equal(t, "Server full", screen.status)
	assert.False(t, screen.awaiting)
	assert.Empty(t, screen.fieldErrs[party.FieldPartyID])
}

func TestMissingNumUsersKeepsWaiting(t *testing.T) {
	screen, em := newScreen(t, WithPrefill("alice", "p1"))

	screen.Update(key(tea.KeyEnter))
	em.fire(party.EventJoin, `{}`)
	deliverNext(t, screen)

	assert.True(t, screen.awaiting)
	_, ok := screen.Result()
	assert.False(t, ok)
}

func TestCompletionSurvivesMalformedBurst(t *testing.T) {
	screen, em := newScreen(t, WithPrefill("alice", "p1"))

	screen.Update(key(tea.KeyEnter))

	for range eventBufferSize {
		em.fire(party.EventJoin, `{}`)
	}
	em.fire(party.EventJoin, `{"numUsers":4}`)

	for screen.awaiting {
		deliverNext(t, screen)
	}

	result, ok := screen.Result()
	require.True(t, ok)
	assert.Equal(t, party.Result{Username: "alice", NumUsers: 4}, result)
}

func TestBridgeKeepsSlotForOutcome(t *testing.T) {
	logger.Discard()

	events := make(chan tea.Msg, eventBufferSize)
	quit := make(chan struct{})
	bridge := &eventBridge{events: events, quit: quit}

	for range eventBufferSize * 2 {
		bridge.OnProtocolError(party.ErrMalformedPayload)
	}
	require.Len(t, events, eventBufferSize-1)

	bridge.OnFailure(party.ErrRequestTimeout)
	require.Len(t, events, eventBufferSize)

	// a full buffer only gives way once the screen is closed
	close(quit)
	bridge.OnComplete(party.Result{Username: "alice", NumUsers: 1})
	assert.Len(t, events, eventBufferSize)
}

func TestFieldsLockedWhileAwaiting(t *testing.T) {
	screen, em := newScreen(t, WithPrefill("alice", "p1"))

	screen.Update(key(tea.KeyEnter))
	typeText(screen, "x")
	screen.Update(key(tea.KeyEnter))

	assert.Equal(t, "alice", screen.inputs[party.FieldUsername].Value())
	assert.Len(t, em.sent(), 1)
}

func TestCancelTearsDown(t *testing.T) {
	screen, em := newScreen(t, WithPrefill("alice", "p1"))

	screen.Update(key(tea.KeyEnter))
	_, cmd := screen.Update(key(tea.KeyEsc))

	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.True(t, screen.Canceled())
	assert.Zero(t, em.listenerCount())

	em.fire(party.EventJoin, `{"numUsers":4}`)

	select {
	case msg := <-screen.events:
		t.Fatalf("event delivered after teardown: %#v", msg)
	case <-time.After(50 * time.Millisecond):
	}

	_, ok := screen.Result()
	assert.False(t, ok)

	// closing again is harmless
	screen.Close()
}

func TestDisconnectShowsStatus(t *testing.T) {
	done := make(chan struct{})
	screen, _ := newScreen(t, WithDisconnect(done))

	close(done)
	msg := waitForDisconnect(done, screen.quit)()
	screen.Update(msg)

	assert.Equal(t, DefaultMessages().Disconnected, screen.status)
}

func TestDisconnectWhileAwaitingStopsSpinner(t *testing.T) {
	done := make(chan struct{})
	screen, _ := newScreen(t, WithPrefill("alice", "p1"), WithDisconnect(done))

	screen.Update(key(tea.KeyEnter))
	require.True(t, screen.awaiting)

	close(done)
	screen.Update(waitForDisconnect(done, screen.quit)())

	assert.False(t, screen.awaiting)
	assert.Contains(t, screen.View(), DefaultMessages().Disconnected)
}

func TestCustomMessages(t *testing.T) {
	messages := DefaultMessages()
	messages.Required = "obligatoire"

	screen, _ := newScreen(t, WithMessages(messages))
	screen.Update(key(tea.KeyEnter))

	assert.Equal(t, "obligatoire", screen.fieldErrs[party.FieldUsername])
}
