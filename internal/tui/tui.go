package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	apperrors "codeberg.org/partyline/client/internal/errors"
	"codeberg.org/partyline/client/internal/logger"
	"codeberg.org/partyline/client/internal/party"
)

// replaces the default english strings
func WithMessages(messages Messages) ScreenOption {
	return func(m *LoginScreen) {
		m.messages = messages
	}
}

// fills the fields before the screen is shown
func WithPrefill(username, partyID string) ScreenOption {
	return func(m *LoginScreen) {
		m.inputs[party.FieldUsername].SetValue(username)
		m.inputs[party.FieldPartyID].SetValue(partyID)
	}
}

// reports a lost connection once done is closed
func WithDisconnect(done <-chan struct{}) ScreenOption {
	return func(m *LoginScreen) {
		m.disconnected = done
	}
}

// returns a login screen driving session
func NewLoginScreen(session *party.Session, opts ...ScreenOption) *LoginScreen {
	m := &LoginScreen{
		session:  session,
		messages: DefaultMessages(),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(spinnerStyle),
		),
		events: make(chan tea.Msg, eventBufferSize),
		quit:   make(chan struct{}),
	}

	m.inputs[party.FieldUsername] = newFieldInput("your name")
	m.inputs[party.FieldPartyID] = newFieldInput("party to join or host")

	for _, opt := range opts {
		opt(m)
	}

	m.focusField(party.FieldUsername)

	return m
}

// attaches to the session and starts listening for its events
func (m *LoginScreen) Init() tea.Cmd {
	if m.sub == nil {
		m.sub = m.session.Attach(&eventBridge{events: m.events, quit: m.quit})
	}

	return tea.Batch(
		textinput.Blink,
		waitForEvent(m.events, m.quit),
		waitForDisconnect(m.disconnected, m.quit),
	)
}

func (m *LoginScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.updateKeys(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case completedMsg:
		m.awaiting = false
		m.completed = true
		m.result = msg.result
		m.Close()
		return m, tea.Quit

	case formErrorMsg:
		m.awaiting = false
		cmd := m.showFieldError(msg.err)
		return m, tea.Batch(cmd, waitForEvent(m.events, m.quit))

	case failureMsg:
		m.awaiting = false
		m.status = apperrors.Describe(msg.err)
		logger.ErrorErr(msg.err, "party request failed", "intent", m.intent.String())
		return m, waitForEvent(m.events, m.quit)

	case protocolErrorMsg:
		logger.ErrorErr(msg.err, "ignoring undecodable party event")
		return m, waitForEvent(m.events, m.quit)

	case disconnectedMsg:
		m.awaiting = false
		m.status = m.messages.Disconnected
		logger.Warn("party server connection lost")
		return m, nil

	case spinner.TickMsg:
		if !m.awaiting {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, m.updateInputs(msg)
}

func (m *LoginScreen) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.canceled = true
		m.Close()
		return m, tea.Quit

	case "tab", "down":
		return m, m.cycleFocus(1)

	case "shift+tab", "up":
		return m, m.cycleFocus(-1)

	case "enter":
		return m, m.submit(party.IntentJoin)

	case "ctrl+n":
		return m, m.submit(party.IntentCreate)
	}

	// fields are locked while a request is in flight
	if m.awaiting {
		return m, nil
	}

	return m, m.updateInputs(msg)
}

// validates the form and sends the request for intent
func (m *LoginScreen) submit(intent party.Intent) tea.Cmd {
	if m.awaiting || m.completed {
		return nil
	}

	m.clearErrors()

	username := m.inputs[party.FieldUsername].Value()
	partyID := m.inputs[party.FieldPartyID].Value()

	var err error
	if intent == party.IntentCreate {
		err = m.session.AttemptHost(username, partyID)
	} else {
		err = m.session.AttemptJoin(username, partyID)
	}

	var fieldErr *party.FieldError
	switch {
	case errors.As(err, &fieldErr):
		return m.showFieldError(fieldErr)

	case err != nil:
		m.status = apperrors.Describe(err)
		logger.ErrorErr(err, "party request not sent", "intent", intent.String())
		return nil
	}

	m.awaiting = true
	m.intent = intent

	return m.spinner.Tick
}

// removes the session listeners. safe to call more than once.
func (m *LoginScreen) Close() {
	m.closeOnce.Do(func() {
		close(m.quit)
	})

	if m.sub != nil {
		m.sub.Close()
	}
}

// returns the outcome. ok is false when the screen was canceled or never completed.
func (m *LoginScreen) Result() (party.Result, bool) {
	return m.result, m.completed
}

// reports whether the user left without a result
func (m *LoginScreen) Canceled() bool {
	return m.canceled
}
