package tui

import (
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"codeberg.org/partyline/client/internal/party"
)

// login screen model
type LoginScreen struct {
	session  *party.Session
	messages Messages

	inputs    [fieldCount]textinput.Model
	fieldErrs [fieldCount]string
	focus     party.Field

	spinner  spinner.Model
	awaiting bool
	intent   party.Intent
	status   string

	events       chan tea.Msg
	disconnected <-chan struct{}
	quit         chan struct{}
	closeOnce    sync.Once
	sub          *party.Subscription

	result    party.Result
	completed bool
	canceled  bool

	width int
}

// configures a LoginScreen
type ScreenOption func(*LoginScreen)

// sent when the server accepted the request
type completedMsg struct {
	result party.Result
}

// sent when the server rejected the request with a known error
type formErrorMsg struct {
	err *party.FieldError
}

// sent when the request ended without a result
type failureMsg struct {
	err error
}

// sent when an inbound event could not be decoded
type protocolErrorMsg struct {
	err error
}

// sent when the socket connection is gone
type disconnectedMsg struct{}
