package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"codeberg.org/partyline/client/internal/logger"
	"codeberg.org/partyline/client/internal/party"
)

// size of the buffer between the socket goroutine and the ui loop
const eventBufferSize = 8

// turns session callbacks into tea messages. it never touches screen state.
type eventBridge struct {
	events chan<- tea.Msg
	quit   <-chan struct{}
}

func (b *eventBridge) OnComplete(result party.Result) {
	b.deliver(completedMsg{result: result})
}

func (b *eventBridge) OnFormError(err *party.FieldError) {
	b.deliver(formErrorMsg{err: err})
}

func (b *eventBridge) OnFailure(err error) {
	b.deliver(failureMsg{err: err})
}

// protocol errors never take the last slot, which stays free for the outcome
func (b *eventBridge) OnProtocolError(err error) {
	if len(b.events) >= cap(b.events)-1 {
		logger.Warn("login screen event buffer full, dropping protocol error", "error", err)
		return
	}

	select {
	case b.events <- protocolErrorMsg{err: err}:
	default:
		logger.Warn("login screen event buffer full, dropping protocol error", "error", err)
	}
}

// terminal outcomes are never dropped. gives up only once the screen is closed.
func (b *eventBridge) deliver(msg tea.Msg) {
	select {
	case b.events <- msg:
	case <-b.quit:
	}
}

// returns a tea.Cmd that delivers the next session event to Update
func waitForEvent(events <-chan tea.Msg, quit <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-events:
			return msg
		case <-quit:
			return nil
		}
	}
}

// returns a tea.Cmd that fires once the connection is gone
func waitForDisconnect(done <-chan struct{}, quit <-chan struct{}) tea.Cmd {
	if done == nil {
		return nil
	}

	return func() tea.Msg {
		select {
		case <-done:
			return disconnectedMsg{}
		case <-quit:
			return nil
		}
	}
}
