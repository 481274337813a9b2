package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"codeberg.org/partyline/client/internal/party"
)

const fieldCount = 2

const fieldCharLimit = 64

// returns a text input for one login field
func newFieldInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = fieldCharLimit
	ti.Width = 40
	ti.Prompt = "> "
	ti.PromptStyle = promptStyle
	ti.TextStyle = inputStyle

	return ti
}

// moves focus to field, blurring the others
func (m *LoginScreen) focusField(field party.Field) tea.Cmd {
	m.focus = field

	var cmd tea.Cmd
	for i := range m.inputs {
		if party.Field(i) == field {
			cmd = m.inputs[i].Focus()
			continue
		}
		m.inputs[i].Blur()
	}

	return cmd
}

// moves focus by delta, wrapping around
func (m *LoginScreen) cycleFocus(delta int) tea.Cmd {
	next := (int(m.focus) + delta + fieldCount) % fieldCount
	return m.focusField(party.Field(next))
}

// shows err under its field and focuses that field
func (m *LoginScreen) showFieldError(err *party.FieldError) tea.Cmd {
	m.fieldErrs[err.Field] = m.messages.Reason(err.Reason)
	return m.focusField(err.Field)
}

func (m *LoginScreen) clearErrors() {
	for i := range m.fieldErrs {
		m.fieldErrs[i] = ""
	}
	m.status = ""
}

// forwards msg to the focused input
func (m *LoginScreen) updateInputs(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)

	return cmd
}
