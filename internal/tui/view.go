package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"codeberg.org/partyline/client/internal/party"
)

func (m *LoginScreen) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(logo))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render(m.messages.Subtitle))
	b.WriteString("\n\n")

	if m.completed {
		b.WriteString(successStyle.Render(fmt.Sprintf("joined as %s (%d in party)",
			m.result.Username, m.result.NumUsers)))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.fieldView(party.FieldUsername, m.messages.UsernameLabel))
	b.WriteString(m.fieldView(party.FieldPartyID, m.messages.PartyIDLabel))
	b.WriteString("\n")

	switch {
	case m.awaiting:
		b.WriteString(m.spinner.View() + " " + infoStyle.Render(m.messages.Awaiting))
	case m.status != "":
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString("\n")

	b.WriteString(helpStyle.Render(m.messages.Help))

	return b.String()
}

// renders one labeled input with its error line
func (m *LoginScreen) fieldView(field party.Field, label string) string {
	labelRender, box := labelStyle, inputBoxStyle
	if field == m.focus {
		labelRender, box = labelFocusedStyle, inputBoxFocusedStyle
	}

	if m.width > 0 {
		box = box.Width(max(20, min(m.width-4, 60)))
	}

	out := lipgloss.JoinVertical(lipgloss.Left,
		labelRender.Render(label),
		box.Render(m.inputs[field].View()),
	)

	if msg := m.fieldErrs[field]; msg != "" {
		out = lipgloss.JoinVertical(lipgloss.Left, out, fieldErrorStyle.Render(msg))
	}

	return out + "\n"
}
