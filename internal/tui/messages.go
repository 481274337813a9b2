package tui

import "codeberg.org/partyline/client/internal/party"

// user-facing strings for the login screen. callers may swap in translations.
type Messages struct {
	Subtitle      string
	UsernameLabel string
	PartyIDLabel  string
	Required      string
	PartyInUse    string
	PartyNotFound string
	Awaiting      string
	Disconnected  string
	Help          string
}

// returns the english strings
func DefaultMessages() Messages {
	return Messages{
		Subtitle:      "join a party or host a new one",
		UsernameLabel: "display name",
		PartyIDLabel:  "party id",
		Required:      "this field is required",
		PartyInUse:    "that party is already in use",
		PartyNotFound: "that party does not exist",
		Awaiting:      "waiting for the party server...",
		Disconnected:  "connection to the party server lost",
		Help:          "[Tab: Next field] [Enter: Join] [Ctrl+N: Host] [Esc: Cancel]",
	}
}

// returns the text for a field error reason
func (m Messages) Reason(r party.Reason) string {
	switch r {
	case party.ReasonPartyInUse:
		return m.PartyInUse
	case party.ReasonPartyNotFound:
		return m.PartyNotFound
	default:
		return m.Required
	}
}
