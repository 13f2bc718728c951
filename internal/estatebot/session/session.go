// Package session holds the per-user conversational state tracked by the
// dialogue engine. State is ephemeral: it lives for the process lifetime
// (or the redis TTL) and is lost on restart by design.
package session

import "strings"

// Mode is the current sub-dialogue state of a session. Exactly one mode is
// active at a time.
type Mode string

const (
	ModeIdle               Mode = "idle"
	ModeExpectingName      Mode = "expecting_name"
	ModeConfirmingName     Mode = "confirming_name"
	ModeAwaitingComparison Mode = "awaiting_comparison"
	ModeCollectingContacts Mode = "collecting_contacts"
)

// Role tags a history turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one stored history entry.
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// HistoryLimit caps the rolling history, oldest entries evicted first.
const HistoryLimit = 10

// Session is the mutable per-user record. Owned exclusively by one
// conversation; the engine serializes access per user identifier.
type Session struct {
	UserID         string `json:"user_id"`
	Mode           Mode   `json:"mode"`
	UserName       string `json:"user_name,omitempty"`
	TempName       string `json:"temp_name,omitempty"`
	ContactSaved   bool   `json:"contact_saved"`
	History        []Turn `json:"history,omitempty"`
	CatalogContext string `json:"catalog_context,omitempty"`
}

// New returns a fresh idle session for a user.
func New(userID string) *Session {
	return &Session{UserID: userID, Mode: ModeIdle}
}

// AppendTurn appends a history entry and evicts the oldest entries beyond
// the history limit.
func (s *Session) AppendTurn(role Role, text string) {
	s.History = append(s.History, Turn{Role: role, Text: text})
	s.truncateHistory()
}

func (s *Session) truncateHistory() {
	if len(s.History) > HistoryLimit {
		s.History = s.History[len(s.History)-HistoryLimit:]
	}
}

// PurgeContactTurns drops history entries that contain any of the given
// contact-soliciting keywords, then re-applies the history cap. Used after
// a lead is saved so stale solicitations stop echoing into prompts.
func (s *Session) PurgeContactTurns(keywords []string) {
	kept := s.History[:0]
	for _, turn := range s.History {
		lower := strings.ToLower(turn.Text)
		solicits := false
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				solicits = true
				break
			}
		}
		if !solicits {
			kept = append(kept, turn)
		}
	}
	s.History = kept
	s.truncateHistory()
}

// LastTexts returns the texts of the most recent n history turns,
// oldest first.
func (s *Session) LastTexts(n int) []string {
	start := len(s.History) - n
	if start < 0 {
		start = 0
	}
	out := make([]string, 0, len(s.History)-start)
	for _, turn := range s.History[start:] {
		out = append(out, turn.Text)
	}
	return out
}

// Clone returns a deep copy. The engine mutates a clone and only persists
// it once the turn completed, so a mid-turn fault leaves the stored state
// untouched.
func (s *Session) Clone() *Session {
	cp := *s
	cp.History = append([]Turn(nil), s.History...)
	return &cp
}

// ClearSubDialogues returns the session to idle, dropping the comparison
// and contact-collection sub-dialogues. Name and the contact-saved flag
// survive; use Store.Reset for a full wipe.
func (s *Session) ClearSubDialogues() {
	s.Mode = ModeIdle
	s.TempName = ""
}
