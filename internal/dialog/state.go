// Package dialog implements the conversational layer: per-session memory,
// follow-up resolution, small talk, and the decision flow that routes a
// question to exact lookup, fuzzy suggestions, relevance ranking, or the
// fallback responder.
package dialog

import "github.com/acadbot/ayudante/internal/models"

// State is the conversational memory for one session. Suggestions are stored
// by value so a corpus refresh never invalidates pending options mid-dialog.
type State struct {
	// LastQuery is the normalized text of the last substantive question.
	LastQuery string
	// LastArticle is the canonical article number of the last lookup, "" when
	// no lookup happened yet.
	LastArticle string
	// LastRegulation is the canonical regulation id in effect, "" when the
	// conversation has not pinned one.
	LastRegulation string
	// Pending holds the suggestions offered in the last turn, awaiting a
	// selection. Nil when no disambiguation is open.
	Pending []models.Suggestion
}

// Reset clears all memory, returning the session to a fresh start.
func (s *State) Reset() {
	*s = State{}
}
