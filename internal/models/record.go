// Package models defines core data structures for corpus records, candidate
// suggestions, and the ask API.
package models

import "time"

// CorpusRecord is one unit of regulatory knowledge: an illustrative
// question, the source text it is grounded in, and the answer returned to
// the user verbatim. Records are immutable after load; a data refresh
// replaces the whole corpus.
type CorpusRecord struct {
	ID        string    `json:"id,omitempty" db:"id"`
	Question  string    `json:"pregunta" db:"pregunta"`
	Context   string    `json:"contexto" db:"contexto"`
	Answer    string    `json:"respuesta" db:"respuesta"`
	CreatedAt time.Time `json:"created_at,omitempty" db:"created_at"`
}

// Suggestion is a candidate answer surfaced during disambiguation. It is a
// projection of one or more corpus records grouped by (article, regulation);
// conversation state stores suggestions by value, never as pointers into the
// corpus.
type Suggestion struct {
	// Article is the canonical article number ("40").
	Article string `json:"articulo"`
	// Regulation is the canonical regulation id ("1"), or "" when the
	// source record names no regulation.
	Regulation string `json:"rac,omitempty"`
	// Display is the human-readable label ("Artículo 40 del RAC-1").
	Display string `json:"display"`
	// Answer is the full text returned if this suggestion is selected.
	Answer string `json:"respuesta"`
	// Similarity is set only for fuzzy matches, in [0, 1].
	Similarity float64 `json:"similitud,omitempty"`
}
