// Package corpus holds the in-memory corpus of regulatory records and its
// derived lookups. The index is read-only after construction; a data refresh
// builds a new index and swaps it in atomically.
package corpus

import (
	"sort"
	"sync"

	"github.com/acadbot/ayudante/internal/models"
	"github.com/acadbot/ayudante/internal/normalize"
	"github.com/acadbot/ayudante/internal/refs"
)

// Entry is a corpus record plus the derived forms every query needs:
// normalized text and the article/regulation references it mentions.
// Precomputing at load keeps per-query work to a linear scan.
type Entry struct {
	Record models.CorpusRecord
	// NormalizedQuestion is the normalized stored question, compared
	// against incoming queries by the relevance ranker.
	NormalizedQuestion string
	// RefText is the normalized concatenation of context and answer, the
	// text that reference extraction runs over.
	RefText string
	// Articles are the article numbers mentioned in RefText, first-seen
	// order, deduplicated.
	Articles []string
	// Regulations are the regulation ids mentioned in RefText, first-seen
	// order, deduplicated.
	Regulations []string
}

// HasArticle reports whether the entry mentions the given article number.
func (e *Entry) HasArticle(num string) bool {
	for _, a := range e.Articles {
		if a == num {
			return true
		}
	}
	return false
}

// HasRegulation reports whether the entry mentions the given regulation id.
func (e *Entry) HasRegulation(id string) bool {
	for _, r := range e.Regulations {
		if r == id {
			return true
		}
	}
	return false
}

// Index is the immutable corpus index: all entries in load order plus the
// set of known regulation ids.
type Index struct {
	entries     []Entry
	regulations []string
}

// NewIndex builds an index from records, deriving normalized text and
// references per record and collecting the sorted set of regulation ids.
func NewIndex(records []models.CorpusRecord) *Index {
	idx := &Index{entries: make([]Entry, 0, len(records))}
	seen := make(map[string]struct{})
	for _, rec := range records {
		refText := normalize.Normalize(rec.Context + " " + rec.Answer)
		e := Entry{
			Record:             rec,
			NormalizedQuestion: normalize.Normalize(rec.Question),
			RefText:            refText,
			Articles:           refs.AllArticleNumbers(refText),
			Regulations:        refs.AllRegulationIDs(refText),
		}
		idx.entries = append(idx.entries, e)
		for _, id := range e.Regulations {
			if _, dup := seen[id]; !dup {
				seen[id] = struct{}{}
				idx.regulations = append(idx.regulations, id)
			}
		}
	}
	sort.Strings(idx.regulations)
	return idx
}

// Entries returns all entries in load order. Callers must not mutate them.
func (i *Index) Entries() []Entry {
	return i.entries
}

// Regulations returns the known regulation ids, sorted.
func (i *Index) Regulations() []string {
	return i.regulations
}

// KnowsRegulation reports whether id is among the known regulation ids.
func (i *Index) KnowsRegulation(id string) bool {
	for _, r := range i.regulations {
		if r == id {
			return true
		}
	}
	return false
}

// Len returns the number of records.
func (i *Index) Len() int {
	return len(i.entries)
}

// Holder provides concurrent access to the current index and atomic
// replacement on data refresh. Readers always see a complete index.
type Holder struct {
	mu  sync.RWMutex
	idx *Index
}

// NewHolder wraps idx. A nil idx is replaced by an empty index so the
// service stays answerable (via fallback) even when the corpus failed to
// load.
func NewHolder(idx *Index) *Holder {
	if idx == nil {
		idx = NewIndex(nil)
	}
	return &Holder{idx: idx}
}

// Current returns the active index.
func (h *Holder) Current() *Index {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.idx
}

// Swap replaces the active index.
func (h *Holder) Swap(idx *Index) {
	if idx == nil {
		idx = NewIndex(nil)
	}
	h.mu.Lock()
	h.idx = idx
	h.mu.Unlock()
}
