// Package match finds candidate articles for a requested article number,
// exactly or by similarity, grouped by (article, regulation).
package match

import (
	"fmt"
	"sort"

	"github.com/acadbot/ayudante/internal/corpus"
	"github.com/acadbot/ayudante/internal/models"
	"github.com/acadbot/ayudante/internal/similarity"
)

// DefaultFuzzyThreshold is the minimum similarity ratio for a fuzzy
// candidate.
const DefaultFuzzyThreshold = 0.6

// Finder locates candidate suggestions in a corpus index.
type Finder struct {
	threshold float64
}

// NewFinder creates a finder. A non-positive threshold falls back to
// DefaultFuzzyThreshold.
func NewFinder(threshold float64) *Finder {
	if threshold <= 0 {
		threshold = DefaultFuzzyThreshold
	}
	return &Finder{threshold: threshold}
}

type pairKey struct {
	article    string
	regulation string
}

// FindExact returns one suggestion per (article, regulation) pair whose
// records mention the exact article number. With a regulation filter, only
// that pair is considered; without one, every regulation the record mentions
// yields a pair. The first record seen for a pair supplies the answer.
func (f *Finder) FindExact(idx *corpus.Index, article, regulation string) []models.Suggestion {
	var out []models.Suggestion
	seen := make(map[pairKey]struct{})
	add := func(art, reg, answer string) {
		key := pairKey{art, reg}
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		out = append(out, models.Suggestion{
			Article:    art,
			Regulation: reg,
			Display:    DisplayLabel(art, reg),
			Answer:     answer,
		})
	}

	for i := range idx.Entries() {
		e := &idx.Entries()[i]
		if !e.HasArticle(article) {
			continue
		}
		if regulation != "" {
			if e.HasRegulation(regulation) {
				add(article, regulation, e.Record.Answer)
			}
			continue
		}
		if len(e.Regulations) == 0 {
			add(article, "", e.Record.Answer)
			continue
		}
		for _, reg := range e.Regulations {
			add(article, reg, e.Record.Answer)
		}
	}
	return out
}

// FindFuzzy returns suggestions whose article numbers are similar, but not
// equal, to the requested one, sorted by similarity descending. Equal
// similarity keeps first-seen corpus order so disambiguation lists are
// stable. Exact matches are excluded; they belong to FindExact.
func (f *Finder) FindFuzzy(idx *corpus.Index, article, regulation string) []models.Suggestion {
	var out []models.Suggestion
	seen := make(map[pairKey]struct{})

	for i := range idx.Entries() {
		e := &idx.Entries()[i]
		if regulation != "" && !e.HasRegulation(regulation) {
			continue
		}
		for _, art := range e.Articles {
			if art == article {
				continue
			}
			sim := similarity.Ratio(article, art)
			if sim < f.threshold {
				continue
			}
			reg := regulation
			if reg == "" && len(e.Regulations) > 0 {
				reg = e.Regulations[0]
			}
			key := pairKey{art, reg}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, models.Suggestion{
				Article:    art,
				Regulation: reg,
				Display:    DisplayLabel(art, reg),
				Answer:     e.Record.Answer,
				Similarity: sim,
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Similarity > out[j].Similarity
	})
	return out
}

// DisplayLabel renders the human-readable label for a candidate pair.
// Records that name no regulation render without the RAC suffix.
func DisplayLabel(article, regulation string) string {
	if regulation == "" {
		return fmt.Sprintf("Artículo %s", article)
	}
	return fmt.Sprintf("Artículo %s del RAC-%s", article, regulation)
}
