// Package ranking scores corpus records against free-text queries that
// carry no explicit article reference.
package ranking

import (
	"sort"
	"strings"

	"github.com/acadbot/ayudante/internal/corpus"
	"github.com/acadbot/ayudante/internal/models"
	"github.com/acadbot/ayudante/internal/normalize"
	"github.com/acadbot/ayudante/internal/refs"
	"github.com/acadbot/ayudante/internal/similarity"
)

// articleKeywords are the literal forms counted by the keyword term.
// Membership is substring-based, so "articulo" also counts "art".
var articleKeywords = []string{"articulo", "art", "art."}

// ScoreBreakdown holds the individual scoring terms for a ranked record.
type ScoreBreakdown struct {
	// ExactText is the similarity ratio between the normalized query and
	// the record's stored question.
	ExactText float64
	// KeywordCount counts article keywords present in the query. Unlike
	// the other terms it is not clamped to [0, 1]; the cutoff below was
	// tuned with this behavior, so changing it needs product sign-off.
	KeywordCount int
	// RegulationContext is 1 when the query names a regulation the record
	// mentions, else 0.
	RegulationContext float64
	// NormalizedText is the similarity ratio between the
	// punctuation-stripped query and the record's stored question.
	NormalizedText float64
}

// RankedResult pairs a corpus record with its relevance score.
type RankedResult struct {
	Record    *models.CorpusRecord
	Score     float64
	Breakdown ScoreBreakdown
}

// Ranker scores every corpus record against a query with a weighted sum of
// string similarity and regulation-context terms.
type Ranker struct {
	config *RankerConfig
}

// NewRanker creates a ranker. A nil config uses the tuned defaults.
func NewRanker(config *RankerConfig) *Ranker {
	if config == nil {
		config = DefaultRankerConfig()
	}
	config.ApplyDefaults()
	return &Ranker{config: config}
}

// Rank scores all records in idx against query and returns at most
// MaxResults candidates with score strictly above MinScore, ordered by
// regulation-context match first and score second, both descending.
func (r *Ranker) Rank(idx *corpus.Index, query string) []*RankedResult {
	cleanQuery := normalize.Normalize(query)
	strippedQuery := normalize.StripPunctuation(cleanQuery)
	queryRegulation := refs.RegulationID(cleanQuery)

	keywordCount := 0
	for _, kw := range articleKeywords {
		if strings.Contains(cleanQuery, kw) {
			keywordCount++
		}
	}

	var results []*RankedResult
	entries := idx.Entries()
	for i := range entries {
		e := &entries[i]
		breakdown := ScoreBreakdown{
			ExactText:      similarity.Ratio(cleanQuery, e.NormalizedQuestion),
			KeywordCount:   keywordCount,
			NormalizedText: similarity.Ratio(strippedQuery, e.NormalizedQuestion),
		}
		if queryRegulation != "" && e.HasRegulation(queryRegulation) {
			breakdown.RegulationContext = 1
		}

		score := breakdown.ExactText*r.config.ExactTextWeight +
			float64(breakdown.KeywordCount)*r.config.KeywordWeight +
			breakdown.RegulationContext*r.config.RegulationWeight +
			breakdown.NormalizedText*r.config.NormalizedTextWeight

		if score > r.config.MinScore {
			results = append(results, &RankedResult{
				Record:    &e.Record,
				Score:     score,
				Breakdown: breakdown,
			})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Breakdown.RegulationContext != results[j].Breakdown.RegulationContext {
			return results[i].Breakdown.RegulationContext > results[j].Breakdown.RegulationContext
		}
		return results[i].Score > results[j].Score
	})

	if len(results) > r.config.MaxResults {
		results = results[:r.config.MaxResults]
	}
	return results
}
