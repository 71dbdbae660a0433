package match

import (
	"testing"

	"github.com/acadbot/ayudante/internal/corpus"
	"github.com/acadbot/ayudante/internal/models"
)

func testIndex() *corpus.Index {
	return corpus.NewIndex([]models.CorpusRecord{
		{
			Question: "¿Qué dice el Artículo 40 del RAC-1?",
			Context:  "RAC-1, Artículo 40",
			Answer:   "Artículo 40 del RAC-1: la asistencia es obligatoria.",
		},
		{
			Question: "¿Qué dice el Artículo 40 del RAC-2?",
			Context:  "RAC-2, Artículo 40",
			Answer:   "Artículo 40 del RAC-2: los trabajos de grado.",
		},
		{
			Question: "Otra mención del Artículo 40 del RAC-1",
			Context:  "RAC-1, Artículo 40, duplicado",
			Answer:   "Texto duplicado del artículo 40 del rac-1.",
		},
		{
			Question: "¿Qué dice el Artículo 41 del RAC-1?",
			Context:  "RAC-1, Artículo 41",
			Answer:   "Artículo 41 del RAC-1: evaluaciones supletorias.",
		},
		{
			Question: "Artículo sin reglamento",
			Context:  "Artículo 99 de disposiciones varias",
			Answer:   "El artículo 99 no pertenece a ningún RAC.",
		},
	})
}

func TestFindExact_dedupByPair(t *testing.T) {
	f := NewFinder(0)
	got := f.FindExact(testIndex(), "40", "")
	if len(got) != 2 {
		t.Fatalf("got %d suggestions, want 2 (one per regulation)", len(got))
	}
	if got[0].Regulation != "1" || got[1].Regulation != "2" {
		t.Errorf("regulations = %s, %s; want 1, 2", got[0].Regulation, got[1].Regulation)
	}
	// First record seen for the pair supplies the answer.
	if got[0].Answer != "Artículo 40 del RAC-1: la asistencia es obligatoria." {
		t.Errorf("answer = %q", got[0].Answer)
	}
}

func TestFindExact_regulationFilter(t *testing.T) {
	f := NewFinder(0)
	got := f.FindExact(testIndex(), "40", "2")
	if len(got) != 1 {
		t.Fatalf("got %d suggestions, want 1", len(got))
	}
	if got[0].Regulation != "2" {
		t.Errorf("regulation = %s, want 2", got[0].Regulation)
	}
	if got[0].Display != "Artículo 40 del RAC-2" {
		t.Errorf("display = %q", got[0].Display)
	}
}

func TestFindExact_noRegulationInRecord(t *testing.T) {
	f := NewFinder(0)
	got := f.FindExact(testIndex(), "99", "")
	if len(got) != 1 {
		t.Fatalf("got %d suggestions, want 1", len(got))
	}
	if got[0].Regulation != "" {
		t.Errorf("regulation = %q, want empty", got[0].Regulation)
	}
	if got[0].Display != "Artículo 99" {
		t.Errorf("display = %q, want label without RAC suffix", got[0].Display)
	}
}

func TestFindFuzzy_excludesExact(t *testing.T) {
	f := NewFinder(0)
	got := f.FindFuzzy(testIndex(), "40", "")
	for _, s := range got {
		if s.Article == "40" {
			t.Errorf("fuzzy results must not contain the exact article: %+v", s)
		}
		if s.Similarity >= 1.0 {
			t.Errorf("similarity %f should be below 1.0", s.Similarity)
		}
		if s.Similarity < DefaultFuzzyThreshold {
			t.Errorf("similarity %f below threshold", s.Similarity)
		}
	}
	// "41" vs "40" ratio is 0.5, below 0.6; "99" is disjoint.
	if len(got) != 0 {
		t.Errorf("got %v, want none above threshold", got)
	}
}

func TestFindFuzzy_threshold(t *testing.T) {
	idx := corpus.NewIndex([]models.CorpusRecord{
		{Answer: "El artículo 401 del RAC-1 trata de matrículas."},
	})
	f := NewFinder(0)
	got := f.FindFuzzy(idx, "40", "")
	// Ratio("40", "401") = 0.8 >= 0.6.
	if len(got) != 1 {
		t.Fatalf("got %d suggestions, want 1", len(got))
	}
	if got[0].Article != "401" || got[0].Regulation != "1" {
		t.Errorf("suggestion = %+v", got[0])
	}
}

func TestFindFuzzy_sortedBySimilarity(t *testing.T) {
	idx := corpus.NewIndex([]models.CorpusRecord{
		{Answer: "El artículo 1405 del RAC-1."},
		{Answer: "El artículo 140 del RAC-1."},
	})
	f := NewFinder(0)
	got := f.FindFuzzy(idx, "14", "")
	if len(got) != 2 {
		t.Fatalf("got %d suggestions, want 2", len(got))
	}
	if got[0].Article != "140" {
		t.Errorf("best match = %s, want 140", got[0].Article)
	}
	if got[0].Similarity < got[1].Similarity {
		t.Error("results should be sorted by similarity descending")
	}
}

func TestDisplayLabel(t *testing.T) {
	if got := DisplayLabel("40", "1"); got != "Artículo 40 del RAC-1" {
		t.Errorf("got %q", got)
	}
	if got := DisplayLabel("40", ""); got != "Artículo 40" {
		t.Errorf("got %q", got)
	}
}
