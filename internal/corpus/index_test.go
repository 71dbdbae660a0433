package corpus

import (
	"reflect"
	"testing"

	"github.com/acadbot/ayudante/internal/models"
)

func testRecords() []models.CorpusRecord {
	return []models.CorpusRecord{
		{
			Question: "¿Qué dice el Artículo 40 del RAC-1?",
			Context:  "RAC-1, Artículo 40",
			Answer:   "Artículo 40. La asistencia a clases es obligatoria.",
		},
		{
			Question: "¿Qué dice el Artículo 40 del RAC-2?",
			Context:  "RAC-2, Artículo 40",
			Answer:   "Artículo 40. Los trabajos de grado se rigen por este reglamento.",
		},
		{
			Question: "¿Cuál es el calendario académico?",
			Context:  "Calendario general",
			Answer:   "El calendario académico se publica cada semestre.",
		},
	}
}

func TestNewIndex(t *testing.T) {
	idx := NewIndex(testRecords())
	if idx.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", idx.Len())
	}
	if got := idx.Regulations(); !reflect.DeepEqual(got, []string{"1", "2"}) {
		t.Errorf("Regulations() = %v, want [1 2]", got)
	}
	if !idx.KnowsRegulation("1") || idx.KnowsRegulation("3") {
		t.Error("KnowsRegulation: want true for 1, false for 3")
	}

	e := idx.Entries()[0]
	if !e.HasArticle("40") {
		t.Errorf("entry 0 should mention article 40, got %v", e.Articles)
	}
	if !e.HasRegulation("1") || e.HasRegulation("2") {
		t.Errorf("entry 0 regulations = %v, want [1]", e.Regulations)
	}
	if e.NormalizedQuestion != "¿que dice el articulo 40 del rac-1?" {
		t.Errorf("NormalizedQuestion = %q", e.NormalizedQuestion)
	}

	plain := idx.Entries()[2]
	if len(plain.Articles) != 0 || len(plain.Regulations) != 0 {
		t.Errorf("entry without references: articles=%v regulations=%v", plain.Articles, plain.Regulations)
	}
}

func TestNewIndex_leadingZerosCanonical(t *testing.T) {
	idx := NewIndex([]models.CorpusRecord{
		{Answer: "Artículo 07 del RAC-01 aplica."},
	})
	e := idx.Entries()[0]
	if !e.HasArticle("7") {
		t.Errorf("articles = %v, want canonical 7", e.Articles)
	}
	if !e.HasRegulation("1") {
		t.Errorf("regulations = %v, want canonical 1", e.Regulations)
	}
}

func TestHolder(t *testing.T) {
	h := NewHolder(nil)
	if h.Current() == nil || h.Current().Len() != 0 {
		t.Fatal("nil index should become an empty index")
	}

	idx := NewIndex(testRecords())
	h.Swap(idx)
	if h.Current() != idx {
		t.Error("Swap should replace the current index")
	}

	h.Swap(nil)
	if h.Current() == nil || h.Current().Len() != 0 {
		t.Error("Swap(nil) should install an empty index")
	}
}
