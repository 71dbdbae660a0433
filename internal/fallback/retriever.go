package fallback

import (
	"fmt"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/google/uuid"

	"github.com/acadbot/ayudante/internal/models"
)

// passage is the indexed projection of a corpus record.
type passage struct {
	Pregunta  string `json:"pregunta"`
	Contexto  string `json:"contexto"`
	Respuesta string `json:"respuesta"`
}

// Retriever is an in-memory full-text index over the corpus records. It is
// rebuilt on every corpus refresh; the corpus is small enough that a full
// rebuild is cheaper than incremental maintenance.
type Retriever struct {
	mu      sync.RWMutex
	index   bleve.Index
	records map[string]models.CorpusRecord
}

// NewRetriever creates an empty retriever.
func NewRetriever() (*Retriever, error) {
	index, err := newMemIndex()
	if err != nil {
		return nil, err
	}
	return &Retriever{index: index, records: make(map[string]models.CorpusRecord)}, nil
}

// newMemIndex builds an in-memory index with the standard analyzer
// (lowercase + tokenize, no stemming) so Spanish words match literally.
func newMemIndex() (bleve.Index, error) {
	im := bleve.NewIndexMapping()
	docMapping := bleve.NewDocumentMapping()
	textField := bleve.NewTextFieldMapping()
	textField.Analyzer = standard.Name
	docMapping.AddFieldMappingsAt("pregunta", textField)
	docMapping.AddFieldMappingsAt("contexto", textField)
	docMapping.AddFieldMappingsAt("respuesta", textField)
	im.DefaultMapping = docMapping

	index, err := bleve.NewMemOnly(im)
	if err != nil {
		return nil, fmt.Errorf("failed to create index: %w", err)
	}
	return index, nil
}

// Rebuild replaces the index contents with records.
func (r *Retriever) Rebuild(records []models.CorpusRecord) error {
	index, err := newMemIndex()
	if err != nil {
		return err
	}
	byID := make(map[string]models.CorpusRecord, len(records))
	batch := index.NewBatch()
	for _, rec := range records {
		id := rec.ID
		if id == "" {
			id = uuid.New().String()
		}
		byID[id] = rec
		if err := batch.Index(id, passage{
			Pregunta:  rec.Question,
			Contexto:  rec.Context,
			Respuesta: rec.Answer,
		}); err != nil {
			return fmt.Errorf("index record %s: %w", id, err)
		}
	}
	if err := index.Batch(batch); err != nil {
		return fmt.Errorf("apply index batch: %w", err)
	}

	r.mu.Lock()
	old := r.index
	r.index = index
	r.records = byID
	r.mu.Unlock()
	if old != nil {
		_ = old.Close()
	}
	return nil
}

// Search returns up to limit records matching query, best first.
func (r *Retriever) Search(query string, limit int) ([]models.CorpusRecord, error) {
	r.mu.RLock()
	index := r.index
	records := r.records
	r.mu.RUnlock()

	req := bleve.NewSearchRequest(bleve.NewMatchQuery(query))
	req.Size = limit
	results, err := index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	out := make([]models.CorpusRecord, 0, len(results.Hits))
	for _, hit := range results.Hits {
		if rec, ok := records[hit.ID]; ok {
			out = append(out, rec)
		}
	}
	return out, nil
}

// DocCount returns the number of indexed records.
func (r *Retriever) DocCount() (uint64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.index.DocCount()
}

// Close releases the index.
func (r *Retriever) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.index.Close()
}
