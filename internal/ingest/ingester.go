package ingest

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/acadbot/ayudante/internal/models"
	"github.com/acadbot/ayudante/internal/storage"
)

// Ingester extracts, splits, and stores regulation documents.
type Ingester struct {
	extractor *Extractor
	storage   storage.Storage
	logger    *zap.Logger
}

// NewIngester creates an ingester writing to store.
func NewIngester(store storage.Storage, logger *zap.Logger) *Ingester {
	return &Ingester{
		extractor: NewExtractor(),
		storage:   store,
		logger:    logger,
	}
}

// IngestFile reads the regulation document at path, splits it into articles,
// and stores one record per article tagged with the given regulation id.
// Returns the number of records stored.
func (ing *Ingester) IngestFile(ctx context.Context, path, regulation string) (int, error) {
	text, err := ing.extractor.Extract(path)
	if err != nil {
		return 0, fmt.Errorf("extract %s: %w", path, err)
	}

	articles := SplitArticles(text)
	if len(articles) == 0 {
		return 0, fmt.Errorf("no articles found in %s", path)
	}

	for _, art := range articles {
		rec := BuildRecord(art, regulation)
		if err := ing.storage.CreateRecord(ctx, &rec); err != nil {
			return 0, fmt.Errorf("store article %s: %w", art.Number, err)
		}
	}
	ing.logger.Info("document ingested",
		zap.String("path", path),
		zap.String("regulation", regulation),
		zap.Int("articles", len(articles)))
	return len(articles), nil
}

// BuildRecord turns an article into a corpus record. With no regulation id
// the question and context omit the RAC mention.
func BuildRecord(art Article, regulation string) models.CorpusRecord {
	if regulation == "" {
		return models.CorpusRecord{
			Question: fmt.Sprintf("¿Qué dice el Artículo %s?", art.Number),
			Context:  fmt.Sprintf("Artículo %s", art.Number),
			Answer:   art.Text,
		}
	}
	return models.CorpusRecord{
		Question: fmt.Sprintf("¿Qué dice el Artículo %s del RAC-%s?", art.Number, regulation),
		Context:  fmt.Sprintf("RAC-%s, Artículo %s", regulation, art.Number),
		Answer:   art.Text,
	}
}
