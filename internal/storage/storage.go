// Package storage defines the persistence interface for corpus records.
package storage

import (
	"context"

	"github.com/acadbot/ayudante/internal/models"
)

// Storage persists corpus records. The ingest pipeline writes through
// ReplaceAll; the corpus loader reads everything back at startup and on
// refresh.
type Storage interface {
	CreateRecord(ctx context.Context, rec *models.CorpusRecord) error
	ListRecords(ctx context.Context) ([]models.CorpusRecord, error)
	// ReplaceAll deletes every stored record and inserts recs in one
	// transaction, so a refresh never exposes a partially loaded corpus.
	ReplaceAll(ctx context.Context, recs []models.CorpusRecord) error
	CountRecords(ctx context.Context) (int64, error)

	Close() error
}
