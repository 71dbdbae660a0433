// Package storage provides the SQLite implementation of Storage.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/acadbot/ayudante/internal/models"
)

// SQLiteStorage implements Storage using SQLite.
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage opens or creates a SQLite database at dbPath and
// initializes the schema. Parent directories are created if needed.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS records (
		id TEXT PRIMARY KEY,
		pregunta TEXT NOT NULL DEFAULT '',
		contexto TEXT NOT NULL DEFAULT '',
		respuesta TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_records_created_at ON records(created_at);
	`
	_, err := db.Exec(schema)
	return err
}

// CreateRecord inserts a record, assigning an id when missing.
func (s *SQLiteStorage) CreateRecord(ctx context.Context, rec *models.CorpusRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO records (id, pregunta, contexto, respuesta, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		rec.ID, rec.Question, rec.Context, rec.Answer, rec.CreatedAt,
	)
	return err
}

// ListRecords returns every record in insertion order.
func (s *SQLiteStorage) ListRecords(ctx context.Context) ([]models.CorpusRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, pregunta, contexto, respuesta, created_at
		 FROM records ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.CorpusRecord
	for rows.Next() {
		var rec models.CorpusRecord
		if err := rows.Scan(&rec.ID, &rec.Question, &rec.Context, &rec.Answer, &rec.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// ReplaceAll clears the table and inserts recs in one transaction.
func (s *SQLiteStorage) ReplaceAll(ctx context.Context, recs []models.CorpusRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return fmt.Errorf("clear records: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO records (id, pregunta, contexto, respuesta, created_at)
		 VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now()
	for i := range recs {
		rec := &recs[i]
		if rec.ID == "" {
			rec.ID = uuid.New().String()
		}
		if rec.CreatedAt.IsZero() {
			rec.CreatedAt = now
		}
		if _, err := stmt.ExecContext(ctx, rec.ID, rec.Question, rec.Context, rec.Answer, rec.CreatedAt); err != nil {
			return fmt.Errorf("insert record %s: %w", rec.ID, err)
		}
	}
	return tx.Commit()
}

// CountRecords returns the number of stored records.
func (s *SQLiteStorage) CountRecords(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM records`).Scan(&n)
	return n, err
}

// Close closes the database.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
