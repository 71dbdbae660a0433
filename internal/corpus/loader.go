package corpus

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/acadbot/ayudante/internal/models"
)

// LoadFile reads corpus records from a dataset file, dispatching on
// extension: .json for exported datasets, .xlsx for curated Q&A
// spreadsheets. Callers degrade to an empty corpus on error rather than
// failing startup.
func LoadFile(path string) ([]models.CorpusRecord, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return LoadJSON(path)
	case ".xlsx":
		return LoadXLSX(path)
	default:
		return nil, fmt.Errorf("unsupported dataset format: %s", filepath.Ext(path))
	}
}

// LoadJSON reads a JSON array of records with pregunta/contexto/respuesta
// fields, the dataset format produced by the ingest pipeline.
func LoadJSON(path string) ([]models.CorpusRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	var records []models.CorpusRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}
	return records, nil
}

// SaveJSON writes records as a JSON dataset file.
func SaveJSON(path string, records []models.CorpusRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal dataset: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create dataset directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write dataset: %w", err)
	}
	return nil
}

// LoadXLSX reads records from the first sheet of a spreadsheet. The header
// row names the columns; pregunta, contexto, and respuesta are matched
// case-insensitively and rows with an empty respuesta are skipped.
func LoadXLSX(path string) ([]models.CorpusRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("spreadsheet has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	cols := map[string]int{}
	for i, name := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	qCol, qOK := cols["pregunta"]
	cCol, cOK := cols["contexto"]
	aCol, aOK := cols["respuesta"]
	if !aOK {
		return nil, fmt.Errorf("spreadsheet is missing a respuesta column")
	}

	cell := func(row []string, idx int, ok bool) string {
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var records []models.CorpusRecord
	for _, row := range rows[1:] {
		answer := cell(row, aCol, true)
		if answer == "" {
			continue
		}
		records = append(records, models.CorpusRecord{
			Question: cell(row, qCol, qOK),
			Context:  cell(row, cCol, cOK),
			Answer:   answer,
		})
	}
	return records, nil
}
