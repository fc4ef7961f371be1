package importer

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/underline83/trgb/internal/parser"
	"github.com/underline83/trgb/internal/store"
)

// Coordinator runs the full ingestion pipeline for one workbook:
// resolve sheet → normalize rows → upsert batch. One synchronous run
// per request; the only operation that blocks on file I/O and a batch
// of writes.
type Coordinator struct {
	store *store.Store
}

// NewCoordinator creates an import coordinator.
func NewCoordinator(st *store.Store) *Coordinator {
	return &Coordinator{store: st}
}

// ImportOptions selects what to import.
type ImportOptions struct {
	FilePath string
	// Period is "archive" or a 4-digit year.
	Period string
	// ImportedBy is the origin tag stamped on newly inserted rows.
	// Defaults to "import".
	ImportedBy string
}

// ImportResult reports one completed import run.
type ImportResult struct {
	BatchID   string        `json:"batchId"`
	Filename  string        `json:"filename"`
	Period    string        `json:"period"`
	SheetName string        `json:"sheetName"`
	Rows      int           `json:"rows"`
	Inserted  int           `json:"inserted"`
	Updated   int           `json:"updated"`
	Duration  time.Duration `json:"duration"`
}

// Import ingests one workbook for one period. Row-level anomalies are
// absorbed by the parsers; sheet-level and storage-level failures are
// returned to the caller with the ledger left unchanged.
func (c *Coordinator) Import(opts ImportOptions) (*ImportResult, error) {
	start := time.Now()

	if opts.ImportedBy == "" {
		opts.ImportedBy = "import"
	}

	file, err := excelize.OpenFile(opts.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer file.Close()

	sheet, err := parser.NewSheetResolver(file).Resolve(opts.Period)
	if err != nil {
		return nil, err
	}

	records, _, err := parser.NewClosureParser(sheet, opts.Period).Parse()
	if err != nil {
		return nil, err
	}

	inserted, updated, err := c.store.UpsertBatch(records, opts.ImportedBy)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{
		BatchID:   uuid.NewString(),
		Filename:  filepath.Base(opts.FilePath),
		Period:    opts.Period,
		SheetName: sheet.SheetName,
		Rows:      len(records),
		Inserted:  inserted,
		Updated:   updated,
		Duration:  time.Since(start),
	}

	// The ledger batch is already committed at this point; the log is
	// informational only.
	_ = c.store.LogImport(store.ImportLogEntry{
		BatchID:      result.BatchID,
		Filename:     result.Filename,
		Period:       result.Period,
		SheetName:    result.SheetName,
		InsertedRows: inserted,
		UpdatedRows:  updated,
	})

	return result, nil
}
