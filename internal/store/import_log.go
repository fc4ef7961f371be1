package store

import "fmt"

// ImportLogEntry records one completed import run.
type ImportLogEntry struct {
	ID           int64  `json:"id"`
	BatchID      string `json:"batchId"`
	Filename     string `json:"filename"`
	Period       string `json:"period"`
	SheetName    string `json:"sheetName"`
	InsertedRows int    `json:"insertedRows"`
	UpdatedRows  int    `json:"updatedRows"`
	CreatedAt    string `json:"createdAt"`
}

// LogImport appends an entry to the import log.
func (s *Store) LogImport(e ImportLogEntry) error {
	_, err := s.db.Exec(`
		INSERT INTO import_logs (batch_id, filename, period, sheet_name, inserted_rows, updated_rows)
		VALUES (?, ?, ?, ?, ?, ?)
	`, e.BatchID, e.Filename, e.Period, e.SheetName, e.InsertedRows, e.UpdatedRows)
	if err != nil {
		return fmt.Errorf("failed to log import: %w", err)
	}
	return nil
}

// ListImports returns the most recent import runs, newest first.
func (s *Store) ListImports(limit int) ([]ImportLogEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`
		SELECT id, batch_id, filename, period, sheet_name, inserted_rows, updated_rows, created_at
		FROM import_logs
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list imports: %w", err)
	}
	defer rows.Close()

	var out []ImportLogEntry
	for rows.Next() {
		var e ImportLogEntry
		if err := rows.Scan(&e.ID, &e.BatchID, &e.Filename, &e.Period, &e.SheetName,
			&e.InsertedRows, &e.UpdatedRows, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan import log: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
