package store

import "fmt"

const createDailyClosures = `
CREATE TABLE IF NOT EXISTS daily_closures (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	date TEXT UNIQUE NOT NULL,
	weekday TEXT,

	vat_base_10 REAL DEFAULT 0,
	vat_base_22 REAL DEFAULT 0,
	declared_revenue REAL DEFAULT 0,
	invoiced_amount REAL DEFAULT 0,
	gross_revenue_total REAL DEFAULT 0,

	cash_final REAL DEFAULT 0,
	card_channel_a REAL DEFAULT 0,
	card_channel_b REAL DEFAULT 0,
	delivery_platform_payments REAL DEFAULT 0,
	other_electronic_payments REAL DEFAULT 0,
	wire_transfers REAL DEFAULT 0,

	tips REAL DEFAULT 0,

	total_settled REAL DEFAULT 0,
	cash_variance REAL DEFAULT 0,

	note TEXT,
	manually_closed INTEGER DEFAULT 0,

	imported_by TEXT,
	created_at TEXT DEFAULT CURRENT_TIMESTAMP,
	updated_at TEXT
);
`

const createSettings = `
CREATE TABLE IF NOT EXISTS settings (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at TEXT
);
`

const createImportLogs = `
CREATE TABLE IF NOT EXISTS import_logs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	batch_id TEXT NOT NULL,
	filename TEXT,
	period TEXT,
	sheet_name TEXT,
	inserted_rows INTEGER DEFAULT 0,
	updated_rows INTEGER DEFAULT 0,
	created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
`

// ledgerColumns lists every canonical column with its ADD COLUMN type,
// in schema order. ensureSchema walks this list to upgrade databases
// created by older deployments that predate some columns.
var ledgerColumns = []struct {
	name string
	typ  string
}{
	{"weekday", "TEXT"},
	{"vat_base_10", "REAL DEFAULT 0"},
	{"vat_base_22", "REAL DEFAULT 0"},
	{"declared_revenue", "REAL DEFAULT 0"},
	{"invoiced_amount", "REAL DEFAULT 0"},
	{"gross_revenue_total", "REAL DEFAULT 0"},
	{"cash_final", "REAL DEFAULT 0"},
	{"card_channel_a", "REAL DEFAULT 0"},
	{"card_channel_b", "REAL DEFAULT 0"},
	{"delivery_platform_payments", "REAL DEFAULT 0"},
	{"other_electronic_payments", "REAL DEFAULT 0"},
	{"wire_transfers", "REAL DEFAULT 0"},
	{"tips", "REAL DEFAULT 0"},
	{"total_settled", "REAL DEFAULT 0"},
	{"cash_variance", "REAL DEFAULT 0"},
	{"note", "TEXT"},
	{"manually_closed", "INTEGER DEFAULT 0"},
	{"imported_by", "TEXT"},
	{"created_at", "TEXT"},
	{"updated_at", "TEXT"},
}

// ensureSchema creates the tables and backfills any canonical columns
// missing from older databases.
func (s *Store) ensureSchema() error {
	for _, stmt := range []string{createDailyClosures, createSettings, createImportLogs} {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to execute schema: %w", err)
		}
	}
	return s.addMissingColumns()
}

func (s *Store) addMissingColumns() error {
	existing, err := s.tableColumns("daily_closures")
	if err != nil {
		return err
	}

	for _, col := range ledgerColumns {
		if existing[col.name] {
			continue
		}
		stmt := fmt.Sprintf("ALTER TABLE daily_closures ADD COLUMN %s %s", col.name, col.typ)
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to add column %s: %w", col.name, err)
		}
	}
	return nil
}

func (s *Store) tableColumns(table string) (map[string]bool, error) {
	rows, err := s.db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return nil, fmt.Errorf("failed to inspect table %s: %w", table, err)
	}
	defer rows.Close()

	cols := make(map[string]bool)
	for rows.Next() {
		var (
			cid        int
			name, typ  string
			notnull    int
			dfltValue  any
			primaryKey int
		)
		if err := rows.Scan(&cid, &name, &typ, &notnull, &dfltValue, &primaryKey); err != nil {
			return nil, fmt.Errorf("failed to scan table info: %w", err)
		}
		cols[name] = true
	}
	return cols, rows.Err()
}
