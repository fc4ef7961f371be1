package store

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/underline83/trgb/internal/model"
)

// An early deployment of the ledger, before the delivery and wire
// transfer channels existed.
const legacyDailyClosures = `
CREATE TABLE daily_closures (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	date TEXT UNIQUE NOT NULL,
	weekday TEXT,
	vat_base_10 REAL DEFAULT 0,
	vat_base_22 REAL DEFAULT 0,
	declared_revenue REAL DEFAULT 0,
	cash_final REAL DEFAULT 0,
	card_channel_a REAL DEFAULT 0
);
`

func TestEnsureSchema_UpgradesLegacyDatabase(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "legacy.db")

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open raw db: %v", err)
	}
	if _, err := db.Exec(legacyDailyClosures); err != nil {
		t.Fatalf("create legacy table: %v", err)
	}
	if _, err := db.Exec(
		"INSERT INTO daily_closures (date, weekday, vat_base_10, cash_final) VALUES (?, ?, ?, ?)",
		"2022-03-04", "Friday", 80.0, 90.0); err != nil {
		t.Fatalf("seed legacy row: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("close raw db: %v", err)
	}

	st, err := New(dbPath)
	if err != nil {
		t.Fatalf("reopen through store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	cols, err := st.tableColumns("daily_closures")
	if err != nil {
		t.Fatalf("inspect table: %v", err)
	}
	for _, col := range ledgerColumns {
		if !cols[col.name] {
			t.Fatalf("column %s missing after upgrade", col.name)
		}
	}

	// The legacy row survives and reads back with zero defaults in
	// the backfilled columns.
	r, err := st.GetByDate("2022-03-04")
	if err != nil {
		t.Fatalf("read legacy row: %v", err)
	}
	if r.VatBase10 != 80 || r.CashFinal != 90 || r.WireTransfers != 0 {
		t.Fatalf("unexpected legacy row: %+v", r)
	}

	// New writes work against the upgraded table.
	rec := &model.DailyClosure{Date: "2022-03-05", WireTransfers: 40}
	rec.RecomputeDerived()
	if _, _, err := st.UpsertBatch([]*model.DailyClosure{rec}, "import"); err != nil {
		t.Fatalf("insert after upgrade: %v", err)
	}
}

func TestSettings_RoundTrip(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)

	if _, ok, err := st.GetSetting("closing_weekday"); err != nil || ok {
		t.Fatalf("missing key should report (_, false, nil), got ok=%v err=%v", ok, err)
	}

	if err := st.SetSetting("closing_weekday", "Tuesday"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := st.SetSetting("closing_weekday", "Monday"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	v, ok, err := st.GetSetting("closing_weekday")
	if err != nil || !ok || v != "Monday" {
		t.Fatalf("want (Monday, true), got (%q, %v, %v)", v, ok, err)
	}

	if err := st.SetSettingFloat("variance_alert_threshold", 75.5); err != nil {
		t.Fatalf("set float: %v", err)
	}
	f, ok, err := st.GetSettingFloat("variance_alert_threshold")
	if err != nil || !ok || f != 75.5 {
		t.Fatalf("want (75.5, true), got (%v, %v, %v)", f, ok, err)
	}

	all, err := st.AllSettings()
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(all) != 2 || all["closing_weekday"] != "Monday" {
		t.Fatalf("unexpected settings map: %v", all)
	}
}

func TestImportLog_ListNewestFirst(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)

	for _, e := range []ImportLogEntry{
		{BatchID: "b1", Filename: "2023.xlsx", Period: "2023", SheetName: "2023", InsertedRows: 10},
		{BatchID: "b2", Filename: "2024.xlsx", Period: "2024", SheetName: "2024", InsertedRows: 5, UpdatedRows: 2},
	} {
		if err := st.LogImport(e); err != nil {
			t.Fatalf("log %s: %v", e.BatchID, err)
		}
	}

	entries, err := st.ListImports(0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("want 2 entries, got %d", len(entries))
	}
	if entries[0].BatchID != "b2" || entries[1].BatchID != "b1" {
		t.Fatalf("entries should be newest first: %s, %s", entries[0].BatchID, entries[1].BatchID)
	}
	if entries[0].InsertedRows != 5 || entries[0].UpdatedRows != 2 {
		t.Fatalf("unexpected counts: %+v", entries[0])
	}
}
