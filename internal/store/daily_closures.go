package store

import (
	"database/sql"
	"fmt"

	"github.com/underline83/trgb/internal/model"
)

const ledgerFieldList = `
	weekday, vat_base_10, vat_base_22, declared_revenue, invoiced_amount,
	gross_revenue_total, cash_final, card_channel_a, card_channel_b,
	delivery_platform_payments, other_electronic_payments, wire_transfers,
	tips, total_settled, cash_variance, note, manually_closed`

// UpsertBatch writes one import's records inside a single transaction:
// insert when the date is new, overwrite otherwise. Updates preserve
// imported_by and created_at and stamp updated_at. A mid-batch failure
// rolls the whole batch back, leaving the ledger untouched.
func (s *Store) UpsertBatch(records []*model.DailyClosure, importedBy string) (inserted, updated int, err error) {
	if len(records) == 0 {
		return 0, 0, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	selectStmt, err := tx.Prepare("SELECT id FROM daily_closures WHERE date = ?")
	if err != nil {
		return 0, 0, fmt.Errorf("failed to prepare select: %w", err)
	}
	defer selectStmt.Close()

	insertStmt, err := tx.Prepare(`
		INSERT INTO daily_closures (date,` + ledgerFieldList + `, imported_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer insertStmt.Close()

	updateStmt, err := tx.Prepare(`
		UPDATE daily_closures SET
			weekday = ?, vat_base_10 = ?, vat_base_22 = ?,
			declared_revenue = ?, invoiced_amount = ?, gross_revenue_total = ?,
			cash_final = ?, card_channel_a = ?, card_channel_b = ?,
			delivery_platform_payments = ?, other_electronic_payments = ?,
			wire_transfers = ?, tips = ?, total_settled = ?, cash_variance = ?,
			note = ?, manually_closed = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE date = ?
	`)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to prepare update: %w", err)
	}
	defer updateStmt.Close()

	for _, r := range records {
		var id int64
		scanErr := selectStmt.QueryRow(r.Date).Scan(&id)
		switch {
		case scanErr == sql.ErrNoRows:
			if _, err := insertStmt.Exec(
				r.Date, r.Weekday,
				r.VatBase10, r.VatBase22, r.DeclaredRevenue, r.InvoicedAmount,
				r.GrossRevenue, r.CashFinal, r.CardChannelA, r.CardChannelB,
				r.DeliveryPayments, r.OtherEPayments, r.WireTransfers,
				r.Tips, r.TotalSettled, r.CashVariance,
				r.Note, boolToInt(r.ManuallyClosed), importedBy,
			); err != nil {
				return 0, 0, fmt.Errorf("failed to insert %s: %w", r.Date, err)
			}
			inserted++
		case scanErr != nil:
			return 0, 0, fmt.Errorf("failed to look up %s: %w", r.Date, scanErr)
		default:
			if _, err := updateStmt.Exec(
				r.Weekday,
				r.VatBase10, r.VatBase22, r.DeclaredRevenue, r.InvoicedAmount,
				r.GrossRevenue, r.CashFinal, r.CardChannelA, r.CardChannelB,
				r.DeliveryPayments, r.OtherEPayments, r.WireTransfers,
				r.Tips, r.TotalSettled, r.CashVariance,
				r.Note, boolToInt(r.ManuallyClosed),
				r.Date,
			); err != nil {
				return 0, 0, fmt.Errorf("failed to update %s: %w", r.Date, err)
			}
			updated++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return inserted, updated, nil
}

// GetByDate fetches the record for one calendar day (ISO yyyy-mm-dd).
func (s *Store) GetByDate(date string) (*model.DailyClosure, error) {
	row := s.db.QueryRow(selectClosure+" WHERE date = ?", date)
	return scanClosureRow(row)
}

// GetByYear returns every record of a year, ordered by date.
func (s *Store) GetByYear(year int) ([]*model.DailyClosure, error) {
	rows, err := s.db.Query(
		selectClosure+" WHERE substr(date, 1, 4) = ? ORDER BY date",
		fmt.Sprintf("%04d", year))
	if err != nil {
		return nil, fmt.Errorf("failed to query year %d: %w", year, err)
	}
	defer rows.Close()
	return scanClosureRows(rows)
}

// GetByYearMonth returns every record of a year-month, ordered by date.
func (s *Store) GetByYearMonth(year, month int) ([]*model.DailyClosure, error) {
	rows, err := s.db.Query(
		selectClosure+" WHERE substr(date, 1, 7) = ? ORDER BY date",
		fmt.Sprintf("%04d-%02d", year, month))
	if err != nil {
		return nil, fmt.Errorf("failed to query %04d-%02d: %w", year, month, err)
	}
	defer rows.Close()
	return scanClosureRows(rows)
}

// SetManuallyClosed toggles the operator closure flag for one day,
// independent of computed values. An empty note leaves the stored note
// unchanged.
func (s *Store) SetManuallyClosed(date string, closed bool, note string) error {
	query := "UPDATE daily_closures SET manually_closed = ?, updated_at = CURRENT_TIMESTAMP"
	args := []any{boolToInt(closed)}
	if note != "" {
		query += ", note = ?"
		args = append(args, note)
	}
	query += " WHERE date = ?"
	args = append(args, date)

	res, err := s.db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("failed to set closure flag: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check closure update: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("no record for date %s", date)
	}
	return nil
}

// DeleteByDate removes one day. Administrative escape hatch only:
// normal operation never deletes ledger rows.
func (s *Store) DeleteByDate(date string) error {
	if _, err := s.db.Exec("DELETE FROM daily_closures WHERE date = ?", date); err != nil {
		return fmt.Errorf("failed to delete %s: %w", date, err)
	}
	return nil
}

const selectClosure = `
	SELECT id, date, weekday,
		vat_base_10, vat_base_22, declared_revenue, invoiced_amount,
		gross_revenue_total, cash_final, card_channel_a, card_channel_b,
		delivery_platform_payments, other_electronic_payments, wire_transfers,
		tips, total_settled, cash_variance,
		note, manually_closed, imported_by, created_at, updated_at
	FROM daily_closures`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanClosure(sc rowScanner) (*model.DailyClosure, error) {
	r := &model.DailyClosure{}
	var (
		note, importedBy, createdAt, updatedAt sql.NullString
		manuallyClosed                         int
	)
	err := sc.Scan(
		&r.ID, &r.Date, &r.Weekday,
		&r.VatBase10, &r.VatBase22, &r.DeclaredRevenue, &r.InvoicedAmount,
		&r.GrossRevenue, &r.CashFinal, &r.CardChannelA, &r.CardChannelB,
		&r.DeliveryPayments, &r.OtherEPayments, &r.WireTransfers,
		&r.Tips, &r.TotalSettled, &r.CashVariance,
		&note, &manuallyClosed, &importedBy, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	r.Note = note.String
	r.ManuallyClosed = manuallyClosed != 0
	r.ImportedBy = importedBy.String
	r.CreatedAt = createdAt.String
	r.UpdatedAt = updatedAt.String
	return r, nil
}

func scanClosureRow(row *sql.Row) (*model.DailyClosure, error) {
	r, err := scanClosure(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("record not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan row: %w", err)
	}
	return r, nil
}

func scanClosureRows(rows *sql.Rows) ([]*model.DailyClosure, error) {
	var results []*model.DailyClosure
	for rows.Next() {
		r, err := scanClosure(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return results, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
