package parser

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/underline83/trgb/internal/model"
)

// ClosureParser normalizes the raw rows of a resolved sheet into
// canonical daily closure records.
type ClosureParser struct {
	sheet  *ResolvedSheet
	period string
}

// NewClosureParser creates a normalizer for one resolved sheet.
func NewClosureParser(sheet *ResolvedSheet, period string) *ClosureParser {
	return &ClosureParser{sheet: sheet, period: period}
}

// Parse turns every usable row into a DailyClosure, sorted by date.
//
// Rows without a parsable date are totals/footer/blank rows and are
// skipped. When a concrete year was requested, rows from other years
// are skipped too (archive sheets span many years). Zero usable rows is
// an error: it almost always means a resolver or mapping mismatch, not
// genuinely empty data.
func (p *ClosureParser) Parse() ([]*model.DailyClosure, *ParseStats, error) {
	start := time.Now()

	targetYear := 0
	if !strings.EqualFold(p.period, PeriodArchive) {
		targetYear, _ = strconv.Atoi(p.period)
	}

	var records []*model.DailyClosure
	skipped := 0

	for _, row := range p.sheet.Rows {
		rec := p.parseRow(row, targetYear)
		if rec == nil {
			skipped++
			continue
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, nil, fmt.Errorf("no usable rows found in sheet %q (period=%s)",
			p.sheet.SheetName, p.period)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Date < records[j].Date
	})

	stats := &ParseStats{
		SheetName:   p.sheet.SheetName,
		TotalRows:   len(p.sheet.Rows),
		ParsedRows:  len(records),
		SkippedRows: skipped,
		Duration:    time.Since(start),
	}
	return records, stats, nil
}

// parseRow normalizes a single raw row, or returns nil to skip it.
func (p *ClosureParser) parseRow(row []string, targetYear int) *model.DailyClosure {
	date, ok := p.parseDateCell(row)
	if !ok {
		return nil
	}
	if targetYear != 0 && date.Year() != targetYear {
		return nil
	}

	// Sum every mapped numeric column per field: alternate digital
	// payment channels were split across differently named columns in
	// different years and merge back into one bucket here.
	amounts := make(map[Field]float64)
	var weekday, note string

	for idx, mapping := range p.sheet.Mappings {
		cell := cellAt(row, idx)
		switch mapping.Field {
		case FieldDate:
			// already handled
		case FieldWeekday:
			if weekday == "" {
				weekday = strings.TrimSpace(cell)
			}
		case FieldNote:
			if note == "" {
				note = strings.TrimSpace(cell)
			}
		default:
			amounts[mapping.Field] += ParseAmount(cell)
		}
	}

	rec := &model.DailyClosure{
		Date:             date.Format("2006-01-02"),
		VatBase10:        amounts[FieldVatBase10],
		VatBase22:        amounts[FieldVatBase22],
		InvoicedAmount:   amounts[FieldInvoicedAmount],
		CashFinal:        amounts[FieldCashFinal],
		CardChannelA:     amounts[FieldCardChannelA],
		CardChannelB:     amounts[FieldCardChannelB],
		DeliveryPayments: amounts[FieldDelivery],
		OtherEPayments:   amounts[FieldOtherEPayments],
		WireTransfers:    amounts[FieldWireTransfers],
		Tips:             amounts[FieldTips],
		Note:             note,
	}

	// Fallback derivations for sources that omit total columns.
	rec.DeclaredRevenue = amounts[FieldDeclaredRevenue]
	if rec.DeclaredRevenue == 0 {
		rec.DeclaredRevenue = rec.VatBase10 + rec.VatBase22
	}
	rec.GrossRevenue = amounts[FieldGrossRevenue]
	if rec.GrossRevenue == 0 {
		rec.GrossRevenue = rec.DeclaredRevenue + rec.InvoicedAmount
	}

	rec.Weekday = weekday
	if rec.Weekday == "" {
		rec.Weekday = date.Weekday().String()
	}

	rec.RecomputeDerived()
	return rec
}

func (p *ClosureParser) parseDateCell(row []string) (time.Time, bool) {
	// Scan columns left to right so a workbook with several date-like
	// columns resolves deterministically.
	for idx := 0; idx < len(p.sheet.Headers); idx++ {
		mapping, ok := p.sheet.Mappings[idx]
		if !ok || mapping.Field != FieldDate {
			continue
		}
		if date, ok := ParseCalendarDate(cellAt(row, idx)); ok {
			return date, true
		}
	}
	return time.Time{}, false
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
