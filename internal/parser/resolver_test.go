package parser

import (
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

// newWorkbook builds an in-memory workbook with the given sheets; each
// sheet gets a minimal header row with a date column plus one value
// column so resolution can succeed.
func newWorkbook(t *testing.T, sheets ...string) *excelize.File {
	t.Helper()

	f := excelize.NewFile()
	for i, name := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				t.Fatalf("rename sheet: %v", err)
			}
		} else {
			if _, err := f.NewSheet(name); err != nil {
				t.Fatalf("new sheet: %v", err)
			}
		}
		if err := f.SetSheetRow(name, "A1", &[]any{"Data", "Contanti"}); err != nil {
			t.Fatalf("set header: %v", err)
		}
		if err := f.SetSheetRow(name, "A2", &[]any{"01/06/2023", "100"}); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	return f
}

func TestResolve_LiteralYearSheet(t *testing.T) {
	t.Parallel()

	f := newWorkbook(t, "2023", "2024", "archivio")
	sheet, err := NewSheetResolver(f).Resolve("2024")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if sheet.SheetName != "2024" {
		t.Fatalf("want sheet 2024, got %q", sheet.SheetName)
	}
}

func TestResolve_SingleNonArchiveSheet(t *testing.T) {
	t.Parallel()

	f := newWorkbook(t, "Corrispettivi", "ARCHIVIO")
	sheet, err := NewSheetResolver(f).Resolve("2025")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if sheet.SheetName != "Corrispettivi" {
		t.Fatalf("want the only non-archive sheet, got %q", sheet.SheetName)
	}
}

func TestResolve_SheetContainingYear(t *testing.T) {
	t.Parallel()

	f := newWorkbook(t, "corrispettivi 2024", "corrispettivi 2025")
	sheet, err := NewSheetResolver(f).Resolve("2025")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if sheet.SheetName != "corrispettivi 2025" {
		t.Fatalf("want containing match, got %q", sheet.SheetName)
	}
}

func TestResolve_NoMatchListsSheets(t *testing.T) {
	t.Parallel()

	f := newWorkbook(t, "2021", "2022")
	_, err := NewSheetResolver(f).Resolve("1999")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "2021") || !strings.Contains(err.Error(), "2022") {
		t.Fatalf("error should list available sheets, got: %v", err)
	}
}

func TestResolve_ArchivePeriod(t *testing.T) {
	t.Parallel()

	f := newWorkbook(t, "2025", "Archivio storico")
	sheet, err := NewSheetResolver(f).Resolve("archive")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if sheet.SheetName != "Archivio storico" {
		t.Fatalf("want archive sheet, got %q", sheet.SheetName)
	}
}

func TestResolve_ArchiveFallsBackToFirstSheet(t *testing.T) {
	t.Parallel()

	f := newWorkbook(t, "vecchi anni", "2025")
	sheet, err := NewSheetResolver(f).Resolve("archive")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if sheet.SheetName != "vecchi anni" {
		t.Fatalf("want first sheet fallback, got %q", sheet.SheetName)
	}
}

func TestResolve_InvalidPeriod(t *testing.T) {
	t.Parallel()

	f := newWorkbook(t, "2025")
	if _, err := NewSheetResolver(f).Resolve("last-year"); err == nil {
		t.Fatalf("expected error for invalid period")
	}
}

func TestNormalizeHeader(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"  iva 10%  ":        "IVA 10%",
		"POS BPM":       "POS BPM",
		"Contanti\nFinali":   "CONTANTI FINALI",
		"corrispettivi   €":  "CORRISPETTIVI",
		"\tPayPal + Stripe ": "PAYPAL + STRIPE",
	}
	for in, want := range cases {
		if got := NormalizeHeader(in); got != want {
			t.Fatalf("NormalizeHeader(%q) want=%q got=%q", in, want, got)
		}
	}
}

func TestMapColumns_HistoricalSpellings(t *testing.T) {
	t.Parallel()

	headers := []string{
		"Data", "Giorno", "iva10", "IVA 22%", "Fatture",
		"Contanti finali", "POS BPM", "pos sella", "TheForkPay",
		"PayPal + Stripe", "Bonifici", "Mance digitali", "Totale", "Boh",
	}
	mappings := MapColumns(headers)

	want := map[int]Field{
		0:  FieldDate,
		1:  FieldWeekday,
		2:  FieldVatBase10,
		3:  FieldVatBase22,
		4:  FieldInvoicedAmount,
		5:  FieldCashFinal,
		6:  FieldCardChannelA,
		7:  FieldCardChannelB,
		8:  FieldDelivery,
		9:  FieldOtherEPayments,
		10: FieldWireTransfers,
		11: FieldTips,
	}
	for idx, field := range want {
		m, ok := mappings[idx]
		if !ok {
			t.Fatalf("column %d (%s) not mapped", idx, headers[idx])
		}
		if m.Field != field {
			t.Fatalf("column %d (%s) want=%s got=%s", idx, headers[idx], field, m.Field)
		}
	}

	// Unknown and source-total columns are ignored, not errors.
	if _, ok := mappings[12]; ok {
		t.Fatalf("source TOTALE column must not map")
	}
	if _, ok := mappings[13]; ok {
		t.Fatalf("unknown column must not map")
	}
}

func TestMapColumns_MultipleAlternatePaymentColumns(t *testing.T) {
	t.Parallel()

	headers := []string{"Data", "PayPal", "Stripe"}
	mappings := MapColumns(headers)

	if mappings[1].Field != FieldOtherEPayments || mappings[2].Field != FieldOtherEPayments {
		t.Fatalf("both alternate digital columns should map to other_electronic_payments: %+v", mappings)
	}
}
