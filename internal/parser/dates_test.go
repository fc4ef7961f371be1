package parser

import (
	"testing"
	"time"
)

func TestParseCalendarDate_TwoDigitYear(t *testing.T) {
	t.Parallel()

	got, ok := ParseCalendarDate("05/01/25")
	if !ok {
		t.Fatalf("expected ok")
	}
	want := time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("05/01/25 want=%v got=%v", want, got)
	}
}

func TestParseCalendarDate_FourDigitYear(t *testing.T) {
	t.Parallel()

	got, ok := ParseCalendarDate("01/06/2023")
	if !ok {
		t.Fatalf("expected ok")
	}
	want := time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("01/06/2023 want=%v got=%v", want, got)
	}
}

func TestParseCalendarDate_SpreadsheetSerial(t *testing.T) {
	t.Parallel()

	want := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

	got, ok := ParseCalendarDate(45658.0)
	if !ok || !got.Equal(want) {
		t.Fatalf("serial 45658 want=%v got=%v ok=%v", want, got, ok)
	}

	// Excelize returns unformatted date cells as numeric text.
	got, ok = ParseCalendarDate("45658")
	if !ok || !got.Equal(want) {
		t.Fatalf("serial string want=%v got=%v ok=%v", want, got, ok)
	}
}

func TestParseCalendarDate_SerialOutOfRange(t *testing.T) {
	t.Parallel()

	if _, ok := ParseCalendarDate(150.0); ok {
		t.Fatalf("150 should not parse as a date")
	}
	if _, ok := ParseCalendarDate("123456"); ok {
		t.Fatalf("123456 should not parse as a date")
	}
}

func TestParseCalendarDate_NativeTime(t *testing.T) {
	t.Parallel()

	in := time.Date(2024, time.March, 15, 13, 45, 0, 0, time.UTC)
	got, ok := ParseCalendarDate(in)
	if !ok {
		t.Fatalf("expected ok")
	}
	want := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("native time want=%v got=%v", want, got)
	}
}

func TestParseCalendarDate_Unparsable(t *testing.T) {
	t.Parallel()

	cases := []any{nil, "", "TOTALE", "giovedì", "31/31/2023", true}
	for _, c := range cases {
		if _, ok := ParseCalendarDate(c); ok {
			t.Fatalf("%#v should not parse", c)
		}
	}
}

func TestParseCalendarDate_ISO(t *testing.T) {
	t.Parallel()

	got, ok := ParseCalendarDate("2023-06-01")
	if !ok {
		t.Fatalf("expected ok")
	}
	want := time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("2023-06-01 want=%v got=%v", want, got)
	}
}
