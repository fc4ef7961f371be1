package parser

import (
	"strconv"
	"strings"
	"time"
)

// Spreadsheet serial day-numbers: epoch and the plausible range the
// source workbooks can contain (roughly 1982–2064). Values outside the
// range are treated as ordinary numbers, not dates.
const (
	serialMin = 30000
	serialMax = 60000
)

var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// dateLayouts are tried in order for string cells. Day-first layouts
// come first: the workbooks are Italian.
var dateLayouts = []string{
	"02/01/2006",
	"02/01/06",
	"2006-01-02",
	"02-01-2006",
	"2006-01-02 15:04:05",
	"02/01/2006 15:04:05",
	"1/2/06 15:04",
}

// ParseCalendarDate converts a raw cell value to a calendar day.
//
// Strategy chain, each step pure and tried in order: native date value,
// spreadsheet serial number, day-first date string. Returns false when
// no strategy succeeds, which callers read as "not a data row".
func ParseCalendarDate(v any) (time.Time, bool) {
	switch d := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		if d.IsZero() {
			return time.Time{}, false
		}
		return truncateToDay(d), true
	case float64:
		return fromSerial(d)
	case int:
		return fromSerial(float64(d))
	case int64:
		return fromSerial(float64(d))
	case string:
		return parseDateString(d)
	default:
		return time.Time{}, false
	}
}

func parseDateString(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	// Numeric text within the serial range is a serial date; excelize
	// returns unformatted date cells this way.
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return fromSerial(f)
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return truncateToDay(t), true
		}
	}

	return time.Time{}, false
}

func fromSerial(f float64) (time.Time, bool) {
	if f < serialMin || f > serialMax {
		return time.Time{}, false
	}
	return serialEpoch.AddDate(0, 0, int(f)), true
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
