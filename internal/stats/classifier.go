package stats

import (
	"time"

	"github.com/underline83/trgb/internal/model"
)

// IsEffectivelyClosed decides whether a stored day counts as closed for
// reporting. Two independent triggers, first match wins:
//
//  1. the operator flagged the day closed;
//  2. the day falls on the customary closing weekday and carries zero
//     gross revenue and zero settlement — a day that could not have
//     come from a real till tape.
//
// The weekday check derives the weekday from the record's date rather
// than the free-text weekday column, which historical files fill with
// Italian names.
func IsEffectivelyClosed(rec *model.DailyClosure, closingDay time.Weekday) bool {
	if rec.ManuallyClosed {
		return true
	}
	if rec.GrossRevenue == 0 && rec.TotalSettled == 0 {
		if date, err := time.Parse("2006-01-02", rec.Date); err == nil {
			return date.Weekday() == closingDay
		}
	}
	return false
}

// ParseWeekday maps an English weekday name to time.Weekday.
func ParseWeekday(name string) (time.Weekday, bool) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if d.String() == name {
			return d, true
		}
	}
	return 0, false
}
