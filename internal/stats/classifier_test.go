package stats

import (
	"testing"
	"time"

	"github.com/underline83/trgb/internal/model"
)

func TestIsEffectivelyClosed(t *testing.T) {
	t.Parallel()

	// 2023-06-07 is a Wednesday, 2023-06-01 a Thursday.
	tests := []struct {
		name string
		rec  model.DailyClosure
		want bool
	}{
		{
			name: "manual flag wins regardless of revenue",
			rec:  model.DailyClosure{Date: "2023-06-01", GrossRevenue: 500, TotalSettled: 500, ManuallyClosed: true},
			want: true,
		},
		{
			name: "zero day on closing weekday",
			rec:  model.DailyClosure{Date: "2023-06-07"},
			want: true,
		},
		{
			name: "zero day off the closing weekday stays open",
			rec:  model.DailyClosure{Date: "2023-06-01"},
			want: false,
		},
		{
			name: "revenue on closing weekday stays open",
			rec:  model.DailyClosure{Date: "2023-06-07", GrossRevenue: 300, TotalSettled: 300},
			want: false,
		},
		{
			name: "settlement alone keeps the day open",
			rec:  model.DailyClosure{Date: "2023-06-07", TotalSettled: 20},
			want: false,
		},
		{
			name: "weekday derives from the date, not the weekday column",
			rec:  model.DailyClosure{Date: "2023-06-07", Weekday: "giovedì"},
			want: true,
		},
		{
			name: "unparsable date never closes heuristically",
			rec:  model.DailyClosure{Date: "not-a-date"},
			want: false,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := IsEffectivelyClosed(&tc.rec, time.Wednesday); got != tc.want {
				t.Fatalf("IsEffectivelyClosed(%+v) = %v, want %v", tc.rec, got, tc.want)
			}
		})
	}
}

func TestParseWeekday(t *testing.T) {
	t.Parallel()

	if d, ok := ParseWeekday("Wednesday"); !ok || d != time.Wednesday {
		t.Fatalf("want Wednesday, got (%v, %v)", d, ok)
	}
	if d, ok := ParseWeekday("Sunday"); !ok || d != time.Sunday {
		t.Fatalf("want Sunday, got (%v, %v)", d, ok)
	}
	for _, bad := range []string{"", "wednesday", "mercoledì", "Someday"} {
		if _, ok := ParseWeekday(bad); ok {
			t.Fatalf("ParseWeekday(%q) should not match", bad)
		}
	}
}
