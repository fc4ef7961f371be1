package stats

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/underline83/trgb/internal/model"
	"github.com/underline83/trgb/internal/store"
)

// Stats computes reporting aggregates over the closure ledger. Closed
// days always appear in day-by-day listings but never contribute to
// totals, averages, or rankings.
type Stats struct {
	store      *store.Store
	closingDay time.Weekday
}

// New creates an aggregator bound to a store and the business's
// customary closing weekday.
func New(st *store.Store, closingDay time.Weekday) *Stats {
	return &Stats{store: st, closingDay: closingDay}
}

// periodTotals folds a record set into totals over its open days.
type periodTotals struct {
	present, open, closed int

	declared, gross, invoiced float64
	vat10, vat22, settled     float64

	payments model.PaymentBreakdown
	days     []model.DayEntry
	alerts   []model.VarianceAlert
}

func (s *Stats) fold(records []*model.DailyClosure, alertThreshold float64) *periodTotals {
	t := &periodTotals{}

	for _, r := range records {
		isClosed := IsEffectivelyClosed(r, s.closingDay)
		t.present++
		t.days = append(t.days, model.DayEntry{DailyClosure: r, IsClosed: isClosed})

		if isClosed {
			t.closed++
			continue
		}
		t.open++

		t.declared += r.DeclaredRevenue
		t.gross += r.GrossRevenue
		t.invoiced += r.InvoicedAmount
		t.vat10 += r.VatBase10
		t.vat22 += r.VatBase22
		t.settled += r.TotalSettled

		t.payments.CashFinal += r.CashFinal
		t.payments.CardChannelA += r.CardChannelA
		t.payments.CardChannelB += r.CardChannelB
		t.payments.DeliveryPayments += r.DeliveryPayments
		t.payments.OtherEPayments += r.OtherEPayments
		t.payments.WireTransfers += r.WireTransfers
		t.payments.Tips += r.Tips

		if alertThreshold > 0 && math.Abs(r.CashVariance) > alertThreshold {
			t.alerts = append(t.alerts, model.VarianceAlert{
				Date:         r.Date,
				CashVariance: r.CashVariance,
				GrossRevenue: r.GrossRevenue,
				TotalSettled: r.TotalSettled,
			})
		}
	}

	return t
}

// MonthSummary aggregates one calendar month. alertThreshold is the
// absolute cash-variance level above which a day lands on the alert
// list.
func (s *Stats) MonthSummary(year, month int, alertThreshold float64) (*model.MonthlySummary, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("invalid month %d", month)
	}

	records, err := s.store.GetByYearMonth(year, month)
	if err != nil {
		return nil, err
	}

	t := s.fold(records, alertThreshold)
	summary := &model.MonthlySummary{
		Year:            year,
		Month:           month,
		DaysPresent:     t.present,
		DaysOpen:        t.open,
		DaysClosed:      t.closed,
		DeclaredRevenue: t.declared,
		GrossRevenue:    t.gross,
		InvoicedAmount:  t.invoiced,
		VatBase10:       t.vat10,
		VatBase22:       t.vat22,
		TotalSettled:    t.settled,
		Payments:        t.payments,
		Days:            t.days,
		Alerts:          t.alerts,
	}

	if t.open > 0 {
		summary.AvgDeclaredRevenue = t.declared / float64(t.open)
		summary.AvgTotalSettled = t.settled / float64(t.open)
	}

	return summary, nil
}

// YearSummary aggregates one calendar year, reusing MonthSummary for
// every month that has records.
func (s *Stats) YearSummary(year int, alertThreshold float64) (*model.AnnualSummary, error) {
	records, err := s.store.GetByYear(year)
	if err != nil {
		return nil, err
	}

	t := s.fold(records, alertThreshold)
	summary := &model.AnnualSummary{
		Year:            year,
		DaysPresent:     t.present,
		DaysOpen:        t.open,
		DaysClosed:      t.closed,
		DeclaredRevenue: t.declared,
		GrossRevenue:    t.gross,
		InvoicedAmount:  t.invoiced,
		VatBase10:       t.vat10,
		VatBase22:       t.vat22,
		TotalSettled:    t.settled,
		Payments:        t.payments,
	}

	if t.open > 0 {
		summary.AvgDeclaredRevenue = t.declared / float64(t.open)
		summary.AvgTotalSettled = t.settled / float64(t.open)
	}

	for _, month := range monthsPresent(records) {
		ms, err := s.MonthSummary(year, month, alertThreshold)
		if err != nil {
			return nil, err
		}
		summary.Months = append(summary.Months, *ms)
	}

	return summary, nil
}

// CompareYears computes two independent annual summaries and their
// deltas (second minus first).
func (s *Stats) CompareYears(first, second int, alertThreshold float64) (*model.YearComparison, error) {
	s1, err := s.YearSummary(first, alertThreshold)
	if err != nil {
		return nil, err
	}
	s2, err := s.YearSummary(second, alertThreshold)
	if err != nil {
		return nil, err
	}
	return &model.YearComparison{
		First:           *s1,
		Second:          *s2,
		DeclaredRevenue: makeDelta(s1.DeclaredRevenue, s2.DeclaredRevenue),
		GrossRevenue:    makeDelta(s1.GrossRevenue, s2.GrossRevenue),
		TotalSettled:    makeDelta(s1.TotalSettled, s2.TotalSettled),
	}, nil
}

// CompareMonths compares two year-months, possibly across years.
func (s *Stats) CompareMonths(y1, m1, y2, m2 int, alertThreshold float64) (*model.MonthComparison, error) {
	s1, err := s.MonthSummary(y1, m1, alertThreshold)
	if err != nil {
		return nil, err
	}
	s2, err := s.MonthSummary(y2, m2, alertThreshold)
	if err != nil {
		return nil, err
	}
	return &model.MonthComparison{
		First:           *s1,
		Second:          *s2,
		DeclaredRevenue: makeDelta(s1.DeclaredRevenue, s2.DeclaredRevenue),
		GrossRevenue:    makeDelta(s1.GrossRevenue, s2.GrossRevenue),
		TotalSettled:    makeDelta(s1.TotalSettled, s2.TotalSettled),
	}, nil
}

// TopDays ranks the year's open days by gross revenue, best first.
// Ties break by ascending date so rankings are deterministic.
func (s *Stats) TopDays(year, limit int) ([]model.RankedDay, error) {
	return s.rankedDays(year, limit, true)
}

// BottomDays ranks the year's open days by gross revenue, worst first.
func (s *Stats) BottomDays(year, limit int) ([]model.RankedDay, error) {
	return s.rankedDays(year, limit, false)
}

func (s *Stats) rankedDays(year, limit int, descending bool) ([]model.RankedDay, error) {
	records, err := s.store.GetByYear(year)
	if err != nil {
		return nil, err
	}

	var open []*model.DailyClosure
	for _, r := range records {
		if !IsEffectivelyClosed(r, s.closingDay) {
			open = append(open, r)
		}
	}

	sort.SliceStable(open, func(i, j int) bool {
		if open[i].GrossRevenue != open[j].GrossRevenue {
			if descending {
				return open[i].GrossRevenue > open[j].GrossRevenue
			}
			return open[i].GrossRevenue < open[j].GrossRevenue
		}
		return open[i].Date < open[j].Date
	})

	if limit > 0 && len(open) > limit {
		open = open[:limit]
	}

	ranked := make([]model.RankedDay, len(open))
	for i, r := range open {
		ranked[i] = model.RankedDay{Rank: i + 1, DailyClosure: r}
	}
	return ranked, nil
}

// makeDelta builds an absolute + percentage delta. The percentage is
// undefined (nil), not zero, when the baseline is zero.
func makeDelta(baseline, current float64) model.Delta {
	d := model.Delta{Abs: current - baseline}
	if baseline != 0 {
		pct := (current - baseline) / baseline * 100
		d.Pct = &pct
	}
	return d
}

func monthsPresent(records []*model.DailyClosure) []int {
	seen := make(map[int]bool)
	var months []int
	for _, r := range records {
		var y, m int
		if _, err := fmt.Sscanf(r.Date, "%4d-%2d", &y, &m); err != nil {
			continue
		}
		if !seen[m] {
			seen[m] = true
			months = append(months, m)
		}
	}
	sort.Ints(months)
	return months
}
