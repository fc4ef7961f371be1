package model

// DayEntry is one row of a day-by-day listing: the full record plus its
// classification result.
type DayEntry struct {
	*DailyClosure
	IsClosed bool `json:"isClosed"`
}

// PaymentBreakdown per-channel totals over the open days of a period.
type PaymentBreakdown struct {
	CashFinal        float64 `json:"cashFinal"`
	CardChannelA     float64 `json:"cardChannelA"`
	CardChannelB     float64 `json:"cardChannelB"`
	DeliveryPayments float64 `json:"deliveryPayments"`
	OtherEPayments   float64 `json:"otherEPayments"`
	WireTransfers    float64 `json:"wireTransfers"`
	Tips             float64 `json:"tips"`
}

// VarianceAlert flags a day whose |cash variance| exceeded the threshold.
type VarianceAlert struct {
	Date         string  `json:"date"`
	CashVariance float64 `json:"cashVariance"`
	GrossRevenue float64 `json:"grossRevenue"`
	TotalSettled float64 `json:"totalSettled"`
}

// MonthlySummary aggregates one calendar month. Closed days appear in
// Days but never contribute to totals, averages, or alerts.
type MonthlySummary struct {
	Year  int `json:"year"`
	Month int `json:"month"`

	DaysPresent int `json:"daysPresent"`
	DaysOpen    int `json:"daysOpen"`
	DaysClosed  int `json:"daysClosed"`

	DeclaredRevenue float64 `json:"declaredRevenue"`
	GrossRevenue    float64 `json:"grossRevenue"`
	InvoicedAmount  float64 `json:"invoicedAmount"`
	VatBase10       float64 `json:"vatBase10"`
	VatBase22       float64 `json:"vatBase22"`
	TotalSettled    float64 `json:"totalSettled"`

	AvgDeclaredRevenue float64 `json:"avgDeclaredRevenue"`
	AvgTotalSettled    float64 `json:"avgTotalSettled"`

	Payments PaymentBreakdown `json:"payments"`
	Days     []DayEntry       `json:"days"`
	Alerts   []VarianceAlert  `json:"alerts"`
}

// AnnualSummary aggregates one calendar year with a per-month breakdown.
type AnnualSummary struct {
	Year int `json:"year"`

	DaysPresent int `json:"daysPresent"`
	DaysOpen    int `json:"daysOpen"`
	DaysClosed  int `json:"daysClosed"`

	DeclaredRevenue float64 `json:"declaredRevenue"`
	GrossRevenue    float64 `json:"grossRevenue"`
	InvoicedAmount  float64 `json:"invoicedAmount"`
	VatBase10       float64 `json:"vatBase10"`
	VatBase22       float64 `json:"vatBase22"`
	TotalSettled    float64 `json:"totalSettled"`

	AvgDeclaredRevenue float64 `json:"avgDeclaredRevenue"`
	AvgTotalSettled    float64 `json:"avgTotalSettled"`

	Payments PaymentBreakdown `json:"payments"`
	Months   []MonthlySummary `json:"months"`
}

// Delta is an absolute difference plus an optional percentage change.
// Pct is nil when the baseline is zero: the percentage is undefined,
// not zero.
type Delta struct {
	Abs float64  `json:"abs"`
	Pct *float64 `json:"pct"`
}

// YearComparison holds two independently computed annual summaries and
// their deltas (second minus first).
type YearComparison struct {
	First  AnnualSummary `json:"first"`
	Second AnnualSummary `json:"second"`

	DeclaredRevenue Delta `json:"declaredRevenue"`
	GrossRevenue    Delta `json:"grossRevenue"`
	TotalSettled    Delta `json:"totalSettled"`
}

// MonthComparison is the month-granularity counterpart of YearComparison.
type MonthComparison struct {
	First  MonthlySummary `json:"first"`
	Second MonthlySummary `json:"second"`

	DeclaredRevenue Delta `json:"declaredRevenue"`
	GrossRevenue    Delta `json:"grossRevenue"`
	TotalSettled    Delta `json:"totalSettled"`
}

// RankedDay is one entry of a top/bottom-N listing.
type RankedDay struct {
	Rank int `json:"rank"`
	*DailyClosure
}
