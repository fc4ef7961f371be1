package model

// DailyClosure is the canonical ledger record: one reconciled day of
// revenue and payments. Dates are ISO yyyy-mm-dd strings, which keeps
// lexicographic and chronological order identical in the store.
type DailyClosure struct {
	ID      int64  `json:"id,omitempty"`
	Date    string `json:"date"`
	Weekday string `json:"weekday"`

	// Fiscal side
	VatBase10       float64 `json:"vatBase10"`
	VatBase22       float64 `json:"vatBase22"`
	DeclaredRevenue float64 `json:"declaredRevenue"`
	InvoicedAmount  float64 `json:"invoicedAmount"`
	GrossRevenue    float64 `json:"grossRevenue"`

	// Payment channels (tips excluded)
	CashFinal        float64 `json:"cashFinal"`
	CardChannelA     float64 `json:"cardChannelA"` // POS BPM
	CardChannelB     float64 `json:"cardChannelB"` // POS Sella
	DeliveryPayments float64 `json:"deliveryPayments"`
	OtherEPayments   float64 `json:"otherEPayments"` // paypal/stripe bucket
	WireTransfers    float64 `json:"wireTransfers"`

	Tips float64 `json:"tips"`

	// Derived, always recomputed from the groups above
	TotalSettled float64 `json:"totalSettled"`
	CashVariance float64 `json:"cashVariance"`

	Note           string `json:"note,omitempty"`
	ManuallyClosed bool   `json:"manuallyClosed"`

	ImportedBy string `json:"importedBy,omitempty"`
	CreatedAt  string `json:"createdAt,omitempty"`
	UpdatedAt  string `json:"updatedAt,omitempty"`
}

// RecomputeDerived rebuilds TotalSettled and CashVariance from the
// payment and fiscal groups. Source totals are never trusted.
func (c *DailyClosure) RecomputeDerived() {
	c.TotalSettled = c.CashFinal + c.CardChannelA + c.CardChannelB +
		c.DeliveryPayments + c.OtherEPayments + c.WireTransfers
	c.CashVariance = c.TotalSettled - c.GrossRevenue
}
