package parser

import "time"

// Field is a canonical closure-record field a workbook column can map to.
type Field string

const (
	FieldDate            Field = "date"
	FieldWeekday         Field = "weekday"
	FieldVatBase10       Field = "vat_base_10"
	FieldVatBase22       Field = "vat_base_22"
	FieldDeclaredRevenue Field = "declared_revenue"
	FieldInvoicedAmount  Field = "invoiced_amount"
	FieldGrossRevenue    Field = "gross_revenue_total"
	FieldCashFinal       Field = "cash_final"
	FieldCardChannelA    Field = "card_channel_a"
	FieldCardChannelB    Field = "card_channel_b"
	FieldDelivery        Field = "delivery_platform_payments"
	FieldOtherEPayments  Field = "other_electronic_payments"
	FieldWireTransfers   Field = "wire_transfers"
	FieldTips            Field = "tips"
	FieldNote            Field = "note"
)

// PeriodArchive selects the consolidated multi-year sheet instead of a
// single-year one.
const PeriodArchive = "archive"

// ColumnMapping binds one workbook column to a canonical field. Several
// columns may map to the same field; their values merge by summation.
type ColumnMapping struct {
	ColumnIndex int    `json:"columnIndex"`
	ColumnName  string `json:"columnName"`
	Field       Field  `json:"field"`
}

// ResolvedSheet is the resolver output: the chosen sheet, its raw rows,
// and the field→column mapping derived from the header row.
type ResolvedSheet struct {
	SheetName string
	Headers   []string
	Rows      [][]string
	Mappings  map[int]ColumnMapping
}

// ParseStats reports what the normalizer did with a sheet.
type ParseStats struct {
	SheetName   string        `json:"sheetName"`
	TotalRows   int           `json:"totalRows"`
	ParsedRows  int           `json:"parsedRows"`
	SkippedRows int           `json:"skippedRows"`
	Duration    time.Duration `json:"duration"`
}
