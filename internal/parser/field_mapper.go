package parser

import "strings"

// aliasKind controls how an alias matches a normalized header.
type aliasKind int

const (
	matchExact aliasKind = iota
	matchPrefix
	matchContains
)

type alias struct {
	kind    aliasKind
	pattern string
}

// fieldAliases is the declarative table of every historical column
// spelling per canonical field, matched against normalized headers.
// Adding a newly discovered spelling is a one-line edit here. The
// source's own TOTALE/totals columns are deliberately absent: derived
// totals are always recomputed, never imported.
var fieldAliases = map[Field][]alias{
	FieldDate: {
		{matchExact, "DATA"},
		{matchExact, "DATE"},
	},
	FieldWeekday: {
		{matchExact, "GIORNO"},
		{matchExact, "GG"},
		{matchExact, "DAY"},
	},
	FieldVatBase10: {
		{matchExact, "IVA 10%"},
		{matchExact, "IVA10%"},
		{matchExact, "IVA 10"},
		{matchExact, "IVA10"},
		{matchExact, "10%"},
	},
	FieldVatBase22: {
		{matchExact, "IVA 22%"},
		{matchExact, "IVA22%"},
		{matchExact, "IVA 22"},
		{matchExact, "IVA22"},
		{matchExact, "22%"},
	},
	FieldDeclaredRevenue: {
		{matchExact, "CORRISPETTIVI"},
		{matchExact, "CORRISPETTIVO"},
	},
	FieldGrossRevenue: {
		{matchExact, "CORRISPETTIVI-TOT"},
		{matchExact, "CORRISPETTIVI TOT"},
		{matchExact, "TOTALE CORRISPETTIVI"},
	},
	FieldInvoicedAmount: {
		{matchExact, "FATTURE"},
		{matchExact, "FATTURA"},
	},
	FieldCashFinal: {
		{matchExact, "CONTANTI FINALI"},
		{matchExact, "CONTANTI"},
		{matchExact, "CASSA"},
	},
	FieldCardChannelA: {
		{matchExact, "POS BPM"},
		{matchExact, "POSBPM"},
		{matchExact, "POS_BPM"},
		{matchExact, "POS RISTO"},
		{matchExact, "POS"},
	},
	FieldCardChannelB: {
		{matchExact, "POS SELLA"},
		{matchExact, "POSSELLA"},
		{matchExact, "POS_SELLA"},
		{matchExact, "SELLA"},
	},
	FieldDelivery: {
		{matchPrefix, "THEFORK"},
		{matchPrefix, "DELIVER"},
	},
	FieldOtherEPayments: {
		{matchContains, "PAYPAL"},
		{matchContains, "PAY PAL"},
		{matchContains, "STRIPE"},
		{matchContains, "SATISPAY"},
	},
	FieldWireTransfers: {
		{matchExact, "BONIFICI"},
		{matchExact, "BONIFICO"},
	},
	FieldTips: {
		{matchContains, "MANCE"},
		{matchContains, "TIPS"},
	},
	FieldNote: {
		{matchExact, "NOTE"},
		{matchExact, "NOTA"},
	},
}

// mappingOrder fixes the priority when one header could satisfy several
// fields (exact spellings always win over contains-style aliases).
var mappingOrder = []Field{
	FieldDate, FieldWeekday,
	FieldVatBase10, FieldVatBase22,
	FieldGrossRevenue, FieldDeclaredRevenue,
	FieldInvoicedAmount,
	FieldCashFinal, FieldCardChannelA, FieldCardChannelB,
	FieldWireTransfers, FieldDelivery, FieldTips, FieldNote,
	FieldOtherEPayments,
}

// MapColumns maps every recognizable header onto its canonical field.
// Unmapped columns are ignored, not errors: the source format gains and
// loses columns across years.
func MapColumns(headers []string) map[int]ColumnMapping {
	mappings := make(map[int]ColumnMapping)

	for idx, header := range headers {
		norm := NormalizeHeader(header)
		if norm == "" {
			continue
		}
		if field, ok := matchField(norm); ok {
			mappings[idx] = ColumnMapping{
				ColumnIndex: idx,
				ColumnName:  header,
				Field:       field,
			}
		}
	}

	return mappings
}

func matchField(norm string) (Field, bool) {
	for _, field := range mappingOrder {
		for _, a := range fieldAliases[field] {
			switch a.kind {
			case matchExact:
				if norm == a.pattern {
					return field, true
				}
			case matchPrefix:
				if strings.HasPrefix(norm, a.pattern) {
					return field, true
				}
			case matchContains:
				if strings.Contains(norm, a.pattern) {
					return field, true
				}
			}
		}
	}
	return "", false
}
