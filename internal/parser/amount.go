package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// groupedIntPattern matches dot-grouped integer strings like "1.234" or
// "12.345.678" where the dots are thousands separators, not decimals.
var groupedIntPattern = regexp.MustCompile(`^-?\d{1,3}(\.\d{3})+$`)

// ParseAmount converts a raw cell value to a float64 amount.
//
// Native numeric values pass through unchanged. Strings cover every
// historical encoding seen in the source workbooks: "1.234,56 €",
// "1234,56", plain "120.5", empty cells, and the " - € " placeholder.
// Malformed input resolves to 0 — one bad cell must never abort a
// multi-year import.
func ParseAmount(v any) float64 {
	switch n := v.(type) {
	case nil:
		return 0
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		return parseAmountString(n)
	default:
		return 0
	}
}

func parseAmountString(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "€", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")

	if s == "" || s == "-" {
		return 0
	}

	// Comma decimal separator: any dots are thousands grouping.
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		return f
	}

	// Dot-grouped integer without a decimal part ("1.234" → 1234).
	// Excelize hands us formatted cell text, so this shape only occurs
	// when the dot is a thousands separator.
	if groupedIntPattern.MatchString(s) {
		f, err := strconv.ParseFloat(strings.ReplaceAll(s, ".", ""), 64)
		if err != nil {
			return 0
		}
		return f
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
