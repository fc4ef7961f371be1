package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"
)

var yearPattern = regexp.MustCompile(`^\d{4}$`)

// SheetResolver picks the workbook sheet matching a period selector and
// maps its header row onto the canonical field set.
type SheetResolver struct {
	file *excelize.File
}

// NewSheetResolver creates a resolver over an open workbook.
func NewSheetResolver(file *excelize.File) *SheetResolver {
	return &SheetResolver{file: file}
}

// ValidPeriod reports whether period is "archive" or a 4-digit year.
func ValidPeriod(period string) bool {
	return strings.EqualFold(period, PeriodArchive) || yearPattern.MatchString(period)
}

// Resolve selects the sheet for the given period and returns its rows
// together with the field→column mapping.
//
// Concrete year, in order: a sheet literally named that year; the only
// non-archive sheet if there is exactly one; a sheet whose name contains
// the year. Archive: a sheet literally or partially named "archivio" or
// "archive", else the first sheet. A failed year lookup reports the
// sheet names actually present so the operator can fix the file.
func (r *SheetResolver) Resolve(period string) (*ResolvedSheet, error) {
	if !ValidPeriod(period) {
		return nil, fmt.Errorf("invalid period %q: want \"archive\" or a 4-digit year", period)
	}

	sheets := r.file.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	var name string
	if strings.EqualFold(period, PeriodArchive) {
		name = resolveArchiveSheet(sheets)
	} else {
		var err error
		name, err = resolveYearSheet(sheets, period)
		if err != nil {
			return nil, err
		}
	}

	rows, err := r.file.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", name, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %q has no data rows", name)
	}

	headers := rows[0]
	mappings := MapColumns(headers)
	if !hasField(mappings, FieldDate) {
		return nil, fmt.Errorf("sheet %q has no recognizable date column", name)
	}

	return &ResolvedSheet{
		SheetName: name,
		Headers:   headers,
		Rows:      rows[1:],
		Mappings:  mappings,
	}, nil
}

func resolveArchiveSheet(sheets []string) string {
	for _, s := range sheets {
		norm := NormalizeHeader(s)
		if strings.Contains(norm, "ARCHIV") {
			return s
		}
	}
	// Archive workbooks often have a single unnamed-by-year sheet.
	return sheets[0]
}

func resolveYearSheet(sheets []string, year string) (string, error) {
	for _, s := range sheets {
		if strings.TrimSpace(s) == year {
			return s, nil
		}
	}

	var nonArchive []string
	for _, s := range sheets {
		if !strings.Contains(NormalizeHeader(s), "ARCHIV") {
			nonArchive = append(nonArchive, s)
		}
	}
	if len(nonArchive) == 1 {
		return nonArchive[0], nil
	}

	var containing []string
	for _, s := range sheets {
		if strings.Contains(s, year) {
			containing = append(containing, s)
		}
	}
	if len(containing) == 1 {
		return containing[0], nil
	}

	return "", fmt.Errorf("no sheet matches year %s; available sheets: %s",
		year, strings.Join(sheets, ", "))
}

func hasField(mappings map[int]ColumnMapping, field Field) bool {
	for _, m := range mappings {
		if m.Field == field {
			return true
		}
	}
	return false
}
