package parser

import (
	"regexp"
	"strings"
)

var spacePattern = regexp.MustCompile(`\s+`)

// NormalizeHeader canonicalizes a column or sheet name for matching:
// strips currency symbols and invisible spaces, collapses repeated
// whitespace, trims, and upper-cases.
func NormalizeHeader(name string) string {
	s := strings.ReplaceAll(name, "€", "")
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\t", " ")
	s = spacePattern.ReplaceAllString(s, " ")
	return strings.ToUpper(strings.TrimSpace(s))
}
