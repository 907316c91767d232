package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/unicode/norm"
)

// combiningMarks matches nonspacing marks left behind by NFD decomposition
var combiningMarks = runes.In(unicode.Mn)

// Normalize case-folds text and strips diacritics so "Viên" and "vien"
// compare equal. It never fails; empty input yields "".
//
// The result is stable under repeated application:
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	decomposed := norm.NFD.String(strings.ToLower(text))
	stripped := strings.Map(func(r rune) rune {
		if combiningMarks.Contains(r) {
			return -1
		}
		// đ has no canonical decomposition
		if r == 'đ' {
			return 'd'
		}
		return r
	}, decomposed)

	return strings.TrimSpace(norm.NFC.String(stripped))
}
