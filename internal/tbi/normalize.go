package tbi

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldDiacritics decomposes runes and drops combining marks, so that
// accented letters (including the full Vietnamese tone set) collapse to
// their base letter.
var foldDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeName canonicalizes a name for indicator derivation: uppercase,
// diacritics stripped, interior whitespace collapsed to single spaces. Two
// renderings of the same name ("Anna", "ANNA", "ánna") normalize to the same
// string and therefore score identically.
func NormalizeName(name string) string {
	folded, _, err := transform.String(foldDiacritics, name)
	if err != nil {
		folded = name
	}

	// Đ carries a stroke, not a combining mark; NFD leaves it intact.
	folded = strings.Map(func(r rune) rune {
		switch r {
		case 'Đ':
			return 'D'
		case 'đ':
			return 'd'
		}
		return r
	}, folded)

	return strings.Join(strings.Fields(strings.ToUpper(folded)), " ")
}

// letterValue maps an uppercase ASCII letter to its Pythagorean value:
// A=1 .. I=9, J=1 .. R=9, S=1 .. Z=8. Non-letters score zero and are
// skipped by callers.
func letterValue(r rune) int {
	if r < 'A' || r > 'Z' {
		return 0
	}
	return int(r-'A')%9 + 1
}
