package text

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// FoldAccents removes diacritics by decomposing s (NFD), dropping nonspacing
// marks and recomposing the result. "Eléctrica" becomes "Electrica" and "ñ"
// becomes "n".
func FoldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// CollapseSpace trims s and replaces every run of whitespace with a single
// space.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Canonical returns the canonical form used for categories and qualifiers:
// uppercase, no diacritics, single spaces.
func Canonical(s string) string {
	return CollapseSpace(strings.ToUpper(FoldAccents(s)))
}
