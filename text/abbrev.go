package text

import (
	"strings"
	"unicode"
)

// Abbreviation rewrites a heading whose leading token equals Token into
// Canonical.
type Abbreviation struct {
	// Token is the uppercase code matched against the first token.
	Token string

	// Canonical is the full category name the code stands for.
	Canonical string

	// Letter marks single-letter codes. When such a code carries a
	// qualifier, the qualifier names the real category and is promoted.
	Letter bool
}

// AbbreviationTable is an ordered list of rewrite rules. Rules are tried in
// order and evaluation stops at the first match.
type AbbreviationTable []Abbreviation

// DefaultAbbreviations returns the abbreviation codes found in review
// documents.
func DefaultAbbreviations() AbbreviationTable {
	return AbbreviationTable{
		{Token: "E", Canonical: "ELECTRICA", Letter: true},
		{Token: "S", Canonical: "ESTRUCTURA", Letter: true},
		{Token: "B", Canonical: "GEOTECNIA Y ESTUDIOS GEOMORFOLOGICOS", Letter: true},
		{Token: "BIM", Canonical: "BIM"},
		{Token: "FADS", Canonical: "FADS"},
	}
}

// Match returns the first rule whose token equals the leading token of the
// uppercase principal.
func (t AbbreviationTable) Match(principal string) (Abbreviation, bool) {
	lead := leadingToken(principal)
	if lead == "" {
		return Abbreviation{}, false
	}
	for _, rule := range t {
		if rule.Token == lead {
			return rule, true
		}
	}
	return Abbreviation{}, false
}

// leadingToken returns the run of letters and digits at the start of s.
func leadingToken(s string) string {
	end := strings.IndexFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if end < 0 {
		return s
	}
	return s[:end]
}
