package text

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	quoteReplacer = strings.NewReplacer("«", "", "»", "", "“", "", "”", "", `"`, "", "'", "")
	dashReplacer  = strings.NewReplacer("–", "-", "—", "-")

	dotLeaderPattern     = regexp.MustCompile(`\.{2,}\s*\d+\s*$`)
	trailingDigitPattern = regexp.MustCompile(`(?:\s+\d+)+$`)
	parentheticalPattern = regexp.MustCompile(`^(.*?)\s*\((.+)\)\s*$`)
	spacedHyphenPattern  = regexp.MustCompile(`\s-\s`)
	leadingArticle       = regexp.MustCompile(`(?i)^\s*de\s+`)
	trailingPunct        = regexp.MustCompile(`[,:.\s]+$`)
	trailingParen        = regexp.MustCompile(`[)\s]+$`)
)

// headingStopwords are bare articles and prepositions left behind when a
// heading line is cut short. They are discarded rather than treated as
// categories.
var headingStopwords = map[string]bool{
	"DE":  true,
	"DEL": true,
	"LA":  true,
	"EL":  true,
}

// Heading is the result of normalizing raw heading text.
type Heading struct {
	// Category is the canonical category; empty when the text was rejected.
	Category string

	// Qualifier is the canonical qualifier; empty when absent.
	Qualifier string

	// Cleaned is the input after quote, whitespace, page-number and dash
	// cleanup. Case and diacritics are preserved.
	Cleaned string
}

// Valid reports whether normalization produced a category
func (h Heading) Valid() bool {
	return h.Category != ""
}

// NormalizeHeading normalizes raw heading text using the default
// abbreviation table.
func NormalizeHeading(raw string) Heading {
	return DefaultAbbreviations().Normalize(raw)
}

// Normalize maps raw heading text to a canonical category and qualifier.
//
// Processing order:
//  1. strip decorative quotes, collapse whitespace
//  2. drop dot-leader page numbers ("..... 152") and trailing digit tokens
//  3. map en/em dashes to '-'
//  4. split "NAME (QUALIFIER)", then "NAME (QUALIFIER" and finally "NAME - QUALIFIER"
//  5. cut the principal at the first ',' or ';'
//  6. drop a leading "de "
//  7. trim trailing punctuation from principal and qualifier
//  8. reject bare articles and text without letters
//  9. rewrite abbreviations (first match wins)
//  10. promote the qualifier of a single-letter code
//  11. uppercase and fold diacritics
//
// Text that is not valid UTF-8 is rejected.
func (t AbbreviationTable) Normalize(raw string) Heading {
	if !utf8.ValidString(raw) {
		return Heading{}
	}
	cleaned := CollapseSpace(quoteReplacer.Replace(raw))
	cleaned = dotLeaderPattern.ReplaceAllString(cleaned, "")
	cleaned = trailingDigitPattern.ReplaceAllString(cleaned, "")
	cleaned = strings.TrimSpace(dashReplacer.Replace(cleaned))

	h := Heading{Cleaned: cleaned}
	if cleaned == "" {
		return h
	}

	principal, qualifier := splitQualifier(cleaned)

	if i := strings.IndexAny(principal, ",;"); i >= 0 {
		principal = principal[:i]
	}
	principal = leadingArticle.ReplaceAllString(principal, "")
	principal = strings.TrimSpace(trailingPunct.ReplaceAllString(principal, ""))
	qualifier = strings.TrimSpace(trailingPunct.ReplaceAllString(qualifier, ""))

	upper := strings.ToUpper(principal)
	if headingStopwords[upper] || !hasLetter(upper) {
		return h
	}

	if rule, ok := t.Match(upper); ok {
		upper = rule.Canonical
		if rule.Letter && qualifier != "" {
			if promoted, rest := promoteQualifier(qualifier); promoted != "" {
				upper, qualifier = promoted, rest
			}
		}
	}

	h.Category = Canonical(upper)
	h.Qualifier = Canonical(qualifier)
	return h
}

// splitQualifier separates the principal name from its qualifier.
func splitQualifier(s string) (principal, qualifier string) {
	if m := parentheticalPattern.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}

	if strings.Contains(s, "(") && !strings.Contains(s, ")") {
		left, right, _ := strings.Cut(s, "(")
		return strings.TrimSpace(left), trailingParen.ReplaceAllString(strings.TrimSpace(right), "")
	}

	if parts := spacedHyphenPattern.Split(s, -1); len(parts) > 1 {
		return strings.TrimSpace(parts[0]), strings.TrimSpace(strings.Join(parts[1:], " - "))
	}

	return s, ""
}

// promoteQualifier turns the qualifier of a letter code into the principal.
// "Eléctrica - Lado Aire" yields principal "Eléctrica" and qualifier
// "Lado Aire"; without a spaced hyphen the whole qualifier is promoted.
func promoteQualifier(qualifier string) (principal, rest string) {
	parts := spacedHyphenPattern.Split(qualifier, 2)
	principal = strings.TrimSpace(trailingPunct.ReplaceAllString(parts[0], ""))
	if len(parts) == 2 {
		rest = strings.TrimSpace(trailingPunct.ReplaceAllString(parts[1], ""))
	}
	return principal, rest
}

func hasLetter(s string) bool {
	return strings.IndexFunc(s, unicode.IsLetter) >= 0
}
