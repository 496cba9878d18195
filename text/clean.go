package text

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var (
	urlPattern      = regexp.MustCompile(`https?://\S+|www\.\S+`)
	nonWordPattern  = regexp.MustCompile(`[^a-z0-9\s]`)
	markupTagPrefix = regexp.MustCompile(`<[a-zA-Z/!]`)
)

// Cleaner prepares paragraph text for classification
type Cleaner struct {
	// KeepURLs disables URL removal.
	KeepURLs bool
}

// NewCleaner creates a Cleaner with default settings
func NewCleaner() *Cleaner {
	return &Cleaner{}
}

// Clean returns s lowercased, without markup, URLs, diacritics or
// punctuation, with whitespace collapsed. Empty input yields "".
func (c *Cleaner) Clean(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}

	s = strings.ToLower(s)
	s = StripMarkup(s)
	if !c.KeepURLs {
		s = urlPattern.ReplaceAllString(s, "")
	}
	s = FoldAccents(s)
	s = nonWordPattern.ReplaceAllString(s, "")
	return CollapseSpace(s)
}

// StripMarkup removes HTML tags from s and keeps the text between them.
// Input without anything that looks like a tag is returned unchanged.
func StripMarkup(s string) string {
	if !markupTagPrefix.MatchString(s) {
		return s
	}

	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return b.String()
		case html.TextToken:
			b.Write(z.Text())
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			b.WriteByte(' ')
		}
	}
}
