package layout

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/tsawler/obsmatrix/model"
	"github.com/tsawler/obsmatrix/text"
)

// DefaultHeadingKeyword introduces a category heading in review documents.
const DefaultHeadingKeyword = "ESPECIALIDAD"

// HeadingConfig holds configuration for heading extraction
type HeadingConfig struct {
	// Keyword is the word that introduces a category heading.
	// Matching ignores case. Default: "ESPECIALIDAD"
	Keyword string

	// Abbreviations rewrites short category codes.
	// Default: text.DefaultAbbreviations()
	Abbreviations text.AbbreviationTable
}

// DefaultHeadingConfig returns the default heading configuration
func DefaultHeadingConfig() HeadingConfig {
	return HeadingConfig{
		Keyword:       DefaultHeadingKeyword,
		Abbreviations: text.DefaultAbbreviations(),
	}
}

// RejectedHeading is a keyword line whose remainder did not normalize to a
// category.
type RejectedHeading struct {
	Page int
	Line string
}

// HeadingLayout is the outcome of a heading extraction pass
type HeadingLayout struct {
	// Occurrences are the accepted headings in page order.
	Occurrences []model.HeadingOccurrence

	// Rejected are keyword lines discarded by normalization.
	Rejected []RejectedHeading
}

// Categories returns the distinct categories in first-seen order
func (l *HeadingLayout) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, occ := range l.Occurrences {
		if !seen[occ.Category] {
			seen[occ.Category] = true
			out = append(out, occ.Category)
		}
	}
	return out
}

// HeadingExtractor finds category headings in page text
type HeadingExtractor struct {
	config   HeadingConfig
	primary  *regexp.Regexp
	fallback *regexp.Regexp
}

// NewHeadingExtractor creates an extractor with the default configuration
func NewHeadingExtractor() *HeadingExtractor {
	return NewHeadingExtractorWithConfig(DefaultHeadingConfig())
}

// NewHeadingExtractorWithConfig creates an extractor with a custom
// configuration. Empty fields fall back to their defaults.
func NewHeadingExtractorWithConfig(config HeadingConfig) *HeadingExtractor {
	if strings.TrimSpace(config.Keyword) == "" {
		config.Keyword = DefaultHeadingKeyword
	}
	if config.Abbreviations == nil {
		config.Abbreviations = text.DefaultAbbreviations()
	}

	kw := regexp.QuoteMeta(strings.TrimSpace(config.Keyword))
	return &HeadingExtractor{
		config:   config,
		primary:  regexp.MustCompile(fmt.Sprintf(`(?i)^\s*(?:\d+(?:\.\d+)*\s+)?%s\s+(.+?)\s*$`, kw)),
		fallback: regexp.MustCompile(fmt.Sprintf(`(?i)%s\s+(.+)`, kw)),
	}
}

// ExtractHeadings extracts heading occurrences with the default extractor
func ExtractHeadings(pages []model.PageText) []model.HeadingOccurrence {
	return NewHeadingExtractor().Extract(pages)
}

// Extract returns the heading occurrences found in pages
func (e *HeadingExtractor) Extract(pages []model.PageText) []model.HeadingOccurrence {
	return e.Analyze(pages).Occurrences
}

// Analyze scans every line of every page and returns accepted occurrences
// along with the keyword lines that normalization rejected.
func (e *HeadingExtractor) Analyze(pages []model.PageText) *HeadingLayout {
	result := &HeadingLayout{}

	for _, page := range pages {
		for _, raw := range page.Lines() {
			line := strings.TrimSpace(raw)
			if line == "" {
				continue
			}

			remainder, ok := e.match(line)
			if !ok {
				continue
			}

			h := e.config.Abbreviations.Normalize(remainder)
			if !h.Valid() {
				result.Rejected = append(result.Rejected, RejectedHeading{Page: page.Number, Line: line})
				continue
			}

			occ := model.HeadingOccurrence{
				Page:      page.Number,
				Category:  h.Category,
				Qualifier: h.Qualifier,
				Raw:       h.Cleaned,
			}
			if n := len(result.Occurrences); n > 0 && result.Occurrences[n-1].SameAs(occ) {
				continue
			}
			result.Occurrences = append(result.Occurrences, occ)
		}
	}

	// Stable, so in-page order survives.
	slices.SortStableFunc(result.Occurrences, func(a, b model.HeadingOccurrence) int {
		return a.Page - b.Page
	})
	return result
}

// MatchLine reports whether a trimmed line is a heading line and returns
// the text that follows the keyword.
func (e *HeadingExtractor) MatchLine(line string) (string, bool) {
	return e.match(strings.TrimSpace(line))
}

func (e *HeadingExtractor) match(line string) (string, bool) {
	if m := e.primary.FindStringSubmatch(line); m != nil {
		return strings.TrimSpace(m[1]), true
	}
	if m := e.fallback.FindStringSubmatch(line); m != nil {
		return strings.TrimSpace(m[1]), true
	}
	return "", false
}
