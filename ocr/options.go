package ocr

import (
	"regexp"
	"strings"
)

// DefaultLanguage is the Tesseract language used for review documents.
const DefaultLanguage = "spa"

// PageSegMode represents page segmentation modes for OCR.
// These control how Tesseract analyzes the page layout.
type PageSegMode int

// Page segmentation modes, numbered as Tesseract numbers them.
const (
	PSM_AUTO_OSD      PageSegMode = 1  // Automatic with OSD
	PSM_AUTO          PageSegMode = 3  // Fully automatic (default)
	PSM_SINGLE_COLUMN PageSegMode = 4  // Single column of variable sizes
	PSM_SINGLE_BLOCK  PageSegMode = 6  // Single uniform block of text
	PSM_SPARSE_TEXT   PageSegMode = 11 // Find as much text as possible
)

// Options configures a Client.
type Options struct {
	// Language is a "+" separated list of Tesseract language codes,
	// e.g. "spa+eng". Default: "spa"
	Language string

	// PageSegMode selects the layout analysis. Default: PSM_AUTO
	PageSegMode PageSegMode

	// KeepHyphens disables joining words hyphenated across line breaks.
	KeepHyphens bool
}

// DefaultOptions returns the options used for scanned review reports.
func DefaultOptions() Options {
	return Options{
		Language:    DefaultLanguage,
		PageSegMode: PSM_AUTO,
	}
}

// Languages returns the individual language codes, falling back to
// DefaultLanguage when none are set.
func (o Options) Languages() []string {
	var out []string
	for _, l := range strings.Split(o.Language, "+") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	if len(out) == 0 {
		return []string{DefaultLanguage}
	}
	return out
}

var (
	hyphenBreak = regexp.MustCompile(`(\p{L})-[ \t]*\n[ \t]*(\p{Ll})`)
	blankRun    = regexp.MustCompile(`\n{3,}`)
)

// TidyText prepares recognized text for paragraph segmentation: form feeds
// are dropped, line ends are trimmed, runs of blank lines shrink to one and,
// unless keepHyphens is set, a word split by a hyphen at a line break is
// joined again.
func TidyText(s string, keepHyphens bool) string {
	s = strings.ReplaceAll(s, "\f", "\n")
	s = strings.ReplaceAll(s, "\r\n", "\n")

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	s = strings.Join(lines, "\n")

	if !keepHyphens {
		s = hyphenBreak.ReplaceAllString(s, "$1$2")
	}
	s = blankRun.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
