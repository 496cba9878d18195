package model

import "strings"

// Label is the classification assigned to a paragraph
type Label string

const (
	// LabelObservation flags a paragraph as an observation that belongs in a
	// category spreadsheet.
	LabelObservation Label = "observacion"

	// LabelOther marks every paragraph that is not an observation.
	LabelOther Label = "No observacion"
)

// IsObservation reports whether the label flags an observation. The
// comparison ignores case so classifier outputs such as "Observacion" match.
func (l Label) IsObservation() bool {
	return strings.EqualFold(strings.TrimSpace(string(l)), string(LabelObservation))
}

// Paragraph is a run of text lines from a single page.
type Paragraph struct {
	Page int    // 1-indexed page the paragraph came from
	Text string // Trimmed, non-empty paragraph text

	// Set by the orchestrator after segmentation.
	Label      Label
	Category   string // Canonical category; empty when never assigned
	SourceRef  string // Spreadsheet the paragraph was routed to; empty when none
	Reconciled bool   // True when the text was appended to SourceRef
}

// HeadingOccurrence is one category heading detected on a page.
type HeadingOccurrence struct {
	Page      int    // 1-indexed page number
	Category  string // Canonical category name (uppercase, no diacritics)
	Qualifier string // Canonical qualifier; empty when absent
	Raw       string // Cleaned heading text before canonicalization
}

// SameAs reports whether two occurrences share page, category and qualifier.
// Raw is not compared.
func (h HeadingOccurrence) SameAs(o HeadingOccurrence) bool {
	return h.Page == o.Page && h.Category == o.Category && h.Qualifier == o.Qualifier
}
