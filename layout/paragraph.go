package layout

import (
	"strings"
	"unicode/utf8"

	"github.com/tsawler/obsmatrix/model"
)

// DefaultTerminators are the characters that close a paragraph when they end
// a line.
const DefaultTerminators = ".:!?"

// Segmenter splits page text into paragraphs
type Segmenter struct {
	// Terminators lists the characters that end a paragraph when a line
	// ends with one of them.
	Terminators string
}

// NewSegmenter creates a Segmenter using DefaultTerminators
func NewSegmenter() *Segmenter {
	return &Segmenter{Terminators: DefaultTerminators}
}

// Segment splits pages into paragraphs with a default Segmenter
func Segment(pages []model.PageText) []model.Paragraph {
	return NewSegmenter().Segment(pages)
}

// Segment returns the paragraphs of every page in page order and, within a
// page, in emission order.
func (s *Segmenter) Segment(pages []model.PageText) []model.Paragraph {
	var paragraphs []model.Paragraph
	for _, page := range pages {
		paragraphs = s.segmentPage(page, paragraphs)
	}
	return paragraphs
}

// SegmentPage returns the paragraphs of a single page
func (s *Segmenter) SegmentPage(page model.PageText) []model.Paragraph {
	return s.segmentPage(page, nil)
}

func (s *Segmenter) segmentPage(page model.PageText, out []model.Paragraph) []model.Paragraph {
	var buf strings.Builder

	flush := func() {
		if buf.Len() == 0 {
			return
		}
		out = append(out, model.Paragraph{Page: page.Number, Text: buf.String()})
		buf.Reset()
	}

	for _, line := range page.Lines() {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if buf.Len() > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(line)

		if s.terminates(line) {
			flush()
		}
	}

	// Pages never carry an open paragraph forward.
	flush()
	return out
}

// terminates reports whether a trimmed, non-empty line closes a paragraph.
func (s *Segmenter) terminates(line string) bool {
	terminators := s.Terminators
	if terminators == "" {
		terminators = DefaultTerminators
	}
	last, _ := utf8.DecodeLastRuneInString(line)
	return strings.ContainsRune(terminators, last)
}
