// Package layout recovers document structure from page-indexed raw text.
//
// Two independent passes run over the same pages:
//
//   - [Segmenter] groups lines into paragraphs
//   - [HeadingExtractor] finds category headings and normalizes them
//
// # Paragraph Segmentation
//
// Segmentation is a forward, two-state pass over each page. Non-blank lines
// accumulate in a buffer joined by single spaces; a line ending in terminal
// punctuation closes the paragraph. Whatever remains at the end of a page is
// emitted as its own paragraph, so a paragraph never spans two pages:
//
//	paragraphs := layout.Segment(doc.Pages)
//
// # Heading Extraction
//
// Each line is tested against an anchored heading pattern (optional outline
// number, keyword, name) and then against an unanchored fallback. The text
// after the keyword goes through [text.AbbreviationTable.Normalize]:
//
//	occurrences := layout.ExtractHeadings(doc.Pages)
//
// Consecutive identical occurrences (same page, category and qualifier) are
// collapsed. Repeats separated by a different heading are kept.
//
// # Configuration
//
// The heading keyword and abbreviation table can be replaced:
//
//	ex := layout.NewHeadingExtractorWithConfig(layout.HeadingConfig{
//	    Keyword:       "SPECIALTY",
//	    Abbreviations: text.DefaultAbbreviations(),
//	})
package layout
