package model

import "strings"

// PageText is the raw text extracted from a single page
type PageText struct {
	Number int    // 1-indexed page number
	Text   string // Raw text, lines separated by '\n'
}

// Lines splits the page text into lines. Carriage returns are dropped so
// text produced on Windows splits the same way.
func (p PageText) Lines() []string {
	if p.Text == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(p.Text, "\r", ""), "\n")
}

// IsBlank reports whether the page holds only whitespace
func (p PageText) IsBlank() bool {
	return strings.TrimSpace(p.Text) == ""
}
