package pages

import (
	"context"
	"errors"
	"fmt"

	"github.com/tsawler/obsmatrix/model"
)

var (
	// ErrEmptyDocument is returned when a document yields no page text.
	ErrEmptyDocument = errors.New("pages: document has no text")

	// ErrUnreadable is returned when a document cannot be parsed.
	ErrUnreadable = errors.New("pages: document is unreadable")
)

// Provider yields the page texts of one document in ascending page order.
type Provider interface {
	Pages(ctx context.Context) ([]model.PageText, error)
}

// Func adapts a function to a Provider.
type Func func(ctx context.Context) ([]model.PageText, error)

// Pages implements Provider.
func (f Func) Pages(ctx context.Context) ([]model.PageText, error) {
	return f(ctx)
}

// Static serves page texts held in memory.
type Static []model.PageText

// FromStrings numbers texts from page 1.
func FromStrings(texts ...string) Static {
	s := make(Static, len(texts))
	for i, t := range texts {
		s[i] = model.PageText{Number: i + 1, Text: t}
	}
	return s
}

// Pages implements Provider. Blank pages are skipped; pages out of
// ascending order or numbered below 1 are rejected.
func (s Static) Pages(ctx context.Context) ([]model.PageText, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc := model.NewDocument("")
	for _, p := range s {
		if p.IsBlank() {
			continue
		}
		if !doc.AddPage(p.Number, p.Text) {
			return nil, fmt.Errorf("%w: page %d out of order", ErrUnreadable, p.Number)
		}
	}
	return doc.Pages, nil
}
