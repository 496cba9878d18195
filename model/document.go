package model

// Document is an ordered collection of page texts for one source document.
type Document struct {
	// Name identifies the source (usually the base filename).
	Name string

	// Pages holds page texts in ascending page order.
	Pages []PageText
}

// NewDocument creates a new empty document
func NewDocument(name string) *Document {
	return &Document{
		Name:  name,
		Pages: make([]PageText, 0),
	}
}

// AddPage appends a page. Pages must be added in ascending order; a page
// whose number does not exceed the last one is ignored.
func (d *Document) AddPage(number int, text string) bool {
	if number < 1 {
		return false
	}
	if n := len(d.Pages); n > 0 && d.Pages[n-1].Number >= number {
		return false
	}
	d.Pages = append(d.Pages, PageText{Number: number, Text: text})
	return true
}

// GetPage returns a page by number (1-indexed), or nil if absent
func (d *Document) GetPage(number int) *PageText {
	for i := range d.Pages {
		if d.Pages[i].Number == number {
			return &d.Pages[i]
		}
	}
	return nil
}

// PageCount returns the number of pages carrying text
func (d *Document) PageCount() int {
	return len(d.Pages)
}

// IsEmpty reports whether the document has no page with non-blank text.
func (d *Document) IsEmpty() bool {
	for _, p := range d.Pages {
		if !p.IsBlank() {
			return false
		}
	}
	return true
}
