package resolver

import (
	"slices"
	"sort"

	"github.com/tsawler/obsmatrix/model"
)

// Unknown is the category of a page that no heading governs.
const Unknown = "UNKNOWN"

// Index is a read-only view of heading occurrences sorted by page.
// It is safe for concurrent use once built.
type Index struct {
	entries []model.HeadingOccurrence
	pages   []int // entries[i].Page, for the binary search
}

// NewIndex builds an index from heading occurrences. Occurrences with an
// empty category are discarded, the rest are stably sorted by page and
// adjacent duplicates are collapsed. The input slice is not modified.
func NewIndex(occurrences []model.HeadingOccurrence) *Index {
	entries := make([]model.HeadingOccurrence, 0, len(occurrences))
	for _, occ := range occurrences {
		if occ.Category == "" {
			continue
		}
		entries = append(entries, occ)
	}

	slices.SortStableFunc(entries, func(a, b model.HeadingOccurrence) int {
		return a.Page - b.Page
	})
	entries = slices.CompactFunc(entries, model.HeadingOccurrence.SameAs)

	pages := make([]int, len(entries))
	for i, e := range entries {
		pages[i] = e.Page
	}

	return &Index{entries: entries, pages: pages}
}

// Len returns the number of indexed occurrences
func (idx *Index) Len() int {
	return len(idx.entries)
}

// Occurrences returns a copy of the indexed occurrences in page order
func (idx *Index) Occurrences() []model.HeadingOccurrence {
	return slices.Clone(idx.entries)
}

// Resolve returns the category governing page, or Unknown when page precedes
// every heading or the index is empty.
func (idx *Index) Resolve(page int) string {
	occ, ok := idx.ResolveExt(page)
	if !ok {
		return Unknown
	}
	return occ.Category
}

// ResolveExt returns the governing occurrence for page, including its
// qualifier. The boolean is false when no heading governs page.
func (idx *Index) ResolveExt(page int) (model.HeadingOccurrence, bool) {
	// First position with a page greater than the query, minus one.
	i := sort.Search(len(idx.pages), func(i int) bool { return idx.pages[i] > page }) - 1
	if i < 0 {
		return model.HeadingOccurrence{}, false
	}
	return idx.entries[i], true
}

// Assign resolves a single page against occurrences.
// Build an Index when resolving more than one page.
func Assign(page int, occurrences []model.HeadingOccurrence) string {
	return NewIndex(occurrences).Resolve(page)
}
