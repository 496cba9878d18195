package ledger

import (
	"context"
	"fmt"
	"slices"
	"strings"
)

// Normalize returns the form used to compare texts against the store.
func Normalize(s string) string {
	return strings.TrimSpace(s)
}

// Added is the set of normalized texts written by one Reconcile call.
type Added map[string]struct{}

// Contains reports whether text, once normalized, was added.
func (a Added) Contains(text string) bool {
	_, ok := a[Normalize(text)]
	return ok
}

// Len returns the number of added texts
func (a Added) Len() int {
	return len(a)
}

// Sorted returns the added texts in lexical order
func (a Added) Sorted() []string {
	out := make([]string, 0, len(a))
	for s := range a {
		out = append(out, s)
	}
	slices.Sort(out)
	return out
}

// Reconcile appends the texts that store does not already hold and returns
// their normalized forms.
//
// Texts are compared after Normalize. Empty texts, texts already present in
// the store and repeats within the batch are skipped; the rest are written
// in input order, in their original form, to successive rows below the last
// occupied row of the observation column. The store is saved only when
// something was written.
//
// Reconcile takes ownership of store and closes it on every path. A failure
// after the first write may leave the store partially updated; the caller
// should treat the whole batch as not reconciled.
func Reconcile(ctx context.Context, store Store, texts []string) (added Added, err error) {
	defer func() {
		if cerr := store.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close store: %w", cerr)
		}
	}()

	if len(texts) == 0 {
		return Added{}, ErrEmptyBatch
	}

	values, err := store.Values(ctx)
	if err != nil {
		return nil, fmt.Errorf("read observation column: %w", err)
	}

	existing := make(map[string]struct{}, len(values))
	for _, v := range values {
		if n := Normalize(v); n != "" {
			existing[n] = struct{}{}
		}
	}

	seen := make(Added)
	var queue []string
	for _, t := range texts {
		n := Normalize(t)
		if n == "" {
			continue
		}
		if _, ok := existing[n]; ok {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		queue = append(queue, t)
	}

	if len(queue) == 0 {
		return Added{}, nil
	}

	row := InsertionRow(store.StartRow(), values)
	for _, t := range queue {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := store.SetCell(ctx, row, t); err != nil {
			return nil, fmt.Errorf("write row %d: %w", row, err)
		}
		row++
	}

	if err := store.Save(ctx); err != nil {
		return nil, fmt.Errorf("save store: %w", err)
	}
	return seen, nil
}

// InsertionRow returns the row after the last non-empty value, scanning
// upward from the end of values. values[i] is row startRow+i. It returns
// startRow when no value is set.
func InsertionRow(startRow int, values []string) int {
	for i := len(values) - 1; i >= 0; i-- {
		if Normalize(values[i]) != "" {
			return startRow + i + 1
		}
	}
	return startRow
}
