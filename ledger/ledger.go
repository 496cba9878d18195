package ledger

import (
	"context"
	"fmt"

	"github.com/tsawler/obsmatrix/format"
)

// Route binds a category key to the store that records its observations.
type Route struct {
	// Key is the normalized category key, see format.NormalizeKey.
	Key string

	// SourceRef identifies the store to callers, typically the base name
	// of the spreadsheet as it was uploaded.
	SourceRef string

	// Path is the location of the working copy, when the store is a file.
	Path string

	// Open opens the store.
	Open Opener
}

// Ledger routes categories to their stores.
// The first route registered for a key wins.
type Ledger struct {
	routes map[string]Route
	order  []string
}

// New creates an empty Ledger
func New() *Ledger {
	return &Ledger{routes: make(map[string]Route)}
}

// Add registers route under its normalized key. It returns false, leaving
// the ledger unchanged, when the key is empty or already taken.
func (l *Ledger) Add(route Route) bool {
	route.Key = format.NormalizeKey(route.Key)
	if route.Key == "" {
		return false
	}
	if _, ok := l.routes[route.Key]; ok {
		return false
	}
	l.routes[route.Key] = route
	l.order = append(l.order, route.Key)
	return true
}

// Lookup returns the route for category, normalizing it the same way keys
// are normalized.
func (l *Ledger) Lookup(category string) (Route, bool) {
	r, ok := l.routes[format.NormalizeKey(category)]
	return r, ok
}

// Routes returns the registered routes in registration order
func (l *Ledger) Routes() []Route {
	out := make([]Route, 0, len(l.order))
	for _, k := range l.order {
		out = append(out, l.routes[k])
	}
	return out
}

// Len returns the number of routes
func (l *Ledger) Len() int {
	return len(l.order)
}

// Reconcile opens the store routed to category and reconciles texts
// against it. The boolean is false when no route matches; that is not an
// error.
func (l *Ledger) Reconcile(ctx context.Context, category string, texts []string) (Added, bool, error) {
	route, ok := l.Lookup(category)
	if !ok {
		return Added{}, false, nil
	}

	store, err := route.Open(ctx)
	if err != nil {
		return nil, true, fmt.Errorf("open %s: %w", route.SourceRef, err)
	}

	added, err := Reconcile(ctx, store, texts)
	if err != nil {
		return nil, true, fmt.Errorf("reconcile %s: %w", route.SourceRef, err)
	}
	return added, true, nil
}
