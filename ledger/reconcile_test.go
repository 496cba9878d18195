package ledger_test

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/tsawler/obsmatrix/ledger"
	"github.com/tsawler/obsmatrix/ledger/memstore"
)

// TestReconcile_ScenarioC tests the basic append against existing entries
func TestReconcile_ScenarioC(t *testing.T) {
	store := memstore.New(13, "a", "b")

	added, err := ledger.Reconcile(context.Background(), store, []string{"a", "c", "c", "  "})
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}

	if got := added.Sorted(); !slices.Equal(got, []string{"c"}) {
		t.Errorf("added = %q, want [c]", got)
	}
	if got := store.Column(); !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("column = %q, want [a b c]", got)
	}
	if store.Cell(15) != "c" {
		t.Errorf("row 15 = %q, want c", store.Cell(15))
	}
	if store.Saves != 1 || store.Closes != 1 {
		t.Errorf("saves=%d closes=%d, want 1 and 1", store.Saves, store.Closes)
	}
}

func TestReconcile_Idempotent(t *testing.T) {
	ctx := context.Background()
	store := memstore.New(13, "existing")
	texts := []string{"one", "two", "existing", "one"}

	first, err := ledger.Reconcile(ctx, store, texts)
	if err != nil {
		t.Fatalf("first Reconcile() error = %v", err)
	}
	if first.Len() != 2 {
		t.Errorf("first call added %d, want 2", first.Len())
	}

	second, err := ledger.Reconcile(ctx, store.Reopen(), texts)
	if err != nil {
		t.Fatalf("second Reconcile() error = %v", err)
	}
	if second.Len() != 0 {
		t.Errorf("second call added %q, want none", second.Sorted())
	}
	if store.Saves != 1 {
		t.Errorf("saves = %d, want 1 (nothing queued on second call)", store.Saves)
	}
}

func TestReconcile_NeverDuplicates(t *testing.T) {
	ctx := context.Background()
	store := memstore.New(1)

	batches := [][]string{
		{"x", " y", "x "},
		{"y", "z", "  z  "},
		{"w", "x", "z", "w"},
	}
	for _, b := range batches {
		if _, err := ledger.Reconcile(ctx, store.Reopen(), b); err != nil {
			t.Fatalf("Reconcile(%q) error = %v", b, err)
		}
	}

	seen := map[string]bool{}
	for _, v := range store.Column() {
		n := ledger.Normalize(v)
		if seen[n] {
			t.Errorf("%q appears twice in %q", n, store.Column())
		}
		seen[n] = true
	}
	if len(seen) != 4 {
		t.Errorf("column holds %d distinct texts, want 4", len(seen))
	}
}

func TestReconcile_PreservesOriginalForm(t *testing.T) {
	store := memstore.New(13)
	added, err := ledger.Reconcile(context.Background(), store, []string{"  padded text  "})
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	if store.Cell(13) != "  padded text  " {
		t.Errorf("row 13 = %q, want original form", store.Cell(13))
	}
	if !added.Contains("padded text") || !added.Contains("  padded text  ") {
		t.Errorf("added = %q, want normalized padded text", added.Sorted())
	}
}

func TestReconcile_InputOrder(t *testing.T) {
	store := memstore.New(5, "old")
	if _, err := ledger.Reconcile(context.Background(), store, []string{"c", "a", "b"}); err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	if got := store.Column(); !slices.Equal(got, []string{"old", "c", "a", "b"}) {
		t.Errorf("column = %q", got)
	}
}

func TestReconcile_NothingNew(t *testing.T) {
	store := memstore.New(13, "a", "b")
	added, err := ledger.Reconcile(context.Background(), store, []string{"a", " b ", ""})
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	if added.Len() != 0 {
		t.Errorf("added = %q, want none", added.Sorted())
	}
	if store.Saves != 0 {
		t.Errorf("saves = %d, want 0", store.Saves)
	}
	if store.Closes != 1 {
		t.Errorf("closes = %d, want 1", store.Closes)
	}
}

func TestReconcile_EmptyBatch(t *testing.T) {
	store := memstore.New(13)
	_, err := ledger.Reconcile(context.Background(), store, nil)
	if !errors.Is(err, ledger.ErrEmptyBatch) {
		t.Errorf("Reconcile(nil) error = %v, want ErrEmptyBatch", err)
	}
	if store.Closes != 1 {
		t.Errorf("closes = %d, want 1", store.Closes)
	}
}

func TestReconcile_InsertsAfterLastOccupiedRow(t *testing.T) {
	// Row 15 holds only whitespace; row 17 is occupied in another column.
	store := memstore.New(13, "a", "b", "   ")
	store.Extend(17)

	if _, err := ledger.Reconcile(context.Background(), store, []string{"c"}); err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	if store.Cell(15) != "c" {
		t.Errorf("row 15 = %q, want c", store.Cell(15))
	}
}

func TestReconcile_StoreFailures(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name  string
		setup func(*memstore.Store)
	}{
		{"read", func(s *memstore.Store) { s.FailValues = boom }},
		{"write", func(s *memstore.Store) { s.FailWrite = boom }},
		{"save", func(s *memstore.Store) { s.FailSave = boom }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memstore.New(13, "a")
			tt.setup(store)

			added, err := ledger.Reconcile(context.Background(), store, []string{"b"})
			if !errors.Is(err, boom) {
				t.Errorf("error = %v, want boom", err)
			}
			if added != nil {
				t.Errorf("added = %v, want nil", added)
			}
			if store.Closes != 1 {
				t.Errorf("closes = %d, want 1", store.Closes)
			}
		})
	}
}

func TestReconcile_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := memstore.New(13)
	_, err := ledger.Reconcile(ctx, store, []string{"a"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if store.Cell(13) != "" || store.Saves != 0 {
		t.Error("cancelled reconcile wrote to the store")
	}
}

func TestInsertionRow(t *testing.T) {
	tests := []struct {
		name   string
		start  int
		values []string
		want   int
	}{
		{"empty", 13, nil, 13},
		{"all blank", 13, []string{"", " "}, 13},
		{"full", 13, []string{"a", "b"}, 15},
		{"trailing blanks", 13, []string{"a", "", ""}, 14},
		{"gap kept", 1, []string{"a", "", "c"}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ledger.InsertionRow(tt.start, tt.values); got != tt.want {
				t.Errorf("InsertionRow() = %d, want %d", got, tt.want)
			}
		})
	}
}
