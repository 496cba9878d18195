package memstore

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/tsawler/obsmatrix/ledger"
)

func TestStore_Values(t *testing.T) {
	ctx := context.Background()
	s := New(3, "a", "b")
	s.Extend(6)

	got, err := s.Values(ctx)
	if err != nil {
		t.Fatalf("Values() error = %v", err)
	}
	if !slices.Equal(got, []string{"a", "b", "", ""}) {
		t.Errorf("Values() = %q", got)
	}

	if got, _ := New(3).Values(ctx); len(got) != 0 {
		t.Errorf("empty Values() = %q", got)
	}
}

func TestStore_ClosedAndReopen(t *testing.T) {
	ctx := context.Background()
	s := New(1)
	s.Close()

	if err := s.SetCell(ctx, 1, "x"); !errors.Is(err, ledger.ErrClosed) {
		t.Errorf("SetCell() after Close error = %v, want ErrClosed", err)
	}

	store, err := s.Opener()(ctx)
	if err != nil {
		t.Fatalf("Opener() error = %v", err)
	}
	if err := store.SetCell(ctx, 1, "x"); err != nil {
		t.Errorf("SetCell() after reopen error = %v", err)
	}
	if s.Cell(1) != "x" {
		t.Errorf("Cell(1) = %q, want x", s.Cell(1))
	}
}

func TestStore_InvalidRow(t *testing.T) {
	if err := New(1).SetCell(context.Background(), 0, "x"); err == nil {
		t.Error("SetCell(0) returned nil error")
	}
}
