package ledger

import (
	"context"
	"errors"
)

var (
	// ErrEmptyBatch is returned when Reconcile is called without texts.
	ErrEmptyBatch = errors.New("ledger: empty batch")

	// ErrSheetNotFound is returned when a store's observation sheet is missing.
	ErrSheetNotFound = errors.New("ledger: sheet not found")

	// ErrClosed is returned by stores used after Close.
	ErrClosed = errors.New("ledger: store closed")
)

// Default layout of a reference spreadsheet: column G of "Matriz Obs",
// starting at row 13.
const (
	DefaultSheet    = "Matriz Obs"
	DefaultColumn   = 7
	DefaultStartRow = 13
)

// Store is an external tabular store with a single observation column.
// Rows are 1-based.
type Store interface {
	// StartRow returns the first row of the observation column.
	StartRow() int

	// Values returns the observation column from StartRow through the
	// store's last occupied row, in row order. Element i holds row
	// StartRow+i; empty cells are empty strings. The slice is empty when
	// the store has no rows at or after StartRow.
	Values(ctx context.Context) ([]string, error)

	// SetCell writes value into the observation column at row.
	SetCell(ctx context.Context, row int, value string) error

	// Save persists pending writes.
	Save(ctx context.Context) error

	// Close releases the store. It is safe to call more than once.
	Close() error
}

// Opener opens a store on demand.
type Opener func(ctx context.Context) (Store, error)
