// Package memstore provides an in-memory ledger.Store.
package memstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/tsawler/obsmatrix/ledger"
)

// Store keeps an observation column in memory. Rows before the start row
// are never read. The zero value is not usable; create one with New.
type Store struct {
	mu       sync.Mutex
	startRow int
	cells    map[int]string
	maxRow   int
	closed   bool

	// Failure injection.
	FailValues error
	FailWrite  error
	FailSave   error

	Saves  int
	Closes int
}

// New creates a store whose column starts at startRow and holds values in
// successive rows.
func New(startRow int, values ...string) *Store {
	s := &Store{startRow: startRow, cells: make(map[int]string)}
	for i, v := range values {
		s.put(startRow+i, v)
	}
	return s
}

// Reopen clears the closed flag so the store can be reconciled again.
func (s *Store) Reopen() *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = false
	return s
}

// Extend marks row as occupied without touching the observation column, as
// when another column of the sheet holds data further down.
func (s *Store) Extend(row int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maxRow = max(s.maxRow, row)
}

// Opener returns a ledger.Opener that reopens s on each call.
func (s *Store) Opener() ledger.Opener {
	return func(context.Context) (ledger.Store, error) {
		return s.Reopen(), nil
	}
}

func (s *Store) put(row int, value string) {
	s.cells[row] = value
	s.maxRow = max(s.maxRow, row)
}

// StartRow implements ledger.Store.
func (s *Store) StartRow() int {
	return s.startRow
}

// Values implements ledger.Store.
func (s *Store) Values(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ledger.ErrClosed
	}
	if s.FailValues != nil {
		return nil, s.FailValues
	}
	if s.maxRow < s.startRow {
		return nil, nil
	}
	out := make([]string, 0, s.maxRow-s.startRow+1)
	for r := s.startRow; r <= s.maxRow; r++ {
		out = append(out, s.cells[r])
	}
	return out, nil
}

// SetCell implements ledger.Store.
func (s *Store) SetCell(ctx context.Context, row int, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ledger.ErrClosed
	}
	if s.FailWrite != nil {
		return s.FailWrite
	}
	if row < 1 {
		return fmt.Errorf("memstore: invalid row %d", row)
	}
	s.put(row, value)
	return nil
}

// Save implements ledger.Store.
func (s *Store) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ledger.ErrClosed
	}
	if s.FailSave != nil {
		return s.FailSave
	}
	s.Saves++
	return nil
}

// Close implements ledger.Store.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.Closes++
	return nil
}

// Cell returns the value at row
func (s *Store) Cell(row int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cells[row]
}

// Column returns the observation column from the start row through the
// last occupied row.
func (s *Store) Column() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for r := s.startRow; r <= s.maxRow; r++ {
		out = append(out, s.cells[r])
	}
	return out
}
