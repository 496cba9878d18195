// Package sqlite provides a ledger.Store backed by a SQLite database.
//
// One database file can hold the observation columns of many categories;
// each is addressed by name. Writes are buffered in a transaction that Save
// commits and Close discards.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/tsawler/obsmatrix/ledger"
)

// Store is an observation column stored in the observations table.
type Store struct {
	db       *sql.DB
	tx       *sql.Tx
	name     string
	startRow int
	closed   bool
}

// Open opens the database at path with WAL mode enabled and returns the
// column named name. startRow below 1 defaults to ledger.DefaultStartRow.
func Open(ctx context.Context, path, name string, startRow int) (*Store, error) {
	if startRow < 1 {
		startRow = ledger.DefaultStartRow
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, name: name, startRow: startRow}, nil
}

// Opener returns a ledger.Opener for the named column.
func Opener(path, name string, startRow int) ledger.Opener {
	return func(ctx context.Context) (ledger.Store, error) {
		return Open(ctx, path, name, startRow)
	}
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS observations (
	ledger TEXT NOT NULL,
	row INTEGER NOT NULL,
	value TEXT NOT NULL,
	PRIMARY KEY(ledger, row)
);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// StartRow implements ledger.Store.
func (s *Store) StartRow() int {
	return s.startRow
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (s *Store) q() querier {
	if s.tx != nil {
		return s.tx
	}
	return s.db
}

// Values implements ledger.Store.
func (s *Store) Values(ctx context.Context) ([]string, error) {
	if s.closed {
		return nil, ledger.ErrClosed
	}

	rows, err := s.q().QueryContext(ctx,
		`SELECT row, value FROM observations WHERE ledger = ? AND row >= ? ORDER BY row`,
		s.name, s.startRow)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var (
			row   int
			value string
		)
		if err := rows.Scan(&row, &value); err != nil {
			return nil, err
		}
		for len(out) < row-s.startRow {
			out = append(out, "")
		}
		out = append(out, value)
	}
	return out, rows.Err()
}

// SetCell implements ledger.Store.
func (s *Store) SetCell(ctx context.Context, row int, value string) error {
	if s.closed {
		return ledger.ErrClosed
	}
	if row < 1 {
		return fmt.Errorf("sqlite: invalid row %d", row)
	}

	if s.tx == nil {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		s.tx = tx
	}

	_, err := s.tx.ExecContext(ctx, `
INSERT INTO observations (ledger, row, value) VALUES (?, ?, ?)
ON CONFLICT(ledger, row) DO UPDATE SET value = excluded.value`,
		s.name, row, value)
	return err
}

// Save implements ledger.Store.
func (s *Store) Save(ctx context.Context) error {
	if s.closed {
		return ledger.ErrClosed
	}
	if s.tx == nil {
		return nil
	}
	err := s.tx.Commit()
	s.tx = nil
	return err
}

// Close implements ledger.Store. Uncommitted writes are rolled back.
func (s *Store) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	var rbErr error
	if s.tx != nil {
		if err := s.tx.Rollback(); err != nil {
			rbErr = fmt.Errorf("rollback: %w", err)
		}
		s.tx = nil
	}
	return errors.Join(rbErr, s.db.Close())
}
