package xlsx

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/tsawler/obsmatrix/ledger"
)

// Option configures a Matrix
type Option func(*Matrix)

// WithSheet sets the observation sheet (default "Matriz Obs")
func WithSheet(name string) Option {
	return func(m *Matrix) {
		if name != "" {
			m.sheet = name
		}
	}
}

// WithColumn sets the 1-based observation column (default 7, column G)
func WithColumn(col int) Option {
	return func(m *Matrix) {
		if col > 0 {
			m.column = col
		}
	}
}

// WithColumnName sets the observation column by letter, e.g. "G".
// Invalid names are ignored.
func WithColumnName(name string) Option {
	return func(m *Matrix) {
		if col, err := excelize.ColumnNameToNumber(name); err == nil {
			m.column = col
		}
	}
}

// WithStartRow sets the first observation row (default 13)
func WithStartRow(row int) Option {
	return func(m *Matrix) {
		if row > 0 {
			m.startRow = row
		}
	}
}

// Matrix is an open reference spreadsheet.
type Matrix struct {
	file     *excelize.File
	path     string
	sheet    string
	column   int
	startRow int
	closed   bool
}

// Open opens the workbook at path and checks that the observation sheet
// exists. The returned error wraps ledger.ErrSheetNotFound when it does not.
func Open(path string, opts ...Option) (*Matrix, error) {
	m := &Matrix{
		path:     path,
		sheet:    ledger.DefaultSheet,
		column:   ledger.DefaultColumn,
		startRow: ledger.DefaultStartRow,
	}
	for _, opt := range opts {
		opt(m)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}

	idx, err := f.GetSheetIndex(m.sheet)
	if err != nil || idx < 0 {
		f.Close()
		return nil, fmt.Errorf("%w: %q in %s", ledger.ErrSheetNotFound, m.sheet, path)
	}

	m.file = f
	return m, nil
}

// Opener returns a ledger.Opener that opens path with opts.
func Opener(path string, opts ...Option) ledger.Opener {
	return func(context.Context) (ledger.Store, error) {
		return Open(path, opts...)
	}
}

// Path returns the workbook location
func (m *Matrix) Path() string {
	return m.path
}

// Sheet returns the observation sheet name
func (m *Matrix) Sheet() string {
	return m.sheet
}

// Column returns the 1-based observation column
func (m *Matrix) Column() int {
	return m.column
}

// StartRow implements ledger.Store.
func (m *Matrix) StartRow() int {
	return m.startRow
}

// Values implements ledger.Store. The extent is the last row holding data
// in any column of the sheet.
func (m *Matrix) Values(ctx context.Context) ([]string, error) {
	if m.closed {
		return nil, ledger.ErrClosed
	}

	rows, err := m.file.GetRows(m.sheet)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", m.sheet, err)
	}

	if len(rows) < m.startRow {
		return nil, nil
	}

	out := make([]string, 0, len(rows)-m.startRow+1)
	for r := m.startRow; r <= len(rows); r++ {
		row := rows[r-1]
		if len(row) >= m.column {
			out = append(out, row[m.column-1])
		} else {
			out = append(out, "")
		}
	}
	return out, nil
}

// SetCell implements ledger.Store.
func (m *Matrix) SetCell(ctx context.Context, row int, value string) error {
	if m.closed {
		return ledger.ErrClosed
	}

	cell, err := excelize.CoordinatesToCellName(m.column, row)
	if err != nil {
		return err
	}
	return m.file.SetCellStr(m.sheet, cell, value)
}

// Cell returns the observation value at row
func (m *Matrix) Cell(row int) (string, error) {
	if m.closed {
		return "", ledger.ErrClosed
	}

	cell, err := excelize.CoordinatesToCellName(m.column, row)
	if err != nil {
		return "", err
	}
	return m.file.GetCellValue(m.sheet, cell)
}

// Save implements ledger.Store. The workbook is written back to its path.
func (m *Matrix) Save(ctx context.Context) error {
	if m.closed {
		return ledger.ErrClosed
	}
	return m.file.Save()
}

// Close implements ledger.Store.
func (m *Matrix) Close() error {
	if m.closed {
		return nil
	}
	m.closed = true
	return m.file.Close()
}
