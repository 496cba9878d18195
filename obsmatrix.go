// Package obsmatrix reconciles reviewer observations from a technical
// report into per-category observation spreadsheets.
//
// A run reads the report page by page, splits it into paragraphs, flags the
// paragraphs that are observations, assigns each observation the category
// of the heading that governs its page, and appends the new observations to
// the spreadsheet routed to that category. Spreadsheets are routed by the
// part of their filename before the first underscore.
//
// Basic usage:
//
//	resp, warnings, err := obsmatrix.Open("informe.pdf").
//	    Matrices("ELECTRICA_matriz.xlsx", "ESTRUCTURA_matriz.xlsx").
//	    Run(ctx)
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", obsmatrix.FormatWarnings(warnings))
//	}
//
// With options:
//
//	folder, _ := export.NewFolder("", logger)
//	resp, _, err := obsmatrix.Open("informe.pdf").
//	    Matrices(paths...).
//	    Classifier(vertex).
//	    Threshold(0.9).
//	    Export(folder).
//	    Logger(logger).
//	    Run(ctx)
//
// The originals passed to Matrices are never written. Reconciliation runs
// on working copies, which are exported and then removed.
package obsmatrix

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/tsawler/obsmatrix/format"
	"github.com/tsawler/obsmatrix/layout"
	"github.com/tsawler/obsmatrix/pages"
	"github.com/tsawler/obsmatrix/tracking"
)

var (
	// ErrNotPDF is returned when the document is not a PDF file.
	ErrNotPDF = errors.New("obsmatrix: document is not a PDF")

	// ErrInvalidMatrix is returned when a matrix is not an XLSX workbook.
	ErrInvalidMatrix = errors.New("obsmatrix: matrix is not a spreadsheet")
)

// Open returns a Processor for the PDF at filename.
//
// Example:
//
//	resp, warnings, err := obsmatrix.Open("informe.pdf").Matrices(paths...).Run(ctx)
func Open(filename string) *Processor {
	p := newProcessor(baseName(filename))
	p.filename = filename
	if !format.IsPDF(filename) {
		p.err = fmt.Errorf("%w: %s", ErrNotPDF, p.name)
	}
	return p
}

// FromProvider returns a Processor that reads page texts from provider.
// name identifies the document in logs and run records.
//
// Example:
//
//	doc := pages.FromStrings("ESPECIALIDAD ELECTRICA", "Se solicita corregir el plano.")
//	resp, _, err := obsmatrix.FromProvider("memo", doc).Store(route).Run(ctx)
func FromProvider(name string, provider pages.Provider) *Processor {
	p := newProcessor(name)
	p.provider = provider
	if provider == nil {
		p.err = errors.New("obsmatrix: nil page provider")
	}
	return p
}

func newProcessor(name string) *Processor {
	return &Processor{
		name:     name,
		headings: layout.DefaultHeadingConfig(),
		tracker:  tracking.Nop{},
		logger:   slog.Default(),
		now:      time.Now,
		options:  defaultOptions(),
	}
}

func baseName(path string) string {
	return filepath.Base(strings.ReplaceAll(path, `\`, "/"))
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil.
//
// Example:
//
//	report := obsmatrix.Must(obsmatrix.Open("informe.pdf").RunReport(ctx))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustRun is a helper that wraps a call to Run, Paragraphs or Headings and
// panics if the error is non-nil. It discards warnings.
//
// Example:
//
//	resp := obsmatrix.MustRun(obsmatrix.Open("informe.pdf").Run(ctx))
func MustRun[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
