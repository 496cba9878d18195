package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"cloud.google.com/go/storage"

	"github.com/tsawler/obsmatrix"
	"github.com/tsawler/obsmatrix/classify"
	"github.com/tsawler/obsmatrix/config"
	"github.com/tsawler/obsmatrix/export"
	"github.com/tsawler/obsmatrix/format"
	"github.com/tsawler/obsmatrix/ledger"
	"github.com/tsawler/obsmatrix/ledger/sqlite"
	"github.com/tsawler/obsmatrix/ocr"
	"github.com/tsawler/obsmatrix/pages"
	"github.com/tsawler/obsmatrix/tracking"
)

// closers releases the clients a command created, last first.
type closers []func() error

func (c *closers) Close() error {
	var errs []error
	for i := len(*c) - 1; i >= 0; i-- {
		errs = append(errs, (*c)[i]())
	}
	return errors.Join(errs...)
}

// newProcessor creates a Processor for document configured from cfg,
// with the OCR fallback when enabled.
func newProcessor(document string, cl *closers) (*obsmatrix.Processor, error) {
	p := obsmatrix.Open(document).Configure(cfg).Logger(logger)
	if !cfg.PDF.OCR.Enabled {
		return p, nil
	}

	client, err := ocr.NewWithLanguage(cfg.PDF.OCR.Language)
	if err != nil {
		return nil, fmt.Errorf("ocr: %w", err)
	}
	*cl = append(*cl, client.Close)

	renderer := pages.Pdftoppm{
		Binary:  cfg.PDF.OCR.Pdftoppm,
		DPI:     cfg.PDF.OCR.DPI,
		TempDir: cfg.TempDir,
	}
	return p.PDFOptions(
		pages.WithOCR(renderer, client),
		pages.WithPreprocess(ocr.DefaultPreprocessOptions()),
	), nil
}

func newClassifier(ctx context.Context, cl *closers) (classify.Classifier, error) {
	switch cfg.Classifier.Kind {
	case config.ClassifierVertex:
		v, err := classify.NewVertex(ctx, cfg.Classifier.Vertex.Project, cfg.Classifier.Vertex.Region, cfg.Classifier.Vertex.Model)
		if err != nil {
			return nil, err
		}
		*cl = append(*cl, v.Close)
		logger.Info("Using Vertex classifier.", "model", cfg.Classifier.Vertex.Model)
		return v, nil
	default:
		return classify.NewKeyword(cfg.Classifier.Keywords), nil
	}
}

// newExporter returns the configured exporters, or nil when none are.
func newExporter(ctx context.Context, cl *closers, folder bool) (export.Exporter, error) {
	var exporters []export.Exporter

	if folder {
		f, err := export.NewFolder(cfg.Export.Folder, logger)
		if err != nil {
			return nil, err
		}
		exporters = append(exporters, f)
	}

	if cfg.Export.Bucket != "" {
		client, err := storage.NewClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		*cl = append(*cl, client.Close)
		exporters = append(exporters, export.NewBucket(client, cfg.Export.Bucket, cfg.Export.Prefix, logger))
	}

	switch len(exporters) {
	case 0:
		return nil, nil
	case 1:
		return exporters[0], nil
	default:
		return export.Multi(exporters...), nil
	}
}

func newTracker(ctx context.Context, cl *closers) (tracking.Tracker, error) {
	if cfg.Tracking.Project == "" {
		return tracking.Nop{}, nil
	}
	client, err := tracking.NewFirestoreClient(ctx, cfg.Tracking.Project)
	if err != nil {
		return nil, err
	}
	*cl = append(*cl, client.Close)
	return tracking.NewFirestore(client, cfg.Tracking.Collection), nil
}

// sqliteRoutes routes each category to its own column of the database.
func sqliteRoutes(db string, categories []string) []ledger.Route {
	routes := make([]ledger.Route, 0, len(categories))
	for _, c := range categories {
		key := format.NormalizeKey(c)
		if key == "" {
			continue
		}
		routes = append(routes, ledger.Route{
			Key:       key,
			SourceRef: filepath.Base(db) + "#" + key,
			Open:      sqlite.Opener(db, key, cfg.Ledger.StartRow),
		})
	}
	return routes
}
