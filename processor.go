package obsmatrix

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/tsawler/obsmatrix/classify"
	"github.com/tsawler/obsmatrix/config"
	"github.com/tsawler/obsmatrix/export"
	"github.com/tsawler/obsmatrix/format"
	"github.com/tsawler/obsmatrix/layout"
	"github.com/tsawler/obsmatrix/ledger"
	"github.com/tsawler/obsmatrix/model"
	"github.com/tsawler/obsmatrix/pages"
	"github.com/tsawler/obsmatrix/resolver"
	"github.com/tsawler/obsmatrix/text"
	"github.com/tsawler/obsmatrix/tracking"
	"github.com/tsawler/obsmatrix/xlsx"
)

// Processor provides a fluent interface for configuring and running one
// document. Each configuration method returns a new Processor, so a base
// configuration can be shared and specialized per document.
type Processor struct {
	// Source
	name     string
	filename string
	provider pages.Provider

	// Stores
	matrices []string
	routes   []ledger.Route

	// Collaborators
	classifier classify.Classifier
	exporter   export.Exporter
	tracker    tracking.Tracker
	logger     *slog.Logger
	now        func() time.Time

	// Configuration
	headings   layout.HeadingConfig
	matrixOpts []xlsx.Option
	pdfOpts    []pages.PDFOption
	options    RunOptions

	// Accumulated error (fail-fast)
	err error
}

// Exported records where one routed spreadsheet was exported.
type Exported struct {
	Key       string
	SourceRef string
	Dest      string
}

// Report is the complete outcome of a run.
type Report struct {
	RunID    string
	Response *model.Response
	Warnings []Warning

	// Headings are the accepted heading occurrences in page order.
	Headings []model.HeadingOccurrence

	// Categories lists the categories with observations, first seen first,
	// one per routing key.
	Categories []string

	Exports  []Exported
	Failures []*CategoryFailure

	PageCount        int
	ParagraphCount   int
	ObservationCount int
}

func (r *Report) warn(w Warning) {
	r.Warnings = append(r.Warnings, w)
}

// clone creates a shallow copy of the Processor with copies of its slices.
func (p *Processor) clone() *Processor {
	return &Processor{
		name:       p.name,
		filename:   p.filename,
		provider:   p.provider,
		matrices:   append([]string(nil), p.matrices...),
		routes:     append([]ledger.Route(nil), p.routes...),
		classifier: p.classifier,
		exporter:   p.exporter,
		tracker:    p.tracker,
		logger:     p.logger,
		now:        p.now,
		headings: layout.HeadingConfig{
			Keyword:       p.headings.Keyword,
			Abbreviations: append(text.AbbreviationTable(nil), p.headings.Abbreviations...),
		},
		matrixOpts: append([]xlsx.Option(nil), p.matrixOpts...),
		pdfOpts:    append([]pages.PDFOption(nil), p.pdfOpts...),
		options:    p.options.clone(),
		err:        p.err,
	}
}

// ============================================================================
// Configuration Methods (return new Processor instance)
// ============================================================================

// Matrices adds observation spreadsheets. Each is routed by the part of its
// base name before the first underscore; the first spreadsheet per key
// wins. Multiple calls are cumulative.
//
// Example:
//
//	obsmatrix.Open("informe.pdf").Matrices("ELECTRICA_v3.xlsx", "BIM_v1.xlsx")
func (p *Processor) Matrices(paths ...string) *Processor {
	np := p.clone()
	np.matrices = append(np.matrices, paths...)
	return np
}

// Store adds a route to an arbitrary ledger store. Routes added here are
// registered after the spreadsheets given to Matrices.
//
// Example:
//
//	route := ledger.Route{Key: "BIM", SourceRef: "bim.db", Open: sqlite.Opener("bim.db", "BIM", 0)}
//	obsmatrix.Open("informe.pdf").Store(route)
func (p *Processor) Store(route ledger.Route) *Processor {
	np := p.clone()
	np.routes = append(np.routes, route)
	return np
}

// Classifier sets the paragraph classifier. The default is a keyword
// classifier with the default keywords.
func (p *Processor) Classifier(c classify.Classifier) *Processor {
	np := p.clone()
	np.classifier = c
	return np
}

// Threshold sets the minimum score for an observation label. The default is
// zero, which keeps the classifier's labels as returned. Configure applies
// the configured threshold (classify.DefaultThreshold unless overridden).
func (p *Processor) Threshold(min float64) *Processor {
	np := p.clone()
	np.options.threshold = min
	return np
}

// HeadingConfig sets the heading keyword and abbreviation table.
func (p *Processor) HeadingConfig(cfg layout.HeadingConfig) *Processor {
	np := p.clone()
	np.headings = cfg
	return np
}

// Terminators sets the characters that end a paragraph.
func (p *Processor) Terminators(chars string) *Processor {
	np := p.clone()
	if chars != "" {
		np.options.terminators = chars
	}
	return np
}

// MatrixOptions sets how spreadsheets are opened, e.g. the sheet and column.
func (p *Processor) MatrixOptions(opts ...xlsx.Option) *Processor {
	np := p.clone()
	np.matrixOpts = append(np.matrixOpts, opts...)
	return np
}

// PDFOptions sets how the PDF is read. Ignored for FromProvider.
func (p *Processor) PDFOptions(opts ...pages.PDFOption) *Processor {
	np := p.clone()
	np.pdfOpts = append(np.pdfOpts, opts...)
	return np
}

// Export sets where routed spreadsheets are copied after reconciliation.
// Without an exporter, working copies are discarded.
func (p *Processor) Export(e export.Exporter) *Processor {
	np := p.clone()
	np.exporter = e
	return np
}

// Tracker sets the run tracker.
func (p *Processor) Tracker(t tracking.Tracker) *Processor {
	np := p.clone()
	if t == nil {
		t = tracking.Nop{}
	}
	np.tracker = t
	return np
}

// Logger sets the logger.
func (p *Processor) Logger(logger *slog.Logger) *Processor {
	np := p.clone()
	if logger != nil {
		np.logger = logger
	}
	return np
}

// Concurrency sets how many paragraphs are classified at once. Zero or
// less means unbounded.
func (p *Processor) Concurrency(n int) *Processor {
	np := p.clone()
	np.options.concurrency = n
	return np
}

// TempDir sets the parent directory of the per-run working directory.
func (p *Processor) TempDir(dir string) *Processor {
	np := p.clone()
	np.options.tempDir = dir
	return np
}

// Configure applies the ledger, heading, classifier and PDF settings of cfg.
// Collaborators that need clients (OCR, Vertex, exporters, trackers) are
// set separately.
func (p *Processor) Configure(cfg *config.Config) *Processor {
	np := p.clone()
	if cfg == nil {
		return np
	}
	np.matrixOpts = append(np.matrixOpts,
		xlsx.WithSheet(cfg.Ledger.Sheet),
		xlsx.WithColumn(cfg.Ledger.Column),
		xlsx.WithStartRow(cfg.Ledger.StartRow),
	)
	np.headings = layout.HeadingConfig{
		Keyword:       cfg.Headings.Keyword,
		Abbreviations: cfg.Headings.Table(),
	}
	np.pdfOpts = append(np.pdfOpts,
		pages.WithValidation(cfg.PDF.Validate),
		pages.WithMinChars(cfg.PDF.OCR.MinChars),
	)
	np.options.threshold = cfg.Classifier.Threshold
	np.options.concurrency = cfg.Classifier.Concurrency
	np.options.tempDir = cfg.TempDir
	return np
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Paragraphs returns the document's paragraphs without classifying them.
func (p *Processor) Paragraphs(ctx context.Context) ([]model.Paragraph, []Warning, error) {
	if p.err != nil {
		return nil, nil, p.err
	}
	pp, err := p.fetchPages(ctx, p.logger)
	if err != nil {
		return nil, nil, err
	}
	return p.segmenter().Segment(pp), nil, nil
}

// Headings returns the document's heading occurrences. Rejected heading
// lines are reported as warnings.
func (p *Processor) Headings(ctx context.Context) (*layout.HeadingLayout, []Warning, error) {
	if p.err != nil {
		return nil, nil, p.err
	}
	pp, err := p.fetchPages(ctx, p.logger)
	if err != nil {
		return nil, nil, err
	}
	hl := layout.NewHeadingExtractorWithConfig(p.headings).Analyze(pp)
	return hl, rejectedWarnings(hl), nil
}

// Run processes the document and returns the enriched paragraphs.
//
// Example:
//
//	resp, warnings, err := obsmatrix.Open("informe.pdf").Matrices(paths...).Run(ctx)
func (p *Processor) Run(ctx context.Context) (*model.Response, []Warning, error) {
	report, err := p.RunReport(ctx)
	if err != nil {
		return nil, nil, err
	}
	return report.Response, report.Warnings, nil
}

// RunReport processes the document and returns the full report.
//
// Failures to read the document, to classify, or to stage the spreadsheets
// fail the run and no results are returned. A category whose spreadsheet
// cannot be read or written is recorded in Failures and the run continues.
// The working directory is removed on every path.
func (p *Processor) RunReport(ctx context.Context) (_ *Report, err error) {
	if p.err != nil {
		return nil, p.err
	}

	rep := &Report{RunID: ulid.Make().String()}
	logger := p.logger.With("runId", rep.RunID, "document", p.name)

	started := p.now()
	run := tracking.Run{
		ID:        rep.RunID,
		Document:  p.name,
		Status:    tracking.StatusProcessing,
		CreatedAt: started,
		UpdatedAt: started,
	}
	if terr := p.tracker.Start(ctx, run); terr != nil {
		logger.Warn("Failed to record run start.", "error", terr)
		rep.warn(Warning{Code: WarnTrackingFailed, Message: "run start not recorded", Err: terr})
	}
	defer func() {
		p.finish(context.WithoutCancel(ctx), logger, run, rep, err)
	}()

	logger.Info("Run started.", "matrices", len(p.matrices), "stores", len(p.routes))

	workDir, err := os.MkdirTemp(p.options.tempDir, "obsmatrix-")
	if err != nil {
		return nil, fmt.Errorf("create working directory: %w", err)
	}
	defer func() {
		if rerr := os.RemoveAll(workDir); rerr != nil {
			logger.Warn("Failed to remove working directory.", "dir", workDir, "error", rerr)
			return
		}
		logger.Debug("Working directory removed.", "dir", workDir)
	}()

	routes, err := p.stage(workDir, logger, rep)
	if err != nil {
		return nil, err
	}

	pp, err := p.fetchPages(ctx, logger)
	if err != nil {
		return nil, err
	}
	rep.PageCount = len(pp)

	paragraphs := p.segmenter().Segment(pp)
	rep.ParagraphCount = len(paragraphs)
	logger.Info("Document segmented.", "pages", len(pp), "paragraphs", len(paragraphs))

	preds, err := p.classify(ctx, paragraphs)
	if err != nil {
		return nil, fmt.Errorf("classify: %w", err)
	}

	hl := layout.NewHeadingExtractorWithConfig(p.headings).Analyze(pp)
	for _, w := range rejectedWarnings(hl) {
		rep.warn(w)
	}
	idx := resolver.NewIndex(hl.Occurrences)
	rep.Headings = idx.Occurrences()
	logger.Info("Headings extracted.", "occurrences", idx.Len(), "rejected", len(hl.Rejected))

	groups := make(map[string][]int)
	var keys []string
	unknown := 0
	for i := range paragraphs {
		para := &paragraphs[i]
		if !preds[i].Label.IsObservation() {
			para.Label = model.LabelOther
			continue
		}
		para.Label = model.LabelObservation
		rep.ObservationCount++

		para.Category = idx.Resolve(para.Page)
		if para.Category == resolver.Unknown {
			unknown++
			continue
		}
		// Categories that share a routing key share one store.
		key := format.NormalizeKey(para.Category)
		if _, ok := groups[key]; !ok {
			keys = append(keys, key)
			rep.Categories = append(rep.Categories, para.Category)
		}
		groups[key] = append(groups[key], i)
	}
	if unknown > 0 {
		rep.warn(Warning{
			Code:     WarnNoHeading,
			Message:  fmt.Sprintf("%d observations precede every heading and were not reconciled", unknown),
			Category: resolver.Unknown,
		})
	}

	for n, key := range keys {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p.reconcile(ctx, logger, routes, rep.Categories[n], groups[key], paragraphs, rep)
	}

	if p.exporter != nil {
		p.export(ctx, logger, routes, rep)
	}

	rep.Response = model.NewResponse(paragraphs)
	return rep, nil
}

func (p *Processor) segmenter() *layout.Segmenter {
	return &layout.Segmenter{Terminators: p.options.terminators}
}

// fetchPages reads the document and drops blank pages.
func (p *Processor) fetchPages(ctx context.Context, logger *slog.Logger) ([]model.PageText, error) {
	provider := p.provider
	if provider == nil {
		opts := append([]pages.PDFOption{pages.WithLogger(logger)}, p.pdfOpts...)
		provider = pages.NewPDF(p.filename, opts...)
	}

	all, err := provider.Pages(ctx)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", p.name, err)
	}

	out := make([]model.PageText, 0, len(all))
	for _, page := range all {
		if !page.IsBlank() {
			out = append(out, page)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("read %s: %w", p.name, pages.ErrEmptyDocument)
	}
	return out, nil
}

// stage checks that every spreadsheet is an XLSX workbook, copies it into
// workDir and routes it, followed by the explicit store routes.
func (p *Processor) stage(workDir string, logger *slog.Logger, rep *Report) (*ledger.Ledger, error) {
	routes := ledger.New()

	for _, src := range p.matrices {
		base := baseName(src)
		if !format.IsSpreadsheet(base) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidMatrix, base)
		}

		key := format.CategoryKey(src)
		if key == "" {
			rep.warn(Warning{Code: WarnUnkeyedMatrix, Message: base + " has no category key"})
			continue
		}
		if prev, taken := routes.Lookup(key); taken {
			logger.Warn("Matrix ignored, key already routed.", "matrix", base, "key", key, "routedTo", prev.SourceRef)
			rep.warn(Warning{
				Code:     WarnDuplicateMatrix,
				Message:  fmt.Sprintf("%s ignored, %s already routed to %s", base, key, prev.SourceRef),
				Category: key,
			})
			continue
		}

		got, err := format.DetectFile(src)
		if err != nil {
			return nil, fmt.Errorf("stage %s: %w", base, err)
		}
		if got != format.XLSX {
			return nil, fmt.Errorf("%w: %s content is %s, not an XLSX workbook", ErrInvalidMatrix, base, got)
		}

		dst := filepath.Join(workDir, uuid.NewString()+"_"+base)
		if err := copyFile(src, dst); err != nil {
			return nil, fmt.Errorf("stage %s: %w", base, err)
		}
		routes.Add(ledger.Route{
			Key:       key,
			SourceRef: base,
			Path:      dst,
			Open:      xlsx.Opener(dst, p.matrixOpts...),
		})
		logger.Debug("Matrix staged.", "matrix", base, "key", key)
	}

	for _, route := range p.routes {
		if route.Open == nil {
			return nil, fmt.Errorf("store %s: no opener", route.SourceRef)
		}
		if !routes.Add(route) {
			rep.warn(Warning{
				Code:     WarnDuplicateMatrix,
				Message:  fmt.Sprintf("store %s ignored, key %q empty or already routed", route.SourceRef, route.Key),
				Category: route.Key,
			})
		}
	}
	return routes, nil
}

func (p *Processor) classify(ctx context.Context, paragraphs []model.Paragraph) ([]classify.Prediction, error) {
	c := p.classifier
	if c == nil {
		c = classify.NewKeyword(nil)
	}
	if p.options.threshold > 0 {
		c = classify.WithThreshold(c, p.options.threshold)
	}

	cleaner := text.NewCleaner()
	texts := make([]string, len(paragraphs))
	for i := range paragraphs {
		texts[i] = cleaner.Clean(paragraphs[i].Text)
	}
	return classify.All(ctx, c, texts, p.options.concurrency)
}

// reconcile appends the observations of one category to its store and
// marks the paragraphs that were added.
func (p *Processor) reconcile(ctx context.Context, logger *slog.Logger, routes *ledger.Ledger, category string, members []int, paragraphs []model.Paragraph, rep *Report) {
	route, ok := routes.Lookup(category)
	if !ok {
		logger.Info("No matrix for category.", "category", category, "observations", len(members))
		rep.warn(Warning{
			Code:     WarnUnrouted,
			Message:  fmt.Sprintf("no matrix for %s, %d observations not reconciled", category, len(members)),
			Category: category,
		})
		return
	}

	texts := make([]string, len(members))
	for n, i := range members {
		paragraphs[i].SourceRef = route.SourceRef
		texts[n] = paragraphs[i].Text
	}

	clog := logger.With("category", category, "matrix", route.SourceRef)
	added, _, err := routes.Reconcile(ctx, category, texts)
	if err != nil {
		failure := &CategoryFailure{Category: category, Store: route.SourceRef, Err: err}
		rep.Failures = append(rep.Failures, failure)
		rep.warn(Warning{
			Code:     WarnCategoryFailed,
			Message:  "reconciliation failed",
			Category: category,
			Err:      failure,
		})
		clog.Error("Reconciliation failed.", "error", err)
		return
	}

	for _, i := range members {
		paragraphs[i].Reconciled = added.Contains(paragraphs[i].Text)
	}
	clog.Info("Category reconciled.", "observations", len(members), "added", added.Len())
}

// export copies every file-backed route, reconciled or not.
func (p *Processor) export(ctx context.Context, logger *slog.Logger, routes *ledger.Ledger, rep *Report) {
	at := p.now()
	for _, route := range routes.Routes() {
		if route.Path == "" {
			continue
		}
		dest, err := p.exporter.Export(ctx, route.Key, route.Path, at)
		if err != nil {
			logger.Error("Export failed.", "matrix", route.SourceRef, "key", route.Key, "error", err)
			rep.warn(Warning{
				Code:     WarnExportFailed,
				Message:  route.SourceRef + " not exported",
				Category: route.Key,
				Err:      err,
			})
			continue
		}
		rep.Exports = append(rep.Exports, Exported{Key: route.Key, SourceRef: route.SourceRef, Dest: dest})
		logger.Info("Matrix exported.", "matrix", route.SourceRef, "dest", dest)
	}
}

func (p *Processor) finish(ctx context.Context, logger *slog.Logger, run tracking.Run, rep *Report, runErr error) {
	run.UpdatedAt = p.now()
	run.PageCount = rep.PageCount
	run.ParagraphCount = rep.ParagraphCount
	run.ObservationCount = rep.ObservationCount
	run.Categories = rep.Categories

	if runErr != nil {
		run.Status = tracking.StatusFailed
		run.ErrorDetails = runErr.Error()
		logger.Error("Run failed.", "error", runErr)
	} else {
		run.Status = tracking.StatusCompleted
		if rep.Response != nil {
			run.ReconciledCount = rep.Response.ReconciledCount()
		}
		logger.Info("Run completed.",
			"observations", run.ObservationCount,
			"reconciled", run.ReconciledCount,
			"failures", len(rep.Failures),
			"warnings", len(rep.Warnings))
	}

	if err := p.tracker.Finish(ctx, run); err != nil {
		logger.Warn("Failed to record run result.", "error", err)
		rep.warn(Warning{Code: WarnTrackingFailed, Message: "run result not recorded", Err: err})
	}
}

func rejectedWarnings(hl *layout.HeadingLayout) []Warning {
	var out []Warning
	for _, r := range hl.Rejected {
		out = append(out, Warning{
			Code:    WarnRejectedHeading,
			Message: fmt.Sprintf("heading %q has no category", r.Line),
			Page:    r.Page,
		})
	}
	return out
}

func copyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, out.Close())
	}()

	_, err = io.Copy(out, in)
	return err
}
