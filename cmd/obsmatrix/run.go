package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	outputPath   string
	noExport     bool
	exportDir    string
	dbPath       string
	dbCategories []string
	classifier   string
	threshold    float64
	ocrEnabled   bool
	concurrency  int
)

var runCmd = &cobra.Command{
	Use:   "run <report.pdf> [matrix.xlsx...]",
	Short: "Reconcile a report's observations into spreadsheets",
	Long: `Run reads the report, classifies its paragraphs and appends new
observations to the spreadsheet routed to each category. The originals are
copied first; the updated copies are exported to the export folder and, when
configured, to a Cloud Storage bucket.

The result is written as JSON to --output (stdout by default). A summary is
printed to stderr.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		applyRunFlags(cmd)
		if err := cfg.Validate(); err != nil {
			return err
		}
		if len(dbCategories) > 0 && dbPath == "" {
			return fmt.Errorf("--db-categories requires --db")
		}

		ctx := cmd.Context()
		var cl closers
		defer func() {
			if err := cl.Close(); err != nil {
				logger.Warn("Failed to close clients.", "error", err)
			}
		}()

		p, err := newProcessor(args[0], &cl)
		if err != nil {
			return err
		}
		p = p.Matrices(args[1:]...)

		c, err := newClassifier(ctx, &cl)
		if err != nil {
			return err
		}
		p = p.Classifier(c)

		exporter, err := newExporter(ctx, &cl, !noExport)
		if err != nil {
			return err
		}
		if exporter != nil {
			p = p.Export(exporter)
		}

		tracker, err := newTracker(ctx, &cl)
		if err != nil {
			return err
		}
		p = p.Tracker(tracker)

		if dbPath != "" {
			for _, route := range sqliteRoutes(dbPath, dbCategories) {
				p = p.Store(route)
			}
		}

		report, err := p.RunReport(ctx)
		if err != nil {
			return err
		}

		if err := writeJSON(cmd.OutOrStdout(), outputPath, report.Response); err != nil {
			return err
		}
		FormatSummary(cmd.ErrOrStderr(), report)
		return nil
	},
}

func init() {
	flags := runCmd.Flags()
	flags.StringVarP(&outputPath, "output", "o", "-", "write the JSON result to this file (- for stdout)")
	flags.BoolVar(&noExport, "no-export", false, "skip copying updated spreadsheets to the export folder")
	flags.StringVar(&exportDir, "export-dir", "", "export folder (overrides config)")
	flags.StringVar(&dbPath, "db", "", "SQLite database holding additional observation columns")
	flags.StringSliceVar(&dbCategories, "db-categories", nil, "categories routed to --db, one column each")
	flags.StringVar(&classifier, "classifier", "", "classifier kind: keyword or vertex (overrides config)")
	flags.Float64Var(&threshold, "threshold", 0, "minimum observation score (overrides config)")
	flags.BoolVar(&ocrEnabled, "ocr", false, "fall back to OCR for pages without text (requires -tags ocr)")
	flags.IntVar(&concurrency, "concurrency", 0, "paragraphs classified at once (overrides config)")

	rootCmd.AddCommand(runCmd)
}

// applyRunFlags copies explicitly set flags over the loaded configuration.
func applyRunFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("export-dir") {
		cfg.Export.Folder = exportDir
	}
	if flags.Changed("classifier") {
		cfg.Classifier.Kind = classifier
	}
	if flags.Changed("threshold") {
		cfg.Classifier.Threshold = threshold
	}
	if flags.Changed("ocr") {
		cfg.PDF.OCR.Enabled = ocrEnabled
	}
	if flags.Changed("concurrency") {
		cfg.Classifier.Concurrency = concurrency
	}
}

func writeJSON(stdout io.Writer, path string, v any) (err error) {
	w := stdout
	if path != "" && path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
		w = f
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

