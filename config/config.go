// Package config loads run configuration from a YAML file, a .env file and
// OBSMATRIX_* environment variables, in that order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/tsawler/obsmatrix/classify"
	"github.com/tsawler/obsmatrix/export"
	"github.com/tsawler/obsmatrix/layout"
	"github.com/tsawler/obsmatrix/ledger"
	"github.com/tsawler/obsmatrix/ocr"
	"github.com/tsawler/obsmatrix/pages"
	"github.com/tsawler/obsmatrix/text"
	"github.com/tsawler/obsmatrix/tracking"
)

// ErrInvalid is returned when a configuration value is out of range or
// cannot be parsed.
var ErrInvalid = errors.New("config: invalid value")

// EnvPrefix prefixes every environment override.
const EnvPrefix = "OBSMATRIX_"

// Classifier kinds.
const (
	ClassifierKeyword = "keyword"
	ClassifierVertex  = "vertex"
)

// Config is the complete run configuration.
type Config struct {
	Ledger     LedgerConfig     `yaml:"ledger"`
	Headings   HeadingsConfig   `yaml:"headings"`
	Classifier ClassifierConfig `yaml:"classifier"`
	PDF        PDFConfig        `yaml:"pdf"`
	Export     ExportConfig     `yaml:"export"`
	Tracking   TrackingConfig   `yaml:"tracking"`

	// TempDir holds per-run working copies. Default: os.TempDir()
	TempDir string `yaml:"tempDir"`
}

// LedgerConfig locates the observation column in reference spreadsheets.
type LedgerConfig struct {
	Sheet    string `yaml:"sheet"`
	Column   int    `yaml:"column"`
	StartRow int    `yaml:"startRow"`
}

// HeadingsConfig controls category heading detection.
type HeadingsConfig struct {
	Keyword       string               `yaml:"keyword"`
	Abbreviations []AbbreviationConfig `yaml:"abbreviations"`
}

// AbbreviationConfig is one abbreviation rewrite rule.
type AbbreviationConfig struct {
	Token     string `yaml:"token"`
	Canonical string `yaml:"canonical"`
	Letter    bool   `yaml:"letter"`
}

// Table converts the configured rules. It returns nil when none are set.
func (h HeadingsConfig) Table() text.AbbreviationTable {
	if len(h.Abbreviations) == 0 {
		return nil
	}
	table := make(text.AbbreviationTable, 0, len(h.Abbreviations))
	for _, a := range h.Abbreviations {
		table = append(table, text.Abbreviation{
			Token:     strings.ToUpper(strings.TrimSpace(a.Token)),
			Canonical: strings.TrimSpace(a.Canonical),
			Letter:    a.Letter,
		})
	}
	return table
}

// ClassifierConfig selects and tunes the paragraph classifier.
type ClassifierConfig struct {
	Kind        string       `yaml:"kind"`
	Threshold   float64      `yaml:"threshold"`
	Keywords    []string     `yaml:"keywords"`
	Concurrency int          `yaml:"concurrency"`
	Vertex      VertexConfig `yaml:"vertex"`
}

// VertexConfig configures the Gemini classifier.
type VertexConfig struct {
	Project string `yaml:"project"`
	Region  string `yaml:"region"`
	Model   string `yaml:"model"`
}

// PDFConfig controls text extraction.
type PDFConfig struct {
	Validate bool      `yaml:"validate"`
	OCR      OCRConfig `yaml:"ocr"`
}

// OCRConfig controls the OCR fallback for scanned pages.
type OCRConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Language string `yaml:"language"`
	DPI      int    `yaml:"dpi"`
	MinChars int    `yaml:"minChars"`
	Pdftoppm string `yaml:"pdftoppm"`
}

// ExportConfig sets where reconciled spreadsheets are copied.
type ExportConfig struct {
	Folder string `yaml:"folder"`
	Bucket string `yaml:"bucket"`
	Prefix string `yaml:"prefix"`
}

// TrackingConfig enables Firestore run tracking when Project is set.
type TrackingConfig struct {
	Project    string `yaml:"project"`
	Collection string `yaml:"collection"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Ledger: LedgerConfig{
			Sheet:    ledger.DefaultSheet,
			Column:   ledger.DefaultColumn,
			StartRow: ledger.DefaultStartRow,
		},
		Headings: HeadingsConfig{
			Keyword: layout.DefaultHeadingKeyword,
		},
		Classifier: ClassifierConfig{
			Kind:        ClassifierKeyword,
			Threshold:   classify.DefaultThreshold,
			Concurrency: 4,
			Vertex: VertexConfig{
				Region: "us-central1",
				Model:  classify.DefaultVertexModel,
			},
		},
		PDF: PDFConfig{
			Validate: true,
			OCR: OCRConfig{
				Language: ocr.DefaultLanguage,
				DPI:      300,
				MinChars: pages.DefaultMinChars,
				Pdftoppm: "pdftoppm",
			},
		},
		Export: ExportConfig{
			Folder: export.DefaultFolder,
		},
		Tracking: TrackingConfig{
			Collection: tracking.DefaultCollection,
		},
	}
}

// Load builds the configuration. path names an optional YAML file; when
// empty only defaults and the environment apply. envFiles are loaded with
// godotenv before overrides are read; missing files are ignored and
// variables already set in the environment win.
func Load(path string, envFiles ...string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// GetEnv returns the value of the environment variable key, or fallback
// when it is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func (c *Config) applyEnv() error {
	c.Ledger.Sheet = GetEnv(EnvPrefix+"SHEET", c.Ledger.Sheet)
	c.Headings.Keyword = GetEnv(EnvPrefix+"HEADING_KEYWORD", c.Headings.Keyword)
	c.Classifier.Kind = GetEnv(EnvPrefix+"CLASSIFIER", c.Classifier.Kind)
	c.Classifier.Vertex.Project = GetEnv(EnvPrefix+"PROJECT_ID", c.Classifier.Vertex.Project)
	c.Classifier.Vertex.Region = GetEnv(EnvPrefix+"VERTEX_REGION", c.Classifier.Vertex.Region)
	c.Classifier.Vertex.Model = GetEnv(EnvPrefix+"VERTEX_MODEL", c.Classifier.Vertex.Model)
	c.PDF.OCR.Language = GetEnv(EnvPrefix+"OCR_LANGUAGE", c.PDF.OCR.Language)
	c.Export.Folder = GetEnv(EnvPrefix+"EXPORT_FOLDER", c.Export.Folder)
	c.Export.Bucket = GetEnv(EnvPrefix+"EXPORT_BUCKET", c.Export.Bucket)
	c.Tracking.Project = GetEnv(EnvPrefix+"FIRESTORE_PROJECT", c.Tracking.Project)
	c.Tracking.Collection = GetEnv(EnvPrefix+"FIRESTORE_COLLECTION", c.Tracking.Collection)
	c.TempDir = GetEnv(EnvPrefix+"TEMP_DIR", GetEnv("UPLOAD_FOLDER", c.TempDir))

	if v := strings.TrimSpace(GetEnv(EnvPrefix+"KEYWORDS", "")); v != "" {
		c.Classifier.Keywords = splitList(v)
	}

	var err error
	if c.Ledger.Column, err = envInt("COLUMN", c.Ledger.Column); err != nil {
		return err
	}
	if c.Ledger.StartRow, err = envInt("START_ROW", c.Ledger.StartRow); err != nil {
		return err
	}
	if c.Classifier.Concurrency, err = envInt("CONCURRENCY", c.Classifier.Concurrency); err != nil {
		return err
	}
	if c.Classifier.Threshold, err = envFloat("THRESHOLD", c.Classifier.Threshold); err != nil {
		return err
	}
	if c.PDF.Validate, err = envBool("VALIDATE_PDF", c.PDF.Validate); err != nil {
		return err
	}
	if c.PDF.OCR.Enabled, err = envBool("OCR", c.PDF.OCR.Enabled); err != nil {
		return err
	}
	return nil
}

func envInt(key string, fallback int) (int, error) {
	v, ok := os.LookupEnv(EnvPrefix + key)
	if !ok {
		return fallback, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("%w: %s%s=%q", ErrInvalid, EnvPrefix, key, v)
	}
	return n, nil
}

func envFloat(key string, fallback float64) (float64, error) {
	v, ok := os.LookupEnv(EnvPrefix + key)
	if !ok {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s%s=%q", ErrInvalid, EnvPrefix, key, v)
	}
	return f, nil
}

func envBool(key string, fallback bool) (bool, error) {
	v, ok := os.LookupEnv(EnvPrefix + key)
	if !ok {
		return fallback, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return false, fmt.Errorf("%w: %s%s=%q", ErrInvalid, EnvPrefix, key, v)
	}
	return b, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Ledger.Sheet) == "":
		return fmt.Errorf("%w: ledger.sheet is empty", ErrInvalid)
	case c.Ledger.Column < 1:
		return fmt.Errorf("%w: ledger.column %d < 1", ErrInvalid, c.Ledger.Column)
	case c.Ledger.StartRow < 1:
		return fmt.Errorf("%w: ledger.startRow %d < 1", ErrInvalid, c.Ledger.StartRow)
	case strings.TrimSpace(c.Headings.Keyword) == "":
		return fmt.Errorf("%w: headings.keyword is empty", ErrInvalid)
	case c.Classifier.Threshold < 0 || c.Classifier.Threshold > 1:
		return fmt.Errorf("%w: classifier.threshold %v outside [0,1]", ErrInvalid, c.Classifier.Threshold)
	case c.Classifier.Concurrency < 0:
		return fmt.Errorf("%w: classifier.concurrency %d < 0", ErrInvalid, c.Classifier.Concurrency)
	}

	switch c.Classifier.Kind {
	case ClassifierKeyword:
	case ClassifierVertex:
		if c.Classifier.Vertex.Project == "" {
			return fmt.Errorf("%w: classifier.vertex.project is required", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: classifier.kind %q", ErrInvalid, c.Classifier.Kind)
	}

	for i, a := range c.Headings.Abbreviations {
		if strings.TrimSpace(a.Token) == "" || strings.TrimSpace(a.Canonical) == "" {
			return fmt.Errorf("%w: headings.abbreviations[%d] needs token and canonical", ErrInvalid, i)
		}
	}
	return nil
}
