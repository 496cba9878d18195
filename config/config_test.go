package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// noEnv points Load at a .env file that does not exist.
func noEnv(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.Ledger.Sheet != "Matriz Obs" || cfg.Ledger.Column != 7 || cfg.Ledger.StartRow != 13 {
		t.Errorf("ledger = %+v", cfg.Ledger)
	}
	if cfg.Headings.Keyword != "ESPECIALIDAD" {
		t.Errorf("Keyword = %q", cfg.Headings.Keyword)
	}
	if cfg.Classifier.Kind != ClassifierKeyword {
		t.Errorf("Kind = %q", cfg.Classifier.Kind)
	}
	if cfg.Classifier.Concurrency != 4 {
		t.Errorf("Concurrency = %d", cfg.Classifier.Concurrency)
	}
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "obsmatrix.yaml", `
ledger:
  sheet: Resumen
  column: 3
headings:
  keyword: SPECIALTY
  abbreviations:
    - token: HV
      canonical: HVAC
classifier:
  threshold: 0.5
  keywords: [fix, revise]
pdf:
  ocr:
    enabled: true
export:
  bucket: review-exports
`)

	cfg, err := Load(path, noEnv(t))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Ledger.Sheet != "Resumen" || cfg.Ledger.Column != 3 {
		t.Errorf("ledger = %+v", cfg.Ledger)
	}
	if cfg.Ledger.StartRow != 13 {
		t.Errorf("StartRow = %d, want default 13", cfg.Ledger.StartRow)
	}
	if cfg.Headings.Keyword != "SPECIALTY" {
		t.Errorf("Keyword = %q", cfg.Headings.Keyword)
	}
	table := cfg.Headings.Table()
	if len(table) != 1 || table[0].Token != "HV" || table[0].Canonical != "HVAC" {
		t.Errorf("Table() = %+v", table)
	}
	if cfg.Classifier.Threshold != 0.5 {
		t.Errorf("Threshold = %v", cfg.Classifier.Threshold)
	}
	if len(cfg.Classifier.Keywords) != 2 {
		t.Errorf("Keywords = %v", cfg.Classifier.Keywords)
	}
	if !cfg.PDF.OCR.Enabled || cfg.PDF.OCR.Language != "spa" {
		t.Errorf("ocr = %+v", cfg.PDF.OCR)
	}
	if !cfg.PDF.Validate {
		t.Error("Validate default lost after YAML overlay")
	}
	if cfg.Export.Bucket != "review-exports" {
		t.Errorf("Bucket = %q", cfg.Export.Bucket)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), noEnv(t))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load() error = %v, want os.ErrNotExist", err)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeFile(t, "bad.yaml", "ledger: [unterminated")
	if _, err := Load(path, noEnv(t)); err == nil {
		t.Error("Load() error = nil, want parse error")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeFile(t, "obsmatrix.yaml", "ledger:\n  column: 3\n")
	t.Setenv("OBSMATRIX_COLUMN", "9")
	t.Setenv("OBSMATRIX_SHEET", "Observaciones")
	t.Setenv("OBSMATRIX_THRESHOLD", "0.7")
	t.Setenv("OBSMATRIX_OCR", "true")
	t.Setenv("OBSMATRIX_KEYWORDS", "corregir, , revisar")

	cfg, err := Load(path, noEnv(t))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Ledger.Column != 9 {
		t.Errorf("Column = %d, want 9", cfg.Ledger.Column)
	}
	if cfg.Ledger.Sheet != "Observaciones" {
		t.Errorf("Sheet = %q", cfg.Ledger.Sheet)
	}
	if cfg.Classifier.Threshold != 0.7 {
		t.Errorf("Threshold = %v", cfg.Classifier.Threshold)
	}
	if !cfg.PDF.OCR.Enabled {
		t.Error("OCR not enabled")
	}
	if got := cfg.Classifier.Keywords; len(got) != 2 || got[0] != "corregir" || got[1] != "revisar" {
		t.Errorf("Keywords = %v", got)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	env := writeFile(t, ".env", "OBSMATRIX_START_ROW=20\nOBSMATRIX_EXPORT_FOLDER=/srv/matrices\n")
	t.Setenv("OBSMATRIX_START_ROW", "")
	os.Unsetenv("OBSMATRIX_START_ROW")
	t.Setenv("OBSMATRIX_EXPORT_FOLDER", "/override")

	cfg, err := Load("", env)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Ledger.StartRow != 20 {
		t.Errorf("StartRow = %d, want 20 from .env", cfg.Ledger.StartRow)
	}
	if cfg.Export.Folder != "/override" {
		t.Errorf("Folder = %q, want the process environment to win", cfg.Export.Folder)
	}
}

func TestLoad_BadEnvValue(t *testing.T) {
	t.Setenv("OBSMATRIX_COLUMN", "seven")
	if _, err := Load("", noEnv(t)); !errors.Is(err, ErrInvalid) {
		t.Errorf("Load() error = %v, want ErrInvalid", err)
	}
}

func TestHeadingsConfig_TableDefaults(t *testing.T) {
	if got := Default().Headings.Table(); got != nil {
		t.Errorf("Table() = %+v, want nil so the extractor keeps its defaults", got)
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("OBSMATRIX_TEST_VALUE", "set")
	if got := GetEnv("OBSMATRIX_TEST_VALUE", "fallback"); got != "set" {
		t.Errorf("GetEnv() = %q, want set", got)
	}
	if got := GetEnv("OBSMATRIX_TEST_UNSET", "fallback"); got != "fallback" {
		t.Errorf("GetEnv() = %q, want fallback", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"empty sheet", func(c *Config) { c.Ledger.Sheet = " " }},
		{"column zero", func(c *Config) { c.Ledger.Column = 0 }},
		{"start row zero", func(c *Config) { c.Ledger.StartRow = 0 }},
		{"empty keyword", func(c *Config) { c.Headings.Keyword = "" }},
		{"threshold above one", func(c *Config) { c.Classifier.Threshold = 1.2 }},
		{"negative threshold", func(c *Config) { c.Classifier.Threshold = -0.1 }},
		{"unknown classifier", func(c *Config) { c.Classifier.Kind = "bayes" }},
		{"vertex without project", func(c *Config) { c.Classifier.Kind = ClassifierVertex }},
		{"abbreviation without token", func(c *Config) {
			c.Headings.Abbreviations = []AbbreviationConfig{{Canonical: "HVAC"}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}
