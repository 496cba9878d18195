package pages

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
)

// Renderer rasterizes one page of a PDF file.
type Renderer interface {
	Render(ctx context.Context, path string, page int) ([]byte, error)
}

// Recognizer turns a page image into text. *ocr.Client implements it.
type Recognizer interface {
	RecognizeImage(data []byte) (string, error)
}

// Pdftoppm renders pages to PNG with the poppler pdftoppm tool.
type Pdftoppm struct {
	// Binary is the executable. Default: "pdftoppm"
	Binary string

	// DPI is the render resolution. Default: 300
	DPI int

	// TempDir holds intermediate images. Default: os.TempDir()
	TempDir string
}

// Render implements Renderer.
func (r Pdftoppm) Render(ctx context.Context, path string, page int) ([]byte, error) {
	bin := r.Binary
	if bin == "" {
		bin = "pdftoppm"
	}
	dpi := r.DPI
	if dpi <= 0 {
		dpi = 300
	}

	dir, err := os.MkdirTemp(r.TempDir, "render-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	prefix := filepath.Join(dir, "page")
	n := strconv.Itoa(page)
	cmd := exec.CommandContext(ctx, bin,
		"-f", n, "-l", n,
		"-r", strconv.Itoa(dpi),
		"-png", "-singlefile",
		path, prefix)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s page %d: %w: %s", bin, page, err, bytes.TrimSpace(stderr.Bytes()))
	}

	return os.ReadFile(prefix + ".png")
}
