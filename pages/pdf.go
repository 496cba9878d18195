package pages

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/tsawler/obsmatrix/model"
	"github.com/tsawler/obsmatrix/ocr"
)

// DefaultMinChars is the text length below which a page falls back to OCR.
const DefaultMinChars = 20

// PDFOption configures a PDF provider
type PDFOption func(*PDF)

// WithValidation validates the file with pdfcpu before extraction
func WithValidation(enabled bool) PDFOption {
	return func(p *PDF) {
		p.validate = enabled
	}
}

// WithOCR enables the OCR fallback
func WithOCR(renderer Renderer, recognizer Recognizer) PDFOption {
	return func(p *PDF) {
		p.renderer = renderer
		p.recognizer = recognizer
	}
}

// WithPreprocess prepares rendered images with ocr.Preprocess before
// recognition.
func WithPreprocess(opts ocr.PreprocessOptions) PDFOption {
	return func(p *PDF) {
		p.preprocess = &opts
	}
}

// WithMinChars sets the OCR fallback threshold (default 20)
func WithMinChars(n int) PDFOption {
	return func(p *PDF) {
		if n > 0 {
			p.minChars = n
		}
	}
}

// WithLogger sets the logger for per-page diagnostics
func WithLogger(logger *slog.Logger) PDFOption {
	return func(p *PDF) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// PDF extracts page texts from a PDF file.
type PDF struct {
	path       string
	validate   bool
	renderer   Renderer
	recognizer Recognizer
	preprocess *ocr.PreprocessOptions
	minChars   int
	logger     *slog.Logger
	pageCount  int
}

// NewPDF creates a provider for the file at path
func NewPDF(path string, opts ...PDFOption) *PDF {
	p := &PDF{
		path:     path,
		minChars: DefaultMinChars,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Path returns the file location
func (p *PDF) Path() string {
	return p.path
}

// PageCount returns the number of pages in the file, including pages
// without text. It is zero until Pages succeeds.
func (p *PDF) PageCount() int {
	return p.pageCount
}

// Pages implements Provider.
func (p *PDF) Pages(ctx context.Context) ([]model.PageText, error) {
	if p.validate {
		conf := pdfmodel.NewDefaultConfiguration()
		conf.ValidationMode = pdfmodel.ValidationRelaxed
		if err := api.ValidateFile(p.path, conf); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, filepath.Base(p.path), err)
		}
		count, err := api.PageCountFile(p.path)
		if err != nil {
			return nil, fmt.Errorf("%w: page count: %v", ErrUnreadable, err)
		}
		p.logger.Debug("PDF validated.", "file", filepath.Base(p.path), "pageCount", count)
	}

	f, r, err := pdf.Open(p.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, filepath.Base(p.path), err)
	}
	defer f.Close()

	return p.extract(ctx, readerSource{r})
}

// pageSource abstracts the PDF reader for extraction.
type pageSource interface {
	NumPage() int
	PageText(n int) (string, error)
}

type readerSource struct {
	r *pdf.Reader
}

func (s readerSource) NumPage() int {
	return s.r.NumPage()
}

// PageText returns the text of page n, one line per text row, top to
// bottom. Parser panics on malformed content streams become errors.
func (s readerSource) PageText(n int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("page %d: malformed content: %v", n, r)
		}
	}()

	page := s.r.Page(n)
	if page.V.IsNull() {
		return "", nil
	}

	rows, err := page.GetTextByRow()
	if err != nil {
		return "", err
	}

	// PDF y grows upward; the top row has the largest position.
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Position > rows[j].Position
	})

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, joinRow(row.Content))
	}
	return strings.Join(lines, "\n"), nil
}

// joinRow concatenates the text runs of one row left to right, inserting a
// space where the horizontal gap between runs is wider than a fifth of the
// font size.
func joinRow(texts pdf.TextHorizontal) string {
	runs := make([]pdf.Text, len(texts))
	copy(runs, texts)
	sort.SliceStable(runs, func(i, j int) bool { return runs[i].X < runs[j].X })

	var sb strings.Builder
	var prevEnd float64
	for i, t := range runs {
		if i > 0 {
			gap := t.X - prevEnd
			if gap > math.Max(t.FontSize, 1)*0.2 && !strings.HasSuffix(sb.String(), " ") && !strings.HasPrefix(t.S, " ") {
				sb.WriteByte(' ')
			}
		}
		sb.WriteString(t.S)
		prevEnd = t.X + t.W
	}
	return strings.TrimSpace(sb.String())
}

func (p *PDF) extract(ctx context.Context, src pageSource) ([]model.PageText, error) {
	doc := model.NewDocument(filepath.Base(p.path))
	p.pageCount = src.NumPage()

	for i := 1; i <= p.pageCount; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		text, err := src.PageText(i)
		if err != nil {
			p.logger.Warn("Failed to extract text from page.", "page", i, "error", err)
			text = ""
		}

		if p.needsOCR(text) {
			recognized, err := p.recognize(ctx, i)
			if err != nil {
				p.logger.Warn("OCR fallback failed.", "page", i, "error", err)
			} else if runeLen(recognized) > runeLen(text) {
				text = recognized
			}
		}

		if strings.TrimSpace(text) == "" {
			continue
		}
		doc.AddPage(i, text)
	}

	return doc.Pages, nil
}

func (p *PDF) needsOCR(text string) bool {
	return p.renderer != nil && p.recognizer != nil && runeLen(text) < p.minChars
}

func (p *PDF) recognize(ctx context.Context, page int) (string, error) {
	img, err := p.renderer.Render(ctx, p.path, page)
	if err != nil {
		return "", err
	}
	if p.preprocess != nil {
		if img, err = ocr.Preprocess(img, *p.preprocess); err != nil {
			return "", err
		}
	}
	return p.recognizer.RecognizeImage(img)
}

func runeLen(s string) int {
	return utf8.RuneCountInString(strings.TrimSpace(s))
}
