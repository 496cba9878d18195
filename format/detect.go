// Package format detects input file formats and derives routing keys from
// spreadsheet filenames.
package format

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/tsawler/obsmatrix/text"
)

// Format represents a supported input format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PDF indicates a PDF document.
	PDF
	// XLSX indicates an Office Open XML workbook (.xlsx).
	XLSX
	// XLS indicates a legacy binary workbook (.xls).
	XLS
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case PDF:
		return "PDF"
	case XLSX:
		return "XLSX"
	case XLS:
		return "XLS"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case PDF:
		return ".pdf"
	case XLSX:
		return ".xlsx"
	case XLS:
		return ".xls"
	default:
		return ""
	}
}

// IsSpreadsheet reports whether the format is a workbook.
func (f Format) IsSpreadsheet() bool {
	return f == XLSX || f == XLS
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return PDF
	case ".xlsx":
		return XLSX
	case ".xls":
		return XLS
	default:
		return Unknown
	}
}

// IsPDF reports whether filename has a PDF extension.
func IsPDF(filename string) bool {
	return Detect(filename) == PDF
}

// IsSpreadsheet reports whether filename has a workbook extension.
func IsSpreadsheet(filename string) bool {
	return Detect(filename).IsSpreadsheet()
}

var (
	pdfMagic = []byte("%PDF")
	zipMagic = []byte{0x50, 0x4B, 0x03, 0x04}
	oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

// DetectFromMagic checks file magic bytes to determine format.
// ZIP archives return Unknown; use DetectFromReader to look inside them.
func DetectFromMagic(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, pdfMagic):
		return PDF
	case bytes.HasPrefix(data, oleMagic):
		return XLS
	default:
		return Unknown
	}
}

// DetectFromReader inspects the content to determine format.
// Unlike Detect it tells an XLSX workbook apart from other ZIP archives.
func DetectFromReader(r io.ReaderAt, size int64) (Format, error) {
	magic := make([]byte, 8)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	magic = magic[:n]

	if bytes.HasPrefix(magic, zipMagic) {
		return detectZIPFormat(r, size)
	}
	return DetectFromMagic(magic), nil
}

// DetectFile opens path and detects its format from content.
func DetectFile(path string) (Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return Unknown, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Unknown, err
	}
	return DetectFromReader(f, info.Size())
}

// detectZIPFormat reports XLSX when the archive carries a workbook part.
func detectZIPFormat(r io.ReaderAt, size int64) (Format, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Unknown, err
	}
	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, "xl/") {
			return XLSX, nil
		}
	}
	return Unknown, nil
}

var keySeparators = regexp.MustCompile(`[\s\-_]+`)

// NormalizeKey maps a category name or filename chunk to its routing key:
// underscore, hyphen and whitespace runs become one space, the result is
// trimmed, uppercased and stripped of diacritics.
func NormalizeKey(s string) string {
	s = strings.TrimSpace(keySeparators.ReplaceAllString(s, " "))
	return text.FoldAccents(strings.ToUpper(s))
}

// CategoryKey returns the routing key of a spreadsheet filename: the part of
// the base name before the first underscore, or the whole stem when there is
// none, normalized with NormalizeKey.
//
//	CategoryKey("/tmp/Eléctrica_Matriz v2.xlsx") // "ELECTRICA"
//	CategoryKey("estructura-lado aire.xlsx")    // "ESTRUCTURA LADO AIRE"
func CategoryKey(filename string) string {
	base := filepath.Base(strings.ReplaceAll(filename, `\`, "/"))
	if i := strings.Index(base, "_"); i >= 0 {
		return NormalizeKey(base[:i])
	}
	return NormalizeKey(strings.TrimSuffix(base, filepath.Ext(base)))
}
