// Package ocr recognizes text in rendered page images of scanned PDFs.
//
// Recognition wraps the Tesseract engine via gosseract and is only compiled
// with the "ocr" build tag:
//
//	go build -tags ocr
//
// Without the tag every Client operation returns ErrOCRNotEnabled. On macOS,
// install Tesseract and the Spanish language data via:
//
//	brew install tesseract tesseract-lang
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr tesseract-ocr-spa
//
// Preprocess is always available. It converts a page image to grayscale,
// upscales small renders and optionally binarizes them before recognition.
package ocr
