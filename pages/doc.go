// Package pages provides the page-indexed raw text of a document.
//
// A [Provider] yields [model.PageText] values in ascending page order,
// skipping pages that carry no text. Two providers are included:
//
//   - [PDF] extracts the text layer of a PDF file and, when configured,
//     falls back to OCR for pages whose text layer is empty or too short
//   - [Static] serves pages held in memory
//
// # PDF Extraction
//
//	p := pages.NewPDF("informe.pdf",
//		pages.WithValidation(true),
//		pages.WithOCR(pages.Pdftoppm{DPI: 300}, client),
//	)
//	texts, err := p.Pages(ctx)
//
// Validation runs the file through pdfcpu in relaxed mode before the text
// layer is read. Files that fail validation or cannot be parsed return an
// error wrapping [ErrUnreadable].
//
// # OCR Fallback
//
// A page falls back to OCR when its extracted text has fewer than
// MinChars runes. The page is rendered to an image by a [Renderer],
// optionally preprocessed, and passed to a [Recognizer] such as
// *ocr.Client. The recognized text replaces the text layer only when it is
// longer.
package pages
