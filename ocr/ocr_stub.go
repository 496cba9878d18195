//go:build !ocr

package ocr

import "errors"

// ErrOCRNotEnabled is returned by every Client constructor and operation
// when the binary was built without the "ocr" tag.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// Client stands in for the Tesseract client in builds without OCR.
type Client struct{}

// New fails with ErrOCRNotEnabled.
func New() (*Client, error) {
	return nil, ErrOCRNotEnabled
}

// NewWithLanguage fails with ErrOCRNotEnabled.
func NewWithLanguage(string) (*Client, error) {
	return nil, ErrOCRNotEnabled
}

// NewWithOptions fails with ErrOCRNotEnabled.
func NewWithOptions(Options) (*Client, error) {
	return nil, ErrOCRNotEnabled
}

// Options returns the zero Options.
func (c *Client) Options() Options {
	return Options{}
}

// Close does nothing. It is safe to call on a nil client.
func (c *Client) Close() error {
	return nil
}

// RecognizeImage fails with ErrOCRNotEnabled.
func (c *Client) RecognizeImage([]byte) (string, error) {
	return "", ErrOCRNotEnabled
}

// SetLanguage fails with ErrOCRNotEnabled.
func (c *Client) SetLanguage(string) error {
	return ErrOCRNotEnabled
}

// SetPageSegMode fails with ErrOCRNotEnabled.
func (c *Client) SetPageSegMode(PageSegMode) error {
	return ErrOCRNotEnabled
}
