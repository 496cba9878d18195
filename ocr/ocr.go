//go:build ocr

package ocr

import (
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// Client recognizes rendered report pages with Tesseract.
// A Client is not safe for concurrent use.
type Client struct {
	tess *gosseract.Client
	opts Options
}

// New creates a client with DefaultOptions.
// The client should be closed when no longer needed to release resources.
func New() (*Client, error) {
	return NewWithOptions(DefaultOptions())
}

// NewWithLanguage creates a client with DefaultOptions and lang, a "+"
// separated list of Tesseract language codes such as "spa+eng".
func NewWithLanguage(lang string) (*Client, error) {
	opts := DefaultOptions()
	if lang != "" {
		opts.Language = lang
	}
	return NewWithOptions(opts)
}

// NewWithOptions creates a client configured by opts.
func NewWithOptions(opts Options) (*Client, error) {
	if opts.PageSegMode == 0 {
		opts.PageSegMode = PSM_AUTO
	}

	tess := gosseract.NewClient()
	if err := tess.SetLanguage(opts.Languages()...); err != nil {
		tess.Close()
		return nil, fmt.Errorf("failed to set language %q: %w", opts.Language, err)
	}
	if err := tess.SetPageSegMode(gosseract.PageSegMode(opts.PageSegMode)); err != nil {
		tess.Close()
		return nil, fmt.Errorf("failed to set page segmentation mode %d: %w", opts.PageSegMode, err)
	}
	return &Client{tess: tess, opts: opts}, nil
}

// Options returns the client's current options.
func (c *Client) Options() Options {
	return c.opts
}

// Close releases OCR resources. It is safe to call on a nil client.
func (c *Client) Close() error {
	if c != nil && c.tess != nil {
		err := c.tess.Close()
		c.tess = nil
		return err
	}
	return nil
}

// RecognizeImage performs OCR on image data (PNG, TIFF, JPEG, etc.) and
// returns the text tidied with TidyText.
func (c *Client) RecognizeImage(imageData []byte) (string, error) {
	if err := c.tess.SetImageFromBytes(imageData); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := c.tess.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}
	return TidyText(text, c.opts.KeepHyphens), nil
}

// SetLanguage changes the recognition language(s).
func (c *Client) SetLanguage(lang string) error {
	opts := c.opts
	opts.Language = lang
	if err := c.tess.SetLanguage(opts.Languages()...); err != nil {
		return err
	}
	c.opts = opts
	return nil
}

// SetPageSegMode changes the page segmentation mode.
func (c *Client) SetPageSegMode(mode PageSegMode) error {
	if err := c.tess.SetPageSegMode(gosseract.PageSegMode(mode)); err != nil {
		return err
	}
	c.opts.PageSegMode = mode
	return nil
}
