//go:build !ocr

package ocr

import (
	"errors"
	"testing"
)

func TestNewReturnsError(t *testing.T) {
	for name, open := range map[string]func() (*Client, error){
		"New":             New,
		"NewWithLanguage": func() (*Client, error) { return NewWithLanguage(DefaultLanguage) },
		"NewWithOptions":  func() (*Client, error) { return NewWithOptions(DefaultOptions()) },
	} {
		client, err := open()
		if !errors.Is(err, ErrOCRNotEnabled) {
			t.Errorf("%s() error = %v, want ErrOCRNotEnabled", name, err)
		}
		if client != nil {
			t.Errorf("%s() returned a client when OCR is disabled", name)
		}
	}
}

func TestStubOperations(t *testing.T) {
	var client *Client
	if err := client.Close(); err != nil {
		t.Errorf("Close on nil client should not error: %v", err)
	}
	if _, err := client.RecognizeImage(nil); !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("RecognizeImage() error = %v", err)
	}
	if err := client.SetLanguage("spa"); !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("SetLanguage() error = %v", err)
	}
	if err := client.SetPageSegMode(PSM_AUTO); !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("SetPageSegMode() error = %v", err)
	}
}
