//go:build ocr

package ocr

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// blankPage renders a white page with one dark block.
func blankPage(width, height int) []byte {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	for x := 10; x < 50; x++ {
		for y := 10; y < 30; y++ {
			img.SetGray(x, y, color.Gray{Y: 0})
		}
	}

	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}

func TestNew(t *testing.T) {
	client, err := New()
	if err != nil {
		t.Skipf("Tesseract not available: %v", err)
	}
	defer client.Close()
}

func TestRecognizeImage(t *testing.T) {
	client, err := NewWithLanguage("eng")
	if err != nil {
		t.Skipf("Tesseract not available: %v", err)
	}
	defer client.Close()

	data, err := Preprocess(blankPage(100, 50), DefaultPreprocessOptions())
	if err != nil {
		t.Fatalf("Preprocess() error = %v", err)
	}

	// The block carries no glyphs; only the call path is checked.
	if _, err := client.RecognizeImage(data); err != nil {
		t.Errorf("RecognizeImage failed: %v", err)
	}
}

func TestSetPageSegMode(t *testing.T) {
	client, err := NewWithLanguage("eng")
	if err != nil {
		t.Skipf("Tesseract not available: %v", err)
	}
	defer client.Close()

	if got := client.Options().PageSegMode; got != PSM_AUTO {
		t.Errorf("default PageSegMode = %d, want %d", got, PSM_AUTO)
	}
	if err := client.SetPageSegMode(PSM_SINGLE_BLOCK); err != nil {
		t.Errorf("SetPageSegMode failed: %v", err)
	}
	if got := client.Options().PageSegMode; got != PSM_SINGLE_BLOCK {
		t.Errorf("PageSegMode = %d, want %d", got, PSM_SINGLE_BLOCK)
	}
}

func TestClose(t *testing.T) {
	client, err := New()
	if err != nil {
		t.Skipf("Tesseract not available: %v", err)
	}
	if err := client.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}

	client.tess = nil
	if err := client.Close(); err != nil {
		t.Errorf("Close on nil client failed: %v", err)
	}
}
