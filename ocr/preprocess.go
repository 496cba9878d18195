package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	// Decoders for rendered and embedded page images.
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
)

// PreprocessOptions controls image preparation before recognition.
type PreprocessOptions struct {
	// MinWidth upscales images narrower than this many pixels, keeping the
	// aspect ratio. 0 disables upscaling.
	MinWidth int

	// MaxScale caps the upscale factor. Default: 4
	MaxScale float64

	// Threshold binarizes the grayscale image: pixels darker than the
	// threshold become black, the rest white. 0 disables binarization.
	Threshold uint8
}

// DefaultPreprocessOptions returns options suited to A4 pages rendered at
// 150 DPI or more.
func DefaultPreprocessOptions() PreprocessOptions {
	return PreprocessOptions{
		MinWidth: 1700,
		MaxScale: 4,
	}
}

// Preprocess decodes a PNG, JPEG, TIFF or BMP image and returns it as a
// grayscale PNG prepared for recognition.
func Preprocess(data []byte, opts PreprocessOptions) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	b := src.Bounds()
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(gray, gray.Bounds(), src, b.Min, draw.Src)

	if scale := upscaleFactor(b.Dx(), opts); scale > 1 {
		w := int(float64(b.Dx()) * scale)
		h := int(float64(b.Dy()) * scale)
		scaled := image.NewGray(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(scaled, scaled.Bounds(), gray, gray.Bounds(), draw.Src, nil)
		gray = scaled
	}

	if opts.Threshold > 0 {
		binarize(gray, opts.Threshold)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, gray); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	return buf.Bytes(), nil
}

func upscaleFactor(width int, opts PreprocessOptions) float64 {
	if opts.MinWidth <= 0 || width <= 0 || width >= opts.MinWidth {
		return 1
	}
	maxScale := opts.MaxScale
	if maxScale <= 0 {
		maxScale = 4
	}
	return min(float64(opts.MinWidth)/float64(width), maxScale)
}

func binarize(img *image.Gray, threshold uint8) {
	for i, v := range img.Pix {
		if v < threshold {
			img.Pix[i] = 0
		} else {
			img.Pix[i] = 255
		}
	}
}
