// Package imageio decodes user and catalog images into drawable handles and
// encodes frames as PNG.
package imageio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	"image/png"
	"io"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when no registered decoder
	// recognizes the data.
	ErrUnsupportedFormat = errors.New("imageio: unsupported format")

	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("imageio: empty data")
)

// Formats lists the file extensions the registered decoders handle.
var Formats = []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".bmp", ".tif", ".tiff"}

// Decode reads all of r and decodes it, auto-detecting the format.
func Decode(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("imageio: read: %w", err)
	}
	return DecodeBytes(data)
}

// DecodeBytes decodes an image held in memory.
func DecodeBytes(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if errors.Is(err, image.ErrFormat) {
		return nil, ErrUnsupportedFormat
	}
	if err != nil {
		return nil, fmt.Errorf("imageio: decode: %w", err)
	}
	if b := img.Bounds(); b.Empty() {
		return nil, fmt.Errorf("imageio: decode: empty bounds %v", b)
	}
	return img, nil
}

// EncodePNG writes img to w as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("imageio: encode PNG: %w", err)
	}
	return nil
}
