package avatar

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/gogpu/avatar/internal/imageio"
)

// EncodePNG writes img to w as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	return imageio.EncodePNG(w, img)
}

// ExportPNG renders the current state and writes it to w as PNG. Pixels
// outside the avatar circle and the overlay stay transparent.
func (s *Session) ExportPNG(w io.Writer) error {
	return EncodePNG(w, s.RenderFrame())
}

// SavePNG writes the current frame to ExportFilename inside dir and returns
// the file's path.
func (s *Session) SavePNG(dir string) (string, error) {
	path := filepath.Join(dir, ExportFilename)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("avatar: create %s: %w", path, err)
	}
	if err := s.ExportPNG(f); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("avatar: close %s: %w", path, err)
	}
	return path, nil
}
