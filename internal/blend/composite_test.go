package blend

import (
	"image"
	"image/color"
	"testing"
)

// halfMask covers the left half of a square fully and nothing else.
type halfMask struct{ w int }

func (m halfMask) At(x, _ int) uint8 {
	if x < m.w/2 {
		return 255
	}
	return 0
}

type constMask uint8

func (m constMask) At(int, int) uint8 { return uint8(m) }

func filled(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func TestFillRespectsCoverage(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 8, 8))
	red := color.RGBA{R: 255, A: 255}

	Fill(dst, red, halfMask{w: 8}, SourceOver)

	if got := dst.RGBAAt(1, 4); got != red {
		t.Errorf("covered pixel = %v, want %v", got, red)
	}
	if got := dst.RGBAAt(6, 4); got.A != 0 {
		t.Errorf("uncovered pixel = %v, want transparent", got)
	}
}

func TestFillDestinationOverStaysBehind(t *testing.T) {
	blue := color.RGBA{B: 255, A: 255}
	dst := filled(4, 4, blue)
	dst.SetRGBA(0, 0, color.RGBA{})

	Fill(dst, color.RGBA{R: 255, A: 255}, nil, DestinationOver)

	if got := dst.RGBAAt(2, 2); got != blue {
		t.Errorf("opaque destination changed to %v", got)
	}
	if got := dst.RGBAAt(0, 0); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("empty destination = %v, want red", got)
	}
}

func TestImagePartialCoverage(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 2, 2))
	src := filled(2, 2, color.RGBA{G: 255, A: 255})

	Image(dst, src, constMask(128), SourceOver)

	got := dst.RGBAAt(0, 0)
	if got.G != 128 || got.A != 128 {
		t.Errorf("half coverage = %v, want G=128 A=128", got)
	}
}

func TestImageZeroCoverageUntouched(t *testing.T) {
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	dst := filled(3, 3, white)
	src := filled(3, 3, color.RGBA{R: 255, A: 255})

	Image(dst, src, constMask(0), SourceOver)

	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if got := dst.RGBAAt(x, y); got != white {
				t.Fatalf("pixel (%d,%d) = %v, want untouched", x, y, got)
			}
		}
	}
}

func TestFillTransparentIsNoop(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 2, 2))
	Fill(dst, color.RGBA{}, nil, DestinationOver)
	for _, p := range dst.Pix {
		if p != 0 {
			t.Fatal("transparent fill modified destination")
		}
	}
}
