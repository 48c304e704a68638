package blend

import (
	"image"
	"image/color"
)

// Coverage is an 8-bit coverage source: 0 outside, 255 fully inside.
// *gg.Mask satisfies it. Coordinates are relative to the destination's
// bounds origin.
type Coverage interface {
	At(x, y int) uint8
}

// Image composites src onto dst with mode, scaling every source pixel by the
// coverage at that pixel. A nil cov means full coverage. Only the
// intersection of both bounds is touched.
func Image(dst, src *image.RGBA, cov Coverage, mode Mode) {
	fn := FuncFor(mode)
	r := dst.Bounds().Intersect(src.Bounds())
	origin := dst.Bounds().Min

	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			k := coverageAt(cov, x-origin.X, y-origin.Y)
			if k == 0 {
				continue
			}
			si := src.PixOffset(x, y)
			s := src.Pix[si : si+4 : si+4]
			compose(dst, x, y, fn, s[0], s[1], s[2], s[3], k)
		}
	}
}

// Fill composites the premultiplied colour c onto dst with mode, scaled by
// coverage. A nil cov means full coverage.
func Fill(dst *image.RGBA, c color.RGBA, cov Coverage, mode Mode) {
	if c.A == 0 {
		return
	}
	fn := FuncFor(mode)
	r := dst.Bounds()

	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			k := coverageAt(cov, x-r.Min.X, y-r.Min.Y)
			if k == 0 {
				continue
			}
			compose(dst, x, y, fn, c.R, c.G, c.B, c.A, k)
		}
	}
}

// compose blends one premultiplied source pixel, weighted by k, into dst.
func compose(dst *image.RGBA, x, y int, fn Func, sr, sg, sb, sa, k byte) {
	if k != 255 {
		sr, sg, sb, sa = mulDiv255(sr, k), mulDiv255(sg, k), mulDiv255(sb, k), mulDiv255(sa, k)
	}
	di := dst.PixOffset(x, y)
	d := dst.Pix[di : di+4 : di+4]
	d[0], d[1], d[2], d[3] = fn(sr, sg, sb, sa, d[0], d[1], d[2], d[3])
}

func coverageAt(cov Coverage, x, y int) byte {
	if cov == nil {
		return 255
	}
	return cov.At(x, y)
}
