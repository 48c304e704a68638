package avatar

import (
	"image"

	"github.com/gogpu/gg"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/gogpu/avatar/internal/blend"
)

// Layers is everything a frame is drawn from. Nil images are absent layers:
// not selected, still decoding, or failed to decode all render the same.
//
// Photo and BackgroundImage are resampled to the canvas on every Render
// unless they already come from Fit.
type Layers struct {
	Photo     image.Image
	Overlay   image.Image
	Transform OverlayTransform

	Background Background
	// BackgroundImage is the decoded image of an image background.
	BackgroundImage image.Image
}

// Compositor draws frames. It keeps no rendering output between calls and
// never modifies its inputs.
//
// A Compositor is safe for concurrent use once created.
type Compositor struct {
	interp xdraw.Interpolator
	circle *gg.Mask
	bounds image.Rectangle
}

// NewCompositor returns a compositor that resamples with interp.
// A nil interp selects xdraw.CatmullRom.
func NewCompositor(interp xdraw.Interpolator) *Compositor {
	if interp == nil {
		interp = xdraw.CatmullRom
	}
	return &Compositor{
		interp: interp,
		circle: circleMask(),
		bounds: image.Rect(0, 0, CanvasSize, CanvasSize),
	}
}

// circleMask rasterizes the anti-aliased avatar circle into a coverage mask.
func circleMask() *gg.Mask {
	dc := gg.NewContext(CanvasSize, CanvasSize)
	defer func() { _ = dc.Close() }()

	dc.SetRGBA(1, 1, 1, 1)
	dc.DrawCircle(avatarCenter, avatarCenter, AvatarRadius)
	_ = dc.Fill()
	return gg.NewMaskFromAlpha(dc.Image())
}

// Coverage returns the avatar circle coverage at canvas pixel (x, y),
// 0 outside and 255 fully inside.
func (c *Compositor) Coverage(x, y int) uint8 {
	return c.circle.At(x, y)
}

// Render draws a new frame. Layers are drawn in fixed order:
//  1. background, behind everything and only inside the circle
//  2. photo, stretched to the canvas and clipped to the circle
//  3. overlay, centered on the transform and not clipped
func (c *Compositor) Render(l Layers) *image.RGBA {
	frame := image.NewRGBA(c.bounds)

	c.drawBackground(frame, l)

	if l.Photo != nil {
		blend.Image(frame, c.Fit(l.Photo), c.circle, blend.SourceOver)
	}

	if l.Overlay != nil {
		c.drawOverlay(frame, l.Overlay, l.Transform)
	}

	Logger().Debug("avatar: frame rendered",
		"photo", l.Photo != nil,
		"overlay", l.Overlay != nil,
		"background", l.Background.Kind.String(),
		"scale", l.Transform.Scale)
	return frame
}

// drawBackground places the background behind whatever the frame already
// holds, restricted to the circle. Corners stay transparent.
func (c *Compositor) drawBackground(frame *image.RGBA, l Layers) {
	switch l.Background.Kind {
	case BackgroundColor:
		if fill, ok := l.Background.Fill(); ok {
			blend.Fill(frame, fill, c.circle, blend.DestinationOver)
		}
	case BackgroundImage:
		if l.BackgroundImage != nil {
			blend.Image(frame, c.Fit(l.BackgroundImage), c.circle, blend.DestinationOver)
		}
	}
}

// Fit scales src to exactly fill the canvas, ignoring aspect ratio.
// An *image.RGBA already covering the canvas bounds is returned as is, so
// fitting a decoded image once lets every later frame skip resampling.
func (c *Compositor) Fit(src image.Image) *image.RGBA {
	if rgba, ok := src.(*image.RGBA); ok && rgba.Rect == c.bounds {
		return rgba
	}
	dst := image.NewRGBA(c.bounds)
	c.interp.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// drawOverlay draws src as a square of t.Size() centered on t.Center.
// Placement keeps sub-pixel precision; parts outside the canvas are dropped.
func (c *Compositor) drawOverlay(frame *image.RGBA, src image.Image, t OverlayTransform) {
	sr := src.Bounds()
	if sr.Empty() {
		return
	}
	size := t.Size()
	kx := size / float64(sr.Dx())
	ky := size / float64(sr.Dy())
	left := t.Center.X - size/2
	top := t.Center.Y - size/2

	s2d := f64.Aff3{
		kx, 0, left - kx*float64(sr.Min.X),
		0, ky, top - ky*float64(sr.Min.Y),
	}
	c.interp.Transform(frame, s2d, src, sr, xdraw.Over, nil)
}
