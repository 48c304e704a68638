package avatar

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// OverlayTransform is the position and scale of the overlay image, plus the
// bookkeeping of an active drag.
//
// Center and DragOffset are in canvas units. Scale multiplies
// OverlayBaseSize and always stays within [MinScale, MaxScale].
type OverlayTransform struct {
	Center r2.Vec
	Scale  float64

	// Dragging is true while a press that started inside the overlay is held.
	Dragging bool

	// DragOffset is the pointer-to-center offset captured at drag start.
	DragOffset r2.Vec
}

// NewOverlayTransform returns a transform centered on the canvas at scale 1.
func NewOverlayTransform() OverlayTransform {
	var t OverlayTransform
	t.Reset()
	return t
}

// Reset recenters the overlay and restores scale 1.
// Called exactly when a newly selected overlay finishes decoding.
func (t *OverlayTransform) Reset() {
	t.Center = r2.Vec{X: avatarCenter, Y: avatarCenter}
	t.Scale = 1
	t.Dragging = false
	t.DragOffset = r2.Vec{}
}

// X returns the horizontal center of the overlay.
func (t OverlayTransform) X() float64 { return t.Center.X }

// Y returns the vertical center of the overlay.
func (t OverlayTransform) Y() float64 { return t.Center.Y }

// Size returns the side of the overlay square.
func (t OverlayTransform) Size() float64 {
	return OverlayBaseSize * t.Scale
}

// Bounds returns the axis-aligned box covered by the overlay.
func (t OverlayTransform) Bounds() r2.Box {
	half := t.Size() / 2
	return r2.Box{
		Min: r2.Vec{X: t.Center.X - half, Y: t.Center.Y - half},
		Max: r2.Vec{X: t.Center.X + half, Y: t.Center.Y + half},
	}
}

// Contains reports whether p lies in the overlay box. All four edges are
// inside. Transparent pixels of the overlay image are not considered.
func (t OverlayTransform) Contains(p r2.Vec) bool {
	size := t.Size()
	left := t.Center.X - size/2
	top := t.Center.Y - size/2
	return p.X >= left && p.X <= left+size &&
		p.Y >= top && p.Y <= top+size
}

// ClampScale limits s to [MinScale, MaxScale]. NaN maps to MinScale.
func ClampScale(s float64) float64 {
	if math.IsNaN(s) {
		return MinScale
	}
	return math.Max(MinScale, math.Min(MaxScale, s))
}
