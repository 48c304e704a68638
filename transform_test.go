package avatar

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestNewOverlayTransform(t *testing.T) {
	tr := NewOverlayTransform()
	if tr.X() != 128 || tr.Y() != 128 {
		t.Errorf("center = (%v, %v), want (128, 128)", tr.X(), tr.Y())
	}
	if tr.Scale != 1 {
		t.Errorf("Scale = %v, want 1", tr.Scale)
	}
	if tr.Dragging {
		t.Error("new transform should not be dragging")
	}
	if tr.Size() != OverlayBaseSize {
		t.Errorf("Size() = %v, want %v", tr.Size(), OverlayBaseSize)
	}
}

func TestOverlayTransformReset(t *testing.T) {
	tr := OverlayTransform{
		Center:     r2.Vec{X: -40, Y: 900},
		Scale:      2.7,
		Dragging:   true,
		DragOffset: r2.Vec{X: 3, Y: 4},
	}
	tr.Reset()
	if tr != NewOverlayTransform() {
		t.Errorf("Reset() = %+v, want %+v", tr, NewOverlayTransform())
	}
}

func TestOverlayTransformBounds(t *testing.T) {
	tests := []struct {
		name   string
		center r2.Vec
		scale  float64
		want   r2.Box
	}{
		{"default", r2.Vec{X: 128, Y: 128}, 1, r2.Box{Min: r2.Vec{X: 0, Y: 0}, Max: r2.Vec{X: 256, Y: 256}}},
		{"half", r2.Vec{X: 128, Y: 128}, 0.5, r2.Box{Min: r2.Vec{X: 64, Y: 64}, Max: r2.Vec{X: 192, Y: 192}}},
		{"off canvas", r2.Vec{X: -10, Y: 300}, 0.25, r2.Box{Min: r2.Vec{X: -42, Y: 268}, Max: r2.Vec{X: 22, Y: 332}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := OverlayTransform{Center: tt.center, Scale: tt.scale}
			if got := tr.Bounds(); got != tt.want {
				t.Errorf("Bounds() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestOverlayTransformContainsInclusive(t *testing.T) {
	tr := OverlayTransform{Center: r2.Vec{X: 128, Y: 128}, Scale: 0.5}
	// Box is [64, 192] on both axes.
	tests := []struct {
		p    r2.Vec
		want bool
	}{
		{r2.Vec{X: 128, Y: 128}, true},
		{r2.Vec{X: 64, Y: 128}, true},
		{r2.Vec{X: 192, Y: 128}, true},
		{r2.Vec{X: 128, Y: 64}, true},
		{r2.Vec{X: 128, Y: 192}, true},
		{r2.Vec{X: 64, Y: 64}, true},
		{r2.Vec{X: 192, Y: 192}, true},
		{r2.Vec{X: 63, Y: 128}, false},
		{r2.Vec{X: 193, Y: 128}, false},
		{r2.Vec{X: 128, Y: 63}, false},
		{r2.Vec{X: 128, Y: 193}, false},
	}
	for _, tt := range tests {
		if got := tr.Contains(tt.p); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestClampScale(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{1, 1},
		{0.2, 0.2},
		{3, 3},
		{0.1, MinScale},
		{-5, MinScale},
		{3.5, MaxScale},
		{math.Inf(1), MaxScale},
		{math.Inf(-1), MinScale},
		{math.NaN(), MinScale},
	}
	for _, tt := range tests {
		if got := ClampScale(tt.in); got != tt.want {
			t.Errorf("ClampScale(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
