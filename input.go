package avatar

import "gonum.org/v1/gonum/spatial/r2"

// Interpreter turns canvas-local pointer and wheel events into changes of an
// OverlayTransform.
//
// Each method reports whether the transform changed in a way that needs a
// new frame. Events that make no sense in the current state (a drag with no
// overlay, a move without a press) are ignored, not errors.
type Interpreter struct {
	t     *OverlayTransform
	ready func() bool
}

// NewInterpreter returns an interpreter that mutates t. ready reports
// whether an overlay image is currently drawable; press and wheel events are
// ignored while it returns false.
func NewInterpreter(t *OverlayTransform, ready func() bool) *Interpreter {
	if ready == nil {
		ready = func() bool { return true }
	}
	return &Interpreter{t: t, ready: ready}
}

// PressStart begins a drag when (px, py) is inside the overlay box.
// A press outside the box leaves the transform untouched.
func (in *Interpreter) PressStart(px, py float64) bool {
	if !in.ready() {
		return false
	}
	p := r2.Vec{X: px, Y: py}
	if !in.t.Contains(p) {
		return false
	}
	in.t.Dragging = true
	in.t.DragOffset = r2.Sub(p, in.t.Center)
	return false
}

// PressMove moves the overlay so the offset captured at PressStart is kept.
// Position is not bounded; the overlay may leave the canvas.
func (in *Interpreter) PressMove(px, py float64) bool {
	if !in.t.Dragging {
		return false
	}
	in.t.Center = r2.Sub(r2.Vec{X: px, Y: py}, in.t.DragOffset)
	return true
}

// PressEnd ends any drag. It is safe to call when no drag is active.
func (in *Interpreter) PressEnd() bool {
	in.t.Dragging = false
	return false
}

// Zoom applies one wheel step. direction is the sign of the wheel delta:
// negative zooms in and positive zooms out. Zero, as sent by a
// horizontal-only wheel, is ignored instead of counting as a zoom out.
func (in *Interpreter) Zoom(direction float64) bool {
	if !in.ready() || direction == 0 {
		return false
	}
	if direction < 0 {
		in.t.Scale *= ZoomInFactor
	} else {
		in.t.Scale *= ZoomOutFactor
	}
	in.t.Scale = ClampScale(in.t.Scale)
	return true
}
