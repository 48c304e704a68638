// Package blend implements the Porter-Duff operators used to compose
// avatar frames.
//
// All operations work on premultiplied alpha bytes, which is the layout of
// image.RGBA.
//
// References:
//   - Porter-Duff: "Compositing Digital Images" (1984)
//   - W3C Compositing and Blending Level 1: https://www.w3.org/TR/compositing-1/
package blend

import "fmt"

// Mode is a Porter-Duff compositing operator.
type Mode uint8

const (
	// SourceOver draws the source on top of the destination.
	// Result: S + D*(1-Sa)
	SourceOver Mode = iota

	// DestinationOver draws the source behind the destination.
	// Result: S*(1-Da) + D
	DestinationOver
)

// String returns the canvas name of the operator.
func (m Mode) String() string {
	switch m {
	case SourceOver:
		return "source-over"
	case DestinationOver:
		return "destination-over"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// Func is the signature of a per-pixel operator.
// All values are premultiplied alpha, 0-255.
type Func func(sr, sg, sb, sa, dr, dg, db, da byte) (r, g, b, a byte)

// FuncFor returns the operator for mode. Unknown modes fall back to
// SourceOver.
func FuncFor(mode Mode) Func {
	switch mode {
	case DestinationOver:
		return destinationOver
	default:
		return sourceOver
	}
}

// sourceOver composites source over destination.
// Formula: S + D * (1 - Sa)
func sourceOver(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	invSa := inv255(sa)
	return addClamp(sr, mulDiv255(dr, invSa)),
		addClamp(sg, mulDiv255(dg, invSa)),
		addClamp(sb, mulDiv255(db, invSa)),
		addClamp(sa, mulDiv255(da, invSa))
}

// destinationOver composites destination over source.
// Formula: S * (1 - Da) + D
func destinationOver(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	invDa := inv255(da)
	return addClamp(mulDiv255(sr, invDa), dr),
		addClamp(mulDiv255(sg, invDa), dg),
		addClamp(mulDiv255(sb, invDa), db),
		addClamp(mulDiv255(sa, invDa), da)
}
