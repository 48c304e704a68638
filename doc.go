// Package avatar composes circular profile pictures.
//
// # Overview
//
// A Session holds everything one editing canvas needs: the uploaded photo,
// the selected overlay pattern and its transform, and the selected
// background. Input events (press, move, release, wheel) mutate the overlay
// transform; every change re-renders the frame from scratch.
//
// # Quick Start
//
//	s, err := avatar.NewSession(avatar.WithResolver(avatar.DirResolver("assets")))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer s.Close()
//
//	_ = s.UploadPhoto(ctx, photoBytes)
//	_ = s.SelectOverlay(ctx, 0)
//	_ = s.Settle(ctx) // wait for decodes
//
//	s.PressStart(128, 128)
//	s.PressMove(150, 140)
//	s.PressEnd()
//	s.Zoom(-1)
//
//	_, _ = s.SavePNG(".") // writes discord-profile.png
//
// # Layers
//
// Frames are composed bottom to top:
//   - background, drawn behind everything and only inside the avatar circle
//   - photo, stretched to the canvas and clipped to the avatar circle
//   - overlay, a square of OverlayBaseSize*Scale centered on the transform,
//     never clipped
//
// # Coordinate System
//
// The canvas is CanvasSize x CanvasSize logical units, origin top-left,
// X right, Y down. The avatar circle has radius AvatarRadius and is
// centered on the canvas.
//
// # Loading
//
// Decoding is asynchronous. Completed decodes arrive on Session.Completions
// and are applied with Session.Apply (or Session.Settle). Every load slot
// carries a generation counter, so a decode that finishes after its
// selection was replaced is dropped.
package avatar

// Canvas geometry. These values are part of the export contract.
const (
	// CanvasSize is the width and height of a frame.
	CanvasSize = 256

	// AvatarRadius is the radius of the circular avatar region.
	AvatarRadius = 128

	// OverlayBaseSize is the side of the overlay square at scale 1.
	OverlayBaseSize = 256
)

// Overlay scale limits and wheel steps.
const (
	MinScale = 0.2
	MaxScale = 3.0

	// ZoomInFactor is applied when the wheel moves away from the user.
	ZoomInFactor = 1.08

	// ZoomOutFactor is applied when the wheel moves toward the user.
	// It is not the inverse of ZoomInFactor.
	ZoomOutFactor = 0.92
)

// ExportFilename is the file name offered for a saved frame.
const ExportFilename = "discord-profile.png"

// avatarCenter is the center of the canvas and of the avatar circle.
const avatarCenter = CanvasSize / 2
