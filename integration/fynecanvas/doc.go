// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package fynecanvas shows an avatar.Session in a fyne window and feeds it
// pointer input.
//
// The widget maps its own size onto the CanvasSize x CanvasSize logical
// canvas, so it can be laid out at any size:
//
//	s, _ := avatar.NewSession(avatar.WithResolver(avatar.DirResolver("assets")))
//	c := fynecanvas.New(s)
//	c.Start(ctx) // apply decodes as they finish
//	w.SetContent(c)
//
// Input mapping:
//
//   - primary press: PressStart
//   - drag: PressMove
//   - release, drag end or pointer leaving the widget: PressEnd
//   - wheel: Zoom, scrolling up zooms in
//
// # Thread Safety
//
// The widget owns a lock around the session. Host code must reach the
// session through Update once the widget exists, and must not call
// Session.Settle while Start is running.
package fynecanvas
