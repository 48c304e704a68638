// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package fynecanvas

import (
	"context"
	"errors"
	"image"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/gogpu/avatar"
)

// ErrAlreadyStarted is returned by Start when the completion pump is
// already running.
var ErrAlreadyStarted = errors.New("fynecanvas: already started")

// Canvas is a fyne widget displaying the frames of one avatar.Session.
type Canvas struct {
	widget.BaseWidget

	mu      sync.Mutex
	session *avatar.Session
	frame   *image.RGBA
	pressed bool
	started bool
	onDone  func(avatar.Completion, bool)

	raster *canvas.Raster
}

var (
	_ fyne.Widget       = (*Canvas)(nil)
	_ fyne.Draggable    = (*Canvas)(nil)
	_ fyne.Scrollable   = (*Canvas)(nil)
	_ desktop.Mouseable = (*Canvas)(nil)
	_ desktop.Hoverable = (*Canvas)(nil)
)

// New creates a widget for s and renders the initial frame.
func New(s *avatar.Session) *Canvas {
	c := &Canvas{
		session: s,
		frame:   s.RenderFrame(),
	}
	c.raster = canvas.NewRaster(func(w, h int) image.Image {
		return c.Frame()
	})
	c.raster.ScaleMode = canvas.ImageScaleSmooth
	c.ExtendBaseWidget(c)
	return c
}

// Frame returns the last rendered frame. The frame is never modified after
// it is returned.
func (c *Canvas) Frame() *image.RGBA {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frame
}

// Update runs fn with exclusive access to the session and redraws
// afterwards.
func (c *Canvas) Update(fn func(s *avatar.Session) error) error {
	c.mu.Lock()
	err := fn(c.session)
	c.frame = c.session.RenderFrame()
	c.mu.Unlock()

	c.Refresh()
	return err
}

// OnCompletion registers fn to be called by the completion pump after each
// completion is handled. current is false for completions dropped as stale.
// fn runs on the pump goroutine with the session lock held and must not
// call back into the Canvas.
func (c *Canvas) OnCompletion(fn func(comp avatar.Completion, current bool)) {
	c.mu.Lock()
	c.onDone = fn
	c.mu.Unlock()
}

// Start applies decode completions in a goroutine until ctx is done or
// the session is closed.
func (c *Canvas) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return ErrAlreadyStarted
	}
	c.started = true
	completions := c.session.Completions()
	c.mu.Unlock()

	go c.pump(ctx, completions)
	return nil
}

func (c *Canvas) pump(ctx context.Context, completions <-chan avatar.Completion) {
	for {
		select {
		case <-ctx.Done():
			return
		case comp, ok := <-completions:
			if !ok {
				return
			}
			c.apply(func(s *avatar.Session) bool {
				current := s.Current(comp)
				changed := s.Apply(comp)
				if c.onDone != nil {
					c.onDone(comp, current)
				}
				return changed
			})
		}
	}
}

// apply runs fn under the lock and redraws when it reports a change.
func (c *Canvas) apply(fn func(s *avatar.Session) bool) {
	c.mu.Lock()
	changed := fn(c.session)
	if changed {
		c.frame = c.session.RenderFrame()
	}
	c.mu.Unlock()

	if changed {
		c.raster.Refresh()
	}
}

// toCanvas maps a widget position onto logical canvas units.
func (c *Canvas) toCanvas(p fyne.Position) (x, y float64) {
	size := c.Size()
	if size.Width <= 0 || size.Height <= 0 {
		return float64(p.X), float64(p.Y)
	}
	return float64(p.X) * avatar.CanvasSize / float64(size.Width),
		float64(p.Y) * avatar.CanvasSize / float64(size.Height)
}

// CreateRenderer implements fyne.Widget.
func (c *Canvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(c.raster)
}

// MinSize keeps the canvas at least one logical unit per pixel.
func (c *Canvas) MinSize() fyne.Size {
	return fyne.NewSize(avatar.CanvasSize, avatar.CanvasSize)
}

// MouseDown implements desktop.Mouseable.
func (c *Canvas) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	x, y := c.toCanvas(ev.Position)
	c.apply(func(s *avatar.Session) bool {
		c.pressed = true
		return s.PressStart(x, y)
	})
}

// MouseUp implements desktop.Mouseable.
func (c *Canvas) MouseUp(*desktop.MouseEvent) {
	c.release()
}

// Dragged implements fyne.Draggable. Without a preceding MouseDown (touch
// input) the drag's start point is pressed first.
func (c *Canvas) Dragged(ev *fyne.DragEvent) {
	x, y := c.toCanvas(ev.Position)
	sx, sy := c.toCanvas(ev.Position.Subtract(ev.Dragged))
	c.apply(func(s *avatar.Session) bool {
		if !c.pressed {
			c.pressed = true
			s.PressStart(sx, sy)
		}
		return s.PressMove(x, y)
	})
}

// DragEnd implements fyne.Draggable.
func (c *Canvas) DragEnd() {
	c.release()
}

// Scrolled implements fyne.Scrollable. Scrolling up zooms in.
func (c *Canvas) Scrolled(ev *fyne.ScrollEvent) {
	dir := -float64(ev.Scrolled.DY)
	c.apply(func(s *avatar.Session) bool {
		return s.Zoom(dir)
	})
}

// MouseIn implements desktop.Hoverable.
func (c *Canvas) MouseIn(*desktop.MouseEvent) {}

// MouseMoved implements desktop.Hoverable.
func (c *Canvas) MouseMoved(*desktop.MouseEvent) {}

// MouseOut implements desktop.Hoverable. Leaving the widget ends a drag.
func (c *Canvas) MouseOut() {
	c.release()
}

func (c *Canvas) release() {
	c.apply(func(s *avatar.Session) bool {
		c.pressed = false
		return s.PressEnd()
	})
}
