package avatar

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/avatar/internal/assetcache"
)

// ErrSessionClosed is returned by operations on a closed Session.
var ErrSessionClosed = errors.New("avatar: session closed")

// Session is one editing canvas: the uploaded photo, the selected overlay
// and its transform, and the selected background.
//
// A Session is not safe for concurrent use. Hosts call it from one
// goroutine (or under their own lock) and feed it the values received from
// Completions.
type Session struct {
	catalog *Catalog
	comp    *Compositor
	loader  *loader
	hook    func(*image.RGBA)

	transform OverlayTransform
	input     *Interpreter

	photo           image.Image
	overlay         image.Image
	overlayRef      string
	background      Background
	backgroundImage image.Image

	closed bool
}

// NewSession creates a session with the default transform and the
// catalog's first background selected. No frame is emitted until something
// changes; call RenderFrame for the initial frame.
func NewSession(opts ...Option) (*Session, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.catalog == nil {
		o.catalog = DefaultCatalog()
	}
	if err := o.catalog.Validate(); err != nil {
		return nil, err
	}

	s := &Session{
		catalog:   o.catalog,
		comp:      NewCompositor(o.interp),
		loader:    newLoader(o.resolver, assetcache.New(o.cacheSize)),
		hook:      o.frameHook,
		transform: NewOverlayTransform(),
	}
	s.input = NewInterpreter(&s.transform, s.HasOverlay)
	s.selectBackground(context.Background(), o.catalog.DefaultBackground())
	return s, nil
}

// Close stops pending decodes. Completions still in flight are dropped.
// Close is idempotent.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.loader.close()

	st := s.loader.cache.Stats()
	Logger().Debug("avatar: session closed",
		"cached", st.Len, "hits", st.Hits, "misses", st.Misses)
	return nil
}

// Catalog returns the session's catalog. Callers must not modify it.
func (s *Session) Catalog() *Catalog { return s.catalog }

// Transform returns a copy of the overlay transform.
func (s *Session) Transform() OverlayTransform { return s.transform }

// Background returns the selected background.
func (s *Session) Background() Background { return s.background }

// HasPhoto reports whether a decoded photo is present.
func (s *Session) HasPhoto() bool { return s.photo != nil }

// HasOverlay reports whether a decoded overlay is present. Input is
// ignored while it is false.
func (s *Session) HasOverlay() bool { return s.overlay != nil }

// OverlayRef returns the reference of the selected overlay, or "".
func (s *Session) OverlayRef() string { return s.overlayRef }

// SelectOverlay selects catalog overlay i.
func (s *Session) SelectOverlay(ctx context.Context, i int) error {
	entry, err := s.catalog.Overlay(i)
	if err != nil {
		return err
	}
	return s.SelectOverlayRef(ctx, entry.Ref)
}

// SelectOverlayRef selects an overlay by asset reference. The previous
// overlay disappears at once; the transform resets to defaults when the new
// image is applied.
func (s *Session) SelectOverlayRef(ctx context.Context, ref string) error {
	if s.closed {
		return ErrSessionClosed
	}
	if ref == "" {
		return fmt.Errorf("%w: empty overlay reference", ErrNoCatalogEntry)
	}
	s.overlay = nil
	s.overlayRef = ref
	s.transform.Dragging = false
	s.loader.loadRef(ctx, SlotOverlay, ref)
	Logger().Info("avatar: overlay selected", "ref", ref)
	s.emit()
	return nil
}

// ClearOverlay removes the overlay and drops any overlay decode in flight.
func (s *Session) ClearOverlay() {
	if s.closed {
		return
	}
	s.loader.invalidate(SlotOverlay)
	s.overlay = nil
	s.overlayRef = ""
	s.transform.Reset()
	s.emit()
}

// SelectBackground selects catalog background i.
func (s *Session) SelectBackground(ctx context.Context, i int) error {
	bg, err := s.catalog.Background(i)
	if err != nil {
		return err
	}
	return s.SetBackground(ctx, bg)
}

// SetBackground selects bg, which need not be in the catalog. Colour
// backgrounds apply immediately; image backgrounds decode asynchronously and
// the background layer is absent until then.
func (s *Session) SetBackground(ctx context.Context, bg Background) error {
	if s.closed {
		return ErrSessionClosed
	}
	if err := bg.Validate(); err != nil {
		return err
	}
	s.selectBackground(ctx, bg)
	Logger().Info("avatar: background selected", "label", bg.Label, "kind", bg.Kind.String())
	s.emit()
	return nil
}

func (s *Session) selectBackground(ctx context.Context, bg Background) {
	s.background = bg
	s.backgroundImage = nil
	if bg.Kind == BackgroundImage {
		s.loader.loadRef(ctx, SlotBackground, bg.Value)
		return
	}
	s.loader.invalidate(SlotBackground)
}

// UploadPhoto starts decoding a user photo. Empty data is ignored. The
// current photo stays visible until the new one decodes and is kept if the
// decode fails.
func (s *Session) UploadPhoto(ctx context.Context, data []byte) error {
	if s.closed {
		return ErrSessionClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	s.loader.loadBytes(SlotPhoto, data)
	return nil
}

// PressStart forwards a pointer press in canvas units.
func (s *Session) PressStart(x, y float64) bool {
	return s.changed(s.input.PressStart(x, y))
}

// PressMove forwards a pointer move in canvas units.
func (s *Session) PressMove(x, y float64) bool {
	return s.changed(s.input.PressMove(x, y))
}

// PressEnd forwards a pointer release or leave.
func (s *Session) PressEnd() bool {
	return s.changed(s.input.PressEnd())
}

// Zoom forwards one wheel step; see Interpreter.Zoom.
func (s *Session) Zoom(direction float64) bool {
	return s.changed(s.input.Zoom(direction))
}

func (s *Session) changed(ok bool) bool {
	if ok {
		s.emit()
	}
	return ok
}

// Completions delivers finished decodes. Every value received must be
// passed to Apply. The channel is closed by Close.
func (s *Session) Completions() <-chan Completion {
	return s.loader.out
}

// Apply installs a completed decode and reports whether the frame changed.
// Completions for a superseded selection are dropped. A failed decode
// leaves its layer as it was: absent for overlay and background, the
// previous photo for photo.
func (s *Session) Apply(c Completion) bool {
	if s.closed {
		return false
	}
	s.loader.received()

	if !s.loader.current(c) {
		Logger().Debug("avatar: stale decode dropped", "slot", c.Slot.String(), "gen", c.Gen, "ref", c.Ref)
		return false
	}
	if c.Err != nil {
		Logger().Warn("avatar: decode failed", "slot", c.Slot.String(), "ref", c.Ref, "err", c.Err)
		return false
	}

	// Photo and background are fitted once here; frames only blend them.
	switch c.Slot {
	case SlotPhoto:
		s.photo = s.comp.Fit(c.Image)
	case SlotOverlay:
		s.overlay = c.Image
		s.transform.Reset()
	case SlotBackground:
		s.backgroundImage = s.comp.Fit(c.Image)
	}
	s.emit()
	return true
}

// Current reports whether c answers the latest request for its slot, so
// that applying it would not be dropped as stale.
func (s *Session) Current(c Completion) bool {
	return !s.closed && s.loader.current(c)
}

// Pending returns the number of decodes whose completion has not been
// applied yet, stale ones included.
func (s *Session) Pending() int { return s.loader.pending }

// Settle applies completions until no decode is pending or ctx is done.
func (s *Session) Settle(ctx context.Context) error {
	if s.closed {
		return ErrSessionClosed
	}
	for s.loader.pending > 0 {
		select {
		case c := <-s.loader.out:
			s.Apply(c)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// RenderFrame draws the current state into a new frame.
func (s *Session) RenderFrame() *image.RGBA {
	return s.comp.Render(s.layers())
}

func (s *Session) layers() Layers {
	return Layers{
		Photo:           s.photo,
		Overlay:         s.overlay,
		Transform:       s.transform,
		Background:      s.background,
		BackgroundImage: s.backgroundImage,
	}
}

// emit renders a frame for the hook, if any.
func (s *Session) emit() {
	if s.hook != nil {
		s.hook(s.RenderFrame())
	}
}
