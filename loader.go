package avatar

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"sync"

	"github.com/gogpu/avatar/internal/assetcache"
	"github.com/gogpu/avatar/internal/imageio"
)

// Slot identifies which layer a decode is for.
type Slot uint8

const (
	SlotPhoto Slot = iota
	SlotOverlay
	SlotBackground

	slotCount
)

// String returns the slot name.
func (s Slot) String() string {
	switch s {
	case SlotPhoto:
		return "photo"
	case SlotOverlay:
		return "overlay"
	case SlotBackground:
		return "background"
	default:
		return fmt.Sprintf("Slot(%d)", uint8(s))
	}
}

// Completion is the result of one asynchronous decode.
type Completion struct {
	Slot Slot
	// Gen is the slot generation the decode was started under.
	Gen uint64
	// Ref is the asset reference, empty for uploaded photos.
	Ref   string
	Image image.Image
	Err   error
}

// loader runs decodes on their own goroutines and hands results back on a
// single channel. Generation counters are owned by the session goroutine;
// decode goroutines only read their own captured values.
type loader struct {
	resolver Resolver
	cache    *assetcache.Cache

	gens    [slotCount]uint64
	pending int

	out  chan Completion
	done chan struct{}
	wg   sync.WaitGroup
}

func newLoader(r Resolver, cache *assetcache.Cache) *loader {
	return &loader{
		resolver: r,
		cache:    cache,
		out:      make(chan Completion),
		done:     make(chan struct{}),
	}
}

// invalidate bumps the slot generation, orphaning any decode in flight.
func (l *loader) invalidate(slot Slot) uint64 {
	l.gens[slot]++
	return l.gens[slot]
}

// current reports whether c belongs to the latest request for its slot.
// Generation 0 never belongs to a request.
func (l *loader) current(c Completion) bool {
	return c.Slot < slotCount && c.Gen != 0 && c.Gen == l.gens[c.Slot]
}

// loadRef starts decoding a catalog asset. Cached images still complete
// through the channel so every request is applied the same way.
func (l *loader) loadRef(ctx context.Context, slot Slot, ref string) uint64 {
	gen := l.invalidate(slot)
	resolver, cache := l.resolver, l.cache

	l.spawn(func() Completion {
		c := Completion{Slot: slot, Gen: gen, Ref: ref}
		if img, ok := cache.Get(ref); ok {
			c.Image = img
			return c
		}
		if resolver == nil {
			c.Err = ErrNoResolver
			return c
		}
		rc, err := resolver.Open(ctx, ref)
		if err != nil {
			c.Err = err
			return c
		}
		defer func() { _ = rc.Close() }()

		img, err := imageio.Decode(rc)
		if err != nil {
			c.Err = fmt.Errorf("avatar: %s %q: %w", slot, ref, err)
			return c
		}
		cache.Put(ref, img)
		c.Image = img
		return c
	})
	return gen
}

// loadBytes starts decoding in-memory image data. The data is copied.
func (l *loader) loadBytes(slot Slot, data []byte) uint64 {
	gen := l.invalidate(slot)
	data = bytes.Clone(data)

	l.spawn(func() Completion {
		c := Completion{Slot: slot, Gen: gen}
		img, err := imageio.DecodeBytes(data)
		if err != nil {
			c.Err = fmt.Errorf("avatar: %s: %w", slot, err)
			return c
		}
		c.Image = img
		return c
	})
	return gen
}

func (l *loader) spawn(work func() Completion) {
	l.pending++
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		c := work()
		select {
		case l.out <- c:
		case <-l.done:
		}
	}()
}

// received records that one completion left the channel.
func (l *loader) received() {
	if l.pending > 0 {
		l.pending--
	}
}

// close stops delivery, waits for decode goroutines and closes the channel.
func (l *loader) close() {
	close(l.done)
	l.wg.Wait()
	close(l.out)
	l.pending = 0
}
