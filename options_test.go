package avatar

import (
	"image"
	"testing"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/avatar/internal/assetcache"
)

// TestDefaultOptions tests the zero configuration.
func TestDefaultOptions(t *testing.T) {
	o := defaultOptions()
	if o.catalog != nil || o.resolver != nil || o.interp != nil || o.frameHook != nil {
		t.Errorf("defaultOptions() = %+v, want empty collaborators", o)
	}
	if o.cacheSize != assetcache.DefaultCapacity {
		t.Errorf("cacheSize = %d, want %d", o.cacheSize, assetcache.DefaultCapacity)
	}
}

// TestOptionsApply tests that each option sets its field.
func TestOptionsApply(t *testing.T) {
	cat := DefaultCatalog()
	res := DirResolver(t.TempDir())
	called := false

	o := defaultOptions()
	for _, opt := range []Option{
		WithCatalog(cat),
		WithResolver(res),
		WithInterpolator(xdraw.NearestNeighbor),
		WithFrameHook(func(*image.RGBA) { called = true }),
		WithCacheSize(3),
	} {
		opt(&o)
	}

	if o.catalog != cat {
		t.Error("WithCatalog not applied")
	}
	if o.resolver != res {
		t.Error("WithResolver not applied")
	}
	if o.interp != xdraw.NearestNeighbor {
		t.Error("WithInterpolator not applied")
	}
	if o.cacheSize != 3 {
		t.Errorf("cacheSize = %d, want 3", o.cacheSize)
	}
	o.frameHook(nil)
	if !called {
		t.Error("WithFrameHook not applied")
	}
}

func TestNewSessionDefaultCatalog(t *testing.T) {
	s, err := NewSession()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if len(s.Catalog().Overlays) != len(DefaultCatalog().Overlays) {
		t.Errorf("session catalog has %d overlays, want the built-in list", len(s.Catalog().Overlays))
	}
}
