package avatar

import (
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/avatar/internal/assetcache"
)

// Option configures a Session during creation.
//
// Example:
//
//	s, err := avatar.NewSession(
//	    avatar.WithResolver(avatar.DirResolver("assets")),
//	    avatar.WithFrameHook(func(frame *image.RGBA) { show(frame) }),
//	)
type Option func(*options)

// options holds optional configuration for Session creation.
type options struct {
	catalog   *Catalog
	resolver  Resolver
	interp    xdraw.Interpolator
	frameHook func(*image.RGBA)
	cacheSize int
}

// defaultOptions returns the default session options.
func defaultOptions() options {
	return options{
		catalog:   nil, // DefaultCatalog
		interp:    nil, // xdraw.CatmullRom
		cacheSize: assetcache.DefaultCapacity,
	}
}

// WithCatalog sets the overlay and background lists. The catalog is
// validated by NewSession.
func WithCatalog(c *Catalog) Option {
	return func(o *options) {
		o.catalog = c
	}
}

// WithResolver sets how catalog references are opened. Without a resolver
// only colour backgrounds and uploaded photos can be loaded.
func WithResolver(r Resolver) Option {
	return func(o *options) {
		o.resolver = r
	}
}

// WithInterpolator sets the resampler used to stretch the photo and
// background and to scale the overlay.
//
// Example:
//
//	// Faster, blockier previews
//	s, _ := avatar.NewSession(avatar.WithInterpolator(xdraw.ApproxBiLinear))
func WithInterpolator(interp xdraw.Interpolator) Option {
	return func(o *options) {
		o.interp = interp
	}
}

// WithFrameHook registers fn to receive every frame rendered because of a
// state change. The frame is freshly allocated and owned by fn.
func WithFrameHook(fn func(*image.RGBA)) Option {
	return func(o *options) {
		o.frameHook = fn
	}
}

// WithCacheSize sets how many decoded catalog assets are kept. Non-positive
// values select assetcache.DefaultCapacity.
func WithCacheSize(n int) Option {
	return func(o *options) {
		o.cacheSize = n
	}
}
