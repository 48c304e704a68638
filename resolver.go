package avatar

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"
)

// ErrNoResolver is returned when an asset reference must be opened but the
// session has no Resolver.
var ErrNoResolver = errors.New("avatar: no asset resolver")

// Resolver opens catalog asset references (overlay patterns, background
// images). How references map to bytes is up to the implementation.
type Resolver interface {
	Open(ctx context.Context, ref string) (io.ReadCloser, error)
}

// FSResolver resolves references as slash-separated paths inside FS.
type FSResolver struct {
	FS fs.FS
}

// Open implements Resolver.
func (r FSResolver) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name := path.Clean(strings.TrimPrefix(ref, "./"))
	if !fs.ValidPath(name) {
		return nil, fmt.Errorf("avatar: invalid asset reference %q", ref)
	}
	f, err := r.FS.Open(name)
	if err != nil {
		return nil, fmt.Errorf("avatar: open asset: %w", err)
	}
	return f, nil
}

// DirResolver resolves references relative to dir on the local disk.
func DirResolver(dir string) Resolver {
	return FSResolver{FS: os.DirFS(dir)}
}
