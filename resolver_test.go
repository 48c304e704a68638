package avatar

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

// blockingResolver holds every Open until release is closed.
type blockingResolver struct {
	release <-chan struct{}
}

func (r blockingResolver) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	<-r.release
	return nil, fs.ErrNotExist
}

func TestFSResolver(t *testing.T) {
	r := FSResolver{FS: fstest.MapFS{
		"patterns/a.png": {Data: []byte("a")},
	}}
	ctx := context.Background()

	tests := []struct {
		ref     string
		want    string
		wantErr bool
	}{
		{"patterns/a.png", "a", false},
		{"./patterns/a.png", "a", false},
		{"patterns/../patterns/a.png", "a", false},
		{"patterns/b.png", "", true},
		{"../secret.png", "", true},
		{"/patterns/a.png", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			rc, err := r.Open(ctx, tt.ref)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Open(%q) error = %v, wantErr %v", tt.ref, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			defer rc.Close()
			data, err := io.ReadAll(rc)
			if err != nil {
				t.Fatal(err)
			}
			if string(data) != tt.want {
				t.Errorf("read %q, want %q", data, tt.want)
			}
		})
	}
}

func TestFSResolverCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := FSResolver{FS: fstest.MapFS{}}.Open(ctx, "x.png")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Open() error = %v, want context.Canceled", err)
	}
}

func TestDirResolver(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "patterns"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "patterns", "p.png"), []byte("png"), 0o600); err != nil {
		t.Fatal(err)
	}

	rc, err := DirResolver(dir).Open(context.Background(), "patterns/p.png")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer rc.Close()

	if _, err := DirResolver(dir).Open(context.Background(), "patterns/none.png"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Open(missing) error = %v, want fs.ErrNotExist", err)
	}
}
