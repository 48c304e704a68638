// Command avatar composes a circular profile picture without a window.
//
// Usage:
//
//	avatar -photo me.jpg -overlay 2 -background Blurple \
//	    -events "press:128,128 move:150,140 release wheel:-1" -o discord-profile.png
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/gogpu/avatar"
	"github.com/gogpu/avatar/internal/imageio"
)

type config struct {
	photo       string
	overlay     string
	background  string
	catalogPath string
	assets      string
	events      string
	output      string
	list        bool
	check       bool
	dump        string
}

func main() {
	var (
		cfg     config
		verbose bool
	)
	flag.StringVar(&cfg.photo, "photo", "", "photo file to upload")
	flag.StringVar(&cfg.overlay, "overlay", "", "overlay: catalog index or asset reference")
	flag.StringVar(&cfg.background, "background", "", "background: catalog index, label, colour or image reference")
	flag.StringVar(&cfg.catalogPath, "catalog", "", "catalog file (.toml, .yaml); built-in catalog if empty")
	flag.StringVar(&cfg.assets, "assets", "assets", "directory catalog references are resolved against")
	flag.StringVar(&cfg.events, "events", "", `input script, e.g. "press:128,128 move:150,140 release wheel:-1"`)
	flag.StringVar(&cfg.output, "o", avatar.ExportFilename, "output PNG file")
	flag.BoolVar(&cfg.list, "list", false, "list catalog entries and exit")
	flag.BoolVar(&cfg.check, "check", false, "decode every catalog asset and exit")
	flag.StringVar(&cfg.dump, "dump-catalog", "", "write the catalog as toml or yaml to stdout and exit")
	flag.BoolVar(&verbose, "v", false, "log decodes and renders to stderr")
	flag.Parse()

	if verbose {
		avatar.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	if err := run(context.Background(), cfg, os.Stdout); err != nil {
		log.Fatalf("avatar: %v", err)
	}
}

func run(ctx context.Context, cfg config, stdout io.Writer) error {
	catalog := avatar.DefaultCatalog()
	if cfg.catalogPath != "" {
		c, err := avatar.LoadCatalog(cfg.catalogPath)
		if err != nil {
			return err
		}
		catalog = c
	}
	resolver := avatar.DirResolver(cfg.assets)

	switch {
	case cfg.list:
		listCatalog(stdout, catalog)
		return nil
	case cfg.check:
		return checkCatalog(ctx, catalog, resolver)
	case cfg.dump != "":
		format, err := avatar.FormatFromPath("catalog." + cfg.dump)
		if err != nil {
			return err
		}
		return avatar.EncodeCatalog(stdout, catalog, format)
	}

	events, err := parseEvents(cfg.events)
	if err != nil {
		return err
	}

	s, err := avatar.NewSession(avatar.WithCatalog(catalog), avatar.WithResolver(resolver))
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if err := selectBackground(ctx, s, cfg.background); err != nil {
		return err
	}
	if cfg.photo != "" {
		data, err := os.ReadFile(cfg.photo)
		if err != nil {
			return fmt.Errorf("read photo: %w", err)
		}
		if err := s.UploadPhoto(ctx, data); err != nil {
			return err
		}
	}
	if err := selectOverlay(ctx, s, cfg.overlay); err != nil {
		return err
	}
	if err := s.Settle(ctx); err != nil {
		return err
	}
	if cfg.photo != "" && !s.HasPhoto() {
		return fmt.Errorf("photo %s could not be decoded", cfg.photo)
	}

	for _, ev := range events {
		ev.apply(s)
	}

	if err := writeFrame(s, cfg.output); err != nil {
		return err
	}
	log.Printf("Avatar saved to %s (%dx%d)\n", cfg.output, avatar.CanvasSize, avatar.CanvasSize)
	return nil
}

func selectOverlay(ctx context.Context, s *avatar.Session, v string) error {
	if v == "" {
		return nil
	}
	if i, err := strconv.Atoi(v); err == nil {
		return s.SelectOverlay(ctx, i)
	}
	return s.SelectOverlayRef(ctx, v)
}

// selectBackground interprets v as a catalog index, a catalog label, an
// image reference (by extension) or a colour, in that order.
func selectBackground(ctx context.Context, s *avatar.Session, v string) error {
	if v == "" {
		return nil
	}
	if i, err := strconv.Atoi(v); err == nil {
		return s.SelectBackground(ctx, i)
	}
	if i := s.Catalog().FindBackground(v); i >= 0 {
		return s.SelectBackground(ctx, i)
	}
	if isImageRef(v) {
		return s.SetBackground(ctx, avatar.ImageBackground(v, v))
	}
	return s.SetBackground(ctx, avatar.ColorBackground(v, v))
}

func isImageRef(v string) bool {
	ext := strings.ToLower(filepath.Ext(v))
	for _, f := range imageio.Formats {
		if ext == f {
			return true
		}
	}
	return false
}

func writeFrame(s *avatar.Session, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := s.ExportPNG(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func listCatalog(w io.Writer, c *avatar.Catalog) {
	fmt.Fprintln(w, "Overlays:")
	for i, o := range c.Overlays {
		fmt.Fprintf(w, "  %2d  %-16s %s\n", i, o.Label, o.Ref)
	}
	fmt.Fprintln(w, "Backgrounds:")
	for i, b := range c.Backgrounds {
		fmt.Fprintf(w, "  %2d  %-16s %-6s %s\n", i, b.Label, b.Kind, b.Value)
	}
}

// checkCatalog decodes every referenced asset concurrently and reports the
// first failure.
func checkCatalog(ctx context.Context, c *avatar.Catalog, r avatar.Resolver) error {
	var refs []string
	for _, o := range c.Overlays {
		refs = append(refs, o.Ref)
	}
	for _, b := range c.Backgrounds {
		if b.Kind == avatar.BackgroundImage {
			refs = append(refs, b.Value)
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, ref := range refs {
		g.Go(func() error {
			rc, err := r.Open(ctx, ref)
			if err != nil {
				return err
			}
			defer func() { _ = rc.Close() }()
			img, err := imageio.Decode(rc)
			if err != nil {
				return fmt.Errorf("%s: %w", ref, err)
			}
			avatar.Logger().Debug("avatar: asset ok", "ref", ref, "size", img.Bounds().Size())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	log.Printf("%d assets ok\n", len(refs))
	return nil
}
