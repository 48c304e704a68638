package main

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/gogpu/avatar"
)

func TestParseEvents(t *testing.T) {
	got, err := parseEvents("press:128,128 move:150,140;release wheel:-1 zoom:+1")
	if err != nil {
		t.Fatalf("parseEvents() error = %v", err)
	}
	want := []event{
		{kind: eventPress, x: 128, y: 128},
		{kind: eventMove, x: 150, y: 140},
		{kind: eventRelease},
		{kind: eventWheel, y: -1},
		{kind: eventWheel, y: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d events, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestParseEventsErrors(t *testing.T) {
	for _, script := range []string{"jump", "press:1", "move:a,b", "wheel:x"} {
		if _, err := parseEvents(script); err == nil {
			t.Errorf("parseEvents(%q) should fail", script)
		}
	}
	if got, err := parseEvents("  "); err != nil || len(got) != 0 {
		t.Errorf("parseEvents(blank) = %v, %v", got, err)
	}
}

func writePNG(t *testing.T, path string, c color.RGBA) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	assets := filepath.Join(dir, "assets")
	writePNG(t, filepath.Join(assets, "patterns", "pattern1.png"), color.RGBA{G: 255, A: 255})
	photo := filepath.Join(dir, "me.png")
	writePNG(t, photo, color.RGBA{B: 255, A: 255})
	out := filepath.Join(dir, "out.png")

	cfg := config{
		photo:      photo,
		overlay:    "0",
		background: "Blurple",
		assets:     assets,
		events:     "wheel:1 wheel:1 wheel:1 wheel:1 wheel:1 wheel:1 wheel:1 wheel:1 press:128,128 move:20,20 release",
		output:     out,
	}
	if err := run(context.Background(), cfg, &bytes.Buffer{}); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	// The overlay shrank and moved to the top-left; the center shows the photo.
	if r, g, b, a := img.At(128, 128).RGBA(); a != 0xffff || g != 0 || r != 0 || b < 0xfe00 {
		t.Errorf("center = %v, want photo blue", img.At(128, 128))
	}
	if _, g, _, _ := img.At(20, 20).RGBA(); g < 0xfe00 {
		t.Errorf("(20, 20) = %v, want overlay green", img.At(20, 20))
	}
}

func TestRunBadPhoto(t *testing.T) {
	dir := t.TempDir()
	photo := filepath.Join(dir, "me.png")
	if err := os.WriteFile(photo, []byte("nope"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg := config{photo: photo, assets: dir, output: filepath.Join(dir, "out.png")}
	if err := run(context.Background(), cfg, &bytes.Buffer{}); err == nil {
		t.Error("run() with an undecodable photo should fail")
	}
}

func TestRunList(t *testing.T) {
	var buf bytes.Buffer
	if err := run(context.Background(), config{list: true}, &buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"Overlays:", "Pattern 1", "patterns/pattern-yellow.png", "Backgrounds:", "Blurple"} {
		if !strings.Contains(out, want) {
			t.Errorf("list output missing %q:\n%s", want, out)
		}
	}
}

func TestRunDumpCatalog(t *testing.T) {
	var buf bytes.Buffer
	if err := run(context.Background(), config{dump: "yaml"}, &buf); err != nil {
		t.Fatal(err)
	}
	c, err := avatar.DecodeCatalog(&buf, avatar.FormatYAML)
	if err != nil {
		t.Fatalf("dumped catalog does not decode: %v", err)
	}
	if len(c.Overlays) != len(avatar.DefaultCatalog().Overlays) {
		t.Errorf("got %d overlays", len(c.Overlays))
	}
	if err := run(context.Background(), config{dump: "xml"}, &buf); err == nil {
		t.Error("unknown dump format should fail")
	}
}

func TestCheckCatalog(t *testing.T) {
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	fsys := fstest.MapFS{
		"a.png":   {Data: buf.Bytes()},
		"bg.png":  {Data: buf.Bytes()},
		"bad.png": {Data: []byte("bad")},
	}
	r := avatar.FSResolver{FS: fsys}

	good := &avatar.Catalog{
		Overlays:    []avatar.OverlayEntry{{Label: "A", Ref: "a.png"}},
		Backgrounds: []avatar.Background{avatar.TransparentBackground, avatar.ImageBackground("BG", "bg.png")},
	}
	if err := checkCatalog(context.Background(), good, r); err != nil {
		t.Errorf("checkCatalog(good) = %v", err)
	}

	bad := &avatar.Catalog{
		Overlays:    []avatar.OverlayEntry{{Label: "A", Ref: "a.png"}, {Label: "Bad", Ref: "bad.png"}, {Label: "Gone", Ref: "gone.png"}},
		Backgrounds: []avatar.Background{avatar.TransparentBackground},
	}
	if err := checkCatalog(context.Background(), bad, r); err == nil {
		t.Error("checkCatalog(bad) should fail")
	}
}
