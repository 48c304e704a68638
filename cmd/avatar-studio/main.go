// Command avatar-studio is a desktop editor for circular profile pictures.
//
// Pick a photo, choose a pattern, drag it with the mouse, zoom with the
// wheel and download the result as discord-profile.png.
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"log/slog"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/gogpu/avatar"
	"github.com/gogpu/avatar/integration/fynecanvas"
	"github.com/gogpu/avatar/internal/imageio"
)

func main() {
	var (
		catalogPath = flag.String("catalog", "", "catalog file (.toml, .yaml); built-in catalog if empty")
		assets      = flag.String("assets", "assets", "directory catalog references are resolved against")
		verbose     = flag.Bool("v", false, "log decodes and renders to stderr")
	)
	flag.Parse()

	if *verbose {
		avatar.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	catalog := avatar.DefaultCatalog()
	if *catalogPath != "" {
		c, err := avatar.LoadCatalog(*catalogPath)
		if err != nil {
			log.Fatalf("avatar-studio: %v", err)
		}
		catalog = c
	}

	s, err := avatar.NewSession(
		avatar.WithCatalog(catalog),
		avatar.WithResolver(avatar.DirResolver(*assets)),
	)
	if err != nil {
		log.Fatalf("avatar-studio: %v", err)
	}
	defer func() { _ = s.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := app.New()
	w := a.NewWindow("Avatar Studio")
	st := newStudio(ctx, w, s)
	if err := st.canvas.Start(ctx); err != nil {
		log.Fatalf("avatar-studio: %v", err)
	}
	w.SetContent(st.layout())
	w.Resize(fyne.NewSize(720, 480))
	w.ShowAndRun()
}

type studio struct {
	ctx    context.Context
	win    fyne.Window
	canvas *fynecanvas.Canvas
	status *widget.Label

	// photoName is the latest upload. It is only touched with the canvas
	// lock held.
	photoName string
}

func newStudio(ctx context.Context, w fyne.Window, s *avatar.Session) *studio {
	st := &studio{
		ctx:    ctx,
		win:    w,
		canvas: fynecanvas.New(s),
		status: widget.NewLabel("Upload a photo to begin"),
	}
	st.canvas.OnCompletion(st.completed)
	return st
}

// completed reports the outcome of the latest photo upload.
func (st *studio) completed(c avatar.Completion, current bool) {
	if c.Slot != avatar.SlotPhoto || !current {
		return
	}
	if c.Err != nil {
		st.status.SetText("Could not decode " + st.photoName)
		return
	}
	st.status.SetText(st.photoName)
}

func (st *studio) layout() fyne.CanvasObject {
	var catalog *avatar.Catalog
	_ = st.canvas.Update(func(s *avatar.Session) error {
		catalog = s.Catalog()
		return nil
	})

	patterns := container.NewGridWithColumns(2)
	for i, o := range catalog.Overlays {
		patterns.Add(widget.NewButton(o.Label, func() { st.selectOverlay(i) }))
	}

	labels := make([]string, len(catalog.Backgrounds))
	for i, b := range catalog.Backgrounds {
		labels[i] = b.Label
	}
	background := widget.NewSelect(labels, func(label string) {
		st.selectBackground(catalog.FindBackground(label))
	})
	background.SetSelectedIndex(0)

	controls := container.NewVBox(
		widget.NewButton("Upload photo…", st.uploadPhoto),
		widget.NewLabel("Pattern"),
		patterns,
		widget.NewButton("No pattern", st.clearOverlay),
		widget.NewLabel("Background"),
		background,
		widget.NewButton("Download", st.download),
	)
	return container.NewBorder(nil, st.status, nil, controls, container.NewCenter(st.canvas))
}

func (st *studio) selectOverlay(i int) {
	err := st.canvas.Update(func(s *avatar.Session) error {
		return s.SelectOverlay(st.ctx, i)
	})
	if err != nil {
		dialog.ShowError(err, st.win)
	}
}

func (st *studio) clearOverlay() {
	_ = st.canvas.Update(func(s *avatar.Session) error {
		s.ClearOverlay()
		return nil
	})
}

func (st *studio) selectBackground(i int) {
	if i < 0 {
		return
	}
	err := st.canvas.Update(func(s *avatar.Session) error {
		return s.SelectBackground(st.ctx, i)
	})
	if err != nil {
		dialog.ShowError(err, st.win)
	}
}

func (st *studio) uploadPhoto() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		data, err := io.ReadAll(reader)
		if err != nil {
			dialog.ShowError(err, st.win)
			return
		}
		name := reader.URI().Name()
		err = st.canvas.Update(func(s *avatar.Session) error {
			if err := s.UploadPhoto(st.ctx, data); err != nil {
				return err
			}
			if len(data) > 0 {
				st.photoName = name
				st.status.SetText("Decoding " + name + "…")
			}
			return nil
		})
		if err != nil {
			dialog.ShowError(err, st.win)
		}
	}, st.win)
	fd.SetFilter(storage.NewExtensionFileFilter(imageio.Formats))
	fd.Show()
}

func (st *studio) download() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		err = avatar.EncodePNG(writer, st.canvas.Frame())
		if cerr := writer.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			dialog.ShowError(err, st.win)
			return
		}
		st.status.SetText("Saved " + writer.URI().Path())
	}, st.win)
	fd.SetFileName(avatar.ExportFilename)
	fd.Show()
}
