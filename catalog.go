package avatar

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Catalog errors.
var (
	// ErrNoCatalogEntry is returned when a selection index is out of range.
	ErrNoCatalogEntry = errors.New("avatar: no such catalog entry")

	// ErrUnknownFormat is returned for catalog files that are neither TOML
	// nor YAML.
	ErrUnknownFormat = errors.New("avatar: unknown catalog format")

	// ErrEmptyCatalog is returned by Validate when no background is
	// configured; one background is always selected.
	ErrEmptyCatalog = errors.New("avatar: catalog has no backgrounds")
)

// OverlayEntry is one selectable overlay pattern.
type OverlayEntry struct {
	Label string
	Ref   string
}

// Catalog is the ordered list of overlay patterns and backgrounds offered to
// the user. The first background is the default selection.
type Catalog struct {
	Overlays    []OverlayEntry
	Backgrounds []Background
}

// DefaultCatalog returns the built-in patterns and backgrounds. Pattern
// references are relative to the asset root.
func DefaultCatalog() *Catalog {
	refs := []string{
		"patterns/pattern1.png",
		"patterns/pattern2.png",
		"patterns/pattern3.png",
		"patterns/pattern-black.png",
		"patterns/pattern-white.png",
		"patterns/pattern-orange.png",
		"patterns/pattern-pink.png",
		"patterns/pattern-yellow.png",
	}
	c := &Catalog{
		Backgrounds: []Background{
			TransparentBackground,
			ColorBackground("Blurple", "#5865F2"),
			ColorBackground("Dark", "#313338"),
			ColorBackground("White", "#FFFFFF"),
			ImageBackground("Gradient", "backgrounds/gradient.png"),
		},
	}
	for i, ref := range refs {
		c.Overlays = append(c.Overlays, OverlayEntry{Label: fmt.Sprintf("Pattern %d", i+1), Ref: ref})
	}
	return c
}

// Validate checks that the catalog can drive a session.
func (c *Catalog) Validate() error {
	if len(c.Backgrounds) == 0 {
		return ErrEmptyCatalog
	}
	for i, bg := range c.Backgrounds {
		if err := bg.Validate(); err != nil {
			return fmt.Errorf("avatar: background %d: %w", i, err)
		}
	}
	for i, o := range c.Overlays {
		if strings.TrimSpace(o.Ref) == "" {
			return fmt.Errorf("avatar: overlay %d (%q): empty reference", i, o.Label)
		}
	}
	return nil
}

// DefaultBackground returns the first background, or TransparentBackground
// for an empty catalog.
func (c *Catalog) DefaultBackground() Background {
	if len(c.Backgrounds) == 0 {
		return TransparentBackground
	}
	return c.Backgrounds[0]
}

// Overlay returns overlay entry i.
func (c *Catalog) Overlay(i int) (OverlayEntry, error) {
	if i < 0 || i >= len(c.Overlays) {
		return OverlayEntry{}, fmt.Errorf("%w: overlay %d of %d", ErrNoCatalogEntry, i, len(c.Overlays))
	}
	return c.Overlays[i], nil
}

// Background returns background entry i.
func (c *Catalog) Background(i int) (Background, error) {
	if i < 0 || i >= len(c.Backgrounds) {
		return Background{}, fmt.Errorf("%w: background %d of %d", ErrNoCatalogEntry, i, len(c.Backgrounds))
	}
	return c.Backgrounds[i], nil
}

// FindBackground returns the index of the background whose label matches
// (case-insensitively), or -1.
func (c *Catalog) FindBackground(label string) int {
	for i, bg := range c.Backgrounds {
		if strings.EqualFold(bg.Label, label) {
			return i
		}
	}
	return -1
}

// Format is a catalog file encoding.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(p string) (Format, error) {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, p)
	}
}

// catalogFile is the on-disk shape of a catalog. TOML uses
// [[overlay]]/[[background]] tables, YAML uses overlays/backgrounds lists.
type catalogFile struct {
	Overlays    []overlayRecord    `toml:"overlay" yaml:"overlays"`
	Backgrounds []backgroundRecord `toml:"background" yaml:"backgrounds"`
}

type overlayRecord struct {
	Label string `toml:"label,omitempty" yaml:"label,omitempty"`
	Ref   string `toml:"ref" yaml:"ref"`
}

type backgroundRecord struct {
	Label string `toml:"label,omitempty" yaml:"label,omitempty"`
	Type  string `toml:"type" yaml:"type"`
	Value string `toml:"value" yaml:"value"`
}

// LoadCatalog reads and validates a catalog file. The format follows the
// extension: .toml, .yaml or .yml.
func LoadCatalog(p string) (*Catalog, error) {
	format, err := FormatFromPath(p)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(filepath.Clean(p))
	if err != nil {
		return nil, fmt.Errorf("avatar: open catalog: %w", err)
	}
	defer func() { _ = f.Close() }()

	c, err := DecodeCatalog(f, format)
	if err != nil {
		return nil, fmt.Errorf("avatar: catalog %s: %w", p, err)
	}
	return c, nil
}

// DecodeCatalog reads a catalog in the given format and validates it.
// Entries without a label are labelled from their reference's file name.
func DecodeCatalog(r io.Reader, format Format) (*Catalog, error) {
	var file catalogFile
	switch format {
	case FormatTOML:
		if _, err := toml.NewDecoder(r).Decode(&file); err != nil {
			return nil, fmt.Errorf("decode TOML: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&file); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownFormat, int(format))
	}

	c := &Catalog{}
	for _, o := range file.Overlays {
		label := o.Label
		if label == "" {
			label = labelFromRef(o.Ref)
		}
		c.Overlays = append(c.Overlays, OverlayEntry{Label: label, Ref: o.Ref})
	}
	for i, b := range file.Backgrounds {
		kind, err := ParseBackgroundKind(b.Type)
		if err != nil {
			return nil, fmt.Errorf("background %d: %w", i, err)
		}
		label := b.Label
		if label == "" {
			if kind == BackgroundImage {
				label = labelFromRef(b.Value)
			} else {
				label = b.Value
			}
		}
		c.Backgrounds = append(c.Backgrounds, Background{Label: label, Kind: kind, Value: b.Value})
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// EncodeCatalog writes c in the given format.
func EncodeCatalog(w io.Writer, c *Catalog, format Format) error {
	var file catalogFile
	for _, o := range c.Overlays {
		file.Overlays = append(file.Overlays, overlayRecord(o))
	}
	for _, b := range c.Backgrounds {
		file.Backgrounds = append(file.Backgrounds, backgroundRecord{
			Label: b.Label,
			Type:  b.Kind.String(),
			Value: b.Value,
		})
	}

	switch format {
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(file); err != nil {
			return fmt.Errorf("avatar: encode TOML: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(file); err != nil {
			return fmt.Errorf("avatar: encode YAML: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %d", ErrUnknownFormat, int(format))
	}
}

// labelFromRef turns "patterns/pattern-orange.png" into "Pattern Orange".
func labelFromRef(ref string) string {
	stem := path.Base(strings.ReplaceAll(ref, "\\", "/"))
	stem = strings.TrimSuffix(stem, path.Ext(stem))
	stem = strings.NewReplacer("-", " ", "_", " ").Replace(stem)
	return cases.Title(language.English).String(stem)
}
