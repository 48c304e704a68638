package avatar

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/gogpu/gg"
)

// Background errors.
var (
	// ErrInvalidColor is returned for a colour string that is neither
	// "transparent" nor a #rgb, #rgba, #rrggbb or #rrggbbaa hex value.
	ErrInvalidColor = errors.New("avatar: invalid color")

	// ErrUnknownBackgroundKind is returned for a background whose kind is
	// neither colour nor image.
	ErrUnknownBackgroundKind = errors.New("avatar: unknown background kind")
)

// BackgroundKind tags a Background.
type BackgroundKind int

const (
	// BackgroundColor fills the avatar circle with a solid colour.
	BackgroundColor BackgroundKind = iota

	// BackgroundImage fills the avatar circle with an image asset.
	BackgroundImage
)

// String returns the catalog spelling of the kind.
func (k BackgroundKind) String() string {
	switch k {
	case BackgroundColor:
		return "color"
	case BackgroundImage:
		return "image"
	default:
		return fmt.Sprintf("BackgroundKind(%d)", int(k))
	}
}

// ParseBackgroundKind is the inverse of BackgroundKind.String.
func ParseBackgroundKind(s string) (BackgroundKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "color", "colour", "":
		return BackgroundColor, nil
	case "image":
		return BackgroundImage, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownBackgroundKind, s)
	}
}

// Background describes what is drawn behind the photo inside the circle.
// Value is a colour string for BackgroundColor and an asset reference for
// BackgroundImage.
type Background struct {
	Label string
	Kind  BackgroundKind
	Value string
}

// ColorBackground returns a colour background.
func ColorBackground(label, value string) Background {
	return Background{Label: label, Kind: BackgroundColor, Value: value}
}

// ImageBackground returns an image background.
func ImageBackground(label, ref string) Background {
	return Background{Label: label, Kind: BackgroundImage, Value: ref}
}

// TransparentBackground leaves the avatar circle empty.
var TransparentBackground = ColorBackground("Transparent", "transparent")

// Validate checks that the value fits the kind.
func (b Background) Validate() error {
	switch b.Kind {
	case BackgroundColor:
		_, _, err := ParseColor(b.Value)
		return err
	case BackgroundImage:
		if strings.TrimSpace(b.Value) == "" {
			return fmt.Errorf("avatar: background %q: empty image reference", b.Label)
		}
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrUnknownBackgroundKind, int(b.Kind))
	}
}

// Fill returns the premultiplied fill colour of a colour background.
// ok is false for image backgrounds, transparent colours and colours that
// fail to parse.
func (b Background) Fill() (c color.RGBA, ok bool) {
	if b.Kind != BackgroundColor {
		return color.RGBA{}, false
	}
	c, opaque, err := ParseColor(b.Value)
	if err != nil || !opaque {
		return color.RGBA{}, false
	}
	return c, true
}

// ParseColor parses a background colour. visible is false for
// "transparent" and for any colour with zero alpha.
func ParseColor(s string) (c color.RGBA, visible bool, err error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "transparent") {
		return color.RGBA{}, false, nil
	}
	hex := strings.TrimPrefix(s, "#")
	if !validHex(hex) {
		return color.RGBA{}, false, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	c = color.RGBAModel.Convert(gg.Hex(hex).Color()).(color.RGBA)
	return c, c.A != 0, nil
}

func validHex(s string) bool {
	switch len(s) {
	case 3, 4, 6, 8:
	default:
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case '0' <= c && c <= '9', 'a' <= c && c <= 'f', 'A' <= c && c <= 'F':
		default:
			return false
		}
	}
	return true
}
