package trayicon

import (
	"errors"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a value of the tray icon color preference.
type Color string

const (
	// ColorDefault lets the desktop background decide.
	ColorDefault Color = "default"
	// ColorLight forces a light icon.
	ColorLight Color = "light"
	// ColorDark forces a dark icon.
	ColorDark Color = "dark"
)

// ErrUnknownColor is returned for values outside default/light/dark.
var ErrUnknownColor = errors.New("unknown tray icon color")

// darkBackgroundLightness is the CIE L* (0..1) below which a background
// counts as dark.
const darkBackgroundLightness = 0.5

// ParseColor converts a preference value to a Color.
func ParseColor(s string) (Color, error) {
	switch c := Color(s); c {
	case ColorDefault, ColorLight, ColorDark:
		return c, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownColor, s)
	}
}

// FromSettings reads the preference from resolved settings values.
// A missing value means ColorDefault.
func FromSettings(values map[string]any) (Color, error) {
	raw, ok := values[PropertyKey]
	if !ok || raw == nil {
		return ColorDefault, nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: %v (%T)", ErrUnknownColor, raw, raw)
	}
	return ParseColor(s)
}

// Resolve picks the icon variant to draw. Forced light/dark values win.
// ColorDefault contrasts with background, a "#rrggbb" hex color: dark
// backgrounds get a light icon and vice versa. With no background known,
// ColorDefault resolves to ColorDark.
func Resolve(pref Color, background string) (Color, error) {
	switch pref {
	case ColorLight, ColorDark:
		return pref, nil
	case ColorDefault:
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownColor, pref)
	}

	if background == "" {
		return ColorDark, nil
	}

	bg, err := colorful.Hex(background)
	if err != nil {
		return "", fmt.Errorf("parsing background color %q: %w", background, err)
	}

	l, _, _ := bg.Lab()
	if l < darkBackgroundLightness {
		return ColorLight, nil
	}
	return ColorDark, nil
}
