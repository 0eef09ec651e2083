package theme

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a resolved theme color. It keeps both the parsed RGB value
// (for rendering) and the original text (for re-serialization/debugging).
type Color struct {
	text string
	rgb  colorful.Color
	set  bool
}

// InvalidColorError reports a color string that fails to parse
// (SPEC_FULL §7 InvalidColor(kind)).
type InvalidColorError struct {
	Text string
	Err  error
}

func (e *InvalidColorError) Error() string {
	return fmt.Sprintf("invalid color %q: %v", e.Text, e.Err)
}

func (e *InvalidColorError) Unwrap() error { return e.Err }

// ParseColor parses a theme color string: a `#RRGGBB` hex triplet (hex
// letters A-F case-insensitive per SPEC_FULL §3) or one of the 8 basic
// ANSI color names; "bright" variants are not recognized. go-colorful's hex parser is case-insensitive for free,
// which is exactly the behavior §3 asks for (DESIGN.md).
func ParseColor(s string) (Color, error) {
	if s == "" {
		return Color{}, nil
	}

	if s[0] == '#' {
		c, err := colorful.Hex(s)
		if err != nil {
			return Color{}, &InvalidColorError{Text: s, Err: err}
		}

		return Color{text: s, rgb: c, set: true}, nil
	}

	if c, ok := namedANSIColors[s]; ok {
		return Color{text: s, rgb: c, set: true}, nil
	}

	return Color{}, &InvalidColorError{Text: s, Err: fmt.Errorf("unrecognized color name")}
}

// IsSet reports whether c holds a parsed color (the zero Color is unset).
func (c Color) IsSet() bool { return c.set }

// Text returns the original color text.
func (c Color) Text() string { return c.text }

// RGB returns the parsed RGB value.
func (c Color) RGB() colorful.Color { return c.rgb }

// Hex returns the canonical "#RRGGBB" form.
func (c Color) Hex() string {
	if !c.set {
		return ""
	}

	return c.rgb.Hex()
}

// namedANSIColors maps the 8 basic ANSI color names to approximate
// RGB values, for themes that reference them by name instead of hex.
var namedANSIColors = map[string]colorful.Color{
	"black":   {R: 0, G: 0, B: 0},
	"red":     {R: 0.8, G: 0, B: 0},
	"green":   {R: 0, G: 0.8, B: 0},
	"yellow":  {R: 0.8, G: 0.8, B: 0},
	"blue":    {R: 0, G: 0, B: 0.8},
	"magenta": {R: 0.8, G: 0, B: 0.8},
	"cyan":    {R: 0, G: 0.8, B: 0.8},
	"white":   {R: 0.8, G: 0.8, B: 0.8},
}
