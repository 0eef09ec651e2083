package sink

import (
	"io"
	"os"

	"github.com/charmbracelet/colorprofile"
)

// ColorMode selects how aggressively color is negotiated (SPEC_FULL §6
// `--color`).
type ColorMode uint8

const (
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

// ParseColorMode parses the `--color`/`HL_COLOR` flag value.
func ParseColorMode(s string) (ColorMode, bool) {
	switch s {
	case "", "auto":
		return ColorAuto, true
	case "always":
		return ColorAlways, true
	case "never":
		return ColorNever, true
	default:
		return 0, false
	}
}

// colorWriter wraps w, downgrading the truecolor SGR sequences
// internal/format always emits to whatever profile mode negotiates
// (NO_COLOR/TERM/isatty-aware detection, or a forced profile for
// always/never), per SPEC_FULL §4.9/§4.10.
func colorWriter(w io.Writer, mode ColorMode) io.Writer {
	profile := colorprofile.Detect(w, os.Environ())

	switch mode {
	case ColorAlways:
		profile = colorprofile.TrueColor
	case ColorNever:
		profile = colorprofile.Ascii
	}

	if profile == colorprofile.TrueColor {
		return w
	}

	return &colorprofile.Writer{Forward: w, Profile: profile}
}
