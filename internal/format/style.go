package format

import (
	"strconv"
	"strings"

	"github.com/hlview/hl/internal/theme"
)

// sgrReset is the full-reset escape sequence (ECMA-48 SGR 0).
const sgrReset = "\x1b[0m"

// modeCode returns the ECMA-48 SGR parameter for m. theme.Mode's
// declaration order (Bold, Faint, Italic, Underline, SlowBlink,
// RapidBlink, Reverse, Conceal, CrossedOut) was chosen in SPEC_FULL §4.8
// to match the classic SGR numbering exactly, so this is a straight
// offset-by-one, not a lookup table.
func modeCode(m theme.Mode) int {
	return int(m) + 1
}

// sgrPrefix builds the truecolor SGR escape sequence for rs. An empty
// string means rs carries no visible styling at all.
func sgrPrefix(rs theme.ResolvedStyle) string {
	var codes []string

	for _, m := range rs.Modes {
		codes = append(codes, strconv.Itoa(modeCode(m)))
	}

	if rs.Foreground.IsSet() {
		codes = append(codes, truecolorCode(38, rs.Foreground))
	}

	if rs.Background.IsSet() {
		codes = append(codes, truecolorCode(48, rs.Background))
	}

	if len(codes) == 0 {
		return ""
	}

	return "\x1b[" + strings.Join(codes, ";") + "m"
}

func truecolorCode(base int, c theme.Color) string {
	rgb := c.RGB()
	r := clamp255(rgb.R)
	g := clamp255(rgb.G)
	b := clamp255(rgb.B)

	return strconv.Itoa(base) + ";2;" + strconv.Itoa(r) + ";" + strconv.Itoa(g) + ";" + strconv.Itoa(b)
}

func clamp255(f float64) int {
	v := int(f*255 + 0.5)

	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return v
	}
}

// paint wraps s in rs's SGR sequence and a trailing reset. An unstyled rs
// returns s unchanged.
func paint(rs theme.ResolvedStyle, s string) string {
	prefix := sgrPrefix(rs)
	if prefix == "" {
		return s
	}

	return prefix + s + sgrReset
}
