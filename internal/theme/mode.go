package theme

import (
	"fmt"
	"strings"
)

// Mode is an ANSI SGR text mode. Declaration order here is the fixed
// emission order SPEC_FULL §4.8 requires: "the final emitted output uses
// only 'adds' in fixed declaration order (Bold, Faint, Italic,
// Underline, SlowBlink, RapidBlink, Reverse, Conceal, CrossedOut)".
type Mode uint8

const (
	ModeBold Mode = iota
	ModeFaint
	ModeItalic
	ModeUnderline
	ModeSlowBlink
	ModeRapidBlink
	ModeReverse
	ModeConceal
	ModeCrossedOut
	numModes
)

var modeOrder = []Mode{
	ModeBold, ModeFaint, ModeItalic, ModeUnderline, ModeSlowBlink,
	ModeRapidBlink, ModeReverse, ModeConceal, ModeCrossedOut,
}

// InvalidModeError reports an unrecognized mode name (SPEC_FULL §7
// InvalidMode(name)).
type InvalidModeError struct {
	Name string
}

func (e *InvalidModeError) Error() string { return fmt.Sprintf("invalid mode %q", e.Name) }

func parseModeName(s string) (Mode, bool) {
	switch strings.ToLower(s) {
	case "bold":
		return ModeBold, true
	case "faint", "dim":
		return ModeFaint, true
	case "italic":
		return ModeItalic, true
	case "underline":
		return ModeUnderline, true
	case "slow-blink", "blink":
		return ModeSlowBlink, true
	case "rapid-blink":
		return ModeRapidBlink, true
	case "reverse":
		return ModeReverse, true
	case "conceal", "hidden":
		return ModeConceal, true
	case "crossed-out", "strikethrough":
		return ModeCrossedOut, true
	default:
		return 0, false
	}
}

// ModeSet tracks a theme entry's `modes` array as a sparse add/remove
// state per mode. v0 documents write plain unprefixed names (treated as
// adds); v1 documents may prefix `+mode`/`-mode`, with "last occurrence
// wins when +mode and -mode appear in the same array" (SPEC_FULL §4.8).
// Cross-layer combination (default -> base -> level -> role -> element)
// is additive/subtractive, not whole-array replacement: [Apply] overlays
// one layer's raw entries onto an already-accumulated set, and [Overlay]
// overlays one resolved set onto another, in both cases leaving modes
// the new layer doesn't mention untouched (SPEC_FULL §4.8 "a -mode
// anywhere in the merge chain removes the mode from the final set").
type ModeSet struct {
	state [numModes]int8 // 0 unset, 1 add, -1 remove
}

// ParseModeSet parses one `modes` array in isolation (used by v0, whose
// layers replace wholesale rather than accumulate).
func ParseModeSet(entries []string) (ModeSet, error) {
	return ModeSet{}.Apply(entries)
}

// Apply overlays entries onto ms and returns the result; a mode entries
// doesn't mention keeps ms's existing add/remove state.
func (ms ModeSet) Apply(entries []string) (ModeSet, error) {
	out := ms

	for _, e := range entries {
		sign := int8(1)
		name := e

		switch {
		case strings.HasPrefix(e, "+"):
			name = e[1:]
		case strings.HasPrefix(e, "-"):
			sign = -1
			name = e[1:]
		}

		m, ok := parseModeName(name)
		if !ok {
			return ModeSet{}, &InvalidModeError{Name: e}
		}

		out.state[m] = sign
	}

	return out, nil
}

// Overlay returns ms with every mode other explicitly sets (add or
// remove) replacing ms's state for that mode; modes other leaves unset
// keep ms's existing state.
func (ms ModeSet) Overlay(other ModeSet) ModeSet {
	out := ms

	for i := range out.state {
		if other.state[i] != 0 {
			out.state[i] = other.state[i]
		}
	}

	return out
}

// Slice returns the final "add" modes in fixed declaration order.
func (ms ModeSet) Slice() []Mode {
	var out []Mode

	for _, m := range modeOrder {
		if ms.state[m] == 1 {
			out = append(out, m)
		}
	}

	return out
}
