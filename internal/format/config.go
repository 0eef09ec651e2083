package format

import "time"

// ExpansionMode controls how multi-line field values are laid out
// (SPEC_FULL §4.9).
type ExpansionMode uint8

const (
	ExpansionNever ExpansionMode = iota
	ExpansionInline
	ExpansionAuto
	ExpansionAlways
)

// ParseExpansionMode parses the `-x/--expansion` flag value.
func ParseExpansionMode(s string) (ExpansionMode, bool) {
	switch s {
	case "never":
		return ExpansionNever, true
	case "inline":
		return ExpansionInline, true
	case "auto":
		return ExpansionAuto, true
	case "always":
		return ExpansionAlways, true
	default:
		return 0, false
	}
}

// FlattenMode controls whether nested objects render as dotted paths
// (SPEC_FULL §4.9).
type FlattenMode uint8

const (
	FlattenNever FlattenMode = iota
	FlattenAlways
)

// ParseFlattenMode parses the `--flatten` flag value.
func ParseFlattenMode(s string) (FlattenMode, bool) {
	switch s {
	case "never":
		return FlattenNever, true
	case "always":
		return FlattenAlways, true
	default:
		return 0, false
	}
}

// ASCIIMode selects Unicode box-drawing or plain ASCII for expansion
// connectors (SPEC_FULL §4.9).
type ASCIIMode uint8

const (
	ASCIIAuto ASCIIMode = iota
	ASCIINever
	ASCIIAlways
)

// ParseASCIIMode parses the `--ascii` flag value.
func ParseASCIIMode(s string) (ASCIIMode, bool) {
	switch s {
	case "auto":
		return ASCIIAuto, true
	case "never":
		return ASCIINever, true
	case "always":
		return ASCIIAlways, true
	default:
		return 0, false
	}
}

// IndicatorState is a record's per-record sync-state marker, shown as a
// one-glyph column in follow/sort mode (SPEC_FULL §4.9).
type IndicatorState uint8

const (
	IndicatorNone IndicatorState = iota
	IndicatorSync
	IndicatorAsync
)

// Config holds the formatter's rendering options. TerminalSupportsUnicode
// should reflect the output sink's own TTY/encoding detection; it only
// matters when ASCII is [ASCIIAuto].
type Config struct {
	Expansion               ExpansionMode
	Flatten                 FlattenMode
	ASCII                   ASCIIMode
	TerminalSupportsUnicode bool

	Location     *time.Location
	TimeTemplate string

	HideEmptyFields bool
	ShowInputBadge  bool
	Raw             bool
	RawFields       bool

	Visibility Visibility

	// MaxArrayElements bounds how many array/object entries are rendered
	// before an ellipsis; zero means unlimited.
	MaxArrayElements int
}

func (c Config) useUnicode() bool {
	switch c.ASCII {
	case ASCIIAlways:
		return false
	case ASCIINever:
		return true
	default:
		return c.TerminalSupportsUnicode
	}
}
