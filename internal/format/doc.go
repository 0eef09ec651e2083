// Package format renders parsed records as ANSI-styled text (SPEC_FULL
// §4.9, C9). A [Formatter] consults a resolved [theme.StylePack] per
// record level, a set of field-visibility rules, and the expansion/
// flatten/ASCII modes described in spec.md §4.9 to produce one line (or,
// in "always" expansion, several indented lines) of output per record.
//
// Color is always emitted at truecolor precision; downgrading to the
// terminal's actual capability is the output sink's job
// (github.com/charmbracelet/colorprofile wraps the sink's writer), which
// keeps this package free of TTY-detection concerns.
package format
