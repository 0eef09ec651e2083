package format

import (
	"strings"
	"unicode/utf8"

	"github.com/clipperhouse/displaywidth"
)

// escapeNever implements the "never" expansion policy for a single
// string value: embedded newlines become the two-character literal
// `\n` so the record always prints on one line (SPEC_FULL §4.9 "never
// (escape embedded newlines)"). [ExpansionInline] and the per-field
// text used by [ExpansionAlways]/[ExpansionAuto]'s expanded layout call
// this only when f.Expansion is [ExpansionNever]; see [Formatter.escapeInline].
func escapeNever(s string) string {
	if !strings.ContainsAny(s, "\n\r") {
		return s
	}

	r := strings.NewReplacer("\r\n", `\n`, "\n", `\n`, "\r", `\r`)

	return r.Replace(s)
}

// escapeInline applies f's expansion policy to one string value in the
// compact (non-expanded) rendering path: [ExpansionNever] escapes
// newlines, everything else (inline/auto/always once a record is not
// actually expanded) keeps them as-is.
func (f *Formatter) escapeInline(s string) string {
	if f.Expansion == ExpansionNever {
		return escapeNever(s)
	}

	return s
}

// hasMultiline reports whether s spans more than one line, the trigger
// [ExpansionAuto] uses to switch a record into the expanded layout.
func hasMultiline(s string) bool {
	return strings.ContainsAny(s, "\n\r")
}

// connector glyphs for the expanded ("always"/triggered "auto") layout:
// a tree-like prefix before each field, Unicode box-drawing or ASCII
// depending on f.ASCII (SPEC_FULL §4.9).
type connectors struct {
	branch string // a non-final field
	last   string // the final field
	bar    string // continuation for wrapped/multi-line values
}

func (f *Formatter) connectors() connectors {
	if f.useUnicode() {
		return connectors{branch: "├─ ", last: "└─ ", bar: "│  "}
	}

	return connectors{branch: "|- ", last: "`- ", bar: "|  "}
}

// indentContinuation re-indents a multi-line value so each of its lines
// after the first lines up under the connector, prefixed by bar.
func indentContinuation(bar, s string) string {
	lines := strings.Split(s, "\n")
	for i := 1; i < len(lines); i++ {
		lines[i] = bar + lines[i]
	}

	return strings.Join(lines, "\n")
}

// fieldContinuationPad computes the indentation for a wrapped field
// value's second and later lines so they line up under the value, not
// just under the connector: the connector glyphs plus "key=" in display
// columns (not bytes), since a field key can itself contain wide runes.
// This is the one place the formatter needs real terminal column width
// rather than byte or rune length, which is what
// github.com/clipperhouse/displaywidth is for.
func fieldContinuationPad(conn string, key string) string {
	cols := utf8.RuneCountInString(conn) + displaywidth.String(key) + 1 // +1 for "="

	return strings.Repeat(" ", cols)
}

// indentField re-indents a multi-line field value under its "key="
// prefix, given the connector glyph that preceded the key on the first
// line.
func indentField(conn, key, s string) string {
	if !strings.Contains(s, "\n") {
		return s
	}

	return indentContinuation(fieldContinuationPad(conn, key), s)
}
