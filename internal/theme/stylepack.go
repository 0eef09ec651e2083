package theme

import "github.com/hlview/hl/internal/record"

// ResolvedStyle is one element's fully resolved visual properties, ready
// for the formatter to render as an ANSI SGR sequence.
type ResolvedStyle struct {
	Foreground Color
	Background Color
	Modes      []Mode
}

// StylePack is the complete set of resolved element styles for one log
// level (SPEC_FULL §4.8 "resolution produces, for each level, a
// StylePack mapping every element to a resolved style").
type StylePack struct {
	Level    record.Level
	Elements map[Element]ResolvedStyle
}

// Style returns e's resolved style, or the zero value if the theme
// defines nothing for it.
func (p StylePack) Style(e Element) ResolvedStyle {
	return p.Elements[e]
}

// Inner returns the style for e's nested inner scope, falling back to
// e's own style when no inner entry exists so a renderer lexically
// inside the parent scope continues looking styled (SPEC_FULL §4.8).
func (p StylePack) Inner(e Element) ResolvedStyle {
	if inner, ok := nestedScopePairs[e]; ok {
		if rs, ok := p.Elements[inner]; ok {
			return rs
		}
	}

	return p.Elements[e]
}
