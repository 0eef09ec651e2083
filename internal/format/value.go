package format

import (
	"strconv"
	"strings"

	"github.com/hlview/hl/internal/record"
	"github.com/hlview/hl/internal/theme"
)

// renderValue renders v (recursively for arrays/objects) using pack's
// element styles. Objects always render brace-nested here; flattening
// into dotted key=value pairs happens earlier, in collectEntries, and
// only for a field's top-level objects (an object nested inside an
// array, for instance, stays brace-nested: SPEC_FULL only flattens
// "nested objects", not arrays).
func (f *Formatter) renderValue(pack theme.StylePack, v record.Value) string {
	switch v.DisplayKind() {
	case record.KindNull:
		return paint(pack.Style(theme.ElementNull), "null")
	case record.KindBool:
		return f.renderBool(pack, v.Bool())
	case record.KindInt:
		return paint(pack.Style(theme.ElementNumber), strconv.FormatInt(v.Int(), 10))
	case record.KindFloat:
		return paint(pack.Style(theme.ElementNumber), strconv.FormatFloat(v.Float(), 'g', -1, 64))
	case record.KindString:
		return f.renderString(pack, v)
	case record.KindArray:
		return f.renderArray(pack, v.Elements())
	case record.KindObject:
		return f.renderObject(pack, v.Members())
	default:
		return ""
	}
}

func (f *Formatter) renderBool(pack theme.StylePack, b bool) string {
	if b {
		return paint(pack.Style(theme.ElementBooleanTrue), "true")
	}

	return paint(pack.Style(theme.ElementBooleanFalse), "false")
}

// renderString renders a string value, quoting it (with the theme's
// quote element) when it arrived quoted in its source syntax, per
// SPEC_FULL §3/S4: unquoted logfmt scalars display bare even though
// their Display kind may coincide with KindString.
func (f *Formatter) renderString(pack theme.StylePack, v record.Value) string {
	escaped := f.escapeInline(v.Str())

	body := paint(pack.Style(theme.ElementString), escaped)
	if !v.Quoted {
		return body
	}

	quote := paint(pack.Style(theme.ElementQuote), `"`)

	return quote + body + quote
}

func (f *Formatter) renderArray(pack theme.StylePack, elems []record.Value) string {
	var sb strings.Builder

	sb.WriteString(paint(pack.Style(theme.ElementPunctuation), "["))

	for i, e := range elems {
		if f.MaxArrayElements > 0 && i >= f.MaxArrayElements {
			sb.WriteString(paint(pack.Style(theme.ElementEllipsis), "…"))

			break
		}

		if i > 0 {
			sb.WriteString(paint(pack.Style(theme.ElementComma), ","))
		}

		sb.WriteString(f.renderValue(pack, e))
	}

	sb.WriteString(paint(pack.Style(theme.ElementPunctuation), "]"))

	return sb.String()
}

func (f *Formatter) renderObject(pack theme.StylePack, members []record.Member) string {
	var sb strings.Builder

	sb.WriteString(paint(pack.Style(theme.ElementPunctuation), "{"))

	for i, m := range members {
		if f.MaxArrayElements > 0 && i >= f.MaxArrayElements {
			sb.WriteString(paint(pack.Style(theme.ElementEllipsis), "…"))

			break
		}

		if i > 0 {
			sb.WriteString(paint(pack.Style(theme.ElementComma), ","))
		}

		sb.WriteString(paint(pack.Style(theme.ElementFieldKey), m.Key))
		sb.WriteString(paint(pack.Style(theme.ElementPunctuation), ":"))
		sb.WriteString(f.renderValue(pack, m.Value))
	}

	sb.WriteString(paint(pack.Style(theme.ElementPunctuation), "}"))

	return sb.String()
}

// isEmptyValue reports whether v is a value `-e` should hide: null, an
// empty string, an empty array, or an empty object.
func isEmptyValue(v record.Value) bool {
	switch v.Kind() {
	case record.KindNull:
		return true
	case record.KindString:
		return v.Str() == ""
	case record.KindArray:
		return len(v.Elements()) == 0
	case record.KindObject:
		return len(v.Members()) == 0
	default:
		return false
	}
}
