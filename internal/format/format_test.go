package format

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hlview/hl/internal/record"
	"github.com/hlview/hl/internal/stringtest"
	"github.com/hlview/hl/internal/theme"
)

func parseRecord(t *testing.T, seg string) *record.Record {
	t.Helper()

	r, err := record.Parse([]byte(seg), record.DefaultConfig(), record.InputBadge{})
	require.NoError(t, err)

	return r
}

func TestFormatCompactMessageAndFields(t *testing.T) {
	r := parseRecord(t, `{"time":"2024-01-02T15:04:05Z","level":"info","msg":"started","port":8080}`)

	f := New(Config{Expansion: ExpansionAuto})
	out := f.Format(r, theme.StylePack{}, IndicatorNone)

	assert.Contains(t, out, "INF")
	assert.Contains(t, out, "started")
	assert.Contains(t, out, "port=8080")
}

func TestFormatHideEmptyFields(t *testing.T) {
	r := parseRecord(t, `{"msg":"x","empty":"","count":0}`)

	f := New(Config{Expansion: ExpansionAuto, HideEmptyFields: true})
	out := f.Format(r, theme.StylePack{}, IndicatorNone)

	assert.NotContains(t, out, "empty=")
	assert.Contains(t, out, "count=0")
}

func TestFormatVisibilityHidesField(t *testing.T) {
	r := parseRecord(t, `{"msg":"x","secret":"shh","keep":"yes"}`)

	var vis Visibility
	vis.Rules = append(vis.Rules, ParseVisibilityRule("secret"))

	f := New(Config{Expansion: ExpansionAuto, Visibility: vis})
	out := f.Format(r, theme.StylePack{}, IndicatorNone)

	assert.NotContains(t, out, "secret=")
	assert.Contains(t, out, `keep="yes"`)
}

func TestFormatVisibilityRevealOverridesWildcard(t *testing.T) {
	r := parseRecord(t, `{"msg":"x","a":1,"b":2}`)

	var vis Visibility
	vis.Rules = append(vis.Rules, ParseVisibilityRule("*"), ParseVisibilityRule("!b"))

	f := New(Config{Expansion: ExpansionAuto, Visibility: vis})
	out := f.Format(r, theme.StylePack{}, IndicatorNone)

	assert.NotContains(t, out, "a=")
	assert.Contains(t, out, "b=2")
}

func TestFormatFlattenAlways(t *testing.T) {
	r := parseRecord(t, `{"msg":"x","req":{"id":"abc","size":1}}`)

	f := New(Config{Expansion: ExpansionAuto, Flatten: FlattenAlways})
	out := f.Format(r, theme.StylePack{}, IndicatorNone)

	assert.Contains(t, out, "req.id=")
	assert.Contains(t, out, "req.size=1")
}

func TestFormatExpansionNeverEscapesNewline(t *testing.T) {
	r := parseRecord(t, "{\"msg\":\"line one\\nline two\"}")

	f := New(Config{Expansion: ExpansionNever})
	out := f.Format(r, theme.StylePack{}, IndicatorNone)

	assert.Contains(t, out, `line one\nline two`)
	assert.NotContains(t, out, "\n")
}

func TestFormatExpansionAutoTriggersOnMultiline(t *testing.T) {
	r := parseRecord(t, "{\"msg\":\"line one\\nline two\",\"k\":\"v\"}")

	f := New(Config{Expansion: ExpansionAuto, ASCII: ASCIIAlways})
	out := f.Format(r, theme.StylePack{}, IndicatorNone)

	assert.Contains(t, out, "\n")
	assert.Contains(t, out, "`- k=\"v\"")
}

func TestFormatExpansionAlwaysOneFieldPerLine(t *testing.T) {
	r := parseRecord(t, `{"msg":"x","a":1,"b":2}`)

	f := New(Config{Expansion: ExpansionAlways, ASCII: ASCIIAlways})
	out := f.Format(r, theme.StylePack{}, IndicatorNone)

	want := stringtest.JoinLF("", "|- a=1", "`- b=2")
	assert.True(t, strings.HasSuffix(out, want), "expected suffix %q, got %q", want, out)
}

func TestFormatRawPassesSegmentThrough(t *testing.T) {
	r := parseRecord(t, "not json or logfmt {{{")

	f := New(Config{})
	out := f.Format(r, theme.StylePack{}, IndicatorNone)

	assert.Equal(t, "not json or logfmt {{{", out)
}

func TestFormatRawFlagForcesRawRegardlessOfKind(t *testing.T) {
	r := parseRecord(t, `{"msg":"hello","k":"v"}`)

	f := New(Config{Raw: true})
	out := f.Format(r, theme.StylePack{}, IndicatorNone)

	assert.Equal(t, `{"msg":"hello","k":"v"}`, out)
}

func TestFormatRawFieldsKeepsSemanticHeader(t *testing.T) {
	r := parseRecord(t, `{"time":"2024-01-02T15:04:05Z","level":"warn","msg":"x","k":"v"}`)

	f := New(Config{RawFields: true})
	out := f.Format(r, theme.StylePack{}, IndicatorNone)

	assert.Contains(t, out, "WRN")
	assert.Contains(t, out, `{"time":"2024-01-02T15:04:05Z","level":"warn","msg":"x","k":"v"}`)
}

func TestFormatIndicatorGlyphs(t *testing.T) {
	r := parseRecord(t, `{"msg":"x"}`)

	f := New(Config{ASCII: ASCIINever})

	sync := f.Format(r, theme.StylePack{}, IndicatorSync)
	async := f.Format(r, theme.StylePack{}, IndicatorAsync)
	none := f.Format(r, theme.StylePack{}, IndicatorNone)

	assert.Contains(t, sync, "│")
	assert.Contains(t, async, "┊")
	assert.NotContains(t, none, "│")
	assert.NotContains(t, none, "┊")
}

func TestInputBadgeTextHonorsShowInputBadge(t *testing.T) {
	badge := record.InputBadge{Name: "app.log", SourceIndex: 1}

	f := New(Config{ShowInputBadge: true})
	assert.Equal(t, "2 app.log ", f.InputBadgeText(theme.StylePack{}, badge))

	f = New(Config{ShowInputBadge: false})
	assert.Equal(t, "", f.InputBadgeText(theme.StylePack{}, badge))
}
