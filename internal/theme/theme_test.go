package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hlview/hl/internal/record"
)

func TestParseColorHexCaseInsensitive(t *testing.T) {
	c1, err := ParseColor("#FF0000")
	require.NoError(t, err)

	c2, err := ParseColor("#ff0000")
	require.NoError(t, err)

	assert.Equal(t, c1.Hex(), c2.Hex())
}

func TestParseColorInvalid(t *testing.T) {
	_, err := ParseColor("#zzzzzz")
	require.Error(t, err)

	var invalid *InvalidColorError
	assert.ErrorAs(t, err, &invalid)
}

func TestParseModeSetLastOccurrenceWins(t *testing.T) {
	ms, err := ParseModeSet([]string{"+bold", "-bold", "+italic"})
	require.NoError(t, err)

	got := ms.Slice()
	require.Len(t, got, 1)
	assert.Equal(t, ModeItalic, got[0])
}

func TestParseModeSetFixedOrder(t *testing.T) {
	ms, err := ParseModeSet([]string{"crossed-out", "bold", "italic"})
	require.NoError(t, err)

	assert.Equal(t, []Mode{ModeBold, ModeItalic, ModeCrossedOut}, ms.Slice())
}

func TestDecodeV0DetectsNoVersionField(t *testing.T) {
	data := []byte(`elements:
  level:
    foreground: "#ff0000"
`)

	doc, err := Decode("test.yaml", data, FormatYAML)
	require.NoError(t, err)
	require.Equal(t, 0, doc.Version)
	require.NotNil(t, doc.V0)
}

func TestDecodeV1RequiresVersion(t *testing.T) {
	data := []byte(`version: "1.0"
styles:
  primary:
    foreground: "#00ff00"
`)

	doc, err := Decode("test.yaml", data, FormatYAML)
	require.NoError(t, err)
	require.Equal(t, 1, doc.Version)
}

func TestDecodeUnsupportedVersionRejected(t *testing.T) {
	data := []byte(`version: "2.0"
`)

	_, err := Decode("test.yaml", data, FormatYAML)
	require.Error(t, err)

	var unsupported *UnsupportedVersionError
	assert.ErrorAs(t, err, &unsupported)
}

func TestResolveV0BooleanActiveMerge(t *testing.T) {
	doc := &V0Document{
		Elements: map[string]StyleDoc{
			"boolean":      {Foreground: "#ff0000"},
			"boolean-true": {Modes: []string{"bold"}},
		},
	}

	pack, err := ResolveV0(doc, record.LevelInfo)
	require.NoError(t, err)

	trueStyle := pack.Style(ElementBooleanTrue)
	assert.True(t, trueStyle.Foreground.IsSet())
	assert.Equal(t, "#ff0000", trueStyle.Foreground.Hex())
	assert.Contains(t, trueStyle.Modes, ModeBold)

	falseStyle := pack.Style(ElementBooleanFalse)
	assert.True(t, falseStyle.Foreground.IsSet())
	assert.Equal(t, "#ff0000", falseStyle.Foreground.Hex())
	assert.Empty(t, falseStyle.Modes)
}

func TestResolveV0LevelOverrideMergesOverBase(t *testing.T) {
	doc := &V0Document{
		Elements: map[string]StyleDoc{
			"level": {Foreground: "#ffffff", Modes: []string{"bold"}},
		},
		Levels: map[string]map[string]StyleDoc{
			"error": {"level": {Foreground: "#ff0000"}},
		},
	}

	pack, err := ResolveV0(doc, record.LevelError)
	require.NoError(t, err)

	style := pack.Style(ElementLevel)
	assert.Equal(t, "#ff0000", style.Foreground.Hex())
	assert.Contains(t, style.Modes, ModeBold)

	infoPack, err := ResolveV0(doc, record.LevelInfo)
	require.NoError(t, err)
	assert.Equal(t, "#ffffff", infoPack.Style(ElementLevel).Foreground.Hex())
}

func TestResolveV1RoleInheritance(t *testing.T) {
	def := &V1Document{
		Version: "1.0",
		Styles: map[string]StyleDoc{
			"primary": {Foreground: "#123456"},
		},
		Elements: map[string]StyleDoc{
			"message": {Style: "primary"},
		},
	}

	pack, err := ResolveV1(&V1Document{Version: "1.0"}, def, record.LevelInfo)
	require.NoError(t, err)

	style := pack.Style(ElementMessage)
	require.True(t, style.Foreground.IsSet())
	assert.Equal(t, "#123456", style.Foreground.Hex())
}

func TestResolveV1ElementExplicitWinsOverRole(t *testing.T) {
	def := &V1Document{
		Version: "1.0",
		Styles: map[string]StyleDoc{
			"primary": {Foreground: "#123456"},
		},
		Elements: map[string]StyleDoc{
			"message": {Style: "primary"},
		},
	}

	user := &V1Document{
		Version: "1.0",
		Elements: map[string]StyleDoc{
			"message": {Style: "primary", Foreground: "#abcdef"},
		},
	}

	pack, err := ResolveV1(user, def, record.LevelInfo)
	require.NoError(t, err)

	assert.Equal(t, "#abcdef", pack.Style(ElementMessage).Foreground.Hex())
}

func TestResolveV1ModesAccumulateAcrossRoleChain(t *testing.T) {
	def := &V1Document{
		Version: "1.0",
		Styles: map[string]StyleDoc{
			"primary": {Modes: []string{"+bold", "+italic"}},
		},
		Elements: map[string]StyleDoc{
			"message": {Style: "primary"},
		},
	}

	user := &V1Document{
		Version: "1.0",
		Elements: map[string]StyleDoc{
			"message": {Modes: []string{"-bold"}},
		},
	}

	pack, err := ResolveV1(user, def, record.LevelInfo)
	require.NoError(t, err)

	modes := pack.Style(ElementMessage).Modes
	assert.NotContains(t, modes, ModeBold)
	assert.Contains(t, modes, ModeItalic)
}

func TestResolveV1CircularRoleChainRejected(t *testing.T) {
	def := &V1Document{
		Version: "1.0",
		Styles: map[string]StyleDoc{
			"primary":   {Style: "secondary"},
			"secondary": {Style: "primary"},
		},
		Elements: map[string]StyleDoc{
			"message": {Style: "primary"},
		},
	}

	_, err := ResolveV1(&V1Document{Version: "1.0"}, def, record.LevelInfo)
	require.Error(t, err)

	var circular *CircularRoleChainError
	assert.ErrorAs(t, err, &circular)
}

func TestLoaderResolvesEmbeddedDefault(t *testing.T) {
	l := NewLoader("")

	pack, err := l.Resolve(DefaultThemeName, record.LevelError)
	require.NoError(t, err)
	assert.True(t, pack.Style(ElementLevel).Foreground.IsSet())
}

func TestLoaderResolvesStockThemeOverDefault(t *testing.T) {
	l := NewLoader("")

	pack, err := l.Resolve("dark", record.LevelInfo)
	require.NoError(t, err)
	assert.True(t, pack.Style(ElementMessage).Foreground.IsSet())
}

func TestLoaderUnknownThemeSuggestsSimilar(t *testing.T) {
	l := NewLoader("")

	_, err := l.Resolve("drak", record.LevelInfo)
	require.Error(t, err)

	var notFound *ThemeNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Contains(t, notFound.Suggestions, "dark")
}

func TestJaroSimilarityIdentical(t *testing.T) {
	assert.Equal(t, 1.0, jaroSimilarity("dark", "dark"))
}

func TestJaroSimilarityUnrelated(t *testing.T) {
	assert.Less(t, jaroSimilarity("dark", "zzzzzzzz"), 0.5)
}
