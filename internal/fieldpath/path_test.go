package fieldpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hlview/hl/internal/record"
)

func TestParseDottedPath(t *testing.T) {
	p, err := Parse("req.id")
	require.NoError(t, err)
	assert.Equal(t, Path{NameStep("req"), NameStep("id")}, p)
}

func TestParseIndexAndWildcard(t *testing.T) {
	p, err := Parse("items.[0].name")
	require.NoError(t, err)
	assert.Equal(t, Path{NameStep("items"), IndexStep(0), NameStep("name")}, p)

	p, err = Parse("items.[*].name")
	require.NoError(t, err)
	assert.Equal(t, Path{NameStep("items"), AnyElementStep(), NameStep("name")}, p)
}

func TestParseQuotedLiteral(t *testing.T) {
	p, err := Parse(`"a.b.c"`)
	require.NoError(t, err)
	assert.Equal(t, Path{LiteralNameStep("a.b.c")}, p)
}

func TestParseEmptyRejected(t *testing.T) {
	_, err := Parse("")
	require.Error(t, err)
}

func TestPathString(t *testing.T) {
	p := Path{NameStep("req"), IndexStep(2), AnyElementStep()}
	assert.Equal(t, "req.2.*", p.String())
}

func obj(members ...record.Member) record.Value { return record.Object(members) }
func mem(key string, v record.Value) record.Member {
	return record.Member{Key: key, Value: v}
}

func TestResolveHierarchical(t *testing.T) {
	root := obj(mem("req", obj(mem("id", record.String("abc", true)))))

	p, err := Parse("req.id")
	require.NoError(t, err)

	v, ok := Resolve(root, p)
	require.True(t, ok)
	assert.Equal(t, "abc", v.Str())
}

func TestResolveFlatFallback(t *testing.T) {
	root := obj(mem("req.id", record.String("abc", true)))

	p, err := Parse("req.id")
	require.NoError(t, err)

	v, ok := Resolve(root, p)
	require.True(t, ok)
	assert.Equal(t, "abc", v.Str())
}

func TestResolveFlatLongestFirst(t *testing.T) {
	root := obj(
		mem("a.b", record.String("short", true)),
		mem("a.b.c", record.String("long", true)),
	)

	p, err := Parse("a.b.c")
	require.NoError(t, err)

	v, ok := Resolve(root, p)
	require.True(t, ok)
	assert.Equal(t, "long", v.Str())
}

func TestResolveLiteralNameSkipsFallback(t *testing.T) {
	root := obj(mem("req.id", record.String("abc", true)))

	p, err := Parse(`"req.id"`)
	require.NoError(t, err)

	v, ok := Resolve(root, p)
	require.True(t, ok)
	assert.Equal(t, "abc", v.Str())

	p, err = Parse(`"req"`)
	require.NoError(t, err)

	_, ok = Resolve(root, p)
	assert.False(t, ok)
}

func TestResolveUnderscoreHyphenNormalization(t *testing.T) {
	root := obj(mem("request-id", record.String("abc", true)))

	p, err := Parse("request_id")
	require.NoError(t, err)

	v, ok := Resolve(root, p)
	require.True(t, ok)
	assert.Equal(t, "abc", v.Str())
}

func TestResolveIndexOutOfRange(t *testing.T) {
	root := obj(mem("items", record.Array([]record.Value{record.Int(1)})))

	p, err := Parse("items.[5]")
	require.NoError(t, err)

	_, ok := Resolve(root, p)
	assert.False(t, ok)
}

func TestResolveAnyElementMatchesFirstHit(t *testing.T) {
	root := obj(mem("items", record.Array([]record.Value{
		obj(mem("id", record.Int(1))),
		obj(mem("id", record.Int(2))),
	})))

	p, err := Parse("items.[*].id")
	require.NoError(t, err)

	v, ok := Resolve(root, p)
	require.True(t, ok)
	assert.Equal(t, int64(1), v.Int())
}

func TestResolveMissingField(t *testing.T) {
	root := obj(mem("a", record.Int(1)))

	p, err := Parse("b")
	require.NoError(t, err)

	_, ok := Resolve(root, p)
	assert.False(t, ok)
}
