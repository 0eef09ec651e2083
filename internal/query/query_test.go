package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hlview/hl/internal/record"
)

func parseRecord(t *testing.T, seg string) *record.Record {
	t.Helper()

	r, err := record.Parse([]byte(seg), record.DefaultConfig(), record.InputBadge{})
	require.NoError(t, err)

	return r
}

func TestFilterEqual(t *testing.T) {
	r := parseRecord(t, `{"status":"200","msg":"ok"}`)

	f, err := ParseFilter("status=200")
	require.NoError(t, err)
	assert.True(t, f.Match(r))

	f, err = ParseFilter("status!=200")
	require.NoError(t, err)
	assert.False(t, f.Match(r))
}

func TestFilterIncludeAbsent(t *testing.T) {
	r := parseRecord(t, `{"msg":"ok"}`)

	f, err := ParseFilter("?missing=x")
	require.NoError(t, err)
	assert.True(t, f.Match(r))

	f, err = ParseFilter("missing=x")
	require.NoError(t, err)
	assert.False(t, f.Match(r))
}

func TestQueryLevelOrdering(t *testing.T) {
	r := parseRecord(t, `{"level":"warn","msg":"disk high"}`)

	n, err := Parse("level >= info")
	require.NoError(t, err)
	assert.True(t, Eval(n, r))

	n, err = Parse("level > error")
	require.NoError(t, err)
	assert.False(t, Eval(n, r))
}

func TestQueryDottedBypass(t *testing.T) {
	r := parseRecord(t, `{"level":"WARN","msg":"x"}`)

	n, err := Parse(`.level = "WARN"`)
	require.NoError(t, err)
	assert.True(t, Eval(n, r))

	n, err = Parse(`.level = "warn"`)
	require.NoError(t, err)
	assert.False(t, Eval(n, r))
}

func TestQueryAndOrNot(t *testing.T) {
	r := parseRecord(t, `{"status":200,"msg":"ok"}`)

	n, err := Parse("status = 200 and not message = fail")
	require.NoError(t, err)
	assert.True(t, Eval(n, r))

	n, err = Parse("status = 404 or message = ok")
	require.NoError(t, err)
	assert.True(t, Eval(n, r))
}

func TestQueryExists(t *testing.T) {
	r := parseRecord(t, `{"req":{"id":"a"}}`)

	n, err := Parse("exists(req.id)")
	require.NoError(t, err)
	assert.True(t, Eval(n, r))

	n, err = Parse("exists(req.missing)")
	require.NoError(t, err)
	assert.False(t, Eval(n, r))
}

func TestQueryLikeAndMatch(t *testing.T) {
	r := parseRecord(t, `{"name":"app-server","msg":"hello world"}`)

	n, err := Parse(`name like "app-*"`)
	require.NoError(t, err)
	assert.True(t, Eval(n, r))

	n, err = Parse(`message match "^hello"`)
	require.NoError(t, err)
	assert.True(t, Eval(n, r))
}

func TestQueryIn(t *testing.T) {
	r := parseRecord(t, `{"status":200}`)

	n, err := Parse("status in (200, 201, 204)")
	require.NoError(t, err)
	assert.True(t, Eval(n, r))

	n, err = Parse("status in (404, 500)")
	require.NoError(t, err)
	assert.False(t, Eval(n, r))
}

func TestQueryNumericParseFailSilent(t *testing.T) {
	r := parseRecord(t, `{"status":"not-a-number"}`)

	n, err := Parse("status > 100")
	require.NoError(t, err)
	assert.False(t, Eval(n, r))
}

func TestGlob(t *testing.T) {
	assert.True(t, Glob("a*c", "abc"))
	assert.True(t, Glob("a?c", "abc"))
	assert.False(t, Glob("a?c", "abbc"))
	assert.True(t, Glob("*", "anything"))
}

func TestParseInvalidRegexFailsAtParse(t *testing.T) {
	_, err := Parse(`message match "("`)
	require.Error(t, err)
}
