package record_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hlview/hl/internal/record"
)

func TestParseLogfmtTypeInference(t *testing.T) {
	t.Parallel()

	// SPEC_FULL S4.
	v, err := record.ParseLogfmt([]byte(`status=200 count="200" ok=true when=null note=hello`))
	require.NoError(t, err)
	require.Equal(t, record.KindObject, v.Kind())

	status, ok := v.Field("status")
	require.True(t, ok)
	assert.Equal(t, record.KindString, status.Kind(), "logfmt values are semantically string")
	assert.Equal(t, record.KindInt, status.DisplayKind())
	assert.False(t, status.Quoted)

	count, ok := v.Field("count")
	require.True(t, ok)
	assert.True(t, count.Quoted)
	assert.Equal(t, record.KindString, count.DisplayKind(), "quoted values are never type-inferred")

	ok_, ok := v.Field("ok")
	require.True(t, ok)
	assert.Equal(t, record.KindBool, ok_.DisplayKind())

	when, ok := v.Field("when")
	require.True(t, ok)
	assert.Equal(t, record.KindNull, when.DisplayKind())

	note, ok := v.Field("note")
	require.True(t, ok)
	assert.Equal(t, record.KindString, note.DisplayKind())

	// Numeric comparisons parse the raw string at query time.
	f, ok := status.AsFloat()
	require.True(t, ok)
	assert.InEpsilon(t, 200.0, f, 0.0001)

	s, ok := status.AsString()
	require.True(t, ok)
	assert.Equal(t, "200", s)
}

func TestParseLogfmtQuotedEscapes(t *testing.T) {
	t.Parallel()

	v, err := record.ParseLogfmt([]byte(`msg="hello\nworld"`))
	require.NoError(t, err)

	msg, ok := v.Field("msg")
	require.True(t, ok)
	assert.Equal(t, "hello\nworld", msg.Str())
}

func TestParseLogfmtBareKey(t *testing.T) {
	t.Parallel()

	v, err := record.ParseLogfmt([]byte(`debug level=info`))
	require.NoError(t, err)

	debug, ok := v.Field("debug")
	require.True(t, ok)
	assert.Equal(t, "", debug.Str())

	level, ok := v.Field("level")
	require.True(t, ok)
	assert.Equal(t, "info", level.Str())
}

func TestParseLogfmtHyphenatedKey(t *testing.T) {
	t.Parallel()

	v, err := record.ParseLogfmt([]byte(`request-id=abc123`))
	require.NoError(t, err)

	id, ok := v.Field("request-id")
	require.True(t, ok)
	assert.Equal(t, "abc123", id.Str())
}
