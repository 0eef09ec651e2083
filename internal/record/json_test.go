package record_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hlview/hl/internal/record"
)

func TestParseJSONScalars(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input    string
		wantKind record.Kind
	}{
		"string":  {`"hello"`, record.KindString},
		"int":     {`42`, record.KindInt},
		"negint":  {`-42`, record.KindInt},
		"float":   {`3.14`, record.KindFloat},
		"exp":     {`1e10`, record.KindFloat},
		"true":    {`true`, record.KindBool},
		"false":   {`false`, record.KindBool},
		"null":    {`null`, record.KindNull},
		"array":   {`[1,2,3]`, record.KindArray},
		"object":  {`{"a":1}`, record.KindObject},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			v, err := record.ParseJSON([]byte(tc.input))
			require.NoError(t, err)
			assert.Equal(t, tc.wantKind, v.Kind())
		})
	}
}

func TestParseJSONObjectPreservesOrderAndDuplicates(t *testing.T) {
	t.Parallel()

	v, err := record.ParseJSON([]byte(`{"a":1,"b":2,"a":3}`))
	require.NoError(t, err)
	require.Equal(t, record.KindObject, v.Kind())

	members := v.Members()
	require.Len(t, members, 3)
	assert.Equal(t, "a", members[0].Key)
	assert.Equal(t, "b", members[1].Key)
	assert.Equal(t, "a", members[2].Key)
	assert.Equal(t, int64(3), members[2].Value.Int())
}

func TestParseJSONStringEscapes(t *testing.T) {
	t.Parallel()

	v, err := record.ParseJSON([]byte(`"line1\nline2\t\"quoted\""`))
	require.NoError(t, err)
	assert.Equal(t, "line1\nline2\t\"quoted\"", v.Str())
}

func TestParseJSONUnicodeEscape(t *testing.T) {
	t.Parallel()

	// \x5c is a backslash, so the input is the six-character JSON escape for é.
	v, err := record.ParseJSON([]byte("\"\x5cu00e9\""))
	require.NoError(t, err)
	assert.Equal(t, "é", v.Str())
}

func TestParseJSONSurrogatePair(t *testing.T) {
	t.Parallel()

	// U+1F600 GRINNING FACE, encoded as a UTF-16 surrogate pair.
	v, err := record.ParseJSON([]byte("\"\x5cud83d\x5cude00\""))
	require.NoError(t, err)
	assert.Equal(t, "😀", v.Str())
}

func TestParseJSONSyntaxErrorHasOffset(t *testing.T) {
	t.Parallel()

	_, err := record.ParseJSON([]byte(`{"a": }`))
	require.Error(t, err)

	var perr *record.ParseError

	require.ErrorAs(t, err, &perr)
	assert.Positive(t, perr.Offset)
}

func TestParseJSONNestedStructure(t *testing.T) {
	t.Parallel()

	v, err := record.ParseJSON([]byte(`{"req":{"id":"a","tags":[1,2,"x"]}}`))
	require.NoError(t, err)

	req, ok := v.Field("req")
	require.True(t, ok)

	id, ok := req.Field("id")
	require.True(t, ok)
	assert.Equal(t, "a", id.Str())

	tags, ok := req.Field("tags")
	require.True(t, ok)
	assert.Len(t, tags.Elements(), 3)
}
