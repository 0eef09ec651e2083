package record_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hlview/hl/internal/record"
)

func TestDetectForced(t *testing.T) {
	t.Parallel()

	kind, _ := record.Detect([]byte(`anything`), record.DetectConfig{Forced: record.RecordLogfmt, HasForced: true})
	assert.Equal(t, record.RecordLogfmt, kind)
}

func TestDetectLeadingBrace(t *testing.T) {
	t.Parallel()

	kind, start := record.Detect([]byte(`{"a":1}`), record.DetectConfig{})
	assert.Equal(t, record.RecordJSON, kind)
	assert.Equal(t, 0, start)
}

func TestDetectAllowPrefix(t *testing.T) {
	t.Parallel()

	seg := []byte(`INFO: {"a":1}`)

	kind, _ := record.Detect(seg, record.DetectConfig{})
	assert.Equal(t, record.RecordRaw, kind, "without AllowPrefix, a non-JSON prefix falls back to raw/logfmt detection")

	kind, start := record.Detect(seg, record.DetectConfig{AllowPrefix: true})
	assert.Equal(t, record.RecordJSON, kind)
	assert.Equal(t, 6, start)
}

func TestDetectLogfmt(t *testing.T) {
	t.Parallel()

	kind, _ := record.Detect([]byte(`level=info msg=hello`), record.DetectConfig{})
	assert.Equal(t, record.RecordLogfmt, kind)
}

func TestDetectRaw(t *testing.T) {
	t.Parallel()

	kind, _ := record.Detect([]byte(`just some plain text`), record.DetectConfig{})
	assert.Equal(t, record.RecordRaw, kind)
}

func TestParseResolvesSemanticFields(t *testing.T) {
	t.Parallel()

	seg := []byte(`{"time":"2024-01-15T10:00:00Z","level":"warn","msg":"disk high"}`)

	r, err := record.Parse(seg, record.DefaultConfig(), record.InputBadge{Name: "a.log"})
	require.NoError(t, err)
	assert.Equal(t, record.RecordJSON, r.Kind)

	msg := r.Semantic.Get(record.FieldMessage)
	require.True(t, msg.Present)
	assert.Equal(t, "disk high", msg.Value.Str())

	require.True(t, r.HasLevel)
	assert.Equal(t, record.LevelWarn, r.Level)

	require.NotNil(t, r.Instant)
	assert.Equal(t, 2024, r.Instant.Time().Year())
}

func TestParseMalformedJSONBecomesRaw(t *testing.T) {
	t.Parallel()

	r, err := record.Parse([]byte(`{"a": }`), record.DefaultConfig(), record.InputBadge{})
	require.Error(t, err)
	assert.Equal(t, record.RecordRaw, r.Kind)
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		value record.Value
		want  record.Level
	}{
		"uppercase":      {record.String("INFO", true), record.LevelInfo},
		"lowercase":      {record.String("info", true), record.LevelInfo},
		"warning alias":  {record.String("warning", true), record.LevelWarn},
		"syslog numeric": {record.Int(6), record.LevelInfo},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, ok := record.ParseLevel(tc.value)
			require.True(t, ok)
			assert.Equal(t, tc.want, got)
		})
	}

	_, ok := record.ParseLevel(record.String("nonsense", true))
	assert.False(t, ok)
}

func TestLevelOrdering(t *testing.T) {
	t.Parallel()

	assert.Less(t, int(record.LevelTrace), int(record.LevelDebug))
	assert.Less(t, int(record.LevelDebug), int(record.LevelInfo))
	assert.Less(t, int(record.LevelInfo), int(record.LevelWarn))
	assert.Less(t, int(record.LevelWarn), int(record.LevelError))
}
