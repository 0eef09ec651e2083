package tstamp_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hlview/hl/internal/tstamp"
)

func TestMatchRFC3339(t *testing.T) {
	t.Parallel()

	inst, ok := tstamp.MatchRFC3339("2024-01-15T10:00:00Z", time.Now())
	require.True(t, ok)
	assert.Equal(t, 2024, inst.Time().Year())
	assert.Equal(t, tstamp.PrecisionSecond, inst.Precision())

	inst, ok = tstamp.MatchRFC3339("2024-01-15T10:00:00.123456789Z", time.Now())
	require.True(t, ok)
	assert.Equal(t, tstamp.PrecisionNano, inst.Precision())
}

func TestMatchSyslog(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	inst, ok := tstamp.MatchSyslog("Jan  2 15:04:05", now)
	require.True(t, ok)
	assert.Equal(t, 2024, inst.Time().Year())
	assert.Equal(t, time.January, inst.Time().Month())
}

func TestMatchSyslogYearRollover(t *testing.T) {
	t.Parallel()

	// A December timestamp observed in early January implies the previous year.
	now := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	inst, ok := tstamp.MatchSyslog("Dec 31 23:59:59", now)
	require.True(t, ok)
	assert.Equal(t, 2023, inst.Time().Year())
}

func TestMatchEpoch(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input    string
		wantPrec tstamp.Precision
	}{
		"seconds":      {"1700000000", tstamp.PrecisionSecond},
		"milliseconds": {"1700000000000", tstamp.PrecisionMilli},
		"microseconds": {"1700000000000000", tstamp.PrecisionMicro},
		"nanoseconds":  {"1700000000000000000", tstamp.PrecisionNano},
		"fractional":   {"1700000000.5", tstamp.PrecisionNano},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			inst, ok := tstamp.MatchEpoch(tc.input, time.Now())
			require.True(t, ok)
			assert.Equal(t, tc.wantPrec, inst.Precision())
			assert.WithinDuration(t, time.Unix(1700000000, 0), inst.Time(), 2*time.Second)
		})
	}

	_, ok := tstamp.MatchEpoch("not-a-number", time.Now())
	assert.False(t, ok)
}

func TestParserChain(t *testing.T) {
	t.Parallel()

	p := tstamp.NewParser()

	inst, ok := p.Parse("2024-01-15T10:00:00Z")
	require.True(t, ok)
	assert.Equal(t, 2024, inst.Time().Year())

	inst, ok = p.Parse("1700000000")
	require.True(t, ok)
	assert.Equal(t, tstamp.PrecisionSecond, inst.Precision())

	_, ok = p.Parse("not a timestamp at all")
	assert.False(t, ok)
}

func TestParserWithTemplate(t *testing.T) {
	t.Parallel()

	p := tstamp.NewParser()

	p2, err := p.WithTemplate("%Y/%m/%d %H:%M:%S")
	require.NoError(t, err)

	inst, ok := p2.Parse("2024/01/15 10:00:00")
	require.True(t, ok)
	assert.Equal(t, 2024, inst.Time().Year())
}

func TestFormat(t *testing.T) {
	t.Parallel()

	inst := tstamp.NewInstant(time.Date(2024, 1, 15, 10, 0, 0, 123000000, time.UTC), tstamp.PrecisionMilli)

	out, err := tstamp.Format(inst, time.UTC, "%Y-%m-%d %H:%M:%S.%3N")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15 10:00:00.123", out)
}
