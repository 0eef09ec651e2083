package merge

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hlview/hl/internal/record"
	"github.com/hlview/hl/internal/tstamp"
)

type sliceReader struct {
	recs []*record.Record
	pos  int
}

func (s *sliceReader) Next() (*record.Record, error) {
	if s.pos >= len(s.recs) {
		return nil, io.EOF
	}

	r := s.recs[s.pos]
	s.pos++

	return r, nil
}

func mkRecord(t *testing.T, msg string, ts time.Time) *record.Record {
	t.Helper()

	r := &record.Record{Kind: record.RecordJSON}
	inst := tstamp.NewInstant(ts, tstamp.PrecisionSecond)
	r.Instant = &inst
	_ = msg

	return r
}

func TestBatchMergerChronological(t *testing.T) {
	base := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	a := &sliceReader{recs: []*record.Record{
		mkRecord(t, "A1", base),
		mkRecord(t, "A2", base.Add(2*time.Second)),
	}}
	b := &sliceReader{recs: []*record.Record{
		mkRecord(t, "B1", base.Add(1*time.Second)),
	}}

	m := NewBatchMerger([]Reader{a, b})

	var order []time.Time

	for {
		rec, err := m.Next()
		if err == io.EOF {
			break
		}

		require.NoError(t, err)
		order = append(order, rec.Instant.Time())
	}

	require.Len(t, order, 3)
	assert.True(t, order[0].Equal(base))
	assert.True(t, order[1].Equal(base.Add(1*time.Second)))
	assert.True(t, order[2].Equal(base.Add(2*time.Second)))
}

func TestBatchMergerTieBreakBySourceIndex(t *testing.T) {
	base := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	a := &sliceReader{recs: []*record.Record{mkRecord(t, "A", base)}}
	b := &sliceReader{recs: []*record.Record{mkRecord(t, "B", base)}}

	m := NewBatchMerger([]Reader{a, b})

	first, err := m.Next()
	require.NoError(t, err)
	second, err := m.Next()
	require.NoError(t, err)

	assert.Same(t, a.recs[0], first)
	assert.Same(t, b.recs[0], second)
}

func TestFollowerEmitsWithinSyncWindow(t *testing.T) {
	base := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	clock := base.Add(1 * time.Hour) // far in the "future" relative to record instants

	f := NewFollower(10 * time.Millisecond)
	f.Now = func() time.Time { return clock }

	chA := make(chan Message, 4)
	chB := make(chan Message, 4)

	chA <- Message{Index: 0, Rec: mkRecord(t, "A1", base)}
	chA <- Message{Index: 0, Rec: mkRecord(t, "A2", base.Add(3*time.Second))}
	close(chA)

	chB <- Message{Index: 1, Rec: mkRecord(t, "B1", base.Add(1*time.Second))}
	close(chB)

	out := make(chan *record.Record, 8)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	f.Run(ctx, []<-chan Message{chA, chB}, out)

	var got []time.Time
	for rec := range out {
		got = append(got, rec.Instant.Time())
	}

	require.Len(t, got, 3)
	assert.True(t, got[0].Before(got[1]) || got[0].Equal(got[1]))
	assert.True(t, got[1].Before(got[2]) || got[1].Equal(got[2]))
}

func TestChunkIndexSeekOffset(t *testing.T) {
	base := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	idx := NewChunkIndex([]ChunkSample{
		{Offset: 0, Instant: base},
		{Offset: 100, Instant: base.Add(1 * time.Minute)},
		{Offset: 200, Instant: base.Add(2 * time.Minute)},
	})

	off, ok := idx.SeekOffset(base.Add(90 * time.Second))
	require.True(t, ok)
	assert.Equal(t, int64(100), off)

	assert.True(t, idx.Exhausted(base.Add(-1*time.Minute)))
	assert.False(t, idx.Exhausted(base.Add(5*time.Minute)))
}
