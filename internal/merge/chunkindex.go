package merge

import (
	"sort"
	"time"
)

// ChunkSample is one sampled (byte offset, instant) pair recorded while a
// source is first scanned, the raw material for [ChunkIndex].
type ChunkSample struct {
	Offset  int64
	Instant time.Time
}

// ChunkIndex is the per-source index referenced in SPEC_FULL §4.7 ("each
// source is pre-indexed into time-bucketed chunks to enable skipping
// entire chunks that fall outside a --since/--until window without
// parsing them"). It holds one sample per chunk boundary, sorted by
// offset; since within-source timestamps are expected non-decreasing,
// chunk boundaries bound the min/max instant for everything between them.
type ChunkIndex struct {
	samples []ChunkSample
}

// NewChunkIndex builds an index from boundary samples taken during an
// initial pass over a source. samples need not be pre-sorted.
func NewChunkIndex(samples []ChunkSample) *ChunkIndex {
	cp := append([]ChunkSample(nil), samples...)
	sort.Slice(cp, func(i, j int) bool { return cp[i].Offset < cp[j].Offset })

	return &ChunkIndex{samples: cp}
}

// SeekOffset returns the largest sampled byte offset whose instant is
// still before since, i.e. the earliest point a reader may resume from
// without missing a record that could fall on or after since. ok is
// false if the index has no samples (caller must start from the
// beginning).
func (c *ChunkIndex) SeekOffset(since time.Time) (offset int64, ok bool) {
	if len(c.samples) == 0 || since.IsZero() {
		return 0, false
	}

	// Find the first sample at or after `since`; resume from the sample
	// immediately before it so nothing between the two is missed.
	idx := sort.Search(len(c.samples), func(i int) bool {
		return !c.samples[i].Instant.Before(since)
	})

	if idx == 0 {
		return 0, false
	}

	return c.samples[idx-1].Offset, true
}

// Exhausted reports whether every sample's instant is already after
// until, meaning the entire remaining source can be skipped.
func (c *ChunkIndex) Exhausted(until time.Time) bool {
	if until.IsZero() || len(c.samples) == 0 {
		return false
	}

	return c.samples[0].Instant.After(until)
}
