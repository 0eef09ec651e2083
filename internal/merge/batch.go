package merge

import (
	"errors"
	"io"

	"github.com/hlview/hl/internal/record"
)

// Reader pulls parsed records from one bounded source in source order,
// terminating the sequence with io.EOF.
type Reader interface {
	Next() (*record.Record, error)
}

// BatchMerger performs the streaming k-way merge described in SPEC_FULL
// §4.7 "Batch merge (sort mode)" over N bounded readers, using
// container/heap (idiomatic stdlib priority queue, see DESIGN.md).
type BatchMerger struct {
	readers []Reader
	pq      *priorityQueue
	done    []bool

	// SkipUntimed drops records with no resolvable instant, matching
	// SPEC_FULL §4.6 "in sort and follow modes it is skipped unless
	// configuration says otherwise".
	SkipUntimed bool

	// OnSourceError, if set, is called for a non-EOF error returned by a
	// reader; the source is then treated as exhausted (SPEC_FULL §7:
	// input errors are non-fatal per source).
	OnSourceError func(sourceIndex int, err error)
}

// NewBatchMerger builds a merger over readers, indexed 0..len(readers)-1
// in CLI argument order (the sort tie-break, SPEC_FULL §9).
func NewBatchMerger(readers []Reader) *BatchMerger {
	m := &BatchMerger{
		readers:     readers,
		pq:          newPriorityQueue(),
		done:        make([]bool, len(readers)),
		SkipUntimed: true,
	}

	for i := range readers {
		m.fill(i)
	}

	return m
}

// fill pulls the next timestamped record from source i into the queue,
// skipping untimed records per SkipUntimed until one is found or the
// source is exhausted.
func (m *BatchMerger) fill(i int) {
	if m.done[i] {
		return
	}

	for {
		rec, err := m.readers[i].Next()
		if err != nil {
			if !errors.Is(err, io.EOF) && m.OnSourceError != nil {
				m.OnSourceError(i, err)
			}

			m.done[i] = true

			return
		}

		if rec.Instant == nil {
			if m.SkipUntimed {
				continue
			}

			m.pq.push(item{sourceIndex: i, rec: rec})

			return
		}

		m.pq.push(item{instant: *rec.Instant, sourceIndex: i, rec: rec})

		return
	}
}

// Next returns the next record in chronological order across all
// sources, or io.EOF once every source is exhausted (SPEC_FULL §8
// property 4: emitted timestamps form a non-decreasing sequence).
func (m *BatchMerger) Next() (*record.Record, error) {
	if m.pq.len() == 0 {
		return nil, io.EOF
	}

	it := m.pq.pop()
	m.fill(it.sourceIndex)

	return it.rec, nil
}
