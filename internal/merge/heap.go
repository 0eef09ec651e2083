package merge

import (
	"container/heap"

	"github.com/hlview/hl/internal/record"
	"github.com/hlview/hl/internal/tstamp"
)

// item is one pending record in the merge priority queue, keyed on
// (timestamp, sourceIndex) per SPEC_FULL §4.7: sourceIndex breaks ties
// deterministically (§9 Open Question, resolved as CLI argument order).
type item struct {
	instant     tstamp.Instant
	sourceIndex int
	rec         *record.Record
}

// itemHeap is a textbook container/heap min-heap; this is idiomatic
// stdlib use for a priority queue, not an ambient concern delegated
// elsewhere (DESIGN.md).
type itemHeap []item

func (h itemHeap) Len() int { return len(h) }

func (h itemHeap) Less(i, j int) bool {
	if h[i].instant.Time().Equal(h[j].instant.Time()) {
		return h[i].sourceIndex < h[j].sourceIndex
	}

	return h[i].instant.Before(h[j].instant)
}

func (h itemHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *itemHeap) Push(x any) { *h = append(*h, x.(item)) }

func (h *itemHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]

	return x
}

// priorityQueue wraps itemHeap with the heap.Interface plumbing hidden.
type priorityQueue struct {
	h itemHeap
}

func newPriorityQueue() *priorityQueue {
	pq := &priorityQueue{}
	heap.Init(&pq.h)

	return pq
}

func (pq *priorityQueue) push(it item) { heap.Push(&pq.h, it) }

func (pq *priorityQueue) pop() item { return heap.Pop(&pq.h).(item) }

func (pq *priorityQueue) len() int { return pq.h.Len() }

func (pq *priorityQueue) peek() item { return pq.h[0] }
