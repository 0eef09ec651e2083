package merge

import (
	"context"
	"reflect"
	"time"

	"github.com/hlview/hl/internal/record"
)

// DefaultSyncWindow is the default follow-mode sync window (SPEC_FULL §6
// --sync-interval-ms, default 100ms).
const DefaultSyncWindow = 100 * time.Millisecond

// Message is one message from a reader goroutine to the merger
// goroutine: either a parsed record or the source's terminal error
// (io.EOF on graceful close).
type Message struct {
	Index int
	Rec   *record.Record
	Err   error
}

// Follower implements SPEC_FULL §4.7 "Follow mode": one goroutine per
// watched file pushes parsed records into a shared priority queue; a
// single merger goroutine emits them once the sync-window deadline makes
// it safe to do so, guaranteeing chronological order within the window
// despite clock skew across sources.
type Follower struct {
	SyncWindow time.Duration

	// Now is the clock used to compute deadlines; overridable for tests.
	Now func() time.Time
}

// NewFollower builds a Follower with the given sync window (zero means
// [DefaultSyncWindow]).
func NewFollower(syncWindow time.Duration) *Follower {
	if syncWindow <= 0 {
		syncWindow = DefaultSyncWindow
	}

	return &Follower{SyncWindow: syncWindow, Now: time.Now}
}

// Run merges records arriving on ins (one channel per source, closed when
// that source's reader exits) and sends them in sync-window-local
// chronological order to out, closing out when ctx is cancelled or every
// input channel has closed. It is the single "merger goroutine" of §4.7;
// callers run one additional goroutine per source feeding ins.
func (f *Follower) Run(ctx context.Context, ins []<-chan Message, out chan<- *record.Record) {
	defer close(out)

	now := f.Now
	if now == nil {
		now = time.Now
	}

	pq := newPriorityQueue()
	lastSeen := make([]time.Time, len(ins))
	active := make([]bool, len(ins))

	for i := range active {
		active[i] = true
	}

	ticker := time.NewTicker(f.SyncWindow)
	defer ticker.Stop()

	cases := make([]reflect.SelectCase, 0, len(ins)+2)
	cases = append(cases, reflect.SelectCase{Dir: reflect.SelectRecv, Chan: reflect.ValueOf(ctx.Done())})
	cases = append(cases, reflect.SelectCase{Dir: reflect.SelectRecv, Chan: reflect.ValueOf(ticker.C)})

	for _, ch := range ins {
		cases = append(cases, reflect.SelectCase{Dir: reflect.SelectRecv, Chan: reflect.ValueOf(ch)})
	}

	anyActive := func() bool {
		for _, a := range active {
			if a {
				return true
			}
		}

		return false
	}

	for anyActive() || pq.len() > 0 {
		chosen, recv, recvOK := reflect.Select(cases)

		switch {
		case chosen == 0: // ctx.Done()
			f.drainAll(pq, out)

			return

		case chosen == 1: // ticker
			f.emitReady(pq, lastSeen, active, now, out)

		default:
			srcIdx := chosen - 2

			if !recvOK {
				active[srcIdx] = false
				cases[chosen].Chan = reflect.ValueOf((<-chan Message)(nil))

				f.emitReady(pq, lastSeen, active, now, out)

				continue
			}

			msg := recv.Interface().(Message)
			if msg.Err != nil {
				active[srcIdx] = false

				continue
			}

			lastSeen[srcIdx] = now()

			if msg.Rec.Instant != nil {
				pq.push(item{instant: *msg.Rec.Instant, sourceIndex: srcIdx, rec: msg.Rec})
			} else {
				// Untimed records in follow mode are emitted immediately;
				// they cannot participate in chronological ordering.
				select {
				case out <- msg.Rec:
				case <-ctx.Done():
					return
				}
			}

			f.emitReady(pq, lastSeen, active, now, out)
		}
	}
}

// emitReady drains every queue entry whose instant is before the current
// deadline, implementing the sliding-deadline rule of SPEC_FULL §4.7:
// "a record with timestamp t may be emitted once the queue front's
// timestamp is older than min(now()-sync_window, min over sources of
// last_seen_timestamp - sync_window)".
func (f *Follower) emitReady(pq *priorityQueue, lastSeen []time.Time, active []bool, now func() time.Time, out chan<- *record.Record) {
	deadline := now().Add(-f.SyncWindow)

	for i, a := range active {
		if a && !lastSeen[i].IsZero() {
			d := lastSeen[i].Add(-f.SyncWindow)
			if d.Before(deadline) {
				deadline = d
			}
		}
	}

	for pq.len() > 0 && pq.peek().instant.Time().Before(deadline) {
		it := pq.pop()
		out <- it.rec
	}
}

// drainAll flushes every remaining queued record in order on cancellation,
// so no buffered record is silently lost.
func (f *Follower) drainAll(pq *priorityQueue, out chan<- *record.Record) {
	for pq.len() > 0 {
		it := pq.pop()
		out <- it.rec
	}
}
