package greenthread

import (
	"container/heap"
	"time"
)

// deadlineEntry parks a single ConditionVariable.WaitFor caller on the
// scheduler's deadline queue. onFire is invoked by the scheduler's
// idle-wait step when the deadline passes; it is responsible for deciding
// whether this waiter actually still needs waking (a racing notify may
// have already claimed it) and, if so, doing so. Waking the thread is
// never done directly by the queue itself, so every path that can end a
// wait — a notify or a timeout — goes through the same claim.
type deadlineEntry struct {
	deadline time.Time
	thread   *GreenThread
	onFire   func()
	index    int // heap.Interface bookkeeping
}

// deadlineQueue is a min-heap ordered by deadline, consulted by the
// scheduler on every idle-wait iteration. This is the fix for the source
// bug flagged in this system's open questions: the original's wait_for
// checked the clock exactly once, after a single yield, which made the
// timeout almost never fire; a real deadline queue is what the design
// notes there call for instead.
type deadlineQueue struct {
	entries []*deadlineEntry
}

func (q *deadlineQueue) Len() int { return len(q.entries) }
func (q *deadlineQueue) Less(i, j int) bool {
	return q.entries[i].deadline.Before(q.entries[j].deadline)
}
func (q *deadlineQueue) Swap(i, j int) {
	q.entries[i], q.entries[j] = q.entries[j], q.entries[i]
	q.entries[i].index = i
	q.entries[j].index = j
}
func (q *deadlineQueue) Push(x any) {
	e := x.(*deadlineEntry)
	e.index = len(q.entries)
	q.entries = append(q.entries, e)
}
func (q *deadlineQueue) Pop() any {
	old := q.entries
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	q.entries = old[:n-1]
	e.index = -1
	return e
}

// add inserts an entry into the heap in O(log n).
func (q *deadlineQueue) add(e *deadlineEntry) {
	heap.Push(q, e)
}

// remove removes an entry that has not yet fired, e.g. because its waiter
// was notified before the deadline. No-op if already removed.
func (q *deadlineQueue) remove(e *deadlineEntry) {
	if e.index < 0 || e.index >= len(q.entries) || q.entries[e.index] != e {
		return
	}
	heap.Remove(q, e.index)
}

// expired pops every entry whose deadline is <= now, in deadline order.
func (q *deadlineQueue) expired(now time.Time) []*deadlineEntry {
	var out []*deadlineEntry
	for q.Len() > 0 && !q.entries[0].deadline.After(now) {
		out = append(out, heap.Pop(q).(*deadlineEntry))
	}
	return out
}

// nextDeadline returns the earliest pending deadline, if any.
func (q *deadlineQueue) nextDeadline() (time.Time, bool) {
	if q.Len() == 0 {
		return time.Time{}, false
	}
	return q.entries[0].deadline, true
}
