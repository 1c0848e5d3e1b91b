package greenthread

import (
	"sync"
	"sync/atomic"
	"time"
)

// claimReason records which of a timeout or a notify woke a cvWaiter, so
// the waiter can report that back to its own WaitFor call once it resumes.
type claimReason int32

const (
	claimNone claimReason = iota
	claimTimeout
	claimNotify
)

// cvWaiter is one green thread parked on a ConditionVariable's wait queue.
// claimed is a single-shot latch: whichever of {a Notify call, this
// waiter's own WaitFor deadline} first flips it away from claimNone is the
// one that gets to wake the thread, so a timeout racing a notification can
// never result in the same thread being woken twice, or a notification
// meant for one waiter silently firing a different one that already timed
// out. The winning reason is recorded, not just the fact of a win, since
// the thread that resumes needs to know which one woke it.
type cvWaiter struct {
	thread  *GreenThread
	claimed atomic.Int32
}

func (w *cvWaiter) claim(reason claimReason) bool {
	return w.claimed.CompareAndSwap(int32(claimNone), int32(reason))
}

func (w *cvWaiter) reason() claimReason {
	return claimReason(w.claimed.Load())
}

// ConditionVariable is a cooperative condition variable: Wait suspends the
// calling green thread and releases an associated Mutex on its behalf;
// NotifyOne/NotifyAll move parked threads back onto the scheduler's ready
// queue, which re-acquire the mutex themselves before Wait returns. It is
// not tied to any particular Mutex at construction — the mutex is supplied
// fresh to every Wait/WaitFor call, per this system's data model.
type ConditionVariable struct {
	mu      sync.Mutex
	waiters *queue[*cvWaiter]
}

// NewConditionVariable returns a ConditionVariable with an empty wait queue.
func NewConditionVariable() *ConditionVariable {
	return &ConditionVariable{waiters: newQueue[*cvWaiter](defaultQueueCapacity)}
}

func (cv *ConditionVariable) enqueue(t *GreenThread) *cvWaiter {
	w := &cvWaiter{thread: t}
	cv.mu.Lock()
	cv.waiters.PushBack(w)
	cv.mu.Unlock()
	return w
}

// Wait releases m, suspends the calling green thread until notified, and
// re-acquires m before returning. It fails with [NotInGreenThread] if
// called outside any green thread, or [NotOwner] if the caller does not
// currently hold m. Spurious wakeups are not introduced by this
// implementation, but callers must still re-test their predicate in a loop,
// per the general contract of condition variables.
func (cv *ConditionVariable) Wait(m *Mutex) error {
	current := currentThread()
	if current == nil {
		return newNotInGreenThread("condition variable wait")
	}
	if !m.ownedBy(current) {
		return newNotOwner("condition variable wait")
	}

	cv.enqueue(current)
	if err := m.Unlock(); err != nil {
		return err
	}

	current.parkAndSwitchBack()
	return m.Lock()
}

// WaitFor is Wait with a deadline armed on the caller's scheduler: if the
// deadline passes before a notification claims this waiter, the caller is
// moved back to READY on timeout and WaitFor returns false once it has
// re-acquired m. It returns true if a notification (rather than the
// timeout) is what woke the caller.
//
// This corrects the source behavior this system's design notes flag as
// buggy (checking the clock once after a single yield, so the timeout
// almost never actually fired): the waiter is registered on the
// scheduler's deadline queue and is woken by the scheduler's idle-wait step
// consulting it, not by a fixed number of yields.
func (cv *ConditionVariable) WaitFor(m *Mutex, timeout time.Duration) (bool, error) {
	current := currentThread()
	if current == nil {
		return false, newNotInGreenThread("condition variable wait_for")
	}
	if !m.ownedBy(current) {
		return false, newNotOwner("condition variable wait_for")
	}

	w := cv.enqueue(current)
	sched := current.scheduler
	entry := sched.armDeadline(current, time.Now().Add(timeout), func() {
		// A notify may have already claimed w; only a thread that wins the
		// claim is actually woken here, so a timeout racing a notification
		// can never double-wake the thread or swallow the notification.
		if w.claim(claimTimeout) && w.thread.wake() {
			w.thread.scheduler.enqueueReady(w.thread)
		}
	})

	if err := m.Unlock(); err != nil {
		return false, err
	}

	current.parkAndSwitchBack()

	// Whichever of {the deadline firing, a Notify} won the claim recorded
	// its reason before waking us; read it back rather than re-claiming.
	timedOut := w.reason() == claimTimeout
	sched.disarmDeadline(entry)

	if err := m.Lock(); err != nil {
		return false, err
	}
	return !timedOut, nil
}

// NotifyOne wakes the longest-waiting parked thread, if any, skipping over
// any waiter whose WaitFor deadline has already claimed it. It is a no-op
// if the wait queue is empty or every remaining waiter has already timed
// out.
func (cv *ConditionVariable) NotifyOne() {
	for {
		cv.mu.Lock()
		w, ok := cv.waiters.PopFront()
		cv.mu.Unlock()
		if !ok {
			return
		}
		if w.claim(claimNotify) {
			if w.thread.wake() {
				w.thread.scheduler.enqueueReady(w.thread)
			}
			return
		}
	}
}

// NotifyAll wakes every parked thread that has not already timed out,
// draining the wait queue.
func (cv *ConditionVariable) NotifyAll() {
	for {
		cv.mu.Lock()
		w, ok := cv.waiters.PopFront()
		cv.mu.Unlock()
		if !ok {
			return
		}
		if w.claim(claimNotify) {
			if w.thread.wake() {
				w.thread.scheduler.enqueueReady(w.thread)
			}
		}
	}
}
