package greenthread

import "sync"

// Mutex is a cooperative mutual-exclusion lock: a green thread that calls
// Lock on a held Mutex suspends (RUNNING -> SUSPENDED) and is parked on the
// Mutex's own FIFO wait queue instead of blocking the underlying OS thread.
// Unlock hands the lock directly to the head waiter, if any, rather than
// clearing held and letting the next caller of Lock race for it — this is
// what keeps a waiter from starving behind a third thread that happens to
// call Lock between the unlock and the scheduler resuming the waiter.
//
// Mutex's own bookkeeping (held, owner, waiters) is guarded by a short-lived
// native sync.Mutex, following the same discipline as the intention lock
// this is grounded on: the native lock is held only while inspecting or
// mutating that bookkeeping, never across a green-thread context switch.
type Mutex struct {
	mu      sync.Mutex
	held    bool
	owner   *GreenThread
	waiters *queue[*GreenThread]
}

// NewMutex returns an unheld Mutex.
func NewMutex() *Mutex {
	return &Mutex{waiters: newQueue[*GreenThread](defaultQueueCapacity)}
}

// ownedBy reports whether t is the current owner, used by ConditionVariable
// to validate its precondition that the caller holds the mutex it is
// waiting on.
func (m *Mutex) ownedBy(t *GreenThread) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.held && m.owner == t
}

// TryLock attempts to acquire m without suspending, returning false
// immediately if it is already held.
func (m *Mutex) TryLock() bool {
	current := currentThread()
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.held {
		return false
	}
	m.held = true
	m.owner = current
	return true
}

// Lock acquires m, suspending the calling green thread if it is already
// held. The caller wakes already holding the lock (direct hand-off); it may
// wait an arbitrary number of scheduler turns. Lock fails with
// [NotInGreenThread] if it would need to suspend a caller that isn't
// running inside any green thread, since there would then be no scheduler
// turn that could ever resume it.
func (m *Mutex) Lock() error {
	current := currentThread()

	m.mu.Lock()
	if !m.held {
		m.held = true
		m.owner = current
		m.mu.Unlock()
		return nil
	}
	if current == nil {
		m.mu.Unlock()
		return newNotInGreenThread("mutex lock")
	}
	m.waiters.PushBack(current)
	m.mu.Unlock()

	current.parkAndSwitchBack()
	// Woken by Unlock's hand-off: owner and held were already set to us
	// before we were moved back onto the ready queue.
	return nil
}

// Unlock releases m. It fails with [NotOwner] if the calling context does
// not currently own the lock. If another green thread is waiting, ownership
// passes directly to the head of the wait queue (held stays true) and that
// thread is moved from SUSPENDED to READY; otherwise the lock becomes
// unheld.
func (m *Mutex) Unlock() error {
	current := currentThread()

	m.mu.Lock()
	if !m.held || m.owner != current {
		m.mu.Unlock()
		return newNotOwner("mutex unlock")
	}

	next, ok := m.waiters.PopFront()
	if !ok {
		m.held = false
		m.owner = nil
		m.mu.Unlock()
		return nil
	}
	m.owner = next
	m.mu.Unlock()

	if next.wake() {
		next.scheduler.enqueueReady(next)
	}
	return nil
}
