package greenthread

import (
	"sync"
	"sync/atomic"
	"time"
)

// schedulerRunState mirrors the teacher's FastState style for the
// Scheduler's own lifecycle, distinct from any individual thread's
// ThreadState.
type schedulerRunState uint32

const (
	schedulerIdle schedulerRunState = iota
	schedulerRunning
	schedulerStopped
)

// idleWaitCap bounds how long a single idle-wait iteration sleeps when the
// ready queue is empty but live threads remain parked on a WaitFor deadline.
// It is what keeps the scheduler's idle loop a bounded, cooperative wait
// instead of a hot spin.
const idleWaitCap = time.Millisecond

// Scheduler drives a cooperative set of [GreenThread] values on a single
// goroutine. It owns the ready queue, the set of live (not yet finished)
// threads, and the deadline queue consulted by [ConditionVariable.WaitFor].
//
// A Scheduler is an explicit object: create one with [NewScheduler], spawn
// threads onto it with [Scheduler.Spawn], and call [Scheduler.Run] from the
// goroutine that should host the scheduling loop. The package-level
// convenience functions in global.go wrap a single default instance for
// callers that only ever need one.
type Scheduler struct {
	mu        sync.Mutex
	ready     *queue[*GreenThread]
	live      map[uint64]*GreenThread
	current   *GreenThread
	deadlines deadlineQueue
	runState  atomic.Uint32
	stop      atomic.Bool
}

// NewScheduler constructs a Scheduler in its idle state. Run has not been
// called yet and no threads are registered.
func NewScheduler(opts ...SchedulerOption) *Scheduler {
	o := resolveSchedulerOptions(opts)
	return &Scheduler{
		ready: newQueue[*GreenThread](o.readyQueueCapacityHint),
		live:  make(map[uint64]*GreenThread),
	}
}

// Spawn creates a new green thread bound to this scheduler, in StateReady,
// and enqueues it for its first resume. fn runs on the thread's own
// goroutine the first time the scheduler resumes it.
func (s *Scheduler) Spawn(fn func(), opts ...ThreadOption) *GreenThread {
	t := newGreenThread(fn, s.onThreadPanic, opts)
	t.scheduler = s

	s.mu.Lock()
	s.live[t.id] = t
	s.mu.Unlock()

	s.start(t)
	return t
}

// start enqueues t onto the ready queue exactly once, regardless of how
// many times it is called for the same thread.
func (s *Scheduler) start(t *GreenThread) {
	if !t.markStarted() {
		return
	}
	s.enqueueReady(t)
}

// enqueueReady pushes an already-READY thread onto the ready queue. Called
// both for freshly spawned threads and for threads woken by Mutex/
// ConditionVariable hand-off.
func (s *Scheduler) enqueueReady(t *GreenThread) {
	s.mu.Lock()
	s.ready.PushBack(t)
	s.mu.Unlock()
}

// Current returns the thread the scheduler is currently resuming, or nil if
// called from outside a resume span (e.g. before Run starts, or from the
// host goroutine between threads).
func (s *Scheduler) Current() *GreenThread {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Yield suspends the calling green thread back to the scheduler, which will
// resume some other ready thread (or this one again, if it is the only one
// ready) before control returns here. It fails with [NotInGreenThread] if
// called from outside any thread spawned on this scheduler.
//
// The scheduler has no timed sleep: a green thread that wants to wait for
// some wall-clock time calls Yield in a loop and checks its own clock.
func (s *Scheduler) Yield() error {
	t := currentThread()
	if t == nil || t.scheduler != s {
		return newNotInGreenThread("yield")
	}
	t.yield()
	return nil
}

// Stop requests that Run return at its next iteration boundary: after the
// currently resumed thread next yields, blocks, or finishes. Threads already
// parked in a Mutex or ConditionVariable wait queue are left exactly where
// they are; Stop does not force them to unwind.
func (s *Scheduler) Stop() {
	s.stop.Store(true)
}

// Run executes the scheduling loop on the calling goroutine until every
// live thread has finished or Stop is called. Calling Run again while it is
// already running, or after it has already returned, is a no-op.
func (s *Scheduler) Run() {
	if !s.runState.CompareAndSwap(uint32(schedulerIdle), uint32(schedulerRunning)) {
		return
	}
	defer s.runState.Store(uint32(schedulerStopped))

	logger().Debug().Log("scheduler run starting")
	defer logger().Debug().Log("scheduler run exiting")

	for {
		s.mu.Lock()
		if s.ready.Len() == 0 {
			if len(s.live) == 0 {
				s.mu.Unlock()
				return
			}
			s.mu.Unlock()
			s.idleWait()
			if s.stop.Load() {
				return
			}
			continue
		}
		t, _ := s.ready.PopFront()
		s.current = t
		s.mu.Unlock()

		if err := t.resume(); err != nil {
			logger().Err().Err(err).Log("thread resume failed")
		}

		s.mu.Lock()
		s.current = nil
		switch {
		case t.IsFinished():
			delete(s.live, t.id)
		case t.State() == StateReady:
			s.ready.PushBack(t)
		default:
			// StateSuspended: parked in a Mutex/ConditionVariable wait queue,
			// which owns getting it back onto the ready queue.
		}
		s.mu.Unlock()

		if s.stop.Load() {
			return
		}
	}
}

// idleWait runs one bounded iteration of the idle wait: wake any threads
// whose WaitFor deadline has passed, or else sleep up to idleWaitCap until
// the next deadline (or, if there is none, for idleWaitCap itself) before
// the loop checks the ready queue again.
func (s *Scheduler) idleWait() {
	now := time.Now()

	s.mu.Lock()
	expired := s.deadlines.expired(now)
	next, ok := s.deadlines.nextDeadline()
	s.mu.Unlock()

	// onFire may itself call back into the scheduler (enqueueReady), so it
	// must run outside of s.mu.
	for _, e := range expired {
		e.onFire()
	}

	if len(expired) > 0 {
		return
	}
	d := idleWaitCap
	if ok {
		if until := time.Until(next); until < d {
			d = until
		}
	}
	if d > 0 {
		time.Sleep(d)
	}
}

// armDeadline registers a WaitFor deadline and returns the entry, which the
// caller must remove via disarmDeadline if it wakes for a reason other than
// the timeout. onFire runs on the scheduler goroutine when the deadline
// passes before the entry is disarmed.
func (s *Scheduler) armDeadline(t *GreenThread, deadline time.Time, onFire func()) *deadlineEntry {
	e := &deadlineEntry{deadline: deadline, thread: t, onFire: onFire}
	s.mu.Lock()
	s.deadlines.add(e)
	s.mu.Unlock()
	return e
}

func (s *Scheduler) disarmDeadline(e *deadlineEntry) {
	s.mu.Lock()
	s.deadlines.remove(e)
	s.mu.Unlock()
}

func (s *Scheduler) onThreadPanic(id uint64, recovered any) {
	logger().Err().Any("recovered", recovered).Uint64("thread_id", id).Log("green thread entry panicked")
}
