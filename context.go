package greenthread

import "sync/atomic"

// fiberContext is the stackful switch primitive described by this system's
// Context component: a handle to a suspended execution that can be switched
// into, resuming exactly where it last suspended.
//
// Go has no portable, cgo-free equivalent of makecontext/swapcontext or an
// OS fiber API, so the stack this Context owns is a real goroutine's stack,
// and the "atomic switch" is a synchronous, unbuffered channel hand-off
// between exactly two parties: at most one side of the handshake is ever
// runnable, which gives the same single-active-execution guarantee a fiber
// switch gives, without touching raw registers.
//
// fiberContext is the only type in this package that spawns a goroutine or
// touches its channels directly; every other component reaches the
// underlying execution only through Resume/Yield on GreenThread.
type fiberContext struct {
	id        uint64
	resumeCh  chan struct{} // caller -> context: "run"
	suspendCh chan struct{} // context -> caller: "I've suspended or finished"
	closed    atomic.Bool
}

// newFiberContext allocates a context bound to entry and starts the
// goroutine that will execute it. The goroutine blocks immediately,
// waiting for the first switchIn, matching "the first switch into a
// context enters the trampoline".
func newFiberContext(id uint64, entry func(), onPanic func(id uint64, recovered any)) *fiberContext {
	c := &fiberContext{
		id:        id,
		resumeCh:  make(chan struct{}),
		suspendCh: make(chan struct{}),
	}
	go c.trampoline(entry, onPanic)
	return c
}

// trampoline is the first function entered on the new context. It never
// returns control by a normal function return that the caller observes
// directly — its last act, on either normal return or a recovered panic,
// is to mark the context finished and perform the terminal switch back.
func (c *fiberContext) trampoline(entry func(), onPanic func(id uint64, recovered any)) {
	<-c.resumeCh
	func() {
		defer func() {
			if r := recover(); r != nil && onPanic != nil {
				onPanic(c.id, r)
			}
		}()
		entry()
	}()
	c.closed.Store(true)
	c.suspendCh <- struct{}{}
}

// isFinished reports whether the context's entry function has returned
// (normally or via a recovered panic).
func (c *fiberContext) isFinished() bool {
	return c.closed.Load()
}

// switchInto performs an atomic switch from the caller's perspective into
// target: the caller blocks until target next suspends or finishes.
// Switching into a finished context is forbidden. Switching into the
// context of the green thread that is already executing on the calling
// goroutine is a no-op.
func switchInto(target *fiberContext) error {
	if target.isFinished() {
		return newInvalidState("switch into finished context", StateFinished)
	}
	if cur := currentThread(); cur != nil && cur.ctx == target {
		return nil
	}
	target.resumeCh <- struct{}{}
	<-target.suspendCh
	return nil
}

// switchBack is called from within the running context's own goroutine to
// hand control back to whichever context last switched into it, then
// blocks until it is switched into again.
func (c *fiberContext) switchBack() {
	c.suspendCh <- struct{}{}
	<-c.resumeCh
}
