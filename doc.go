// Copyright 2025 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

// Package greenthread implements a cooperative, single-OS-thread,
// user-space threading runtime: a [Scheduler] drives many [GreenThread]
// values to completion by stackful context switching, and [Mutex] and
// [ConditionVariable] provide blocking synchronization that suspends a
// green thread instead of the underlying OS thread.
//
// # Architecture
//
// A [Scheduler] owns a FIFO ready queue and the set of live (non-finished)
// green threads. [Spawn] allocates a [GreenThread] bound to an entry
// function and a freshly grown goroutine-backed stack, and enqueues it.
// [Scheduler.Run] converts the calling goroutine into the scheduler loop:
// it pops the head of the ready queue, switches into that thread, and
// waits for the thread to yield, block, or finish before picking the
// next one. At most one green thread is ever executing at a time.
//
// # Suspension points
//
// A green thread suspends only by calling [Scheduler.Yield], by calling
// [Mutex.Lock] on a held mutex, by calling [ConditionVariable.Wait] or
// [ConditionVariable.WaitFor], or by its entry function returning. There
// is no preemption and no I/O suspension point.
//
// # Thread safety
//
// The core itself runs on a single OS thread, but [Spawn], [Mutex], and
// [ConditionVariable] are safe to call from outside any green thread
// (for example from the goroutine that will eventually call
// [Scheduler.Run]), guarded by short-lived native locks that are never
// held across a green-thread context switch.
package greenthread
