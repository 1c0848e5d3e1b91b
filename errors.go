package greenthread

import (
	"errors"
	"fmt"
)

// ResourceError is returned when allocating the stack or context backing a
// [GreenThread] fails.
type ResourceError struct {
	Op    string
	Cause error
}

func (e *ResourceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("greenthread: %s: %v", e.Op, e.Cause)
	}
	return fmt.Sprintf("greenthread: %s", e.Op)
}

func (e *ResourceError) Unwrap() error { return e.Cause }

// Is reports whether target is [ErrResourceError], regardless of Op or Cause.
func (e *ResourceError) Is(target error) bool { return target == ErrResourceError }

// newResourceError constructs a [ResourceError] for op, wrapping cause.
func newResourceError(op string, cause error) *ResourceError {
	return &ResourceError{Op: op, Cause: cause}
}

// InvalidState is returned when an operation is attempted against a
// [GreenThread] whose lifecycle state forbids it (resuming a FINISHED or
// already-RUNNING thread). Unlocking a [Mutex] that isn't held reports
// [NotOwner] instead.
type InvalidState struct {
	Op    string
	State ThreadState
	Cause error
}

func (e *InvalidState) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("greenthread: %s: invalid state %s: %v", e.Op, e.State, e.Cause)
	}
	return fmt.Sprintf("greenthread: %s: invalid state %s", e.Op, e.State)
}

func (e *InvalidState) Unwrap() error { return e.Cause }

// Is reports whether target is [ErrInvalidState], regardless of Op or State.
func (e *InvalidState) Is(target error) bool { return target == ErrInvalidState }

// newInvalidState constructs an [InvalidState] for op, recording the
// offending state.
func newInvalidState(op string, state ThreadState) *InvalidState {
	return &InvalidState{Op: op, State: state}
}

// NotInGreenThread is returned when [Scheduler.Yield], [ConditionVariable.Wait],
// or [ConditionVariable.WaitFor] is called from outside any green thread.
type NotInGreenThread struct {
	Op    string
	Cause error
}

func (e *NotInGreenThread) Error() string {
	return fmt.Sprintf("greenthread: %s: not called from a green thread", e.Op)
}

func (e *NotInGreenThread) Unwrap() error { return e.Cause }

// Is reports whether target is [ErrNotInGreenThread], regardless of Op.
func (e *NotInGreenThread) Is(target error) bool { return target == ErrNotInGreenThread }

// newNotInGreenThread constructs a [NotInGreenThread] for op.
func newNotInGreenThread(op string) *NotInGreenThread {
	return &NotInGreenThread{Op: op}
}

// NotOwner is returned when [Mutex.Unlock] is called by a green thread that
// does not currently own the mutex.
type NotOwner struct {
	Op    string
	Cause error
}

func (e *NotOwner) Error() string {
	return fmt.Sprintf("greenthread: %s: caller does not own the mutex", e.Op)
}

func (e *NotOwner) Unwrap() error { return e.Cause }

// Is reports whether target is [ErrNotOwner], regardless of Op.
func (e *NotOwner) Is(target error) bool { return target == ErrNotOwner }

// newNotOwner constructs a [NotOwner] for op.
func newNotOwner(op string) *NotOwner {
	return &NotOwner{Op: op}
}

// Sentinel kinds usable with errors.Is, matching regardless of the wrapped
// error's specific Op/Cause/State — mirrors AggregateError's kind-matching
// Is implementation in the teacher's event loop.
var (
	ErrResourceError     = errors.New("greenthread: resource error")
	ErrInvalidState      = errors.New("greenthread: invalid state")
	ErrNotInGreenThread  = errors.New("greenthread: not in green thread")
	ErrNotOwner          = errors.New("greenthread: not owner")
)

// WrapError wraps cause with a message, preserving it for errors.Is/errors.As.
func WrapError(message string, cause error) error {
	return fmt.Errorf("%s: %w", message, cause)
}
