package greenthread

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_IsMatchesSentinelRegardlessOfFields(t *testing.T) {
	err := &ResourceError{Op: "allocate stack", Cause: errors.New("out of memory")}
	assert.True(t, errors.Is(err, ErrResourceError))
	assert.False(t, errors.Is(err, ErrInvalidState))

	is := &InvalidState{Op: "resume", State: StateFinished}
	assert.True(t, errors.Is(is, ErrInvalidState))

	nigt := &NotInGreenThread{Op: "yield"}
	assert.True(t, errors.Is(nigt, ErrNotInGreenThread))

	no := &NotOwner{Op: "unlock"}
	assert.True(t, errors.Is(no, ErrNotOwner))
}

func TestErrors_UnwrapExposesCause(t *testing.T) {
	cause := errors.New("disk full")
	err := &ResourceError{Op: "allocate context", Cause: cause}
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestWrapError(t *testing.T) {
	cause := ErrNotOwner
	err := WrapError("producer loop", cause)
	assert.True(t, errors.Is(err, ErrNotOwner))
}
