package greenthread

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGreenThread_StartIsIdempotent(t *testing.T) {
	sched := NewScheduler()
	th := sched.Spawn(func() {})
	// Spawn already called start once; a second, direct call must be a no-op
	// rather than double-enqueueing the thread.
	sched.start(th)
	sched.start(th)
	sched.Run()
	assert.True(t, th.IsFinished())
}

func TestGreenThread_ResumeOnNonReadyFails(t *testing.T) {
	th := newGreenThread(func() {}, nil, nil)
	require.NoError(t, th.resume())
	err := th.resume()
	var invalid *InvalidState
	assert.True(t, errors.As(err, &invalid))
}

func TestGreenThread_IDsAreMonotonic(t *testing.T) {
	a := newGreenThread(func() {}, nil, nil)
	b := newGreenThread(func() {}, nil, nil)
	assert.Greater(t, b.ID(), a.ID())
}

func TestGreenThread_WithStackSizeAndPriorityOptions(t *testing.T) {
	th := newGreenThread(func() {}, nil, []ThreadOption{
		WithStackSize(128 * 1024),
		WithPriority(PriorityHigh),
	})
	assert.Equal(t, 128*1024, th.stackSize)
	assert.Equal(t, PriorityHigh, th.Priority())
}

func TestGreenThread_DefaultOptions(t *testing.T) {
	th := newGreenThread(func() {}, nil, nil)
	assert.Equal(t, DefaultStackSize, th.stackSize)
	assert.Equal(t, PriorityNormal, th.Priority())
	assert.Equal(t, StateReady, th.State())
}
