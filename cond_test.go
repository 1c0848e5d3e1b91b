package greenthread

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConditionVariable_ProducerConsumerBoundedQueue(t *testing.T) {
	const capacity = 5
	const total = 10

	sched := NewScheduler()
	mu := NewMutex()
	notEmpty := NewConditionVariable()
	notFull := NewConditionVariable()

	var queue []int
	var maxLen int
	var consumed []int

	sched.Spawn(func() {
		for v := 1; v <= total; v++ {
			require.NoError(t, mu.Lock())
			for len(queue) == capacity {
				require.NoError(t, notFull.Wait(mu))
			}
			queue = append(queue, v)
			if len(queue) > maxLen {
				maxLen = len(queue)
			}
			notEmpty.NotifyOne()
			require.NoError(t, mu.Unlock())
		}
	})

	sched.Spawn(func() {
		for i := 0; i < total; i++ {
			require.NoError(t, mu.Lock())
			for len(queue) == 0 {
				require.NoError(t, notEmpty.Wait(mu))
			}
			v := queue[0]
			queue = queue[1:]
			consumed = append(consumed, v)
			notFull.NotifyOne()
			require.NoError(t, mu.Unlock())
		}
	})

	sched.Run()

	expected := make([]int, total)
	for i := range expected {
		expected[i] = i + 1
	}
	assert.Equal(t, expected, consumed)
	assert.LessOrEqual(t, maxLen, capacity)
}

func TestConditionVariable_NotifyOneOnEmptyQueueIsNoOp(t *testing.T) {
	cv := NewConditionVariable()
	cv.NotifyOne() // must not panic or block
	assert.Equal(t, 0, cv.waiters.Len())
}

func TestConditionVariable_WaitOutsideGreenThreadFails(t *testing.T) {
	mu := NewMutex()
	cv := NewConditionVariable()
	err := cv.Wait(mu)
	var nigt *NotInGreenThread
	assert.True(t, errors.As(err, &nigt))
}

func TestConditionVariable_WaitWithoutOwningMutexFails(t *testing.T) {
	sched := NewScheduler()
	mu := NewMutex()
	cv := NewConditionVariable()
	var waitErr error
	sched.Spawn(func() {
		waitErr = cv.Wait(mu) // never locked mu
	})
	sched.Run()
	var notOwner *NotOwner
	assert.True(t, errors.As(waitErr, &notOwner))
}

func TestConditionVariable_WaitForTimesOutWithoutNotify(t *testing.T) {
	sched := NewScheduler()
	mu := NewMutex()
	cv := NewConditionVariable()

	var notified bool
	var waitErr error
	started := time.Now()
	var elapsed time.Duration

	sched.Spawn(func() {
		require.NoError(t, mu.Lock())
		notified, waitErr = cv.WaitFor(mu, 10*time.Millisecond)
		elapsed = time.Since(started)
		require.NoError(t, mu.Unlock())
	})
	sched.Run()

	require.NoError(t, waitErr)
	assert.False(t, notified)
	assert.GreaterOrEqual(t, elapsed, 10*time.Millisecond)
}

func TestConditionVariable_WaitForReturnsTrueWhenNotifiedBeforeDeadline(t *testing.T) {
	sched := NewScheduler()
	mu := NewMutex()
	cv := NewConditionVariable()

	var notified bool
	var waitErr error

	sched.Spawn(func() {
		require.NoError(t, mu.Lock())
		notified, waitErr = cv.WaitFor(mu, time.Minute)
		require.NoError(t, mu.Unlock())
	})
	sched.Spawn(func() {
		require.NoError(t, sched.Yield()) // let the waiter register first
		require.NoError(t, mu.Lock())
		cv.NotifyOne()
		require.NoError(t, mu.Unlock())
	})
	sched.Run()

	require.NoError(t, waitErr)
	assert.True(t, notified)
}
