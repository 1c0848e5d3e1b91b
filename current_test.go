package greenthread

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrentThread_NilOutsideGreenThread(t *testing.T) {
	assert.Nil(t, currentThread())
}

func TestCurrentThread_SetDuringEntry(t *testing.T) {
	sched := NewScheduler()
	var observed *GreenThread
	th := sched.Spawn(func() {
		observed = currentThread()
	})
	sched.Run()
	assert.Same(t, th, observed)
}
