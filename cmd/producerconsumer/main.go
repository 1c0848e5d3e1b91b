// Command producerconsumer runs this system's S2 scenario: a producer
// pushes integers 1..10 into a 5-slot bounded queue guarded by a Mutex and
// signalled by two condition variables (notEmpty, notFull); a consumer
// drains them in order.
//
// Run with: go run ./cmd/producerconsumer
package main

import (
	"fmt"

	greenthread "github.com/joeycumines/go-greenthread"
)

const queueCapacity = 5

// boundedQueue is the fixed-capacity FIFO the original's advanced example
// hands to both the producer and the consumer, rather than leaving bounds
// checking inlined at each call site.
type boundedQueue[T any] struct {
	capacity int
	items    []T
}

func newBoundedQueue[T any](capacity int) *boundedQueue[T] {
	return &boundedQueue[T]{capacity: capacity}
}

func (q *boundedQueue[T]) Full() bool  { return len(q.items) == q.capacity }
func (q *boundedQueue[T]) Empty() bool { return len(q.items) == 0 }
func (q *boundedQueue[T]) Len() int    { return len(q.items) }

func (q *boundedQueue[T]) Push(v T) {
	if q.Full() {
		panic("boundedQueue: push on a full queue")
	}
	q.items = append(q.items, v)
}

func (q *boundedQueue[T]) Pop() T {
	v := q.items[0]
	q.items = q.items[1:]
	return v
}

func main() {
	sched := greenthread.NewScheduler()

	var (
		mu       = greenthread.NewMutex()
		notEmpty = greenthread.NewConditionVariable()
		notFull  = greenthread.NewConditionVariable()
		queue    = newBoundedQueue[int](queueCapacity)
	)

	sched.Spawn(func() {
		for v := 1; v <= 10; v++ {
			if err := mu.Lock(); err != nil {
				panic(err)
			}
			for queue.Full() {
				if err := notFull.Wait(mu); err != nil {
					panic(err)
				}
			}
			queue.Push(v)
			fmt.Printf("produced %d\n", v)
			notEmpty.NotifyOne()
			if err := mu.Unlock(); err != nil {
				panic(err)
			}
		}
	})

	sched.Spawn(func() {
		for i := 0; i < 10; i++ {
			if err := mu.Lock(); err != nil {
				panic(err)
			}
			for queue.Empty() {
				if err := notEmpty.Wait(mu); err != nil {
					panic(err)
				}
			}
			v := queue.Pop()
			fmt.Printf("consumed %d\n", v)
			notFull.NotifyOne()
			if err := mu.Unlock(); err != nil {
				panic(err)
			}
		}
	})

	sched.Run()
}
