package greenthread

// schedulerOptions holds configuration for constructing a Scheduler,
// following the teacher's loopOptions/LoopOption functional-options shape.
type schedulerOptions struct {
	readyQueueCapacityHint int
}

// SchedulerOption configures a [Scheduler] at construction time.
type SchedulerOption interface {
	applyScheduler(*schedulerOptions)
}

type schedulerOptionFunc func(*schedulerOptions)

func (f schedulerOptionFunc) applyScheduler(o *schedulerOptions) { f(o) }

// WithReadyQueueCapacity sizes the initial ready-queue allocation. It is
// purely a performance hint; the queue grows on demand regardless.
func WithReadyQueueCapacity(n int) SchedulerOption {
	return schedulerOptionFunc(func(o *schedulerOptions) { o.readyQueueCapacityHint = n })
}

func resolveSchedulerOptions(opts []SchedulerOption) schedulerOptions {
	o := schedulerOptions{readyQueueCapacityHint: defaultQueueCapacity}
	for _, opt := range opts {
		if opt != nil {
			opt.applyScheduler(&o)
		}
	}
	return o
}
