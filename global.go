package greenthread

import "sync"

// defaultScheduler backs the package-level convenience functions below.
// This system's design notes call a true process-wide singleton an
// anti-pattern for testability and recommend an explicit object as the
// primary API, with a convenience global offered as sugar on top — exactly
// the relationship between [Scheduler] (the explicit, constructible type)
// and this file.
var defaultSchedulerOnce struct {
	sync.Once
	s *Scheduler
}

// Default returns the package-level default [Scheduler], constructing it
// lazily on first use.
func Default() *Scheduler {
	defaultSchedulerOnce.Do(func() {
		defaultSchedulerOnce.s = NewScheduler()
	})
	return defaultSchedulerOnce.s
}

// Spawn is sugar for Default().Spawn.
func Spawn(fn func(), opts ...ThreadOption) *GreenThread {
	return Default().Spawn(fn, opts...)
}

// Run is sugar for Default().Run.
func Run() {
	Default().Run()
}

// Yield is sugar for Default().Yield.
func Yield() error {
	return Default().Yield()
}

// Current is sugar for Default().Current.
func Current() *GreenThread {
	return Default().Current()
}

// Stop is sugar for Default().Stop.
func Stop() {
	Default().Stop()
}
