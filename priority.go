package greenthread

// ThreadPriority is accepted at spawn time but, per this system's explicit
// Non-goal on thread priorities as an effective scheduling input, is never
// consulted by the [Scheduler]. It exists so callers that carry a priority
// concept in their own design have somewhere to put it, and so a future
// scheduler could honor it without an incompatible API change; today every
// ready thread is served strictly FIFO regardless of the value here.
//
// The original C++ source declares no priority type at all, so this extends
// it rather than mirroring anything already there; the concept and its
// three-level shape are borrowed from the ThreadPriority enum declared (and
// likewise never consulted by its scheduler) in the Orizon threading
// example, rather than invented from nothing.
type ThreadPriority int

const (
	PriorityLow ThreadPriority = iota
	PriorityNormal
	PriorityHigh
)

func (p ThreadPriority) String() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityNormal:
		return "Normal"
	case PriorityHigh:
		return "High"
	default:
		return "Unknown"
	}
}
