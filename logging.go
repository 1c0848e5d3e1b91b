package greenthread

import (
	"io"
	"sync"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// globalLogger mirrors the teacher's package-level globalLogger: an
// RWMutex-guarded singleton, initialised at package init to a discarding stumpy
// logger, replaceable by an application that wants its own sink or level
// filter.
//
// The spec calls logging an external collaborator the core's correctness
// does not depend on, but the ambient-stack rule still applies: this is
// the same real logging library (logiface + its stumpy backend) the
// teacher's own eventloop module is built to be used alongside, not a
// hand-rolled Logger interface. A library should not write to stderr
// until a caller asks it to, so the default sink discards everything
// rather than surprising an embedding application with unsolicited
// output; call SetLogger with a writer-backed logger to see it.
var globalLogger struct {
	mu sync.RWMutex
	l  *logiface.Logger[*stumpy.Event]
}

func init() {
	globalLogger.l = defaultLogger()
}

func defaultLogger() *logiface.Logger[*stumpy.Event] {
	return stumpy.L.New(
		stumpy.L.WithStumpy(stumpy.WithWriter(io.Discard)),
	)
}

// SetLogger replaces the package-level logger used for scheduler lifecycle
// and trampoline-panic diagnostics. Passing nil restores the default
// discarding logger.
func SetLogger(l *logiface.Logger[*stumpy.Event]) {
	globalLogger.mu.Lock()
	defer globalLogger.mu.Unlock()
	if l == nil {
		l = defaultLogger()
	}
	globalLogger.l = l
}

// logger returns the current package-level logger.
func logger() *logiface.Logger[*stumpy.Event] {
	globalLogger.mu.RLock()
	defer globalLogger.mu.RUnlock()
	return globalLogger.l
}
