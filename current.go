package greenthread

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"
)

// currentThreadRegistry maps the runtime goroutine actually executing a
// GreenThread's entry function to that GreenThread, so that Mutex and
// ConditionVariable — which, per this system's data model, hold no
// reference to any Scheduler — can still discover "the calling green
// thread" the way the original's thread_local currentThread_ did.
//
// Go offers no public goroutine-local storage, and the one module in the
// example pack meant to provide a goroutine identity lookup ("goroutineid")
// ships no implementation to ground one on, so this is built directly on
// the same technique that family of libraries uses under the hood: parsing
// the goroutine id out of a runtime.Stack trace. Any goroutine may consult
// it, but each one only ever looks up its own key, which only that same
// goroutine sets or clears, so the registry itself only needs to be safe
// for concurrent access, not for cross-goroutine visibility ordering beyond
// that.
var currentThreadRegistry struct {
	mu sync.RWMutex
	m  map[uint64]*GreenThread
}

func init() {
	currentThreadRegistry.m = make(map[uint64]*GreenThread)
}

// goroutineID extracts the calling goroutine's id from its own stack trace
// header ("goroutine 123 [running]:"). It never fails: if parsing somehow
// comes up empty, it returns 0, a key this package never otherwise assigns.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	b := bytes.TrimPrefix(buf[:n], []byte("goroutine "))
	if i := bytes.IndexByte(b, ' '); i >= 0 {
		if id, err := strconv.ParseUint(string(b[:i]), 10, 64); err == nil {
			return id
		}
	}
	return 0
}

func setCurrentThread(t *GreenThread) {
	currentThreadRegistry.mu.Lock()
	currentThreadRegistry.m[goroutineID()] = t
	currentThreadRegistry.mu.Unlock()
}

func clearCurrentThread() {
	currentThreadRegistry.mu.Lock()
	delete(currentThreadRegistry.m, goroutineID())
	currentThreadRegistry.mu.Unlock()
}

// currentThread returns the GreenThread whose entry function is executing
// on the calling goroutine, or nil if the caller is not inside one.
func currentThread() *GreenThread {
	currentThreadRegistry.mu.RLock()
	t := currentThreadRegistry.m[goroutineID()]
	currentThreadRegistry.mu.RUnlock()
	return t
}
