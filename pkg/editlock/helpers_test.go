package editlock

import (
	"sync"
	"time"
)

const (
	testDashboard = int64(42)
	testUser1     = "U1"
	testUser2     = "U2"
	testName1     = "Alice"
	testName2     = "Bob"
	testConn1     = "c1"
	testConn2     = "c2"
)

var testEpoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestRegistry() (*Registry, *ManualClock) {
	clock := NewManualClock(testEpoch)
	return NewRegistry(RegistryConfig{Clock: clock}), clock
}

// changeRecorder collects published changes.
type changeRecorder struct {
	mu      sync.Mutex
	changes []Change
}

func (r *changeRecorder) handle(c Change) {
	r.mu.Lock()
	r.changes = append(r.changes, c)
	r.mu.Unlock()
}

func (r *changeRecorder) all() []Change {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Change, len(r.changes))
	copy(out, r.changes)
	return out
}

func (r *changeRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.changes)
}

func record(reg *Registry) *changeRecorder {
	rec := &changeRecorder{}
	reg.Notifier().Subscribe(rec.handle)
	return rec
}

// slotCount returns the number of allocated slots.
func slotCount(r *Registry) int {
	n := 0
	r.slots.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
