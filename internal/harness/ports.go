package harness

import "sync"

// PortAllocator hands out sequential ports so concurrent harness runs do not
// collide when the plugins under test bind listeners.
//
// This replaces what was historically an implicit global counter: the
// allocator is explicit state owned by whoever drives multiple runs, with a
// single-writer discipline enforced by the internal mutex.
type PortAllocator struct {
	mu   sync.Mutex
	next int
}

// NewPortAllocator creates an allocator whose first Next() returns base.
func NewPortAllocator(base int) *PortAllocator {
	return &PortAllocator{next: base}
}

// Next returns the next unassigned port.
//
// Thread-safe: uses mutex to protect the counter.
func (a *PortAllocator) Next() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	port := a.next
	a.next++
	return port
}
