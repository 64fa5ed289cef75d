package strqueue

import (
	"fmt"
	"math/rand"
	"sync"
)

// Allocator accounts for the memory of queue nodes and payloads.
// Alloc returns an error wrapping ErrAllocation when the request cannot be satisfied.
type Allocator interface {
	Alloc(size int) error
	Free(size int)
}

// Unbounded is an allocator that never fails.
type Unbounded struct{}

// Alloc implements Allocator.
func (Unbounded) Alloc(int) error { return nil }

// Free implements Allocator.
func (Unbounded) Free(int) {}

// FaultAllocator fails a percentage of allocations and tracks outstanding memory.
// It is safe for concurrent use.
type FaultAllocator struct {
	mu      sync.Mutex
	rng     *rand.Rand
	percent int
	blocks  int
	bytes   int
}

// NewFaultAllocator creates an allocator failing percent of all allocations.
// The failures are drawn from a source seeded with seed.
func NewFaultAllocator(percent int, seed int64) *FaultAllocator {
	a := &FaultAllocator{
		rng: rand.New(rand.NewSource(seed)),
	}
	a.SetFailPercent(percent)
	return a
}

// SetFailPercent changes the failure percentage. It is clamped to [0, 100].
func (a *FaultAllocator) SetFailPercent(percent int) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.percent = min(max(percent, 0), 100)
}

// FailPercent returns the failure percentage.
func (a *FaultAllocator) FailPercent() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.percent
}

// Alloc implements Allocator.
func (a *FaultAllocator) Alloc(size int) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.percent > 0 && a.rng.Intn(100) < a.percent {
		return fmt.Errorf("%w: %d bytes", ErrAllocation, size)
	}

	a.blocks++
	a.bytes += size

	return nil
}

// Free implements Allocator.
func (a *FaultAllocator) Free(size int) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.blocks--
	a.bytes -= size
}

// Outstanding returns the number of blocks and bytes allocated and not yet freed.
func (a *FaultAllocator) Outstanding() (blocks, bytes int) {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.blocks, a.bytes
}
