package registry

import (
	"sync"

	"github.com/mgnsk/strqueue"
)

// entry is a registered queue guarded by its own lock.
type entry struct {
	mu    sync.Mutex
	queue *strqueue.Queue // GUARDED_BY(mu), nil once deleted
	name  string
	seq   uint64
}

// lock locks the entry and reports whether it still holds a queue.
// The entry stays locked in both cases.
func (e *entry) lock() bool {
	e.mu.Lock()
	return e.queue != nil
}

func (e *entry) unlock() {
	e.mu.Unlock()
}

// release frees the queue. The entry must be locked.
func (e *entry) release() {
	e.queue.Free()
	e.queue = nil
}
