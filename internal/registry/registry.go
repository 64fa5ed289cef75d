/*
Package registry keeps named queues and serializes access to each of them.
*/
package registry

import (
	"cmp"
	"fmt"
	"slices"
	"sync/atomic"

	"cloudeng.io/errors"
	"github.com/mgnsk/strqueue"
	"github.com/puzpuzpuz/xsync/v2"
)

var (
	// ErrNotFound indicates a queue name was not found.
	ErrNotFound = errors.New("queue not found")
	// ErrExists indicates a queue name is already registered.
	ErrExists = errors.New("queue already exists")
)

// Registry is a set of named queues. It is safe for concurrent use.
// Each queue has its own lock, so operations on different queues do not block each other.
type Registry struct {
	xmap *xsync.MapOf[string, *entry]
	opts []strqueue.Option
	seq  atomic.Uint64
}

// New creates an empty registry. New queues are created with opts.
func New(opts ...strqueue.Option) *Registry {
	return &Registry{
		xmap: xsync.NewMapOf[*entry](),
		opts: opts,
	}
}

// Len returns the number of registered queues.
func (r *Registry) Len() int {
	return r.xmap.Size()
}

// Create registers a new empty queue under name.
func (r *Registry) Create(name string) error {
	q, err := strqueue.New(r.opts...)
	if err != nil {
		return fmt.Errorf("creating queue %q: %w", name, err)
	}

	e := &entry{
		queue: q,
		name:  name,
		seq:   r.seq.Add(1),
	}

	if _, loaded := r.xmap.LoadOrStore(name, e); loaded {
		q.Free()
		return fmt.Errorf("%w: %q", ErrExists, name)
	}

	return nil
}

// Delete unregisters and frees the queue registered under name.
func (r *Registry) Delete(name string) error {
	e, ok := r.xmap.LoadAndDelete(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	defer e.unlock()
	if e.lock() {
		e.release()
	}

	return nil
}

// With calls f with exclusive access to the queue registered under name.
// f must not retain q.
func (r *Registry) With(name string, f func(q *strqueue.Queue) error) error {
	e, ok := r.xmap.Load(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	defer e.unlock()
	if !e.lock() {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	return f(e.queue)
}

// Names returns the registered names in creation order.
func (r *Registry) Names() []string {
	entries := r.entries()

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.name
	}

	return names
}

// Merge merges every registered queue into the oldest one.
// It returns the name of the oldest queue and its resulting size.
func (r *Registry) Merge(descending bool) (string, int, error) {
	entries := r.entries()

	var (
		chain  []*strqueue.Queue
		locked []*entry
	)

	for _, e := range entries {
		if e.lock() {
			chain = append(chain, e.queue)
			locked = append(locked, e)
		} else {
			e.unlock()
		}
	}

	defer func() {
		for _, e := range locked {
			e.unlock()
		}
	}()

	if len(chain) == 0 {
		return "", 0, ErrNotFound
	}

	n, err := strqueue.Merge(chain, descending)
	if err != nil {
		return "", 0, err
	}

	return locked[0].name, n, nil
}

// Close frees every registered queue and empties the registry.
func (r *Registry) Close() error {
	errs := &errors.M{}

	for _, name := range r.Names() {
		errs.Append(r.Delete(name))
	}

	return errs.Err()
}

// entries returns the registered entries in creation order.
func (r *Registry) entries() []*entry {
	entries := make([]*entry, 0, r.xmap.Size())

	r.xmap.Range(func(_ string, e *entry) bool {
		entries = append(entries, e)
		return true
	})

	slices.SortFunc(entries, func(a, b *entry) int {
		return cmp.Compare(a.seq, b.seq)
	})

	return entries
}
