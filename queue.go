/*
Package strqueue implements a string queue on an intrusive circular doubly linked
list, with whole-queue algorithms that work by relinking nodes in place.
*/
package strqueue

import (
	"fmt"

	"cloudeng.io/errors"
	"github.com/mgnsk/strqueue/ringlist"
)

// Queue is a double ended queue of strings. The length is not stored.
//
// A Queue must be created with New; the zero value is unusable and reports
// ErrInvalidArgument. A Queue is not safe for concurrent use.
type Queue struct {
	ring  ringlist.List[Element, *Element]
	opts  queueOptions
	freed bool
}

// New creates an empty queue. The sentinel is charged to the configured allocator.
func New(opts ...Option) (*Queue, error) {
	q := &Queue{
		opts: newDefaultQueueOptions(),
	}

	for _, opt := range opts {
		opt.apply(&q.opts)
	}

	if err := q.opts.alloc.Alloc(nodeSize); err != nil {
		return nil, err
	}

	q.ring.Init()

	return q, nil
}

// Free frees every element and releases the queue. A freed queue reports
// ErrInvalidArgument from every operation. Freeing nil is a no-op.
func (q *Queue) Free() {
	if !q.valid() {
		return
	}

	q.ring.Drain((*Element).Free)
	q.opts.alloc.Free(nodeSize)
	q.freed = true
}

// Comparator returns the comparator of the queue.
func (q *Queue) Comparator() Comparator {
	return q.opts.cmp
}

// InsertHead inserts a copy of s at the head of the queue.
func (q *Queue) InsertHead(s string) error {
	if !q.valid() {
		return ErrInvalidArgument
	}

	e, err := NewElement(q.opts.alloc, s)
	if err != nil {
		return err
	}

	q.ring.PushFront(e)

	return nil
}

// InsertTail inserts a copy of s at the tail of the queue.
func (q *Queue) InsertTail(s string) error {
	if !q.valid() {
		return ErrInvalidArgument
	}

	e, err := NewElement(q.opts.alloc, s)
	if err != nil {
		return err
	}

	q.ring.PushBack(e)

	return nil
}

// RemoveHead unlinks the head element and returns it, or nil if the queue is empty.
// Up to len(buf)-1 bytes of the value are copied into buf followed by a NUL byte.
// The caller owns the element and must Free it.
func (q *Queue) RemoveHead(buf []byte) *Element {
	if !q.valid() {
		return nil
	}
	return copyOut(q.ring.PopFront(), buf)
}

// RemoveTail unlinks the tail element and returns it, or nil if the queue is empty.
// Up to len(buf)-1 bytes of the value are copied into buf followed by a NUL byte.
// The caller owns the element and must Free it.
func (q *Queue) RemoveTail(buf []byte) *Element {
	if !q.valid() {
		return nil
	}
	return copyOut(q.ring.PopBack(), buf)
}

func copyOut(e *Element, buf []byte) *Element {
	if e == nil {
		return nil
	}

	if len(buf) > 0 {
		n := copy(buf[:len(buf)-1], e.Value)
		buf[n] = 0
	}

	return e
}

// Size returns the number of elements or -1 if q is nil or freed.
func (q *Queue) Size() int {
	if !q.valid() {
		return -1
	}
	return q.ring.Len()
}

// DeleteMiddle frees the middle element, which for an even size is the second
// of the two middle elements. It reports false if the queue is empty.
func (q *Queue) DeleteMiddle() bool {
	if !q.valid() {
		return false
	}

	e := q.ring.DeleteMiddle()
	if e == nil {
		return false
	}

	e.Free()

	return true
}

// DeleteDuplicates frees every run of adjacent equal elements, keeping none of them.
// The queue is expected to be sorted.
func (q *Queue) DeleteDuplicates() bool {
	if !q.valid() {
		return false
	}

	q.ring.DeleteDuplicates(q.compare, (*Element).Free)

	return true
}

// Swap exchanges every two adjacent elements.
func (q *Queue) Swap() {
	if q.valid() {
		q.ring.Swap()
	}
}

// Reverse reverses the queue.
func (q *Queue) Reverse() {
	if q.valid() {
		q.ring.Reverse()
	}
}

// ReverseK reverses every consecutive group of k elements. It is a no-op for k < 2.
func (q *Queue) ReverseK(k int) {
	if q.valid() {
		q.ring.ReverseK(k)
	}
}

// Ascend frees every element that has a strictly smaller element anywhere to
// its right and returns the resulting size, or -1 if q is nil or freed.
func (q *Queue) Ascend() int {
	if !q.valid() {
		return -1
	}
	return q.ring.Ascend(q.compare, (*Element).Free)
}

// Descend frees every element that has a strictly greater element anywhere to
// its right and returns the resulting size, or -1 if q is nil or freed.
func (q *Queue) Descend() int {
	if !q.valid() {
		return -1
	}
	return q.ring.Descend(q.compare, (*Element).Free)
}

// Sort stably sorts the queue in ascending or descending order.
func (q *Queue) Sort(descending bool) {
	if q.valid() {
		q.ring.Sort(q.compare, descending)
	}
}

// Values returns a copy of the values in queue order.
func (q *Queue) Values() []string {
	if !q.valid() {
		return nil
	}

	values := []string{}
	q.ring.Do(func(e *Element) bool {
		values = append(values, e.Value)
		return true
	})

	return values
}

// Check verifies that the ring is consistent in both directions and that
// every linked element still owns its value.
func (q *Queue) Check() error {
	if !q.valid() {
		return ErrInvalidArgument
	}

	if err := q.ring.Validate(); err != nil {
		return err
	}

	errs := &errors.M{}
	i := 0
	q.ring.Do(func(e *Element) bool {
		if e.alloc == nil {
			errs.Append(fmt.Errorf("element %d is linked after being freed", i))
		}
		i++
		return true
	})

	return errs.Err()
}

func (q *Queue) valid() bool {
	return q != nil && !q.freed && q.opts.cmp != nil
}

func (q *Queue) compare(a, b *Element) int {
	return q.opts.cmp(a.Value, b.Value)
}
