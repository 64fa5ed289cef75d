package strqueue

import "strings"

// Comparator orders two element values. It returns a negative number when a < b,
// zero when a == b and a positive number when a > b.
type Comparator func(a, b string) int

// Option is a queue configuration option.
type Option interface {
	apply(*queueOptions)
}

type queueOptions struct {
	cmp   Comparator
	alloc Allocator
}

func newDefaultQueueOptions() queueOptions {
	return queueOptions{
		cmp:   strings.Compare,
		alloc: Unbounded{},
	}
}

// WithComparator option configures the queue with specified comparator.
//
// The default comparator is strings.Compare.
func WithComparator(cmp Comparator) Option {
	return funcOption(func(opts *queueOptions) {
		if cmp == nil {
			panic("strqueue: nil comparator")
		}
		opts.cmp = cmp
	})
}

// WithAllocator option configures the queue with specified allocator.
// Elements and the sentinel of the queue are charged to it.
//
// The default allocator never fails.
func WithAllocator(alloc Allocator) Option {
	return funcOption(func(opts *queueOptions) {
		if alloc == nil {
			panic("strqueue: nil allocator")
		}
		opts.alloc = alloc
	})
}

type funcOption func(*queueOptions)

func (o funcOption) apply(opts *queueOptions) {
	o(opts)
}
