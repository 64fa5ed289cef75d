package strqueue

import "cloudeng.io/errors"

var (
	// ErrInvalidArgument indicates a nil or freed queue.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrAllocation indicates that the allocator refused memory for a node or a payload.
	ErrAllocation = errors.New("allocation failure")
)
