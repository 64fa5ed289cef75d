package strqueue

import (
	"strings"
	"unsafe"

	"github.com/mgnsk/strqueue/ringlist"
)

const nodeSize = int(unsafe.Sizeof(Element{}))

// Element is a queue element owning a copy of its value.
type Element struct {
	link  ringlist.Link[*Element]
	Value string
	alloc Allocator
}

// NewElement creates an unlinked element holding a private copy of s.
// The node and the payload are charged to alloc separately. If the payload
// cannot be allocated, the node is released before ErrAllocation is returned.
// A nil alloc never fails.
func NewElement(alloc Allocator, s string) (*Element, error) {
	if alloc == nil {
		alloc = Unbounded{}
	}

	if err := alloc.Alloc(nodeSize); err != nil {
		return nil, err
	}

	if err := alloc.Alloc(len(s) + 1); err != nil {
		alloc.Free(nodeSize)
		return nil, err
	}

	return &Element{
		Value: strings.Clone(s),
		alloc: alloc,
	}, nil
}

// Ring returns the element links.
func (e *Element) Ring() *ringlist.Link[*Element] {
	return &e.link
}

// Free releases the payload and then the node. Freeing nil or an already
// freed element is a no-op. The element must not be linked into a queue.
func (e *Element) Free() {
	if e == nil || e.alloc == nil {
		return
	}

	e.alloc.Free(len(e.Value) + 1)
	e.alloc.Free(nodeSize)
	e.alloc = nil
	e.Value = ""
}
