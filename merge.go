package strqueue

import (
	"fmt"

	"cloudeng.io/errors"
	"github.com/mgnsk/strqueue/ringlist"
)

// Merge moves the elements of every queue in chain into chain[0] and returns its size.
//
// Every queue must already be sorted in the requested order. The merge is stable:
// on ties, elements of earlier queues in the chain come first. The other queues
// are left empty and still belong to the caller. The comparator of chain[0] is used.
//
// If any queue in the chain is nil or freed, no queue is modified and the
// returned error lists every offending index.
func Merge(chain []*Queue, descending bool) (int, error) {
	if len(chain) == 0 {
		return 0, ErrInvalidArgument
	}

	errs := &errors.M{}
	for i, q := range chain {
		if !q.valid() {
			errs.Append(fmt.Errorf("queue %d: %w", i, ErrInvalidArgument))
		}
	}

	if err := errs.Err(); err != nil {
		return 0, err
	}

	dst := chain[0]

	srcs := make([]*ringlist.List[Element, *Element], 0, len(chain)-1)
	for _, q := range chain[1:] {
		srcs = append(srcs, &q.ring)
	}

	return ringlist.Merge(&dst.ring, srcs, dst.compare, descending), nil
}
