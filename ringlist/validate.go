package ringlist

import (
	"fmt"

	"cloudeng.io/errors"
)

// ErrCorrupt is reported by Validate for every broken link.
var ErrCorrupt = errors.New("ringlist: corrupt ring")

// Validate walks the ring in both directions and reports every broken link.
// Both walks must return to the sentinel after the same number of elements.
func (l *List[T, E]) Validate() error {
	l.lazyInit()

	errs := &errors.M{}
	root := l.sentinel()

	forward, ok := walk[T, E](root, func(e E) E { return e.Ring().next }, func(e E) E { return e.Ring().prev }, "next", errs)
	if !ok {
		return errs.Err()
	}

	backward, ok := walk[T, E](root, func(e E) E { return e.Ring().prev }, func(e E) E { return e.Ring().next }, "prev", errs)
	if ok && forward != backward {
		errs.Append(fmt.Errorf("%w: %d elements forward, %d backward", ErrCorrupt, forward, backward))
	}

	if n := l.Len(); ok && n != forward {
		errs.Append(fmt.Errorf("%w: length %d, walked %d", ErrCorrupt, n, forward))
	}

	return errs.Err()
}

func walk[T any, E interface {
	*T
	Linker[E]
}](root E, step, back func(E) E, dir string, errs *errors.M) (int, bool) {
	seen := map[E]struct{}{root: {}}
	n := 0

	for e := root; ; n++ {
		s := step(e)
		if s == nil {
			errs.Append(fmt.Errorf("%w: nil %s link after position %d", ErrCorrupt, dir, n))
			return n, false
		}

		if back(s) != e {
			errs.Append(fmt.Errorf("%w: %s link at position %d does not point back", ErrCorrupt, dir, n))
		}

		if s == root {
			return n, true
		}

		if _, ok := seen[s]; ok {
			errs.Append(fmt.Errorf("%w: %s links loop without reaching the sentinel", ErrCorrupt, dir))
			return n, false
		}

		seen[s] = struct{}{}
		e = s
	}
}
