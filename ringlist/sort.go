package ringlist

// Sort sorts the list with a stable bottom-up merge sort.
//
// Pending runs are chained through their prev links. Pushing an element increments
// a binary counter and every carry merges the two newest runs of equal size, so at
// most O(log n) runs are pending. Equal elements keep their relative order; descending
// only inverts the sign of cmp.
func (l *List[T, E]) Sort(cmp func(a, b E) int, descending bool) {
	l.lazyInit()

	root := l.sentinel()
	if first := root.Ring().next; first == root || first.Ring().next == root {
		return
	}

	cmp = direction(cmp, descending)

	var pending E

	list := l.detach()

	for count := 0; list != nil; count++ {
		tail := &pending

		bits := count
		for ; bits&1 != 0; bits >>= 1 {
			tail = &(*tail).Ring().prev
		}

		if bits != 0 {
			a := *tail
			b := a.Ring().prev
			a = merge[T, E](cmp, b, a)
			a.Ring().prev = b.Ring().prev
			*tail = a
		}

		list.Ring().prev = pending
		pending = list
		list = list.Ring().next
		pending.Ring().next = nil
	}

	list = pending
	pending = pending.Ring().prev

	for pending != nil {
		next := pending.Ring().prev
		list = merge[T, E](cmp, pending, list)
		pending = next
	}

	l.relink(list)
}

// Merge moves every element of srcs into dst and returns the resulting length of dst.
//
// dst and every list in srcs must already be sorted in the requested direction.
// The lists are merged pairwise in order, so on ties elements of dst come first,
// then elements of srcs in slice order. The srcs lists are left empty.
func Merge[T any, E interface {
	*T
	Linker[E]
}](dst *List[T, E], srcs []*List[T, E], cmp func(a, b E) int, descending bool) int {
	cmp = direction(cmp, descending)

	runs := make([]E, 0, len(srcs)+1)
	if run := dst.detach(); run != nil {
		runs = append(runs, run)
	}

	for _, src := range srcs {
		if src == dst {
			continue
		}
		if run := src.detach(); run != nil {
			runs = append(runs, run)
		}
	}

	for len(runs) > 1 {
		merged := runs[:0]
		for i := 0; i < len(runs); i += 2 {
			if i+1 == len(runs) {
				merged = append(merged, runs[i])
				break
			}
			merged = append(merged, merge[T, E](cmp, runs[i], runs[i+1]))
		}
		runs = merged
	}

	if len(runs) == 1 {
		dst.relink(runs[0])
	}

	return dst.Len()
}

func direction[E any](cmp func(a, b E) int, descending bool) func(a, b E) int {
	if !descending {
		return cmp
	}
	return func(a, b E) int {
		return cmp(b, a)
	}
}

// detach empties the list and returns its elements as a nil terminated chain
// of next links, or nil if the list is empty. Prev links are left as they were.
func (l *List[T, E]) detach() E {
	l.lazyInit()

	root := l.sentinel()
	first := root.Ring().next
	if first == root {
		return nil
	}

	root.Ring().prev.Ring().next = nil
	l.Init()

	return first
}

// relink rebuilds prev links of a nil terminated chain and closes it into the list ring.
func (l *List[T, E]) relink(head E) {
	root := l.sentinel()
	prev := root

	for e := head; e != nil; e = e.Ring().next {
		e.Ring().prev = prev
		prev.Ring().next = e
		prev = e
	}

	prev.Ring().next = root
	root.Ring().prev = prev
}

// merge merges two nil terminated chains. a is the earlier run and wins ties.
func merge[T any, E interface {
	*T
	Linker[E]
}](cmp func(a, b E) int, a, b E) E {
	var head E

	tail := &head

	for {
		if cmp(a, b) <= 0 {
			*tail = a
			tail = &a.Ring().next
			if a = a.Ring().next; a == nil {
				*tail = b
				break
			}
		} else {
			*tail = b
			tail = &b.Ring().next
			if b = b.Ring().next; b == nil {
				*tail = a
				break
			}
		}
	}

	return head
}
