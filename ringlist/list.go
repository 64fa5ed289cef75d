package ringlist

// DeleteMiddle unlinks and returns the middle element or nil if the list is empty.
// For an even number of elements the second of the two middle elements is returned.
func (l *List[T, E]) DeleteMiddle() E {
	if l.Empty() {
		return nil
	}

	root := l.sentinel()
	slow := root.Ring().next
	fast := slow

	for fast != root && fast.Ring().next != root {
		slow = slow.Ring().next
		fast = fast.Ring().next.Ring().next
	}

	unlink(slow)

	return slow
}

// DeleteDuplicates removes every maximal run of adjacent elements that compare equal.
// No element of a run survives. Removed elements are passed to drop if it is not nil.
func (l *List[T, E]) DeleteDuplicates(cmp func(a, b E) int, drop func(E)) {
	l.lazyInit()

	root := l.sentinel()
	inRun := false

	for e := root.Ring().next; e != root; {
		next := e.Ring().next

		switch {
		case next != root && cmp(e, next) == 0:
			inRun = true
			l.discard(e, drop)

		case inRun:
			inRun = false
			l.discard(e, drop)
		}

		e = next
	}
}

// Swap exchanges the positions of every two adjacent elements.
// A trailing unpaired element stays in place.
func (l *List[T, E]) Swap() {
	l.lazyInit()

	root := l.sentinel()

	for a := root.Ring().next; a != root && a.Ring().next != root; {
		b := a.Ring().next
		next := b.Ring().next
		swapAdjacent(a, b)
		a = next
	}
}

// Reverse reverses the order of the elements in place.
func (l *List[T, E]) Reverse() {
	l.lazyInit()

	root := l.sentinel()
	first := root.Ring().next
	pos := root

	for root.Ring().prev != first {
		e := root.Ring().prev
		unlink(e)
		link(pos, e)
		pos = e
	}
}

// ReverseK reverses each consecutive group of k elements.
// A final group shorter than k keeps its order. It is a no-op for k < 2.
func (l *List[T, E]) ReverseK(k int) {
	if k < 2 {
		return
	}

	l.lazyInit()

	var chunk List[T, E]

	root := l.sentinel()
	prev := root

	for {
		last := prev
		for i := 0; i < k; i++ {
			if last = last.Ring().next; last == root {
				return
			}
		}

		first := prev.Ring().next

		cut(first, last)
		chunk.Init()
		spliceAfter(chunk.sentinel(), first, last)

		chunk.Reverse()

		first, last = chunk.Front(), chunk.Back()
		cut(first, last)
		spliceAfter(prev, first, last)

		prev = last
	}
}

// Ascend removes every element that has a strictly smaller element anywhere
// to its right and returns the number of remaining elements.
// Removed elements are passed to drop if it is not nil.
func (l *List[T, E]) Ascend(cmp func(a, b E) int, drop func(E)) int {
	return l.keepMonotonic(cmp, false, drop)
}

// Descend removes every element that has a strictly greater element anywhere
// to its right and returns the number of remaining elements.
// Removed elements are passed to drop if it is not nil.
func (l *List[T, E]) Descend(cmp func(a, b E) int, drop func(E)) int {
	return l.keepMonotonic(cmp, true, drop)
}

// keepMonotonic walks from the back. threshold is the extremal kept element to the right.
func (l *List[T, E]) keepMonotonic(cmp func(a, b E) int, descending bool, drop func(E)) int {
	l.lazyInit()

	var threshold E

	root := l.sentinel()
	kept := 0

	for e := root.Ring().prev; e != root; {
		prev := e.Ring().prev

		if threshold != nil {
			c := cmp(threshold, e)
			if descending {
				c = -c
			}

			if c < 0 {
				l.discard(e, drop)
				e = prev
				continue
			}
		}

		threshold = e
		kept++
		e = prev
	}

	return kept
}

func (l *List[T, E]) discard(e E, drop func(E)) {
	unlink(e)
	if drop != nil {
		drop(e)
	}
}

// swapAdjacent exchanges a and its successor b.
func swapAdjacent[E Linker[E]](a, b E) {
	p := a.Ring().prev
	n := b.Ring().next

	p.Ring().next = b
	b.Ring().prev = p
	b.Ring().next = a
	a.Ring().prev = b
	a.Ring().next = n
	n.Ring().prev = a
}

// cut unlinks the segment first..last from its ring. The segment keeps its inner links.
func cut[E Linker[E]](first, last E) {
	p := first.Ring().prev
	n := last.Ring().next
	p.Ring().next = n
	n.Ring().prev = p
}

// spliceAfter links the segment first..last after at.
func spliceAfter[E Linker[E]](at, first, last E) {
	n := at.Ring().next
	at.Ring().next = first
	first.Ring().prev = at
	last.Ring().next = n
	n.Ring().prev = last
}
