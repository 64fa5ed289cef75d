/*
Package ringlist implements a generic intrusive circular doubly linked list
anchored at a sentinel, together with whole-list algorithms that work purely
by relinking.
*/
package ringlist

// List is a generic circular doubly linked list anchored at a sentinel of type T.
// The list does not store its length.
//
// The zero value is a ready to use empty list. A list must not be copied after first use.
type List[T any, E interface {
	*T
	Linker[E]
}] struct {
	root T
}

func (l *List[T, E]) sentinel() E {
	return E(&l.root)
}

func (l *List[T, E]) lazyInit() {
	if r := l.sentinel().Ring(); r.next == nil {
		r.next = l.sentinel()
		r.prev = l.sentinel()
	}
}

// Init empties the list. Elements still linked are dropped without being unlinked.
func (l *List[T, E]) Init() {
	r := l.sentinel().Ring()
	r.next = l.sentinel()
	r.prev = l.sentinel()
}

// Empty reports whether the list has no elements.
func (l *List[T, E]) Empty() bool {
	l.lazyInit()
	return l.sentinel().Ring().next == l.sentinel()
}

// Len returns the number of elements in the list.
// The list is walked two elements per step.
func (l *List[T, E]) Len() int {
	l.lazyInit()

	root := l.sentinel()
	n := 0
	e := root.Ring().next

	for e != root && e.Ring().next != root {
		e = e.Ring().next.Ring().next
		n += 2
	}

	if e != root {
		n++
	}

	return n
}

// Front returns the first element of the list or nil.
func (l *List[T, E]) Front() E {
	if l.Empty() {
		return nil
	}
	return l.sentinel().Ring().next
}

// Back returns the last element of the list or nil.
func (l *List[T, E]) Back() E {
	if l.Empty() {
		return nil
	}
	return l.sentinel().Ring().prev
}

// Next returns the element after e or nil if e is the last element.
func (l *List[T, E]) Next(e E) E {
	if n := e.Ring().next; n != l.sentinel() {
		return n
	}
	return nil
}

// Prev returns the element before e or nil if e is the first element.
func (l *List[T, E]) Prev(e E) E {
	if p := e.Ring().prev; p != l.sentinel() {
		return p
	}
	return nil
}

// PushFront inserts an element at the front of the list.
func (l *List[T, E]) PushFront(e E) {
	l.lazyInit()
	link(l.sentinel(), e)
}

// PushBack inserts an element at the back of the list.
func (l *List[T, E]) PushBack(e E) {
	l.lazyInit()
	link(l.sentinel().Ring().prev, e)
}

// Remove an element from the list.
func (l *List[T, E]) Remove(e E) {
	unlink(e)
}

// PopFront unlinks and returns the first element or nil if the list is empty.
func (l *List[T, E]) PopFront() E {
	e := l.Front()
	if e != nil {
		unlink(e)
	}
	return e
}

// PopBack unlinks and returns the last element or nil if the list is empty.
func (l *List[T, E]) PopBack() E {
	e := l.Back()
	if e != nil {
		unlink(e)
	}
	return e
}

// MoveAfter moves an element to its new position after mark.
func (l *List[T, E]) MoveAfter(e, mark E) {
	if e == mark {
		return
	}

	unlink(e)
	link(mark, e)
}

// MoveBefore moves an element to its new position before mark.
func (l *List[T, E]) MoveBefore(e, mark E) {
	if e == mark {
		return
	}

	unlink(e)
	link(mark.Ring().prev, e)
}

// Do calls function f on each element of the list, in forward order.
// If f returns false, Do stops the iteration.
// f must not change l.
func (l *List[T, E]) Do(f func(e E) bool) {
	l.lazyInit()

	for e := l.sentinel().Ring().next; e != l.sentinel(); e = e.Ring().next {
		if !f(e) {
			return
		}
	}
}

// Drain unlinks every element from the front and passes it to f.
func (l *List[T, E]) Drain(f func(e E)) {
	for e := l.PopFront(); e != nil; e = l.PopFront() {
		f(e)
	}
}

// link inserts s after e.
func link[E Linker[E]](e, s E) {
	n := e.Ring().next
	e.Ring().next = s
	s.Ring().prev = e
	n.Ring().prev = s
	s.Ring().next = n
}

// unlink unlinks e from its ring and leaves it as a ring of one.
func unlink[E Linker[E]](e E) {
	r := e.Ring()
	r.prev.Ring().next = r.next
	r.next.Ring().prev = r.prev
	r.next = e
	r.prev = e
}
