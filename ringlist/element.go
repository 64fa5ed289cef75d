package ringlist

// Link is the intrusive part of a ring element. Element types embed a Link
// and return it from their Ring method.
type Link[E any] struct {
	next, prev E
}

// Linker is the constraint for a generic ring element.
type Linker[E any] interface {
	Ring() *Link[E]
}

// Element is a built in ring element carrying a value.
type Element[V any] struct {
	link  Link[*Element[V]]
	Value V
}

// NewElement creates an unlinked element.
func NewElement[V any](v V) *Element[V] {
	return &Element[V]{
		Value: v,
	}
}

// Ring returns the element links.
func (e *Element[V]) Ring() *Link[*Element[V]] {
	return &e.link
}

// ElementList is a built in list type that uses the Element type as its element.
// The zero value is a ready to use empty list.
type ElementList[V any] struct {
	List[Element[V], *Element[V]]
}
