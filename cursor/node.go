package cursor

// none marks an absent link in the node arena
const none = -1

// node is a single cell of the cursor tape. Links are indices into the
// owning cursor's arena rather than pointers.
type node[T any] struct {
	value    T
	next     int
	previous int
}

func newNode[T any](value T) node[T] {
	return node[T]{
		value:    value,
		next:     none,
		previous: none,
	}
}

func (n *node[T]) hasNext() bool {
	return n.next != none
}

func (n *node[T]) hasPrevious() bool {
	return n.previous != none
}

func (n *node[T]) unlink() {
	n.next = none
	n.previous = none
}
