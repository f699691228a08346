// Package cursor provides a movable cursor over a tape of values that wraps
// around at both ends.
package cursor

import (
	"errors"
	"iter"
	"slices"
)

var (
	// ErrNoCurrentElement is returned when reading the value of a cursor that
	// is reset or empty
	ErrNoCurrentElement = errors.New("cursor has no current element")

	// ErrEmptyCursor is returned when moving a cursor with no elements
	ErrEmptyCursor = errors.New("cannot move an empty cursor")
)

// ResetIndex is what Index reports while the cursor is not positioned on
// any element.
const ResetIndex = -1

// position is either reset or positioned at index. Index arithmetic only
// ever happens on the positioned branch.
type position struct {
	index      int
	positioned bool
}

// CyclicCursor is a cursor over a linear chain of nodes. Moving past either
// end wraps to the opposite end, while HasNext and HasPrevious only report
// physical neighbours so that one-pass iteration terminates.
//
// A CyclicCursor is not safe for concurrent use.
type CyclicCursor[T any] struct {
	nodes   []node[T]
	first   int
	last    int
	current int
	pos     position
	size    int
}

// New creates a reset cursor over values.
func New[T any](values []T) *CyclicCursor[T] {
	return NewAt(values, ResetIndex)
}

// NewAt creates a cursor over values positioned at start. If start is not a
// valid index the cursor begins reset.
func NewAt[T any](values []T, start int) *CyclicCursor[T] {
	return FromSeq(slices.Values(values), start)
}

// FromSeq builds a cursor by consuming values in a single pass.
func FromSeq[T any](values iter.Seq[T], start int) *CyclicCursor[T] {
	c := &CyclicCursor[T]{
		first:   none,
		last:    none,
		current: none,
	}

	for v := range values {
		i := len(c.nodes)
		n := newNode(v)
		if c.last == none {
			c.first = i
		} else {
			c.nodes[c.last].next = i
			n.previous = c.last
		}
		c.nodes = append(c.nodes, n)
		c.last = i

		if i == start {
			c.current = i
			c.pos = position{index: i, positioned: true}
		}
	}
	c.size = len(c.nodes)

	return c
}

func (c *CyclicCursor[T]) HasNext() bool {
	if !c.pos.positioned {
		return c.first != none
	}
	return c.current != none && c.nodes[c.current].hasNext()
}

// MoveNext advances the cursor, wrapping from the last element (or from the
// reset point) to the first.
func (c *CyclicCursor[T]) MoveNext() error {
	if c.size == 0 {
		return ErrEmptyCursor
	}

	if !c.pos.positioned {
		c.current = c.first
		c.pos = position{index: 0, positioned: true}
		return nil
	}

	if n := c.nodes[c.current]; n.hasNext() {
		c.current = n.next
	} else {
		c.current = c.first
	}
	c.pos.index = floorMod(c.pos.index+1, c.size)
	return nil
}

func (c *CyclicCursor[T]) HasPrevious() bool {
	if !c.pos.positioned {
		return c.last != none
	}
	return c.current != none && c.nodes[c.current].hasPrevious()
}

// MovePrevious moves the cursor back, wrapping from the first element (or
// from the reset point) to the last.
func (c *CyclicCursor[T]) MovePrevious() error {
	if c.size == 0 {
		return ErrEmptyCursor
	}

	if !c.pos.positioned {
		c.current = c.last
		c.pos = position{index: c.size - 1, positioned: true}
		return nil
	}

	if n := c.nodes[c.current]; n.hasPrevious() {
		c.current = n.previous
	} else {
		c.current = c.last
	}
	c.pos.index = floorMod(c.pos.index-1, c.size)
	return nil
}

func (c *CyclicCursor[T]) Current() (T, error) {
	if c.current == none {
		var zero T
		return zero, ErrNoCurrentElement
	}
	return c.nodes[c.current].value, nil
}

// Index returns the logical index of the current element, or ResetIndex.
func (c *CyclicCursor[T]) Index() int {
	if !c.pos.positioned {
		return ResetIndex
	}
	return c.pos.index
}

func (c *CyclicCursor[T]) Size() int {
	return c.size
}

func (c *CyclicCursor[T]) IsReset() bool {
	return !c.pos.positioned
}

// Reset returns the cursor to the point before the first element, which is
// also the point after the last one.
func (c *CyclicCursor[T]) Reset() {
	c.current = none
	c.pos = position{}
}

// Set replaces the current value. It does nothing if there is no current
// element.
func (c *CyclicCursor[T]) Set(value T) {
	if c.current != none {
		c.nodes[c.current].value = value
	}
}

// Remove splices the current element out of the tape and returns it. The
// cursor moves onto the following element, which takes over the removed
// element's index; removing the last element wraps to the first, and
// removing the only element leaves the cursor empty. Remove reports false
// if there was no current element.
func (c *CyclicCursor[T]) Remove() (T, bool) {
	var zero T
	if c.current == none {
		return zero, false
	}

	n := &c.nodes[c.current]
	removed := n.value
	next, previous := n.next, n.previous

	if next != none {
		c.nodes[next].previous = previous
	} else {
		c.last = previous
	}
	if previous != none {
		c.nodes[previous].next = next
	} else {
		c.first = next
	}

	n.unlink()
	n.value = zero
	c.size--

	switch {
	case c.size == 0:
		c.Reset()
	case next != none:
		c.current = next
	default:
		c.current = c.first
		c.pos.index = 0
	}

	return removed, true
}

// All returns a sequence that moves the cursor forward until HasNext
// reports false, yielding each value it lands on. Starting from the reset
// point it yields every element exactly once. The cursor is left wherever
// the iteration stopped.
func (c *CyclicCursor[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for c.HasNext() {
			if err := c.MoveNext(); err != nil {
				return
			}
			v, err := c.Current()
			if err != nil {
				return
			}
			if !yield(v) {
				return
			}
		}
	}
}

// Clone returns an independent copy of the cursor, including its position.
func (c *CyclicCursor[T]) Clone() *CyclicCursor[T] {
	clone := *c
	clone.nodes = slices.Clone(c.nodes)
	return &clone
}

// floorMod is like % but always returns a value in [0, n), so -1 wraps to
// n-1 rather than staying -1.
func floorMod(a, n int) int {
	return ((a % n) + n) % n
}
