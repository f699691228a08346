package circularbuffer

import (
	"errors"
	"fmt"
	"sync"
)

var ErrNonPositiveCapacity = errors.New("capacity must be positive")

// CircularBuffer keeps the most recent values pushed to it, overwriting the
// oldest once it is full. It is safe for concurrent use.
type CircularBuffer[T any] struct {
	values   []T
	position int
	full     bool
	mu       sync.Mutex
}

func New[T any](size int) (*CircularBuffer[T], error) {
	if size < 1 {
		return nil, fmt.Errorf("size %d: %w", size, ErrNonPositiveCapacity)
	}

	return &CircularBuffer[T]{
		values: make([]T, size),
	}, nil
}

// Push adds element, returning the value it evicted if the buffer was full
func (cb *CircularBuffer[T]) Push(element T) (T, bool) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	evicted, wasFull := cb.values[cb.position], cb.full

	cb.values[cb.position] = element
	cb.position++

	if cb.position >= len(cb.values) {
		cb.position = 0
		cb.full = true
	}

	if !wasFull {
		var zero T
		return zero, false
	}
	return evicted, true
}

func (cb *CircularBuffer[T]) Len() int {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	return cb.len()
}

func (cb *CircularBuffer[T]) Cap() int {
	return len(cb.values)
}

func (cb *CircularBuffer[T]) len() int {
	if cb.full {
		return len(cb.values)
	}
	return cb.position
}

// Each iterates over all elements in the buffer in the order they were inserted
func (cb *CircularBuffer[T]) Each(fn func(T)) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.each(fn)
}

func (cb *CircularBuffer[T]) each(fn func(T)) {
	i := 0
	if cb.full {
		i = cb.position
	}

	for n := 0; n < cb.len(); n++ {
		fn(cb.values[i])

		i++
		if i >= len(cb.values) {
			i = 0
		}
	}
}

// Items returns a copy of the buffer contents, oldest first
func (cb *CircularBuffer[T]) Items() []T {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	items := make([]T, 0, cb.len())
	cb.each(func(v T) {
		items = append(items, v)
	})
	return items
}

// Last returns the most recently pushed value
func (cb *CircularBuffer[T]) Last() (T, bool) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.len() == 0 {
		var zero T
		return zero, false
	}

	i := cb.position - 1
	if i < 0 {
		i = len(cb.values) - 1
	}
	return cb.values[i], true
}

func (cb *CircularBuffer[T]) Clear() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	var zero T
	for i := range cb.values {
		cb.values[i] = zero
	}
	cb.position = 0
	cb.full = false
}
