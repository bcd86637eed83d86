// Package stack provides a LIFO stack used for iterative tree traversal.
package stack

// Stack is a slice-backed LIFO stack. The zero value is ready to use.
type Stack[T any] struct {
	items []T
}

func New[T any]() *Stack[T] {
	return &Stack[T]{}
}

// Push adds items in order, leaving the last one on top.
func (s *Stack[T]) Push(items ...T) {
	s.items = append(s.items, items...)
}

// Pop removes and returns the top item. ok is false when the stack is empty.
func (s *Stack[T]) Pop() (item T, ok bool) {
	if len(s.items) == 0 {
		return item, false
	}

	last := len(s.items) - 1
	item = s.items[last]

	var zero T
	s.items[last] = zero
	s.items = s.items[:last]
	return item, true
}

func (s *Stack[T]) IsEmpty() bool {
	return len(s.items) == 0
}

func (s *Stack[T]) Len() int {
	return len(s.items)
}
