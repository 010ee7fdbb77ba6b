// Package util holds small generic helpers
package util

// Stack is a last-in first-out list. The zero value is an empty Stack
type Stack[A any] struct {
	items []A
}

// Push adds vs in order, so that the last of them is popped first
func (s *Stack[A]) Push(vs ...A) {
	s.items = append(s.items, vs...)
}

func (s *Stack[A]) Pop() (ret A, ok bool) {
	if len(s.items) == 0 {
		return ret, false
	}
	last := len(s.items) - 1
	ret = s.items[last]
	s.items = s.items[:last]
	return ret, true
}

func (s *Stack[A]) Len() int { return len(s.items) }
