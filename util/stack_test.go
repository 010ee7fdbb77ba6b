package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStack(t *testing.T) {
	s := &Stack[int]{}
	_, ok := s.Pop()
	assert.False(t, ok)

	s.Push(1, 2)
	s.Push(3)
	assert.Equal(t, 3, s.Len())

	var popped []int
	for v, ok := s.Pop(); ok; v, ok = s.Pop() {
		popped = append(popped, v)
	}
	assert.Equal(t, []int{3, 2, 1}, popped)
	assert.Zero(t, s.Len())
}
