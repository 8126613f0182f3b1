package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrontier_Queue(t *testing.T) {
	q := newQueue[int]()
	for i := 1; i <= 3; i++ {
		q.Push(i)
	}
	assert.Equal(t, 3, q.Len())

	var got []int
	for {
		v, ok := q.Pop()
		if !ok {
			break
		}
		got = append(got, v)
	}
	assert.Equal(t, []int{1, 2, 3}, got)
	assert.Equal(t, 0, q.Len())
}

func TestFrontier_Stack(t *testing.T) {
	s := newStack[int]()
	s.Push(1)
	s.Push(2)
	v, ok := s.Pop()
	assert.True(t, ok)
	assert.Equal(t, 2, v)
	s.Push(3)
	v, _ = s.Pop()
	assert.Equal(t, 3, v)
	v, _ = s.Pop()
	assert.Equal(t, 1, v)
	_, ok = s.Pop()
	assert.False(t, ok)
}

func TestFrontier_QueueCompacts(t *testing.T) {
	q := newQueue[int]()
	for i := 0; i < 5000; i++ {
		q.Push(i)
	}
	for i := 0; i < 3000; i++ {
		v, _ := q.Pop()
		assert.Equal(t, i, v)
	}
	q.Push(5000)
	assert.Equal(t, 2001, q.Len())
	v, _ := q.Pop()
	assert.Equal(t, 3000, v)
}

func TestClock(t *testing.T) {
	c := NewClock()
	assert.Equal(t, int64(0), c.Current())
	assert.Equal(t, int64(1), c.Next())
	assert.Equal(t, int64(2), c.Next())
	assert.Equal(t, int64(2), c.Current())
}
