package search

// frontier holds pending items as a stack or a queue.
type frontier[T any] struct {
	items []T
	head  int
	lifo  bool
}

func newStack[T any]() *frontier[T] { return &frontier[T]{lifo: true} }
func newQueue[T any]() *frontier[T] { return &frontier[T]{} }

func (f *frontier[T]) Push(v T) {
	f.items = append(f.items, v)
}

func (f *frontier[T]) Len() int {
	return len(f.items) - f.head
}

// Pop removes the next item. Vacated slots are zeroed so popped
// configurations can be collected.
func (f *frontier[T]) Pop() (T, bool) {
	var zero T
	if f.Len() == 0 {
		return zero, false
	}
	if f.lifo {
		last := len(f.items) - 1
		v := f.items[last]
		f.items[last] = zero
		f.items = f.items[:last]
		return v, true
	}
	v := f.items[f.head]
	f.items[f.head] = zero
	f.head++
	if f.head == len(f.items) {
		f.items = f.items[:0]
		f.head = 0
	} else if f.head > 1024 && f.head*2 > len(f.items) {
		n := copy(f.items, f.items[f.head:])
		clear(f.items[n:])
		f.items = f.items[:n]
		f.head = 0
	}
	return v, true
}
