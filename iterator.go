package sortedlist

// Iter returns a cursor over the elements in stored order. Every call returns
// an independent cursor starting at the first element. The list must not be
// mutated while a cursor is in use.
func (list *List[T]) Iter() *Iterator[T] {
	return &Iterator[T]{
		data:      list.data,
		pos:       0,
		idx:       0,
		remaining: list.length,
	}
}

type Iterator[T any] struct {
	data      [][]T
	pos       int
	idx       int
	remaining int
}

func (it *Iterator[T]) Next() (value T, ok bool) {
	for it.pos < len(it.data) && it.idx >= len(it.data[it.pos]) {
		it.pos++
		it.idx = 0
	}
	if it.pos >= len(it.data) {
		return
	}
	value, ok = it.data[it.pos][it.idx], true
	it.idx++
	it.remaining--
	return
}

// Remaining returns the number of elements Next has yet to yield.
func (it *Iterator[T]) Remaining() int {
	return it.remaining
}

// Each calls fn for every element in stored order until fn returns false.
func (list *List[T]) Each(fn func(value T) bool) {
	for _, bucket := range list.data {
		for _, value := range bucket {
			if !fn(value) {
				return
			}
		}
	}
}
