package sortedlist

import (
	"golang.org/x/exp/slices"
)

// search returns the bucket and offset of the element equal to value, or the
// bucket and offset value would be inserted at when found is false.
func (list *List[T]) search(value T) (pos int, idx int, found bool) {
	pos = list.bucketOf(value)
	idx, found = list.bisect(list.data[pos], value)
	return
}

func (list *List[T]) bucketOf(value T) (pos int) {
	if len(list.maxes) > 1 {
		var found bool
		pos, found = list.bisect(list.maxes, value)
		if !found && list.order == Descending {
			// boundaries of descending buckets are their first (greatest) elements,
			// the bucket holding value is the last one whose boundary exceeds it.
			if pos == len(list.maxes) {
				pos--
			}
			if pos > 0 && list.compare(list.maxes[pos], value) < 0 {
				pos--
			}
		}
	}
	if pos == len(list.data) {
		pos--
	}
	return
}

// bisect is a binary search over values sorted in the list order.
func (list *List[T]) bisect(values []T, value T) (i int, found bool) {
	if list.order == Descending {
		i, found = slices.BinarySearchFunc(values, value, list.reversed)
		return
	}
	i, found = slices.BinarySearchFunc(values, value, list.compare)
	return
}

func (list *List[T]) reversed(a T, b T) int {
	return list.compare(b, a)
}

func (list *List[T]) boundary(bucket []T) T {
	if list.order == Descending {
		return bucket[0]
	}
	return bucket[len(bucket)-1]
}

func (list *List[T]) isBoundary(pos int, idx int) bool {
	if list.order == Descending {
		return idx == 0
	}
	return idx == len(list.data[pos])-1
}

func insertAt[T any](values []T, i int, value T) []T {
	var empty T
	values = append(values, empty)
	copy(values[i+1:], values[i:])
	values[i] = value
	return values
}

func removeAt[T any](values []T, i int) []T {
	var empty T
	copy(values[i:], values[i+1:])
	values[len(values)-1] = empty
	return values[:len(values)-1]
}
