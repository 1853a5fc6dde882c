package sortedlist

import (
	"cmp"
	"fmt"

	"golang.org/x/exp/constraints"
)

// compareOrdered orders NaN before every other float so a NaN element is unique.
func compareOrdered[T constraints.Ordered](a T, b T) int {
	return cmp.Compare(a, b)
}

// New returns an empty list of naturally ordered elements.
func New[T constraints.Ordered](order Order, options ...Option) (list *List[T]) {
	list = NewFunc[T](order, compareOrdered[T], options...)
	return
}

// NewFunc returns an empty list ordered by compare, which must return a negative
// number when a sorts before b in ascending order, zero when they are equal and a
// positive number otherwise. Elements comparing equal are the same element.
func NewFunc[T any](order Order, compare func(a T, b T) int, options ...Option) (list *List[T]) {
	if compare == nil {
		panic("sortedlist: compare function is required")
	}
	if order != Ascending && order != Descending {
		order = Ascending
	}
	opt := &Options{
		ExpandStrategy: DefaultExpandStrategy,
		ShrinkStrategy: DefaultShrinkStrategy,
	}
	if options != nil && len(options) > 0 {
		for _, option := range options {
			option(opt)
		}
	}
	if opt.ExpandStrategy == nil {
		opt.ExpandStrategy = DefaultExpandStrategy
	}
	if opt.ShrinkStrategy == nil {
		opt.ShrinkStrategy = DefaultShrinkStrategy
	}
	list = &List[T]{
		data:    [][]T{make([]T, 0, 1)},
		maxes:   nil,
		index:   nil,
		order:   order,
		length:  0,
		compare: compare,
		expand:  opt.ExpandStrategy,
		shrink:  opt.ShrinkStrategy,
	}
	return
}

// List is a sorted collection of unique elements kept in a sequence of
// sorted buckets. It is not safe for concurrent use.
type List[T any] struct {
	data    [][]T
	maxes   []T
	index   []int
	order   Order
	length  int
	compare func(a T, b T) int
	expand  Strategy
	shrink  Strategy
}

func (list *List[T]) Order() Order {
	return list.order
}

func (list *List[T]) Len() int {
	return list.length
}

func (list *List[T]) IsEmpty() bool {
	return list.length == 0
}

// Depth returns the number of buckets.
func (list *List[T]) Depth() int {
	return len(list.data)
}

func (list *List[T]) Clear() {
	list.data = nil
	list.maxes = nil
	list.index = nil
	list.length = 0
}

// Insert adds value and returns its rank. An equal element already stored
// fails the insert with an *ElementError wrapping ErrElementAlreadyExists.
func (list *List[T]) Insert(value T) (rank int, err error) {
	rank, err = list.process(value, insertProcess)
	return
}

// Update replaces the element equal to value and returns its rank.
func (list *List[T]) Update(value T) (rank int, err error) {
	rank, err = list.process(value, updateProcess)
	return
}

func (list *List[T]) InsertOrUpdate(value T) (rank int, err error) {
	rank, err = list.process(value, insertOrUpdateProcess)
	return
}

func (list *List[T]) Remove(value T) (removed T, ok bool) {
	if list.length == 0 {
		return
	}
	pos, idx, found := list.search(value)
	if !found {
		return
	}
	removed = list.data[pos][idx]
	list.data[pos] = removeAt(list.data[pos], idx)
	list.updateIndex(pos, -1)
	list.length--
	ok = true
	if list.length == 0 {
		list.Clear()
		if debugEnabled() {
			Log.WithField("op", "reset").Debug("sortedlist: list became empty")
		}
		return
	}
	if len(list.data[pos]) == 0 {
		list.drop(pos)
		return
	}
	list.maxes[pos] = list.boundary(list.data[pos])
	if len(list.data) > 1 && list.shrink(len(list.data[pos]), pos) {
		list.merge(pos)
	}
	return
}

func (list *List[T]) Find(value T) (rank int, ok bool) {
	if list.length == 0 {
		return
	}
	pos, idx, found := list.search(value)
	if !found {
		return
	}
	rank = list.rankOf(pos, idx)
	ok = true
	return
}

func (list *List[T]) Contains(value T) (ok bool) {
	_, ok = list.Find(value)
	return
}

// At returns the element of the given rank and panics when rank is out of range.
func (list *List[T]) At(rank int) T {
	if rank < 0 || rank >= list.length {
		panic(fmt.Sprintf("sortedlist: rank %d out of range [0:%d]", rank, list.length))
	}
	pos, idx := list.locate(rank)
	return list.data[pos][idx]
}

func (list *List[T]) First() (value T, ok bool) {
	if list.length == 0 {
		return
	}
	value, ok = list.data[0][0], true
	return
}

func (list *List[T]) Last() (value T, ok bool) {
	if list.length == 0 {
		return
	}
	bucket := list.data[len(list.data)-1]
	value, ok = bucket[len(bucket)-1], true
	return
}

// Range returns the elements ranked in [start, end). Both bounds must be lower
// than Len and start must not exceed end, otherwise Range panics.
func (list *List[T]) Range(start int, end int) (values []T, ok bool) {
	if start > end {
		panic("sortedlist: start position is greater than end position")
	}
	if start < 0 || start >= list.length {
		panic(fmt.Sprintf("sortedlist: start %d out of range [0:%d]", start, list.length))
	}
	if end >= list.length {
		panic(fmt.Sprintf("sortedlist: end %d out of range [0:%d]", end, list.length))
	}
	if start == end {
		return
	}
	values = make([]T, 0, end-start)
	pos, idx := list.locate(start)
	for n := end - start; n > 0; {
		bucket := list.data[pos][idx:]
		if len(bucket) > n {
			bucket = bucket[:n]
		}
		values = append(values, bucket...)
		n -= len(bucket)
		pos++
		idx = 0
	}
	ok = true
	return
}

// Filter returns the elements matching fn in stored order, ok is false when none does.
func (list *List[T]) Filter(fn func(value T) bool) (values []T, ok bool) {
	for _, bucket := range list.data {
		for _, value := range bucket {
			if fn(value) {
				values = append(values, value)
			}
		}
	}
	ok = len(values) > 0
	return
}

// Map applies fn to every element of list in stored order, ok is false when list is empty.
func Map[T any, K any](list *List[T], fn func(value T) K) (values []K, ok bool) {
	if list.IsEmpty() {
		return
	}
	values = make([]K, 0, list.length)
	for _, bucket := range list.data {
		for _, value := range bucket {
			values = append(values, fn(value))
		}
	}
	ok = true
	return
}

// Values returns a copy of all elements in stored order.
func (list *List[T]) Values() []T {
	values := make([]T, 0, list.length)
	for _, bucket := range list.data {
		values = append(values, bucket...)
	}
	return values
}

const (
	insertProcess = processType(iota + 1)
	updateProcess
	insertOrUpdateProcess
)

type processType int

func (list *List[T]) process(value T, kind processType) (rank int, err error) {
	if len(list.maxes) == 0 {
		if kind == updateProcess {
			err = notFound(value)
			return
		}
		if len(list.data) == 0 {
			list.data = append(list.data, make([]T, 0, 1))
		}
		list.data[0] = append(list.data[0], value)
		list.maxes = append(list.maxes, value)
		list.length++
		return
	}
	pos, idx, found := list.search(value)
	if found {
		if kind == insertProcess {
			err = alreadyExists(value)
			return
		}
		list.data[pos][idx] = value
		if list.isBoundary(pos, idx) {
			list.maxes[pos] = value
		}
		rank = list.rankOf(pos, idx)
		return
	}
	if kind == updateProcess {
		err = notFound(value)
		return
	}
	if list.compare(value, list.maxes[pos]) > 0 {
		list.maxes[pos] = value
	}
	list.data[pos] = insertAt(list.data[pos], idx, value)
	list.length++
	list.updateIndex(pos, 1)
	// rank is taken before a split moves the element
	rank = list.rankOf(pos, idx)
	if list.expand(len(list.data[pos]), pos) {
		list.split(pos)
	}
	return
}
