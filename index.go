package sortedlist

// The rank index holds, for every bucket, the number of elements stored in the
// buckets before it, followed by the total length. It is only maintained while
// there are at least two buckets.

func (list *List[T]) buildIndex() {
	list.index = list.index[:0]
	if list.length == 0 || len(list.data) < 2 {
		list.index = nil
		return
	}
	list.index = append(list.index, 0)
	for _, bucket := range list.data {
		list.index = append(list.index, list.index[len(list.index)-1]+len(bucket))
	}
}

func (list *List[T]) updateIndex(pos int, delta int) {
	if len(list.data) < 2 {
		return
	}
	for i := pos + 1; i < len(list.index); i++ {
		list.index[i] += delta
	}
}

// positionalSearch returns the last bucket whose cumulative count is not greater than rank.
func (list *List[T]) positionalSearch(rank int) (pos int) {
	low := 0
	high := len(list.index)
	for low < high {
		middle := int(uint(low+high) >> 1)
		if list.index[middle] <= rank {
			low = middle + 1
		} else {
			high = middle
		}
	}
	pos = low - 1
	return
}

func (list *List[T]) locate(rank int) (pos int, idx int) {
	if rank < len(list.data[0]) {
		return 0, rank
	}
	pos = list.positionalSearch(rank)
	idx = rank - list.index[pos]
	return
}

func (list *List[T]) rankOf(pos int, idx int) int {
	if len(list.data) > 1 {
		return list.index[pos] + idx
	}
	return idx
}
