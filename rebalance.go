package sortedlist

import (
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"
)

// split cuts the bucket at pos in half, the upper half becomes a new bucket at pos+1.
func (list *List[T]) split(pos int) {
	bucket := list.data[pos]
	if len(bucket) < 2 {
		return
	}
	half := len(bucket) / 2
	upper := make([]T, len(bucket)-half, cap(bucket))
	copy(upper, bucket[half:])
	var empty T
	for i := half; i < len(bucket); i++ {
		bucket[i] = empty
	}
	lower := bucket[:half]
	list.data[pos] = lower
	list.data = slices.Insert(list.data, pos+1, upper)
	list.maxes[pos] = list.boundary(lower)
	list.maxes = slices.Insert(list.maxes, pos+1, list.boundary(upper))
	list.buildIndex()
	if debugEnabled() {
		Log.WithFields(logrus.Fields{
			"op": "split", "bucket": pos, "lower": len(lower), "upper": len(upper), "depth": len(list.data),
		}).Debug("sortedlist: bucket expanded")
	}
}

// merge folds the bucket at pos into a neighbor: the right one for the first bucket,
// the left one for the last bucket, otherwise the shorter one, preferring the right on ties.
func (list *List[T]) merge(pos int) {
	var target int
	if pos == 0 {
		target = 1
	} else if pos == len(list.data)-1 {
		target = len(list.data) - 2
	} else if len(list.data[pos-1]) < len(list.data[pos+1]) {
		target = pos - 1
	} else {
		target = pos + 1
	}
	survivor, donor := pos, target
	if target < pos {
		survivor, donor = target, pos
	}
	list.data[survivor] = append(list.data[survivor], list.data[donor]...)
	list.maxes[survivor] = list.boundary(list.data[survivor])
	list.removeBucket(donor)
	list.buildIndex()
	if debugEnabled() {
		Log.WithFields(logrus.Fields{
			"op": "merge", "bucket": pos, "into": target, "length": len(list.data[survivor]), "depth": len(list.data),
		}).Debug("sortedlist: bucket shrunk")
	}
}

// drop discards the empty bucket at pos while other buckets remain.
func (list *List[T]) drop(pos int) {
	list.removeBucket(pos)
	list.buildIndex()
	if debugEnabled() {
		Log.WithFields(logrus.Fields{
			"op": "drop", "bucket": pos, "depth": len(list.data),
		}).Debug("sortedlist: empty bucket dropped")
	}
}

func (list *List[T]) removeBucket(pos int) {
	copy(list.data[pos:], list.data[pos+1:])
	list.data[len(list.data)-1] = nil
	list.data = list.data[:len(list.data)-1]
	list.maxes = removeAt(list.maxes, pos)
}
