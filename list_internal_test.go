package sortedlist

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkInvariants[T any](t *testing.T, list *List[T]) {
	t.Helper()
	if list.length == 0 {
		require.Empty(t, list.maxes, "maxes of empty list")
		require.Empty(t, list.index, "index of empty list")
		for _, bucket := range list.data {
			require.Empty(t, bucket, "bucket of empty list")
		}
		return
	}
	require.Equal(t, len(list.data), len(list.maxes), "buckets and boundaries")
	total := 0
	for i, bucket := range list.data {
		require.NotEmpty(t, bucket, "bucket %d", i)
		for j := 1; j < len(bucket); j++ {
			require.True(t, list.before(bucket[j-1], bucket[j]), "bucket %d not sorted at %d", i, j)
		}
		require.Equal(t, 0, list.compare(list.boundary(bucket), list.maxes[i]), "boundary of bucket %d", i)
		if i > 0 {
			prev := list.data[i-1]
			require.True(t, list.before(prev[len(prev)-1], bucket[0]), "bucket %d overlaps bucket %d", i-1, i)
			require.True(t, list.before(list.maxes[i-1], list.maxes[i]), "boundaries %d and %d", i-1, i)
		}
		total += len(bucket)
	}
	require.Equal(t, list.length, total, "length")
	if len(list.data) < 2 {
		require.Empty(t, list.index, "index with a single bucket")
		return
	}
	require.Len(t, list.index, len(list.data)+1, "index length")
	require.Equal(t, 0, list.index[0])
	for i, bucket := range list.data {
		require.Equal(t, list.index[i]+len(bucket), list.index[i+1], "index entry %d", i+1)
	}
}

// before reports whether a is stored before b.
func (list *List[T]) before(a T, b T) bool {
	c := list.compare(a, b)
	if list.order == Descending {
		return c > 0
	}
	return c < 0
}

func fromBuckets(order Order, buckets ...[]int) *List[int] {
	list := New[int](order)
	list.data = buckets
	list.maxes = make([]int, 0, len(buckets))
	for _, bucket := range buckets {
		list.maxes = append(list.maxes, list.boundary(bucket))
		list.length += len(bucket)
	}
	list.buildIndex()
	return list
}

func TestBucketOf_Ascending(t *testing.T) {
	list := fromBuckets(Ascending, []int{20, 30, 40}, []int{50, 60}, []int{70, 80, 90})
	checkInvariants(t, list)
	cases := map[int]int{
		10: 0, 20: 0, 35: 0, 40: 0,
		45: 1, 50: 1, 60: 1,
		65: 2, 90: 2, 100: 2,
	}
	for value, want := range cases {
		assert.Equal(t, want, list.bucketOf(value), "value %d", value)
	}
}

func TestBucketOf_Descending(t *testing.T) {
	list := fromBuckets(Descending, []int{90, 80, 70}, []int{60, 50}, []int{40, 30, 20})
	checkInvariants(t, list)
	cases := map[int]int{
		100: 0, 90: 0, 85: 0, 70: 0, 65: 0,
		60: 1, 55: 1, 45: 1,
		40: 2, 25: 2, 10: 2,
	}
	for value, want := range cases {
		assert.Equal(t, want, list.bucketOf(value), "value %d", value)
	}
}

func TestSearch(t *testing.T) {
	asc := fromBuckets(Ascending, []int{20, 30, 40}, []int{50, 60}, []int{70, 80, 90})
	pos, idx, found := asc.search(60)
	assert.Equal(t, []any{1, 1, true}, []any{pos, idx, found})
	pos, idx, found = asc.search(55)
	assert.Equal(t, []any{1, 1, false}, []any{pos, idx, found})
	pos, idx, found = asc.search(95)
	assert.Equal(t, []any{2, 3, false}, []any{pos, idx, found})

	desc := fromBuckets(Descending, []int{90, 80, 70}, []int{60, 50}, []int{40, 30, 20})
	pos, idx, found = desc.search(30)
	assert.Equal(t, []any{2, 1, true}, []any{pos, idx, found})
	pos, idx, found = desc.search(75)
	assert.Equal(t, []any{0, 2, false}, []any{pos, idx, found})
	pos, idx, found = desc.search(65)
	assert.Equal(t, []any{0, 3, false}, []any{pos, idx, found})
	pos, idx, found = desc.search(95)
	assert.Equal(t, []any{0, 0, false}, []any{pos, idx, found})
	pos, idx, found = desc.search(10)
	assert.Equal(t, []any{2, 3, false}, []any{pos, idx, found})
}

func TestRankIndex(t *testing.T) {
	list := fromBuckets(Ascending, []int{1, 2, 3}, []int{4, 5}, []int{6, 7, 8, 9})
	assert.Equal(t, []int{0, 3, 5, 9}, list.index)
	for rank := 0; rank < list.length; rank++ {
		pos, idx := list.locate(rank)
		assert.Equal(t, rank+1, list.data[pos][idx])
		assert.Equal(t, rank, list.rankOf(pos, idx))
	}
	list.data[1] = insertAt(list.data[1], 2, 10)
	list.length++
	list.updateIndex(1, 1)
	assert.Equal(t, []int{0, 3, 6, 10}, list.index)

	single := fromBuckets(Ascending, []int{1, 2, 3})
	assert.Nil(t, single.index)
	assert.Equal(t, 2, single.rankOf(0, 2))
	pos, idx := single.locate(1)
	assert.Equal(t, []int{0, 1}, []int{pos, idx})
}

func TestSplit(t *testing.T) {
	asc := fromBuckets(Ascending, []int{1, 2, 3, 4, 5})
	asc.split(0)
	assert.Equal(t, [][]int{{1, 2}, {3, 4, 5}}, asc.data)
	assert.Equal(t, []int{2, 5}, asc.maxes)
	assert.Equal(t, []int{0, 2, 5}, asc.index)
	checkInvariants(t, asc)

	desc := fromBuckets(Descending, []int{9}, []int{8, 7, 6, 5}, []int{4})
	desc.split(1)
	assert.Equal(t, [][]int{{9}, {8, 7}, {6, 5}, {4}}, desc.data)
	assert.Equal(t, []int{9, 8, 6, 4}, desc.maxes)
	assert.Equal(t, []int{0, 1, 3, 5, 6}, desc.index)
	checkInvariants(t, desc)
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name   string
		order  Order
		data   [][]int
		pos    int
		expect [][]int
	}{
		{
			name:   "first merges right",
			order:  Ascending,
			data:   [][]int{{1}, {2, 3}, {4}},
			pos:    0,
			expect: [][]int{{1, 2, 3}, {4}},
		},
		{
			name:   "last merges left",
			order:  Ascending,
			data:   [][]int{{1}, {2, 3}, {4}},
			pos:    2,
			expect: [][]int{{1}, {2, 3, 4}},
		},
		{
			name:   "smaller left neighbor",
			order:  Ascending,
			data:   [][]int{{1, 2}, {3}, {4, 5, 6}},
			pos:    1,
			expect: [][]int{{1, 2, 3}, {4, 5, 6}},
		},
		{
			name:   "tie prefers right neighbor",
			order:  Ascending,
			data:   [][]int{{1, 2}, {3}, {4, 5}},
			pos:    1,
			expect: [][]int{{1, 2}, {3, 4, 5}},
		},
		{
			name:   "descending into left neighbor",
			order:  Descending,
			data:   [][]int{{9, 8}, {7}, {6, 5, 4}},
			pos:    1,
			expect: [][]int{{9, 8, 7}, {6, 5, 4}},
		},
		{
			name:   "descending into right neighbor",
			order:  Descending,
			data:   [][]int{{9, 8, 7}, {6}, {5, 4}},
			pos:    1,
			expect: [][]int{{9, 8, 7}, {6, 5, 4}},
		},
		{
			name:   "down to a single bucket",
			order:  Descending,
			data:   [][]int{{9, 8, 7}, {6}},
			pos:    1,
			expect: [][]int{{9, 8, 7, 6}},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			list := fromBuckets(tc.order, tc.data...)
			list.merge(tc.pos)
			assert.Equal(t, tc.expect, list.data)
			checkInvariants(t, list)
		})
	}
}

func TestRemove_DropsEmptyBucket(t *testing.T) {
	list := fromBuckets(Ascending, []int{1, 2}, []int{3}, []int{4, 5})
	list.shrink = func(int, int) bool { return false }
	removed, ok := list.Remove(3)
	require.True(t, ok)
	assert.Equal(t, 3, removed)
	assert.Equal(t, [][]int{{1, 2}, {4, 5}}, list.data)
	checkInvariants(t, list)
}

func TestRemove_RefreshesBoundary(t *testing.T) {
	list := fromBuckets(Ascending, []int{1, 2, 3}, []int{4, 5, 6})
	list.shrink = func(int, int) bool { return false }
	_, ok := list.Remove(3)
	require.True(t, ok)
	assert.Equal(t, []int{2, 6}, list.maxes)
	checkInvariants(t, list)

	desc := fromBuckets(Descending, []int{9, 8, 7}, []int{6, 5, 4})
	desc.shrink = func(int, int) bool { return false }
	_, ok = desc.Remove(6)
	require.True(t, ok)
	assert.Equal(t, []int{9, 5}, desc.maxes)
	checkInvariants(t, desc)
}

func TestRandomOperations(t *testing.T) {
	for _, order := range []Order{Ascending, Descending} {
		t.Run(order.String(), func(t *testing.T) {
			rnd := rand.New(rand.NewSource(int64(order)))
			list := New[int](order, WithBucketBand(4, 16))
			present := make(map[int]bool)
			for i := 0; i < 5000; i++ {
				value := rnd.Intn(1000) - 500
				if rnd.Intn(3) == 0 {
					_, ok := list.Remove(value)
					require.Equal(t, present[value], ok, "remove %d", value)
					delete(present, value)
				} else {
					_, err := list.Insert(value)
					if present[value] {
						require.True(t, IsAlreadyExists(err), "insert %d", value)
					} else {
						require.NoError(t, err, "insert %d", value)
					}
					present[value] = true
				}
				checkInvariants(t, list)
			}
			require.Equal(t, len(present), list.Len())
			for rank := 0; rank < list.Len(); rank++ {
				found, ok := list.Find(list.At(rank))
				require.True(t, ok)
				require.Equal(t, rank, found)
			}
		})
	}
}

func TestClear(t *testing.T) {
	list := New[int](Ascending, WithBucketBand(2, 8))
	for i := 0; i < 100; i++ {
		_, err := list.Insert(i)
		require.NoError(t, err)
	}
	list.Clear()
	checkInvariants(t, list)
	assert.Empty(t, list.data)
	assert.Empty(t, list.maxes)
	assert.Empty(t, list.index)
	rank, err := list.Insert(42)
	require.NoError(t, err)
	assert.Equal(t, 0, rank)
	checkInvariants(t, list)
}
