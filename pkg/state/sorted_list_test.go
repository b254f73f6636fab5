package state

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ranked struct {
	Rank int    `json:"rank"`
	ID   string `json:"id"`
}

func (r ranked) Compare(other ranked) int {
	return r.Rank - other.Rank
}

func assertDescending(t *testing.T, l SortedList[ranked]) {
	t.Helper()
	items := l.Items()
	for i := 1; i < len(items); i++ {
		require.GreaterOrEqual(t, items[i-1].Rank, items[i].Rank, "items out of order: %v", items)
	}
}

func TestNewSortedListSortsDescending(t *testing.T) {
	l := NewSortedList([]ranked{{1, "a"}, {3, "b"}, {2, "c"}, {3, "d"}})

	assert.Equal(t, []ranked{{3, "b"}, {3, "d"}, {2, "c"}, {1, "a"}}, l.Items())
}

func TestSortedListInsert(t *testing.T) {
	tests := []struct {
		name  string
		items []ranked
		value ranked
		want  int
	}{
		{"empty", nil, ranked{1, "x"}, 0},
		{"greatest goes first", []ranked{{2, "a"}, {1, "b"}}, ranked{5, "x"}, 0},
		{"lowest goes last", []ranked{{2, "a"}, {1, "b"}}, ranked{0, "x"}, 2},
		{"middle", []ranked{{3, "a"}, {1, "b"}}, ranked{2, "x"}, 1},
		{"after equal elements", []ranked{{2, "a"}, {2, "b"}, {1, "c"}}, ranked{2, "x"}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewSortedList(tt.items)
			got := l.Insert(tt.value)
			assert.Equal(t, tt.want, got)
			v, ok := l.At(got)
			require.True(t, ok)
			assert.Equal(t, tt.value, v)
			assertDescending(t, l)
		})
	}
}

func TestSortedListStableTies(t *testing.T) {
	var l SortedList[ranked]
	l.Insert(ranked{1, "first"})
	l.Insert(ranked{1, "second"})
	l.Insert(ranked{2, "top"})
	l.Insert(ranked{1, "third"})

	assert.Equal(t, []ranked{{2, "top"}, {1, "first"}, {1, "second"}, {1, "third"}}, l.Items())
}

func TestSortedListStaysSorted(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	var l SortedList[ranked]

	for i := 0; i < 500; i++ {
		if l.Len() > 0 && rng.Intn(3) == 0 {
			_, err := l.ReplaceAt(rng.Intn(l.Len()), func(r ranked) ranked {
				r.Rank = rng.Intn(10)
				return r
			})
			require.NoError(t, err)
		} else {
			l.Insert(ranked{Rank: rng.Intn(10)})
		}
		assertDescending(t, l)
	}
}

func TestSortedListReplaceAtMatchesInsert(t *testing.T) {
	items := []ranked{{5, "a"}, {4, "b"}, {4, "c"}, {2, "d"}, {1, "e"}}
	transform := func(r ranked) ranked {
		r.Rank = 4
		return r
	}

	for idx := range items {
		replaced := NewSortedList(items)
		got, err := replaced.ReplaceAt(idx, transform)
		require.NoError(t, err)

		manual := NewSortedList(items)
		value, err := manual.Remove(idx)
		require.NoError(t, err)
		want := manual.Insert(transform(value))

		assert.Equal(t, want, got, "index %d", idx)
		assert.Equal(t, manual.Items(), replaced.Items())
	}
}

func TestSortedListOutOfRange(t *testing.T) {
	l := NewSortedList([]ranked{{1, "a"}})

	_, err := l.Remove(1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = l.Remove(-1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = l.ReplaceAt(3, func(r ranked) ranked { return r })
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	assert.ErrorIs(t, l.Set(2, ranked{1, "b"}), ErrIndexOutOfRange)

	_, ok := l.At(1)
	assert.False(t, ok)
	assert.Equal(t, 1, l.Len())
}

func TestSortedListSet(t *testing.T) {
	l := NewSortedList([]ranked{{2, "a"}, {1, "b"}})

	require.NoError(t, l.Set(1, ranked{1, "renamed"}))
	assert.Equal(t, []ranked{{2, "a"}, {1, "renamed"}}, l.Items())

	assert.ErrorIs(t, l.Set(1, ranked{3, "b"}), ErrOrderChanged)
}

func TestSortedListJSON(t *testing.T) {
	var empty SortedList[ranked]
	data, err := json.Marshal(empty)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))

	var l SortedList[ranked]
	require.NoError(t, json.Unmarshal([]byte(`[{"rank":1,"id":"a"},{"rank":3,"id":"b"}]`), &l))
	assert.Equal(t, []ranked{{3, "b"}, {1, "a"}}, l.Items())
}
