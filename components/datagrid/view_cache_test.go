package datagrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLRUViewCacheEvicts(t *testing.T) {
	cache := NewLRUViewCache(2)
	computed := 0
	compute := func() View {
		computed++
		return View{ColSpan: computed}
	}

	assert.Equal(t, 1, cache.GetOrCompute("a", compute).ColSpan)
	assert.Equal(t, 1, cache.GetOrCompute("a", compute).ColSpan)
	cache.GetOrCompute("b", compute)
	cache.GetOrCompute("c", compute)
	assert.Equal(t, 2, cache.Len())

	assert.Equal(t, 4, cache.GetOrCompute("a", compute).ColSpan, "a was evicted")
}

func TestNilLRUViewCacheComputes(t *testing.T) {
	var cache *LRUViewCache
	assert.Equal(t, 7, cache.GetOrCompute("k", func() View { return View{ColSpan: 7} }).ColSpan)
	assert.Zero(t, cache.Len())
}

func TestInputHashTracksMutableState(t *testing.T) {
	base := Input{Columns: channelColumns, Page: PageState{Current: 1, Size: 5}}
	same := base
	same.Rows = channelRows()
	assert.Equal(t, inputHash(base), inputHash(same), "rows are fixed per grid")

	searched := base
	searched.Search = "x"
	assert.NotEqual(t, inputHash(base), inputHash(searched))

	hidden := base
	hidden.Visibility = NewVisibilityState(channelColumns).Toggle("users")
	assert.NotEqual(t, inputHash(base), inputHash(hidden))

	sorted := base
	sorted.Sort = SortState{ColumnID: "users", Direction: Asc}
	assert.NotEqual(t, inputHash(base), inputHash(sorted))
}
