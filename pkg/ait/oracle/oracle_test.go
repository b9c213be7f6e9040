package oracle

import (
	"testing"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnStoreGlobal(t *testing.T) {
	store := New([]float64{5.0, 3.0, 9.0, 1.0, 7.0})

	got := store.GlobalSummary()
	assert.Equal(t, 1.0, got.Min)
	assert.Equal(t, 9.0, got.Max)
	assert.InDelta(t, 25.0, got.Sum, 1e-9)
	assert.Equal(t, uint32(5), got.Count)
}

func TestColumnStoreGlobalEmpty(t *testing.T) {
	store := New(nil)
	assert.True(t, store.GlobalSummary().IsEmpty())
	assert.Zero(t, store.Len())
}

func TestColumnStoreFiltered(t *testing.T) {
	store := New([]float64{5.0, 3.0, 9.0, 1.0, 7.0})

	got := store.FilteredSummary(roaring.BitmapOf(0, 2, 4))
	assert.Equal(t, 5.0, got.Min)
	assert.Equal(t, 9.0, got.Max)
	assert.InDelta(t, 21.0, got.Sum, 1e-9)
	assert.Equal(t, uint32(3), got.Count)

	assert.True(t, store.FilteredSummary(roaring.New()).IsEmpty())
	assert.True(t, store.FilteredSummary(nil).IsEmpty())

	// Ids outside the column contribute nothing.
	outside := store.FilteredSummary(roaring.BitmapOf(999))
	assert.True(t, outside.IsEmpty())
}

func TestColumnStoreMemoryUsage(t *testing.T) {
	small := New(make([]float64, 10))
	large := New(make([]float64, 1000))
	require.Greater(t, large.MemoryUsage(), small.MemoryUsage())
}
