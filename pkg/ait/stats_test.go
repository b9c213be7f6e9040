package ait

import (
	"testing"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsCollectorNilSafe(t *testing.T) {
	var sc *StatsCollector
	sc.RecordQuery(StrategyGlobal, time.Millisecond)
	sc.RecordFallbackLookup()
	sc.RecordDroppedIDs(3)
	assert.Equal(t, Stats{}, sc.Snapshot())
}

func TestStatsCountsStrategies(t *testing.T) {
	sc := NewStatsCollector()
	opts := DefaultOptions()
	opts.Stats = sc

	tree, err := Build(fivePairs(), 2, opts)
	require.NoError(t, err)

	tree.GlobalSummary()
	tree.FilteredSummary(roaring.New())                   // empty
	tree.FilteredSummary(roaring.BitmapOf(0, 1, 2, 3, 4)) // full
	tree.FilteredSummary(roaring.BitmapOf(0, 2))          // sequential
	tree.FilteredSummary(roaring.BitmapOf(0, 1, 2, 4))    // 80% exactly: still sequential
	tree.FilteredSummary(roaring.BitmapOf(999))           // sequential, all ids dropped

	snap := sc.Snapshot()
	assert.Equal(t, uint64(1), snap.GlobalQueries)
	assert.Equal(t, uint64(1), snap.EmptyShortcuts)
	assert.Equal(t, uint64(1), snap.FullShortcuts)
	assert.Equal(t, uint64(3), snap.SequentialQueries)
	assert.Zero(t, snap.ParallelQueries)
	assert.Zero(t, snap.ComplementQueries)
	assert.Equal(t, uint64(1), snap.DroppedIDs)
	assert.Zero(t, snap.FallbackLookups)
}

func TestStrategyString(t *testing.T) {
	assert.Equal(t, "global", StrategyGlobal.String())
	assert.Equal(t, "complement", StrategyComplement.String())
	assert.Equal(t, "unknown", Strategy(42).String())
}
