package ait

import (
	"sort"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/sync/errgroup"

	"github.com/CVDpl/go-ait/internal/common"
)

// FilteredSummary aggregates the values of the documents named by the
// filter bitmap. Ids not present in the index contribute nothing and are
// not an error.
//
// Strategy selection, in order: empty filter and empty index short-circuit
// to the identity; a filter covering the whole corpus returns the global
// summary; a dense filter (above common.DenseFilterPercent of the corpus)
// is answered through its complement; small filters run sequentially and
// everything else runs on parallel workers. All strategies agree up to
// floating-point reassociation of the sum, except the documented dense-path
// min/max shortcut (see FilteredSummary's complement handling).
func (t *Tree) FilteredSummary(filter *roaring.Bitmap) Summary {
	start := time.Now()

	if t.Len() == 0 || filter == nil || filter.IsEmpty() {
		t.opts.Stats.RecordQuery(StrategyEmpty, time.Since(start))
		return EmptySummary()
	}

	global := t.rootSummary()
	card := filter.GetCardinality()

	// Filter covering every document: the root summary already is the
	// answer.
	if card == uint64(global.Count) {
		t.opts.Stats.RecordQuery(StrategyFull, time.Since(start))
		return global
	}

	if card > uint64(global.Count)*common.DenseFilterPercent/100 {
		result := t.complementSummary(filter, global)
		t.opts.Stats.RecordQuery(StrategyComplement, time.Since(start))
		return result
	}

	ranks := t.sortedRanks(filter)
	if card < common.SequentialMaxFilter {
		result := t.sequentialFromRanks(ranks)
		t.opts.Stats.RecordQuery(StrategySequential, time.Since(start))
		return result
	}

	result := t.parallelFromRanks(ranks)
	t.opts.Stats.RecordQuery(StrategyParallel, time.Since(start))
	return result
}

// complementSummary answers a dense filter by aggregating the documents it
// excludes and subtracting them from the global summary.
//
// Min and Max are returned as the global min/max unchanged. That is only
// correct when the excluded documents do not contain the global extremes;
// the behavior is deliberate and matched by a dedicated test rather than
// being recomputed over the retained subset.
func (t *Tree) complementSummary(filter *roaring.Bitmap, global Summary) Summary {
	complement := roaring.New()
	for i := uint32(0); i < global.Count; i++ {
		if !filter.Contains(i) {
			complement.Add(i)
		}
	}

	if complement.IsEmpty() {
		return global
	}

	ranks := t.sortedRanks(complement)
	var excluded Summary
	if complement.GetCardinality() < common.SequentialMaxFilter {
		excluded = t.sequentialFromRanks(ranks)
	} else {
		excluded = t.parallelFromRanks(ranks)
	}

	return Summary{
		Min:   global.Min,
		Max:   global.Max,
		Sum:   global.Sum - excluded.Sum,
		Count: global.Count - excluded.Count,
	}
}

// sortedRanks translates filter ids to sorted ranks, dropping ids the
// index has never seen, and sorts the ranks ascending for cache locality
// in the lookups that follow.
func (t *Tree) sortedRanks(filter *roaring.Bitmap) []int {
	ranks := make([]int, 0, filter.GetCardinality())
	dropped := 0

	it := filter.Iterator()
	for it.HasNext() {
		if rank, ok := t.docIDRank[it.Next()]; ok {
			ranks = append(ranks, rank)
		} else {
			dropped++
		}
	}
	if dropped > 0 {
		t.opts.Stats.RecordDroppedIDs(dropped)
		t.opts.Logger.Debug("filter ids not present in index", "dropped", dropped)
	}

	sort.Ints(ranks)
	return ranks
}

// sequentialFromRanks folds sorted ranks into one summary in fixed-size
// batches.
func (t *Tree) sequentialFromRanks(ranks []int) Summary {
	result := EmptySummary()
	for len(ranks) > 0 {
		n := min(len(ranks), common.RankBatchSize)
		t.processBatch(&result, ranks[:n])
		ranks = ranks[n:]
	}
	return result
}

// parallelFromRanks partitions sorted ranks into fixed chunks and folds
// each chunk on its own worker. Workers share the immutable tree and own
// their local summary exclusively; the final combine is the only
// synchronization point, and the monoid laws make its order irrelevant.
func (t *Tree) parallelFromRanks(ranks []int) Summary {
	if len(ranks) == 0 {
		return EmptySummary()
	}

	numChunks := (len(ranks) + common.ParallelChunkSize - 1) / common.ParallelChunkSize
	locals := make([]Summary, numChunks)

	var g errgroup.Group
	g.SetLimit(t.opts.Parallelism)
	for i := 0; i < numChunks; i++ {
		i := i
		lo := i * common.ParallelChunkSize
		hi := min(lo+common.ParallelChunkSize, len(ranks))
		g.Go(func() error {
			locals[i] = t.sequentialFromRanks(ranks[lo:hi])
			return nil
		})
	}
	// Workers are pure CPU folds and never fail.
	_ = g.Wait()

	result := EmptySummary()
	for _, local := range locals {
		result = Combine(result, local)
	}
	return result
}
