package ait

import (
	"math"

	"github.com/CVDpl/go-ait/internal/common"
)

// processBatch folds a batch of sorted ranks into the running summary.
//
// Small batches accumulate element-wise. Larger batches accumulate into
// local variables in cache-sized micro-chunks and merge into the running
// summary once, keeping the hot loop free of writes to shared state. Both
// branches compute the same aggregate; the split is purely throughput.
func (t *Tree) processBatch(result *Summary, ranks []int) {
	if len(ranks) < common.DirectBatchThreshold {
		for _, rank := range ranks {
			result.add(t.LookupValue(rank))
		}
		return
	}

	minVal := math.MaxFloat64
	maxVal := -math.MaxFloat64
	sum := 0.0
	count := uint32(0)

	for len(ranks) > 0 {
		n := min(len(ranks), common.MicroBatchSize)
		for _, rank := range ranks[:n] {
			v := t.LookupValue(rank)
			minVal = math.Min(minVal, v)
			maxVal = math.Max(maxVal, v)
			sum += v
			count++
		}
		ranks = ranks[n:]
	}

	if count > 0 {
		*result = Combine(*result, Summary{Min: minVal, Max: maxVal, Sum: sum, Count: count})
	}
}
