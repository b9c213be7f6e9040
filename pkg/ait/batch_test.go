package ait

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/CVDpl/go-ait/internal/common"
)

// TestProcessBatchBranchEquivalence crosses the direct/micro-batch
// boundary and checks both branches against a plain fold.
func TestProcessBatchBranchEquivalence(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	pairs := randomPairs(rng, 400)
	tree, err := Build(pairs, 8, nil)
	require.NoError(t, err)

	sizes := []int{
		1, 2,
		common.DirectBatchThreshold - 1,
		common.DirectBatchThreshold,
		common.DirectBatchThreshold + 1,
		common.MicroBatchSize * 5,
		tree.Len(),
	}

	for _, size := range sizes {
		ranks := make([]int, size)
		for i := range ranks {
			ranks[i] = i
		}

		want := EmptySummary()
		for _, rank := range ranks {
			want.add(pairs[rank].Value)
		}

		got := EmptySummary()
		tree.processBatch(&got, ranks)

		require.Equal(t, want.Count, got.Count, "size %d", size)
		require.Equal(t, want.Min, got.Min, "size %d", size)
		require.Equal(t, want.Max, got.Max, "size %d", size)
		require.InDelta(t, want.Sum, got.Sum, 1e-9, "size %d", size)
	}
}

// TestProcessBatchIntoNonEmptySummary checks that both branches merge
// correctly into a running summary that already holds values.
func TestProcessBatchIntoNonEmptySummary(t *testing.T) {
	rng := rand.New(rand.NewSource(22))
	pairs := randomPairs(rng, 200)
	tree, err := Build(pairs, 8, nil)
	require.NoError(t, err)

	for _, size := range []int{5, 100} {
		ranks := make([]int, size)
		for i := range ranks {
			ranks[i] = tree.Len() - 1 - i
		}

		seed := summaryOfValues(42.0)
		want := seed
		for _, rank := range ranks {
			want.add(pairs[rank].Value)
		}

		got := seed
		tree.processBatch(&got, ranks)

		require.Equal(t, want.Count, got.Count, "size %d", size)
		require.Equal(t, want.Min, got.Min, "size %d", size)
		require.Equal(t, want.Max, got.Max, "size %d", size)
		require.InDelta(t, want.Sum, got.Sum, 1e-9, "size %d", size)
	}
}
