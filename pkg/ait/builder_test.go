package ait

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fivePairs is the canonical small corpus: values sorted ascending with
// their original document ids.
func fivePairs() []DocValue {
	return []DocValue{
		{DocID: 3, Value: 1.0},
		{DocID: 1, Value: 3.0},
		{DocID: 0, Value: 5.0},
		{DocID: 4, Value: 7.0},
		{DocID: 2, Value: 9.0},
	}
}

// randomPairs returns n pairs sorted ascending by value, with document
// ids 0..n-1 assigned before sorting.
func randomPairs(rng *rand.Rand, n int) []DocValue {
	pairs := make([]DocValue, n)
	for i := range pairs {
		pairs[i] = DocValue{DocID: uint32(i), Value: float64(rng.Intn(20000)) + rng.Float64()}
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Value < pairs[j].Value })
	return pairs
}

func TestBuildRejectsInvalidLeafSize(t *testing.T) {
	for _, leafSize := range []int{0, -1, -64} {
		_, err := Build(fivePairs(), leafSize, nil)
		require.Error(t, err, "leafSize=%d", leafSize)
	}
}

func TestBuildEmptyCorpus(t *testing.T) {
	tree, err := Build(nil, 64, nil)
	require.NoError(t, err)

	assert.Zero(t, tree.Len())
	global := tree.GlobalSummary()
	assert.Equal(t, math.MaxFloat64, global.Min)
	assert.Equal(t, -math.MaxFloat64, global.Max)
	assert.Zero(t, global.Sum)
	assert.Zero(t, global.Count)
}

func TestBuildArenaLayout(t *testing.T) {
	tree, err := Build(fivePairs(), 2, nil)
	require.NoError(t, err)

	// Root occupies slot 0 and splits at mid = 2: ranks [0,2) / [2,5).
	root, ok := tree.nodes[0].(*internalNode)
	require.True(t, ok, "root must be internal for 5 values at leafSize 2")
	assert.Equal(t, 2, countOf(tree.nodes[root.left]))
	assert.Equal(t, 3, countOf(tree.nodes[root.right]))
	assert.Equal(t, 5.0, root.split)

	// Child references stay inside the arena and behind their parent,
	// which is what the placeholder-reservation protocol guarantees.
	for i, n := range tree.nodes {
		if in, ok := n.(*internalNode); ok {
			require.Greater(t, in.left, i)
			require.Greater(t, in.right, in.left)
			require.Less(t, in.right, len(tree.nodes))
			assert.Equal(t, Combine(summaryOf(tree.nodes[in.left]), summaryOf(tree.nodes[in.right])), in.agg)
		}
	}
}

func TestBuildConservation(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, n := range []int{1, 2, 63, 64, 65, 1000} {
		pairs := randomPairs(rng, n)
		tree, err := Build(pairs, 64, nil)
		require.NoError(t, err)

		leafTotal := 0
		for _, nd := range tree.nodes {
			if leaf, ok := nd.(*leafNode); ok {
				leafTotal += len(leaf.values)
				require.Equal(t, len(leaf.docIDs), len(leaf.values))
			}
		}
		assert.Equal(t, n, leafTotal, "n=%d", n)
		assert.Equal(t, uint32(n), tree.GlobalSummary().Count, "n=%d", n)
	}
}

func TestLeavesAreContiguousSortedRanges(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	pairs := randomPairs(rng, 500)
	tree, err := Build(pairs, 8, nil)
	require.NoError(t, err)

	// In-order traversal of the leaves must reproduce the sorted input
	// exactly, values and ids alike.
	var gotIDs []uint32
	var gotValues []float64
	var walk func(int)
	walk = func(idx int) {
		switch n := tree.nodes[idx].(type) {
		case *internalNode:
			walk(n.left)
			walk(n.right)
		case *leafNode:
			gotIDs = append(gotIDs, n.docIDs...)
			gotValues = append(gotValues, n.values...)
		}
	}
	walk(0)

	require.Len(t, gotValues, len(pairs))
	for i, p := range pairs {
		assert.Equal(t, p.DocID, gotIDs[i])
		assert.Equal(t, p.Value, gotValues[i])
	}
}

func TestPositionRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	pairs := randomPairs(rng, 777)
	tree, err := Build(pairs, 16, nil)
	require.NoError(t, err)

	for rank := 0; rank < tree.Len(); rank++ {
		require.Equal(t, pairs[rank].Value, tree.LookupValue(rank), "rank %d", rank)
	}
}

func TestFallbackDescentMatchesPositionMap(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	pairs := randomPairs(rng, 300)
	tree, err := Build(pairs, 4, nil)
	require.NoError(t, err)

	// The defensive descent must agree with the map even though a
	// correctly built tree never needs it.
	for rank := 0; rank < tree.Len(); rank++ {
		require.Equal(t, tree.LookupValue(rank), tree.findValueRecursive(0, rank), "rank %d", rank)
	}
}

func TestIDRankMapping(t *testing.T) {
	tree, err := Build(fivePairs(), 2, nil)
	require.NoError(t, err)

	want := map[uint32]int{3: 0, 1: 1, 0: 2, 4: 3, 2: 4}
	assert.Equal(t, want, tree.docIDRank)
}
