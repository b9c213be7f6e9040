package ait

import (
	"github.com/CVDpl/go-ait/internal/common"
)

// DocValue pairs a document id with its numeric value.
type DocValue struct {
	DocID uint32
	Value float64
}

// Build constructs an immutable tree from pairs sorted ascending by value.
// Sorting is the caller's contract; use docgen.SortByValue or equivalent.
//
// leafSize is the maximum number of values per leaf and must be at least 1.
// An empty input yields a tree with a single empty leaf whose global
// summary is the identity.
func Build(pairs []DocValue, leafSize int, opts *Options) (*Tree, error) {
	if leafSize < 1 {
		return nil, common.ErrInvalidLeafSize
	}

	t := &Tree{
		docIDRank: make(map[uint32]int, len(pairs)),
		opts:      opts.normalized(),
	}

	// Rank of a document is its index in the sorted input.
	for i, p := range pairs {
		t.docIDRank[p.DocID] = i
	}

	// Root is always arena index 0.
	b := &builder{leafSize: leafSize}
	b.buildRecursive(pairs, 0, len(pairs))
	t.nodes = b.nodes

	// In-order traversal over the arena reconstructs the sorted rank
	// order, mapping each rank to its leaf slot.
	t.positions = make([]location, len(pairs))
	buildPositions(t.nodes, 0, t.positions, 0)

	t.opts.Logger.Debug("tree built",
		"documents", len(pairs),
		"nodes", len(t.nodes),
		"leafSize", leafSize,
	)

	return t, nil
}

type builder struct {
	nodes    []node
	leafSize int
}

// buildRecursive populates the arena in pre-order over the half-open range
// [start, end) and returns the arena index of the node it created.
//
// The slot for the current node is reserved by appending a placeholder
// before recursing; consumers that cache the current arena length as their
// own index depend on this exact protocol.
func (b *builder) buildRecursive(pairs []DocValue, start, end int) int {
	current := len(b.nodes)

	if end-start <= b.leafSize {
		leaf := &leafNode{
			docIDs: make([]uint32, 0, end-start),
			values: make([]float64, 0, end-start),
			agg:    EmptySummary(),
		}
		for i := start; i < end; i++ {
			leaf.docIDs = append(leaf.docIDs, pairs[i].DocID)
			leaf.values = append(leaf.values, pairs[i].Value)
			leaf.agg.add(pairs[i].Value)
		}
		b.nodes = append(b.nodes, leaf)
		return current
	}

	mid := start + (end-start)/2

	// Reserve this node's slot before the children claim theirs.
	b.nodes = append(b.nodes, &leafNode{agg: EmptySummary()})

	left := b.buildRecursive(pairs, start, mid)
	right := b.buildRecursive(pairs, mid, end)

	b.nodes[current] = &internalNode{
		split: pairs[mid].Value,
		left:  left,
		right: right,
		agg:   Combine(summaryOf(b.nodes[left]), summaryOf(b.nodes[right])),
	}
	return current
}

// buildPositions assigns consecutive ranks, starting at startPos, to every
// leaf entry reachable from nodeIdx in in-order and returns how many ranks
// it consumed.
func buildPositions(nodes []node, nodeIdx int, positions []location, startPos int) int {
	switch n := nodes[nodeIdx].(type) {
	case *internalNode:
		leftSize := buildPositions(nodes, n.left, positions, startPos)
		rightSize := buildPositions(nodes, n.right, positions, startPos+leftSize)
		return leftSize + rightSize
	case *leafNode:
		for i := range n.values {
			positions[startPos+i] = location{nodeIdx: nodeIdx, offset: i}
		}
		return len(n.values)
	}
	return 0
}
