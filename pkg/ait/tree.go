package ait

import "time"

// location resolves a sorted rank to its leaf slot without descending the
// tree.
type location struct {
	nodeIdx int
	offset  int
}

// Tree is the built index: the node arena plus the two derived lookup
// structures. All fields are immutable after Build, so a Tree may be
// shared across concurrent readers without synchronization.
type Tree struct {
	nodes     []node
	docIDRank map[uint32]int
	positions []location
	opts      Options
}

// Len returns the number of indexed documents.
func (t *Tree) Len() int { return len(t.positions) }

// GlobalSummary returns the aggregate over the whole corpus in O(1).
func (t *Tree) GlobalSummary() Summary {
	start := time.Now()
	s := t.rootSummary()
	t.opts.Stats.RecordQuery(StrategyGlobal, time.Since(start))
	return s
}

// rootSummary is GlobalSummary without stats recording, for use inside
// other query paths.
func (t *Tree) rootSummary() Summary {
	if len(t.nodes) == 0 {
		return EmptySummary()
	}
	return summaryOf(t.nodes[0])
}

// LookupValue returns the rank-th smallest indexed value.
//
// The position map makes this O(1). Ranks outside the map fall back to a
// counting descent from the root; on a correctly built tree that path is
// unreachable, so taking it is logged as a structural-integrity signal.
func (t *Tree) LookupValue(rank int) float64 {
	if rank >= 0 && rank < len(t.positions) {
		loc := t.positions[rank]
		if leaf, ok := t.nodes[loc.nodeIdx].(*leafNode); ok {
			return leaf.values[loc.offset]
		}
	}

	t.opts.Stats.RecordFallbackLookup()
	t.opts.Logger.Warn("position map miss, falling back to tree descent", "rank", rank)
	return t.findValueRecursive(0, rank)
}

// findValueRecursive descends from nodeIdx to the value at the given
// subtree-relative rank, steering by left-subtree counts.
func (t *Tree) findValueRecursive(nodeIdx, rank int) float64 {
	switch n := t.nodes[nodeIdx].(type) {
	case *internalNode:
		leftCount := countOf(t.nodes[n.left])
		if rank < leftCount {
			return t.findValueRecursive(n.left, rank)
		}
		return t.findValueRecursive(n.right, rank-leftCount)
	case *leafNode:
		return n.values[rank]
	}
	return 0
}
