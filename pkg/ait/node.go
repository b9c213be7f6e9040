package ait

// node is the tagged union stored in the tree arena. Exactly two variants
// exist and every consumer type-switches over both.
type node interface {
	isNode()
}

// internalNode references its children by arena index, never by pointer.
// split records the value at the partition midpoint; traversal is steered
// by subtree counts, so split is diagnostic only.
type internalNode struct {
	split float64
	left  int
	right int
	agg   Summary
}

// leafNode stores a contiguous slice of the value-sorted column together
// with the document ids that own those values; docIDs[i] pairs with
// values[i].
type leafNode struct {
	docIDs []uint32
	values []float64
	agg    Summary
}

func (*internalNode) isNode() {}
func (*leafNode) isNode()     {}

// summaryOf extracts the precomputed summary of either variant.
func summaryOf(n node) Summary {
	switch n := n.(type) {
	case *internalNode:
		return n.agg
	case *leafNode:
		return n.agg
	}
	return EmptySummary()
}

// countOf returns the number of values reachable under n.
func countOf(n node) int {
	switch n := n.(type) {
	case *internalNode:
		return int(n.agg.Count)
	case *leafNode:
		return len(n.values)
	}
	return 0
}
