package ait

// RangeSummary aggregates the values at ranks [startRank, endRank], both
// inclusive. Whenever a subtree lies fully inside the range its
// precomputed summary is consumed without visiting its leaves, giving
// O(log n + overlap/leafSize) cost instead of O(range length).
//
// The range is independent of the bitmap filter path; it is a capability
// of the index over contiguous rank intervals.
func (t *Tree) RangeSummary(startRank, endRank int) Summary {
	result := EmptySummary()
	if len(t.nodes) == 0 || t.Len() == 0 || startRank > endRank || endRank < 0 || startRank >= t.Len() {
		return result
	}
	t.rangeRecursive(&result, 0, startRank, endRank)
	return result
}

// rangeRecursive accumulates the overlap of [startRank, endRank] with the
// subtree at nodeIdx. Ranks are relative to the subtree: descending right
// translates them by the left child's count.
func (t *Tree) rangeRecursive(result *Summary, nodeIdx, startRank, endRank int) {
	switch n := t.nodes[nodeIdx].(type) {
	case *internalNode:
		leftCount := countOf(t.nodes[n.left])
		rightCount := countOf(t.nodes[n.right])
		leftEnd := leftCount - 1
		rightStart := leftCount
		rightEnd := rightStart + rightCount - 1

		// Whole subtree covered: its summary is the answer for this
		// branch.
		if startRank <= 0 && endRank >= rightEnd {
			*result = Combine(*result, n.agg)
			return
		}

		if startRank <= leftEnd && endRank >= 0 {
			lo := max(startRank, 0)
			hi := min(endRank, leftEnd)
			if lo == 0 && hi == leftEnd {
				*result = Combine(*result, summaryOf(t.nodes[n.left]))
			} else {
				t.rangeRecursive(result, n.left, lo, hi)
			}
		}

		if startRank <= rightEnd && endRank >= rightStart {
			lo := max(startRank, rightStart)
			hi := min(endRank, rightEnd)
			if lo == rightStart && hi == rightEnd {
				*result = Combine(*result, summaryOf(t.nodes[n.right]))
			} else {
				t.rangeRecursive(result, n.right, lo-rightStart, hi-rightStart)
			}
		}

	case *leafNode:
		hi := min(endRank, len(n.values)-1)
		for i := max(startRank, 0); i <= hi; i++ {
			result.add(n.values[i])
		}
	}
}
