// Package ait implements an Aggregation Index Tree: a static binary tree
// over a value-sorted numeric column with precomputed per-subtree
// min/max/sum/count summaries. The tree is built once, is immutable
// afterwards, and serves global, filtered (bitmap) and contiguous-range
// aggregations; filtered queries pick among sequential, parallel and
// complement-based strategies depending on filter shape.
package ait

import "math"

// Summary holds the aggregate statistics of a multiset of values.
//
// The zero-count summary is the identity element: combining it with any
// summary yields the other summary unchanged, which makes Combine a
// commutative, associative monoid operation.
type Summary struct {
	Min   float64
	Max   float64
	Sum   float64
	Count uint32
}

// EmptySummary returns the identity summary.
func EmptySummary() Summary {
	return Summary{
		Min: math.MaxFloat64,
		Max: -math.MaxFloat64,
	}
}

// IsEmpty reports whether the summary describes no values.
func (s Summary) IsEmpty() bool { return s.Count == 0 }

// Avg returns the mean of the summarized values, or 0 for an empty summary.
func (s Summary) Avg() float64 {
	if s.Count == 0 {
		return 0
	}
	return s.Sum / float64(s.Count)
}

// Combine merges two summaries. The result describes the union of the two
// underlying multisets.
func Combine(a, b Summary) Summary {
	if a.Count == 0 {
		return b
	}
	if b.Count == 0 {
		return a
	}
	return Summary{
		Min:   math.Min(a.Min, b.Min),
		Max:   math.Max(a.Max, b.Max),
		Sum:   a.Sum + b.Sum,
		Count: a.Count + b.Count,
	}
}

// add folds a single value into the summary.
func (s *Summary) add(v float64) {
	if s.Count == 0 {
		s.Min = v
		s.Max = v
	} else {
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
	}
	s.Sum += v
	s.Count++
}
