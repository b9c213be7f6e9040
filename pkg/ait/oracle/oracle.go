// Package oracle provides the flat-column baseline the index is verified
// against. It holds the same values in document-id order and answers the
// same queries by linear scan, so any divergence from the tree (beyond
// float tolerance on sums) is a defect in the index, not here.
package oracle

import (
	"unsafe"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/CVDpl/go-ait/pkg/ait"
)

// ColumnStore is a flat, document-id-ordered value column.
type ColumnStore struct {
	values []float64
}

// New wraps a document-id-ordered value column. values[i] belongs to
// document id i.
func New(values []float64) *ColumnStore {
	return &ColumnStore{values: values}
}

// Len returns the number of stored values.
func (c *ColumnStore) Len() int { return len(c.values) }

// GlobalSummary folds the whole column.
func (c *ColumnStore) GlobalSummary() ait.Summary {
	result := ait.EmptySummary()
	for _, v := range c.values {
		result = ait.Combine(result, ait.Summary{Min: v, Max: v, Sum: v, Count: 1})
	}
	return result
}

// FilteredSummary folds the values whose document id is in the filter,
// by linear scan with a membership test.
func (c *ColumnStore) FilteredSummary(filter *roaring.Bitmap) ait.Summary {
	result := ait.EmptySummary()
	if filter == nil {
		return result
	}
	for docID, v := range c.values {
		if filter.Contains(uint32(docID)) {
			result = ait.Combine(result, ait.Summary{Min: v, Max: v, Sum: v, Count: 1})
		}
	}
	return result
}

// MemoryUsage estimates the resident bytes of the column.
func (c *ColumnStore) MemoryUsage() uint64 {
	return uint64(unsafe.Sizeof(*c)) + uint64(cap(c.values))*uint64(unsafe.Sizeof(float64(0)))
}
