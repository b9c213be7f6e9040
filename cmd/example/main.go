// Minimal walkthrough of the ait library: build a tree over a handful of
// documents, then run global, filtered and range aggregations.
package main

import (
	"fmt"
	"os"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/CVDpl/go-ait/pkg/ait"
)

func main() {
	// (docID, value) pairs, already sorted ascending by value.
	pairs := []ait.DocValue{
		{DocID: 3, Value: 1.0},
		{DocID: 1, Value: 3.0},
		{DocID: 0, Value: 5.0},
		{DocID: 4, Value: 7.0},
		{DocID: 2, Value: 9.0},
	}

	tree, err := ait.Build(pairs, 2, nil)
	if err != nil {
		fmt.Printf("Failed to build tree: %v\n", err)
		os.Exit(1)
	}

	global := tree.GlobalSummary()
	fmt.Printf("Global: min=%g max=%g sum=%g count=%d avg=%g\n",
		global.Min, global.Max, global.Sum, global.Count, global.Avg())

	// Aggregate documents 0, 2 and 4 only.
	filter := roaring.BitmapOf(0, 2, 4)
	filtered := tree.FilteredSummary(filter)
	fmt.Printf("Filtered {0,2,4}: min=%g max=%g sum=%g count=%d\n",
		filtered.Min, filtered.Max, filtered.Sum, filtered.Count)

	// Aggregate the three smallest values by rank.
	byRank := tree.RangeSummary(0, 2)
	fmt.Printf("Ranks [0,2]: min=%g max=%g sum=%g count=%d\n",
		byRank.Min, byRank.Max, byRank.Sum, byRank.Count)

	// The fifth smallest value.
	fmt.Printf("Value at rank 4: %g\n", tree.LookupValue(4))
}
