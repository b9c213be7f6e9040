package ait_test

import (
	"math/rand"
	"testing"

	"github.com/CVDpl/go-ait/pkg/ait"
	"github.com/CVDpl/go-ait/pkg/ait/docgen"
	"github.com/CVDpl/go-ait/pkg/ait/oracle"
)

func benchmarkCorpus(b *testing.B, numDocs int) (*ait.Tree, *oracle.ColumnStore) {
	b.Helper()

	docs := docgen.Generate(numDocs, 1)
	pairs := docgen.ExtractPayloadSizes(docs)
	column := docgen.ValueColumn(docs)
	docgen.SortByValue(pairs)

	tree, err := ait.Build(pairs, 64, nil)
	if err != nil {
		b.Fatalf("Failed to build tree: %v", err)
	}
	return tree, oracle.New(column)
}

func BenchmarkGlobalSummary(b *testing.B) {
	tree, _ := benchmarkCorpus(b, 100_000)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = tree.GlobalSummary()
	}
}

func BenchmarkGlobalSummaryBaseline(b *testing.B) {
	_, baseline := benchmarkCorpus(b, 100_000)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = baseline.GlobalSummary()
	}
}

func BenchmarkFilteredSummarySparse(b *testing.B) {
	tree, _ := benchmarkCorpus(b, 100_000)
	rng := rand.New(rand.NewSource(2))
	filter, err := docgen.RandomFilter(rng, 100_000, 1)
	if err != nil {
		b.Fatalf("Failed to build filter: %v", err)
	}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = tree.FilteredSummary(filter)
	}
}

func BenchmarkFilteredSummaryParallel(b *testing.B) {
	tree, _ := benchmarkCorpus(b, 100_000)
	rng := rand.New(rand.NewSource(3))
	filter, err := docgen.RandomFilter(rng, 100_000, 50)
	if err != nil {
		b.Fatalf("Failed to build filter: %v", err)
	}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = tree.FilteredSummary(filter)
	}
}

func BenchmarkFilteredSummaryBaseline(b *testing.B) {
	_, baseline := benchmarkCorpus(b, 100_000)
	rng := rand.New(rand.NewSource(4))
	filter, err := docgen.RandomFilter(rng, 100_000, 50)
	if err != nil {
		b.Fatalf("Failed to build filter: %v", err)
	}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = baseline.FilteredSummary(filter)
	}
}

func BenchmarkBuild(b *testing.B) {
	docs := docgen.Generate(100_000, 5)
	pairs := docgen.ExtractPayloadSizes(docs)
	docgen.SortByValue(pairs)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := ait.Build(pairs, 64, nil); err != nil {
			b.Fatalf("Failed to build tree: %v", err)
		}
	}
}
