// aitbench builds an Aggregation Index Tree over a synthetic log corpus,
// cross-checks every query against the flat-column baseline, and reports
// timing and memory for both.
package main

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"

	"github.com/CVDpl/go-ait/internal/common"
	"github.com/CVDpl/go-ait/pkg/ait"
	"github.com/CVDpl/go-ait/pkg/ait/docgen"
	"github.com/CVDpl/go-ait/pkg/ait/monitoring"
	"github.com/CVDpl/go-ait/pkg/ait/oracle"
)

// sumTolerance bounds acceptable float drift between the index and the
// baseline; count, min and max must match exactly.
const sumTolerance = 1e-3

type benchConfig struct {
	numDocs       int
	filterPercent int
	leafSize      int
	iterations    int
	seed          int64
	parallelism   int
	pprofAddr     string
	verbose       bool
}

func main() {
	cfg := benchConfig{}

	root := &cobra.Command{
		Use:   "aitbench",
		Short: "Benchmark the aggregation index tree against a flat column baseline",
		Long: "aitbench generates a synthetic document corpus, builds the aggregation " +
			"index tree and a flat baseline over the same value column, verifies that " +
			"both answer global and filtered aggregations identically, and reports " +
			"averaged query timings and memory usage.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(&cfg)
		},
	}

	flags := root.Flags()
	flags.IntVarP(&cfg.numDocs, "num-docs", "n", 10_000_000, "number of documents to generate")
	flags.IntVarP(&cfg.filterPercent, "filter-percentage", "f", 10, "percentage of documents in the filtered query (0-100)")
	flags.IntVarP(&cfg.leafSize, "leaf-size", "l", common.DefaultLeafSize, "maximum values per tree leaf")
	flags.IntVarP(&cfg.iterations, "iterations", "i", common.DefaultIterations, "times to run each query for averaging")
	flags.Int64Var(&cfg.seed, "seed", time.Now().UnixNano(), "RNG seed for corpus and filter generation")
	flags.IntVar(&cfg.parallelism, "parallelism", 0, "parallel query workers (0 = NumCPU)")
	flags.StringVar(&cfg.pprofAddr, "pprof-addr", "", "pprof listen address (also via AIT_PPROF_ADDR)")
	flags.BoolVarP(&cfg.verbose, "verbose", "v", false, "debug logging")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func (c *benchConfig) validate() error {
	if c.numDocs <= 0 {
		return common.ErrInvalidDocCount
	}
	if c.filterPercent < 0 || c.filterPercent > 100 {
		return common.ErrInvalidFilterPercent
	}
	if c.leafSize < 1 {
		return common.ErrInvalidLeafSize
	}
	if c.iterations <= 0 {
		return common.ErrInvalidIterations
	}
	return nil
}

func runBench(cfg *benchConfig) error {
	if err := cfg.validate(); err != nil {
		return err
	}

	logger := ait.NewDefaultLogger()
	if cfg.verbose {
		logger = ait.NewDefaultLoggerWithLevel(common.LogLevelDebug)
	}

	if addr := firstNonEmpty(cfg.pprofAddr, os.Getenv("AIT_PPROF_ADDR")); addr != "" {
		srv, err := monitoring.StartPprofServer(addr)
		if err != nil {
			logger.Warn("failed to start pprof server", "addr", addr, "error", err.Error())
		} else {
			logger.Info("pprof listening", "addr", addr)
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), time.Second)
				defer cancel()
				_ = monitoring.StopPprofServer(ctx, srv)
			}()
		}
	}

	bold := color.New(color.Bold)
	bold.Println("AIT Benchmark")
	bold.Println("=============")
	fmt.Printf("Configuration:\n")
	fmt.Printf("- Number of documents: %d\n", cfg.numDocs)
	fmt.Printf("- Filter percentage: %d%%\n", cfg.filterPercent)
	fmt.Printf("- Leaf size: %d\n", cfg.leafSize)
	fmt.Printf("- Iterations: %d\n", cfg.iterations)
	fmt.Printf("- Seed: %d\n", cfg.seed)
	fmt.Println()

	// Generate corpus.
	fmt.Printf("Generating %d random documents...\n", cfg.numDocs)
	start := time.Now()
	docs := docgen.Generate(cfg.numDocs, cfg.seed)
	fmt.Printf("Document generation time: %v\n", time.Since(start))

	// Extract the payload-size column.
	start = time.Now()
	pairs := docgen.ExtractPayloadSizes(docs)
	column := docgen.ValueColumn(docs)
	fmt.Printf("Value extraction time: %v\n", time.Since(start))
	logger.Info("value column extracted", "fingerprint", docgen.Fingerprint(column))

	// Sort for tree construction.
	start = time.Now()
	docgen.SortByValue(pairs)
	fmt.Printf("Value sorting time: %v\n", time.Since(start))

	// Build the tree.
	stats := ait.NewStatsCollector()
	opts := ait.DefaultOptions()
	opts.Logger = logger
	opts.Stats = stats
	opts.Parallelism = cfg.parallelism

	start = time.Now()
	tree, err := ait.Build(pairs, cfg.leafSize, opts)
	if err != nil {
		return fmt.Errorf("build index: %w", err)
	}
	buildTime := time.Since(start)
	fmt.Printf("AIT build time: %v\n", buildTime)

	// Build the flat baseline.
	start = time.Now()
	baseline := oracle.New(column)
	fmt.Printf("Baseline build time: %v\n", time.Since(start))

	docs = nil
	pairs = nil

	// Draw the filter.
	rng := rand.New(rand.NewSource(cfg.seed + 1))
	filter, err := docgen.RandomFilter(rng, cfg.numDocs, cfg.filterPercent)
	if err != nil {
		return err
	}

	// Memory report.
	treeBytes := tree.MemoryUsage()
	columnBytes := baseline.MemoryUsage()
	bold.Println("\nMemory Usage:")
	fmt.Printf("AIT: %d bytes (%.2f MB)\n", treeBytes, float64(treeBytes)/(1<<20))
	fmt.Printf("Columnar: %d bytes (%.2f MB)\n", columnBytes, float64(columnBytes)/(1<<20))
	fmt.Printf("Ratio: %.2fx\n", float64(treeBytes)/float64(columnBytes))
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err == nil {
		fmt.Printf("Process MaxRSS: %.2f MB\n", float64(ru.Maxrss)/1024)
	}

	// Global aggregations.
	bold.Println("\nBenchmarking global aggregations...")
	treeGlobal, err := timeQueries(cfg.iterations, func() ait.Summary { return tree.GlobalSummary() },
		func(s ait.Summary) error { return verify("global", s, baseline.GlobalSummary(), false) })
	if err != nil {
		return err
	}
	columnGlobal, _ := timeQueries(cfg.iterations, baseline.GlobalSummary, nil)
	printSummary("Global aggregation results", tree.GlobalSummary())

	// Filtered aggregations.
	bold.Printf("\nBenchmarking filtered aggregations (%d documents, %d%%)...\n",
		filter.GetCardinality(), cfg.filterPercent)
	// Above the dense threshold the complement path reports the global
	// min/max, so only sum and count are comparable against the baseline.
	dense := cfg.filterPercent > common.DenseFilterPercent
	treeFiltered, err := timeQueries(cfg.iterations, func() ait.Summary { return tree.FilteredSummary(filter) },
		func(s ait.Summary) error { return verify("filtered", s, baseline.FilteredSummary(filter), dense) })
	if err != nil {
		return err
	}
	columnFiltered, _ := timeQueries(cfg.iterations, func() ait.Summary { return baseline.FilteredSummary(filter) }, nil)
	printSummary("Filtered aggregation results", tree.FilteredSummary(filter))

	// Report.
	bold.Printf("\nPerformance Results (averaged over %d iterations):\n", cfg.iterations)
	fmt.Println("Global Aggregations:")
	fmt.Printf("  AIT: %v\n", treeGlobal)
	fmt.Printf("  Columnar: %v\n", columnGlobal)
	fmt.Printf("  Speedup: %s\n", color.GreenString("%.2fx", speedup(columnGlobal, treeGlobal)))
	fmt.Println("\nFiltered Aggregations:")
	fmt.Printf("  AIT: %v\n", treeFiltered)
	fmt.Printf("  Columnar: %v\n", columnFiltered)
	fmt.Printf("  Speedup: %s\n", color.GreenString("%.2fx", speedup(columnFiltered, treeFiltered)))

	snap := stats.Snapshot()
	bold.Println("\nQuery Engine Stats:")
	fmt.Printf("  global=%d empty=%d full=%d sequential=%d parallel=%d complement=%d\n",
		snap.GlobalQueries, snap.EmptyShortcuts, snap.FullShortcuts,
		snap.SequentialQueries, snap.ParallelQueries, snap.ComplementQueries)
	fmt.Printf("  latency p50=%v p95=%v p99=%v\n", snap.LatencyP50, snap.LatencyP95, snap.LatencyP99)
	if snap.FallbackLookups > 0 {
		color.Red("  WARNING: %d fallback lookups (structural integrity signal)", snap.FallbackLookups)
	}

	bold.Println("\nSummary:")
	fmt.Printf("- AIT build time: %v\n", buildTime)
	fmt.Printf("- AIT memory overhead: %.2fx\n", float64(treeBytes)/float64(columnBytes))
	fmt.Printf("- Global query speedup: %.2fx\n", speedup(columnGlobal, treeGlobal))
	fmt.Printf("- Filtered query speedup: %.2fx\n", speedup(columnFiltered, treeFiltered))

	return nil
}

// timeQueries runs the query the requested number of times and returns the
// average duration. The check, when non-nil, validates the first
// iteration's result and aborts the benchmark on mismatch.
func timeQueries(iterations int, query func() ait.Summary, check func(ait.Summary) error) (time.Duration, error) {
	var total time.Duration
	for i := 0; i < iterations; i++ {
		start := time.Now()
		result := query()
		total += time.Since(start)

		if i == 0 && check != nil {
			if err := check(result); err != nil {
				return 0, err
			}
		}
	}
	return total / time.Duration(iterations), nil
}

// verify cross-checks an index result against the baseline, naming the
// divergent field and both values. A mismatch is a correctness defect and
// fatal to the run. skipExtremes elides the min/max comparison for
// dense-path results, where the engine deliberately reports the global
// extremes.
func verify(query string, got, want ait.Summary, skipExtremes bool) error {
	if got.Count != want.Count {
		return fmt.Errorf("%s count mismatch: index=%d oracle=%d", query, got.Count, want.Count)
	}
	if !skipExtremes {
		if math.Abs(got.Min-want.Min) > sumTolerance {
			return fmt.Errorf("%s min mismatch: index=%g oracle=%g", query, got.Min, want.Min)
		}
		if math.Abs(got.Max-want.Max) > sumTolerance {
			return fmt.Errorf("%s max mismatch: index=%g oracle=%g", query, got.Max, want.Max)
		}
	}
	if math.Abs(got.Sum-want.Sum) > sumTolerance {
		return fmt.Errorf("%s sum mismatch: index=%g oracle=%g", query, got.Sum, want.Sum)
	}
	return nil
}

func printSummary(title string, s ait.Summary) {
	fmt.Printf("%s:\n", title)
	fmt.Printf("  Min: %g\n", s.Min)
	fmt.Printf("  Max: %g\n", s.Max)
	fmt.Printf("  Sum: %g\n", s.Sum)
	fmt.Printf("  Count: %d\n", s.Count)
	fmt.Printf("  Avg: %g\n", s.Avg())
}

func speedup(baseline, indexed time.Duration) float64 {
	if indexed <= 0 {
		return 0
	}
	return float64(baseline) / float64(indexed)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
