package ait

import (
	"sync"
	"sync/atomic"
	"time"
)

// Strategy identifies how a query was answered.
type Strategy int

const (
	// StrategyGlobal is a whole-corpus query answered from the root.
	StrategyGlobal Strategy = iota
	// StrategyEmpty is an empty-filter (or empty-index) short circuit.
	StrategyEmpty
	// StrategyFull is a filter covering every document.
	StrategyFull
	// StrategySequential is the single-threaded rank-batch path.
	StrategySequential
	// StrategyParallel is the chunked multi-worker path.
	StrategyParallel
	// StrategyComplement is the dense-filter subtraction path.
	StrategyComplement
)

// String returns the strategy name used in logs and reports.
func (s Strategy) String() string {
	switch s {
	case StrategyGlobal:
		return "global"
	case StrategyEmpty:
		return "empty"
	case StrategyFull:
		return "full"
	case StrategySequential:
		return "sequential"
	case StrategyParallel:
		return "parallel"
	case StrategyComplement:
		return "complement"
	}
	return "unknown"
}

// StatsCollector counts queries per strategy and tracks latencies. All
// methods are safe on a nil receiver so the engine can record
// unconditionally.
type StatsCollector struct {
	mu sync.Mutex

	// Strategy counts
	global     uint64
	empty      uint64
	full       uint64
	sequential uint64
	parallel   uint64
	complement uint64

	// Anomaly counters
	fallbackLookups uint64
	droppedIDs      uint64

	// Timing statistics
	latencies    []time.Duration
	maxLatencies int

	startTime time.Time
}

// NewStatsCollector creates a new statistics collector.
func NewStatsCollector() *StatsCollector {
	return &StatsCollector{
		maxLatencies: 10000,
		latencies:    make([]time.Duration, 0, 10000),
		startTime:    time.Now(),
	}
}

// RecordQuery records one query answered by the given strategy.
func (sc *StatsCollector) RecordQuery(strategy Strategy, d time.Duration) {
	if sc == nil {
		return
	}
	switch strategy {
	case StrategyGlobal:
		atomic.AddUint64(&sc.global, 1)
	case StrategyEmpty:
		atomic.AddUint64(&sc.empty, 1)
	case StrategyFull:
		atomic.AddUint64(&sc.full, 1)
	case StrategySequential:
		atomic.AddUint64(&sc.sequential, 1)
	case StrategyParallel:
		atomic.AddUint64(&sc.parallel, 1)
	case StrategyComplement:
		atomic.AddUint64(&sc.complement, 1)
	}
	sc.recordLatency(d)
}

// RecordFallbackLookup records a position-map miss that forced a tree
// descent. On a correctly built tree this never happens, so a non-zero
// count is a structural-integrity signal.
func (sc *StatsCollector) RecordFallbackLookup() {
	if sc == nil {
		return
	}
	atomic.AddUint64(&sc.fallbackLookups, 1)
}

// RecordDroppedIDs records filter ids that the index has never seen.
func (sc *StatsCollector) RecordDroppedIDs(n int) {
	if sc == nil {
		return
	}
	atomic.AddUint64(&sc.droppedIDs, uint64(n))
}

// recordLatency records a query latency.
func (sc *StatsCollector) recordLatency(d time.Duration) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	sc.latencies = append(sc.latencies, d)

	// Keep only the most recent latencies
	if len(sc.latencies) > sc.maxLatencies {
		copy(sc.latencies, sc.latencies[len(sc.latencies)-sc.maxLatencies:])
		sc.latencies = sc.latencies[:sc.maxLatencies]
	}
}

// Stats is a point-in-time snapshot of collected statistics.
type Stats struct {
	// Queries per strategy
	GlobalQueries     uint64
	EmptyShortcuts    uint64
	FullShortcuts     uint64
	SequentialQueries uint64
	ParallelQueries   uint64
	ComplementQueries uint64

	// FallbackLookups counts position-map misses recovered by descent.
	FallbackLookups uint64

	// DroppedIDs counts filter ids absent from the index.
	DroppedIDs uint64

	// Latency percentiles over the retained window
	LatencyP50 time.Duration
	LatencyP95 time.Duration
	LatencyP99 time.Duration

	// QueriesPerSecond is the average rate since collector creation.
	QueriesPerSecond float64
}

// Snapshot returns the current statistics.
func (sc *StatsCollector) Snapshot() Stats {
	if sc == nil {
		return Stats{}
	}

	sc.mu.Lock()
	defer sc.mu.Unlock()

	p50, p95, p99 := sc.percentilesLocked()

	total := atomic.LoadUint64(&sc.global) +
		atomic.LoadUint64(&sc.empty) +
		atomic.LoadUint64(&sc.full) +
		atomic.LoadUint64(&sc.sequential) +
		atomic.LoadUint64(&sc.parallel) +
		atomic.LoadUint64(&sc.complement)

	elapsed := time.Since(sc.startTime).Seconds()
	if elapsed < 1.0 {
		elapsed = 1.0
	}

	return Stats{
		GlobalQueries:     atomic.LoadUint64(&sc.global),
		EmptyShortcuts:    atomic.LoadUint64(&sc.empty),
		FullShortcuts:     atomic.LoadUint64(&sc.full),
		SequentialQueries: atomic.LoadUint64(&sc.sequential),
		ParallelQueries:   atomic.LoadUint64(&sc.parallel),
		ComplementQueries: atomic.LoadUint64(&sc.complement),
		FallbackLookups:   atomic.LoadUint64(&sc.fallbackLookups),
		DroppedIDs:        atomic.LoadUint64(&sc.droppedIDs),
		LatencyP50:        p50,
		LatencyP95:        p95,
		LatencyP99:        p99,
		QueriesPerSecond:  float64(total) / elapsed,
	}
}

// percentilesLocked calculates latency percentiles. Caller holds mu.
func (sc *StatsCollector) percentilesLocked() (p50, p95, p99 time.Duration) {
	if len(sc.latencies) == 0 {
		return
	}
	sorted := make([]time.Duration, len(sc.latencies))
	copy(sorted, sc.latencies)
	for i := 0; i < len(sorted)-1; i++ {
		for j := i + 1; j < len(sorted); j++ {
			if sorted[i] > sorted[j] {
				sorted[i], sorted[j] = sorted[j], sorted[i]
			}
		}
	}
	n := len(sorted)
	p50 = sorted[n*50/100]
	p95 = sorted[n*95/100]
	p99 = sorted[n*99/100]
	if n*99/100 >= n {
		p99 = sorted[n-1]
	}
	return
}
