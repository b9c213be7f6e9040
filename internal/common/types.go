package common

import "errors"

// Default configuration values
const (
	DefaultLeafSize   = 64
	DefaultIterations = 5
)

// Query strategy thresholds. These are heuristics, not correctness
// boundaries: every strategy produces the same aggregate for any filter,
// up to floating-point reassociation of the sum.
const (
	// DenseFilterPercent is the corpus-coverage percentage above which a
	// filter is evaluated through its complement.
	DenseFilterPercent = 80

	// SequentialMaxFilter is the filter cardinality below which queries
	// stay single-threaded.
	SequentialMaxFilter = 10_000

	// ParallelChunkSize is the number of sorted ranks handed to each
	// parallel worker.
	ParallelChunkSize = 50_000

	// RankBatchSize is the number of ranks folded per batch into the
	// running summary.
	RankBatchSize = 1024

	// MicroBatchSize is the cache-sized accumulation chunk used inside
	// large batches.
	MicroBatchSize = 16

	// DirectBatchThreshold is the batch length below which values are
	// accumulated element-wise without micro-batching.
	DirectBatchThreshold = 32
)

// Synthetic corpus bounds, shared between the generator and its tests.
const (
	MinPayloadSize = 50
	MaxPayloadSize = 20_480
)

// Common errors
var (
	ErrInvalidLeafSize      = errors.New("leaf size must be at least 1")
	ErrInvalidFilterPercent = errors.New("filter percentage must be in [0, 100]")
	ErrInvalidDocCount      = errors.New("document count must be positive")
	ErrInvalidIterations    = errors.New("iteration count must be positive")
)

// Logger provides structured logging.
type Logger interface {
	Debug(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Error(msg string, fields ...interface{})
}

// LogLevel represents the severity of a log message.
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)
