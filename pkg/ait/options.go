package ait

import (
	"runtime"

	"github.com/CVDpl/go-ait/internal/common"
)

// Options configures query execution. The leaf size is an explicit Build
// argument rather than an option because an invalid value must fail
// construction instead of being silently defaulted.
type Options struct {
	// Parallelism caps the number of concurrent workers on the parallel
	// query path. Zero means runtime.NumCPU().
	Parallelism int

	// Logger provides structured logging. Nil means discard.
	Logger common.Logger

	// Stats, when non-nil, receives per-query strategy counters and
	// latencies.
	Stats *StatsCollector
}

// DefaultOptions returns default options.
func DefaultOptions() *Options {
	return &Options{
		Parallelism: 0,
		Logger:      common.NewNullLogger(),
		Stats:       nil,
	}
}

// normalized fills in zero values so the tree never has to re-check them.
func (o *Options) normalized() Options {
	out := Options{}
	if o != nil {
		out = *o
	}
	if out.Parallelism <= 0 {
		out.Parallelism = runtime.NumCPU()
	}
	if out.Logger == nil {
		out.Logger = common.NewNullLogger()
	}
	return out
}
