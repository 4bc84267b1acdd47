package fastsl

import (
	"log/slog"
	"runtime"
	"time"

	"github.com/Braden-Griebel/fastsl/codec"
	"github.com/Braden-Griebel/fastsl/snapshot"
)

const (
	// DefaultMaxDepth is the default bound on combination size.
	DefaultMaxDepth = 3

	// DefaultEssentialProportion is the default proportion of the baseline
	// objective below which a combination is judged lethal.
	DefaultEssentialProportion = 0.01
)

type options struct {
	maxDepth            int
	essentialProportion float64
	workers             int
	maxConcurrentSolves int64
	logger              *Logger
	metricsCollector    MetricsCollector
	queueSizeLogEvery   time.Duration
	snapshotStore       snapshot.Store
	snapshotName        string
	snapshotCodec       codec.Codec
	snapshotCompression snapshot.Compression
}

// Option configures a Finder.
type Option func(*options)

// WithMaxDepth bounds the size of the combinations the search explores.
// Must be at least 1. Default: DefaultMaxDepth.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		o.maxDepth = depth
	}
}

// WithEssentialProportion sets the proportion of the unperturbed baseline
// objective used to derive the essential cutoff. Must be in (0, 1].
// Default: DefaultEssentialProportion.
func WithEssentialProportion(p float64) Option {
	return func(o *options) {
		o.essentialProportion = p
	}
}

// WithWorkers sets the number of parallel workers draining the frontier
// queue. Must be at least 1. Default: runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithMaxConcurrentSolves bounds the number of oracle calls in flight at
// once, independent of the worker count. Useful when the solver backend
// holds a license or memory budget. If 0 (default), only the worker count
// bounds concurrency.
func WithMaxConcurrentSolves(n int64) Option {
	return func(o *options) {
		o.maxConcurrentSolves = n
	}
}

// WithLogger configures structured logging for the search.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector configures a metrics collector for monitoring the
// search. Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithQueueSizeLogging emits the approximate frontier queue size whenever a
// worker pops a combination, rate-limited to at most one log entry per
// interval. Purely diagnostic; has no effect on correctness.
func WithQueueSizeLogging(interval time.Duration) Option {
	return func(o *options) {
		o.queueSizeLogEvery = interval
	}
}

// WithSnapshot persists the final result list to the given store under name
// once the search completes. Encoding is configurable via WithSnapshotCodec
// and WithSnapshotCompression.
func WithSnapshot(store snapshot.Store, name string) Option {
	return func(o *options) {
		o.snapshotStore = store
		o.snapshotName = name
	}
}

// WithSnapshotCodec selects the codec used for snapshot documents.
// If nil is passed, codec.Default is used.
func WithSnapshotCodec(c codec.Codec) Option {
	return func(o *options) {
		o.snapshotCodec = c
	}
}

// WithSnapshotCompression selects the snapshot payload compression.
func WithSnapshotCompression(c snapshot.Compression) Option {
	return func(o *options) {
		o.snapshotCompression = c
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		maxDepth:            DefaultMaxDepth,
		essentialProportion: DefaultEssentialProportion,
		workers:             runtime.GOMAXPROCS(0),
		logger:              NoopLogger(),
		metricsCollector:    NoopMetricsCollector{},
		snapshotCompression: snapshot.CompressionZstd,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
