package bamsift

import (
	"log/slog"
	"runtime"
	"time"

	"github.com/hupe1980/bamsift/source"
)

type options struct {
	threads          int
	logger           *Logger
	metrics          MetricsCollector
	store            source.Store
	progressInterval time.Duration
}

// Option configures Splitter, Router and Driver construction.
type Option func(*options)

// WithThreads configures the number of BGZF codec workers used for reading
// the input and writing each output. Codec parallelism affects throughput
// only; routing stays a serial reduction over the record stream.
//
// Values below one are ignored; the default is GOMAXPROCS.
func WithThreads(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.threads = n
		}
	}
}

// WithLogger configures structured logging for operations.
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

// WithMetricsCollector configures a metrics collector for monitoring
// operations. Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metrics = mc
	}
}

// WithStore configures where inputs are read from and outputs written to.
// The default is the local file system; see source/s3 and source/minio for
// object-storage backed runs.
func WithStore(store source.Store) Option {
	return func(o *options) {
		if store == nil {
			store = source.NewLocalStore("")
		}
		o.store = store
	}
}

// WithProgressInterval configures how often the driver logs streaming
// progress. Zero or negative disables progress logging.
func WithProgressInterval(d time.Duration) Option {
	return func(o *options) {
		o.progressInterval = d
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		threads:          runtime.GOMAXPROCS(0),
		logger:           NoopLogger(),
		metrics:          NoopMetricsCollector{},
		store:            source.NewLocalStore(""),
		progressInterval: time.Second,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
