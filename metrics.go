package bamsift

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordSetLoad is called after each read list load.
	// count is the number of identifiers found, err is nil if successful.
	RecordSetLoad(count int, duration time.Duration, err error)

	// RecordRoute is called for every input record.
	// bucket is the receiving bucket index, or -1 for unmatched records.
	RecordRoute(bucket int)

	// RecordRun is called once when a run finishes.
	// summary is nil if the run failed.
	RecordRun(summary *Summary, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordSetLoad(int, time.Duration, error)  {}
func (NoopMetricsCollector) RecordRoute(int)                          {}
func (NoopMetricsCollector) RecordRun(*Summary, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	SetLoadCount   atomic.Int64
	SetLoadErrors  atomic.Int64
	SetLoadEntries atomic.Int64
	RoutedCount    atomic.Int64
	UnmatchedCount atomic.Int64
	RunCount       atomic.Int64
	RunErrors      atomic.Int64
	RunTotalNanos  atomic.Int64
}

// RecordSetLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSetLoad(count int, duration time.Duration, err error) {
	b.SetLoadCount.Add(1)
	b.SetLoadEntries.Add(int64(count))
	if err != nil {
		b.SetLoadErrors.Add(1)
	}
}

// RecordRoute implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRoute(bucket int) {
	if bucket < 0 {
		b.UnmatchedCount.Add(1)
	} else {
		b.RoutedCount.Add(1)
	}
}

// RecordRun implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRun(_ *Summary, duration time.Duration, err error) {
	b.RunCount.Add(1)
	b.RunTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.RunErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		SetLoadCount:   b.SetLoadCount.Load(),
		SetLoadErrors:  b.SetLoadErrors.Load(),
		SetLoadEntries: b.SetLoadEntries.Load(),
		RoutedCount:    b.RoutedCount.Load(),
		UnmatchedCount: b.UnmatchedCount.Load(),
		RunCount:       b.RunCount.Load(),
		RunErrors:      b.RunErrors.Load(),
		RunAvgNanos:    b.getAvgRunNanos(),
	}
}

func (b *BasicMetricsCollector) getAvgRunNanos() int64 {
	count := b.RunCount.Load()
	if count == 0 {
		return 0
	}
	return b.RunTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	SetLoadCount   int64
	SetLoadErrors  int64
	SetLoadEntries int64
	RoutedCount    int64
	UnmatchedCount int64
	RunCount       int64
	RunErrors      int64
	RunAvgNanos    int64
}
