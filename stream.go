package bamsift

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"time"

	"github.com/biogo/hts/sam"
	"golang.org/x/time/rate"
)

// RecordReader yields records in arrival order. *bam.Reader satisfies it.
type RecordReader interface {
	Read() (*sam.Record, error)
}

// Driver states. failed is absorbing: a failed run cannot be resumed and
// must be retried from scratch after fixing the underlying cause.
type driverState int32

const (
	stateIdle driverState = iota
	stateStreaming
	stateFinalizing
	stateDone
	stateFailed
)

// Summary describes a completed run.
type Summary struct {
	Records   int64 // total records seen
	Matched   int64 // records routed to some bucket
	Unmatched int64 // records that matched no bucket
	Buckets   []BucketSummary
}

// BucketSummary describes one bucket after a run.
type BucketSummary struct {
	Source   string // the read list the bucket was built from
	Routed   int64  // records written to the bucket
	Leftover int    // identifiers requested but never observed
}

// Driver owns the input reader and drives it to completion, feeding every
// record to the router in strict arrival order. Each record is routed to
// completion before the next is read; the remove-on-match rule requires a
// consistent view of all sets per record.
type Driver struct {
	reader           RecordReader
	router           *Router
	logger           *Logger
	progressInterval time.Duration
	progress         rate.Sometimes
	state            atomic.Int32
}

// NewDriver creates a Driver over the given reader and router.
func NewDriver(reader RecordReader, router *Router, optFns ...Option) *Driver {
	o := applyOptions(optFns)
	return &Driver{
		reader:           reader,
		router:           router,
		logger:           o.logger,
		progressInterval: o.progressInterval,
		progress:         rate.Sometimes{Interval: o.progressInterval},
	}
}

func (d *Driver) fail() {
	d.state.Store(int32(stateFailed))
}

// Run consumes the input stream to completion and returns the run summary.
// A driver runs at most once; any decode or write error is fatal and no
// summary is produced.
func (d *Driver) Run(ctx context.Context) (*Summary, error) {
	if !d.state.CompareAndSwap(int32(stateIdle), int32(stateStreaming)) {
		return nil, ErrDriverUsed
	}

	var records, matched int64
	for {
		if err := ctx.Err(); err != nil {
			d.fail()
			return nil, err
		}

		rec, err := d.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			d.fail()
			return nil, &DecodeError{Record: records, cause: err}
		}

		bucket, err := d.router.Route(ctx, rec)
		if err != nil {
			d.fail()
			return nil, err
		}
		if bucket >= 0 {
			matched++
		}
		records++

		if d.progressInterval > 0 {
			d.progress.Do(func() {
				d.logger.DebugContext(ctx, "streaming", "records", records)
			})
		}
	}

	d.state.Store(int32(stateFinalizing))

	summary := &Summary{
		Records:   records,
		Matched:   matched,
		Unmatched: d.router.Unmatched(),
		Buckets:   make([]BucketSummary, 0, len(d.router.Buckets())),
	}
	for _, b := range d.router.Buckets() {
		leftover := b.Leftover()
		summary.Buckets = append(summary.Buckets, BucketSummary{
			Source:   b.Name(),
			Routed:   b.Routed(),
			Leftover: len(leftover),
		})
		d.logger.LogLeftover(ctx, b.Name(), leftover)
	}

	d.state.Store(int32(stateDone))
	return summary, nil
}
