package bamsift

import (
	"context"

	"github.com/biogo/hts/sam"

	"github.com/hupe1980/bamsift/readset"
)

// RecordWriter consumes routed records. *bam.Writer satisfies it.
type RecordWriter interface {
	Write(r *sam.Record) error
}

// Bucket pairs one read-name set with one output destination. The set
// decides membership; the writer receives every record the bucket claims.
type Bucket struct {
	name   string
	set    *readset.Set
	w      RecordWriter
	routed int64
}

// NewBucket creates a Bucket. name is the origin of the set (the read list
// source) and is used for reporting only.
func NewBucket(name string, set *readset.Set, w RecordWriter) *Bucket {
	return &Bucket{name: name, set: set, w: w}
}

// Name returns the origin of the bucket's read-name set.
func (b *Bucket) Name() string { return b.name }

// Routed returns the number of records written to the bucket so far.
func (b *Bucket) Routed() int64 { return b.routed }

// Leftover returns the identifiers still waiting for a record, sorted.
// After a completed run these are the reads that were requested but never
// observed in the input (or were consumed by a higher-priority bucket).
func (b *Bucket) Leftover() []string { return b.set.Names() }

// LeftoverCount returns the number of identifiers still in the set.
func (b *Bucket) LeftoverCount() int { return b.set.Len() }

// Router routes each record to the first bucket whose set contains the
// record's query name, removing the name from that set so a later record
// with the same name falls through to the next bucket that lists it.
//
// Bucket order is fixed at construction and defines routing priority; it
// lets overlapping read lists express precedence. The scan must stay
// strictly sequential with the removal visible to the very next record, so
// Router is not safe for concurrent use.
type Router struct {
	buckets   []*Bucket
	unmatched int64
	metrics   MetricsCollector
	logger    *Logger
}

// NewRouter creates a Router over the given buckets in priority order.
func NewRouter(buckets []*Bucket, optFns ...Option) *Router {
	o := applyOptions(optFns)
	return &Router{
		buckets: buckets,
		metrics: o.metrics,
		logger:  o.logger,
	}
}

// Route writes rec to the first bucket whose set contains its query name
// and returns that bucket's index. It returns -1 if no set contains the
// name; the record is then dropped and counted as unmatched. A write
// failure is fatal to the run and is returned as a *WriteError.
func (r *Router) Route(ctx context.Context, rec *sam.Record) (int, error) {
	for i, b := range r.buckets {
		if !b.set.Remove(rec.Name) {
			continue
		}
		if err := b.w.Write(rec); err != nil {
			return -1, &WriteError{Name: b.name, cause: err}
		}
		b.routed++
		r.metrics.RecordRoute(i)
		r.logger.LogRoute(ctx, rec.Name, i)
		return i, nil
	}

	r.unmatched++
	r.metrics.RecordRoute(-1)
	return -1, nil
}

// Unmatched returns the number of records that matched no bucket.
func (r *Router) Unmatched() int64 { return r.unmatched }

// Buckets returns the router's buckets in priority order.
func (r *Router) Buckets() []*Bucket { return r.buckets }
