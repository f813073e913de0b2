package bamsift

import (
	"context"
	"io"
	"path"
	"strings"
	"time"

	"github.com/biogo/hts/bam"

	"github.com/hupe1980/bamsift/readset"
	"github.com/hupe1980/bamsift/source"
)

// Splitter partitions one BAM input across one output per read list.
type Splitter struct {
	store   source.Store
	logger  *Logger
	metrics MetricsCollector
	threads int
	optFns  []Option
}

// New creates a Splitter.
func New(optFns ...Option) *Splitter {
	o := applyOptions(optFns)
	return &Splitter{
		store:   o.store,
		logger:  o.logger,
		metrics: o.metrics,
		threads: o.threads,
		optFns:  optFns,
	}
}

// Split routes every record of the named BAM input to the output belonging
// to the first read list that contains the record's query name. Outputs are
// named after their read list with the extension replaced by ".bam" and
// share the input's header. With no read lists every record is unmatched.
//
// Any failure aborts the whole run; outputs written before a failure are
// not authoritative and must not be used.
func (s *Splitter) Split(ctx context.Context, bamName string, readsNames []string) (*Summary, error) {
	runStart := time.Now()

	summary, err := s.split(ctx, bamName, readsNames)
	s.metrics.RecordRun(summary, time.Since(runStart), err)
	if err != nil {
		return nil, err
	}

	s.logger.LogSummary(ctx, summary)
	return summary, nil
}

func (s *Splitter) split(ctx context.Context, bamName string, readsNames []string) (*Summary, error) {
	sets, err := s.loadSets(ctx, readsNames)
	if err != nil {
		return nil, err
	}

	in, err := s.store.Open(ctx, bamName)
	if err != nil {
		return nil, &SourceError{Name: bamName, cause: err}
	}
	defer in.Close()

	br, err := bam.NewReader(in, s.threads)
	if err != nil {
		return nil, &SourceError{Name: bamName, cause: err}
	}
	defer br.Close()

	buckets := make([]*Bucket, 0, len(readsNames))
	writers := make([]*bam.Writer, 0, len(readsNames))
	outs := make([]io.WriteCloser, 0, len(readsNames))
	abort := func() {
		for i := len(writers) - 1; i >= 0; i-- {
			_ = writers[i].Close()
		}
		for i := len(outs) - 1; i >= 0; i-- {
			_ = outs[i].Close()
		}
	}

	for i, name := range readsNames {
		outName := OutputName(name)
		out, err := s.store.Create(ctx, outName)
		if err != nil {
			abort()
			return nil, &WriteError{Name: outName, cause: err}
		}
		outs = append(outs, out)

		bw, err := bam.NewWriter(out, br.Header(), s.threads)
		if err != nil {
			abort()
			return nil, &WriteError{Name: outName, cause: err}
		}
		writers = append(writers, bw)

		buckets = append(buckets, NewBucket(name, sets[i], bw))
	}

	router := NewRouter(buckets, s.optFns...)
	driver := NewDriver(br, router, s.optFns...)

	summary, err := driver.Run(ctx)
	if err != nil {
		abort()
		return nil, err
	}

	// Closing flushes the final BGZF block and EOF marker; a flush failure
	// invalidates the run like any other write failure.
	for i, bw := range writers {
		if err := bw.Close(); err != nil {
			abort()
			return nil, &WriteError{Name: buckets[i].Name(), cause: err}
		}
		if err := outs[i].Close(); err != nil {
			return nil, &WriteError{Name: buckets[i].Name(), cause: err}
		}
	}

	return summary, nil
}

func (s *Splitter) loadSets(ctx context.Context, names []string) ([]*readset.Set, error) {
	start := time.Now()

	sets, err := readset.LoadAll(ctx, s.store, names,
		readset.WithObserver(func(name string, count int, elapsed time.Duration) {
			s.logger.LogSetLoad(ctx, name, count, nil)
			s.metrics.RecordSetLoad(count, elapsed, nil)
		}),
	)
	if err != nil {
		s.metrics.RecordSetLoad(0, time.Since(start), err)
		return nil, translateError(err)
	}
	return sets, nil
}

// OutputName derives the output destination for a read list source: a
// recognized compression extension is stripped first, then the remaining
// extension is replaced by ".bam".
func OutputName(name string) string {
	switch ext := path.Ext(name); ext {
	case ".gz", ".zst", ".lz4":
		name = strings.TrimSuffix(name, ext)
	}
	return strings.TrimSuffix(name, path.Ext(name)) + ".bam"
}
