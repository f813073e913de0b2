package readset

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/bamsift/source"
)

// loadConcurrency bounds parallel source reads to avoid FD exhaustion.
const loadConcurrency = 16

// maxLineBytes is the scanner buffer cap for one identifier line.
const maxLineBytes = 4 * 1024 * 1024

// LoadError indicates that a read list source could not be opened or read.
//
// The original underlying error can be accessed via errors.Unwrap.
type LoadError struct {
	Name  string
	cause error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load read list %s: %v", e.Name, e.cause)
}

func (e *LoadError) Unwrap() error { return e.cause }

type options struct {
	onLoad func(name string, count int, elapsed time.Duration)
}

// Option configures loading behavior.
type Option func(*options)

// WithObserver registers fn to be called after each successful load,
// with the source name, the number of identifiers found and the elapsed
// time. Used for load-time reporting; it has no effect on the result.
func WithObserver(fn func(name string, count int, elapsed time.Duration)) Option {
	return func(o *options) {
		o.onLoad = fn
	}
}

func applyOptions(optFns []Option) options {
	var o options
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

// Load reads one identifier per line from the named source, trimming
// surrounding whitespace. Blank lines are skipped: a BAM query name is never
// empty, so an empty entry could only ever surface as a phantom leftover.
func Load(ctx context.Context, store source.Store, name string, optFns ...Option) (*Set, error) {
	o := applyOptions(optFns)
	start := time.Now()

	rc, err := source.OpenText(ctx, store, name)
	if err != nil {
		return nil, &LoadError{Name: name, cause: err}
	}
	defer rc.Close()

	set := NewSet()
	sc := bufio.NewScanner(rc)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for sc.Scan() {
		id := strings.TrimSpace(sc.Text())
		if id == "" {
			continue
		}
		set.Add(id)
	}
	if err := sc.Err(); err != nil {
		return nil, &LoadError{Name: name, cause: err}
	}

	if o.onLoad != nil {
		o.onLoad(name, set.Len(), time.Since(start))
	}
	return set, nil
}

// LoadAll loads every named source concurrently and returns the sets in the
// same order the names were given; that order later fixes routing priority.
// The first failure aborts the whole load and no sets are returned.
func LoadAll(ctx context.Context, store source.Store, names []string, optFns ...Option) ([]*Set, error) {
	sets := make([]*Set, len(names))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(loadConcurrency)
	for i, name := range names {
		g.Go(func() error {
			set, err := Load(ctx, store, name, optFns...)
			if err != nil {
				return err
			}
			sets[i] = set
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sets, nil
}
