package bamsift

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/biogo/hts/sam"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/bamsift/readset"
)

// sliceReader yields a fixed record sequence, optionally failing at the end.
type sliceReader struct {
	recs []*sam.Record
	err  error
	pos  int
}

func (r *sliceReader) Read() (*sam.Record, error) {
	if r.pos == len(r.recs) {
		if r.err != nil {
			return nil, r.err
		}
		return nil, io.EOF
	}
	rec := r.recs[r.pos]
	r.pos++
	return rec, nil
}

func records(names ...string) []*sam.Record {
	recs := make([]*sam.Record, 0, len(names))
	for _, name := range names {
		recs = append(recs, &sam.Record{Name: name})
	}
	return recs
}

func TestDriver_Run(t *testing.T) {
	// Stream [a,b,a,c,d] against S1={a,c}, S2={b,d}: record 3 finds "a"
	// already consumed from S1 and absent from S2, so it is unmatched.
	w1 := &captureWriter{}
	w2 := &captureWriter{}
	router := NewRouter([]*Bucket{
		NewBucket("s1.txt", readset.NewSet("a", "c"), w1),
		NewBucket("s2.txt", readset.NewSet("b", "d"), w2),
	})
	driver := NewDriver(&sliceReader{recs: records("a", "b", "a", "c", "d")}, router)

	summary, err := driver.Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, int64(5), summary.Records)
	require.Equal(t, int64(4), summary.Matched)
	require.Equal(t, int64(1), summary.Unmatched)

	require.Equal(t, []string{"a", "c"}, w1.names())
	require.Equal(t, []string{"b", "d"}, w2.names())

	require.Equal(t, BucketSummary{Source: "s1.txt", Routed: 2, Leftover: 0}, summary.Buckets[0])
	require.Equal(t, BucketSummary{Source: "s2.txt", Routed: 2, Leftover: 0}, summary.Buckets[1])

	require.Equal(t, int32(stateDone), driver.state.Load())
}

func TestDriver_EmptySet(t *testing.T) {
	w := &captureWriter{}
	router := NewRouter([]*Bucket{
		NewBucket("empty.txt", readset.NewSet(), w),
	})
	driver := NewDriver(&sliceReader{recs: records("a", "b")}, router)

	summary, err := driver.Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, int64(2), summary.Records)
	require.Equal(t, int64(0), summary.Matched)
	require.Equal(t, int64(2), summary.Unmatched)
	require.Equal(t, 0, summary.Buckets[0].Leftover)
	require.Empty(t, w.recs)
}

func TestDriver_LeftoverNeverSeen(t *testing.T) {
	b := NewBucket("s1.txt", readset.NewSet("a", "ghost"), &captureWriter{})
	driver := NewDriver(&sliceReader{recs: records("a")}, NewRouter([]*Bucket{b}))

	summary, err := driver.Run(context.Background())
	require.NoError(t, err)

	// Leftover == |S| - routed.
	require.Equal(t, 1, summary.Buckets[0].Leftover)
	require.Equal(t, []string{"ghost"}, b.Leftover())
}

func TestDriver_DecodeErrorIsFatal(t *testing.T) {
	cause := errors.New("truncated block")
	router := NewRouter([]*Bucket{
		NewBucket("s1.txt", readset.NewSet("a"), &captureWriter{}),
	})
	driver := NewDriver(&sliceReader{recs: records("a"), err: cause}, router)

	summary, err := driver.Run(context.Background())
	require.Nil(t, summary)
	require.Error(t, err)

	var de *DecodeError
	require.ErrorAs(t, err, &de)
	require.Equal(t, int64(1), de.Record)
	require.True(t, errors.Is(err, cause))

	require.Equal(t, int32(stateFailed), driver.state.Load())
}

func TestDriver_WriteErrorIsFatal(t *testing.T) {
	router := NewRouter([]*Bucket{
		NewBucket("s1.txt", readset.NewSet("a"), &captureWriter{err: errors.New("disk full")}),
	})
	driver := NewDriver(&sliceReader{recs: records("a")}, router)

	summary, err := driver.Run(context.Background())
	require.Nil(t, summary)

	var we *WriteError
	require.ErrorAs(t, err, &we)
	require.Equal(t, int32(stateFailed), driver.state.Load())
}

func TestDriver_RunOnce(t *testing.T) {
	driver := NewDriver(&sliceReader{}, NewRouter(nil))

	_, err := driver.Run(context.Background())
	require.NoError(t, err)

	_, err = driver.Run(context.Background())
	require.ErrorIs(t, err, ErrDriverUsed)
}

func TestDriver_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	driver := NewDriver(&sliceReader{recs: records("a")}, NewRouter(nil))

	summary, err := driver.Run(ctx)
	require.Nil(t, summary)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, int32(stateFailed), driver.state.Load())
}

func TestDriver_OrderPreserved(t *testing.T) {
	w := &captureWriter{}
	router := NewRouter([]*Bucket{
		NewBucket("s1.txt", readset.NewSet("a", "b", "c"), w),
	})
	driver := NewDriver(&sliceReader{recs: records("c", "x", "a", "b")}, router)

	_, err := driver.Run(context.Background())
	require.NoError(t, err)

	// Output order is a subsequence of input order, not set order.
	require.Equal(t, []string{"c", "a", "b"}, w.names())
}
