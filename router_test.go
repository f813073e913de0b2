package bamsift

import (
	"context"
	"errors"
	"testing"

	"github.com/biogo/hts/sam"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/bamsift/readset"
)

// captureWriter records routed records in memory.
type captureWriter struct {
	recs []*sam.Record
	err  error
}

func (w *captureWriter) Write(r *sam.Record) error {
	if w.err != nil {
		return w.err
	}
	w.recs = append(w.recs, r)
	return nil
}

func (w *captureWriter) names() []string {
	names := make([]string, 0, len(w.recs))
	for _, r := range w.recs {
		names = append(names, r.Name)
	}
	return names
}

func rec(name string) *sam.Record {
	return &sam.Record{Name: name}
}

func TestRouter_FirstMatchWins(t *testing.T) {
	w1 := &captureWriter{}
	w2 := &captureWriter{}
	router := NewRouter([]*Bucket{
		NewBucket("s1.txt", readset.NewSet("shared"), w1),
		NewBucket("s2.txt", readset.NewSet("shared"), w2),
	})
	ctx := context.Background()

	// First record goes to the higher-priority bucket and consumes the
	// name there; the second must fall through to the lower one.
	idx, err := router.Route(ctx, rec("shared"))
	require.NoError(t, err)
	require.Equal(t, 0, idx)

	idx, err = router.Route(ctx, rec("shared"))
	require.NoError(t, err)
	require.Equal(t, 1, idx)

	// Both sets drained: a third copy is unmatched.
	idx, err = router.Route(ctx, rec("shared"))
	require.NoError(t, err)
	require.Equal(t, -1, idx)

	require.Equal(t, []string{"shared"}, w1.names())
	require.Equal(t, []string{"shared"}, w2.names())
	require.Equal(t, int64(1), router.Unmatched())
}

func TestRouter_UnmatchedNotWritten(t *testing.T) {
	w := &captureWriter{}
	router := NewRouter([]*Bucket{
		NewBucket("s1.txt", readset.NewSet("a"), w),
	})

	idx, err := router.Route(context.Background(), rec("other"))
	require.NoError(t, err)
	require.Equal(t, -1, idx)
	require.Empty(t, w.recs)
	require.Equal(t, int64(1), router.Unmatched())
}

func TestRouter_WriteFailureIsFatal(t *testing.T) {
	cause := errors.New("disk full")
	router := NewRouter([]*Bucket{
		NewBucket("s1.txt", readset.NewSet("a"), &captureWriter{err: cause}),
	})

	_, err := router.Route(context.Background(), rec("a"))
	require.Error(t, err)

	var we *WriteError
	require.ErrorAs(t, err, &we)
	require.Equal(t, "s1.txt", we.Name)
	require.True(t, errors.Is(err, cause))
}

func TestRouter_Leftovers(t *testing.T) {
	w := &captureWriter{}
	b := NewBucket("s1.txt", readset.NewSet("seen", "never"), w)
	router := NewRouter([]*Bucket{b})

	_, err := router.Route(context.Background(), rec("seen"))
	require.NoError(t, err)

	require.Equal(t, []string{"never"}, b.Leftover())
	require.Equal(t, 1, b.LeftoverCount())
	require.Equal(t, int64(1), b.Routed())
}

func TestRouter_MetricsCollection(t *testing.T) {
	metrics := &BasicMetricsCollector{}
	router := NewRouter([]*Bucket{
		NewBucket("s1.txt", readset.NewSet("a"), &captureWriter{}),
	}, WithMetricsCollector(metrics))
	ctx := context.Background()

	_, err := router.Route(ctx, rec("a"))
	require.NoError(t, err)
	_, err = router.Route(ctx, rec("b"))
	require.NoError(t, err)

	stats := metrics.GetStats()
	require.Equal(t, int64(1), stats.RoutedCount)
	require.Equal(t, int64(1), stats.UnmatchedCount)
}
