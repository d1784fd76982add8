package fanout

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMapKeepsInputOrder(t *testing.T) {
	items := []int{5, 4, 3, 2, 1, 0}

	results := Map(context.Background(), items, Options{}, func(ctx context.Context, n int) (string, error) {
		// later items finish first
		time.Sleep(time.Duration(n) * 5 * time.Millisecond)
		return fmt.Sprint(n), nil
	})

	require.Len(t, results, len(items))
	for i, r := range results {
		require.NoError(t, r.Err)
		require.Equal(t, fmt.Sprint(items[i]), r.Value)
	}
}

func TestMapRespectsLimit(t *testing.T) {
	var running, peak int64
	items := make([]int, 20)

	Map(context.Background(), items, Options{Limit: 3}, func(ctx context.Context, _ int) (struct{}, error) {
		n := atomic.AddInt64(&running, 1)
		for {
			p := atomic.LoadInt64(&peak)
			if n <= p || atomic.CompareAndSwapInt64(&peak, p, n) {
				break
			}
		}
		time.Sleep(2 * time.Millisecond)
		atomic.AddInt64(&running, -1)
		return struct{}{}, nil
	})

	require.LessOrEqual(t, peak, int64(3))
}

func TestMapWaitsForAll(t *testing.T) {
	var finished int64
	items := []int{0, 1, 2, 3}
	boom := errors.New("boom")

	Map(context.Background(), items, Options{Policy: FailFast}, func(ctx context.Context, n int) (int, error) {
		defer atomic.AddInt64(&finished, 1)
		if n == 0 {
			return 0, boom
		}
		<-ctx.Done()
		return 0, ctx.Err()
	})

	require.Equal(t, int64(len(items)), atomic.LoadInt64(&finished))
}

func TestCollectFailFastKeepsRootCause(t *testing.T) {
	boom := errors.New("boom")
	results := []Result[int]{
		{Value: 1},
		{Err: fmt.Errorf("fetch: %w", context.Canceled)},
		{Err: boom},
		{Value: 4},
	}

	values, failures, err := Collect(results, FailFast)
	require.ErrorIs(t, err, boom)
	require.Nil(t, values)
	require.Len(t, failures, 2)
	require.Equal(t, 1, failures[0].Index)
	require.Equal(t, 2, failures[1].Index)
}

func TestCollectBestEffortDropsFailures(t *testing.T) {
	boom := errors.New("boom")
	results := []Result[int]{
		{Value: 1},
		{Err: boom},
		{Value: 3},
	}

	values, failures, err := Collect(results, BestEffort)
	require.NoError(t, err)
	require.Equal(t, []int{1, 3}, values)
	require.Equal(t, []Failure{{Index: 1, Err: boom}}, failures)
}

func TestCollectAllSucceeded(t *testing.T) {
	for _, policy := range []Policy{FailFast, BestEffort} {
		values, failures, err := Collect([]Result[string]{{Value: "a"}, {Value: "b"}}, policy)
		require.NoError(t, err, policy.String())
		require.Empty(t, failures)
		require.Equal(t, []string{"a", "b"}, values)
	}
}

func TestRunEmpty(t *testing.T) {
	values, failures, err := Run(context.Background(), []int{}, Options{}, func(context.Context, int) (int, error) {
		t.Fatal("fn should not be called")
		return 0, nil
	})
	require.NoError(t, err)
	require.Empty(t, values)
	require.Empty(t, failures)
}

func TestParsePolicy(t *testing.T) {
	policy, err := ParsePolicy("best_effort")
	require.NoError(t, err)
	require.Equal(t, BestEffort, policy)

	policy, err = ParsePolicy("")
	require.NoError(t, err)
	require.Equal(t, FailFast, policy)

	_, err = ParsePolicy("retry")
	require.Error(t, err)
}
