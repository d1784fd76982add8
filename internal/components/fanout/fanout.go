// Package fanout runs one unit of work per input item concurrently, joins on
// all of them and hands back typed per-item results in input order.
package fanout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Policy decides how a set of per-item results is reduced.
type Policy int

const (
	// FailFast cancels the remaining in-flight units after the first failure
	// and surfaces an error instead of any values.
	FailFast Policy = iota
	// BestEffort keeps every successful value and reports the failures separately.
	BestEffort
)

func (p Policy) String() string {
	switch p {
	case FailFast:
		return "fail_fast"
	case BestEffort:
		return "best_effort"
	}
	return "unknown"
}

// ParsePolicy accepts the names produced by Policy.String.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fail_fast":
		return FailFast, nil
	case "best_effort":
		return BestEffort, nil
	}
	return FailFast, fmt.Errorf("unknown policy %q, expected fail_fast or best_effort", s)
}

// Result is the outcome of a single unit of work.
type Result[R any] struct {
	Value R
	Err   error
}

// Failure is a failed unit of work, Index is the position of its input item.
type Failure struct {
	Index int
	Err   error
}

type Options struct {
	// Limit bounds how many units run at once, 0 means no bound.
	Limit  int
	Policy Policy
}

// Map calls fn once per item concurrently and waits for every call to return.
// The i-th result always belongs to the i-th item, regardless of completion order.
// Under FailFast the context passed to fn is cancelled once any call fails.
func Map[T, R any](ctx context.Context, items []T, opts Options, fn func(context.Context, T) (R, error)) []Result[R] {
	results := make([]Result[R], len(items))

	group, groupCtx := errgroup.WithContext(ctx)
	if opts.Limit > 0 {
		group.SetLimit(opts.Limit)
	}
	for i, item := range items {
		i, item := i, item
		group.Go(func() error {
			value, err := fn(groupCtx, item)
			results[i] = Result[R]{Value: value, Err: err}
			if opts.Policy == FailFast {
				return err
			}
			return nil
		})
	}
	// every error is already stored in results
	_ = group.Wait()

	return results
}

// Collect reduces results according to policy.
//
// FailFast returns the error of the earliest failing item in input order,
// skipping cancellations caused by that failure so the root cause is kept.
// BestEffort returns the values of the successful items in input order, the
// failures alongside them and a nil error.
func Collect[R any](results []Result[R], policy Policy) ([]R, []Failure, error) {
	values := make([]R, 0, len(results))
	var failures []Failure
	for i, r := range results {
		if r.Err != nil {
			failures = append(failures, Failure{Index: i, Err: r.Err})
			continue
		}
		values = append(values, r.Value)
	}

	if policy == BestEffort || len(failures) == 0 {
		return values, failures, nil
	}

	for _, f := range failures {
		if !errors.Is(f.Err, context.Canceled) {
			return nil, failures, f.Err
		}
	}
	return nil, failures, failures[0].Err
}

// Run is Map followed by Collect.
func Run[T, R any](ctx context.Context, items []T, opts Options, fn func(context.Context, T) (R, error)) ([]R, []Failure, error) {
	return Collect(Map(ctx, items, opts, fn), opts.Policy)
}
