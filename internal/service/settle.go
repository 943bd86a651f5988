package service

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Result holds the outcome of one item of a settled fan-out.
type Result[T any] struct {
	Value T
	Err   error
}

func (r Result[T]) OK() bool { return r.Err == nil }

// settleAll runs fn for every item with at most limit calls in flight and
// waits for all of them. One failing item never cancels the others; results
// keep the order of items.
func settleAll[I, T any](ctx context.Context, limit int, items []I, fn func(context.Context, I) (T, error)) []Result[T] {
	results := make([]Result[T], len(items))

	g := new(errgroup.Group)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, item := range items {
		g.Go(func() error {
			v, err := fn(ctx, item)
			results[i] = Result[T]{Value: v, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// successes drops failed results.
func successes[T any](results []Result[T]) []T {
	out := make([]T, 0, len(results))
	for _, r := range results {
		if r.OK() {
			out = append(out, r.Value)
		}
	}
	return out
}
