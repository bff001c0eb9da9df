package pool

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Map runs fn over every item with at most workers goroutines, preserving
// input order in the returned slice. The first error cancels the remaining
// work and is returned. A panic inside fn is converted into an error rather
// than tearing down the process.
func Map[T, R any](ctx context.Context, workers int, items []T, fn func(context.Context, int, T) (R, error)) ([]R, error) {
	if workers <= 0 {
		workers = 1
	}
	results := make([]R, len(items))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range items {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("pool: task %d panicked: %v", i, r)
				}
			}()
			if err := ctx.Err(); err != nil {
				return err
			}
			out, err := fn(ctx, i, items[i])
			if err != nil {
				return err
			}
			results[i] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// ForEach is Map without collected results.
func ForEach[T any](ctx context.Context, workers int, items []T, fn func(context.Context, int, T) error) error {
	_, err := Map(ctx, workers, items, func(ctx context.Context, i int, item T) (struct{}, error) {
		return struct{}{}, fn(ctx, i, item)
	})
	return err
}
