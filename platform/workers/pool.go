// Package workers provides a bounded worker pool for parallel batch work.
package workers

import (
	"context"
	"sync"
)

// Result pairs one input index with the outcome of processing it. Order of
// delivery is not the submission order; callers correlate by Index.
type Result[T any] struct {
	Index int
	Value T
	Err   error
}

// Map processes items with at most workers goroutines and returns one
// result per item, indexed by input position. The context cancels pending
// work; items not started when the context ends are reported with ctx.Err().
func Map[In any, Out any](ctx context.Context, workers int, items []In, fn func(context.Context, In) (Out, error)) []Result[Out] {
	if workers < 1 {
		workers = 1
	}
	if workers > len(items) {
		workers = len(items)
	}

	results := make([]Result[Out], len(items))
	indexes := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				if err := ctx.Err(); err != nil {
					results[i] = Result[Out]{Index: i, Err: err}
					continue
				}
				value, err := fn(ctx, items[i])
				results[i] = Result[Out]{Index: i, Value: value, Err: err}
			}
		}()
	}

	for i := range items {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	return results
}
