// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package parallel runs independent per-item operations concurrently and
// collects every outcome, success or failure. Unlike errgroup-style
// helpers, no item's failure cancels its siblings: the caller always gets
// exactly one result per input, in input order.
package parallel

import (
	"context"
	"sync"
)

// Result holds one item's outcome.
type Result[T any] struct {
	Value T
	Err   error
}

// Map applies fn to every item in its own goroutine and waits for all of
// them. results[i] corresponds to items[i]; concurrency affects timing,
// never ordering. There is no bound on simultaneous in-flight operations;
// callers fan out one goroutine per item.
func Map[In, Out any](ctx context.Context, items []In, fn func(context.Context, In) (Out, error)) []Result[Out] {
	results := make([]Result[Out], len(items))

	var wg sync.WaitGroup
	for i, item := range items {
		wg.Add(1)
		go func(i int, item In) {
			defer wg.Done()
			v, err := fn(ctx, item)
			results[i] = Result[Out]{Value: v, Err: err}
		}(i, item)
	}
	wg.Wait()

	return results
}
