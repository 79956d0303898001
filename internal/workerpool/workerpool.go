// Package workerpool implements the single "bounded worker pool over a task
// iterator" abstraction named in spec §9, shared by the cropper (§4.3) and
// the OCR runner (§4.4): at most N tasks in flight, results surfaced as
// they complete in unspecified order, and the first task-level error
// cancels the remaining tasks and is returned to the caller. Grounded on
// the channel/worker-pool shape of pipeline.ProcessImagesParallelContext in
// the teacher repository, using golang.org/x/sync/errgroup's bounded
// Group (as sassoftware-pdf-xtract's Processor bounds PDF concurrency with
// the sibling x/sync/semaphore package) instead of a hand-rolled
// WaitGroup/mutex pair.
package workerpool

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Run executes fn over items using at most maxWorkers goroutines at a
// time. It blocks until every item has been processed, ctx is cancelled,
// or fn returns an error; the first such error cancels every not-yet-
// started item and is returned to the caller.
func Run[T any](ctx context.Context, maxWorkers int, items []T, fn func(ctx context.Context, index int, item T) error) error {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	if len(items) == 0 {
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxWorkers)

	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return fn(ctx, i, item)
		})
	}

	return g.Wait()
}
