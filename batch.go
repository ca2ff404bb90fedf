package vrm_normalizer

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// BatchItem is one input to ProcessBatch: a path or URL, and the function
// that turns it into a FileReport. Each item's pipeline instance is
// independent and single-threaded internally (§5); only the scheduling
// across items is concurrent.
type BatchItem struct {
	Path    string
	Process func(ctx context.Context) error
}

// ProcessBatch runs items concurrently, bounded by concurrency (<= 0 means
// runtime.GOMAXPROCS(0), per §6.3), cancelling the group on the first fatal
// error: in-flight items are allowed to finish, but no new item starts once
// one has failed. The returned errors slice is indexed identically to
// items; a nil entry means that item succeeded, and an item that was never
// started holds the group context's error.
func ProcessBatch(ctx context.Context, items []BatchItem, concurrency int) []error {
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}

	errs := make([]error, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i := range items {
		i := i
		start := make(chan bool, 1)
		g.Go(func() error {
			if !<-start {
				errs[i] = gctx.Err()
				return errs[i]
			}
			errs[i] = items[i].Process(gctx)
			return errs[i]
		})
		start <- gctx.Err() == nil
	}

	_ = g.Wait()
	return errs
}
