package clue

import "golang.org/x/sync/errgroup"

// parallelFor splits [0, n) into at most numWorkers contiguous ranges and
// calls fn on each range from its own goroutine. It returns once every range
// is done, so each call is a full barrier between pipeline phases. With
// numWorkers <= 1 it runs fn(0, n) on the calling goroutine.
//
// Ranges never overlap, so fn may write per-index results without
// synchronization.
func parallelFor(n, numWorkers int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	if numWorkers <= 1 || n == 1 {
		fn(0, n)
		return
	}

	var g errgroup.Group
	g.SetLimit(numWorkers)

	perWorker := (n + numWorkers - 1) / numWorkers
	for start := 0; start < n; start += perWorker {
		end := min(start+perWorker, n)
		g.Go(func() error {
			fn(start, end)
			return nil
		})
	}

	// fn reports no errors; Wait is only the barrier.
	_ = g.Wait()
}
