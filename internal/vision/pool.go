package vision

import (
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers bounds the parallel recognition sub-work per frame.
const DefaultWorkers = 3

// Pool runs independent recognition sub-tasks concurrently with a bounded
// worker count. A nil Pool degrades to sequential execution.
type Pool struct {
	workers int
}

func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Pool{workers: workers}
}

// MapN runs fn for every index in [0, n). It returns once all calls have
// finished; fn must record its own results.
func MapN(p *Pool, n int, fn func(i int)) {
	if p == nil || n <= 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	var g errgroup.Group
	g.SetLimit(p.workers)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			fn(i)
			return nil
		})
	}
	// fn never returns an error, so the join cannot fail.
	_ = g.Wait()
}
