package worker

import (
	"context"
	"sync"
	"time"

	"github.com/lrocha/leetboard/internal/logger"
)

// Pool runs per-item work with a bounded number of concurrent goroutines.
// It is stateless between calls, so one pool can serve many batches.
type Pool struct {
	workers int
	log     *logger.Logger
}

// NewPool creates a pool. workers below 1 is clamped to 1, which makes Map
// run sequentially.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	log := logger.Default().WithPrefix("worker-pool")
	log.Debug("creating worker pool with %d workers", workers)
	return &Pool{
		workers: workers,
		log:     log,
	}
}

// Workers returns the concurrency bound.
func (p *Pool) Workers() int {
	return p.workers
}

// Map invokes fn once for every index in [0, n), running at most Workers()
// invocations at a time, and blocks until all of them return. fn is
// responsible for honoring ctx; Map never abandons a slot on cancellation,
// so every index is visited exactly once.
func (p *Pool) Map(ctx context.Context, n int, fn func(ctx context.Context, i int)) {
	if n <= 0 {
		return
	}

	workers := p.workers
	if workers > n {
		workers = n
	}

	p.log.Debug("mapping %d items across %d workers", n, workers)
	start := time.Now()

	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			fn(ctx, i)
		}(i)
	}
	wg.Wait()

	p.log.Debug("mapped %d items in %v", n, time.Since(start))
}
