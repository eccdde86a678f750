// Package pool runs batches of jobs under a fixed concurrency ceiling.
//
// Unbounded fan-out of document×field extraction jobs (commonly >100
// simultaneous calls) exhausts the outbound connection pool and produces
// spurious network failures; bounding concurrency is the primary fix, with
// the retry executor as the safety net for whatever transients remain.
package pool

import (
	"context"
	"sync"
)

// DefaultLimit caps in-flight jobs when the caller passes no explicit limit.
const DefaultLimit = 8

// Outcome captures one job's result or failure, indexed by submission
// order. One job failing never cancels or blocks its siblings.
type Outcome[R any] struct {
	Value R
	Err   error
}

// Run executes worker over jobs with at most limit in flight. Job start
// order follows slice order; completion order is unconstrained, so callers
// must key results by job identity, never by completion sequence.
func Run[J, R any](ctx context.Context, jobs []J, limit int, worker func(context.Context, J) (R, error)) []Outcome[R] {
	if limit < 1 {
		limit = 1
	}

	outcomes := make([]Outcome[R], len(jobs))
	sem := make(chan struct{}, limit)
	var wg sync.WaitGroup

	for i, job := range jobs {
		// Acquire before spawning so start order follows submission order.
		sem <- struct{}{}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			value, err := worker(ctx, job)
			outcomes[i] = Outcome[R]{Value: value, Err: err}
		}()
	}

	wg.Wait()
	return outcomes
}
