package pool

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestRun_NeverExceedsLimit(t *testing.T) {
	for _, limit := range []int{1, 2, 8} {
		t.Run(fmt.Sprintf("limit %d", limit), func(t *testing.T) {
			var inFlight, peak atomic.Int64

			jobs := make([]int, 50)
			Run(context.Background(), jobs, limit, func(_ context.Context, _ int) (struct{}, error) {
				n := inFlight.Add(1)
				for {
					old := peak.Load()
					if n <= old || peak.CompareAndSwap(old, n) {
						break
					}
				}
				time.Sleep(time.Millisecond)
				inFlight.Add(-1)
				return struct{}{}, nil
			})

			if got := peak.Load(); got > int64(limit) {
				t.Errorf("peak in-flight = %d, exceeds limit %d", got, limit)
			}
		})
	}
}

func TestRun_CapturesEveryOutcome(t *testing.T) {
	jobs := make([]int, 20)
	for i := range jobs {
		jobs[i] = i
	}

	outcomes := Run(context.Background(), jobs, 4, func(_ context.Context, job int) (int, error) {
		if job%3 == 0 {
			return 0, fmt.Errorf("job %d failed", job)
		}
		return job * 10, nil
	})

	if len(outcomes) != len(jobs) {
		t.Fatalf("got %d outcomes, want %d", len(outcomes), len(jobs))
	}
	for i, out := range outcomes {
		if i%3 == 0 {
			if out.Err == nil {
				t.Errorf("job %d: expected error", i)
			}
			continue
		}
		if out.Err != nil {
			t.Errorf("job %d: unexpected error %v", i, out.Err)
		}
		if out.Value != i*10 {
			t.Errorf("job %d: value = %d, want %d", i, out.Value, i*10)
		}
	}
}

func TestRun_FailureDoesNotBlockSiblings(t *testing.T) {
	var succeeded atomic.Int64
	jobs := make([]int, 10)
	for i := range jobs {
		jobs[i] = i
	}

	outcomes := Run(context.Background(), jobs, 2, func(_ context.Context, job int) (int, error) {
		if job == 0 {
			return 0, errors.New("first job fails")
		}
		succeeded.Add(1)
		return job, nil
	})

	if succeeded.Load() != 9 {
		t.Errorf("%d jobs succeeded, want 9", succeeded.Load())
	}
	if outcomes[0].Err == nil {
		t.Error("expected job 0 to fail")
	}
}

func TestRun_StartOrderFollowsSubmission(t *testing.T) {
	var mu sync.Mutex
	var started []int

	jobs := []int{0, 1, 2, 3, 4}
	Run(context.Background(), jobs, 1, func(_ context.Context, job int) (struct{}, error) {
		mu.Lock()
		started = append(started, job)
		mu.Unlock()
		return struct{}{}, nil
	})

	for i, job := range started {
		if job != i {
			t.Fatalf("start order %v, want submission order", started)
		}
	}
}

func TestRun_EmptyJobs(t *testing.T) {
	outcomes := Run(context.Background(), nil, 8, func(_ context.Context, _ int) (int, error) {
		t.Fatal("worker must not run")
		return 0, nil
	})
	if len(outcomes) != 0 {
		t.Errorf("got %d outcomes, want 0", len(outcomes))
	}
}

func TestRun_ZeroLimitTreatedAsOne(t *testing.T) {
	outcomes := Run(context.Background(), []int{1, 2}, 0, func(_ context.Context, job int) (int, error) {
		return job, nil
	})
	if len(outcomes) != 2 {
		t.Fatalf("got %d outcomes, want 2", len(outcomes))
	}
}
