// Package retry wraps remote calls with exponential backoff on transient
// failures. Every remote call site in docsight (extraction, prompt assist,
// chat) goes through the same executor; it never special-cases callers.
package retry

import (
	"context"
	"time"

	retrygo "github.com/avast/retry-go/v4"
)

const (
	// DefaultMaxRetries is the number of retryable failures absorbed before
	// the last error propagates.
	DefaultMaxRetries = 5

	// DefaultInitialDelay is the delay before the first retry; retry n
	// waits InitialDelay * 2^(n-1) plus jitter.
	DefaultInitialDelay = time.Second

	// DefaultMaxJitter is the upper bound on the random jitter added to
	// each backoff delay.
	DefaultMaxJitter = time.Second
)

// Config controls backoff behavior. The zero value uses the defaults above.
type Config struct {
	MaxRetries   int
	InitialDelay time.Duration
	MaxJitter    time.Duration
}

func (c Config) withDefaults() Config {
	if c.MaxRetries <= 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	if c.InitialDelay <= 0 {
		c.InitialDelay = DefaultInitialDelay
	}
	if c.MaxJitter <= 0 {
		c.MaxJitter = DefaultMaxJitter
	}
	return c
}

// Do invokes op until it succeeds, fails with a non-retryable error, or
// MaxRetries retryable failures have been absorbed (so op runs at most
// MaxRetries+1 times). Non-retryable errors propagate on first occurrence.
func Do[T any](ctx context.Context, cfg Config, op func() (T, error)) (T, error) {
	cfg = cfg.withDefaults()
	return retrygo.DoWithData(
		op,
		retrygo.Context(ctx),
		retrygo.Attempts(uint(cfg.MaxRetries)+1),
		retrygo.Delay(cfg.InitialDelay),
		retrygo.MaxJitter(cfg.MaxJitter),
		retrygo.DelayType(retrygo.CombineDelay(retrygo.BackOffDelay, retrygo.RandomDelay)),
		retrygo.RetryIf(IsRetryable),
		retrygo.LastErrorOnly(true),
	)
}
