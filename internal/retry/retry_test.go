package retry

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
	"testing"
)

// fastConfig keeps test backoff delays negligible.
func fastConfig(maxRetries int) Config {
	return Config{MaxRetries: maxRetries, InitialDelay: 1, MaxJitter: 1}
}

func TestDo_SucceedsAfterRateLimits(t *testing.T) {
	const failures = 3
	calls := 0
	result, err := Do(context.Background(), fastConfig(5), func() (string, error) {
		calls++
		if calls <= failures {
			return "", &HTTPError{StatusCode: 429, Body: "rate limited"}
		}
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "ok" {
		t.Errorf("result = %q, want %q", result, "ok")
	}
	if calls != failures+1 {
		t.Errorf("op invoked %d times, want %d", calls, failures+1)
	}
}

func TestDo_NonRetryablePropagatesImmediately(t *testing.T) {
	calls := 0
	_, err := Do(context.Background(), fastConfig(5), func() (string, error) {
		calls++
		return "", &HTTPError{StatusCode: 401, Body: "unauthorized"}
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("op invoked %d times, want 1", calls)
	}
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) || httpErr.StatusCode != 401 {
		t.Errorf("expected the 401 to propagate, got %v", err)
	}
}

func TestDo_ExhaustsRetries(t *testing.T) {
	calls := 0
	_, err := Do(context.Background(), fastConfig(2), func() (int, error) {
		calls++
		return 0, &HTTPError{StatusCode: 503}
	})
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	// MaxRetries retryable failures absorbed, then the final attempt's
	// error propagates: MaxRetries+1 invocations total.
	if calls != 3 {
		t.Errorf("op invoked %d times, want 3", calls)
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"429", &HTTPError{StatusCode: 429}, true},
		{"502", &HTTPError{StatusCode: 502}, true},
		{"503", &HTTPError{StatusCode: 503}, true},
		{"401", &HTTPError{StatusCode: 401}, false},
		{"404", &HTTPError{StatusCode: 404}, false},
		{"500", &HTTPError{StatusCode: 500}, false},
		{"connection reset", syscall.ECONNRESET, true},
		{"net op error", &net.OpError{Op: "dial", Err: errors.New("refused")}, true},
		{"rate limit message", fmt.Errorf("provider said: rate limit exceeded"), true},
		{"plain error", errors.New("invalid request payload"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
