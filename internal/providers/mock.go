package providers

import (
	"context"
	"sync/atomic"

	"github.com/docsight/docsight/internal/retry"
)

// MockClientName is the mock provider identifier.
const MockClientName = "mock"

// MockClient is a Client for testing.
type MockClient struct {
	// Response returned by every call unless a func override is set.
	Response string

	// FailFirst makes the first N calls fail with FailWith before
	// succeeding. Useful for exercising retry paths.
	FailFirst int
	FailWith  error

	// Optional per-operation overrides.
	ExtractFunc func(ctx context.Context, req *ExtractRequest) (string, error)

	calls atomic.Int64
}

var _ Client = (*MockClient)(nil)

// NewMockClient creates a mock that returns response for every call.
func NewMockClient(response string) *MockClient {
	return &MockClient{
		Response: response,
		FailWith: &retry.HTTPError{StatusCode: 429, Body: "rate limited"},
	}
}

// Name returns the provider identifier.
func (c *MockClient) Name() string {
	return MockClientName
}

// Calls returns how many requests the mock has served.
func (c *MockClient) Calls() int64 {
	return c.calls.Load()
}

// Extract returns the canned response, honoring FailFirst.
func (c *MockClient) Extract(ctx context.Context, req *ExtractRequest) (string, error) {
	if c.ExtractFunc != nil {
		c.calls.Add(1)
		return c.ExtractFunc(ctx, req)
	}
	return c.respond()
}

// SuggestPrompt returns the canned response, honoring FailFirst.
func (c *MockClient) SuggestPrompt(_ context.Context, _, _ string) (string, error) {
	return c.respond()
}

// Chat returns the canned response, honoring FailFirst.
func (c *MockClient) Chat(_ context.Context, _, _ string) (string, error) {
	return c.respond()
}

func (c *MockClient) respond() (string, error) {
	n := c.calls.Add(1)
	if n <= int64(c.FailFirst) {
		return "", c.FailWith
	}
	return c.Response, nil
}
