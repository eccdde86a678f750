// Package providers implements clients for the remote model endpoint that
// answers extraction, prompt-assist, and chat requests. Clients return raw
// response bodies; decoding into cells happens in one place
// (extraction.ParseCell), never in a client.
package providers

import "context"

// ExtractRequest is one extraction call for a single (document, field) pair.
type ExtractRequest struct {
	DocumentText string
	FieldName    string
	FieldPrompt  string
	FormatHint   string
}

// Client is the remote model endpoint. All three operations are plain
// remote calls: retry and concurrency policy live with the callers, so the
// shared retry executor can wrap every call site identically.
type Client interface {
	// Name returns the client identifier (e.g., "openai").
	Name() string

	// Extract answers a single field against a document, returning the raw
	// response body (expected to be JSON, but not parsed here).
	Extract(ctx context.Context, req *ExtractRequest) (string, error)

	// SuggestPrompt drafts an extraction prompt for a field description.
	SuggestPrompt(ctx context.Context, fieldName, description string) (string, error)

	// Chat answers a free-form reviewer question about a document.
	Chat(ctx context.Context, documentText, question string) (string, error)
}
