package providers

import (
	"context"
	"errors"
	"net/http"
	"time"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/docsight/docsight/internal/retry"
)

const (
	// OpenAIName is the provider identifier.
	OpenAIName = "openai"

	openAIDefaultModel = openai.ChatModelGPT4o
)

// OpenAIConfig holds configuration for the OpenAI extraction client.
type OpenAIConfig struct {
	APIKey      string
	Model       string
	Temperature float64
	Timeout     time.Duration // HTTP timeout (default 120s)
	BaseURL     string        // Optional (tests)
	HTTPClient  *http.Client  // Optional (tests)
}

// OpenAIClient implements Client using the official OpenAI SDK.
type OpenAIClient struct {
	model       string
	temperature float64
	client      openai.Client
}

var _ Client = (*OpenAIClient)(nil)

// NewOpenAIClient creates a new OpenAI-backed extraction client. SDK-level
// retries are disabled: the shared retry executor owns backoff for every
// remote call site.
func NewOpenAIClient(cfg OpenAIConfig) *OpenAIClient {
	if cfg.Model == "" {
		cfg.Model = openAIDefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 120 * time.Second
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &OpenAIClient{
		model:       cfg.Model,
		temperature: cfg.Temperature,
		client:      openai.NewClient(opts...),
	}
}

// Name returns the provider identifier.
func (c *OpenAIClient) Name() string {
	return OpenAIName
}

// Extract answers a single field against a document.
func (c *OpenAIClient) Extract(ctx context.Context, req *ExtractRequest) (string, error) {
	return c.complete(ctx, extractionSystemPrompt, buildExtractionPrompt(req))
}

// SuggestPrompt drafts an extraction prompt for a field description.
func (c *OpenAIClient) SuggestPrompt(ctx context.Context, fieldName, description string) (string, error) {
	user := "Field name: " + fieldName + "\nDescription: " + description
	return c.complete(ctx, promptAssistSystemPrompt, user)
}

// Chat answers a free-form reviewer question about a document.
func (c *OpenAIClient) Chat(ctx context.Context, documentText, question string) (string, error) {
	user := "Document:\n" + documentText + "\n\nQuestion: " + question
	return c.complete(ctx, chatSystemPrompt, user)
}

func (c *OpenAIClient) complete(ctx context.Context, system, user string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.model),
		Temperature: openai.Float(c.temperature),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
	})
	if err != nil {
		return "", classifyError(err)
	}
	if len(resp.Choices) == 0 {
		// Upstream flake: surface as a transient so the executor retries.
		return "", &retry.HTTPError{StatusCode: http.StatusBadGateway, Body: "empty choices in response"}
	}
	return resp.Choices[0].Message.Content, nil
}

// classifyError maps SDK errors onto the retry taxonomy so status codes
// survive the error chain.
func classifyError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return &retry.HTTPError{StatusCode: apiErr.StatusCode, Body: apiErr.Message}
	}
	return err
}
