// Package extraction runs field extraction across a set of documents with
// bounded parallelism and per-job retry, assembling results into a grid.
package extraction

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/docsight/docsight/internal/pool"
	"github.com/docsight/docsight/internal/providers"
	"github.com/docsight/docsight/internal/retry"
	"github.com/docsight/docsight/internal/types"
)

// RunnerConfig controls concurrency and retry behavior for a runner.
type RunnerConfig struct {
	// MaxConcurrent caps in-flight extraction calls. Zero means
	// pool.DefaultLimit.
	MaxConcurrent int

	// MaxRetries is how many retryable failures each job absorbs before
	// giving up. Zero means the retry package default.
	MaxRetries int

	// RetryDelay is the base backoff delay. Zero means the retry package
	// default.
	RetryDelay time.Duration
}

// Runner executes extraction runs against a provider.
type Runner struct {
	provider providers.Client
	cfg      RunnerConfig
	logger   *slog.Logger
}

// NewRunner creates a runner. A nil logger falls back to slog.Default.
func NewRunner(provider providers.Client, cfg RunnerConfig, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		provider: provider,
		cfg:      cfg,
		logger:   logger.With("component", "extraction"),
	}
}

// Run extracts every field from every document and returns the completed
// grid. Converting documents appear in the grid with nil cells but spawn no
// jobs. A job that exhausts its retries leaves a nil cell; it never aborts
// the run or disturbs sibling jobs.
func (r *Runner) Run(ctx context.Context, documents []Document, fields []Field) Grid {
	runID := uuid.NewString()
	jobs := BuildJobs(documents, fields)

	logger := r.logger.With("run_id", runID, "provider", r.provider.Name())
	logger.Info("starting extraction run",
		"documents", len(documents),
		"fields", len(fields),
		"jobs", len(jobs),
	)

	started := time.Now()
	outcomes := pool.Run(ctx, jobs, r.cfg.MaxConcurrent, func(ctx context.Context, job Job) (*types.ExtractionCell, error) {
		return r.extractOne(ctx, job)
	})

	grid := newGrid(documents, fields)
	failed := 0
	for i, outcome := range outcomes {
		job := jobs[i]
		if outcome.Err != nil {
			failed++
			logger.Warn("extraction job failed",
				"document_id", job.DocumentID,
				"field_id", job.FieldID,
				"error", outcome.Err,
			)
			continue
		}
		grid[job.DocumentID][job.FieldID] = outcome.Value
	}

	logger.Info("extraction run complete",
		"jobs", len(jobs),
		"failed", failed,
		"duration", time.Since(started),
	)
	return grid
}

func (r *Runner) extractOne(ctx context.Context, job Job) (*types.ExtractionCell, error) {
	raw, err := retry.Do(ctx, r.retryConfig(), func() (string, error) {
		return r.provider.Extract(ctx, &providers.ExtractRequest{
			DocumentText: job.DocumentText,
			FieldName:    job.FieldName,
			FieldPrompt:  job.FieldPrompt,
			FormatHint:   job.FieldTypeHint,
		})
	})
	if err != nil {
		return nil, err
	}
	return ParseCell(raw)
}

// SuggestPrompt drafts an extraction prompt for a field, with the same
// retry policy as extraction jobs.
func (r *Runner) SuggestPrompt(ctx context.Context, fieldName, description string) (string, error) {
	return retry.Do(ctx, r.retryConfig(), func() (string, error) {
		return r.provider.SuggestPrompt(ctx, fieldName, description)
	})
}

// Chat answers a free-form question about a document, with the same retry
// policy as extraction jobs.
func (r *Runner) Chat(ctx context.Context, documentText, question string) (string, error) {
	return retry.Do(ctx, r.retryConfig(), func() (string, error) {
		return r.provider.Chat(ctx, documentText, question)
	})
}

func (r *Runner) retryConfig() retry.Config {
	return retry.Config{
		MaxRetries:   r.cfg.MaxRetries,
		InitialDelay: r.cfg.RetryDelay,
		MaxJitter:    r.cfg.RetryDelay,
	}
}

// newGrid pre-populates every (document, field) key with a nil cell so the
// grid shape is complete regardless of which jobs succeed.
func newGrid(documents []Document, fields []Field) Grid {
	grid := make(Grid, len(documents))
	for _, doc := range documents {
		row := make(map[string]*types.ExtractionCell, len(fields))
		for _, field := range fields {
			row[field.ID] = nil
		}
		grid[doc.ID] = row
	}
	return grid
}
