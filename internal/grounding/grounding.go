// Package grounding locates a cell's supporting quote across every page of
// a document, producing the highlightable regions a reviewer sees.
package grounding

import (
	"context"
	"log/slog"
	"sync"

	"github.com/docsight/docsight/internal/textmatch"
	"github.com/docsight/docsight/internal/types"
)

// PageFetcher supplies pre-computed OCR data for one page of a document.
// Implemented by the local page store and the remote OCR server client.
type PageFetcher interface {
	FetchPageOCR(ctx context.Context, docID string, page int) (*types.PageOCRData, error)
}

// Finder runs the region matcher over every page of a document.
type Finder struct {
	fetcher PageFetcher
	logger  *slog.Logger
}

// NewFinder creates a Finder over the given page source.
func NewFinder(fetcher PageFetcher, logger *slog.Logger) *Finder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Finder{
		fetcher: fetcher,
		logger:  logger.With("component", "grounding"),
	}
}

// FindQuoteAcrossPages fetches OCR data for pages 1..totalPages in parallel
// and returns the pages whose best matching region run clears threshold.
//
// Grounding is best-effort: a page whose fetch fails is treated as having
// no data, and pages below threshold are omitted entirely rather than
// included empty. An empty quote or zero pages returns an empty mapping
// without issuing any fetch. Page counts are small, so the fan-out is
// unbounded; extraction jobs go through the bounded pool instead.
func (f *Finder) FindQuoteAcrossPages(ctx context.Context, docID string, totalPages int, quote string, threshold float64) types.GroundingResult {
	result := make(types.GroundingResult)
	if quote == "" || totalPages <= 0 {
		return result
	}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)

	for page := 1; page <= totalPages; page++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			data, err := f.fetcher.FetchPageOCR(ctx, docID, page)
			if err != nil || data == nil {
				f.logger.Debug("page OCR unavailable", "doc_id", docID, "page", page, "error", err)
				return
			}

			quads := textmatch.MatchQuoteToRegions(quote, *data, threshold)
			if len(quads) == 0 {
				return
			}

			mu.Lock()
			result[page] = quads
			mu.Unlock()
		}()
	}

	wg.Wait()
	return result
}
