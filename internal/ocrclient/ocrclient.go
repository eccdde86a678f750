// Package ocrclient talks to a remote page server over HTTP, exposing the
// same page fetch operations the local page store provides.
package ocrclient

import (
	"context"
	"fmt"

	"github.com/docsight/docsight/internal/api"
	"github.com/docsight/docsight/internal/types"
)

// Client fetches page OCR data and page metadata from a remote server.
type Client struct {
	api *api.Client
}

// New creates a client for the server at baseURL.
func New(baseURL string) *Client {
	return &Client{api: api.NewClient(baseURL)}
}

// FetchPageOCR retrieves the OCR data for one page. Pages are 1-indexed.
func (c *Client) FetchPageOCR(ctx context.Context, docID string, page int) (*types.PageOCRData, error) {
	var data types.PageOCRData
	path := fmt.Sprintf("/page-ocr/%s/%d", docID, page)
	if err := c.api.Get(ctx, path, &data); err != nil {
		return nil, fmt.Errorf("failed to fetch page ocr: %w", err)
	}
	if data.Page == 0 {
		data.Page = page
	}
	return &data, nil
}

// PageCount retrieves the number of stored pages for a document.
func (c *Client) PageCount(ctx context.Context, docID string) (int, error) {
	var resp struct {
		PageCount int `json:"page_count"`
	}
	if err := c.api.Get(ctx, "/page-count/"+docID, &resp); err != nil {
		return 0, fmt.Errorf("failed to fetch page count: %w", err)
	}
	return resp.PageCount, nil
}

// FetchPageImage retrieves the PNG bytes for one page.
func (c *Client) FetchPageImage(ctx context.Context, docID string, page int) ([]byte, error) {
	path := fmt.Sprintf("/page-image/%s/%d", docID, page)
	data, err := c.api.GetRaw(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page image: %w", err)
	}
	return data, nil
}
