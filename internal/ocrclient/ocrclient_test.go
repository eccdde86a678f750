package ocrclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/docsight/docsight/internal/grounding"
)

// Client must satisfy the grounding fetcher so remote pages can be searched.
var _ grounding.PageFetcher = (*Client)(nil)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /page-ocr/{doc_id}/{page_num}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("doc_id") != "doc1" || r.PathValue("page_num") != "2" {
			http.Error(w, `{"error": "not found"}`, http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"page": 2, "regions": [{"bbox": [[0,0],[10,0],[10,5],[0,5]], "text": "hello", "confidence": 0.9}]}`))
	})
	mux.HandleFunc("GET /page-count/{doc_id}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"doc_id": "doc1", "page_count": 7}`))
	})
	mux.HandleFunc("GET /page-image/{doc_id}/{page_num}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("png-bytes"))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchPageOCR(t *testing.T) {
	srv := newTestServer(t)
	client := New(srv.URL)

	page, err := client.FetchPageOCR(context.Background(), "doc1", 2)
	if err != nil {
		t.Fatalf("FetchPageOCR failed: %v", err)
	}
	if page.Page != 2 {
		t.Errorf("page = %d, want 2", page.Page)
	}
	if len(page.Regions) != 1 || page.Regions[0].Text != "hello" {
		t.Errorf("unexpected regions: %+v", page.Regions)
	}
	if page.Regions[0].BBox[2] != [2]float64{10, 5} {
		t.Errorf("bbox corner = %v", page.Regions[0].BBox[2])
	}

	if _, err := client.FetchPageOCR(context.Background(), "doc2", 1); err == nil {
		t.Error("expected error for missing page")
	}
}

func TestPageCount(t *testing.T) {
	srv := newTestServer(t)
	client := New(srv.URL)

	count, err := client.PageCount(context.Background(), "doc1")
	if err != nil {
		t.Fatalf("PageCount failed: %v", err)
	}
	if count != 7 {
		t.Errorf("count = %d, want 7", count)
	}
}

func TestFetchPageImage(t *testing.T) {
	srv := newTestServer(t)
	client := New(srv.URL)

	data, err := client.FetchPageImage(context.Background(), "doc1", 1)
	if err != nil {
		t.Fatalf("FetchPageImage failed: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Errorf("unexpected image bytes: %q", data)
	}
}
