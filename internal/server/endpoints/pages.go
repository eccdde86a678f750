package endpoints

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/docsight/docsight/internal/api"
	"github.com/docsight/docsight/internal/svcctx"
	"github.com/docsight/docsight/internal/types"
)

// maxPageImageBytes caps PUT page-image request bodies.
const maxPageImageBytes = 32 << 20

// pageParams extracts and validates {doc_id} and {page_num} path values.
func pageParams(w http.ResponseWriter, r *http.Request) (string, int, bool) {
	docID := r.PathValue("doc_id")
	if docID == "" {
		writeError(w, http.StatusBadRequest, "doc_id is required")
		return "", 0, false
	}
	page, err := strconv.Atoi(r.PathValue("page_num"))
	if err != nil || page < 1 {
		writeError(w, http.StatusBadRequest, "page_num must be a positive integer")
		return "", 0, false
	}
	return docID, page, true
}

// GetPageOCREndpoint handles GET /page-ocr/{doc_id}/{page_num}.
type GetPageOCREndpoint struct{}

var _ api.Endpoint = (*GetPageOCREndpoint)(nil)

func (e *GetPageOCREndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/page-ocr/{doc_id}/{page_num}", e.handler
}

func (e *GetPageOCREndpoint) RequiresInit() bool { return true }

func (e *GetPageOCREndpoint) handler(w http.ResponseWriter, r *http.Request) {
	docID, page, ok := pageParams(w, r)
	if !ok {
		return
	}

	store := svcctx.StoreFrom(r.Context())
	data, err := store.GetPageOCR(docID, page)
	if err != nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("ocr data for page %d not found", page))
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (e *GetPageOCREndpoint) Command(_ func() string) *cobra.Command {
	return nil
}

// PutPageOCREndpoint handles PUT /page-ocr/{doc_id}/{page_num}.
// The body is a JSON array of OCR text regions.
type PutPageOCREndpoint struct{}

var _ api.Endpoint = (*PutPageOCREndpoint)(nil)

func (e *PutPageOCREndpoint) Route() (string, string, http.HandlerFunc) {
	return "PUT", "/page-ocr/{doc_id}/{page_num}", e.handler
}

func (e *PutPageOCREndpoint) RequiresInit() bool { return true }

func (e *PutPageOCREndpoint) handler(w http.ResponseWriter, r *http.Request) {
	docID, page, ok := pageParams(w, r)
	if !ok {
		return
	}

	var regions []types.OCRTextRegion
	if err := json.NewDecoder(r.Body).Decode(&regions); err != nil {
		writeError(w, http.StatusBadRequest, "body must be a JSON array of ocr regions")
		return
	}

	store := svcctx.StoreFrom(r.Context())
	if err := store.SavePageOCR(docID, page, regions); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"doc_id":  docID,
		"page":    page,
		"regions": len(regions),
	})
}

func (e *PutPageOCREndpoint) Command(_ func() string) *cobra.Command {
	return nil
}

// PageCountResponse is the response for the page count endpoint.
type PageCountResponse struct {
	DocID     string `json:"doc_id"`
	PageCount int    `json:"page_count"`
}

// PageCountEndpoint handles GET /page-count/{doc_id}.
type PageCountEndpoint struct{}

var _ api.Endpoint = (*PageCountEndpoint)(nil)

func (e *PageCountEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/page-count/{doc_id}", e.handler
}

func (e *PageCountEndpoint) RequiresInit() bool { return true }

func (e *PageCountEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	docID := r.PathValue("doc_id")
	if docID == "" {
		writeError(w, http.StatusBadRequest, "doc_id is required")
		return
	}

	store := svcctx.StoreFrom(r.Context())
	count, err := store.PageCount(docID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, PageCountResponse{DocID: docID, PageCount: count})
}

func (e *PageCountEndpoint) Command(getServerURL func() string) *cobra.Command {
	pagesCmd := &cobra.Command{
		Use:   "pages",
		Short: "Page storage operations",
	}
	pagesCmd.AddCommand(&cobra.Command{
		Use:   "count <doc-id>",
		Short: "Stored page count for a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp PageCountResponse
			if err := client.Get(cmd.Context(), "/page-count/"+args[0], &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	})
	return pagesCmd
}

// PageImageEndpoint handles GET /page-image/{doc_id}/{page_num}.
type PageImageEndpoint struct{}

var _ api.Endpoint = (*PageImageEndpoint)(nil)

func (e *PageImageEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/page-image/{doc_id}/{page_num}", e.handler
}

func (e *PageImageEndpoint) RequiresInit() bool { return true }

func (e *PageImageEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	docID, page, ok := pageParams(w, r)
	if !ok {
		return
	}

	store := svcctx.StoreFrom(r.Context())
	imagePath := store.PageImagePath(docID, page)

	file, err := os.Open(imagePath)
	if err != nil {
		if os.IsNotExist(err) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("page %d not found", page))
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	defer file.Close()

	fileInfo, err := file.Stat()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=31536000")
	http.ServeContent(w, r, fmt.Sprintf("page_%04d.png", page), fileInfo.ModTime(), file)
}

func (e *PageImageEndpoint) Command(_ func() string) *cobra.Command {
	return nil
}

// PutPageImageEndpoint handles PUT /page-image/{doc_id}/{page_num}.
// The body is raw PNG bytes.
type PutPageImageEndpoint struct{}

var _ api.Endpoint = (*PutPageImageEndpoint)(nil)

func (e *PutPageImageEndpoint) Route() (string, string, http.HandlerFunc) {
	return "PUT", "/page-image/{doc_id}/{page_num}", e.handler
}

func (e *PutPageImageEndpoint) RequiresInit() bool { return true }

func (e *PutPageImageEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	docID, page, ok := pageParams(w, r)
	if !ok {
		return
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, maxPageImageBytes+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}
	if len(data) == 0 {
		writeError(w, http.StatusBadRequest, "request body is empty")
		return
	}
	if len(data) > maxPageImageBytes {
		writeError(w, http.StatusRequestEntityTooLarge, "page image too large")
		return
	}

	store := svcctx.StoreFrom(r.Context())
	if err := store.SavePageImage(docID, page, data); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"doc_id": docID,
		"page":   page,
		"bytes":  len(data),
	})
}

func (e *PutPageImageEndpoint) Command(_ func() string) *cobra.Command {
	return nil
}

// DeletePageDataEndpoint handles DELETE /page-data/{doc_id}.
type DeletePageDataEndpoint struct{}

var _ api.Endpoint = (*DeletePageDataEndpoint)(nil)

func (e *DeletePageDataEndpoint) Route() (string, string, http.HandlerFunc) {
	return "DELETE", "/page-data/{doc_id}", e.handler
}

func (e *DeletePageDataEndpoint) RequiresInit() bool { return true }

func (e *DeletePageDataEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	docID := r.PathValue("doc_id")
	if docID == "" {
		writeError(w, http.StatusBadRequest, "doc_id is required")
		return
	}

	store := svcctx.StoreFrom(r.Context())
	if err := store.DeleteDocument(docID); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"doc_id": docID, "status": "deleted"})
}

func (e *DeletePageDataEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-pages <doc-id>",
		Short: "Delete all stored page data for a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			if err := client.Delete(cmd.Context(), "/page-data/"+args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted page data for %s\n", args[0])
			return nil
		},
	}
}
