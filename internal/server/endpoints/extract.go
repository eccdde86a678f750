package endpoints

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/docsight/docsight/internal/api"
	"github.com/docsight/docsight/internal/extraction"
	"github.com/docsight/docsight/internal/svcctx"
)

// ExtractRequest is the request body for POST /api/extract.
type ExtractRequest struct {
	Documents []extraction.Document `json:"documents"`
	Fields    []extraction.Field    `json:"fields"`
}

// ExtractResponse is the response for POST /api/extract.
type ExtractResponse struct {
	Grid extraction.Grid `json:"grid"`
}

// ExtractEndpoint handles POST /api/extract.
type ExtractEndpoint struct{}

var _ api.Endpoint = (*ExtractEndpoint)(nil)

func (e *ExtractEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/extract", e.handler
}

func (e *ExtractEndpoint) RequiresInit() bool { return true }

func (e *ExtractEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if len(req.Fields) == 0 {
		writeError(w, http.StatusBadRequest, "at least one field is required")
		return
	}
	for _, doc := range req.Documents {
		if doc.ID == "" {
			writeError(w, http.StatusBadRequest, "every document needs an id")
			return
		}
	}
	for _, field := range req.Fields {
		if field.ID == "" || field.Prompt == "" {
			writeError(w, http.StatusBadRequest, "every field needs an id and a prompt")
			return
		}
	}

	runner := svcctx.ExtractorFrom(r.Context())
	grid := runner.Run(r.Context(), req.Documents, req.Fields)
	writeJSON(w, http.StatusOK, ExtractResponse{Grid: grid})
}

func (e *ExtractEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "extract <request.json>",
		Short: "Run field extraction from a JSON request file",
		Long: `Run an extraction request against the server.

The request file holds documents and fields:
  {"documents": [{"id": "d1", "text": "..."}],
   "fields": [{"id": "f1", "name": "Party", "prompt": "..."}]}`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var req ExtractRequest
			if err := json.Unmarshal(data, &req); err != nil {
				return err
			}

			client := api.NewClient(getServerURL())
			var resp ExtractResponse
			if err := client.Post(cmd.Context(), "/api/extract", req, &resp); err != nil {
				return err
			}
			return api.Output(resp.Grid)
		},
	}
}
