package endpoints

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/docsight/docsight/internal/api"
	"github.com/docsight/docsight/internal/svcctx"
	"github.com/docsight/docsight/internal/textmatch"
	"github.com/docsight/docsight/internal/types"
)

// GroundRequest is the request body for POST /api/ground.
type GroundRequest struct {
	DocID string `json:"doc_id"`
	Quote string `json:"quote"`

	// TotalPages limits the search. Zero means every stored page.
	TotalPages int `json:"total_pages,omitempty"`

	// Threshold overrides the configured minimum similarity score.
	Threshold float64 `json:"threshold,omitempty"`
}

// GroundResponse is the response for POST /api/ground.
type GroundResponse struct {
	DocID   string                `json:"doc_id"`
	Matches types.GroundingResult `json:"matches"`
}

// GroundEndpoint handles POST /api/ground.
type GroundEndpoint struct{}

var _ api.Endpoint = (*GroundEndpoint)(nil)

func (e *GroundEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/ground", e.handler
}

func (e *GroundEndpoint) RequiresInit() bool { return true }

func (e *GroundEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req GroundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.DocID == "" {
		writeError(w, http.StatusBadRequest, "doc_id is required")
		return
	}

	services := svcctx.ServicesFrom(r.Context())

	totalPages := req.TotalPages
	if totalPages <= 0 {
		count, err := services.Store.PageCount(req.DocID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		totalPages = count
	}

	threshold := req.Threshold
	if threshold <= 0 {
		threshold = services.Config.Get().Grounding.Threshold
	}
	if threshold <= 0 {
		threshold = textmatch.DefaultThreshold
	}

	matches := services.Grounder.FindQuoteAcrossPages(r.Context(), req.DocID, totalPages, req.Quote, threshold)
	writeJSON(w, http.StatusOK, GroundResponse{DocID: req.DocID, Matches: matches})
}

func (e *GroundEndpoint) Command(getServerURL func() string) *cobra.Command {
	var totalPages int
	var threshold float64

	cmd := &cobra.Command{
		Use:   "ground <doc-id> <quote>",
		Short: "Locate a quote on a document's pages",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := GroundRequest{
				DocID:      args[0],
				Quote:      strings.Join(args[1:], " "),
				TotalPages: totalPages,
				Threshold:  threshold,
			}

			client := api.NewClient(getServerURL())
			var resp GroundResponse
			if err := client.Post(cmd.Context(), "/api/ground", req, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().IntVar(&totalPages, "pages", 0, "number of pages to search (default: all stored pages)")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "minimum similarity score (default: configured value)")
	return cmd
}
