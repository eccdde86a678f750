package endpoints

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/docsight/docsight/internal/api"
	"github.com/docsight/docsight/internal/svcctx"
)

// SuggestPromptRequest is the request body for POST /api/suggest-prompt.
type SuggestPromptRequest struct {
	FieldName   string `json:"field_name"`
	Description string `json:"description"`
}

// SuggestPromptResponse is the response for POST /api/suggest-prompt.
type SuggestPromptResponse struct {
	Prompt string `json:"prompt"`
}

// SuggestPromptEndpoint handles POST /api/suggest-prompt.
type SuggestPromptEndpoint struct{}

var _ api.Endpoint = (*SuggestPromptEndpoint)(nil)

func (e *SuggestPromptEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/suggest-prompt", e.handler
}

func (e *SuggestPromptEndpoint) RequiresInit() bool { return true }

func (e *SuggestPromptEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req SuggestPromptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.FieldName == "" {
		writeError(w, http.StatusBadRequest, "field_name is required")
		return
	}

	runner := svcctx.ExtractorFrom(r.Context())
	prompt, err := runner.SuggestPrompt(r.Context(), req.FieldName, req.Description)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, SuggestPromptResponse{Prompt: prompt})
}

func (e *SuggestPromptEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "suggest-prompt <field-name> [description]",
		Short: "Draft an extraction prompt for a field",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := SuggestPromptRequest{FieldName: args[0]}
			if len(args) > 1 {
				req.Description = args[1]
			}

			client := api.NewClient(getServerURL())
			var resp SuggestPromptResponse
			if err := client.Post(cmd.Context(), "/api/suggest-prompt", req, &resp); err != nil {
				return err
			}
			fmt.Println(resp.Prompt)
			return nil
		},
	}
}

// ChatRequest is the request body for POST /api/chat.
type ChatRequest struct {
	DocumentText string `json:"document_text"`
	Question     string `json:"question"`
}

// ChatResponse is the response for POST /api/chat.
type ChatResponse struct {
	Answer string `json:"answer"`
}

// ChatEndpoint handles POST /api/chat.
type ChatEndpoint struct{}

var _ api.Endpoint = (*ChatEndpoint)(nil)

func (e *ChatEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/chat", e.handler
}

func (e *ChatEndpoint) RequiresInit() bool { return true }

func (e *ChatEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Question == "" {
		writeError(w, http.StatusBadRequest, "question is required")
		return
	}

	runner := svcctx.ExtractorFrom(r.Context())
	answer, err := runner.Chat(r.Context(), req.DocumentText, req.Question)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, ChatResponse{Answer: answer})
}

func (e *ChatEndpoint) Command(_ func() string) *cobra.Command {
	return nil
}
