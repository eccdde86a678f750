package extraction

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/docsight/docsight/internal/types"
)

// cellSchemaJSON is the shape the remote endpoint must produce. No key is
// required (missing keys get defaults), but present keys must have sane
// types. Default substitution lives here, not at call sites.
const cellSchemaJSON = `{
	"type": "object",
	"properties": {
		"value":      {"type": ["string", "number", "boolean", "null"]},
		"confidence": {"type": ["string", "null"]},
		"quote":      {"type": ["string", "null"]},
		"page":       {"type": ["integer", "number", "string", "null"]},
		"reasoning":  {"type": ["string", "null"]}
	}
}`

var cellSchema = jsonschema.MustCompileString("cell.json", cellSchemaJSON)

// ParseCell decodes a remote extraction response into a cell. Missing keys
// default: empty value/quote/reasoning, Low confidence, page 1. Fresh cells
// start as needs_review. A response that is not JSON, not an object, or
// fails schema validation is an error; callers treat that as a job failure,
// never a fatal one.
func ParseCell(raw string) (*types.ExtractionCell, error) {
	payload, err := extractJSON(raw)
	if err != nil {
		return nil, err
	}

	var doc map[string]any
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("response is not a JSON object: %w", err)
	}
	if err := cellSchema.Validate(map[string]any(doc)); err != nil {
		return nil, fmt.Errorf("response does not match cell schema: %w", err)
	}

	cell := &types.ExtractionCell{
		Confidence:   types.ConfidenceLow,
		Page:         1,
		ReviewStatus: types.ReviewNeedsReview,
	}

	if v, ok := doc["value"]; ok && v != nil {
		if s, isStr := v.(string); isStr {
			cell.Value = s
		} else {
			cell.Value = fmt.Sprint(v)
		}
	}
	if v, ok := doc["confidence"].(string); ok {
		cell.Confidence = parseConfidence(v)
	}
	if v, ok := doc["quote"].(string); ok {
		cell.Quote = v
	}
	if v, ok := doc["reasoning"].(string); ok {
		cell.Reasoning = v
	}
	if page, ok := parsePage(doc["page"]); ok {
		cell.Page = page
	}

	return cell, nil
}

func parseConfidence(v string) types.ConfidenceLevel {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "high":
		return types.ConfidenceHigh
	case "medium":
		return types.ConfidenceMedium
	default:
		return types.ConfidenceLow
	}
}

// parsePage coerces the remote page value to a 1-indexed page number.
// Anything below 1 falls back to 1.
func parsePage(v any) (int, bool) {
	var page int
	switch n := v.(type) {
	case float64:
		page = int(n)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		page = parsed
	default:
		return 0, false
	}
	if page < 1 {
		page = 1
	}
	return page, true
}

// extractJSON pulls the JSON object out of a model response, stripping
// markdown code fences and surrounding prose when present.
func extractJSON(raw string) (json.RawMessage, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("empty response")
	}

	candidates := []string{trimmed}
	if stripped := stripCodeFences(trimmed); stripped != "" {
		candidates = append(candidates, stripped)
	}
	if start, end := strings.Index(trimmed, "{"), strings.LastIndex(trimmed, "}"); start >= 0 && end > start {
		candidates = append(candidates, trimmed[start:end+1])
	}

	for _, candidate := range candidates {
		var obj map[string]any
		if json.Unmarshal([]byte(candidate), &obj) == nil {
			return json.RawMessage(candidate), nil
		}
	}
	return nil, fmt.Errorf("no JSON object found in response")
}

func stripCodeFences(content string) string {
	if !strings.HasPrefix(content, "```") {
		return ""
	}
	lines := strings.Split(content, "\n")
	if len(lines) < 2 {
		return ""
	}
	lines = lines[1:]
	if strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
