package providers

import (
	"fmt"
	"strings"
)

const extractionSystemPrompt = `You are a document data extraction engine.
Given a document and a field description, extract the requested value.

Respond with ONLY a JSON object with these keys:
  "value":      the extracted value as a string
  "confidence": "High", "Medium", or "Low"
  "quote":      the verbatim supporting quote from the document
  "page":       the 1-indexed page number the quote appears on
  "reasoning":  one sentence explaining the answer

If the document does not contain the requested information, return an empty
"value" with "Low" confidence.`

const promptAssistSystemPrompt = `You help analysts write extraction prompts.
Given a field name and a rough description, reply with a single precise
instruction for extracting that field from a document. Reply with the
instruction only, no preamble.`

const chatSystemPrompt = `You answer questions about a document. Base every
answer strictly on the document text provided; say so when the document does
not contain the answer.`

// buildExtractionPrompt assembles the user message for one extraction call.
func buildExtractionPrompt(req *ExtractRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Field: %s\n", req.FieldName)
	fmt.Fprintf(&b, "Instruction: %s\n", req.FieldPrompt)
	if req.FormatHint != "" {
		fmt.Fprintf(&b, "Expected format: %s\n", req.FormatHint)
	}
	fmt.Fprintf(&b, "\nDocument:\n%s", req.DocumentText)
	return b.String()
}
