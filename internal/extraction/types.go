package extraction

import "github.com/docsight/docsight/internal/types"

// Document is one unit of source material for an extraction run.
type Document struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
	Text string `json:"text"`

	// Converting marks a document whose text layer is still being
	// produced; converting documents are excluded from the job set.
	Converting bool `json:"converting,omitempty"`
}

// Field describes one value to extract from every document.
type Field struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Prompt   string `json:"prompt"`
	TypeHint string `json:"type_hint,omitempty"`
}

// Job is one (document, field) pair bound for the remote endpoint.
// Immutable once built; discarded after its result is recorded.
type Job struct {
	DocumentID    string
	FieldID       string
	FieldName     string
	DocumentText  string
	FieldPrompt   string
	FieldTypeHint string
}

// Grid maps document ID to field ID to cell. A nil cell marks a field that
// failed after exhausting retries; every requested pair is always present.
type Grid map[string]map[string]*types.ExtractionCell

// BuildJobs returns the full cartesian (document × field) job set,
// excluding documents that are still converting.
func BuildJobs(documents []Document, fields []Field) []Job {
	jobs := make([]Job, 0, len(documents)*len(fields))
	for _, doc := range documents {
		if doc.Converting {
			continue
		}
		for _, field := range fields {
			jobs = append(jobs, Job{
				DocumentID:    doc.ID,
				FieldID:       field.ID,
				FieldName:     field.Name,
				DocumentText:  doc.Text,
				FieldPrompt:   field.Prompt,
				FieldTypeHint: field.TypeHint,
			})
		}
	}
	return jobs
}
