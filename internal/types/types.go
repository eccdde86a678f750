// Package types holds the data shapes that cross the extraction and
// grounding boundaries: cells produced by extraction runs, OCR regions
// supplied by the page server, and the quads handed back to reviewers.
package types

// ConfidenceLevel is the model's self-reported confidence in a cell value.
type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "High"
	ConfidenceMedium ConfidenceLevel = "Medium"
	ConfidenceLow    ConfidenceLevel = "Low"
)

// ReviewStatus tracks a reviewer's verdict on a cell.
type ReviewStatus string

const (
	ReviewVerified    ReviewStatus = "verified"
	ReviewNeedsReview ReviewStatus = "needs_review"
	ReviewEdited      ReviewStatus = "edited"
)

// Quad is a bounding quadrilateral: four [x, y] corner points in the pixel
// space of the rendered page image, in consistent (clockwise) order.
type Quad [4][2]float64

// OCRTextRegion is one recognized span of text on a page. Regions arrive
// pre-computed and in reading order; they are never reordered.
type OCRTextRegion struct {
	BBox       Quad    `json:"bbox"`
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// PageOCRData holds the ordered regions for a single page of a document.
type PageOCRData struct {
	Page    int             `json:"page"`
	Regions []OCRTextRegion `json:"regions"`
}

// ExtractionCell is the answer for one (document, field) pair. It is the
// canonical value for that pair until a reviewer edits it.
type ExtractionCell struct {
	Value        string          `json:"value"`
	Confidence   ConfidenceLevel `json:"confidence"`
	Quote        string          `json:"quote"`
	Page         int             `json:"page"`
	Reasoning    string          `json:"reasoning,omitempty"`
	ReviewStatus ReviewStatus    `json:"review_status"`
}

// GroundingResult maps page numbers to the bounding quads that support a
// quote. Pages with no confident match are absent, never empty. Results are
// recomputed on demand and never persisted.
type GroundingResult map[int][]Quad
