package endpoints

import (
	"github.com/docsight/docsight/internal/api"
)

// All returns all endpoint instances.
func All() []api.Endpoint {
	return []api.Endpoint{
		// Health endpoints
		&HealthEndpoint{},
		&ReadyEndpoint{},

		// Page storage endpoints
		&GetPageOCREndpoint{},
		&PutPageOCREndpoint{},
		&PageCountEndpoint{},
		&PageImageEndpoint{},
		&PutPageImageEndpoint{},
		&DeletePageDataEndpoint{},

		// Extraction and grounding endpoints
		&ExtractEndpoint{},
		&GroundEndpoint{},
		&SuggestPromptEndpoint{},
		&ChatEndpoint{},
	}
}
