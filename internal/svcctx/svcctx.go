// Package svcctx provides service context for dependency injection via context.
// This package is separate from server to avoid import cycles with endpoints.
package svcctx

import (
	"context"
	"log/slog"

	"github.com/docsight/docsight/internal/config"
	"github.com/docsight/docsight/internal/extraction"
	"github.com/docsight/docsight/internal/grounding"
	"github.com/docsight/docsight/internal/pagestore"
	"github.com/docsight/docsight/internal/providers"
)

// Services holds all core services that flow through context.
// Components extract what they need via the individual extractors.
type Services struct {
	Logger    *slog.Logger
	Config    *config.Manager
	Store     *pagestore.Store
	Provider  providers.Client
	Extractor *extraction.Runner
	Grounder  *grounding.Finder
}

type servicesKey struct{}

// WithServices returns a new context with services attached.
func WithServices(ctx context.Context, s *Services) context.Context {
	return context.WithValue(ctx, servicesKey{}, s)
}

// ServicesFrom extracts the full Services struct from context.
// Returns nil if not present.
func ServicesFrom(ctx context.Context) *Services {
	s, _ := ctx.Value(servicesKey{}).(*Services)
	return s
}

// LoggerFrom extracts the logger from context.
func LoggerFrom(ctx context.Context) *slog.Logger {
	if s := ServicesFrom(ctx); s != nil {
		return s.Logger
	}
	return nil
}

// ConfigFrom extracts the config manager from context.
func ConfigFrom(ctx context.Context) *config.Manager {
	if s := ServicesFrom(ctx); s != nil {
		return s.Config
	}
	return nil
}

// StoreFrom extracts the page store from context.
func StoreFrom(ctx context.Context) *pagestore.Store {
	if s := ServicesFrom(ctx); s != nil {
		return s.Store
	}
	return nil
}

// ProviderFrom extracts the extraction provider from context.
func ProviderFrom(ctx context.Context) providers.Client {
	if s := ServicesFrom(ctx); s != nil {
		return s.Provider
	}
	return nil
}

// ExtractorFrom extracts the extraction runner from context.
func ExtractorFrom(ctx context.Context) *extraction.Runner {
	if s := ServicesFrom(ctx); s != nil {
		return s.Extractor
	}
	return nil
}

// GrounderFrom extracts the quote grounding finder from context.
func GrounderFrom(ctx context.Context) *grounding.Finder {
	if s := ServicesFrom(ctx); s != nil {
		return s.Grounder
	}
	return nil
}
