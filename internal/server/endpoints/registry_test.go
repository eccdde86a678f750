package endpoints

import (
	"net/http"
	"testing"

	"github.com/docsight/docsight/internal/api"
)

func newRegistry() *api.Registry {
	registry := api.NewRegistry()
	for _, ep := range All() {
		registry.Register(ep)
	}
	return registry
}

func TestAllEndpointsHaveRoutes(t *testing.T) {
	mux := http.NewServeMux()
	passthrough := func(next http.HandlerFunc) http.HandlerFunc { return next }

	// Duplicate or malformed patterns panic inside ServeMux.
	newRegistry().RegisterRoutes(mux, passthrough)
}

func TestBuildCommands(t *testing.T) {
	apiCmd := newRegistry().BuildCommands(func() string { return "http://localhost:8417" })

	if apiCmd.Use != "api" {
		t.Errorf("root use = %q", apiCmd.Use)
	}

	names := make(map[string]bool)
	for _, cmd := range apiCmd.Commands() {
		if cmd == nil {
			t.Fatal("nil subcommand in api tree")
		}
		names[cmd.Name()] = true
	}

	for _, want := range []string{"health", "ready", "pages", "delete-pages", "extract", "ground", "suggest-prompt"} {
		if !names[want] {
			t.Errorf("missing %q command, have %v", want, names)
		}
	}
}
