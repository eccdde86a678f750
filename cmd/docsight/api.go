package main

import (
	"github.com/docsight/docsight/internal/api"
	"github.com/docsight/docsight/internal/server/endpoints"
)

var serverURL string

// getServerURL returns the server URL at runtime (after flag parsing).
func getServerURL() string {
	return serverURL
}

func init() {
	// The api command tree mirrors the endpoint registry: every endpoint
	// with a CLI counterpart contributes its own subcommand.
	registry := api.NewRegistry()
	for _, ep := range endpoints.All() {
		registry.Register(ep)
	}
	apiCmd := registry.BuildCommands(getServerURL)

	// --server is persistent so all subcommands inherit it
	apiCmd.PersistentFlags().StringVar(
		&serverURL, "server", "http://localhost:8417", "Server URL",
	)

	rootCmd.AddCommand(apiCmd)
}
