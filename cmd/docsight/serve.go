package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/docsight/docsight/internal/config"
	"github.com/docsight/docsight/internal/pagestore"
	"github.com/docsight/docsight/internal/server"
)

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the docsight server",
	Long: `Start the docsight HTTP server.

The server provides:
  - /health and /ready    - Health and readiness checks
  - /page-ocr, /page-image, /page-count, /page-data - Page storage
  - /api/extract          - Concurrent field extraction
  - /api/ground           - Quote-to-region grounding

Configuration is hot-reloaded when the config file changes.

Examples:
  docsight serve                  # Start on default port 8417
  docsight serve --port 3000      # Start on custom port
  docsight serve --host 0.0.0.0   # Bind to all interfaces`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// Set up logger
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))

		// Get home directory
		store, err := pagestore.New(homeDir)
		if err != nil {
			return err
		}
		if err := store.EnsureExists(); err != nil {
			return err
		}

		// Load config, falling back to the home directory file
		configPath := cfgFile
		if configPath == "" && store.ConfigExists() {
			configPath = store.ConfigPath()
		}
		mgr, err := config.NewManager(configPath)
		if err != nil {
			return err
		}
		mgr.WatchConfig()

		host := serveHost
		port := servePort
		if !cmd.Flags().Changed("host") && mgr.Get().Server.Host != "" {
			host = mgr.Get().Server.Host
		}
		if !cmd.Flags().Changed("port") && mgr.Get().Server.Port != 0 {
			port = mgr.Get().Server.Port
		}

		srv, err := server.New(server.Config{
			Host:          host,
			Port:          port,
			Store:         store,
			ConfigManager: mgr,
			Logger:        logger,
		})
		if err != nil {
			return err
		}

		// Start server (blocks until shutdown)
		return srv.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "127.0.0.1", "Host to bind to")
	serveCmd.Flags().IntVar(&servePort, "port", 8417, "Port to listen on")

	rootCmd.AddCommand(serveCmd)
}
