package main

import (
	"github.com/spf13/cobra"

	"github.com/docsight/docsight/internal/api"
	"github.com/docsight/docsight/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "docsight",
	Short: "Document field extraction with quote grounding",
	Long: `Docsight extracts structured fields from document text using an LLM
provider and grounds every extracted value back to its source location
on the scanned page.

Features:
  - Concurrent extraction across documents and fields with retry
  - Verbatim quote capture with confidence levels
  - Quote-to-region grounding against per-page OCR data
  - Page image and OCR storage with an HTTP API`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.docsight/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "docsight home directory (default: ~/.docsight)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)

	// Set output format before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		api.SetOutputFormat(outputFormat)
	}

	rootCmd.AddCommand(versionCmd)
}
