package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docsight/docsight/internal/config"
	"github.com/docsight/docsight/internal/pagestore"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the docsight home directory",
	Long: `Create the docsight home directory and write a default config file.

The config file documents every setting; API keys reference environment
variables with ${ENV_VAR} syntax so secrets stay out of the file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := pagestore.New(homeDir)
		if err != nil {
			return err
		}
		if err := store.EnsureExists(); err != nil {
			return err
		}

		if store.ConfigExists() && !initForce {
			return fmt.Errorf("config already exists at %s (use --force to overwrite)", store.ConfigPath())
		}
		if err := config.WriteDefault(store.ConfigPath()); err != nil {
			return err
		}

		fmt.Printf("Initialized %s\n", store.Path())
		fmt.Printf("Config written to %s\n", store.ConfigPath())
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}
