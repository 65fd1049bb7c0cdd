// Package main implements portmap, an offline tool for working with
// resource-mapping configurations: validate a config, dry-run records
// through it, and diff two entity states. It never talks to Jira or to the
// catalog.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "portmap",
	Short:         "Validate and dry-run resource-mapping configurations",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

func main() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c",
		"integrations/jira/port-app-config.yaml", "mapping configuration file")
	rootCmd.AddCommand(validateCmd, mapCmd, diffCmd)

	if err := rootCmd.Execute(); err != nil {
		slog.New(slog.NewTextHandler(os.Stderr, nil)).Error(err.Error())
		os.Exit(1)
	}
}
