package main

import (
	"os"

	"github.com/spf13/cobra"
)

// Build information constants
const (
	Version = "0.1.0"
	appName = "graphdeco"
)

var (
	logLevel  string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:     appName,
	Short:   "Decorate a transit graph with realtime updaters from configuration",
	Version: Version,
	Long: `graphdeco turns declarative configuration into live graph subsystems:
bike-share availability pollers, stop-time delay fetchers, service alert
ingesters. Sections come from a config file or a NATS KV bucket, with
configuration embedded in the graph acting as a lower-precedence fallback.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "json", "log format (json, text)")
}

// Execute runs the CLI. Called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
