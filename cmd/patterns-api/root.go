package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wellcoach/patterns-api/internal/config"
	"github.com/wellcoach/patterns-api/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "patterns-api",
	Short: "Behavioral pattern recognition API",
	Long: `Analyzes a user's coaching conversations and reports recurring phrases,
topics, writing style, activities, moods and sleep.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(importCmd)
}

// loadConfig loads configuration and installs the process logger from it.
// A non-empty dbPath selects the SQLite source before validation.
func loadConfig(dbPath string) (*config.Config, error) {
	cfg, err := config.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if dbPath != "" {
		cfg.Source.Driver = config.DriverSQLite
		cfg.Source.SQLitePath = dbPath
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger.SetDefault(logger.NewSlogLogger(logger.Config{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: cfg.Log.Format,
		Output: os.Stderr,
	}))

	return cfg, nil
}
