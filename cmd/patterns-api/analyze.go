package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wellcoach/patterns-api/internal/logger"
	"github.com/wellcoach/patterns-api/internal/patterns"
	"github.com/wellcoach/patterns-api/internal/service"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze one user's conversations and print the patterns",
	Long: `Run the pattern engine once for a user and print the result as JSON.

Examples:
  patterns-api analyze --user 7f3c... --days 14
  patterns-api analyze --user local --db ./insights.db`,
	RunE: runAnalyze,
}

var (
	analyzeUser   string
	analyzeDays   int
	analyzeDBPath string
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeUser, "user", "u", "", "User ID to analyze")
	analyzeCmd.Flags().IntVarP(&analyzeDays, "days", "d", 0, "Days of history to analyze (0 uses the configured default)")
	analyzeCmd.Flags().StringVar(&analyzeDBPath, "db", "", "Read insights from this SQLite file instead of the configured source")
	_ = analyzeCmd.MarkFlagRequired("user")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(analyzeDBPath)
	if err != nil {
		return err
	}

	ctx := logger.WithRequestID(cmd.Context(), "")

	source, err := openSource(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open insight source: %w", err)
	}
	defer source.close()

	loc, err := cfg.Patterns.Location()
	if err != nil {
		return fmt.Errorf("failed to load timezone: %w", err)
	}

	patternService := service.NewPatternService(
		patterns.NewAnalyzer(source.repo, patterns.Config{Location: loc}),
		service.PatternServiceConfig{
			DefaultDaysBack: cfg.Patterns.DefaultDaysBack,
			MaxDaysBack:     cfg.Patterns.MaxDaysBack,
		},
	)

	result, err := patternService.GetUserPatterns(ctx, analyzeUser, analyzeDays)
	if err != nil {
		return fmt.Errorf("failed to analyze patterns: %w", err)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode patterns: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
