package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/wellcoach/patterns-api/internal/logger"
	"github.com/wellcoach/patterns-api/internal/models"
	"github.com/wellcoach/patterns-api/internal/service"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load conversation insights from a JSON file",
	Long: `Load a JSON array of {"message", "created_at"} records for one user.

Records go to the SQLite file given by --db, or to the configured source.
Use "-" as the file to read from stdin.

Examples:
  patterns-api import --db ./insights.db --user local --file insights.json`,
	RunE: runImport,
}

var (
	importUser   string
	importFile   string
	importDBPath string
)

func init() {
	importCmd.Flags().StringVarP(&importUser, "user", "u", "", "User ID that owns the records")
	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "JSON file to import (- for stdin)")
	importCmd.Flags().StringVar(&importDBPath, "db", "", "Write to this SQLite file instead of the configured source")
	_ = importCmd.MarkFlagRequired("user")
	_ = importCmd.MarkFlagRequired("file")
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(importDBPath)
	if err != nil {
		return err
	}

	insights, err := readInsights(cmd, importFile)
	if err != nil {
		return err
	}

	ctx := logger.WithRequestID(cmd.Context(), "")

	source, err := openSource(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open insight source: %w", err)
	}
	defer source.close()

	count, err := service.NewImportService(source.repo).ImportInsights(ctx, importUser, insights)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d insights for %s\n", count, importUser)
	return nil
}

// readInsights decodes a JSON array of insights from path, or stdin for "-"
func readInsights(cmd *cobra.Command, path string) ([]models.ConversationInsight, error) {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}

	var insights []models.ConversationInsight
	if err := json.NewDecoder(r).Decode(&insights); err != nil {
		return nil, fmt.Errorf("failed to decode insights from %s: %w", path, err)
	}
	return insights, nil
}
