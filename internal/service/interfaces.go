package service

import (
	"context"

	"github.com/wellcoach/patterns-api/internal/models"
)

// PatternService defines the interface for pattern analysis business logic
type PatternService interface {
	// GetUserPatterns analyzes the last daysBack days of the user's
	// conversation. daysBack 0 selects the configured default.
	GetUserPatterns(ctx context.Context, userID string, daysBack int) (*models.UserPatterns, error)
	MaxDaysBack() int
}

// ImportService defines the interface for loading conversation history
type ImportService interface {
	ImportInsights(ctx context.Context, userID string, insights []models.ConversationInsight) (int, error)
}

// PatternAnalyzer runs the pattern engine. *patterns.Analyzer implements it.
type PatternAnalyzer interface {
	AnalyzeUserPatterns(ctx context.Context, userID string, daysBack int) *models.UserPatterns
}
