package repository

import (
	"context"
	"time"

	"github.com/wellcoach/patterns-api/internal/models"
)

// ConversationInsightRepository defines the interface for conversation insight data access
type ConversationInsightRepository interface {
	// GetByUserIDSince returns the user's insights created at or after since,
	// ordered by created_at ascending.
	GetByUserIDSince(ctx context.Context, userID string, since time.Time) ([]models.ConversationInsight, error)
	BulkCreate(ctx context.Context, userID string, insights []models.ConversationInsight) error
}
