package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/wellcoach/patterns-api/internal/models"
	"github.com/wellcoach/patterns-api/pkg/supabase"
)

const conversationInsightsTable = "conversation_insights"

type insightRepository struct {
	client *supabase.Client
}

// NewInsightRepository creates a conversation insight repository backed by Supabase
func NewInsightRepository(client *supabase.Client) ConversationInsightRepository {
	return &insightRepository{client: client}
}

func (r *insightRepository) GetByUserIDSince(ctx context.Context, userID string, since time.Time) ([]models.ConversationInsight, error) {
	// Only the columns the analyzer reads
	query := map[string]interface{}{
		"user_id":    fmt.Sprintf("eq.%s", userID),
		"created_at": fmt.Sprintf("gte.%s", since.UTC().Format(time.RFC3339Nano)),
		"select":     "message,created_at",
		"order":      "created_at.asc",
	}

	body, err := r.client.Query(ctx, conversationInsightsTable, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation insights: %w", err)
	}

	var insights []models.ConversationInsight
	if err := json.Unmarshal(body, &insights); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return insights, nil
}

func (r *insightRepository) BulkCreate(ctx context.Context, userID string, insights []models.ConversationInsight) error {
	if len(insights) == 0 {
		return nil
	}

	// PostgREST requires all objects to have the same keys for bulk insert
	data := make([]map[string]interface{}, len(insights))
	for i, insight := range insights {
		data[i] = map[string]interface{}{
			"user_id":    userID,
			"message":    insight.Message,
			"created_at": insight.CreatedAt.UTC().Format(time.RFC3339Nano),
		}
	}

	if _, err := r.client.Insert(ctx, conversationInsightsTable, data); err != nil {
		return fmt.Errorf("failed to bulk create conversation insights: %w", err)
	}

	return nil
}
