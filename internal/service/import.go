package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/wellcoach/patterns-api/internal/logger"
	"github.com/wellcoach/patterns-api/internal/models"
	"github.com/wellcoach/patterns-api/internal/repository"
)

// ErrInvalidInsight indicates an import record without a message or timestamp
var ErrInvalidInsight = errors.New("invalid insight")

type importService struct {
	repo repository.ConversationInsightRepository
}

// NewImportService creates a new import service
func NewImportService(repo repository.ConversationInsightRepository) ImportService {
	return &importService{repo: repo}
}

// ImportInsights validates every record, then stores them in time order.
// Nothing is written if any record is invalid.
func (s *importService) ImportInsights(ctx context.Context, userID string, insights []models.ConversationInsight) (int, error) {
	if userID == "" {
		return 0, ErrMissingUserID
	}

	for i, insight := range insights {
		if strings.TrimSpace(insight.Message) == "" {
			return 0, fmt.Errorf("%w: record %d has an empty message", ErrInvalidInsight, i)
		}
		if insight.CreatedAt.IsZero() {
			return 0, fmt.Errorf("%w: record %d has no created_at", ErrInvalidInsight, i)
		}
	}

	sorted := make([]models.ConversationInsight, len(insights))
	copy(sorted, insights)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	if err := s.repo.BulkCreate(ctx, userID, sorted); err != nil {
		return 0, fmt.Errorf("failed to import insights: %w", err)
	}

	logger.Ctx(ctx).Info("imported conversation insights",
		logger.String("user_id", userID),
		logger.Int("count", len(sorted)),
	)

	return len(sorted), nil
}
