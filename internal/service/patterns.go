package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/wellcoach/patterns-api/internal/logger"
	"github.com/wellcoach/patterns-api/internal/models"
)

var (
	// ErrInvalidDaysBack indicates an analysis window outside 1..MaxDaysBack
	ErrInvalidDaysBack = errors.New("invalid days back")
	// ErrMissingUserID indicates the request carried no user
	ErrMissingUserID = errors.New("user ID is required")
)

// PatternServiceConfig bounds the analysis window
type PatternServiceConfig struct {
	DefaultDaysBack int
	MaxDaysBack     int
}

type patternService struct {
	analyzer        PatternAnalyzer
	defaultDaysBack int
	maxDaysBack     int
}

// NewPatternService creates a new pattern service
func NewPatternService(analyzer PatternAnalyzer, cfg PatternServiceConfig) PatternService {
	return &patternService{
		analyzer:        analyzer,
		defaultDaysBack: cfg.DefaultDaysBack,
		maxDaysBack:     cfg.MaxDaysBack,
	}
}

func (s *patternService) GetUserPatterns(ctx context.Context, userID string, daysBack int) (*models.UserPatterns, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}

	if daysBack == 0 {
		daysBack = s.defaultDaysBack
	}
	if daysBack < 1 || daysBack > s.maxDaysBack {
		return nil, fmt.Errorf("%w: %d is outside 1..%d", ErrInvalidDaysBack, daysBack, s.maxDaysBack)
	}

	ctx = logger.WithUserID(ctx, userID)
	patterns := s.analyzer.AnalyzeUserPatterns(ctx, userID, daysBack)

	if patterns.IsEmpty() {
		logger.Ctx(ctx).Debug("no patterns found", logger.Int("days_back", daysBack))
	}

	return patterns, nil
}

func (s *patternService) MaxDaysBack() int {
	return s.maxDaysBack
}
