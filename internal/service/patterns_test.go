package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/wellcoach/patterns-api/internal/logger"
	"github.com/wellcoach/patterns-api/internal/models"
	"github.com/wellcoach/patterns-api/internal/patterns"
)

// mockAnalyzer is a mock implementation of PatternAnalyzer for testing
type mockAnalyzer struct {
	calls       int
	gotUserID   string
	gotDaysBack int
	gotCtx      context.Context
	result      *models.UserPatterns
}

func (m *mockAnalyzer) AnalyzeUserPatterns(ctx context.Context, userID string, daysBack int) *models.UserPatterns {
	m.calls++
	m.gotCtx = ctx
	m.gotUserID = userID
	m.gotDaysBack = daysBack
	if m.result != nil {
		return m.result
	}
	return models.NewEmptyUserPatterns(userID, time.Now())
}

func newTestPatternService(analyzer PatternAnalyzer) PatternService {
	return NewPatternService(analyzer, PatternServiceConfig{DefaultDaysBack: 30, MaxDaysBack: 365})
}

func TestGetUserPatterns_Window(t *testing.T) {
	tests := []struct {
		name     string
		daysBack int
		wantDays int
		wantErr  bool
	}{
		{"zero uses default", 0, 30, false},
		{"explicit window", 7, 7, false},
		{"maximum window", 365, 365, false},
		{"negative window", -1, 0, true},
		{"window above maximum", 366, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyzer := &mockAnalyzer{}
			svc := newTestPatternService(analyzer)

			_, err := svc.GetUserPatterns(context.Background(), "user-1", tt.daysBack)

			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDaysBack) {
					t.Errorf("Expected ErrInvalidDaysBack, got %v", err)
				}
				if analyzer.calls != 0 {
					t.Errorf("Expected analyzer not to run, got %d calls", analyzer.calls)
				}
				return
			}

			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if analyzer.gotDaysBack != tt.wantDays {
				t.Errorf("Expected daysBack %d, got %d", tt.wantDays, analyzer.gotDaysBack)
			}
		})
	}
}

func TestGetUserPatterns_MissingUser(t *testing.T) {
	svc := newTestPatternService(&mockAnalyzer{})

	if _, err := svc.GetUserPatterns(context.Background(), "", 30); !errors.Is(err, ErrMissingUserID) {
		t.Errorf("Expected ErrMissingUserID, got %v", err)
	}
}

func TestGetUserPatterns_PropagatesUserToContext(t *testing.T) {
	analyzer := &mockAnalyzer{}
	svc := newTestPatternService(analyzer)

	if _, err := svc.GetUserPatterns(context.Background(), "user-1", 30); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got := logger.UserIDFromContext(analyzer.gotCtx); got != "user-1" {
		t.Errorf("Expected user_id in context, got %q", got)
	}
}

// fixedSource is an in-memory patterns.InsightSource
type fixedSource struct {
	insights []models.ConversationInsight
	err      error
}

func (s *fixedSource) GetByUserIDSince(ctx context.Context, userID string, since time.Time) ([]models.ConversationInsight, error) {
	return s.insights, s.err
}

func TestGetUserPatterns_WithAnalyzer(t *testing.T) {
	now := time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)
	source := &fixedSource{insights: []models.ConversationInsight{
		{Message: "I'm so stressed about work today, feeling anxious.", CreatedAt: now.Add(-48 * time.Hour)},
	}}
	analyzer := patterns.NewAnalyzer(source, patterns.Config{Location: time.UTC, Now: func() time.Time { return now }})
	svc := newTestPatternService(analyzer)

	got, err := svc.GetUserPatterns(context.Background(), "user-1", 0)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(got.MoodPatterns) == 0 || got.MoodPatterns[0].Mood != "negative" {
		t.Errorf("Expected a negative mood, got %+v", got.MoodPatterns)
	}
}

func TestGetUserPatterns_SourceFailureIsNotAnError(t *testing.T) {
	source := &fixedSource{err: errors.New("supabase down")}
	analyzer := patterns.NewAnalyzer(source, patterns.Config{Location: time.UTC})
	svc := newTestPatternService(analyzer)

	got, err := svc.GetUserPatterns(context.Background(), "user-1", 30)
	if err != nil {
		t.Fatalf("Expected the source failure to be absorbed, got %v", err)
	}
	if !got.IsEmpty() {
		t.Errorf("Expected empty patterns, got %+v", got)
	}
}
