// Package patterns recognizes behavioral patterns in a user's conversation
// history: recurring phrases, topics, writing style, activities, moods and
// sleep. Classification is lexical (keyword and regex based).
package patterns

import (
	"context"
	"fmt"
	"time"

	"github.com/wellcoach/patterns-api/internal/logger"
	"github.com/wellcoach/patterns-api/internal/models"
)

// DefaultDaysBack is the analysis window used when none is given
const DefaultDaysBack = 30

// InsightSource fetches a user's messages created at or after since,
// ordered by ascending timestamp.
type InsightSource interface {
	GetByUserIDSince(ctx context.Context, userID string, since time.Time) ([]models.ConversationInsight, error)
}

// Config tunes an Analyzer. Zero values fall back to defaults.
type Config struct {
	Taxonomies Taxonomies
	// Location is used to bucket messages by local hour. Defaults to time.Local.
	Location *time.Location
	// Now defaults to time.Now
	Now func() time.Time
}

// Analyzer runs every extractor over one fetch of a user's insights.
// It holds no per-call state and is safe for concurrent use.
type Analyzer struct {
	source     InsightSource
	taxonomies Taxonomies
	location   *time.Location
	now        func() time.Time
}

// NewAnalyzer creates an analyzer reading from source
func NewAnalyzer(source InsightSource, cfg Config) *Analyzer {
	defaults := DefaultTaxonomies()
	if cfg.Taxonomies.Topics == nil {
		cfg.Taxonomies.Topics = defaults.Topics
	}
	if cfg.Taxonomies.Activities == nil {
		cfg.Taxonomies.Activities = defaults.Activities
	}
	if cfg.Taxonomies.Moods == nil {
		cfg.Taxonomies.Moods = defaults.Moods
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &Analyzer{
		source:     source,
		taxonomies: cfg.Taxonomies,
		location:   cfg.Location,
		now:        cfg.Now,
	}
}

// AnalyzeUserPatterns fetches the last daysBack days of the user's insights
// and extracts their patterns. It always returns a result: a failed or
// empty fetch yields empty pattern lists.
func (a *Analyzer) AnalyzeUserPatterns(ctx context.Context, userID string, daysBack int) (result *models.UserPatterns) {
	start := time.Now()
	now := a.now()
	log := logger.Ctx(ctx).With(logger.String("user_id", userID))

	defer func() {
		if r := recover(); r != nil {
			log.Error("pattern analysis panicked, returning empty patterns", logger.Any("panic", fmt.Sprint(r)))
			result = models.NewEmptyUserPatterns(userID, now)
		}
	}()

	if daysBack <= 0 {
		daysBack = DefaultDaysBack
	}
	since := now.AddDate(0, 0, -daysBack)

	log.Debug("fetching insights",
		logger.Int("days_back", daysBack),
		logger.Time("since", since),
	)

	insights, err := a.source.GetByUserIDSince(ctx, userID, since)
	if err != nil {
		log.Warn("failed to fetch insights, returning empty patterns", logger.Err(err))
		return models.NewEmptyUserPatterns(userID, now)
	}

	if len(insights) == 0 {
		log.Debug("no insights in window")
		return models.NewEmptyUserPatterns(userID, now)
	}

	result = a.Analyze(userID, insights, now)

	log.Info("user patterns analyzed",
		logger.Int("insights", len(insights)),
		logger.Int("conversation_patterns", len(result.ConversationPatterns)),
		logger.Int("topic_preferences", len(result.TopicPreferences)),
		logger.Int("language_patterns", len(result.LanguagePatterns)),
		logger.Int("activity_patterns", len(result.ActivityPatterns)),
		logger.Int("mood_patterns", len(result.MoodPatterns)),
		logger.Int("sleep_patterns", len(result.SleepPatterns)),
		logger.Duration("duration", time.Since(start)),
	)

	return result
}

// Analyze runs every extractor over insights, which must be in ascending
// time order. It does no I/O.
func (a *Analyzer) Analyze(userID string, insights []models.ConversationInsight, now time.Time) *models.UserPatterns {
	if len(insights) == 0 {
		return models.NewEmptyUserPatterns(userID, now)
	}

	return &models.UserPatterns{
		UserID:               userID,
		ConversationPatterns: ExtractPhrases(insights),
		TopicPreferences:     ClassifyTopics(insights, a.taxonomies.Topics),
		LanguagePatterns:     AnalyzeLanguage(insights),
		ActivityPatterns:     ClassifyActivities(insights, a.taxonomies.Activities, a.location),
		MoodPatterns:         ClassifyMoods(insights, a.taxonomies.Moods, a.location),
		SleepPatterns:        ExtractSleep(insights),
		LastUpdated:          now,
	}
}
