package patterns

import (
	"strings"
	"time"

	"github.com/wellcoach/patterns-api/internal/models"
)

const (
	// MaxMoodPatterns caps the moods returned per analysis
	MaxMoodPatterns = 8

	// GeneralTrigger is used when no sentence carries the matched keyword
	GeneralTrigger = "general"
)

// ClassifyMoods counts messages per mood category. For each match the
// sentence that carried the mood keyword is kept as a trigger.
func ClassifyMoods(insights []models.ConversationInsight, taxonomy Taxonomy, loc *time.Location) []models.MoodPattern {
	moods := newTally[models.MoodPattern]()

	for _, insight := range insights {
		lower := strings.ToLower(insight.Message)

		for _, category := range taxonomy {
			matched := category.matchedKeywords(lower)
			if len(matched) == 0 {
				continue
			}

			bucket := timeOfDay(insight.CreatedAt, loc)
			trigger := findTrigger(insight.Message, matched)

			if existing, ok := moods.get(category.Name); ok {
				existing.Frequency++
				existing.TimeOfDay = appendUnique(existing.TimeOfDay, bucket)
				existing.Triggers = appendUnique(existing.Triggers, trigger)
				existing.LastMentioned = insight.CreatedAt
				continue
			}

			moods.add(category.Name, models.MoodPattern{
				Mood:          category.Name,
				Frequency:     1,
				Triggers:      []string{trigger},
				TimeOfDay:     []models.TimeOfDay{bucket},
				LastMentioned: insight.CreatedAt,
			})
		}
	}

	return rank(moods.entries, func(m models.MoodPattern) int { return m.Frequency }, MaxMoodPatterns)
}

// findTrigger returns the first sentence of message containing one of keywords
func findTrigger(message string, keywords []string) string {
	for _, s := range splitSentences(message) {
		lower := strings.ToLower(s.text)
		for _, keyword := range keywords {
			if strings.Contains(lower, keyword) {
				return s.text
			}
		}
	}
	return GeneralTrigger
}
