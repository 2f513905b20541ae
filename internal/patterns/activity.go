package patterns

import (
	"strings"
	"time"

	"github.com/wellcoach/patterns-api/internal/models"
)

// MaxActivityPatterns caps the activities returned per analysis
const MaxActivityPatterns = 10

// ClassifyActivities counts messages per activity category and records the
// times of day each activity comes up.
//
// Context holds the opening of the first message that matched the category
// only; later matches do not add to it.
func ClassifyActivities(insights []models.ConversationInsight, taxonomy Taxonomy, loc *time.Location) []models.ActivityPattern {
	activities := newTally[models.ActivityPattern]()

	for _, insight := range insights {
		lower := strings.ToLower(insight.Message)

		for _, category := range taxonomy {
			if !category.matches(lower) {
				continue
			}

			bucket := timeOfDay(insight.CreatedAt, loc)

			if existing, ok := activities.get(category.Name); ok {
				existing.Frequency++
				existing.PreferredTimes = appendUnique(existing.PreferredTimes, bucket)
				existing.LastMentioned = insight.CreatedAt
				continue
			}

			activities.add(category.Name, models.ActivityPattern{
				Activity:       category.Name,
				Frequency:      1,
				PreferredTimes: []models.TimeOfDay{bucket},
				Context:        []string{truncate(insight.Message, exampleChars)},
				LastMentioned:  insight.CreatedAt,
			})
		}
	}

	return rank(activities.entries, func(a models.ActivityPattern) int { return a.Frequency }, MaxActivityPatterns)
}
