package patterns

import (
	"math"
	"strings"

	"github.com/wellcoach/patterns-api/internal/models"
)

const (
	// MaxTopicPreferences caps the topics returned per analysis
	MaxTopicPreferences = 15

	initialInterest = 5.0
	interestStep    = 0.5
	maxInterest     = 10.0
)

// ClassifyTopics counts messages per topic. A message may count toward
// several topics. Interest starts at 5 and rises by 0.5 per further match.
func ClassifyTopics(insights []models.ConversationInsight, taxonomy Taxonomy) []models.TopicPreference {
	topics := newTally[models.TopicPreference]()

	for _, insight := range insights {
		lower := strings.ToLower(insight.Message)

		for _, category := range taxonomy {
			if !category.matches(lower) {
				continue
			}

			if existing, ok := topics.get(category.Name); ok {
				existing.Frequency++
				existing.InterestLevel = math.Min(maxInterest, existing.InterestLevel+interestStep)
				existing.LastDiscussed = insight.CreatedAt
				continue
			}

			topics.add(category.Name, models.TopicPreference{
				Topic:         category.Name,
				InterestLevel: initialInterest,
				Frequency:     1,
				LastDiscussed: insight.CreatedAt,
				RelatedTopics: []string{},
			})
		}
	}

	return rank(topics.entries, func(t models.TopicPreference) int { return t.Frequency }, MaxTopicPreferences)
}
