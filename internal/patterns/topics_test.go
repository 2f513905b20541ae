package patterns

import (
	"testing"
	"time"

	"github.com/wellcoach/patterns-api/internal/models"
)

func TestClassifyTopics_InterestGrowsAndClamps(t *testing.T) {
	taxonomy := Taxonomy{{Name: "health", Keywords: []string{"fitness"}}}

	var insights []models.ConversationInsight
	for i := 0; i < 20; i++ {
		insights = append(insights, insightAt("thinking about my fitness", baseTime.Add(time.Duration(i)*time.Hour)))
	}

	tests := []struct {
		name     string
		messages int
		want     float64
	}{
		{"first match", 1, 5},
		{"three matches", 3, 6},
		{"eleven matches reach the cap", 11, 10},
		{"twenty matches stay capped", 20, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			topics := ClassifyTopics(insights[:tt.messages], taxonomy)
			if len(topics) != 1 {
				t.Fatalf("Expected 1 topic, got %d", len(topics))
			}
			if topics[0].InterestLevel != tt.want {
				t.Errorf("Expected interest %v, got %v", tt.want, topics[0].InterestLevel)
			}
			if topics[0].Frequency != tt.messages {
				t.Errorf("Expected frequency %d, got %d", tt.messages, topics[0].Frequency)
			}
			if !topics[0].LastDiscussed.Equal(insights[tt.messages-1].CreatedAt) {
				t.Errorf("Expected last discussed to follow latest match")
			}
			if topics[0].RelatedTopics == nil || len(topics[0].RelatedTopics) != 0 {
				t.Errorf("Expected empty related topics, got %v", topics[0].RelatedTopics)
			}
		})
	}
}

func TestClassifyTopics_MultipleTopicsPerMessage(t *testing.T) {
	insights := []models.ConversationInsight{
		insightAt("Deadline stress is killing me", baseTime),
	}

	topics := ClassifyTopics(insights, DefaultTopicTaxonomy())

	got := make(map[string]int)
	for _, topic := range topics {
		got[topic.Topic] = topic.Frequency
	}
	if got["work"] != 1 {
		t.Errorf("Expected work topic, got %v", got)
	}
	if got["mood"] != 1 {
		t.Errorf("Expected mood topic, got %v", got)
	}
}

func TestClassifyTopics_RankedByFrequency(t *testing.T) {
	taxonomy := Taxonomy{
		{Name: "travel", Keywords: []string{"trip"}},
		{Name: "weather", Keywords: []string{"rain"}},
	}
	insights := []models.ConversationInsight{
		insightAt("planning a trip", baseTime),
		insightAt("rain again", baseTime),
		insightAt("more rain", baseTime),
	}

	topics := ClassifyTopics(insights, taxonomy)
	if len(topics) != 2 {
		t.Fatalf("Expected 2 topics, got %d", len(topics))
	}
	if topics[0].Topic != "weather" || topics[1].Topic != "travel" {
		t.Errorf("Expected weather before travel, got %s, %s", topics[0].Topic, topics[1].Topic)
	}
}

func TestClassifyTopics_Cap(t *testing.T) {
	var taxonomy Taxonomy
	var insights []models.ConversationInsight
	for i := 0; i < 25; i++ {
		keyword := string(rune('a'+i)) + "zq"
		taxonomy = append(taxonomy, Category{Name: keyword, Keywords: []string{keyword}})
		insights = append(insights, insightAt("talking about "+keyword, baseTime))
	}

	topics := ClassifyTopics(insights, taxonomy)
	if len(topics) != MaxTopicPreferences {
		t.Errorf("Expected %d topics, got %d", MaxTopicPreferences, len(topics))
	}
}

func TestClassifyTopics_NoMatches(t *testing.T) {
	topics := ClassifyTopics([]models.ConversationInsight{insightAt("hmm", baseTime)}, DefaultTopicTaxonomy())
	if topics == nil || len(topics) != 0 {
		t.Errorf("Expected empty non-nil slice, got %#v", topics)
	}
}
