package models

import "time"

// TimeOfDay is a coarse bucket derived from the local hour of a message
type TimeOfDay string

const (
	TimeOfDayMorning   TimeOfDay = "morning"   // 0-11
	TimeOfDayAfternoon TimeOfDay = "afternoon" // 12-16
	TimeOfDayEvening   TimeOfDay = "evening"   // 17-20
	TimeOfDayNight     TimeOfDay = "night"     // 21-23
)

// LanguagePatternType classifies what a language pattern describes
type LanguagePatternType string

const (
	LanguagePatternTypeStructure LanguagePatternType = "structure"
)

// ConversationInsight is a single stored conversational message.
// It is owned by the insight source and never mutated by the analyzer.
type ConversationInsight struct {
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// ConversationPattern is a recurring multi-word phrase
type ConversationPattern struct {
	Pattern    string    `json:"pattern"`
	Frequency  int       `json:"frequency"`
	FirstSeen  time.Time `json:"first_seen"`
	LastSeen   time.Time `json:"last_seen"`
	Examples   []string  `json:"examples"`
	Confidence float64   `json:"confidence"`
}

// TopicPreference tracks how often a topic comes up and how interested the user seems
type TopicPreference struct {
	Topic         string    `json:"topic"`
	InterestLevel float64   `json:"interest_level"` // 0-10
	Frequency     int       `json:"frequency"`
	LastDiscussed time.Time `json:"last_discussed"`
	RelatedTopics []string  `json:"related_topics"` // reserved, always empty
}

// LanguagePattern is a structural feature of how the user writes
type LanguagePattern struct {
	Pattern   string              `json:"pattern"`
	Type      LanguagePatternType `json:"type"`
	Frequency int                 `json:"frequency"`
	Context   []string            `json:"context"`
}

// ActivityPattern is a recurring activity category
type ActivityPattern struct {
	Activity       string      `json:"activity"`
	Frequency      int         `json:"frequency"`
	PreferredTimes []TimeOfDay `json:"preferred_times"`
	Context        []string    `json:"context"`
	LastMentioned  time.Time   `json:"last_mentioned"`
}

// MoodPattern is a recurring mood category with what seemed to trigger it
type MoodPattern struct {
	Mood          string      `json:"mood"`
	Frequency     int         `json:"frequency"`
	Triggers      []string    `json:"triggers"`
	TimeOfDay     []TimeOfDay `json:"time_of_day"`
	LastMentioned time.Time   `json:"last_mentioned"`
}

// SleepPattern describes the sleep reported in one message.
// Entries are per message and are never merged.
type SleepPattern struct {
	SleepQuality  int       `json:"sleep_quality"`  // 1-9
	SleepDuration float64   `json:"sleep_duration"` // hours
	SleepTime     string    `json:"sleep_time"`     // "11:30 PM" or "Unknown"
	WakeTime      string    `json:"wake_time"`      // "7:00 AM" or "Unknown"
	Factors       []string  `json:"factors"`
	LastMentioned time.Time `json:"last_mentioned"`
}

// UserPatterns is the full result of one analysis run
type UserPatterns struct {
	UserID               string                `json:"user_id"`
	ConversationPatterns []ConversationPattern `json:"conversation_patterns"`
	TopicPreferences     []TopicPreference     `json:"topic_preferences"`
	LanguagePatterns     []LanguagePattern     `json:"language_patterns"`
	ActivityPatterns     []ActivityPattern     `json:"activity_patterns"`
	MoodPatterns         []MoodPattern         `json:"mood_patterns"`
	SleepPatterns        []SleepPattern        `json:"sleep_patterns"`
	LastUpdated          time.Time             `json:"last_updated"`
}

// NewEmptyUserPatterns returns the result used when there is nothing to analyze.
// All lists are empty but non-nil so they serialize as [].
func NewEmptyUserPatterns(userID string, now time.Time) *UserPatterns {
	return &UserPatterns{
		UserID:               userID,
		ConversationPatterns: []ConversationPattern{},
		TopicPreferences:     []TopicPreference{},
		LanguagePatterns:     []LanguagePattern{},
		ActivityPatterns:     []ActivityPattern{},
		MoodPatterns:         []MoodPattern{},
		SleepPatterns:        []SleepPattern{},
		LastUpdated:          now,
	}
}

// IsEmpty reports whether no pattern of any kind was found
func (p *UserPatterns) IsEmpty() bool {
	return len(p.ConversationPatterns) == 0 &&
		len(p.TopicPreferences) == 0 &&
		len(p.LanguagePatterns) == 0 &&
		len(p.ActivityPatterns) == 0 &&
		len(p.MoodPatterns) == 0 &&
		len(p.SleepPatterns) == 0
}

