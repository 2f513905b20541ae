package patterns

import (
	"strings"

	"github.com/wellcoach/patterns-api/internal/models"
)

// MaxLanguagePatterns caps the language patterns returned per analysis
const MaxLanguagePatterns = 10

// Structural features detected per sentence
const (
	LanguageLongSentences  = "long_sentences"
	LanguageShortSentences = "short_sentences"
	LanguageQuestions      = "questions"
	LanguageExclamations   = "exclamations"
)

const (
	longSentenceWords  = 15 // more than this is long
	shortSentenceWords = 5  // fewer than this is short
)

var languageDescriptions = map[string]string{
	LanguageLongSentences:  "Uses detailed, longer sentences",
	LanguageShortSentences: "Uses brief, concise sentences",
	LanguageQuestions:      "Asks questions frequently",
	LanguageExclamations:   "Uses exclamations for emphasis",
}

// AnalyzeLanguage classifies each sentence by length and punctuation.
// Every detection adds one context entry, so context entries repeat.
func AnalyzeLanguage(insights []models.ConversationInsight) []models.LanguagePattern {
	features := newTally[models.LanguagePattern]()

	record := func(key string) {
		description := languageDescriptions[key]
		if existing, ok := features.get(key); ok {
			existing.Frequency++
			existing.Context = append(existing.Context, description)
			return
		}
		features.add(key, models.LanguagePattern{
			Pattern:   key,
			Type:      models.LanguagePatternTypeStructure,
			Frequency: 1,
			Context:   []string{description},
		})
	}

	for _, insight := range insights {
		for _, s := range splitSentences(insight.Message) {
			words := len(strings.Fields(s.text))

			if words > longSentenceWords {
				record(LanguageLongSentences)
			} else if words < shortSentenceWords {
				record(LanguageShortSentences)
			}
			if strings.Contains(s.terminator, "?") {
				record(LanguageQuestions)
			}
			if strings.Contains(s.terminator, "!") {
				record(LanguageExclamations)
			}
		}
	}

	return rank(features.entries, func(l models.LanguagePattern) int { return l.Frequency }, MaxLanguagePatterns)
}
