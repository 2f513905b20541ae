package patterns

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/wellcoach/patterns-api/internal/models"
)

const (
	// MaxConversationPatterns caps the phrases returned per analysis
	MaxConversationPatterns = 20

	minPhraseWords = 3
	maxPhraseWords = 5

	// Phrases must be strictly longer than this many characters
	minPhraseChars = 10

	exampleChars = 100

	baseConfidence = 0.5
	confidenceStep = 0.1
	maxConfidence  = 0.9
)

// ExtractPhrases finds word sequences of 3 to 5 tokens that recur across
// messages. Only phrases seen at least twice are returned.
func ExtractPhrases(insights []models.ConversationInsight) []models.ConversationPattern {
	phrases := newTally[models.ConversationPattern]()

	for _, insight := range insights {
		words := strings.Fields(strings.ToLower(insight.Message))
		example := truncate(insight.Message, exampleChars)

		for i := 0; i+minPhraseWords <= len(words); i++ {
			for n := minPhraseWords; n <= maxPhraseWords && i+n <= len(words); n++ {
				phrase := strings.Join(words[i:i+n], " ")
				if utf8.RuneCountInString(phrase) <= minPhraseChars {
					continue
				}

				if existing, ok := phrases.get(phrase); ok {
					existing.Frequency++
					existing.LastSeen = insight.CreatedAt
					existing.Examples = append(existing.Examples, example)
					continue
				}

				phrases.add(phrase, models.ConversationPattern{
					Pattern:    phrase,
					Frequency:  1,
					FirstSeen:  insight.CreatedAt,
					LastSeen:   insight.CreatedAt,
					Examples:   []string{example},
					Confidence: baseConfidence,
				})
			}
		}
	}

	recurring := make([]models.ConversationPattern, 0)
	for _, p := range phrases.entries {
		if p.Frequency <= 1 {
			continue
		}
		p.Confidence = PhraseConfidence(p.Frequency)
		recurring = append(recurring, p)
	}

	return rank(recurring, func(p models.ConversationPattern) int { return p.Frequency }, MaxConversationPatterns)
}

// PhraseConfidence is min(0.9, 0.5 + 0.1 * frequency)
func PhraseConfidence(frequency int) float64 {
	return math.Min(maxConfidence, baseConfidence+float64(frequency)*confidenceStep)
}
