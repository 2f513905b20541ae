package patterns

import "strings"

// Category maps a category name to the keywords that signal it.
// Keywords are lower-case and matched by substring containment.
type Category struct {
	Name     string
	Keywords []string
}

// Taxonomy is an ordered set of categories. Order decides how ties rank.
type Taxonomy []Category

// Taxonomies bundles the keyword taxonomies used by the classifiers
type Taxonomies struct {
	Topics     Taxonomy
	Activities Taxonomy
	Moods      Taxonomy
}

// matchedKeywords returns the keywords of c found in lower, in taxonomy order
func (c Category) matchedKeywords(lower string) []string {
	var matched []string
	for _, keyword := range c.Keywords {
		if strings.Contains(lower, keyword) {
			matched = append(matched, keyword)
		}
	}
	return matched
}

// matches reports whether any keyword of c occurs in lower
func (c Category) matches(lower string) bool {
	for _, keyword := range c.Keywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// DefaultTaxonomies returns a fresh copy of the built-in taxonomies
func DefaultTaxonomies() Taxonomies {
	return Taxonomies{
		Topics:     DefaultTopicTaxonomy(),
		Activities: DefaultActivityTaxonomy(),
		Moods:      DefaultMoodTaxonomy(),
	}
}

// DefaultTopicTaxonomy returns the built-in topic keywords
func DefaultTopicTaxonomy() Taxonomy {
	return Taxonomy{
		{Name: "health", Keywords: []string{"health", "wellness", "fitness", "workout", "exercise", "nutrition", "diet"}},
		{Name: "sleep", Keywords: []string{"sleep", "rest", "tired", "insomnia", "dream", "nap"}},
		{Name: "mood", Keywords: []string{"mood", "feeling", "emotion", "happy", "sad", "anxious", "stress"}},
		{Name: "work", Keywords: []string{"work", "job", "career", "meeting", "project", "deadline", "office"}},
		{Name: "relationships", Keywords: []string{"friend", "family", "partner", "relationship", "date", "love"}},
		{Name: "travel", Keywords: []string{"travel", "trip", "vacation", "flight", "hotel", "journey"}},
		{Name: "hobbies", Keywords: []string{"hobby", "reading", "music", "art", "game", "cooking", "photography"}},
		{Name: "weather", Keywords: []string{"weather", "rain", "sunny", "cold", "hot", "snow"}},
	}
}

// DefaultActivityTaxonomy returns the built-in activity keywords
func DefaultActivityTaxonomy() Taxonomy {
	return Taxonomy{
		{Name: "exercise", Keywords: []string{"workout", "exercise", "gym", "run", "jog", "walk", "hike", "swim"}},
		{Name: "social", Keywords: []string{"friends", "party", "dinner", "hang out", "meet", "family"}},
		{Name: "creative", Keywords: []string{"paint", "draw", "write", "music", "art", "craft", "cook"}},
		{Name: "relaxation", Keywords: []string{"meditate", "yoga", "read", "relax", "bath", "nap"}},
		{Name: "outdoor", Keywords: []string{"outside", "park", "garden", "nature", "beach", "hike"}},
		{Name: "indoor", Keywords: []string{"home", "movie", "tv", "video game", "indoor", "couch"}},
	}
}

// DefaultMoodTaxonomy returns the built-in mood keywords
func DefaultMoodTaxonomy() Taxonomy {
	return Taxonomy{
		{Name: "positive", Keywords: []string{"happy", "great", "excited", "amazing", "wonderful", "grateful", "joy"}},
		{Name: "negative", Keywords: []string{"sad", "stress", "anxious", "worried", "angry", "frustrated", "upset", "depressed"}},
		{Name: "neutral", Keywords: []string{"okay", "fine", "alright", "normal", "so-so"}},
		{Name: "energetic", Keywords: []string{"energetic", "energized", "motivated", "pumped", "productive"}},
		{Name: "calm", Keywords: []string{"calm", "relaxed", "peaceful", "content", "serene"}},
	}
}
