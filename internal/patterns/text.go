package patterns

import (
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/wellcoach/patterns-api/internal/models"
)

// sentence is one fragment of a message split on . ! and ?
type sentence struct {
	text       string // trimmed, without the terminator
	terminator string // run of . ! ? that ended it, empty for a trailing fragment
}

// splitSentences splits a message on runs of '.', '!' and '?'.
// Fragments that are empty after trimming are dropped.
func splitSentences(message string) []sentence {
	var sentences []sentence
	var text, term strings.Builder

	flush := func() {
		trimmed := strings.TrimSpace(text.String())
		if trimmed != "" {
			sentences = append(sentences, sentence{text: trimmed, terminator: term.String()})
		}
		text.Reset()
		term.Reset()
	}

	for _, r := range message {
		switch r {
		case '.', '!', '?':
			term.WriteRune(r)
		default:
			if term.Len() > 0 {
				flush()
			}
			text.WriteRune(r)
		}
	}
	flush()

	return sentences
}

// truncate returns at most n runes of s
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

// timeOfDay buckets the hour of t in loc
func timeOfDay(t time.Time, loc *time.Location) models.TimeOfDay {
	hour := t.In(loc).Hour()
	switch {
	case hour < 12:
		return models.TimeOfDayMorning
	case hour < 17:
		return models.TimeOfDayAfternoon
	case hour < 21:
		return models.TimeOfDayEvening
	default:
		return models.TimeOfDayNight
	}
}

// appendUnique appends v to list unless it is already present
func appendUnique[T comparable](list []T, v T) []T {
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}

// tally accumulates entries by key and remembers first-seen order
type tally[T any] struct {
	index   map[string]int
	entries []T
}

func newTally[T any]() *tally[T] {
	return &tally[T]{index: make(map[string]int)}
}

// get returns the entry for key. The pointer is valid until the next add.
func (t *tally[T]) get(key string) (*T, bool) {
	i, ok := t.index[key]
	if !ok {
		return nil, false
	}
	return &t.entries[i], true
}

func (t *tally[T]) add(key string, entry T) {
	t.index[key] = len(t.entries)
	t.entries = append(t.entries, entry)
}

// rank sorts items by frequency descending, keeping first-seen order on
// ties, and caps the result at limit. The result is never nil.
func rank[T any](items []T, frequency func(T) int, limit int) []T {
	ranked := make([]T, len(items))
	copy(ranked, items)
	sort.SliceStable(ranked, func(i, j int) bool {
		return frequency(ranked[i]) > frequency(ranked[j])
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
