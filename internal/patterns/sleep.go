package patterns

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/wellcoach/patterns-api/internal/models"
)

const (
	// MaxSleepPatterns caps the sleep entries returned per analysis
	MaxSleepPatterns = 5

	// UnknownTime is reported when no clock time could be parsed
	UnknownTime = "Unknown"

	defaultSleepQuality  = 5
	defaultSleepDuration = 7.0
)

var sleepTriggers = []string{"sleep", "rest", "bed"}

// qualityLadder is checked top to bottom; the first rung with a hit wins
var qualityLadder = []struct {
	score    int
	keywords []string
}{
	{9, []string{"great", "amazing", "wonderful"}},
	{7, []string{"good", "nice", "decent"}},
	{5, []string{"okay", "fine", "alright"}},
	{3, []string{"bad", "poor", "terrible"}},
}

var sleepFactors = []struct {
	factor   string
	keywords []string
}{
	{"stress", []string{"stress", "anxious"}},
	{"caffeine", []string{"caffeine", "coffee"}},
	{"exercise", []string{"exercise", "workout"}},
	{"noise", []string{"noise", "loud"}},
	{"temperature", []string{"temperature", "hot", "cold"}},
	{"screen_time", []string{"screen", "phone", "tv"}},
}

var (
	durationRegex = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:hours?|hrs?|h)\b`)

	// H:MM or H with a meridiem, or a bare H:MM whose meridiem is ambiguous
	clockRegex = regexp.MustCompile(`(?i)\b(\d{1,2})(?::(\d{2}))?\s*([ap])\.?m\b|\b(\d{1,2}):(\d{2})\b`)

	wakeRegex = regexp.MustCompile(`(?i)\b(?:woke|wake|up)\b(?:\s+up\b)?(?:\s+(?:at|around))?\s*(\d{1,2})(?::(\d{2}))?(?:\s*([ap])\.?m\b)?`)
)

// ExtractSleep builds one entry per sleep-related message, in input order,
// stopping after the first five.
func ExtractSleep(insights []models.ConversationInsight) []models.SleepPattern {
	entries := make([]models.SleepPattern, 0)

	for _, insight := range insights {
		if len(entries) == MaxSleepPatterns {
			break
		}

		lower := strings.ToLower(insight.Message)
		if !containsAny(lower, sleepTriggers) {
			continue
		}

		wakeTime, wakeSpan := parseWakeTime(insight.Message)

		entries = append(entries, models.SleepPattern{
			SleepQuality:  sleepQuality(lower),
			SleepDuration: sleepDuration(insight.Message),
			SleepTime:     parseSleepTime(insight.Message, wakeSpan),
			WakeTime:      wakeTime,
			Factors:       sleepFactorsIn(lower),
			LastMentioned: insight.CreatedAt,
		})
	}

	return entries
}

func sleepQuality(lower string) int {
	for _, rung := range qualityLadder {
		if containsAny(lower, rung.keywords) {
			return rung.score
		}
	}
	return defaultSleepQuality
}

func sleepDuration(message string) float64 {
	m := durationRegex.FindStringSubmatch(message)
	if m == nil {
		return defaultSleepDuration
	}
	hours, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return defaultSleepDuration
	}
	return hours
}

// parseWakeTime returns the formatted wake time and the byte span it was
// read from, or UnknownTime and nil.
func parseWakeTime(message string) (string, []int) {
	m := wakeRegex.FindStringSubmatchIndex(message)
	if m == nil {
		return UnknownTime, nil
	}
	hour := message[m[2]:m[3]]
	minute := submatch(message, m, 2)
	meridiem := submatch(message, m, 3)

	formatted, ok := formatClock(hour, minute, meridiem, "AM")
	if !ok {
		return UnknownTime, nil
	}
	return formatted, m[:2]
}

// parseSleepTime finds the first clock time outside the wake clause
func parseSleepTime(message string, wakeSpan []int) string {
	if wakeSpan != nil {
		blank := strings.Repeat(" ", wakeSpan[1]-wakeSpan[0])
		message = message[:wakeSpan[0]] + blank + message[wakeSpan[1]:]
	}

	m := clockRegex.FindStringSubmatchIndex(message)
	if m == nil {
		return UnknownTime
	}

	var formatted string
	var ok bool
	if m[2] >= 0 {
		formatted, ok = formatClock(message[m[2]:m[3]], submatch(message, m, 2), submatch(message, m, 3), "PM")
	} else {
		formatted, ok = formatClock(message[m[8]:m[9]], submatch(message, m, 5), "", "PM")
	}
	if !ok {
		return UnknownTime
	}
	return formatted
}

// formatClock renders "H:MM AM". meridiem is "a", "p" or empty, in which
// case fallback is used unless the hour is unambiguous on a 24h clock.
func formatClock(hourStr, minuteStr, meridiem, fallback string) (string, bool) {
	hour, err := strconv.Atoi(hourStr)
	if err != nil || hour > 23 {
		return "", false
	}
	if minuteStr == "" {
		minuteStr = "00"
	}
	if minute, err := strconv.Atoi(minuteStr); err != nil || minute > 59 {
		return "", false
	}

	var suffix string
	switch strings.ToLower(meridiem) {
	case "a":
		suffix = "AM"
	case "p":
		suffix = "PM"
	default:
		suffix = fallback
		if hour > 12 {
			hour -= 12
			suffix = "PM"
		} else if hour == 0 {
			hour = 12
			suffix = "AM"
		}
	}

	return fmt.Sprintf("%d:%s %s", hour, minuteStr, suffix), true
}

func sleepFactorsIn(lower string) []string {
	factors := make([]string, 0)
	for _, f := range sleepFactors {
		if containsAny(lower, f.keywords) {
			factors = append(factors, f.factor)
		}
	}
	return factors
}

// submatch returns capture group n of an index match, or "" if it did not participate
func submatch(s string, m []int, n int) string {
	if 2*n+1 >= len(m) || m[2*n] < 0 {
		return ""
	}
	return s[m[2*n]:m[2*n+1]]
}

func containsAny(s string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}
