package signals

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-scorer/internal/types"
)

// achievementPattern pairs an achievement verb with the nearest following percentage
// on the same line.
var achievementPattern = regexp.MustCompile(`(?i)\b(increased|reduced|improved|saved|achieved|grew|generated)\b.*?(\d+%)`)

// Achievements counts quantified achievement phrases. Matches never overlap.
func Achievements(text string) types.AchievementsResult {
	matches := achievementPattern.FindAllString(text, -1)
	phrases := make([]string, 0, len(matches))
	for _, m := range matches {
		phrases = append(phrases, strings.TrimSpace(m))
	}
	return types.AchievementsResult{Count: len(matches), Phrases: phrases}
}
