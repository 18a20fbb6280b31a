package scoring

import (
	"strings"

	"alfredoptarigan/job-tracker/internal/profile"
)

// StrongMatchThreshold is the match score at which a skill counts as a strong match.
// The same threshold applies to category tips.
const StrongMatchThreshold = 80

// Ladder messages, evaluated high to low on the mean category percentage.
var (
	HighlyRecommendedMessages = []string{
		"HIGHLY RECOMMENDED: Excellent fit across all categories",
		"Apply promptly and lead the application with your strongest matches",
	}
	StrongCandidateMessages = []string{
		"STRONG CANDIDATE: Good overall fit",
		"Highlight specific experience in weaker categories",
	}
	ConsiderMessages = []string{
		"CONSIDER: Moderate fit with some gaps",
		"Address missing requirements in cover letter",
	}
	SkipMessages = []string{
		"SKIP: Poor fit for current profile",
	}
)

// Recommend builds the ladder messages followed by one tip per category scoring
// at least StrongMatchThreshold, in category order.
func Recommend(categories []profile.SkillCategory, results []CategoryResult) []string {
	var avg float64
	if len(results) > 0 {
		sum := 0
		for _, r := range results {
			sum += r.Percent
		}
		avg = float64(sum) / float64(len(results))
	}

	var recommendations []string
	switch {
	case avg >= 80:
		recommendations = append(recommendations, HighlyRecommendedMessages...)
	case avg >= 70:
		recommendations = append(recommendations, StrongCandidateMessages...)
	case avg >= 60:
		recommendations = append(recommendations, ConsiderMessages...)
	default:
		recommendations = append(recommendations, SkipMessages...)
	}

	for i, category := range categories {
		if i >= len(results) || category.Tip == "" {
			continue
		}
		if results[i].Percent >= StrongMatchThreshold {
			recommendations = append(recommendations, category.Tip)
		}
	}

	return recommendations
}

// MissingRequirements reports tokens present in text that no matched skill
// covers, in token order.
func MissingRequirements(text string, tokens []string, matches []SkillMatch) []string {
	matched := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		matched[strings.ToLower(m.SkillName)] = struct{}{}
	}

	lower := strings.ToLower(text)
	missing := []string{}
	for _, token := range tokens {
		key := strings.ToLower(token)
		if !strings.Contains(lower, key) {
			continue
		}
		if _, ok := matched[key]; ok {
			continue
		}
		missing = append(missing, token)
	}
	return missing
}

// StrongMatches lists matched skills at or above StrongMatchThreshold, first
// occurrence only.
func StrongMatches(matches []SkillMatch) []string {
	seen := make(map[string]struct{}, len(matches))
	strong := []string{}
	for _, m := range matches {
		if m.MatchScore < StrongMatchThreshold {
			continue
		}
		if _, ok := seen[m.SkillName]; ok {
			continue
		}
		seen[m.SkillName] = struct{}{}
		strong = append(strong, m.SkillName)
	}
	return strong
}
