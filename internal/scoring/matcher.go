package scoring

import "alfredoptarigan/job-tracker/internal/profile"

// CategoryResult is the outcome of matching one category against job text.
type CategoryResult struct {
	CategoryID string
	// Score is the fraction of the category's maximum in [0,1].
	Score float64
	// Percent is Score*100 truncated, as reported in the breakdown.
	Percent int
	Matches []SkillMatch
}

// SkillScore is the per-skill match score awarded on a keyword hit.
func SkillScore(proficiency, years int) int {
	return min(proficiency*10+years*2, 100)
}

// MatchCategory scores every skill of a category against text. A skill scores on
// its first matching alias; later aliases are not consulted.
func MatchCategory(text string, category profile.SkillCategory) CategoryResult {
	result := CategoryResult{CategoryID: category.ID, Matches: []SkillMatch{}}
	if len(category.Skills) == 0 {
		return result
	}

	sum := 0
	for _, skill := range category.Skills {
		alias, ok := skill.FirstMatch(text)
		if !ok {
			continue
		}
		score := SkillScore(skill.Proficiency, skill.YearsExperience)
		if score <= 0 {
			continue
		}
		sum += score
		result.Matches = append(result.Matches, SkillMatch{
			SkillName:       skill.Name,
			Category:        category.ID,
			Proficiency:     skill.Proficiency,
			YearsExperience: skill.YearsExperience,
			MatchScore:      score,
			MatchedKeyword:  alias,
		})
	}

	result.Score = float64(sum) / float64(len(category.Skills)*100)
	result.Percent = sum / len(category.Skills)
	return result
}
