package scoring

import (
	"math"

	"alfredoptarigan/job-tracker/internal/profile"
)

// Score computes the fit of job against p.
//
// The total is the sum of each category score times its weight, plus the
// industry, role and location bonuses times their own weights. The terms are
// not normalised: with every category at full value the bonuses push the raw
// sum above 100, so the result is clamped.
func Score(job *JobRecord, p *profile.Profile) (ScoreResult, error) {
	if job == nil {
		return ScoreResult{}, &NotFoundError{}
	}
	if p == nil {
		return ScoreResult{}, &profile.ConfigurationError{Field: "profile", Reason: "no profile loaded"}
	}

	text := job.Text()

	results := make([]CategoryResult, len(p.Categories))
	breakdown := make(map[string]int, len(p.Categories)+3)
	matches := []SkillMatch{}
	total := 0.0
	for i, category := range p.Categories {
		r := MatchCategory(text, category)
		results[i] = r
		breakdown[category.ID] = r.Percent
		matches = append(matches, r.Matches...)
		total += r.Score * category.Weight * 100
	}

	industry := IndustryScore(job.Industry, p.Industries)
	role := RoleLevelScore(job.Title, p.RoleLevels)
	location := LocationScore(job.Location, job.RemoteMode, p.PreferredRegions)
	breakdown[KeyIndustryFit] = industry
	breakdown[KeyRoleLevel] = role
	breakdown[KeyLocationFit] = location

	total += float64(industry) * IndustryWeight
	total += float64(role) * RoleWeight
	total += float64(location) * LocationWeight

	return ScoreResult{
		TotalScore:          clampTotal(total),
		Breakdown:           breakdown,
		StrongMatches:       StrongMatches(matches),
		MissingRequirements: MissingRequirements(text, p.CommonRequirements, matches),
		Recommendations:     Recommend(p.Categories, results),
		Matches:             matches,
	}, nil
}

// clampTotal rounds half away from zero into [0,100]. The sum is snapped to
// micro precision first.
func clampTotal(total float64) int {
	total = math.Round(total*1e6) / 1e6
	rounded := int(math.Round(total))
	return max(0, min(rounded, 100))
}
