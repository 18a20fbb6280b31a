package scoring

import (
	"strings"

	"alfredoptarigan/job-tracker/internal/profile"
)

// Bonus dimension defaults and weights. The weights are applied on top of the
// category weights, so a perfect job can exceed 100 before clamping.
const (
	NeutralIndustryScore = 50
	DefaultRoleScore     = 60

	LocationBaseScore    = 70
	RemoteBonus          = 20
	HybridBonus          = 15
	PreferredRegionBonus = 10

	IndustryWeight = 0.10
	RoleWeight     = 0.10
	LocationWeight = 0.05
)

// Breakdown keys of the bonus dimensions.
const (
	KeyIndustryFit = "industry_fit"
	KeyRoleLevel   = "role_level"
	KeyLocationFit = "location_fit"
)

// IndustryScore returns the affinity (0-100) of the first configured industry
// contained in industry, or the neutral score.
func IndustryScore(industry string, industries []profile.Affinity) int {
	industry = strings.ToLower(strings.TrimSpace(industry))
	if industry == "" {
		return NeutralIndustryScore
	}
	for _, a := range industries {
		if strings.Contains(industry, strings.ToLower(a.Name)) {
			return a.Score * 10
		}
	}
	return NeutralIndustryScore
}

// RoleLevelScore scans title for seniority markers in list order, so a marker
// listed earlier wins even when it appears later in the title.
func RoleLevelScore(title string, levels []profile.Affinity) int {
	title = strings.ToLower(title)
	for _, a := range levels {
		if strings.Contains(title, strings.ToLower(a.Name)) {
			return a.Score * 10
		}
	}
	return DefaultRoleScore
}

// LocationScore rewards remote or hybrid work and a preferred region, capped at 100.
func LocationScore(location, remoteMode string, preferredRegions []string) int {
	score := LocationBaseScore

	remoteMode = strings.ToLower(remoteMode)
	switch {
	case strings.Contains(remoteMode, "remote"):
		score += RemoteBonus
	case strings.Contains(remoteMode, "hybrid"):
		score += HybridBonus
	}

	location = strings.ToLower(location)
	if location != "" {
		for _, region := range preferredRegions {
			if region != "" && strings.Contains(location, strings.ToLower(region)) {
				score += PreferredRegionBonus
				break
			}
		}
	}

	return min(score, 100)
}
