package scoring

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/job-tracker/internal/profile"
)

func defaultProfile(t *testing.T) *profile.Profile {
	t.Helper()
	p, err := profile.Default()
	require.NoError(t, err)
	return p
}

func mustSkill(t *testing.T, name string, proficiency, years int, aliases ...string) profile.SkillDefinition {
	t.Helper()
	s, err := profile.NewSkill(name, proficiency, years, aliases...)
	require.NoError(t, err)
	return s
}

func TestSkillScore(t *testing.T) {
	assert.Equal(t, 94, SkillScore(9, 2))
	assert.Equal(t, 84, SkillScore(8, 2))
	assert.Equal(t, 100, SkillScore(10, 13))
	assert.Equal(t, 0, SkillScore(0, 0))
}

func TestMatchCategory_FirstAliasWins(t *testing.T) {
	single := profile.SkillCategory{ID: "tech", Skills: []profile.SkillDefinition{
		mustSkill(t, "AI/ML Integration", 9, 2, "AI"),
	}}
	duplicated := profile.SkillCategory{ID: "tech", Skills: []profile.SkillDefinition{
		mustSkill(t, "AI/ML Integration", 9, 2, "AI", "AI", "Machine Learning", "ML"),
	}}

	text := "AI and Machine Learning and ML"
	a := MatchCategory(text, single)
	b := MatchCategory(text, duplicated)

	require.Len(t, a.Matches, 1)
	require.Len(t, b.Matches, 1)
	assert.Equal(t, 94, a.Matches[0].MatchScore)
	assert.Equal(t, a.Matches[0].MatchScore, b.Matches[0].MatchScore)
	assert.Equal(t, "AI", b.Matches[0].MatchedKeyword)
	assert.Equal(t, a.Score, b.Score)
}

func TestMatchCategory_LaterAliasStillMatches(t *testing.T) {
	category := profile.SkillCategory{ID: "tech", Skills: []profile.SkillDefinition{
		mustSkill(t, "Go", 7, 4, "golang", "go developer"),
	}}

	r := MatchCategory("Looking for a Go Developer", category)
	require.Len(t, r.Matches, 1)
	assert.Equal(t, "go developer", r.Matches[0].MatchedKeyword)
	assert.Equal(t, 78, r.Matches[0].MatchScore)
}

func TestMatchCategory_EmptyCategory(t *testing.T) {
	r := MatchCategory("anything at all", profile.SkillCategory{ID: "empty", Weight: 0.5})
	assert.Equal(t, 0.0, r.Score)
	assert.Equal(t, 0, r.Percent)
	assert.Empty(t, r.Matches)
}

func TestMatchCategory_AveragesOverAllSkills(t *testing.T) {
	category := profile.SkillCategory{ID: "c", Skills: []profile.SkillDefinition{
		mustSkill(t, "One", 10, 0, "alpha"),
		mustSkill(t, "Two", 5, 0, "beta"),
		mustSkill(t, "Three", 7, 1, "gamma"),
	}}

	r := MatchCategory("alpha and gamma", category)
	// (100 + 72) / 300
	assert.InDelta(t, 172.0/300, r.Score, 1e-9)
	assert.Equal(t, 57, r.Percent)
	require.Len(t, r.Matches, 2)
	assert.Equal(t, "One", r.Matches[0].SkillName)
	assert.Equal(t, "Three", r.Matches[1].SkillName)
}

func TestMatchCategory_ZeroScoreSkillIsNotReported(t *testing.T) {
	category := profile.SkillCategory{ID: "c", Skills: []profile.SkillDefinition{
		mustSkill(t, "Novice", 0, 0, "novice"),
	}}

	r := MatchCategory("novice welcome", category)
	assert.Empty(t, r.Matches)
	assert.Equal(t, 0.0, r.Score)
}

// Scenario: CTO role mentioning AI.
func TestScore_StrongMatchesForChiefTechnologyOfficer(t *testing.T) {
	p, err := profile.Build(profile.Definition{
		Version: "test",
		Categories: []profile.CategoryDefinition{
			{ID: "leadership", Weight: 0.5, Skills: []profile.SkillInput{
				{Name: "Chief Technology Officer", Proficiency: 8, YearsExperience: 2, Keywords: []string{"CTO", "Chief Technology"}},
			}},
			{ID: "technology", Weight: 0.5, Skills: []profile.SkillInput{
				{Name: "AI/ML Integration", Proficiency: 9, YearsExperience: 2, Keywords: []string{"AI"}},
			}},
		},
	})
	require.NoError(t, err)

	job := &JobRecord{Title: "Chief Technology Officer role requiring AI and Machine Learning leadership"}
	result, err := Score(job, p)
	require.NoError(t, err)

	scores := map[string]int{}
	for _, m := range result.Matches {
		scores[m.SkillName] = m.MatchScore
	}
	assert.Equal(t, 94, scores["AI/ML Integration"])
	assert.Equal(t, 84, scores["Chief Technology Officer"])
	assert.ElementsMatch(t, []string{"AI/ML Integration", "Chief Technology Officer"}, result.StrongMatches)
}

// Scenario: nothing known about the job.
func TestScore_EmptyJobDegradesToDefaults(t *testing.T) {
	p := defaultProfile(t)

	result, err := Score(&JobRecord{}, p)
	require.NoError(t, err)

	for _, id := range p.CategoryIDs() {
		assert.Equal(t, 0, result.Breakdown[id], id)
	}
	assert.Equal(t, 50, result.Breakdown[KeyIndustryFit])
	assert.Equal(t, 60, result.Breakdown[KeyRoleLevel])
	assert.Equal(t, 70, result.Breakdown[KeyLocationFit])
	// 0 + 5 + 6 + 3.5 = 14.5
	assert.Equal(t, 15, result.TotalScore)
	assert.Equal(t, SkipMessages, result.Recommendations)
	assert.Empty(t, result.StrongMatches)
	assert.Empty(t, result.MissingRequirements)
}

// Scenario: remote role in a preferred region.
func TestLocationScore_RemoteInPreferredRegion(t *testing.T) {
	assert.Equal(t, 100, LocationScore("Sydney NSW", "Remote", []string{"nsw"}))
}

func TestLocationScore(t *testing.T) {
	regions := []string{"nsw", "sydney", "australia", "apac"}
	tests := []struct {
		location, remote string
		want             int
	}{
		{"", "", 70},
		{"", "Fully Remote", 90},
		{"", "Hybrid", 85},
		{"Sydney", "", 80},
		{"Melbourne", "Hybrid", 85},
		{"APAC", "hybrid", 95},
		{"London", "On-site", 70},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LocationScore(tt.location, tt.remote, regions), "%q/%q", tt.location, tt.remote)
	}
}

// Scenario: list order, not title order, decides the seniority marker.
func TestRoleLevelScore_ListOrderWins(t *testing.T) {
	p := defaultProfile(t)
	assert.Equal(t, 100, RoleLevelScore("Senior Engineer reporting to the Chief of Staff", p.RoleLevels))
	assert.Equal(t, 90, RoleLevelScore("Director, Senior Programs", p.RoleLevels))
	assert.Equal(t, 70, RoleLevelScore("senior designer", p.RoleLevels))
	assert.Equal(t, DefaultRoleScore, RoleLevelScore("Designer", p.RoleLevels))
	assert.Equal(t, DefaultRoleScore, RoleLevelScore("Director", nil))
}

func TestIndustryScore(t *testing.T) {
	p := defaultProfile(t)
	assert.Equal(t, 100, IndustryScore("Financial Services - Banking", p.Industries))
	assert.Equal(t, 90, IndustryScore("technology", p.Industries))
	assert.Equal(t, 70, IndustryScore("State Government", p.Industries))
	assert.Equal(t, NeutralIndustryScore, IndustryScore("Mining", p.Industries))
	assert.Equal(t, NeutralIndustryScore, IndustryScore("   ", p.Industries))
}

func TestScore_TotalFormula(t *testing.T) {
	p, err := profile.Build(profile.Definition{
		Version: "test",
		Categories: []profile.CategoryDefinition{
			{ID: "core", Weight: 0.5, Skills: []profile.SkillInput{
				{Name: "Matched", Proficiency: 10, Keywords: []string{"kubernetes"}},
				{Name: "Unmatched", Proficiency: 5, Keywords: []string{"cobol"}},
			}},
		},
		Industries: []profile.Affinity{{Name: "Financial Services", Score: 10}},
	})
	require.NoError(t, err)

	job := &JobRecord{
		Title:       "Platform Engineer",
		Description: "Kubernetes everywhere",
		Industry:    "Financial Services Group",
		RemoteMode:  "Hybrid",
	}
	result, err := Score(job, p)
	require.NoError(t, err)

	// 0.5*0.5*100 + 100*0.10 + 60*0.10 + 85*0.05 = 25 + 10 + 6 + 4.25
	assert.Equal(t, 45, result.TotalScore)
	assert.Equal(t, 50, result.Breakdown["core"])
	assert.Equal(t, 100, result.Breakdown[KeyIndustryFit])
	assert.Equal(t, 85, result.Breakdown[KeyLocationFit])
}

func TestScore_TotalIsClamped(t *testing.T) {
	var categories []profile.CategoryDefinition
	for _, id := range []string{"a", "b", "c", "d"} {
		categories = append(categories, profile.CategoryDefinition{
			ID: id, Weight: 1, Tip: "tip " + id,
			Skills: []profile.SkillInput{{Name: "Skill " + id, Proficiency: 10, YearsExperience: 10, Keywords: []string{"go"}}},
		})
	}
	p, err := profile.Build(profile.Definition{
		Version:          "test",
		Categories:       categories,
		Industries:       []profile.Affinity{{Name: "Tech", Score: 10}},
		RoleLevels:       []profile.Affinity{{Name: "Chief", Score: 10}},
		PreferredRegions: []string{"sydney"},
	})
	require.NoError(t, err)

	result, err := Score(&JobRecord{
		Title: "Chief Go Officer", Industry: "Tech", Location: "Sydney", RemoteMode: "Remote",
	}, p)
	require.NoError(t, err)

	assert.Equal(t, 100, result.TotalScore)
	assert.Equal(t, append(append([]string{}, HighlyRecommendedMessages...), "tip a", "tip b", "tip c", "tip d"), result.Recommendations)
}

func TestScore_TotalAlwaysInRange(t *testing.T) {
	p := defaultProfile(t)
	jobs := []*JobRecord{
		{},
		{Title: "Chief Design Officer", Description: "AI UX design system strategy consulting ROI stakeholder", Location: "Sydney", RemoteMode: "remote", Industry: "Technology"},
		{Title: strings.Repeat("AI UX Strategy ", 200)},
		{Title: "Barista", Description: "coffee"},
	}
	for _, job := range jobs {
		result, err := Score(job, p)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, result.TotalScore, 0)
		assert.LessOrEqual(t, result.TotalScore, 100)
		for key, v := range result.Breakdown {
			assert.GreaterOrEqual(t, v, 0, key)
			assert.LessOrEqual(t, v, 100, key)
		}
	}
}

func TestScore_Deterministic(t *testing.T) {
	p := defaultProfile(t)
	job := &JobRecord{
		Title:        "Head of Design, AI Products",
		Description:  "Lead design strategy, design systems and UX for our machine learning platform. MBA preferred.",
		Requirements: "Stakeholder management, roadmap planning, DevOps awareness",
		Industry:     "Financial Services",
		Location:     "Sydney, NSW",
		RemoteMode:   "Hybrid",
	}
	before := *job

	first, err := Score(job, p)
	require.NoError(t, err)
	second, err := Score(job, p)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, before, *job)
}

func TestScore_MissingAndMatchedAreDisjoint(t *testing.T) {
	p, err := profile.Build(profile.Definition{
		Version: "test",
		Categories: []profile.CategoryDefinition{
			{ID: "ops", Weight: 1, Skills: []profile.SkillInput{
				{Name: "DevOps", Proficiency: 9, YearsExperience: 4, Keywords: []string{"devops"}},
				{Name: "Terraform", Proficiency: 6, YearsExperience: 1, Keywords: []string{"terraform"}},
			}},
		},
	})
	require.NoError(t, err)

	result, err := Score(&JobRecord{
		Title:        "DevOps Lead",
		Requirements: "Terraform, an MBA and Scrum Master certification",
	}, p)
	require.NoError(t, err)

	assert.Equal(t, []string{"MBA", "Certification", "Scrum Master"}, result.MissingRequirements)

	matched := map[string]bool{}
	for _, m := range result.Matches {
		matched[strings.ToLower(m.SkillName)] = true
	}
	for _, missing := range result.MissingRequirements {
		assert.False(t, matched[strings.ToLower(missing)], missing)
	}
	assert.Contains(t, result.StrongMatches, "DevOps")
	assert.NotContains(t, result.StrongMatches, "Terraform")
}

func TestScore_NilJob(t *testing.T) {
	_, err := Score(nil, defaultProfile(t))
	var nf *NotFoundError
	assert.True(t, errors.As(err, &nf))
}

func TestScore_NilProfile(t *testing.T) {
	_, err := Score(&JobRecord{}, nil)
	var cfgErr *profile.ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestRecommend_Ladder(t *testing.T) {
	categories := []profile.SkillCategory{
		{ID: "a", Tip: "tip a"}, {ID: "b", Tip: "tip b"}, {ID: "c"}, {ID: "d", Tip: "tip d"},
	}
	results := func(percents ...int) []CategoryResult {
		out := make([]CategoryResult, len(percents))
		for i, p := range percents {
			out[i] = CategoryResult{Percent: p}
		}
		return out
	}

	tests := []struct {
		name     string
		percents []int
		want     []string
	}{
		{"highly recommended", []int{80, 80, 80, 80}, append(append([]string{}, HighlyRecommendedMessages...), "tip a", "tip b", "tip d")},
		{"strong candidate", []int{70, 70, 70, 70}, StrongCandidateMessages},
		{"consider", []int{60, 60, 60, 60}, ConsiderMessages},
		{"just below consider", []int{60, 60, 60, 59}, SkipMessages},
		{"tips without ladder", []int{95, 0, 90, 10}, append(append([]string{}, SkipMessages...), "tip a")},
		{"tip order follows categories", []int{85, 0, 0, 99}, append(append([]string{}, SkipMessages...), "tip a", "tip d")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Recommend(categories, results(tt.percents...)))
		})
	}
}

func TestMissingRequirements_FollowsTokenOrder(t *testing.T) {
	text := "DevOps culture, PhD welcome, MBA required"
	got := MissingRequirements(text, profile.DefaultCommonRequirements, nil)
	assert.Equal(t, []string{"MBA", "PhD", "DevOps"}, got)
}

func TestStrongMatches_Deduplicates(t *testing.T) {
	got := StrongMatches([]SkillMatch{
		{SkillName: "Strategy", MatchScore: 100},
		{SkillName: "Roadmaps", MatchScore: 79},
		{SkillName: "Strategy", MatchScore: 100},
		{SkillName: "UX", MatchScore: 80},
	})
	assert.Equal(t, []string{"Strategy", "UX"}, got)
}

func TestBonusKeysCannotBeCategoryIDs(t *testing.T) {
	for _, key := range []string{KeyIndustryFit, KeyRoleLevel, KeyLocationFit} {
		_, err := profile.Build(profile.Definition{Version: "1", Categories: []profile.CategoryDefinition{
			{ID: key, Weight: 1, Skills: []profile.SkillInput{{Name: "Go", Proficiency: 8, YearsExperience: 3, Keywords: []string{"golang"}}}},
		}})
		var cfgErr *profile.ConfigurationError
		assert.True(t, errors.As(err, &cfgErr), key)
	}
}
