package profile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_LoadsBuiltInProfile(t *testing.T) {
	p, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "2025.1", p.Version)
	assert.Equal(t, []string{"executive_leadership", "ai_technology", "design_innovation", "consulting_business"}, p.CategoryIDs())
	assert.InDelta(t, 1.0, p.TotalCategoryWeight(), 1e-9)

	tech, ok := p.Category("ai_technology")
	require.True(t, ok)
	assert.Equal(t, 0.30, tech.Weight)
	assert.Len(t, tech.Skills, 6)
	assert.Equal(t, "AI/ML Integration", tech.Skills[0].Name)
	assert.Equal(t, []string{"AI", "Machine Learning", "ML", "Artificial Intelligence"}, tech.Skills[0].KeywordAliases)

	require.Len(t, p.RoleLevels, 6)
	assert.Equal(t, Affinity{Name: "Chief", Score: 10}, p.RoleLevels[0])
	assert.Equal(t, Affinity{Name: "Lead", Score: 7}, p.RoleLevels[5])
	assert.Equal(t, []string{"nsw", "sydney", "australia", "apac"}, p.PreferredRegions)
	assert.Equal(t, DefaultCommonRequirements, p.CommonRequirements)
}

func TestSkillDefinition_FirstMatchUsesDeclaredOrder(t *testing.T) {
	skill, err := NewSkill("Chief Technology Officer", 8, 2, "CTO", "Chief Technology", "Technical Director")
	require.NoError(t, err)

	alias, ok := skill.FirstMatch("Chief Technology Officer wanted")
	assert.True(t, ok)
	assert.Equal(t, "Chief Technology", alias)

	// "Director" contains "cto", and aliases match as substrings.
	alias, ok = skill.FirstMatch("Technical Director or Chief Technology Officer")
	assert.True(t, ok)
	assert.Equal(t, "CTO", alias)

	alias, ok = skill.FirstMatch("we need a cto")
	assert.True(t, ok)
	assert.Equal(t, "CTO", alias)

	_, ok = skill.FirstMatch("gardener")
	assert.False(t, ok)
}

func TestNewSkill_Validation(t *testing.T) {
	tests := []struct {
		name        string
		skill       string
		proficiency int
		years       int
		aliases     []string
	}{
		{"blank name", " ", 5, 1, []string{"x"}},
		{"proficiency above range", "Go", 11, 1, []string{"go"}},
		{"negative proficiency", "Go", -1, 1, []string{"go"}},
		{"negative years", "Go", 5, -2, []string{"go"}},
		{"no aliases", "Go", 5, 1, nil},
		{"blank alias", "Go", 5, 1, []string{"golang", ""}},
		{"alias does not compile", "Go", 5, 1, []string{"go(lang"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSkill(tt.skill, tt.proficiency, tt.years, tt.aliases...)
			var cfgErr *ConfigurationError
			assert.True(t, errors.As(err, &cfgErr), "expected ConfigurationError, got %v", err)
		})
	}
}

func TestBuild_RejectsInvalidDefinitions(t *testing.T) {
	skill := SkillInput{Name: "Go", Proficiency: 8, YearsExperience: 3, Keywords: []string{"golang"}}

	tests := []struct {
		name string
		def  Definition
	}{
		{"no categories", Definition{Version: "1"}},
		{"zero weight sum", Definition{Version: "1", Categories: []CategoryDefinition{
			{ID: "a", Weight: 0, Skills: []SkillInput{skill}},
			{ID: "b", Weight: 0},
		}}},
		{"weight above one", Definition{Version: "1", Categories: []CategoryDefinition{
			{ID: "a", Weight: 1.5, Skills: []SkillInput{skill}},
		}}},
		{"duplicate category", Definition{Version: "1", Categories: []CategoryDefinition{
			{ID: "a", Weight: 0.5},
			{ID: "a", Weight: 0.5},
		}}},
		{"industry score out of range", Definition{
			Version:    "1",
			Categories: []CategoryDefinition{{ID: "a", Weight: 1}},
			Industries: []Affinity{{Name: "Retail", Score: 12}},
		}},
		{"malformed keyword", Definition{Version: "1", Categories: []CategoryDefinition{
			{ID: "a", Weight: 1, Skills: []SkillInput{{Name: "Bad", Proficiency: 1, Keywords: []string{"[unclosed"}}}},
		}}},
		{"reserved industry id", Definition{Version: "1", Categories: []CategoryDefinition{
			{ID: "industry_fit", Weight: 1, Skills: []SkillInput{skill}},
		}}},
		{"reserved role id", Definition{Version: "1", Categories: []CategoryDefinition{
			{ID: "role_level", Weight: 1, Skills: []SkillInput{skill}},
		}}},
		{"reserved location id", Definition{Version: "1", Categories: []CategoryDefinition{
			{ID: " location_fit ", Weight: 1, Skills: []SkillInput{skill}},
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Build(tt.def)
			assert.Nil(t, p)
			var cfgErr *ConfigurationError
			assert.True(t, errors.As(err, &cfgErr), "expected ConfigurationError, got %v", err)
		})
	}
}

func TestBuild_AllowsEmptyCategory(t *testing.T) {
	p, err := Build(Definition{Version: "1", Categories: []CategoryDefinition{
		{ID: "empty", Weight: 0.4},
		{ID: "other", Weight: 0.6, Skills: []SkillInput{{Name: "Go", Proficiency: 8, YearsExperience: 3, Keywords: []string{"golang"}}}},
	}})
	require.NoError(t, err)

	empty, ok := p.Category("empty")
	require.True(t, ok)
	assert.Empty(t, empty.Skills)
	assert.Equal(t, "empty", empty.Label)
}

func TestParse_SchemaViolation(t *testing.T) {
	doc := `
version: "1"
categories:
  - id: tech
    weight: 0.5
    skills:
      - name: Go
        proficiency: 14
        years_experience: 2
        keywords: ["golang"]
`
	_, err := Parse([]byte(doc), "yaml")
	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Contains(t, cfgErr.Field, "proficiency")
}

func TestParse_MissingVersion(t *testing.T) {
	_, err := Parse([]byte(`categories: [{id: a, weight: 1, skills: []}]`), "yaml")
	var cfgErr *ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profile.yml")
	doc := `
version: "7"
candidate:
  name: Alex Doe
categories:
  - id: backend
    label: Backend
    weight: 0.6
    tip: Show the systems you scaled
    skills:
      - name: Go
        proficiency: 9
        years_experience: 6
        keywords: ["golang", "\\bgo\\b"]
role_levels:
  - {name: Staff, score: 9}
preferred_regions: ["Berlin", " EU "]
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "7", p.Version)
	assert.Equal(t, "Alex Doe", p.Candidate.Name)
	assert.Equal(t, []string{"berlin", "eu"}, p.PreferredRegions)

	backend, ok := p.Category("backend")
	require.True(t, ok)
	assert.Equal(t, "Show the systems you scaled", backend.Tip)
	alias, matched := backend.Skills[0].FirstMatch("We write Go services")
	assert.True(t, matched)
	assert.Equal(t, `\bgo\b`, alias)
}

func TestLoad_EmptyPathFallsBackToDefault(t *testing.T) {
	p, err := Load("")
	require.NoError(t, err)
	assert.Len(t, p.Categories, 4)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
