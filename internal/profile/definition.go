package profile

import (
	"fmt"
	"math"
	"strings"
)

// Definition is the raw, file-level shape of a profile before compilation.
type Definition struct {
	Version            string               `mapstructure:"version" json:"version"`
	Candidate          Candidate            `mapstructure:"candidate" json:"candidate"`
	Categories         []CategoryDefinition `mapstructure:"categories" json:"categories"`
	Industries         []Affinity           `mapstructure:"industries" json:"industries"`
	RoleLevels         []Affinity           `mapstructure:"role_levels" json:"role_levels"`
	PreferredRegions   []string             `mapstructure:"preferred_regions" json:"preferred_regions"`
	CommonRequirements []string             `mapstructure:"common_requirements" json:"common_requirements"`
}

type CategoryDefinition struct {
	ID     string       `mapstructure:"id" json:"id"`
	Label  string       `mapstructure:"label" json:"label"`
	Weight float64      `mapstructure:"weight" json:"weight"`
	Tip    string       `mapstructure:"tip" json:"tip"`
	Skills []SkillInput `mapstructure:"skills" json:"skills"`
}

type SkillInput struct {
	Name            string   `mapstructure:"name" json:"name"`
	Proficiency     int      `mapstructure:"proficiency" json:"proficiency"`
	YearsExperience int      `mapstructure:"years_experience" json:"years_experience"`
	Keywords        []string `mapstructure:"keywords" json:"keywords"`
}

// reservedCategoryIDs are the breakdown keys of the bonus dimensions.
var reservedCategoryIDs = map[string]bool{
	"industry_fit": true,
	"role_level":   true,
	"location_fit": true,
}

// Build validates a definition and compiles it into a Profile.
func Build(def Definition) (*Profile, error) {
	if len(def.Categories) == 0 {
		return nil, &ConfigurationError{Field: "categories", Reason: "at least one category is required"}
	}

	p := &Profile{
		Version:            def.Version,
		Candidate:          def.Candidate,
		Categories:         make([]SkillCategory, 0, len(def.Categories)),
		PreferredRegions:   lowerAll(def.PreferredRegions),
		CommonRequirements: append([]string(nil), def.CommonRequirements...),
	}
	if len(p.CommonRequirements) == 0 {
		p.CommonRequirements = append([]string(nil), DefaultCommonRequirements...)
	}

	seen := make(map[string]bool, len(def.Categories))
	var weightSum float64
	for i, cd := range def.Categories {
		id := strings.TrimSpace(cd.ID)
		if id == "" {
			return nil, &ConfigurationError{Field: fmt.Sprintf("categories[%d].id", i), Reason: "id is required"}
		}
		if reservedCategoryIDs[id] {
			return nil, &ConfigurationError{Field: fmt.Sprintf("categories[%d].id", i), Reason: fmt.Sprintf("%q is reserved for a bonus score", id)}
		}
		if seen[id] {
			return nil, &ConfigurationError{Field: fmt.Sprintf("categories[%d].id", i), Reason: fmt.Sprintf("duplicate category %q", id)}
		}
		seen[id] = true

		if math.IsNaN(cd.Weight) || cd.Weight < 0 || cd.Weight > 1 {
			return nil, &ConfigurationError{Field: "category " + id, Reason: "weight must be within [0,1]"}
		}
		weightSum += cd.Weight

		category := SkillCategory{
			ID:     id,
			Label:  cd.Label,
			Weight: cd.Weight,
			Tip:    cd.Tip,
			Skills: make([]SkillDefinition, 0, len(cd.Skills)),
		}
		if category.Label == "" {
			category.Label = id
		}
		for _, sd := range cd.Skills {
			skill, err := NewSkill(sd.Name, sd.Proficiency, sd.YearsExperience, sd.Keywords...)
			if err != nil {
				return nil, err
			}
			category.Skills = append(category.Skills, skill)
		}
		p.Categories = append(p.Categories, category)
	}
	if weightSum <= 0 {
		return nil, &ConfigurationError{Field: "categories", Reason: "category weights sum to zero"}
	}

	var err error
	if p.Industries, err = affinities("industries", def.Industries); err != nil {
		return nil, err
	}
	if p.RoleLevels, err = affinities("role_levels", def.RoleLevels); err != nil {
		return nil, err
	}

	return p, nil
}

func affinities(field string, in []Affinity) ([]Affinity, error) {
	out := make([]Affinity, 0, len(in))
	for i, a := range in {
		if strings.TrimSpace(a.Name) == "" {
			return nil, &ConfigurationError{Field: fmt.Sprintf("%s[%d].name", field, i), Reason: "name is required"}
		}
		if a.Score < 0 || a.Score > 10 {
			return nil, &ConfigurationError{Field: fmt.Sprintf("%s[%d].score", field, i), Reason: "score must be within [0,10]"}
		}
		out = append(out, a)
	}
	return out, nil
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}
