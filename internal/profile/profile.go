// Package profile holds the evaluator's skill profile: weighted skill categories,
// industry and seniority affinities and the location preferences used by the
// scoring engine. A Profile is built once and never mutated afterwards, so a
// single instance can be shared by every scoring call.
package profile

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultCommonRequirements are credential/skill tokens reported as missing when a
// posting asks for them and no matched skill covers them.
var DefaultCommonRequirements = []string{
	"MBA", "PhD", "Certification", "Agile Coach", "Scrum Master",
	"Product Management", "Data Science", "DevOps", "Cloud Native",
}

// Profile is the immutable, compiled form of a profile definition.
type Profile struct {
	Version            string
	Candidate          Candidate
	Categories         []SkillCategory
	Industries         []Affinity
	RoleLevels         []Affinity
	PreferredRegions   []string
	CommonRequirements []string
}

// Candidate carries the personal details printed on generated letters.
type Candidate struct {
	Name           string `mapstructure:"name" json:"name"`
	Headline       string `mapstructure:"headline" json:"headline"`
	CurrentRole    string `mapstructure:"current_role" json:"current_role"`
	CurrentCompany string `mapstructure:"current_company" json:"current_company"`
	Address        string `mapstructure:"address" json:"address"`
	Phone          string `mapstructure:"phone" json:"phone"`
	Email          string `mapstructure:"email" json:"email"`
	LinkedIn       string `mapstructure:"linkedin" json:"linkedin"`
}

// SkillCategory groups skills sharing one aggregation weight.
type SkillCategory struct {
	ID     string
	Label  string
	Weight float64
	Tip    string
	Skills []SkillDefinition
}

// SkillDefinition is a single competency with its keyword aliases compiled into
// case-insensitive matchers, in declared order.
type SkillDefinition struct {
	Name            string
	Proficiency     int
	YearsExperience int
	KeywordAliases  []string

	matchers []*regexp.Regexp
}

// Affinity maps a name (industry or seniority marker) to a score on a 0-10 scale.
type Affinity struct {
	Name  string `mapstructure:"name" json:"name"`
	Score int    `mapstructure:"score" json:"score"`
}

// NewSkill compiles the aliases of a skill. Aliases are regular expressions
// matched case-insensitively; a plain word therefore matches as a substring.
func NewSkill(name string, proficiency, years int, aliases ...string) (SkillDefinition, error) {
	skill := SkillDefinition{
		Name:            name,
		Proficiency:     proficiency,
		YearsExperience: years,
		KeywordAliases:  append([]string(nil), aliases...),
	}

	field := fmt.Sprintf("skill %q", name)
	if strings.TrimSpace(name) == "" {
		return SkillDefinition{}, &ConfigurationError{Field: "skill", Reason: "name is required"}
	}
	if proficiency < 0 || proficiency > 10 {
		return SkillDefinition{}, &ConfigurationError{Field: field, Reason: "proficiency must be within [0,10]"}
	}
	if years < 0 {
		return SkillDefinition{}, &ConfigurationError{Field: field, Reason: "years of experience must not be negative"}
	}
	if len(aliases) == 0 {
		return SkillDefinition{}, &ConfigurationError{Field: field, Reason: "at least one keyword alias is required"}
	}

	skill.matchers = make([]*regexp.Regexp, 0, len(aliases))
	for i, alias := range aliases {
		if strings.TrimSpace(alias) == "" {
			return SkillDefinition{}, &ConfigurationError{Field: field, Reason: fmt.Sprintf("keyword %d is blank", i)}
		}
		re, err := regexp.Compile("(?i)" + alias)
		if err != nil {
			return SkillDefinition{}, &ConfigurationError{Field: field, Reason: fmt.Sprintf("keyword %q does not compile: %v", alias, err)}
		}
		skill.matchers = append(skill.matchers, re)
	}

	return skill, nil
}

// FirstMatch returns the first alias, in declared order, found in text.
func (s SkillDefinition) FirstMatch(text string) (string, bool) {
	for i, re := range s.matchers {
		if re.MatchString(text) {
			return s.KeywordAliases[i], true
		}
	}
	return "", false
}

// Category returns the category with the given id.
func (p *Profile) Category(id string) (SkillCategory, bool) {
	for _, c := range p.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return SkillCategory{}, false
}

// CategoryIDs lists category ids in declaration order.
func (p *Profile) CategoryIDs() []string {
	ids := make([]string, len(p.Categories))
	for i, c := range p.Categories {
		ids[i] = c.ID
	}
	return ids
}

// TotalCategoryWeight sums the configured category weights.
func (p *Profile) TotalCategoryWeight() float64 {
	var sum float64
	for _, c := range p.Categories {
		sum += c.Weight
	}
	return sum
}
