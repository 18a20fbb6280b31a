// Package scoring computes the weighted multi-category fit score of a job
// posting against a skill profile. Every function here is pure: inputs are never
// mutated and identical inputs always produce identical results.
package scoring

import (
	"fmt"
	"strings"
)

// JobRecord is the read-only view of a job the engine scores.
type JobRecord struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	CompanyName  string `json:"company_name"`
	Industry     string `json:"industry"`
	Location     string `json:"location"`
	RemoteMode   string `json:"remote_mode"`
	Description  string `json:"job_description"`
	Requirements string `json:"requirements"`
	SourceURL    string `json:"source_url"`
	Status       string `json:"status"`
}

// Text is the blob matched against skill keywords.
func (j *JobRecord) Text() string {
	return j.Title + " " + j.Description + " " + j.Requirements
}

type SkillMatch struct {
	SkillName       string `json:"skill_name"`
	Category        string `json:"category"`
	Proficiency     int    `json:"proficiency"`
	YearsExperience int    `json:"years_experience"`
	MatchScore      int    `json:"match_score"`
	MatchedKeyword  string `json:"matched_keyword"`
}

// ScoreResult is the outcome of one scoring call. Breakdown holds one entry per
// profile category plus the bonus dimensions.
type ScoreResult struct {
	TotalScore          int            `json:"total_score"`
	Breakdown           map[string]int `json:"breakdown"`
	StrongMatches       []string       `json:"strong_matches"`
	MissingRequirements []string       `json:"missing_requirements"`
	Recommendations     []string       `json:"recommendations"`
	Matches             []SkillMatch   `json:"matches"`
}

// NotFoundError is returned when the job to score does not exist.
type NotFoundError struct {
	JobID string
}

func (e *NotFoundError) Error() string {
	if strings.TrimSpace(e.JobID) == "" {
		return "job not found"
	}
	return fmt.Sprintf("job %s not found", e.JobID)
}
