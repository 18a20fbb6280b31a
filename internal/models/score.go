package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/job-tracker/internal/scoring"
)

// ScoreRecord is the history entry written for every scoring run.
type ScoreRecord struct {
	ID                  uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	JobID               uuid.UUID      `gorm:"type:uuid;not null;index" json:"job_id"`
	TotalScore          int            `gorm:"not null" json:"total_score"`
	Breakdown           map[string]int `gorm:"serializer:json;type:text" json:"breakdown"`
	StrongMatches       []string       `gorm:"serializer:json;type:text" json:"strong_matches"`
	MissingRequirements []string       `gorm:"serializer:json;type:text" json:"missing_requirements"`
	Recommendations     []string       `gorm:"serializer:json;type:text" json:"recommendations"`
	ProfileVersion      string         `gorm:"type:text" json:"profile_version"`
	CreatedAt           time.Time      `json:"created_at"`
}

func (ScoreRecord) TableName() string {
	return "score_records"
}

func (r *ScoreRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func NewScoreRecord(jobID uuid.UUID, result scoring.ScoreResult, profileVersion string) *ScoreRecord {
	return &ScoreRecord{
		JobID:               jobID,
		TotalScore:          result.TotalScore,
		Breakdown:           result.Breakdown,
		StrongMatches:       result.StrongMatches,
		MissingRequirements: result.MissingRequirements,
		Recommendations:     result.Recommendations,
		ProfileVersion:      profileVersion,
	}
}

// Result rebuilds the score result stored in the record. Skill matches are not
// persisted.
func (r *ScoreRecord) Result() *scoring.ScoreResult {
	return &scoring.ScoreResult{
		TotalScore:          r.TotalScore,
		Breakdown:           r.Breakdown,
		StrongMatches:       r.StrongMatches,
		MissingRequirements: r.MissingRequirements,
		Recommendations:     r.Recommendations,
	}
}
