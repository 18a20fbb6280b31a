package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/job-tracker/internal/models"
)

// ScoreRepository keeps the scoring history of jobs.
type ScoreRepository interface {
	Create(record *models.ScoreRecord) error
	LatestForJob(jobID uuid.UUID) (*models.ScoreRecord, error)
	ListForJob(jobID uuid.UUID) ([]models.ScoreRecord, error)
}

type scoreRepository struct {
	db *gorm.DB
}

func NewScoreRepository(db *gorm.DB) ScoreRepository {
	return &scoreRepository{db: db}
}

func (r *scoreRepository) Create(record *models.ScoreRecord) error {
	if err := r.db.Create(record).Error; err != nil {
		return fmt.Errorf("failed to create score record: %w", err)
	}
	return nil
}

func (r *scoreRepository) LatestForJob(jobID uuid.UUID) (*models.ScoreRecord, error) {
	var record models.ScoreRecord
	err := r.db.
		Where("job_id = ?", jobID).
		Order("created_at DESC").
		First(&record).Error
	if err != nil {
		return nil, notFoundOr(err, "score record")
	}
	return &record, nil
}

func (r *scoreRepository) ListForJob(jobID uuid.UUID) ([]models.ScoreRecord, error) {
	var records []models.ScoreRecord
	err := r.db.
		Where("job_id = ?", jobID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list score records: %w", err)
	}
	return records, nil
}
