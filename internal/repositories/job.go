package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/job-tracker/internal/models"
)

type JobFilter struct {
	Status   models.JobStatus
	Priority models.Priority
	MinScore *int
	Limit    int
}

type JobRepository interface {
	Create(job *models.Job) error
	FindByID(id uuid.UUID) (*models.Job, error)
	FindByNotionPageID(pageID string) (*models.Job, error)
	List(filter JobFilter) ([]models.Job, error)
	Update(id uuid.UUID, updates map[string]interface{}) error
	UpdateScore(id uuid.UUID, score int) error
	FindUnscored(limit int) ([]models.Job, error)
	Count() (int64, error)
	CountHighPriority(minScore int) (int64, error)
	Pipeline(limit int) ([]models.Job, error)
}

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) Create(job *models.Job) error {
	if err := r.db.Create(job).Error; err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}
	return nil
}

func (r *jobRepository) FindByID(id uuid.UUID) (*models.Job, error) {
	var job models.Job
	if err := r.db.Preload("Company").Where("id = ?", id).First(&job).Error; err != nil {
		return nil, notFoundOr(err, "job")
	}
	return &job, nil
}

func (r *jobRepository) FindByNotionPageID(pageID string) (*models.Job, error) {
	var job models.Job
	if err := r.db.Preload("Company").Where("notion_page_id = ?", pageID).First(&job).Error; err != nil {
		return nil, notFoundOr(err, "job")
	}
	return &job, nil
}

// List returns jobs matching filter, best scores first and unscored jobs last.
func (r *jobRepository) List(filter JobFilter) ([]models.Job, error) {
	query := r.db.Preload("Company")
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}
	if filter.MinScore != nil {
		query = query.Where("ai_score >= ?", *filter.MinScore)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var jobs []models.Job
	err := query.
		Order("CASE WHEN ai_score IS NULL THEN 1 ELSE 0 END").
		Order("ai_score DESC").
		Order("created_at DESC").
		Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return jobs, nil
}

func (r *jobRepository) Update(id uuid.UUID, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	updates["updated_at"] = time.Now()

	result := r.db.Model(&models.Job{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update job: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("job %s: %w", id, ErrNotFound)
	}
	return nil
}

// UpdateScore stores the total score and moves an identified job to scored.
func (r *jobRepository) UpdateScore(id uuid.UUID, score int) error {
	now := time.Now()
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Job{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"ai_score":   score,
				"scored_at":  now,
				"updated_at": now,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to update score: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("job %s: %w", id, ErrNotFound)
		}

		err := tx.Model(&models.Job{}).
			Where("id = ? AND status = ?", id, models.JobStatusIdentified).
			Update("status", models.JobStatusScored).Error
		if err != nil {
			return fmt.Errorf("failed to update status: %w", err)
		}
		return nil
	})
}

func (r *jobRepository) FindUnscored(limit int) ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.
		Where("ai_score IS NULL").
		Order("created_at ASC").
		Limit(limit).
		Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find unscored jobs: %w", err)
	}
	return jobs, nil
}

func (r *jobRepository) Count() (int64, error) {
	var n int64
	if err := r.db.Model(&models.Job{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count jobs: %w", err)
	}
	return n, nil
}

func (r *jobRepository) CountHighPriority(minScore int) (int64, error) {
	var n int64
	err := r.db.Model(&models.Job{}).
		Where("priority IN ? OR ai_score >= ?", []models.Priority{models.PriorityUrgent, models.PriorityHigh}, minScore).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count high priority jobs: %w", err)
	}
	return n, nil
}

func closedStatuses() []models.JobStatus {
	var closed []models.JobStatus
	for _, s := range models.JobStatuses {
		if s.Closed() {
			closed = append(closed, s)
		}
	}
	return closed
}

// Pipeline lists open jobs, most recently updated first.
func (r *jobRepository) Pipeline(limit int) ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.Preload("Company").
		Where("status NOT IN ?", closedStatuses()).
		Order("updated_at DESC").
		Limit(limit).
		Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load pipeline: %w", err)
	}
	return jobs, nil
}
