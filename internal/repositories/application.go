package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/job-tracker/internal/models"
)

type ApplicationRepository interface {
	Create(app *models.Application) error
	List() ([]models.Application, error)
	FindByJobID(jobID uuid.UUID) ([]models.Application, error)
	Count() (int64, error)
	CountInterviews() (int64, error)
}

type applicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) Create(app *models.Application) error {
	if err := r.db.Create(app).Error; err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	return nil
}

// List returns applications with their job and company, newest first.
func (r *applicationRepository) List() ([]models.Application, error) {
	var apps []models.Application
	err := r.db.
		Preload("Job").
		Preload("Job.Company").
		Order("application_date DESC").
		Find(&apps).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

func (r *applicationRepository) FindByJobID(jobID uuid.UUID) ([]models.Application, error) {
	var apps []models.Application
	if err := r.db.Where("job_id = ?", jobID).Order("application_date DESC").Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("failed to find applications: %w", err)
	}
	return apps, nil
}

func (r *applicationRepository) Count() (int64, error) {
	var n int64
	if err := r.db.Model(&models.Application{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count applications: %w", err)
	}
	return n, nil
}

// CountInterviews sums the interviews recorded across applications.
func (r *applicationRepository) CountInterviews() (int64, error) {
	var n int64
	err := r.db.Model(&models.Application{}).
		Select("COALESCE(SUM(interview_count), 0)").
		Scan(&n).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count interviews: %w", err)
	}
	return n, nil
}
