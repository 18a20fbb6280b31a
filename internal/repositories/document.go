package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/job-tracker/internal/models"
)

type DocumentRepository interface {
	Create(document *models.GeneratedDocument) error
	FindByID(id uuid.UUID) (*models.GeneratedDocument, error)
	FindByJobID(jobID uuid.UUID) ([]models.GeneratedDocument, error)
	UpdateRemote(id uuid.UUID, remoteID, remotePath, remoteURL string) error
}

type documentRepository struct {
	db *gorm.DB
}

// Create implements DocumentRepository.
func (d *documentRepository) Create(document *models.GeneratedDocument) error {
	if err := d.db.Create(document).Error; err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}

	return nil
}

// FindByID implements DocumentRepository.
func (d *documentRepository) FindByID(id uuid.UUID) (*models.GeneratedDocument, error) {
	var doc models.GeneratedDocument
	if err := d.db.Where("id = ?", id).First(&doc).Error; err != nil {
		return nil, notFoundOr(err, "document")
	}

	return &doc, nil
}

// FindByJobID implements DocumentRepository.
func (d *documentRepository) FindByJobID(jobID uuid.UUID) ([]models.GeneratedDocument, error) {
	var docs []models.GeneratedDocument
	if err := d.db.Where("job_id = ?", jobID).Order("created_at DESC").Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("failed to find documents: %w", err)
	}

	return docs, nil
}

// UpdateRemote implements DocumentRepository.
func (d *documentRepository) UpdateRemote(id uuid.UUID, remoteID, remotePath, remoteURL string) error {
	result := d.db.Model(&models.GeneratedDocument{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"remote_id":   remoteID,
			"remote_path": remotePath,
			"remote_url":  remoteURL,
			"updated_at":  time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update document: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("document %s: %w", id, ErrNotFound)
	}

	return nil
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}
