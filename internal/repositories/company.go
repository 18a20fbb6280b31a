package repositories

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/job-tracker/internal/models"
)

type CompanyRepository interface {
	// FindOrCreate returns the company with the given name, creating it when
	// absent. Empty fields of an existing company are filled from attrs.
	FindOrCreate(name string, attrs models.Company) (*models.Company, error)
	FindByID(id uuid.UUID) (*models.Company, error)
	UpdateNotionPageID(id uuid.UUID, pageID string) error
}

type companyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) FindOrCreate(name string, attrs models.Company) (*models.Company, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("company name is required")
	}

	var company models.Company
	err := r.db.Where("name = ?", name).First(&company).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		company = attrs
		company.ID = uuid.Nil
		company.Name = name
		if err := r.db.Create(&company).Error; err != nil {
			return nil, fmt.Errorf("failed to create company: %w", err)
		}
		return &company, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find company: %w", err)
	}

	updates := map[string]interface{}{}
	if company.Industry == "" && attrs.Industry != "" {
		updates["industry"] = attrs.Industry
		company.Industry = attrs.Industry
	}
	if company.Website == "" && attrs.Website != "" {
		updates["website"] = attrs.Website
		company.Website = attrs.Website
	}
	if company.Description == "" && attrs.Description != "" {
		updates["description"] = attrs.Description
		company.Description = attrs.Description
	}
	if len(updates) > 0 {
		if err := r.db.Model(&models.Company{}).Where("id = ?", company.ID).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update company: %w", err)
		}
	}

	return &company, nil
}

func (r *companyRepository) FindByID(id uuid.UUID) (*models.Company, error) {
	var company models.Company
	if err := r.db.Where("id = ?", id).First(&company).Error; err != nil {
		return nil, notFoundOr(err, "company")
	}
	return &company, nil
}

func (r *companyRepository) UpdateNotionPageID(id uuid.UUID, pageID string) error {
	err := r.db.Model(&models.Company{}).Where("id = ?", id).Update("notion_page_id", pageID).Error
	if err != nil {
		return fmt.Errorf("failed to update company notion page: %w", err)
	}
	return nil
}
