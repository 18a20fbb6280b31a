package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Company struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"type:text;not null;uniqueIndex" json:"name"`
	Industry     string    `gorm:"type:text" json:"industry,omitempty"`
	Website      string    `gorm:"type:text" json:"website,omitempty"`
	Description  string    `gorm:"type:text" json:"description,omitempty"`
	NotionPageID string    `gorm:"type:text" json:"notion_page_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Company) TableName() string {
	return "companies"
}

func (c *Company) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
