package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Application struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	JobID           uuid.UUID `gorm:"type:uuid;not null;index" json:"job_id"`
	ApplicationDate time.Time `gorm:"not null" json:"application_date"`
	Status          string    `gorm:"type:text;not null;default:'submitted'" json:"status"`
	ResumeVersion   string    `gorm:"type:text" json:"resume_version,omitempty"`
	ContactPerson   string    `gorm:"type:text" json:"contact_person,omitempty"`
	Notes           string    `gorm:"type:text" json:"notes,omitempty"`
	InterviewCount  int       `gorm:"not null;default:0" json:"interview_count"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Relations
	Job *Job `gorm:"foreignKey:JobID" json:"job,omitempty"`
}

func (Application) TableName() string {
	return "applications"
}

func (a *Application) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Status == "" {
		a.Status = "submitted"
	}
	return nil
}
