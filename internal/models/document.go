package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DocumentType string

const (
	DocumentCoverLetter     DocumentType = "cover_letter"
	DocumentCoverLetterDocx DocumentType = "cover_letter_docx"
	DocumentResume          DocumentType = "resume"
	DocumentPosting         DocumentType = "job_posting"
	DocumentSummary         DocumentType = "application_summary"
	DocumentPortfolio       DocumentType = "portfolio"
	DocumentInterviewPrep   DocumentType = "interview_prep"
	DocumentCommunication   DocumentType = "communication"
	DocumentFollowUp        DocumentType = "follow_up"
)

// GeneratedDocument is a file produced or stored for a job, optionally mirrored
// to the remote document store.
type GeneratedDocument struct {
	ID               uuid.UUID              `gorm:"type:uuid;primaryKey" json:"id"`
	JobID            uuid.UUID              `gorm:"type:uuid;not null;index" json:"job_id"`
	DocumentType     DocumentType           `gorm:"type:text;not null" json:"document_type"`
	TemplateUsed     string                 `gorm:"type:text" json:"template_used,omitempty"`
	OriginalFileName string                 `gorm:"type:text" json:"original_filename,omitempty"`
	Content          string                 `gorm:"type:text" json:"-"`
	FilePath         string                 `gorm:"type:text" json:"file_path,omitempty"`
	RemoteID         string                 `gorm:"type:text" json:"remote_id,omitempty"`
	RemotePath       string                 `gorm:"type:text" json:"remote_path,omitempty"`
	RemoteURL        string                 `gorm:"type:text" json:"remote_url,omitempty"`
	GenerationMethod string                 `gorm:"type:text" json:"generation_method"`
	Customizations   map[string]interface{} `gorm:"serializer:json;type:text" json:"customizations,omitempty"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
}

func (d *GeneratedDocument) TableName() string {
	return "generated_documents"
}

func (d *GeneratedDocument) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
