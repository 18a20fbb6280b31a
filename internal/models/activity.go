package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ActivityJobCreated           = "job_created"
	ActivityJobUpdated           = "job_updated"
	ActivityJobScored            = "job_scored"
	ActivityPostingUploaded      = "posting_uploaded"
	ActivityCoverLetterGenerated = "cover_letter_generated"
	ActivityFolderCreated        = "remote_folder_created"
	ActivityDocumentsUploaded    = "documents_uploaded"
	ActivityApplicationSubmitted = "application_submitted"
	ActivityNotionPushed         = "notion_pushed"
	ActivityNotionPulled         = "notion_pulled"
)

type ActivityLog struct {
	ID           uuid.UUID              `gorm:"type:uuid;primaryKey" json:"id"`
	ActivityType string                 `gorm:"type:text;not null;index" json:"activity_type"`
	EntityType   string                 `gorm:"type:text;not null" json:"entity_type"`
	EntityID     uuid.UUID              `gorm:"type:uuid;index" json:"entity_id"`
	Description  string                 `gorm:"type:text" json:"description"`
	Metadata     map[string]interface{} `gorm:"serializer:json;type:text" json:"metadata,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
}

func (ActivityLog) TableName() string {
	return "activity_log"
}

func (a *ActivityLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
