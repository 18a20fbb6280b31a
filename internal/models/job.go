package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/job-tracker/internal/scoring"
)

type JobStatus string

const (
	JobStatusIdentified JobStatus = "identified"
	JobStatusScored     JobStatus = "scored"
	JobStatusApplied    JobStatus = "applied"
	JobStatusInterview  JobStatus = "interview"
	JobStatusOffer      JobStatus = "offer"
	JobStatusRejected   JobStatus = "rejected"
	JobStatusWithdrawn  JobStatus = "withdrawn"
)

var JobStatuses = []JobStatus{
	JobStatusIdentified, JobStatusScored, JobStatusApplied, JobStatusInterview,
	JobStatusOffer, JobStatusRejected, JobStatusWithdrawn,
}

func (s JobStatus) Valid() bool {
	for _, v := range JobStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Closed reports whether the job has left the active pipeline.
func (s JobStatus) Closed() bool {
	return s == JobStatusRejected || s == JobStatusWithdrawn
}

type Priority string

const (
	PriorityUrgent Priority = "urgent"
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityUrgent, PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

type Job struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID           *uuid.UUID `gorm:"type:uuid;index" json:"company_id,omitempty"`
	Title               string     `gorm:"type:text;not null" json:"title"`
	Level               string     `gorm:"type:text" json:"level,omitempty"`
	EmploymentType      string     `gorm:"type:text" json:"employment_type,omitempty"`
	Location            string     `gorm:"type:text" json:"location,omitempty"`
	RemoteOption        string     `gorm:"type:text" json:"remote_option,omitempty"`
	SalaryMin           *int       `json:"salary_min,omitempty"`
	SalaryMax           *int       `json:"salary_max,omitempty"`
	Currency            string     `gorm:"type:text;default:'AUD'" json:"currency"`
	JobDescription      string     `gorm:"type:text" json:"job_description"`
	Requirements        string     `gorm:"type:text" json:"requirements"`
	Source              string     `gorm:"type:text" json:"source,omitempty"`
	SourceURL           string     `gorm:"type:text" json:"source_url,omitempty"`
	PostedDate          *time.Time `json:"posted_date,omitempty"`
	ApplicationDeadline *time.Time `json:"application_deadline,omitempty"`
	Priority            Priority   `gorm:"type:text;not null;default:'medium'" json:"priority"`
	Status              JobStatus  `gorm:"type:text;not null;default:'identified';index" json:"status"`
	Notes               string     `gorm:"type:text" json:"notes,omitempty"`
	AIScore             *int       `gorm:"index" json:"ai_score,omitempty"`
	ScoredAt            *time.Time `json:"scored_at,omitempty"`
	NotionPageID        string     `gorm:"type:text;index" json:"notion_page_id,omitempty"`
	RemoteFolderPath    string     `gorm:"type:text" json:"remote_folder_path,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`

	// Relations
	Company *Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
}

func (Job) TableName() string {
	return "job_opportunities"
}

func (j *Job) BeforeCreate(tx *gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	if j.Status == "" {
		j.Status = JobStatusIdentified
	}
	if j.Priority == "" {
		j.Priority = PriorityMedium
	}
	return nil
}

func (j *Job) CompanyName() string {
	if j.Company == nil {
		return ""
	}
	return j.Company.Name
}

func (j *Job) Industry() string {
	if j.Company == nil {
		return ""
	}
	return j.Company.Industry
}

// Record is the scoring view of the job.
func (j *Job) Record() *scoring.JobRecord {
	return &scoring.JobRecord{
		ID:           j.ID.String(),
		Title:        j.Title,
		CompanyName:  j.CompanyName(),
		Industry:     j.Industry(),
		Location:     j.Location,
		RemoteMode:   j.RemoteOption,
		Description:  j.JobDescription,
		Requirements: j.Requirements,
		SourceURL:    j.SourceURL,
		Status:       string(j.Status),
	}
}
