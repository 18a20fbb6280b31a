package models

import "alfredoptarigan/job-tracker/internal/scoring"

type CreateJobRequest struct {
	Title               string `json:"title" validate:"required,min=2,max=300"`
	CompanyName         string `json:"company_name" validate:"omitempty,max=200"`
	Industry            string `json:"industry" validate:"omitempty,max=200"`
	CompanyWebsite      string `json:"company_website" validate:"omitempty,url"`
	Level               string `json:"level"`
	EmploymentType      string `json:"employment_type"`
	Location            string `json:"location"`
	RemoteOption        string `json:"remote_option"`
	SalaryMin           *int   `json:"salary_min" validate:"omitempty,gte=0"`
	SalaryMax           *int   `json:"salary_max" validate:"omitempty,gte=0"`
	Currency            string `json:"currency" validate:"omitempty,len=3"`
	JobDescription      string `json:"job_description"`
	Requirements        string `json:"requirements"`
	Source              string `json:"source"`
	SourceURL           string `json:"source_url" validate:"omitempty,url"`
	PostedDate          string `json:"posted_date" validate:"omitempty,datetime=2006-01-02"`
	ApplicationDeadline string `json:"application_deadline" validate:"omitempty,datetime=2006-01-02"`
	Priority            string `json:"priority" validate:"omitempty,oneof=urgent high medium low"`
	Notes               string `json:"notes"`
}

type ImportJobRequest struct {
	URL         string `json:"url" validate:"required,url"`
	CompanyName string `json:"company_name" validate:"omitempty,max=200"`
	Industry    string `json:"industry" validate:"omitempty,max=200"`
	Priority    string `json:"priority" validate:"omitempty,oneof=urgent high medium low"`
}

// JobUpdate is decoded from a PATCH body; nil fields are left untouched.
type JobUpdate struct {
	Title               *string `mapstructure:"title" validate:"omitempty,min=2,max=300"`
	Level               *string `mapstructure:"level"`
	EmploymentType      *string `mapstructure:"employment_type"`
	Location            *string `mapstructure:"location"`
	RemoteOption        *string `mapstructure:"remote_option"`
	SalaryMin           *int    `mapstructure:"salary_min" validate:"omitempty,gte=0"`
	SalaryMax           *int    `mapstructure:"salary_max" validate:"omitempty,gte=0"`
	Currency            *string `mapstructure:"currency" validate:"omitempty,len=3"`
	JobDescription      *string `mapstructure:"job_description"`
	Requirements        *string `mapstructure:"requirements"`
	Source              *string `mapstructure:"source"`
	SourceURL           *string `mapstructure:"source_url" validate:"omitempty,url"`
	ApplicationDeadline *string `mapstructure:"application_deadline" validate:"omitempty,datetime=2006-01-02"`
	Priority            *string `mapstructure:"priority" validate:"omitempty,oneof=urgent high medium low"`
	Status              *string `mapstructure:"status" validate:"omitempty,oneof=identified scored applied interview offer rejected withdrawn"`
	Notes               *string `mapstructure:"notes"`
}

type CoverLetterRequest struct {
	TemplateStyle string `json:"template_style"`
	ContactPerson string `json:"contact_person" validate:"omitempty,max=200"`
}

type ReadingListRequest struct {
	Title    string `json:"title" validate:"required,max=500"`
	URL      string `json:"url" validate:"required,url"`
	Category string `json:"category" validate:"omitempty,max=100"`
	JobID    string `json:"job_id" validate:"omitempty,uuid"`
}

type CreateApplicationRequest struct {
	ApplicationDate string `json:"application_date" validate:"omitempty,datetime=2006-01-02"`
	Status          string `json:"status" validate:"omitempty,max=50"`
	ResumeVersion   string `json:"resume_version"`
	ContactPerson   string `json:"contact_person"`
	Notes           string `json:"notes"`
}

type UploadResponse struct {
	ID           string `json:"id"`
	JobID        string `json:"job_id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	FileType     string `json:"file_type"`
	Characters   int    `json:"characters"`
}

type JobListResponse struct {
	Jobs  []Job `json:"jobs"`
	Count int   `json:"count"`
}

type JobDetailResponse struct {
	Job          *Job                `json:"job"`
	LatestScore  *ScoreRecord        `json:"latest_score,omitempty"`
	Documents    []GeneratedDocument `json:"documents"`
	Applications []Application       `json:"applications"`
}

type ScoreResponse struct {
	JobID  string              `json:"job_id"`
	Status string              `json:"status"`
	Score  scoring.ScoreResult `json:"score"`
}

type QueueResponse struct {
	Queued int    `json:"queued"`
	Status string `json:"status"`
}

type CoverLetterResponse struct {
	DocumentID   string `json:"document_id"`
	Style        string `json:"template_style"`
	AutoSelected bool   `json:"auto_selected"`
	FilePath     string `json:"file_path"`
	DocxPath     string `json:"docx_path,omitempty"`
	Content      string `json:"content"`
}

type PackageResponse struct {
	FolderPath string            `json:"folder_path"`
	Documents  map[string]string `json:"documents"`
}

type DashboardStats struct {
	TotalJobs    int64 `json:"total_jobs"`
	HighPriority int64 `json:"high_priority"`
	Applications int64 `json:"applications"`
	Interviews   int64 `json:"interviews"`
}

type DashboardResponse struct {
	Stats    DashboardStats `json:"stats"`
	TopJobs  []Job          `json:"top_jobs"`
	Pipeline []Job          `json:"pipeline"`
}

type BucketCount struct {
	Range string `json:"range"`
	Count int    `json:"count"`
}

type SourceStat struct {
	Source       string  `json:"source"`
	Count        int     `json:"count"`
	AverageScore float64 `json:"avg_score"`
}

type MonthlyStat struct {
	Month        string  `json:"month"`
	Count        int     `json:"count"`
	AverageScore float64 `json:"avg_score"`
}

type AnalyticsResponse struct {
	ScoreDistribution []BucketCount `json:"score_distribution"`
	Sources           []SourceStat  `json:"sources"`
	Monthly           []MonthlyStat `json:"monthly"`
}

type CategorySummary struct {
	ID     string  `json:"id"`
	Label  string  `json:"label"`
	Weight float64 `json:"weight"`
	Skills int     `json:"skills"`
}

type ProfileResponse struct {
	Version          string            `json:"version"`
	Categories       []CategorySummary `json:"categories"`
	TotalWeight      float64           `json:"total_weight"`
	Industries       int               `json:"industries"`
	RoleLevels       int               `json:"role_levels"`
	PreferredRegions []string          `json:"preferred_regions"`
}

type ApplicationView struct {
	Application
	JobTitle    string `json:"job_title"`
	CompanyName string `json:"company_name"`
	AIScore     *int   `json:"ai_score,omitempty"`
}
