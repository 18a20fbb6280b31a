package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/job-tracker/internal/models"
	"alfredoptarigan/job-tracker/internal/repositories"
	"alfredoptarigan/job-tracker/internal/scoring"
)

// ErrInvalidInput marks errors caused by the caller's data.
var ErrInvalidInput = errors.New("invalid input")

const dateLayout = "2006-01-02"

// ScoreQueue accepts jobs for background scoring.
type ScoreQueue interface {
	EnqueueJob(jobID uuid.UUID) bool
}

type JobService interface {
	Create(ctx context.Context, req models.CreateJobRequest) (*models.Job, error)
	Import(ctx context.Context, req models.ImportJobRequest) (*models.Job, error)
	Get(id uuid.UUID) (*models.JobDetailResponse, error)
	List(filter repositories.JobFilter) ([]models.Job, error)
	Update(ctx context.Context, id uuid.UUID, update models.JobUpdate) (*models.Job, error)
	AttachPosting(ctx context.Context, jobID uuid.UUID, path, originalName string) (*models.UploadResponse, error)
	RecordApplication(ctx context.Context, jobID uuid.UUID, req models.CreateApplicationRequest) (*models.Application, error)
	Applications() ([]models.ApplicationView, error)
}

type jobService struct {
	jobRepo     repositories.JobRepository
	companyRepo repositories.CompanyRepository
	scoreRepo   repositories.ScoreRepository
	docRepo     repositories.DocumentRepository
	appRepo     repositories.ApplicationRepository
	activity    ActivityService
	extractor   PostingExtractor
	fetcher     PostingFetcher
	queue       ScoreQueue
	log         *zap.Logger
}

// NewJobService builds the job service. New and edited jobs are queued for
// scoring when queue is not nil.
func NewJobService(
	jobRepo repositories.JobRepository,
	companyRepo repositories.CompanyRepository,
	scoreRepo repositories.ScoreRepository,
	docRepo repositories.DocumentRepository,
	appRepo repositories.ApplicationRepository,
	activity ActivityService,
	extractor PostingExtractor,
	fetcher PostingFetcher,
	queue ScoreQueue,
	log *zap.Logger,
) JobService {
	return &jobService{
		jobRepo:     jobRepo,
		companyRepo: companyRepo,
		scoreRepo:   scoreRepo,
		docRepo:     docRepo,
		appRepo:     appRepo,
		activity:    activity,
		extractor:   extractor,
		fetcher:     fetcher,
		queue:       queue,
		log:         log,
	}
}

func (s *jobService) Create(ctx context.Context, req models.CreateJobRequest) (*models.Job, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	job := &models.Job{
		Title:          title,
		Level:          req.Level,
		EmploymentType: req.EmploymentType,
		Location:       req.Location,
		RemoteOption:   strings.ToLower(req.RemoteOption),
		SalaryMin:      req.SalaryMin,
		SalaryMax:      req.SalaryMax,
		Currency:       strings.ToUpper(orDefault(req.Currency, "AUD")),
		JobDescription: req.JobDescription,
		Requirements:   req.Requirements,
		Source:         req.Source,
		SourceURL:      req.SourceURL,
		Priority:       models.Priority(orDefault(req.Priority, string(models.PriorityMedium))),
		Notes:          req.Notes,
	}
	if !job.Priority.Valid() {
		return nil, fmt.Errorf("%w: unknown priority %q", ErrInvalidInput, req.Priority)
	}
	if job.SalaryMin != nil && job.SalaryMax != nil && *job.SalaryMin > *job.SalaryMax {
		return nil, fmt.Errorf("%w: salary_min is greater than salary_max", ErrInvalidInput)
	}

	var err error
	if job.PostedDate, err = parseDate("posted_date", req.PostedDate); err != nil {
		return nil, err
	}
	if job.ApplicationDeadline, err = parseDate("application_deadline", req.ApplicationDeadline); err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(req.CompanyName); name != "" {
		company, err := s.companyRepo.FindOrCreate(name, models.Company{
			Industry: req.Industry,
			Website:  req.CompanyWebsite,
		})
		if err != nil {
			return nil, err
		}
		job.CompanyID = &company.ID
	}

	if err := s.jobRepo.Create(job); err != nil {
		return nil, err
	}

	created, err := s.jobRepo.FindByID(job.ID)
	if err != nil {
		return nil, err
	}

	s.record(ctx, models.ActivityJobCreated, created.ID,
		fmt.Sprintf("Added job: %s", created.Title),
		map[string]interface{}{"company": created.CompanyName(), "source": created.Source},
	)
	s.enqueue(created.ID)
	return created, nil
}

// Import fetches a posting page and creates a job from it. Company and
// priority from the request win over what the page provides.
func (s *jobService) Import(ctx context.Context, req models.ImportJobRequest) (*models.Job, error) {
	posting, err := s.fetcher.Fetch(ctx, req.URL)
	if err != nil {
		return nil, err
	}

	source := "Web Import"
	if u, err := url.Parse(posting.URL); err == nil && u.Host != "" {
		source = strings.TrimPrefix(u.Hostname(), "www.")
	}

	return s.Create(ctx, models.CreateJobRequest{
		Title:          orDefault(posting.Title, "Imported Job"),
		CompanyName:    firstNonEmpty(req.CompanyName, posting.CompanyName),
		Industry:       req.Industry,
		Location:       posting.Location,
		JobDescription: posting.Description,
		Source:         source,
		SourceURL:      posting.URL,
		Priority:       req.Priority,
	})
}

func (s *jobService) Get(id uuid.UUID) (*models.JobDetailResponse, error) {
	job, err := s.findJob(id)
	if err != nil {
		return nil, err
	}

	detail := &models.JobDetailResponse{Job: job}

	latest, err := s.scoreRepo.LatestForJob(id)
	switch {
	case err == nil:
		detail.LatestScore = latest
	case !errors.Is(err, repositories.ErrNotFound):
		return nil, err
	}

	if detail.Documents, err = s.docRepo.FindByJobID(id); err != nil {
		return nil, err
	}
	if detail.Applications, err = s.appRepo.FindByJobID(id); err != nil {
		return nil, err
	}
	return detail, nil
}

func (s *jobService) List(filter repositories.JobFilter) ([]models.Job, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, filter.Status)
	}
	if filter.Priority != "" && !filter.Priority.Valid() {
		return nil, fmt.Errorf("%w: unknown priority %q", ErrInvalidInput, filter.Priority)
	}
	return s.jobRepo.List(filter)
}

// Update applies the fields set in update. A change to any field the scorer
// reads queues the job for rescoring.
func (s *jobService) Update(ctx context.Context, id uuid.UUID, update models.JobUpdate) (*models.Job, error) {
	if _, err := s.findJob(id); err != nil {
		return nil, err
	}

	changes := map[string]interface{}{}
	rescore := false

	setString := func(column string, v *string, scored bool) {
		if v == nil {
			return
		}
		changes[column] = *v
		rescore = rescore || scored
	}
	setString("title", update.Title, true)
	setString("level", update.Level, false)
	setString("employment_type", update.EmploymentType, false)
	setString("location", update.Location, true)
	setString("job_description", update.JobDescription, true)
	setString("requirements", update.Requirements, true)
	setString("source", update.Source, false)
	setString("source_url", update.SourceURL, false)
	setString("notes", update.Notes, false)

	if update.RemoteOption != nil {
		changes["remote_option"] = strings.ToLower(*update.RemoteOption)
		rescore = true
	}
	if update.Currency != nil {
		changes["currency"] = strings.ToUpper(*update.Currency)
	}
	if update.SalaryMin != nil {
		changes["salary_min"] = *update.SalaryMin
	}
	if update.SalaryMax != nil {
		changes["salary_max"] = *update.SalaryMax
	}
	if update.Priority != nil {
		p := models.Priority(*update.Priority)
		if !p.Valid() {
			return nil, fmt.Errorf("%w: unknown priority %q", ErrInvalidInput, *update.Priority)
		}
		changes["priority"] = p
	}
	if update.Status != nil {
		st := models.JobStatus(*update.Status)
		if !st.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *update.Status)
		}
		changes["status"] = st
	}
	if update.ApplicationDeadline != nil {
		deadline, err := parseDate("application_deadline", *update.ApplicationDeadline)
		if err != nil {
			return nil, err
		}
		changes["application_deadline"] = deadline
	}

	if len(changes) == 0 {
		return nil, fmt.Errorf("%w: no fields to update", ErrInvalidInput)
	}

	if err := s.jobRepo.Update(id, changes); err != nil {
		return nil, err
	}

	fields := make([]string, 0, len(changes))
	for k := range changes {
		if k != "updated_at" {
			fields = append(fields, k)
		}
	}
	sort.Strings(fields)
	s.record(ctx, models.ActivityJobUpdated, id, "Job updated", map[string]interface{}{"fields": fields})

	if rescore {
		s.enqueue(id)
	}
	return s.jobRepo.FindByID(id)
}

// AttachPosting extracts the text of a stored posting file into the job's
// description and records the file as a job_posting document.
func (s *jobService) AttachPosting(ctx context.Context, jobID uuid.UUID, path, originalName string) (*models.UploadResponse, error) {
	job, err := s.findJob(jobID)
	if err != nil {
		return nil, err
	}

	content, err := s.extractor.ExtractContent(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.jobRepo.Update(job.ID, map[string]interface{}{"job_description": content.Text}); err != nil {
		return nil, err
	}

	doc := &models.GeneratedDocument{
		JobID:            job.ID,
		DocumentType:     models.DocumentPosting,
		OriginalFileName: orDefault(originalName, filepath.Base(path)),
		FilePath:         path,
		GenerationMethod: "upload",
		Customizations: map[string]interface{}{
			"format":     content.Format,
			"page_count": content.PageCount,
		},
	}
	if err := s.docRepo.Create(doc); err != nil {
		return nil, err
	}

	characters := utf8.RuneCountInString(content.Text)
	s.record(ctx, models.ActivityPostingUploaded, job.ID,
		fmt.Sprintf("Posting uploaded: %s", doc.OriginalFileName),
		map[string]interface{}{"document_id": doc.ID.String(), "characters": characters},
	)
	s.enqueue(job.ID)

	return &models.UploadResponse{
		ID:           doc.ID.String(),
		JobID:        job.ID.String(),
		Filename:     filepath.Base(path),
		OriginalName: doc.OriginalFileName,
		FileType:     content.Format,
		Characters:   characters,
	}, nil
}

// RecordApplication stores an application and moves the job to applied.
func (s *jobService) RecordApplication(ctx context.Context, jobID uuid.UUID, req models.CreateApplicationRequest) (*models.Application, error) {
	job, err := s.findJob(jobID)
	if err != nil {
		return nil, err
	}

	date := time.Now()
	if parsed, err := parseDate("application_date", req.ApplicationDate); err != nil {
		return nil, err
	} else if parsed != nil {
		date = *parsed
	}

	app := &models.Application{
		JobID:           job.ID,
		ApplicationDate: date,
		Status:          req.Status,
		ResumeVersion:   req.ResumeVersion,
		ContactPerson:   req.ContactPerson,
		Notes:           req.Notes,
	}
	if err := s.appRepo.Create(app); err != nil {
		return nil, err
	}

	if err := s.jobRepo.Update(job.ID, map[string]interface{}{"status": models.JobStatusApplied}); err != nil {
		return nil, err
	}

	s.record(ctx, models.ActivityApplicationSubmitted, job.ID,
		fmt.Sprintf("Application submitted for %s", job.Title),
		map[string]interface{}{"application_id": app.ID.String(), "date": date.Format(dateLayout)},
	)
	return app, nil
}

func (s *jobService) Applications() ([]models.ApplicationView, error) {
	apps, err := s.appRepo.List()
	if err != nil {
		return nil, err
	}

	views := make([]models.ApplicationView, 0, len(apps))
	for _, app := range apps {
		view := models.ApplicationView{Application: app}
		if app.Job != nil {
			view.JobTitle = app.Job.Title
			view.CompanyName = app.Job.CompanyName()
			view.AIScore = app.Job.AIScore
		}
		view.Job = nil
		views = append(views, view)
	}
	return views, nil
}

func (s *jobService) findJob(id uuid.UUID) (*models.Job, error) {
	job, err := s.jobRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, &scoring.NotFoundError{JobID: id.String()}
		}
		return nil, err
	}
	return job, nil
}

func (s *jobService) enqueue(id uuid.UUID) {
	if s.queue == nil {
		return
	}
	if !s.queue.EnqueueJob(id) {
		s.log.Debug("job not queued for scoring", zap.String("job_id", id.String()))
	}
}

func (s *jobService) record(ctx context.Context, activityType string, jobID uuid.UUID, description string, metadata map[string]interface{}) {
	if err := s.activity.Record(ctx, activityType, "job", jobID, description, metadata); err != nil {
		s.log.Warn("failed to record activity",
			zap.String("activity_type", activityType),
			zap.String("job_id", jobID.String()),
			zap.Error(err),
		)
	}
}

func parseDate(field, value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be YYYY-MM-DD", ErrInvalidInput, field)
	}
	return &t, nil
}
