package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/nguyenthenguyen/docx"
	"go.uber.org/zap"

	"alfredoptarigan/job-tracker/internal/letter"
	"alfredoptarigan/job-tracker/internal/models"
	"alfredoptarigan/job-tracker/internal/repositories"
	"alfredoptarigan/job-tracker/internal/scoring"
)

// Placeholders understood in a DOCX letter template.
const (
	DocxPlaceholderLetter    = "{{LETTER}}"
	DocxPlaceholderCompany   = "{{COMPANY}}"
	DocxPlaceholderPosition  = "{{POSITION}}"
	DocxPlaceholderDate      = "{{DATE}}"
	DocxPlaceholderCandidate = "{{CANDIDATE}}"
)

type LetterRequest struct {
	Style         string
	ContactPerson string
}

type GeneratedLetter struct {
	Letter   *letter.Letter
	Document *models.GeneratedDocument
	Docx     *models.GeneratedDocument
}

type LetterService interface {
	Generate(ctx context.Context, jobID uuid.UUID, req LetterRequest) (*GeneratedLetter, error)
	SuggestStyle(jobID uuid.UUID) (string, error)
	Styles() []string
}

type letterService struct {
	jobRepo       repositories.JobRepository
	scoreRepo     repositories.ScoreRepository
	docRepo       repositories.DocumentRepository
	storage       StorageService
	activity      ActivityService
	composer      *letter.Composer
	candidateName string
	docxTemplate  string
	log           *zap.Logger
}

func NewLetterService(
	jobRepo repositories.JobRepository,
	scoreRepo repositories.ScoreRepository,
	docRepo repositories.DocumentRepository,
	storage StorageService,
	activity ActivityService,
	composer *letter.Composer,
	candidateName string,
	docxTemplate string,
	log *zap.Logger,
) LetterService {
	return &letterService{
		jobRepo:       jobRepo,
		scoreRepo:     scoreRepo,
		docRepo:       docRepo,
		storage:       storage,
		activity:      activity,
		composer:      composer,
		candidateName: candidateName,
		docxTemplate:  docxTemplate,
		log:           log,
	}
}

func (s *letterService) Styles() []string {
	return s.composer.Styles()
}

func (s *letterService) SuggestStyle(jobID uuid.UUID) (string, error) {
	job, err := s.findJob(jobID)
	if err != nil {
		return "", err
	}
	return s.composer.SelectStyle(job.Record()), nil
}

func (s *letterService) Generate(ctx context.Context, jobID uuid.UUID, req LetterRequest) (*GeneratedLetter, error) {
	job, err := s.findJob(jobID)
	if err != nil {
		return nil, err
	}

	var score *scoring.ScoreResult
	latest, err := s.scoreRepo.LatestForJob(job.ID)
	switch {
	case err == nil:
		score = latest.Result()
	case !errors.Is(err, repositories.ErrNotFound):
		return nil, err
	}

	l, err := s.composer.Compose(job.Record(), letter.Options{
		Style:         req.Style,
		ContactPerson: req.ContactPerson,
		Score:         score,
	})
	if err != nil {
		return nil, err
	}

	name := letter.FileName(job.CompanyName(), job.Title, l.Date)
	path, err := s.storage.WriteDocument(name, []byte(l.FullText))
	if err != nil {
		return nil, err
	}

	doc := &models.GeneratedDocument{
		JobID:            job.ID,
		DocumentType:     models.DocumentCoverLetter,
		TemplateUsed:     l.Style,
		OriginalFileName: name,
		Content:          l.FullText,
		FilePath:         path,
		GenerationMethod: "template",
		Customizations: map[string]interface{}{
			"auto_selected":  l.AutoSelected,
			"contact_person": req.ContactPerson,
			"scored":         score != nil,
		},
	}
	if err := s.docRepo.Create(doc); err != nil {
		return nil, err
	}

	out := &GeneratedLetter{Letter: l, Document: doc}

	if s.docxTemplate != "" {
		docxDoc, err := s.renderDocx(job, l, strings.TrimSuffix(name, filepath.Ext(name))+".docx")
		if err != nil {
			s.log.Warn("failed to render docx letter", zap.String("job_id", job.ID.String()), zap.Error(err))
		} else {
			out.Docx = docxDoc
		}
	}

	err = s.activity.Record(ctx, models.ActivityCoverLetterGenerated, "job", job.ID,
		fmt.Sprintf("Cover letter generated using %s template", l.Style),
		map[string]interface{}{
			"document_id":   doc.ID.String(),
			"template":      l.Style,
			"auto_selected": l.AutoSelected,
		},
	)
	if err != nil {
		s.log.Warn("failed to record letter activity", zap.String("job_id", job.ID.String()), zap.Error(err))
	}

	return out, nil
}

// renderDocx fills the configured template with the letter and stores the
// result next to the markdown letter.
func (s *letterService) renderDocx(job *models.Job, l *letter.Letter, name string) (*models.GeneratedDocument, error) {
	tmpl, err := docx.ReadDocxFile(s.docxTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to open letter template: %w", err)
	}
	defer tmpl.Close()

	company := job.CompanyName()
	if company == "" {
		company = "your organization"
	}

	doc := tmpl.Editable()
	replacements := []struct{ old, new string }{
		{DocxPlaceholderLetter, letterBodyText(l)},
		{DocxPlaceholderCompany, company},
		{DocxPlaceholderPosition, job.Title},
		{DocxPlaceholderDate, l.Date.Format("January 02, 2006")},
		{DocxPlaceholderCandidate, s.candidateName},
	}
	for _, r := range replacements {
		if err := doc.Replace(r.old, r.new, -1); err != nil {
			return nil, fmt.Errorf("failed to fill letter template: %w", err)
		}
	}

	path := filepath.Join(s.storage.OutputDir(), name)
	if err := doc.WriteToFile(path); err != nil {
		return nil, fmt.Errorf("failed to write docx letter: %w", err)
	}

	record := &models.GeneratedDocument{
		JobID:            job.ID,
		DocumentType:     models.DocumentCoverLetterDocx,
		TemplateUsed:     l.Style,
		OriginalFileName: name,
		FilePath:         path,
		GenerationMethod: "docx_template",
		Customizations: map[string]interface{}{
			"template_file": filepath.Base(s.docxTemplate),
		},
	}
	if err := s.docRepo.Create(record); err != nil {
		return nil, err
	}
	return record, nil
}

// letterBodyText is the letter from the salutation on, for templates that
// carry their own letterhead.
func letterBodyText(l *letter.Letter) string {
	parts := []string{l.Opening}
	parts = append(parts, l.Body...)
	parts = append(parts, l.Closing, l.CallToAction)
	return strings.Join(parts, "\n\n")
}

func (s *letterService) findJob(jobID uuid.UUID) (*models.Job, error) {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, &scoring.NotFoundError{JobID: jobID.String()}
		}
		return nil, err
	}
	return job, nil
}
