package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"alfredoptarigan/job-tracker/internal/letter"
	"alfredoptarigan/job-tracker/internal/models"
	"alfredoptarigan/job-tracker/internal/repositories"
	"alfredoptarigan/job-tracker/internal/scoring"
)

const (
	FolderResume        = "01-Resume-and-CV"
	FolderCoverLetter   = "02-Cover-Letter"
	FolderPortfolio     = "03-Portfolio-Samples"
	FolderCommunication = "04-Communications"
	FolderInterviewPrep = "05-Interview-Prep"
	FolderFollowUp      = "06-Follow-up"
)

// PackageSubfolders is the layout created inside every application folder.
var PackageSubfolders = []string{
	FolderResume,
	FolderCoverLetter,
	FolderPortfolio,
	FolderCommunication,
	FolderInterviewPrep,
	FolderFollowUp,
}

const (
	mimeMarkdown = "text/markdown"
	mimeDocx     = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimePDF      = "application/pdf"
)

// SubfolderFor maps a document type to its package subfolder. Unknown types
// go to communications.
func SubfolderFor(docType models.DocumentType) string {
	switch docType {
	case models.DocumentResume:
		return FolderResume
	case models.DocumentCoverLetter, models.DocumentCoverLetterDocx:
		return FolderCoverLetter
	case models.DocumentPortfolio:
		return FolderPortfolio
	case models.DocumentInterviewPrep:
		return FolderInterviewPrep
	case models.DocumentFollowUp:
		return FolderFollowUp
	default:
		return FolderCommunication
	}
}

var (
	unsafeNameChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	whitespaceRun   = regexp.MustCompile(`\s+`)
	dashRun         = regexp.MustCompile(`-+`)
)

// SafeName turns a company or position into a folder-safe name of at most
// 100 characters.
func SafeName(name string) string {
	safe := unsafeNameChars.ReplaceAllString(name, "-")
	safe = whitespaceRun.ReplaceAllString(strings.TrimSpace(safe), "-")
	safe = dashRun.ReplaceAllString(safe, "-")
	if runes := []rune(safe); len(runes) > 100 {
		safe = string(runes[:100])
	}
	if safe == "" {
		safe = "Unknown"
	}
	return safe
}

// PackageFolder is "{base}/{company}/{position}-{YYYY-MM}".
func PackageFolder(base, company, position string, now time.Time) string {
	return fmt.Sprintf("%s/%s/%s-%s", strings.Trim(base, "/"), SafeName(company), SafeName(position), now.Format("2006-01"))
}

type PackageResult struct {
	FolderPath string            `json:"folder_path"`
	Backend    string            `json:"backend"`
	Documents  map[string]string `json:"documents"`
}

type PackageService interface {
	CreatePackage(ctx context.Context, jobID uuid.UUID) (*PackageResult, error)
	ShareableLinks(ctx context.Context, jobID uuid.UUID) (map[string]string, error)
}

type packageService struct {
	jobRepo    repositories.JobRepository
	docRepo    repositories.DocumentRepository
	letters    LetterService
	storage    StorageService
	activity   ActivityService
	remote     RemoteStore
	baseFolder string
	resumePath string
	log        *zap.Logger
	now        func() time.Time
}

// NewPackageService builds the package service. A nil remote disables it.
func NewPackageService(
	jobRepo repositories.JobRepository,
	docRepo repositories.DocumentRepository,
	letters LetterService,
	storage StorageService,
	activity ActivityService,
	remote RemoteStore,
	baseFolder string,
	resumePath string,
	log *zap.Logger,
) PackageService {
	return &packageService{
		jobRepo:    jobRepo,
		docRepo:    docRepo,
		letters:    letters,
		storage:    storage,
		activity:   activity,
		remote:     remote,
		baseFolder: baseFolder,
		resumePath: resumePath,
		log:        log,
		now:        time.Now,
	}
}

type packageItem struct {
	doc      *models.GeneratedDocument
	docType  models.DocumentType
	name     string
	mimeType string
	content  []byte
	uploaded *RemoteFile
}

func (s *packageService) CreatePackage(ctx context.Context, jobID uuid.UUID) (*PackageResult, error) {
	if s.remote == nil {
		return nil, ErrIntegrationDisabled
	}

	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, &scoring.NotFoundError{JobID: jobID.String()}
		}
		return nil, err
	}

	folder, err := s.ensureFolders(ctx, job)
	if err != nil {
		return nil, err
	}

	generated, err := s.letters.Generate(ctx, job.ID, LetterRequest{Style: letter.StyleAuto})
	if err != nil {
		return nil, fmt.Errorf("failed to generate cover letter: %w", err)
	}

	items := []*packageItem{{
		doc:      generated.Document,
		docType:  models.DocumentCoverLetter,
		name:     generated.Document.OriginalFileName,
		mimeType: mimeMarkdown,
		content:  []byte(generated.Letter.FullText),
	}}

	if generated.Docx != nil {
		data, err := s.storage.ReadFile(generated.Docx.FilePath)
		if err != nil {
			return nil, err
		}
		items = append(items, &packageItem{
			doc:      generated.Docx,
			docType:  models.DocumentCoverLetterDocx,
			name:     generated.Docx.OriginalFileName,
			mimeType: mimeDocx,
			content:  data,
		})
	}

	if s.resumePath != "" {
		data, err := s.storage.ReadFile(s.resumePath)
		if err != nil {
			s.log.Warn("resume not uploaded", zap.String("path", s.resumePath), zap.Error(err))
		} else {
			items = append(items, &packageItem{
				docType:  models.DocumentResume,
				name:     filepath.Base(s.resumePath),
				mimeType: mimeForFile(s.resumePath),
				content:  data,
			})
		}
	}

	if err := s.uploadAll(ctx, folder, items); err != nil {
		return nil, err
	}

	summary, err := s.summaryItem(job, items)
	if err != nil {
		return nil, err
	}
	if err := s.uploadAll(ctx, folder, []*packageItem{summary}); err != nil {
		return nil, err
	}
	items = append(items, summary)

	documents := make(map[string]string, len(items))
	for _, item := range items {
		if err := s.recordUpload(job.ID, item); err != nil {
			return nil, err
		}
		documents[string(item.docType)] = item.uploaded.Path
	}

	err = s.activity.Record(ctx, models.ActivityDocumentsUploaded, "job", job.ID,
		fmt.Sprintf("Uploaded %d documents to %s", len(items), s.remote.Name()),
		map[string]interface{}{
			"folder_path": folder,
			"documents":   documents,
		},
	)
	if err != nil {
		s.log.Warn("failed to record upload activity", zap.String("job_id", job.ID.String()), zap.Error(err))
	}

	return &PackageResult{FolderPath: folder, Backend: s.remote.Name(), Documents: documents}, nil
}

// ensureFolders reuses the job's folder when one was created before.
func (s *packageService) ensureFolders(ctx context.Context, job *models.Job) (string, error) {
	folder := job.RemoteFolderPath
	existing := folder != ""
	if !existing {
		folder = PackageFolder(s.baseFolder, job.CompanyName(), job.Title, s.now())
	}

	if _, err := s.remote.EnsureFolder(ctx, folder); err != nil {
		return "", err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(3)
	for _, sub := range PackageSubfolders {
		g.Go(func() error {
			_, err := s.remote.EnsureFolder(gctx, folder+"/"+sub)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	if existing {
		return folder, nil
	}

	if err := s.jobRepo.Update(job.ID, map[string]interface{}{"remote_folder_path": folder}); err != nil {
		return "", err
	}
	job.RemoteFolderPath = folder

	err := s.activity.Record(ctx, models.ActivityFolderCreated, "job", job.ID,
		fmt.Sprintf("Created application folder: %s", folder),
		map[string]interface{}{"folder_path": folder, "backend": s.remote.Name()},
	)
	if err != nil {
		s.log.Warn("failed to record folder activity", zap.String("job_id", job.ID.String()), zap.Error(err))
	}
	return folder, nil
}

func (s *packageService) uploadAll(ctx context.Context, folder string, items []*packageItem) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(3)
	for _, item := range items {
		g.Go(func() error {
			file, err := s.remote.Upload(gctx, folder+"/"+SubfolderFor(item.docType), item.name, item.mimeType, item.content)
			if err != nil {
				return err
			}
			item.uploaded = file
			return nil
		})
	}
	return g.Wait()
}

func (s *packageService) recordUpload(jobID uuid.UUID, item *packageItem) error {
	file := item.uploaded
	if item.doc != nil {
		return s.docRepo.UpdateRemote(item.doc.ID, file.ID, file.Path, file.URL)
	}

	doc := &models.GeneratedDocument{
		JobID:            jobID,
		DocumentType:     item.docType,
		OriginalFileName: item.name,
		RemoteID:         file.ID,
		RemotePath:       file.Path,
		RemoteURL:        file.URL,
		GenerationMethod: "package",
	}
	if item.docType == models.DocumentResume {
		doc.FilePath = s.resumePath
		doc.GenerationMethod = "provided"
	}
	if item.mimeType == mimeMarkdown {
		doc.Content = string(item.content)
	}
	item.doc = doc
	return s.docRepo.Create(doc)
}

func (s *packageService) summaryItem(job *models.Job, uploaded []*packageItem) (*packageItem, error) {
	content := applicationSummary(job, uploaded, s.now())
	name := fmt.Sprintf("Application_Summary_%s_%s_%s.md", SafeName(job.CompanyName()), SafeName(job.Title), s.now().Format("20060102"))

	if _, err := s.storage.WriteDocument(name, []byte(content)); err != nil {
		return nil, err
	}
	return &packageItem{
		docType:  models.DocumentSummary,
		name:     name,
		mimeType: mimeMarkdown,
		content:  []byte(content),
	}, nil
}

// applicationSummary renders the markdown overview uploaded with a package.
func applicationSummary(job *models.Job, uploaded []*packageItem, now time.Time) string {
	score := 0
	if job.AIScore != nil {
		score = *job.AIScore
	}

	var b strings.Builder
	b.WriteString("# Application Summary\n\n")
	fmt.Fprintf(&b, "**Position:** %s\n", job.Title)
	fmt.Fprintf(&b, "**Company:** %s\n", orDefault(job.CompanyName(), "Not specified"))
	fmt.Fprintf(&b, "**Application Date:** %s\n", now.Format("January 02, 2006"))
	fmt.Fprintf(&b, "**Status:** %s\n\n", job.Status)

	b.WriteString("## Job Details\n")
	fmt.Fprintf(&b, "- **Location:** %s\n", orDefault(job.Location, "Not specified"))
	fmt.Fprintf(&b, "- **Employment Type:** %s\n", orDefault(job.EmploymentType, "Not specified"))
	fmt.Fprintf(&b, "- **Salary Range:** %s - %s %s\n", intOrNA(job.SalaryMin), intOrNA(job.SalaryMax), orDefault(job.Currency, "AUD"))
	fmt.Fprintf(&b, "- **Source:** %s\n", orDefault(job.Source, "Direct"))
	fmt.Fprintf(&b, "- **AI Compatibility Score:** %d/100\n\n", score)

	b.WriteString("## Uploaded Documents\n")
	for _, item := range uploaded {
		if item.uploaded == nil {
			continue
		}
		fmt.Fprintf(&b, "- **%s:** %s\n", documentLabel(item.docType), item.uploaded.Path)
	}

	fmt.Fprintf(&b, "\n## Application Strategy\nThis position shows a %d%% compatibility match with the candidate profile.\n\n", score)
	b.WriteString("## Next Steps\n")
	b.WriteString("- [ ] Submit application\n")
	b.WriteString("- [ ] Follow up in 1 week\n")
	b.WriteString("- [ ] Prepare for potential interview\n")
	b.WriteString("- [ ] Research company culture and recent news\n")
	return b.String()
}

func (s *packageService) ShareableLinks(ctx context.Context, jobID uuid.UUID) (map[string]string, error) {
	if s.remote == nil {
		return nil, ErrIntegrationDisabled
	}

	if _, err := s.jobRepo.FindByID(jobID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, &scoring.NotFoundError{JobID: jobID.String()}
		}
		return nil, err
	}

	docs, err := s.docRepo.FindByJobID(jobID)
	if err != nil {
		return nil, err
	}

	links := make(map[string]string)
	for _, doc := range docs {
		key := string(doc.DocumentType)
		if doc.RemoteID == "" {
			continue
		}
		if _, seen := links[key]; seen {
			continue
		}

		link, err := s.remote.ShareLink(ctx, RemoteFile{
			ID:   doc.RemoteID,
			Name: doc.OriginalFileName,
			Path: doc.RemotePath,
			URL:  doc.RemoteURL,
		})
		if err != nil {
			s.log.Warn("could not create shareable link",
				zap.String("document_type", key),
				zap.Error(err),
			)
			continue
		}
		links[key] = link
	}
	return links, nil
}

func documentLabel(docType models.DocumentType) string {
	words := strings.Split(string(docType), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

func mimeForFile(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return mimePDF
	case ".docx":
		return mimeDocx
	case ".md":
		return mimeMarkdown
	default:
		return "application/octet-stream"
	}
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func intOrNA(v *int) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%d", *v)
}
