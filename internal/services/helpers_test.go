package services

import (
	"archive/zip"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"alfredoptarigan/job-tracker/internal/config"
	"alfredoptarigan/job-tracker/internal/letter"
	"alfredoptarigan/job-tracker/internal/models"
	"alfredoptarigan/job-tracker/internal/profile"
	"alfredoptarigan/job-tracker/internal/repositories"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) last() Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.events) == 0 {
		return Event{}
	}
	return p.events[len(p.events)-1]
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

type testDeps struct {
	db         *gorm.DB
	jobs       repositories.JobRepository
	companies  repositories.CompanyRepository
	scores     repositories.ScoreRepository
	docs       repositories.DocumentRepository
	apps       repositories.ApplicationRepository
	activities repositories.ActivityRepository
	publisher  *recordingPublisher
	activity   ActivityService
	storage    StorageService
	profile    *profile.Profile
	log        *zap.Logger
	dir        string
}

func newTestDeps(t *testing.T) *testDeps {
	t.Helper()

	cfg := &config.Config{Database: config.DatabaseConfig{Driver: "sqlite", SQLitePath: ":memory:"}}
	db, err := config.InitDatabase(cfg, zap.NewNop())
	require.NoError(t, err)

	p, err := profile.Default()
	require.NoError(t, err)

	dir := t.TempDir()
	storage := NewStorageService(filepath.Join(dir, "uploads"), filepath.Join(dir, "out"))
	require.NoError(t, storage.EnsureDirs())

	d := &testDeps{
		db:         db,
		jobs:       repositories.NewJobRepository(db),
		companies:  repositories.NewCompanyRepository(db),
		scores:     repositories.NewScoreRepository(db),
		docs:       repositories.NewDocumentRepository(db),
		apps:       repositories.NewApplicationRepository(db),
		activities: repositories.NewActivityRepository(db),
		publisher:  &recordingPublisher{},
		storage:    storage,
		profile:    p,
		log:        zap.NewNop(),
		dir:        dir,
	}
	d.activity = NewActivityService(d.activities, d.publisher, d.log)
	return d
}

func (d *testDeps) createJob(t *testing.T, title, company, description string) *models.Job {
	t.Helper()

	job := &models.Job{
		Title:          title,
		Location:       "Sydney, NSW",
		RemoteOption:   "hybrid",
		JobDescription: description,
	}
	if company != "" {
		c, err := d.companies.FindOrCreate(company, models.Company{Industry: "Technology"})
		require.NoError(t, err)
		job.CompanyID = &c.ID
	}
	require.NoError(t, d.jobs.Create(job))

	stored, err := d.jobs.FindByID(job.ID)
	require.NoError(t, err)
	return stored
}

func (d *testDeps) scoringService() ScoringService {
	return NewScoringService(d.jobs, d.scores, d.activity, d.profile, d.log)
}

func (d *testDeps) letterService(docxTemplate string) LetterService {
	composer := letter.NewComposer(d.profile.Candidate, letter.DefaultTemplates())
	return NewLetterService(d.jobs, d.scores, d.docs, d.storage, d.activity, composer, "Alex Candidate", docxTemplate, d.log)
}

// writeDocx builds a minimal WordprocessingML package with one paragraph per
// line.
func writeDocx(t *testing.T, path string, lines ...string) {
	t.Helper()

	var body strings.Builder
	for _, line := range lines {
		fmt.Fprintf(&body, `<w:p><w:r><w:t xml:space="preserve">%s</w:t></w:r></w:p>`, line)
	}

	files := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="xml" ContentType="application/xml"/><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/></Types>`,
		"word/document.xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
			body.String() +
			`</w:body></w:document>`,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
	}

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
}

type memoryStore struct {
	mu       sync.Mutex
	folders  []string
	uploads  map[string][]byte
	failName string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{uploads: map[string][]byte{}}
}

func (m *memoryStore) Name() string { return "memory" }

func (m *memoryStore) EnsureFolder(_ context.Context, folderPath string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.folders = append(m.folders, folderPath)
	return "folder:" + folderPath, nil
}

func (m *memoryStore) Upload(_ context.Context, folderPath, name, _ string, content []byte) (*RemoteFile, error) {
	if name == m.failName {
		return nil, fmt.Errorf("upload rejected: %s", name)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	path := folderPath + "/" + name
	m.uploads[path] = content
	return &RemoteFile{ID: "id:" + path, Name: name, Path: path, URL: "mem://" + path}, nil
}

func (m *memoryStore) ShareLink(_ context.Context, file RemoteFile) (string, error) {
	return "https://share.example/" + file.ID, nil
}

func (m *memoryStore) hasFolder(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, f := range m.folders {
		if f == path {
			return true
		}
	}
	return false
}
