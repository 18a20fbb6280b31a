package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jomei/notionapi"
	"go.uber.org/zap"

	"alfredoptarigan/job-tracker/internal/models"
	"alfredoptarigan/job-tracker/internal/repositories"
	"alfredoptarigan/job-tracker/internal/scoring"
)

// Notion property names of the job, company and reading list databases.
const (
	propJobTitle     = "Job Title"
	propCompany      = "Company"
	propAIScore      = "AI Score"
	propPriority     = "Priority"
	propStatus       = "Status"
	propLocation     = "Location"
	propRemote       = "Remote Option"
	propSalaryMin    = "Salary Min"
	propSalaryMax    = "Salary Max"
	propDeadline     = "Application Deadline"
	propPostedDate   = "Posted Date"
	propSource       = "Source"
	propSourceURL    = "Source URL"
	propDescription  = "Job Description"
	propRequirements = "Requirements"
	propNotes        = "Notes"

	propCompanyName     = "Company Name"
	propIndustry        = "Industry"
	propWebsite         = "Website"
	propCompanyDesc     = "Description"
	propReadingTitle    = "Title"
	propReadingURL      = "URL"
	propReadingCategory = "Category"
	propReadingStatus   = "Status"
	propReadingAdded    = "Added Date"
	propReadingJob      = "Related Job"
)

var priorityLabels = map[models.Priority]string{
	models.PriorityUrgent: "🔥 Urgent",
	models.PriorityHigh:   "⭐ High",
	models.PriorityMedium: "📝 Medium",
	models.PriorityLow:    "📋 Low",
}

var statusLabels = map[models.JobStatus]string{
	models.JobStatusIdentified: "🔍 Identified",
	models.JobStatusScored:     "📊 Scored",
	models.JobStatusApplied:    "📝 Applied",
	models.JobStatusInterview:  "🎤 Interview",
	models.JobStatusOffer:      "✅ Offer",
	models.JobStatusRejected:   "❌ Rejected",
	models.JobStatusWithdrawn:  "⏸️ Withdrawn",
}

var remoteLabels = map[string]string{
	"remote":  "🏠 Remote",
	"hybrid":  "🏢 Hybrid",
	"on-site": "🏭 On-site",
}

// PriorityLabel is the Notion select name for a priority.
func PriorityLabel(p models.Priority) string {
	if label, ok := priorityLabels[p]; ok {
		return label
	}
	return priorityLabels[models.PriorityMedium]
}

// StatusLabel is the Notion select name for a status.
func StatusLabel(s models.JobStatus) string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return statusLabels[models.JobStatusIdentified]
}

// RemoteLabel is the Notion select name for a remote option.
func RemoteLabel(option string) string {
	if label, ok := remoteLabels[strings.ToLower(strings.TrimSpace(option))]; ok {
		return label
	}
	return remoteLabels["hybrid"]
}

// labelKey strips the emoji prefix from a select name and lowercases it.
func labelKey(label string) string {
	label = strings.TrimSpace(label)
	if i := strings.IndexByte(label, ' '); i >= 0 && !startsWithLetter(label) {
		label = label[i+1:]
	}
	return strings.ToLower(strings.TrimSpace(label))
}

func startsWithLetter(s string) bool {
	return s != "" && ((s[0] >= 'a' && s[0] <= 'z') || (s[0] >= 'A' && s[0] <= 'Z'))
}

// NotionClient is the slice of the Notion API the sync needs.
type NotionClient interface {
	CreatePage(ctx context.Context, req *notionapi.PageCreateRequest) (*notionapi.Page, error)
	UpdatePage(ctx context.Context, id notionapi.PageID, req *notionapi.PageUpdateRequest) (*notionapi.Page, error)
	GetPage(ctx context.Context, id notionapi.PageID) (*notionapi.Page, error)
	QueryDatabase(ctx context.Context, id notionapi.DatabaseID, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error)
}

type notionAPIClient struct {
	client *notionapi.Client
}

func NewNotionClient(token string) NotionClient {
	return &notionAPIClient{client: notionapi.NewClient(notionapi.Token(token))}
}

func (c *notionAPIClient) CreatePage(ctx context.Context, req *notionapi.PageCreateRequest) (*notionapi.Page, error) {
	return c.client.Page.Create(ctx, req)
}

func (c *notionAPIClient) UpdatePage(ctx context.Context, id notionapi.PageID, req *notionapi.PageUpdateRequest) (*notionapi.Page, error) {
	return c.client.Page.Update(ctx, id, req)
}

func (c *notionAPIClient) GetPage(ctx context.Context, id notionapi.PageID) (*notionapi.Page, error) {
	return c.client.Page.Get(ctx, id)
}

func (c *notionAPIClient) QueryDatabase(ctx context.Context, id notionapi.DatabaseID, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error) {
	return c.client.Database.Query(ctx, id, req)
}

type NotionDatabases struct {
	Jobs        string
	Companies   string
	ReadingList string
}

type PulledJob struct {
	Action string `json:"action"`
	JobID  string `json:"job_id"`
	Title  string `json:"title"`
}

type PullSummary struct {
	Created []PulledJob `json:"created"`
	Updated []PulledJob `json:"updated"`
	Skipped int         `json:"skipped"`
}

type ReadingEntry struct {
	Title    string
	URL      string
	Category string
	JobID    *uuid.UUID
}

type NotionSync interface {
	PushJob(ctx context.Context, jobID uuid.UUID) (string, error)
	Pull(ctx context.Context) (*PullSummary, error)
	AddReadingListEntry(ctx context.Context, entry ReadingEntry) (string, error)
}

type notionSync struct {
	client      NotionClient
	dbs         NotionDatabases
	jobRepo     repositories.JobRepository
	companyRepo repositories.CompanyRepository
	activity    ActivityService
	chunker     TextChunker
	log         *zap.Logger
}

// NewNotionSync builds the sync. A nil client disables every operation.
func NewNotionSync(
	client NotionClient,
	dbs NotionDatabases,
	jobRepo repositories.JobRepository,
	companyRepo repositories.CompanyRepository,
	activity ActivityService,
	log *zap.Logger,
) NotionSync {
	return &notionSync{
		client:      client,
		dbs:         dbs,
		jobRepo:     jobRepo,
		companyRepo: companyRepo,
		activity:    activity,
		chunker:     NewTextChunker(),
		log:         log,
	}
}

// PushJob creates the job's Notion page, or updates it when the job is
// already linked to one. It returns the page id.
func (n *notionSync) PushJob(ctx context.Context, jobID uuid.UUID) (string, error) {
	if n.client == nil || n.dbs.Jobs == "" {
		return "", ErrIntegrationDisabled
	}

	job, err := n.jobRepo.FindByID(jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", &scoring.NotFoundError{JobID: jobID.String()}
		}
		return "", err
	}

	props := n.jobProperties(job)
	if companyPage, err := n.companyPage(ctx, job.Company); err != nil {
		n.log.Warn("failed to link notion company", zap.String("job_id", job.ID.String()), zap.Error(err))
	} else if companyPage != "" {
		props[propCompany] = notionapi.RelationProperty{
			Relation: []notionapi.Relation{{ID: notionapi.PageID(companyPage)}},
		}
	}

	var pageID string
	if job.NotionPageID != "" {
		page, err := n.client.UpdatePage(ctx, notionapi.PageID(job.NotionPageID), &notionapi.PageUpdateRequest{
			Properties: props,
		})
		if err != nil {
			return "", fmt.Errorf("failed to update notion page: %w", err)
		}
		pageID = page.ID.String()
	} else {
		page, err := n.client.CreatePage(ctx, &notionapi.PageCreateRequest{
			Parent: notionapi.Parent{
				Type:       notionapi.ParentTypeDatabaseID,
				DatabaseID: notionapi.DatabaseID(n.dbs.Jobs),
			},
			Properties: props,
		})
		if err != nil {
			return "", fmt.Errorf("failed to create notion page: %w", err)
		}
		pageID = page.ID.String()

		if err := n.jobRepo.Update(job.ID, map[string]interface{}{"notion_page_id": pageID}); err != nil {
			return "", err
		}
	}

	err = n.activity.Record(ctx, models.ActivityNotionPushed, "job", job.ID,
		fmt.Sprintf("Synced to Notion page %s", pageID),
		map[string]interface{}{"notion_page_id": pageID},
	)
	if err != nil {
		n.log.Warn("failed to record notion activity", zap.String("job_id", job.ID.String()), zap.Error(err))
	}
	return pageID, nil
}

func (n *notionSync) jobProperties(job *models.Job) notionapi.Properties {
	title := job.Title
	if title == "" {
		title = "Untitled Job"
	}

	props := notionapi.Properties{
		propJobTitle: notionapi.TitleProperty{Title: n.richText(title)},
		propPriority: notionapi.SelectProperty{Select: notionapi.Option{Name: PriorityLabel(job.Priority)}},
		propStatus:   notionapi.SelectProperty{Select: notionapi.Option{Name: StatusLabel(job.Status)}},
		propLocation: notionapi.RichTextProperty{RichText: n.richText(job.Location)},
	}

	if job.AIScore != nil {
		props[propAIScore] = notionapi.NumberProperty{Number: float64(*job.AIScore)}
	}
	if job.RemoteOption != "" {
		props[propRemote] = notionapi.SelectProperty{Select: notionapi.Option{Name: RemoteLabel(job.RemoteOption)}}
	}
	if job.SalaryMin != nil {
		props[propSalaryMin] = notionapi.NumberProperty{Number: float64(*job.SalaryMin)}
	}
	if job.SalaryMax != nil {
		props[propSalaryMax] = notionapi.NumberProperty{Number: float64(*job.SalaryMax)}
	}
	if job.ApplicationDeadline != nil {
		props[propDeadline] = dateProperty(*job.ApplicationDeadline)
	}
	if job.PostedDate != nil {
		props[propPostedDate] = dateProperty(*job.PostedDate)
	}
	if job.Source != "" {
		props[propSource] = notionapi.SelectProperty{Select: notionapi.Option{Name: job.Source}}
	}
	if job.SourceURL != "" {
		props[propSourceURL] = notionapi.URLProperty{URL: job.SourceURL}
	}
	if job.JobDescription != "" {
		props[propDescription] = notionapi.RichTextProperty{RichText: n.richText(job.JobDescription)}
	}
	if job.Requirements != "" {
		props[propRequirements] = notionapi.RichTextProperty{RichText: n.richText(job.Requirements)}
	}
	if job.Notes != "" {
		props[propNotes] = notionapi.RichTextProperty{RichText: n.richText(job.Notes)}
	}
	return props
}

// companyPage returns the company's Notion page, creating it on first use.
// It returns "" when no companies database is configured.
func (n *notionSync) companyPage(ctx context.Context, company *models.Company) (string, error) {
	if company == nil || n.dbs.Companies == "" {
		return "", nil
	}
	if company.NotionPageID != "" {
		return company.NotionPageID, nil
	}

	props := notionapi.Properties{
		propCompanyName: notionapi.TitleProperty{Title: n.richText(company.Name)},
		propCompanyDesc: notionapi.RichTextProperty{RichText: n.richText(company.Description)},
	}
	if company.Industry != "" {
		props[propIndustry] = notionapi.SelectProperty{Select: notionapi.Option{Name: company.Industry}}
	}
	if company.Website != "" {
		props[propWebsite] = notionapi.URLProperty{URL: company.Website}
	}

	page, err := n.client.CreatePage(ctx, &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: notionapi.DatabaseID(n.dbs.Companies),
		},
		Properties: props,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create notion company: %w", err)
	}

	pageID := page.ID.String()
	if err := n.companyRepo.UpdateNotionPageID(company.ID, pageID); err != nil {
		return "", err
	}
	company.NotionPageID = pageID
	return pageID, nil
}

// Pull reads every page of the jobs database and creates or updates the local
// job linked to it. Pages without a title are skipped.
func (n *notionSync) Pull(ctx context.Context) (*PullSummary, error) {
	if n.client == nil || n.dbs.Jobs == "" {
		return nil, ErrIntegrationDisabled
	}

	summary := &PullSummary{Created: []PulledJob{}, Updated: []PulledJob{}}
	req := &notionapi.DatabaseQueryRequest{PageSize: 100}

	for {
		resp, err := n.client.QueryDatabase(ctx, notionapi.DatabaseID(n.dbs.Jobs), req)
		if err != nil {
			return nil, fmt.Errorf("failed to query notion database: %w", err)
		}

		for i := range resp.Results {
			pulled, err := n.pullPage(ctx, &resp.Results[i])
			if err != nil {
				return nil, err
			}
			switch {
			case pulled == nil:
				summary.Skipped++
			case pulled.Action == "created":
				summary.Created = append(summary.Created, *pulled)
			default:
				summary.Updated = append(summary.Updated, *pulled)
			}
		}

		if !resp.HasMore || resp.NextCursor == "" {
			break
		}
		req.StartCursor = resp.NextCursor
	}

	n.log.Info("notion pull finished",
		zap.Int("created", len(summary.Created)),
		zap.Int("updated", len(summary.Updated)),
		zap.Int("skipped", summary.Skipped),
	)
	return summary, nil
}

func (n *notionSync) pullPage(ctx context.Context, page *notionapi.Page) (*PulledJob, error) {
	fields := parseJobPage(page.Properties)
	title, _ := fields["title"].(string)
	if strings.TrimSpace(title) == "" {
		return nil, nil
	}
	pageID := page.ID.String()

	existing, err := n.jobRepo.FindByNotionPageID(pageID)
	switch {
	case err == nil:
		if err := n.jobRepo.Update(existing.ID, fields); err != nil {
			return nil, err
		}
		n.recordPull(ctx, existing.ID, pageID, "updated")
		return &PulledJob{Action: "updated", JobID: existing.ID.String(), Title: title}, nil
	case !errors.Is(err, repositories.ErrNotFound):
		return nil, err
	}

	job := jobFromFields(fields)
	job.NotionPageID = pageID
	job.Source = firstNonEmpty(job.Source, "Notion")

	if companyName := n.relatedCompanyName(ctx, page.Properties); companyName != "" {
		company, err := n.companyRepo.FindOrCreate(companyName, models.Company{})
		if err != nil {
			return nil, err
		}
		job.CompanyID = &company.ID
	}

	if err := n.jobRepo.Create(job); err != nil {
		return nil, err
	}
	n.recordPull(ctx, job.ID, pageID, "created")
	return &PulledJob{Action: "created", JobID: job.ID.String(), Title: title}, nil
}

func (n *notionSync) recordPull(ctx context.Context, jobID uuid.UUID, pageID, action string) {
	err := n.activity.Record(ctx, models.ActivityNotionPulled, "job", jobID,
		fmt.Sprintf("Job %s from Notion", action),
		map[string]interface{}{"notion_page_id": pageID, "action": action},
	)
	if err != nil {
		n.log.Warn("failed to record notion pull", zap.String("job_id", jobID.String()), zap.Error(err))
	}
}

// relatedCompanyName resolves the first company relation to its title.
func (n *notionSync) relatedCompanyName(ctx context.Context, props notionapi.Properties) string {
	var relations []notionapi.Relation
	switch v := props[propCompany].(type) {
	case *notionapi.RelationProperty:
		relations = v.Relation
	case notionapi.RelationProperty:
		relations = v.Relation
	}
	if len(relations) == 0 {
		return ""
	}

	page, err := n.client.GetPage(ctx, relations[0].ID)
	if err != nil {
		n.log.Warn("failed to load related company", zap.String("page_id", string(relations[0].ID)), zap.Error(err))
		return ""
	}
	return propertyText(page.Properties[propCompanyName])
}

// parseJobPage maps Notion properties onto job columns. Only properties
// present on the page are returned.
func parseJobPage(props notionapi.Properties) map[string]interface{} {
	fields := map[string]interface{}{}

	if title := propertyText(props[propJobTitle]); title != "" {
		fields["title"] = title
	}
	if label := propertySelect(props[propStatus]); label != "" {
		if status := models.JobStatus(labelKey(label)); status.Valid() {
			fields["status"] = status
		}
	}
	if label := propertySelect(props[propPriority]); label != "" {
		if priority := models.Priority(labelKey(label)); priority.Valid() {
			fields["priority"] = priority
		}
	}
	if label := propertySelect(props[propRemote]); label != "" {
		fields["remote_option"] = labelKey(label)
	}
	if source := propertySelect(props[propSource]); source != "" {
		fields["source"] = source
	}
	for name, column := range map[string]string{
		propLocation:     "location",
		propDescription:  "job_description",
		propRequirements: "requirements",
		propNotes:        "notes",
	} {
		if _, ok := props[name]; ok {
			fields[column] = propertyText(props[name])
		}
	}
	if url := propertyURL(props[propSourceURL]); url != "" {
		fields["source_url"] = url
	}
	if v, ok := propertyNumber(props[propSalaryMin]); ok {
		fields["salary_min"] = v
	}
	if v, ok := propertyNumber(props[propSalaryMax]); ok {
		fields["salary_max"] = v
	}
	if t, ok := propertyDate(props[propDeadline]); ok {
		fields["application_deadline"] = t
	}
	if t, ok := propertyDate(props[propPostedDate]); ok {
		fields["posted_date"] = t
	}
	return fields
}

func jobFromFields(fields map[string]interface{}) *models.Job {
	job := &models.Job{}
	job.Title, _ = fields["title"].(string)
	job.Status, _ = fields["status"].(models.JobStatus)
	job.Priority, _ = fields["priority"].(models.Priority)
	job.RemoteOption, _ = fields["remote_option"].(string)
	job.Source, _ = fields["source"].(string)
	job.Location, _ = fields["location"].(string)
	job.JobDescription, _ = fields["job_description"].(string)
	job.Requirements, _ = fields["requirements"].(string)
	job.Notes, _ = fields["notes"].(string)
	job.SourceURL, _ = fields["source_url"].(string)
	if v, ok := fields["salary_min"].(int); ok {
		job.SalaryMin = &v
	}
	if v, ok := fields["salary_max"].(int); ok {
		job.SalaryMax = &v
	}
	if t, ok := fields["application_deadline"].(time.Time); ok {
		job.ApplicationDeadline = &t
	}
	if t, ok := fields["posted_date"].(time.Time); ok {
		job.PostedDate = &t
	}
	return job
}

func (n *notionSync) AddReadingListEntry(ctx context.Context, entry ReadingEntry) (string, error) {
	if n.client == nil || n.dbs.ReadingList == "" {
		return "", ErrIntegrationDisabled
	}

	category := entry.Category
	if category == "" {
		category = "Job Research"
	}

	props := notionapi.Properties{
		propReadingTitle:    notionapi.TitleProperty{Title: n.richText(entry.Title)},
		propReadingURL:      notionapi.URLProperty{URL: entry.URL},
		propReadingCategory: notionapi.SelectProperty{Select: notionapi.Option{Name: category}},
		propReadingStatus:   notionapi.SelectProperty{Select: notionapi.Option{Name: "📋 To Read"}},
		propReadingAdded:    dateProperty(time.Now()),
	}

	if entry.JobID != nil {
		job, err := n.jobRepo.FindByID(*entry.JobID)
		switch {
		case err == nil:
			props[propReadingJob] = notionapi.RichTextProperty{RichText: n.richText(job.Title)}
		case !errors.Is(err, repositories.ErrNotFound):
			return "", err
		}
	}

	page, err := n.client.CreatePage(ctx, &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: notionapi.DatabaseID(n.dbs.ReadingList),
		},
		Properties: props,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create reading list entry: %w", err)
	}
	return page.ID.String(), nil
}

// richText splits long text into segments Notion accepts.
func (n *notionSync) richText(text string) []notionapi.RichText {
	chunks := n.chunker.ChunkText(text, NotionTextLimit)
	if len(chunks) == 0 {
		chunks = []string{""}
	}
	out := make([]notionapi.RichText, len(chunks))
	for i, chunk := range chunks {
		out[i] = notionapi.RichText{
			Type: notionapi.ObjectTypeText,
			Text: &notionapi.Text{Content: chunk},
		}
	}
	return out
}

func dateProperty(t time.Time) notionapi.DateProperty {
	d := notionapi.Date(t)
	return notionapi.DateProperty{Date: &notionapi.DateObject{Start: &d}}
}

func plainText(parts []notionapi.RichText) string {
	var b strings.Builder
	for _, rt := range parts {
		if rt.PlainText != "" {
			b.WriteString(rt.PlainText)
		} else if rt.Text != nil {
			b.WriteString(rt.Text.Content)
		}
	}
	return b.String()
}

func propertyText(p notionapi.Property) string {
	switch v := p.(type) {
	case *notionapi.TitleProperty:
		return plainText(v.Title)
	case notionapi.TitleProperty:
		return plainText(v.Title)
	case *notionapi.RichTextProperty:
		return plainText(v.RichText)
	case notionapi.RichTextProperty:
		return plainText(v.RichText)
	}
	return ""
}

func propertySelect(p notionapi.Property) string {
	switch v := p.(type) {
	case *notionapi.SelectProperty:
		return v.Select.Name
	case notionapi.SelectProperty:
		return v.Select.Name
	}
	return ""
}

func propertyURL(p notionapi.Property) string {
	switch v := p.(type) {
	case *notionapi.URLProperty:
		return v.URL
	case notionapi.URLProperty:
		return v.URL
	}
	return ""
}

func propertyNumber(p notionapi.Property) (int, bool) {
	switch v := p.(type) {
	case *notionapi.NumberProperty:
		return int(v.Number), true
	case notionapi.NumberProperty:
		return int(v.Number), true
	}
	return 0, false
}

func propertyDate(p notionapi.Property) (time.Time, bool) {
	var obj *notionapi.DateObject
	switch v := p.(type) {
	case *notionapi.DateProperty:
		obj = v.Date
	case notionapi.DateProperty:
		obj = v.Date
	}
	if obj == nil || obj.Start == nil {
		return time.Time{}, false
	}
	return time.Time(*obj.Start), true
}
