package mcpserver

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"alfredoptarigan/job-tracker/internal/letter"
	"alfredoptarigan/job-tracker/internal/models"
	"alfredoptarigan/job-tracker/internal/repositories"
	"alfredoptarigan/job-tracker/internal/scoring"
	"alfredoptarigan/job-tracker/internal/services"
)

type fakeJobs struct {
	services.JobService
	jobs       []models.Job
	lastFilter repositories.JobFilter
}

func (f *fakeJobs) List(filter repositories.JobFilter) ([]models.Job, error) {
	f.lastFilter = filter
	return f.jobs, nil
}

func (f *fakeJobs) Get(id uuid.UUID) (*models.JobDetailResponse, error) {
	for i := range f.jobs {
		if f.jobs[i].ID == id {
			return &models.JobDetailResponse{
				Job:         &f.jobs[i],
				LatestScore: &models.ScoreRecord{TotalScore: 82, Breakdown: map[string]int{"skills": 30}},
			}, nil
		}
	}
	return nil, &scoring.NotFoundError{JobID: id.String()}
}

type fakeScorer struct {
	services.ScoringService
}

func (fakeScorer) ScoreJob(_ context.Context, id uuid.UUID) (*scoring.ScoreResult, error) {
	return &scoring.ScoreResult{TotalScore: 74, Breakdown: map[string]int{"skills": 28}}, nil
}

type fakeLetters struct {
	services.LetterService
	req services.LetterRequest
}

func (f *fakeLetters) Generate(_ context.Context, _ uuid.UUID, req services.LetterRequest) (*services.GeneratedLetter, error) {
	f.req = req
	if req.Style == "haiku" {
		return nil, letter.ErrUnknownStyle
	}
	return &services.GeneratedLetter{
		Letter:   &letter.Letter{Style: letter.StyleAI, AutoSelected: req.Style == "auto", FullText: "Dear Hiring Manager,"},
		Document: &models.GeneratedDocument{ID: uuid.New(), FilePath: "out/CoverLetter.md"},
	}, nil
}

func call(t *testing.T, deps Deps, tool string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	s := New(deps)
	registered := s.GetTool(tool)
	require.NotNil(t, registered, "tool %s", tool)

	result, err := registered.Handler(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: tool, Arguments: args},
	})
	require.NoError(t, err)
	return result
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	tc, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected TextContent, got %T", result.Content[0])
	return tc.Text
}

func testDeps() (Deps, *fakeJobs, *fakeLetters) {
	score := 82
	jobs := &fakeJobs{jobs: []models.Job{{
		ID:       uuid.New(),
		Title:    "Head of AI",
		Status:   models.JobStatusScored,
		Priority: models.PriorityHigh,
		AIScore:  &score,
		Company:  &models.Company{Name: "Acme Analytics"},
	}}}
	letters := &fakeLetters{}
	return Deps{Jobs: jobs, Scorer: fakeScorer{}, Letters: letters, Log: zap.NewNop()}, jobs, letters
}

func TestNew_RegistersTools(t *testing.T) {
	deps, _, _ := testDeps()
	tools := New(deps).ListTools()
	for _, name := range []string{"list_jobs", "get_job", "score_job", "generate_cover_letter"} {
		assert.Contains(t, tools, name)
	}
}

func TestListJobs(t *testing.T) {
	deps, jobs, _ := testDeps()

	result := call(t, deps, "list_jobs", map[string]interface{}{"status": "scored", "min_score": float64(70), "limit": float64(500)})
	require.False(t, result.IsError)

	var body struct {
		Jobs  []jobSummary `json:"jobs"`
		Count int          `json:"count"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &body))
	assert.Equal(t, 1, body.Count)
	assert.Equal(t, "Acme Analytics", body.Jobs[0].Company)

	assert.Equal(t, models.JobStatusScored, jobs.lastFilter.Status)
	require.NotNil(t, jobs.lastFilter.MinScore)
	assert.Equal(t, 70, *jobs.lastFilter.MinScore)
	assert.Equal(t, maxListLimit, jobs.lastFilter.Limit)

	call(t, deps, "list_jobs", nil)
	assert.Nil(t, jobs.lastFilter.MinScore)
	assert.Equal(t, defaultListLimit, jobs.lastFilter.Limit)
}

func TestGetJob(t *testing.T) {
	deps, jobs, _ := testDeps()

	result := call(t, deps, "get_job", map[string]interface{}{"job_id": jobs.jobs[0].ID.String()})
	require.False(t, result.IsError)
	assert.Contains(t, resultText(t, result), `"total_score":82`)

	missing := call(t, deps, "get_job", map[string]interface{}{"job_id": uuid.NewString()})
	assert.True(t, missing.IsError)
	assert.Contains(t, resultText(t, missing), "not found")
}

func TestScoreJob(t *testing.T) {
	deps, jobs, _ := testDeps()

	result := call(t, deps, "score_job", map[string]interface{}{"job_id": jobs.jobs[0].ID.String()})
	require.False(t, result.IsError)

	var resp models.ScoreResponse
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &resp))
	assert.Equal(t, "scored", resp.Status)
	assert.Equal(t, 74, resp.Score.TotalScore)

	for _, args := range []map[string]interface{}{nil, {"job_id": "not-a-uuid"}} {
		bad := call(t, deps, "score_job", args)
		assert.True(t, bad.IsError)
	}
}

func TestGenerateCoverLetter(t *testing.T) {
	deps, _, letters := testDeps()
	id := uuid.NewString()

	result := call(t, deps, "generate_cover_letter", map[string]interface{}{"job_id": id, "style": "auto", "contact_person": "Jordan Lee"})
	require.False(t, result.IsError)
	assert.Equal(t, "Dear Hiring Manager,", resultText(t, result))
	structured, ok := result.StructuredContent.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, letter.StyleAI, structured["style"])
	assert.Equal(t, true, structured["auto_selected"])
	assert.Equal(t, "Jordan Lee", letters.req.ContactPerson)

	bad := call(t, deps, "generate_cover_letter", map[string]interface{}{"job_id": id, "style": "haiku"})
	assert.True(t, bad.IsError)
	assert.Contains(t, resultText(t, bad), "unknown letter style")
}
