package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"alfredoptarigan/job-tracker/internal/models"
	"alfredoptarigan/job-tracker/internal/repositories"
	"alfredoptarigan/job-tracker/internal/scoring"
	"alfredoptarigan/job-tracker/internal/services"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// Deps holds the services exposed as tools.
type Deps struct {
	Jobs    services.JobService
	Scorer  services.ScoringService
	Letters services.LetterService
	Log     *zap.Logger
	Version string
}

// New creates the MCP server with the tracker tools registered.
func New(deps Deps) *server.MCPServer {
	version := deps.Version
	if version == "" {
		version = "dev"
	}

	s := server.NewMCPServer(
		"job-tracker",
		version,
		server.WithToolCapabilities(false),
		server.WithInstructions("Job application tracker: list tracked jobs, score them against the skill profile and draft cover letters."),
		server.WithRecovery(),
	)

	s.AddTool(
		mcp.NewTool("list_jobs",
			mcp.WithDescription("List tracked jobs, best scores first."),
			mcp.WithString("status", mcp.Description("Filter by status"),
				mcp.Enum("identified", "scored", "applied", "interview", "offer", "rejected", "withdrawn")),
			mcp.WithNumber("min_score", mcp.Description("Only jobs scoring at least this much"), mcp.Min(0), mcp.Max(100)),
			mcp.WithNumber("limit", mcp.Description("Maximum number of jobs (default 20)")),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		listJobs(deps),
	)

	s.AddTool(
		mcp.NewTool("get_job",
			mcp.WithDescription("Show a job with its latest score breakdown."),
			mcp.WithString("job_id", mcp.Description("Job UUID"), mcp.Required()),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		getJob(deps),
	)

	s.AddTool(
		mcp.NewTool("score_job",
			mcp.WithDescription("Score a job against the skill profile and store the result."),
			mcp.WithString("job_id", mcp.Description("Job UUID"), mcp.Required()),
		),
		scoreJob(deps),
	)

	s.AddTool(
		mcp.NewTool("generate_cover_letter",
			mcp.WithDescription("Generate a cover letter for a job and save it to the output directory."),
			mcp.WithString("job_id", mcp.Description("Job UUID"), mcp.Required()),
			mcp.WithString("style", mcp.Description("Letter style, or auto to pick one from the job text"), mcp.DefaultString("auto")),
			mcp.WithString("contact_person", mcp.Description("Name used in the salutation")),
		),
		generateLetter(deps),
	)

	return s
}

// Serve runs the stdio transport on in and out until ctx is cancelled. Logs
// must not go to out.
func Serve(ctx context.Context, s *server.MCPServer, in io.Reader, out io.Writer, log *zap.Logger) error {
	stdio := server.NewStdioServer(s)
	stdio.SetErrorLogger(zap.NewStdLog(log))
	if err := stdio.Listen(ctx, in, out); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("mcp stdio server: %w", err)
	}
	return nil
}

type jobSummary struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Company  string `json:"company,omitempty"`
	Status   string `json:"status"`
	Priority string `json:"priority"`
	AIScore  *int   `json:"ai_score,omitempty"`
}

func summarize(job models.Job) jobSummary {
	return jobSummary{
		ID:       job.ID.String(),
		Title:    job.Title,
		Company:  job.CompanyName(),
		Status:   string(job.Status),
		Priority: string(job.Priority),
		AIScore:  job.AIScore,
	}
}

func listJobs(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		limit := req.GetInt("limit", defaultListLimit)
		if limit <= 0 {
			limit = defaultListLimit
		}
		if limit > maxListLimit {
			limit = maxListLimit
		}

		filter := repositories.JobFilter{
			Status: models.JobStatus(req.GetString("status", "")),
			Limit:  limit,
		}
		if args := req.GetArguments(); args["min_score"] != nil {
			minScore := req.GetInt("min_score", 0)
			filter.MinScore = &minScore
		}

		jobs, err := deps.Jobs.List(filter)
		if err != nil {
			return mcp.NewToolResultErrorFromErr("failed to list jobs", err), nil
		}

		out := make([]jobSummary, len(jobs))
		for i, job := range jobs {
			out[i] = summarize(job)
		}
		return mcp.NewToolResultJSON(map[string]interface{}{"jobs": out, "count": len(out)})
	}
}

func getJob(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, errResult := jobID(req)
		if errResult != nil {
			return errResult, nil
		}

		detail, err := deps.Jobs.Get(id)
		if err != nil {
			return toolError(err), nil
		}

		out := map[string]interface{}{"job": summarize(*detail.Job)}
		if detail.LatestScore != nil {
			out["score"] = detail.LatestScore.Result()
		}
		return mcp.NewToolResultJSON(out)
	}
}

func scoreJob(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, errResult := jobID(req)
		if errResult != nil {
			return errResult, nil
		}

		result, err := deps.Scorer.ScoreJob(ctx, id)
		if err != nil {
			return toolError(err), nil
		}
		return mcp.NewToolResultJSON(models.ScoreResponse{
			JobID:  id.String(),
			Status: "scored",
			Score:  *result,
		})
	}
}

func generateLetter(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, errResult := jobID(req)
		if errResult != nil {
			return errResult, nil
		}

		out, err := deps.Letters.Generate(ctx, id, services.LetterRequest{
			Style:         req.GetString("style", ""),
			ContactPerson: req.GetString("contact_person", ""),
		})
		if err != nil {
			return toolError(err), nil
		}

		if deps.Log != nil {
			deps.Log.Info("cover letter generated over mcp",
				zap.String("job_id", id.String()),
				zap.String("style", out.Letter.Style),
			)
		}
		return mcp.NewToolResultStructured(map[string]interface{}{
			"document_id":   out.Document.ID.String(),
			"style":         out.Letter.Style,
			"auto_selected": out.Letter.AutoSelected,
			"file_path":     out.Document.FilePath,
		}, out.Letter.FullText), nil
	}
}

func jobID(req mcp.CallToolRequest) (uuid.UUID, *mcp.CallToolResult) {
	raw, err := req.RequireString("job_id")
	if err != nil {
		return uuid.Nil, mcp.NewToolResultError("job_id is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, mcp.NewToolResultError("invalid job ID format")
	}
	return id, nil
}

// toolError reports a failed call inside the result so the client sees it.
func toolError(err error) *mcp.CallToolResult {
	var nf *scoring.NotFoundError
	if errors.As(err, &nf) {
		return mcp.NewToolResultError(nf.Error())
	}
	return mcp.NewToolResultErrorFromErr("tool failed", err)
}
