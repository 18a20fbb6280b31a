package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/mitchellh/mapstructure"

	"alfredoptarigan/job-tracker/internal/models"
	"alfredoptarigan/job-tracker/internal/repositories"
	"alfredoptarigan/job-tracker/internal/services"
)

type JobHandler struct {
	jobs services.JobService
}

func NewJobHandler(jobs services.JobService) *JobHandler {
	return &JobHandler{jobs: jobs}
}

// HandleList handles GET /jobs?status=&priority=&min_score=&limit=
func (h *JobHandler) HandleList(c *fiber.Ctx) error {
	filter := repositories.JobFilter{
		Status:   models.JobStatus(c.Query("status")),
		Priority: models.Priority(c.Query("priority")),
	}

	if raw := c.Query("min_score"); raw != "" {
		minScore, err := strconv.Atoi(raw)
		if err != nil || minScore < 0 || minScore > 100 {
			return badRequest(c, "min_score must be an integer between 0 and 100")
		}
		filter.MinScore = &minScore
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return badRequest(c, "limit must be a positive integer")
		}
		filter.Limit = limit
	}

	jobs, err := h.jobs.List(filter)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.JobListResponse{Jobs: jobs, Count: len(jobs)})
}

// HandleCreate handles POST /jobs
func (h *JobHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.CreateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request payload")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, validationMessage(err))
	}

	job, err := h.jobs.Create(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(job)
}

// HandleImport handles POST /jobs/import
func (h *JobHandler) HandleImport(c *fiber.Ctx) error {
	var req models.ImportJobRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request payload")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, validationMessage(err))
	}

	job, err := h.jobs.Import(c.UserContext(), req)
	if err != nil {
		if statusFor(err) == fiber.StatusInternalServerError {
			return errorJSON(c, fiber.StatusBadGateway, err.Error())
		}
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(job)
}

// HandleGet handles GET /jobs/:id
func (h *JobHandler) HandleGet(c *fiber.Ctx) error {
	id, err := parseJobID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	detail, err := h.jobs.Get(id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(detail)
}

// HandleUpdate handles PATCH /jobs/:id. Unknown fields are rejected.
func (h *JobHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := parseJobID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	var body map[string]interface{}
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid request payload")
	}

	var update models.JobUpdate
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &update,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return respondError(c, err)
	}
	if err := decoder.Decode(body); err != nil {
		return badRequest(c, err.Error())
	}
	if err := validate.Struct(update); err != nil {
		return badRequest(c, validationMessage(err))
	}

	job, err := h.jobs.Update(c.UserContext(), id, update)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(job)
}
