package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/job-tracker/internal/models"
	"alfredoptarigan/job-tracker/internal/services"
)

type ApplicationHandler struct {
	jobs services.JobService
}

func NewApplicationHandler(jobs services.JobService) *ApplicationHandler {
	return &ApplicationHandler{jobs: jobs}
}

// HandleList handles GET /applications
func (h *ApplicationHandler) HandleList(c *fiber.Ctx) error {
	apps, err := h.jobs.Applications()
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"applications": apps,
		"count":        len(apps),
	})
}

// HandleCreate handles POST /jobs/:id/applications
func (h *ApplicationHandler) HandleCreate(c *fiber.Ctx) error {
	id, err := parseJobID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	var req models.CreateApplicationRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request payload")
		}
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, validationMessage(err))
	}

	app, err := h.jobs.RecordApplication(c.UserContext(), id, req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(app)
}
