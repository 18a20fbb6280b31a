package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/job-tracker/internal/models"
	"alfredoptarigan/job-tracker/internal/services"
)

type SyncHandler struct {
	notion services.NotionSync
}

func NewSyncHandler(notion services.NotionSync) *SyncHandler {
	return &SyncHandler{notion: notion}
}

// HandlePush handles POST /jobs/:id/notion
func (h *SyncHandler) HandlePush(c *fiber.Ctx) error {
	id, err := parseJobID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	pageID, err := h.notion.PushJob(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"job_id":         id.String(),
		"notion_page_id": pageID,
	})
}

// HandlePull handles POST /notion/pull
func (h *SyncHandler) HandlePull(c *fiber.Ctx) error {
	summary, err := h.notion.Pull(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(summary)
}

// HandleReadingList handles POST /notion/reading-list
func (h *SyncHandler) HandleReadingList(c *fiber.Ctx) error {
	var req models.ReadingListRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request payload")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, validationMessage(err))
	}

	entry := services.ReadingEntry{
		Title:    req.Title,
		URL:      req.URL,
		Category: req.Category,
	}
	if req.JobID != "" {
		jobID := uuid.MustParse(req.JobID)
		entry.JobID = &jobID
	}

	pageID, err := h.notion.AddReadingListEntry(c.UserContext(), entry)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"notion_page_id": pageID,
	})
}
