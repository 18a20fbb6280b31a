package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/job-tracker/internal/services"
)

type PostingHandler struct {
	jobs        services.JobService
	storage     services.StorageService
	maxFileSize int64
}

func NewPostingHandler(jobs services.JobService, storage services.StorageService, maxFileSize int64) *PostingHandler {
	return &PostingHandler{
		jobs:        jobs,
		storage:     storage,
		maxFileSize: maxFileSize,
	}
}

// HandleUpload handles POST /jobs/:id/posting with a "posting" form file.
func (h *PostingHandler) HandleUpload(c *fiber.Ctx) error {
	id, err := parseJobID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	file, err := c.FormFile("posting")
	if err != nil {
		return badRequest(c, "a 'posting' file (PDF, DOCX or TXT) is required")
	}

	if file.Size > h.maxFileSize {
		return badRequest(c, fmt.Sprintf("Posting file too large. Max size: %d bytes", h.maxFileSize))
	}

	filename, filePath, err := h.storage.SaveUpload(file, "posting")
	if err != nil {
		return badRequest(c, fmt.Sprintf("failed to save posting: %v", err))
	}

	resp, err := h.jobs.AttachPosting(c.UserContext(), id, filePath, file.Filename)
	if err != nil {
		// Cleanup uploaded file if the posting could not be attached
		_ = h.storage.DeleteFile(filename)
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}
