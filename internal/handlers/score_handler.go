package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/job-tracker/internal/models"
	"alfredoptarigan/job-tracker/internal/repositories"
	"alfredoptarigan/job-tracker/internal/services"
)

const rescoreBatch = 500

type ScoreHandler struct {
	scorer  services.ScoringService
	jobRepo repositories.JobRepository
	queue   services.ScoreQueue
}

func NewScoreHandler(scorer services.ScoringService, jobRepo repositories.JobRepository, queue services.ScoreQueue) *ScoreHandler {
	return &ScoreHandler{
		scorer:  scorer,
		jobRepo: jobRepo,
		queue:   queue,
	}
}

// HandleScore handles POST /jobs/:id/score
func (h *ScoreHandler) HandleScore(c *fiber.Ctx) error {
	id, err := parseJobID(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	result, err := h.scorer.ScoreJob(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.ScoreResponse{
		JobID:  id.String(),
		Status: "scored",
		Score:  *result,
	})
}

// HandleRescore handles POST /jobs/rescore. Unscored jobs are queued for the
// worker and the request returns immediately.
func (h *ScoreHandler) HandleRescore(c *fiber.Ctx) error {
	if h.queue == nil {
		return errorJSON(c, fiber.StatusServiceUnavailable, "scoring worker is not running")
	}

	jobs, err := h.jobRepo.FindUnscored(rescoreBatch)
	if err != nil {
		return respondError(c, err)
	}

	queued := 0
	for _, job := range jobs {
		if h.queue.EnqueueJob(job.ID) {
			queued++
		}
	}

	return c.Status(fiber.StatusAccepted).JSON(models.QueueResponse{
		Queued: queued,
		Status: "queued",
	})
}
