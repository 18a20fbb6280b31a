package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/job-tracker/internal/models"
	"alfredoptarigan/job-tracker/internal/profile"
	"alfredoptarigan/job-tracker/internal/repositories"
	"alfredoptarigan/job-tracker/internal/scoring"
)

type ScoringService interface {
	// ScoreJob scores a stored job against the loaded profile and persists the
	// total, a history record and a job_scored activity.
	ScoreJob(ctx context.Context, jobID uuid.UUID) (*scoring.ScoreResult, error)
	Profile() *profile.Profile
}

type scoringService struct {
	jobRepo   repositories.JobRepository
	scoreRepo repositories.ScoreRepository
	activity  ActivityService
	profile   *profile.Profile
	log       *zap.Logger
}

func NewScoringService(
	jobRepo repositories.JobRepository,
	scoreRepo repositories.ScoreRepository,
	activity ActivityService,
	p *profile.Profile,
	log *zap.Logger,
) ScoringService {
	return &scoringService{
		jobRepo:   jobRepo,
		scoreRepo: scoreRepo,
		activity:  activity,
		profile:   p,
		log:       log,
	}
}

func (s *scoringService) Profile() *profile.Profile {
	return s.profile
}

func (s *scoringService) ScoreJob(ctx context.Context, jobID uuid.UUID) (*scoring.ScoreResult, error) {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, &scoring.NotFoundError{JobID: jobID.String()}
		}
		return nil, err
	}

	result, err := scoring.Score(job.Record(), s.profile)
	if err != nil {
		return nil, err
	}

	if err := s.jobRepo.UpdateScore(job.ID, result.TotalScore); err != nil {
		return nil, fmt.Errorf("failed to save score: %w", err)
	}

	record := models.NewScoreRecord(job.ID, result, s.profile.Version)
	if err := s.scoreRepo.Create(record); err != nil {
		return nil, fmt.Errorf("failed to save score record: %w", err)
	}

	err = s.activity.Record(ctx, models.ActivityJobScored, "job", job.ID,
		fmt.Sprintf("AI score calculated: %d%%", result.TotalScore),
		map[string]interface{}{
			"score":     result.TotalScore,
			"breakdown": result.Breakdown,
			"profile":   s.profile.Version,
		},
	)
	if err != nil {
		s.log.Warn("failed to record scoring activity", zap.String("job_id", job.ID.String()), zap.Error(err))
	}

	s.log.Info("job scored",
		zap.String("job_id", job.ID.String()),
		zap.String("title", job.Title),
		zap.Int("score", result.TotalScore),
	)

	return &result, nil
}
