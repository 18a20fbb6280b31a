package services

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/job-tracker/internal/models"
	"alfredoptarigan/job-tracker/internal/scoring"
)

const aiLeadDescription = "We are hiring a Head of AI to lead our machine learning and generative AI strategy. " +
	"You will build and mentor a team of engineers, own the LLM platform roadmap and work with executives on transformation."

func TestScoringService_ScoreJob(t *testing.T) {
	d := newTestDeps(t)
	job := d.createJob(t, "Head of AI", "Acme Analytics", aiLeadDescription)

	result, err := d.scoringService().ScoreJob(context.Background(), job.ID)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, result.TotalScore, 0)
	assert.LessOrEqual(t, result.TotalScore, 100)

	stored, err := d.jobs.FindByID(job.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.AIScore)
	assert.Equal(t, result.TotalScore, *stored.AIScore)
	assert.Equal(t, models.JobStatusScored, stored.Status)
	assert.NotNil(t, stored.ScoredAt)

	record, err := d.scores.LatestForJob(job.ID)
	require.NoError(t, err)
	assert.Equal(t, result.TotalScore, record.TotalScore)
	assert.Equal(t, d.profile.Version, record.ProfileVersion)
	assert.Equal(t, result.Breakdown, record.Breakdown)

	assert.Contains(t, d.publisher.types(), models.ActivityJobScored)
}

func TestScoringService_KeepsAdvancedStatus(t *testing.T) {
	d := newTestDeps(t)
	job := d.createJob(t, "Head of AI", "", aiLeadDescription)
	require.NoError(t, d.jobs.Update(job.ID, map[string]interface{}{"status": models.JobStatusInterview}))

	_, err := d.scoringService().ScoreJob(context.Background(), job.ID)
	require.NoError(t, err)

	stored, err := d.jobs.FindByID(job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusInterview, stored.Status)
}

func TestScoringService_NotFound(t *testing.T) {
	d := newTestDeps(t)

	_, err := d.scoringService().ScoreJob(context.Background(), uuid.New())
	var nf *scoring.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestWorker_ScoresEnqueuedJobs(t *testing.T) {
	d := newTestDeps(t)
	job := d.createJob(t, "Head of AI", "Acme Analytics", aiLeadDescription)

	w := NewWorker(d.jobs, d.scoringService(), WorkerOptions{Concurrency: 2, PollInterval: time.Hour}, d.log)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	assert.True(t, w.EnqueueJob(job.ID))

	assert.Eventually(t, func() bool {
		stored, err := d.jobs.FindByID(job.ID)
		return err == nil && stored.AIScore != nil
	}, 2*time.Second, 10*time.Millisecond)

	w.Stop()
	assert.False(t, w.EnqueueJob(job.ID))
}

func TestWorker_PollsUnscoredJobs(t *testing.T) {
	d := newTestDeps(t)
	first := d.createJob(t, "Head of AI", "", aiLeadDescription)
	second := d.createJob(t, "Data Platform Lead", "", "Lead the data platform team.")

	w := NewWorker(d.jobs, d.scoringService(), WorkerOptions{PollInterval: 20 * time.Millisecond}, d.log)
	w.Start(context.Background())
	defer w.Stop()

	assert.Eventually(t, func() bool {
		unscored, err := d.jobs.FindUnscored(10)
		return err == nil && len(unscored) == 0
	}, 2*time.Second, 20*time.Millisecond)

	for _, id := range []uuid.UUID{first.ID, second.ID} {
		_, err := d.scores.LatestForJob(id)
		assert.NoError(t, err)
	}
}

func TestWorker_QueueFull(t *testing.T) {
	d := newTestDeps(t)
	w := NewWorker(d.jobs, d.scoringService(), WorkerOptions{QueueSize: 1}, d.log)

	first, second := uuid.New(), uuid.New()
	assert.True(t, w.EnqueueJob(first))
	assert.True(t, w.EnqueueJob(first), "duplicate pending job is accepted without queueing")
	assert.False(t, w.EnqueueJob(second))
	w.Stop()
}

type blockingScorer struct {
	ScoringService
	calls   atomic.Int32
	started chan uuid.UUID
	unblock chan struct{}
}

func (s *blockingScorer) ScoreJob(_ context.Context, jobID uuid.UUID) (*scoring.ScoreResult, error) {
	s.calls.Add(1)
	select {
	case s.started <- jobID:
	default:
	}
	<-s.unblock
	return &scoring.ScoreResult{TotalScore: 50}, nil
}

func TestWorker_DoesNotRequeueJobBeingScored(t *testing.T) {
	d := newTestDeps(t)
	scorer := &blockingScorer{started: make(chan uuid.UUID, 1), unblock: make(chan struct{})}
	w := NewWorker(d.jobs, scorer, WorkerOptions{Concurrency: 2, PollInterval: time.Hour}, d.log)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)
	defer w.Stop()

	id := uuid.New()
	require.True(t, w.EnqueueJob(id))

	select {
	case <-scorer.started:
	case <-time.After(2 * time.Second):
		t.Fatal("job was not picked up")
	}

	assert.True(t, w.EnqueueJob(id), "in-flight job is accepted without queueing")
	close(scorer.unblock)

	assert.Never(t, func() bool { return scorer.calls.Load() > 1 }, 100*time.Millisecond, 10*time.Millisecond)

	assert.Eventually(t, func() bool {
		w.EnqueueJob(id)
		return scorer.calls.Load() >= 2
	}, 2*time.Second, 10*time.Millisecond)
}
