package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/job-tracker/internal/repositories"
)

type Worker interface {
	Start(ctx context.Context)
	Stop()
	// EnqueueJob queues a job for scoring. It reports false when the worker
	// is stopped or the queue is full.
	EnqueueJob(jobID uuid.UUID) bool
}

type WorkerOptions struct {
	Concurrency  int
	QueueSize    int
	PollInterval time.Duration
	BatchSize    int
}

type worker struct {
	jobRepo  repositories.JobRepository
	scorer   ScoringService
	log      *zap.Logger
	opts     WorkerOptions
	jobQueue chan uuid.UUID

	pendingMu sync.Mutex
	pending   map[uuid.UUID]struct{}

	wg       sync.WaitGroup
	stopChan chan struct{}
	stopOnce sync.Once
}

func NewWorker(
	jobRepo repositories.JobRepository,
	scorer ScoringService,
	opts WorkerOptions,
	log *zap.Logger,
) Worker {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = 100
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = 10 * time.Second
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = 10
	}

	return &worker{
		jobRepo:  jobRepo,
		scorer:   scorer,
		log:      log,
		opts:     opts,
		jobQueue: make(chan uuid.UUID, opts.QueueSize),
		pending:  make(map[uuid.UUID]struct{}),
		stopChan: make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	w.log.Info("starting scoring worker", zap.Int("concurrency", w.opts.Concurrency))

	for i := 0; i < w.opts.Concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}

	w.wg.Add(1)
	go w.pollUnscoredJobs(ctx)
}

// Stop implements Worker.
func (w *worker) Stop() {
	w.stopOnce.Do(func() {
		w.log.Info("stopping scoring worker")
		close(w.stopChan)
		w.wg.Wait()
		w.log.Info("scoring worker stopped")
	})
}

// EnqueueJob implements Worker. A job already waiting in the queue or being
// scored is not queued twice.
func (w *worker) EnqueueJob(jobID uuid.UUID) bool {
	select {
	case <-w.stopChan:
		w.log.Warn("worker stopped, cannot enqueue job", zap.String("job_id", jobID.String()))
		return false
	default:
	}

	w.pendingMu.Lock()
	if _, queued := w.pending[jobID]; queued {
		w.pendingMu.Unlock()
		return true
	}
	w.pending[jobID] = struct{}{}
	w.pendingMu.Unlock()

	select {
	case w.jobQueue <- jobID:
		w.log.Debug("job enqueued", zap.String("job_id", jobID.String()))
		return true
	default:
		w.release(jobID)
		w.log.Warn("scoring queue full", zap.String("job_id", jobID.String()))
		return false
	}
}

func (w *worker) release(jobID uuid.UUID) {
	w.pendingMu.Lock()
	delete(w.pending, jobID)
	w.pendingMu.Unlock()
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			return
		case <-ctx.Done():
			return
		case jobID := <-w.jobQueue:
			result, err := w.scorer.ScoreJob(ctx, jobID)
			w.release(jobID)
			if err != nil {
				w.log.Error("failed to score job",
					zap.Int("worker", workerID),
					zap.String("job_id", jobID.String()),
					zap.Error(err),
				)
				continue
			}
			w.log.Debug("job scored by worker",
				zap.Int("worker", workerID),
				zap.String("job_id", jobID.String()),
				zap.Int("score", result.TotalScore),
			)
		}
	}
}

func (w *worker) pollUnscoredJobs(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(w.opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			jobs, err := w.jobRepo.FindUnscored(w.opts.BatchSize)
			if err != nil {
				w.log.Warn("failed to fetch unscored jobs", zap.Error(err))
				continue
			}

			if len(jobs) > 0 {
				w.log.Info("found unscored jobs", zap.Int("count", len(jobs)))
			}

			for _, job := range jobs {
				w.EnqueueJob(job.ID)
			}
		}
	}
}
