package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"labelguard/domain/events"
	"labelguard/domain/jobs"
	"labelguard/logging"
)

// JobService provides job management for background batch classification.
// All accessors return point-in-time copies: callers read them freely while
// the runner goroutine keeps mutating the tracked job under the service lock.
type JobService interface {
	// StartBatchClassification queues a batch job and begins executing it.
	StartBatchClassification(items []jobs.BatchItem) (*jobs.Job, error)

	// GetJob retrieves a snapshot of a job by id.
	GetJob(jobID string) (*jobs.Job, bool)

	// CancelJob cancels a pending or running job.
	CancelJob(jobID string) (*jobs.Job, error)

	// ListAllJobs returns a snapshot of every known job.
	ListAllJobs() []*jobs.Job

	// ListJobsByStatus returns snapshots of the jobs in the given status.
	ListJobsByStatus(status jobs.JobStatus) []*jobs.Job
}

// JobServiceImpl tracks jobs in memory and dispatches execution through the
// executor registry. Job history is deliberately not persisted; durability
// is out of scope for this service.
type JobServiceImpl struct {
	registry  *JobExecutorRegistry
	publisher events.Publisher
	logger    *logging.Logger

	mu      sync.RWMutex
	jobs    map[string]*jobs.Job
	cancels map[string]context.CancelFunc
	appCtx  context.Context
}

// NewJobService creates a job service. appCtx bounds the lifetime of all
// background jobs: shutting the application down cancels them.
func NewJobService(appCtx context.Context, registry *JobExecutorRegistry, publisher events.Publisher) JobService {
	return &JobServiceImpl{
		registry:  registry,
		publisher: publisher,
		logger:    logging.Default().WithComponent("job_service"),
		jobs:      make(map[string]*jobs.Job),
		cancels:   make(map[string]context.CancelFunc),
		appCtx:    appCtx,
	}
}

// StartBatchClassification queues and launches a batch classification job.
func (s *JobServiceImpl) StartBatchClassification(items []jobs.BatchItem) (*jobs.Job, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("batch contains no items")
	}

	executor, err := s.registry.GetExecutor(jobs.JobTypeBatchClassification)
	if err != nil {
		return nil, err
	}

	job := jobs.NewBatchClassificationJob(items)
	ctx, cancel := context.WithCancel(s.appCtx)

	s.mu.Lock()
	s.jobs[job.ID] = job
	s.cancels[job.ID] = cancel
	s.mu.Unlock()

	s.logger.Info("Batch classification job queued",
		"job_id", job.ID,
		"items", len(items))

	// Snapshot before launching the runner: the returned job must not alias
	// the tracked one once the goroutine starts mutating it.
	queued := job.Snapshot()
	go s.run(ctx, job, executor)
	return queued, nil
}

func (s *JobServiceImpl) run(ctx context.Context, job *jobs.Job, executor JobExecutor) {
	defer func() {
		s.mu.Lock()
		delete(s.cancels, job.ID)
		s.mu.Unlock()
	}()

	s.mu.Lock()
	job.Start()
	// The executor works on a private copy so its stats writes never race
	// with readers holding snapshots of the tracked job.
	working := job.Snapshot()
	s.mu.Unlock()

	start := time.Now()
	err := executor.Execute(ctx, working, s.progressCallback(job.ID))

	s.mu.Lock()
	job.Stats = working.Stats
	switch {
	case err != nil && ctx.Err() != nil:
		job.Cancel()
	case err != nil:
		job.Fail(err)
	default:
		job.Complete(fmt.Sprintf("classified %d items", job.Stats.ItemsClassified))
	}
	stats := job.Stats
	itemsTotal := job.Progress.ItemsTotal
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("Batch classification job finished with error",
			"job_id", job.ID, "error", err)
	} else {
		s.logger.Info("Batch classification job completed",
			"job_id", job.ID,
			"items_classified", stats.ItemsClassified,
			"items_failed", stats.ItemsFailed)
	}

	s.publisher.PublishBatchCompleted(events.BatchCompletedEvent{
		JobID:       job.ID,
		ItemsTotal:  itemsTotal,
		ItemsFailed: stats.ItemsFailed,
		Duration:    time.Since(start),
		Timestamp:   time.Now(),
	})
}

func (s *JobServiceImpl) progressCallback(jobID string) ProgressCallback {
	return func(stage, description string, percentage, itemsDone, itemsTotal int) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if job, ok := s.jobs[jobID]; ok {
			job.Progress.Stage = stage
			job.Progress.Description = description
			job.Progress.Percentage = percentage
			job.Progress.ItemsDone = itemsDone
			job.Progress.ItemsTotal = itemsTotal
		}
	}
}

// GetJob retrieves a snapshot of a job by id.
func (s *JobServiceImpl) GetJob(jobID string) (*jobs.Job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[jobID]
	if !ok {
		return nil, false
	}
	return job.Snapshot(), true
}

// CancelJob cancels a pending or running job.
func (s *JobServiceImpl) CancelJob(jobID string) (*jobs.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[jobID]
	if !ok {
		return nil, fmt.Errorf("job not found")
	}
	if job.IsComplete() {
		return nil, fmt.Errorf("job already complete")
	}
	if cancel, ok := s.cancels[jobID]; ok {
		cancel()
	}
	job.Cancel()

	s.logger.Info("Job cancelled", "job_id", jobID)
	return job.Snapshot(), nil
}

// ListAllJobs returns a snapshot of every known job.
func (s *JobServiceImpl) ListAllJobs() []*jobs.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*jobs.Job, 0, len(s.jobs))
	for _, job := range s.jobs {
		out = append(out, job.Snapshot())
	}
	return out
}

// ListJobsByStatus returns snapshots of the jobs in the given status.
func (s *JobServiceImpl) ListJobsByStatus(status jobs.JobStatus) []*jobs.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*jobs.Job
	for _, job := range s.jobs {
		if job.Status == status {
			out = append(out, job.Snapshot())
		}
	}
	return out
}
