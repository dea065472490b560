package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"labelguard/domain/jobs"
	"labelguard/test/helpers"
)

// stubExecutor lets tests control the outcome of job execution.
type stubExecutor struct {
	err     error
	started chan struct{}
	block   chan struct{}
}

func (s *stubExecutor) Execute(ctx context.Context, job *jobs.Job, progress ProgressCallback) error {
	if s.started != nil {
		close(s.started)
	}
	if s.block != nil {
		select {
		case <-s.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	progress("done", "finished", 100, len(job.Context.Items), len(job.Context.Items))
	job.Stats.ItemsClassified = len(job.Context.Items)
	return s.err
}

// churningExecutor mutates progress and stats continuously until released,
// standing in for a long batch run.
type churningExecutor struct {
	release chan struct{}
}

func (c *churningExecutor) Execute(ctx context.Context, job *jobs.Job, progress ProgressCallback) error {
	total := len(job.Context.Items)
	for i := 0; ; i++ {
		select {
		case <-c.release:
			job.Stats.ItemsClassified = total
			progress("done", "finished", 100, total, total)
			return nil
		case <-ctx.Done():
			return ctx.Err()
		default:
			job.Stats.ItemsClassified = i % total
			progress("classifying", "working", i%100, i%total, total)
		}
	}
}

func newJobServiceFixture(executor JobExecutor) (JobService, *helpers.MockCollaborators) {
	mocks := helpers.NewMockCollaborators()
	registry := NewJobExecutorRegistry()
	if executor != nil {
		registry.RegisterExecutor(jobs.JobTypeBatchClassification, executor)
	}
	svc := NewJobService(context.Background(), registry, mocks.Publisher)
	return svc, mocks
}

func waitForStatus(t *testing.T, svc JobService, jobID string, status jobs.JobStatus) *jobs.Job {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case <-deadline:
			t.Fatalf("job %s never reached %s", jobID, status)
			return nil
		default:
		}
		// Status reads go through the service so they are lock-protected.
		for _, job := range svc.ListJobsByStatus(status) {
			if job.ID == jobID {
				return job
			}
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestStartBatchClassification_RejectsEmptyBatch(t *testing.T) {
	svc, _ := newJobServiceFixture(&stubExecutor{})

	_, err := svc.StartBatchClassification(nil)

	assert.Error(t, err)
}

func TestStartBatchClassification_RejectsUnregisteredType(t *testing.T) {
	svc, _ := newJobServiceFixture(nil)

	_, err := svc.StartBatchClassification([]jobs.BatchItem{{Content: "x"}})

	assert.Error(t, err)
}

func TestStartBatchClassification_CompletesAndPublishes(t *testing.T) {
	svc, mocks := newJobServiceFixture(&stubExecutor{})
	mocks.Publisher.On("PublishBatchCompleted", mock.Anything).Return()

	job, err := svc.StartBatchClassification([]jobs.BatchItem{{Content: "a"}, {Content: "b"}})
	require.NoError(t, err)

	done := waitForStatus(t, svc, job.ID, jobs.JobStatusCompleted)
	assert.Equal(t, 2, done.Stats.ItemsClassified)
	assert.Equal(t, 100, done.Progress.Percentage)
	assert.False(t, done.IsActive())
}

func TestStartBatchClassification_ExecutorErrorFailsJob(t *testing.T) {
	svc, mocks := newJobServiceFixture(&stubExecutor{err: errors.New("all items failed")})
	mocks.Publisher.On("PublishBatchCompleted", mock.Anything).Return()

	job, err := svc.StartBatchClassification([]jobs.BatchItem{{Content: "a"}})
	require.NoError(t, err)

	failed := waitForStatus(t, svc, job.ID, jobs.JobStatusFailed)
	assert.Contains(t, failed.Error, "all items failed")
}

func TestJobReads_DoNotAliasRunningJob(t *testing.T) {
	executor := &churningExecutor{release: make(chan struct{})}
	svc, mocks := newJobServiceFixture(executor)
	mocks.Publisher.On("PublishBatchCompleted", mock.Anything).Return()

	job, err := svc.StartBatchClassification([]jobs.BatchItem{{Content: "a"}, {Content: "b"}})
	require.NoError(t, err)

	// Read the job the way the HTTP handlers do while the executor is still
	// mutating it. The service hands out copies, so these unlocked reads
	// must stay clean under the race detector.
	deadline := time.Now().Add(100 * time.Millisecond)
	for time.Now().Before(deadline) {
		if got, ok := svc.GetJob(job.ID); ok {
			_ = got.Progress.Stage
			_ = got.Stats.ItemsClassified
			_ = got.IsActive()
		}
		for _, j := range svc.ListAllJobs() {
			_ = j.Progress.Percentage
			_ = j.Duration()
		}
	}
	close(executor.release)

	done := waitForStatus(t, svc, job.ID, jobs.JobStatusCompleted)
	assert.Equal(t, 2, done.Stats.ItemsClassified)

	// Mutating a returned copy must not leak into the tracked job.
	done.Status = jobs.JobStatusFailed
	done.Stats.ItemsClassified = 99
	stored, ok := svc.GetJob(job.ID)
	require.True(t, ok)
	assert.Equal(t, jobs.JobStatusCompleted, stored.Status)
	assert.Equal(t, 2, stored.Stats.ItemsClassified)
}

func TestCancelJob_StopsRunningJob(t *testing.T) {
	executor := &stubExecutor{
		started: make(chan struct{}),
		block:   make(chan struct{}),
	}
	svc, mocks := newJobServiceFixture(executor)
	mocks.Publisher.On("PublishBatchCompleted", mock.Anything).Return().Maybe()

	job, err := svc.StartBatchClassification([]jobs.BatchItem{{Content: "a"}})
	require.NoError(t, err)
	<-executor.started

	_, err = svc.CancelJob(job.ID)
	require.NoError(t, err)
	waitForStatus(t, svc, job.ID, jobs.JobStatusCancelled)

	_, err = svc.CancelJob(job.ID)
	assert.Error(t, err, "cancelling a complete job must fail")
}

func TestCancelJob_UnknownJob(t *testing.T) {
	svc, _ := newJobServiceFixture(&stubExecutor{})

	_, err := svc.CancelJob("nope")

	assert.Error(t, err)
}

func TestListJobsByStatus_Filters(t *testing.T) {
	svc, mocks := newJobServiceFixture(&stubExecutor{})
	mocks.Publisher.On("PublishBatchCompleted", mock.Anything).Return()

	job, err := svc.StartBatchClassification([]jobs.BatchItem{{Content: "a"}})
	require.NoError(t, err)
	waitForStatus(t, svc, job.ID, jobs.JobStatusCompleted)

	assert.Len(t, svc.ListAllJobs(), 1)
	assert.Len(t, svc.ListJobsByStatus(jobs.JobStatusCompleted), 1)
	assert.Empty(t, svc.ListJobsByStatus(jobs.JobStatusRunning))
}
