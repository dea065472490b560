package jobs

import "time"

// Start transitions the job to running.
func (j *Job) Start() {
	j.Status = JobStatusRunning
	j.Progress.Stage = "running"
}

// Complete transitions the job to completed with a result summary.
func (j *Job) Complete(result string) {
	now := time.Now().UTC()
	j.Status = JobStatusCompleted
	j.CompletedAt = &now
	j.Result = result
	j.Progress.Stage = "completed"
	j.Progress.Percentage = 100
}

// Fail transitions the job to failed with the given error.
func (j *Job) Fail(err error) {
	now := time.Now().UTC()
	j.Status = JobStatusFailed
	j.CompletedAt = &now
	j.Error = err.Error()
	j.Progress.Stage = "failed"
}

// Cancel transitions the job to cancelled. No-op once complete.
func (j *Job) Cancel() {
	if j.IsComplete() {
		return
	}
	now := time.Now().UTC()
	j.Status = JobStatusCancelled
	j.CompletedAt = &now
	j.Progress.Stage = "cancelled"
}
