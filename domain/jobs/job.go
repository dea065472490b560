package jobs

import (
	"time"
)

// JobStatus represents the status of a job.
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
	JobStatusCancelled JobStatus = "cancelled"
)

// JobType represents the type of job.
type JobType string

const (
	JobTypeBatchClassification JobType = "batch_classification"
)

// JobProgress represents detailed progress information.
type JobProgress struct {
	Stage       string `json:"stage"`
	Description string `json:"description"`
	Percentage  int    `json:"percentage"`
	ItemsTotal  int    `json:"items_total"`
	ItemsDone   int    `json:"items_done"`
}

// JobStats represents statistics about the job execution.
type JobStats struct {
	ItemsClassified    int `json:"items_classified"`
	ItemsFailed        int `json:"items_failed"`
	PatternsDetected   int `json:"patterns_detected"`
	HighestTierOrdinal int `json:"highest_tier_ordinal"`
}

// BatchItem is one content item submitted for batch classification.
type BatchItem struct {
	Content  string `json:"content"`
	Source   string `json:"source"`
	DataType string `json:"data_type"`
}

// BatchJobContext carries the input of a batch classification job.
type BatchJobContext struct {
	Items []BatchItem `json:"items"`
}

// Job represents a background job with progress tracking.
type Job struct {
	ID          string
	Type        JobType
	Status      JobStatus
	StartedAt   time.Time
	CompletedAt *time.Time
	Progress    JobProgress
	Stats       JobStats
	Result      string
	Error       string
	Context     BatchJobContext
}

// IsActive returns true if the job is still running or pending.
func (j *Job) IsActive() bool {
	return j.Status == JobStatusPending || j.Status == JobStatusRunning
}

// IsComplete returns true if the job has finished (successfully, with error, or cancelled).
func (j *Job) IsComplete() bool {
	return j.Status == JobStatusCompleted || j.Status == JobStatusFailed || j.Status == JobStatusCancelled
}

// Snapshot returns a point-in-time copy of the job. The job service hands
// copies to callers so readers never alias a job that a runner goroutine is
// still mutating.
func (j *Job) Snapshot() *Job {
	c := *j
	if j.CompletedAt != nil {
		completed := *j.CompletedAt
		c.CompletedAt = &completed
	}
	return &c
}

// Duration returns the elapsed wall time of the job.
func (j *Job) Duration() time.Duration {
	if j.CompletedAt != nil {
		return j.CompletedAt.Sub(j.StartedAt)
	}
	return time.Since(j.StartedAt)
}
