package jobs

import (
	"time"

	"github.com/google/uuid"
)

// NewBatchClassificationJob creates a pending batch classification job for
// the given items.
func NewBatchClassificationJob(items []BatchItem) *Job {
	return &Job{
		ID:        uuid.NewString(),
		Type:      JobTypeBatchClassification,
		Status:    JobStatusPending,
		StartedAt: time.Now().UTC(),
		Progress: JobProgress{
			Stage:       "queued",
			Description: "Waiting for a worker",
			ItemsTotal:  len(items),
		},
		Context: BatchJobContext{Items: items},
	}
}
