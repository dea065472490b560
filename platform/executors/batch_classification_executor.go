// Package executors contains the job executors registered with the job
// service.
package executors

import (
	"context"
	"fmt"

	"labelguard/application"
	"labelguard/domain/grounding"
	"labelguard/domain/jobs"
	"labelguard/logging"
	"labelguard/platform/workers"
)

// BatchClassificationExecutor executes batch classification jobs over a
// bounded worker pool. Items are independent, so classification order is
// irrelevant; results correlate to items by grounding id.
type BatchClassificationExecutor struct {
	groundingService *application.GroundingService
	workerCount      int
	logger           *logging.Logger
}

// NewBatchClassificationExecutor creates an executor running at most
// workerCount classifications concurrently.
func NewBatchClassificationExecutor(groundingService *application.GroundingService, workerCount int) *BatchClassificationExecutor {
	if workerCount < 1 {
		workerCount = 1
	}
	return &BatchClassificationExecutor{
		groundingService: groundingService,
		workerCount:      workerCount,
		logger:           logging.Default().WithComponent("batch_classification_executor"),
	}
}

// Execute classifies every item in the job's batch context.
func (e *BatchClassificationExecutor) Execute(ctx context.Context, job *jobs.Job, progressCallback application.ProgressCallback) error {
	items := job.Context.Items
	total := len(items)

	progressCallback("classifying", "Classifying batch items", 0, 0, total)

	results := workers.Map(ctx, e.workerCount, items,
		func(ctx context.Context, item jobs.BatchItem) (*grounding.GroundingData, error) {
			dataType := grounding.DataType(item.DataType)
			if dataType == "" {
				dataType = grounding.DataTypeText
			}
			return e.groundingService.IngestContent(ctx, item.Content, item.Source, dataType)
		})

	classified, failed, patterns := 0, 0, 0
	highest := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			e.logger.Error("Batch item classification failed",
				"job_id", job.ID, "item_index", r.Index, "error", r.Err)
			continue
		}
		classified++
		patterns += r.Value.PatternCount()
		if tier := int(r.Value.EffectiveTier()); tier > highest {
			highest = tier
		}
	}

	job.Stats = jobs.JobStats{
		ItemsClassified:    classified,
		ItemsFailed:        failed,
		PatternsDetected:   patterns,
		HighestTierOrdinal: highest,
	}

	progressCallback("classified", "Batch classification finished", 100, classified+failed, total)

	if err := ctx.Err(); err != nil {
		return err
	}
	if failed == total {
		return fmt.Errorf("all %d batch items failed", total)
	}
	return nil
}
