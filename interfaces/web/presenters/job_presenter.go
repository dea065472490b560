package presenters

import (
	"time"

	"labelguard/domain/jobs"
)

// JobStatusView represents the status of a job for API responses.
type JobStatusView struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Status      string `json:"status"`
	Stage       string `json:"stage"`
	Description string `json:"description"`
	Percentage  int    `json:"percentage"`
	ItemsTotal  int    `json:"items_total"`
	ItemsDone   int    `json:"items_done"`
	StartedAt   string `json:"started_at"`
	CompletedAt string `json:"completed_at,omitempty"`
	Duration    string `json:"duration"`
	IsActive    bool   `json:"is_active"`
	Result      string `json:"result,omitempty"`
	Error       string `json:"error,omitempty"`

	Stats JobStatsView `json:"stats"`
}

// JobStatsView represents job statistics for API responses.
type JobStatsView struct {
	ItemsClassified  int `json:"items_classified"`
	ItemsFailed      int `json:"items_failed"`
	PatternsDetected int `json:"patterns_detected"`
	HighestTier      int `json:"highest_tier_ordinal"`
}

// JobListView represents a list of jobs.
type JobListView struct {
	Jobs []*JobStatusView `json:"jobs"`
}

// JobPresenter transforms job domain data into API-ready views.
type JobPresenter struct{}

// NewJobPresenter creates a job presenter.
func NewJobPresenter() *JobPresenter {
	return &JobPresenter{}
}

// FormatJobStatus converts a job to its view model.
func (p *JobPresenter) FormatJobStatus(job *jobs.Job) *JobStatusView {
	view := &JobStatusView{
		ID:          job.ID,
		Type:        string(job.Type),
		Status:      string(job.Status),
		Stage:       job.Progress.Stage,
		Description: job.Progress.Description,
		Percentage:  job.Progress.Percentage,
		ItemsTotal:  job.Progress.ItemsTotal,
		ItemsDone:   job.Progress.ItemsDone,
		StartedAt:   job.StartedAt.Format(time.RFC3339),
		Duration:    job.Duration().Round(time.Millisecond).String(),
		IsActive:    job.IsActive(),
		Result:      job.Result,
		Error:       job.Error,
		Stats: JobStatsView{
			ItemsClassified:  job.Stats.ItemsClassified,
			ItemsFailed:      job.Stats.ItemsFailed,
			PatternsDetected: job.Stats.PatternsDetected,
			HighestTier:      job.Stats.HighestTierOrdinal,
		},
	}
	if job.CompletedAt != nil {
		view.CompletedAt = job.CompletedAt.Format(time.RFC3339)
	}
	return view
}

// FormatJobList converts jobs to the list view.
func (p *JobPresenter) FormatJobList(js []*jobs.Job) *JobListView {
	views := make([]*JobStatusView, 0, len(js))
	for _, job := range js {
		views = append(views, p.FormatJobStatus(job))
	}
	return &JobListView{Jobs: views}
}
