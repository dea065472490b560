package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"labelguard/application"
	"labelguard/domain/jobs"
	"labelguard/interfaces/web/presenters"
	"labelguard/logging"
)

// JobHandlers handles batch classification job HTTP endpoints.
type JobHandlers struct {
	jobService application.JobService
	presenter  *presenters.JobPresenter
	logger     *logging.Logger
}

// NewJobHandlers creates a new job handlers instance.
func NewJobHandlers(jobService application.JobService, presenter *presenters.JobPresenter) *JobHandlers {
	return &JobHandlers{
		jobService: jobService,
		presenter:  presenter,
		logger:     logging.Default().WithComponent("job_handler"),
	}
}

// StartBatchClassification queues a batch of content items for
// classification and returns the job immediately.
func (h *JobHandlers) StartBatchClassification(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Items []struct {
			Content  string `json:"content"`
			Source   string `json:"source"`
			DataType string `json:"data_type"`
		} `json:"items"`
	}
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.Items) == 0 {
		http.Error(w, "batch contains no items", http.StatusBadRequest)
		return
	}

	items := make([]jobs.BatchItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, jobs.BatchItem{
			Content:  item.Content,
			Source:   item.Source,
			DataType: item.DataType,
		})
	}

	job, err := h.jobService.StartBatchClassification(items)
	if err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	h.logger.Info("Batch classification started via API", "job_id", job.ID, "items", len(items))
	respond(w, r, http.StatusAccepted, h.presenter.FormatJobStatus(job))
}

// ListJobs returns all known jobs, optionally filtered by status.
func (h *JobHandlers) ListJobs(w http.ResponseWriter, r *http.Request) {
	if status := r.URL.Query().Get("status"); status != "" {
		filtered := h.jobService.ListJobsByStatus(jobs.JobStatus(status))
		respond(w, r, http.StatusOK, h.presenter.FormatJobList(filtered))
		return
	}
	respond(w, r, http.StatusOK, h.presenter.FormatJobList(h.jobService.ListAllJobs()))
}

// GetJob returns a single job by id.
func (h *JobHandlers) GetJob(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "jobID")
	job, ok := h.jobService.GetJob(id)
	if !ok {
		respond(w, r, http.StatusNotFound, errorBody{Error: "job not found"})
		return
	}
	respond(w, r, http.StatusOK, h.presenter.FormatJobStatus(job))
}

// CancelJob requests cancellation of an active job.
func (h *JobHandlers) CancelJob(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "jobID")
	job, err := h.jobService.CancelJob(id)
	if err != nil {
		respond(w, r, http.StatusConflict, errorBody{Error: err.Error()})
		return
	}
	respond(w, r, http.StatusOK, h.presenter.FormatJobStatus(job))
}
