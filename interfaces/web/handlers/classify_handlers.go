package handlers

import (
	"net/http"

	"labelguard/application"
	"labelguard/domain/labels"
	"labelguard/interfaces/web/presenters"
	"labelguard/logging"
)

// ClassifyHandlers handles content classification HTTP endpoints.
type ClassifyHandlers struct {
	classificationService application.ClassificationService
	labelService          *application.LabelService
	presenter             *presenters.ClassificationPresenter
	labelPresenter        *presenters.LabelPresenter
	logger                *logging.Logger
}

// NewClassifyHandlers creates a new classify handlers instance.
func NewClassifyHandlers(
	classificationService application.ClassificationService,
	labelService *application.LabelService,
	presenter *presenters.ClassificationPresenter,
	labelPresenter *presenters.LabelPresenter,
) *ClassifyHandlers {
	return &ClassifyHandlers{
		classificationService: classificationService,
		labelService:          labelService,
		presenter:             presenter,
		labelPresenter:        labelPresenter,
		logger:                logging.Default().WithComponent("classify_handler"),
	}
}

// Classify runs pattern detection over submitted content and returns the
// suggested tier without persisting anything.
func (h *ClassifyHandlers) Classify(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content string `json:"content"`
	}
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.classificationService.Classify(r.Context(), req.Content)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, h.presenter.FormatResult(result))
}

// ClassifyAndLabel classifies content, resolves a label, and returns the
// full policy response.
func (h *ClassifyHandlers) ClassifyAndLabel(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content string `json:"content"`
	}
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.classificationService.ClassifyAndLabel(r.Context(), req.Content)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, h.presenter.FormatResponse(resp))
}

// ApplyLabel produces the policy response for content under an explicitly
// chosen stored label.
func (h *ClassifyHandlers) ApplyLabel(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content string `json:"content"`
		LabelID string `json:"label_id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	label, err := h.labelService.GetLabel(r.Context(), req.LabelID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	resp, err := h.classificationService.ApplyLabel(r.Context(), req.Content, label)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, h.presenter.FormatResponse(resp))
}

// MergeLabels returns the effective label governing a combination of
// stored labels.
func (h *ClassifyHandlers) MergeLabels(w http.ResponseWriter, r *http.Request) {
	var req struct {
		LabelIDs []string `json:"label_ids"`
	}
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	candidates := make([]*labels.Label, 0, len(req.LabelIDs))
	for _, id := range req.LabelIDs {
		label, err := h.labelService.GetLabel(r.Context(), id)
		if err != nil {
			respondError(w, r, err)
			return
		}
		candidates = append(candidates, label)
	}

	merged := h.classificationService.MergeEffective(candidates)
	respond(w, r, http.StatusOK, h.labelPresenter.FormatLabel(merged))
}
