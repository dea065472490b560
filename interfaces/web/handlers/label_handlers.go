package handlers

import (
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"labelguard/application"
	"labelguard/domain/labels"
	"labelguard/interfaces/web/presenters"
	"labelguard/logging"
)

// LabelHandlers handles label catalogue HTTP endpoints.
type LabelHandlers struct {
	labelService   *application.LabelService
	labelPresenter *presenters.LabelPresenter
	logger         *logging.Logger
}

// NewLabelHandlers creates a new label handlers instance.
func NewLabelHandlers(labelService *application.LabelService, labelPresenter *presenters.LabelPresenter) *LabelHandlers {
	return &LabelHandlers{
		labelService:   labelService,
		labelPresenter: labelPresenter,
		logger:         logging.Default().WithComponent("label_handler"),
	}
}

// labelRequest is the wire shape for create/update requests.
type labelRequest struct {
	ID          string                    `json:"id"`
	Name        string                    `json:"name"`
	Description string                    `json:"description"`
	Priority    string                    `json:"priority"`
	Protection  labels.ProtectionSettings `json:"protection"`
	Properties  map[string]string         `json:"custom_properties"`
	Active      *bool                     `json:"active"`
}

func (req *labelRequest) toLabel() (*labels.Label, error) {
	tier, err := labels.ParseTier(req.Priority)
	if err != nil {
		return nil, err
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	return &labels.Label{
		ID:               req.ID,
		Name:             req.Name,
		Description:      req.Description,
		Priority:         tier,
		Protection:       req.Protection,
		CustomProperties: req.Properties,
		Active:           active,
	}, nil
}

// ListLabels returns the full label catalogue.
func (h *LabelHandlers) ListLabels(w http.ResponseWriter, r *http.Request) {
	ls, err := h.labelService.ListLabels(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, h.labelPresenter.FormatLabels(ls))
}

// GetLabel returns a single label by id.
func (h *LabelHandlers) GetLabel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "labelID")
	label, err := h.labelService.GetLabel(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, h.labelPresenter.FormatLabel(label))
}

// CreateLabel creates a new label.
func (h *LabelHandlers) CreateLabel(w http.ResponseWriter, r *http.Request) {
	var req labelRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	label, err := req.toLabel()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.labelService.CreateLabel(r.Context(), label)
	if err != nil {
		respondError(w, r, err)
		return
	}

	h.logger.Info("Label created via API", "label_id", created.ID)
	respond(w, r, http.StatusCreated, h.labelPresenter.FormatLabel(created))
}

// UpdateLabel updates an existing label.
func (h *LabelHandlers) UpdateLabel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "labelID")

	var req labelRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	req.ID = id
	label, err := req.toLabel()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := h.labelService.UpdateLabel(r.Context(), label)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, h.labelPresenter.FormatLabel(updated))
}

// DeleteLabel removes a label.
func (h *LabelHandlers) DeleteLabel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "labelID")
	deleted, err := h.labelService.DeleteLabel(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if !deleted {
		respond(w, r, http.StatusNotFound, errorBody{Error: "label not found", Kind: "label_not_found"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ExportLabels streams the catalogue in the JSON boundary format.
func (h *LabelHandlers) ExportLabels(w http.ResponseWriter, r *http.Request) {
	data, err := h.labelService.ExportLabels(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="labels-`+time.Now().Format("20060102")+`.json"`)
	w.Write(data)
}

type importResult struct {
	Imported int `json:"imported" xml:"imported"`
}

// ImportLabels loads labels from the JSON boundary format.
func (h *LabelHandlers) ImportLabels(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	count, err := h.labelService.ImportLabels(r.Context(), data)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, importResult{Imported: count})
}
