package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"labelguard/application"
	"labelguard/domain/grounding"
	"labelguard/interfaces/web/presenters"
	"labelguard/logging"
)

// GroundingHandlers handles grounding item HTTP endpoints.
type GroundingHandlers struct {
	groundingService *application.GroundingService
	presenter        *presenters.GroundingPresenter
	classPresenter   *presenters.ClassificationPresenter
	labelPresenter   *presenters.LabelPresenter
	logger           *logging.Logger
}

// NewGroundingHandlers creates a new grounding handlers instance.
func NewGroundingHandlers(
	groundingService *application.GroundingService,
	presenter *presenters.GroundingPresenter,
	classPresenter *presenters.ClassificationPresenter,
	labelPresenter *presenters.LabelPresenter,
) *GroundingHandlers {
	return &GroundingHandlers{
		groundingService: groundingService,
		presenter:        presenter,
		classPresenter:   classPresenter,
		labelPresenter:   labelPresenter,
		logger:           logging.Default().WithComponent("grounding_handler"),
	}
}

// IngestContent stores a new grounding item and classifies it on the way in.
func (h *GroundingHandlers) IngestContent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content  string `json:"content"`
		Source   string `json:"source"`
		DataType string `json:"data_type"`
	}
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	dataType := grounding.DataType(req.DataType)
	if dataType == "" {
		dataType = grounding.DataTypeText
	}

	item, err := h.groundingService.IngestContent(r.Context(), req.Content, req.Source, dataType)
	if err != nil {
		respondError(w, r, err)
		return
	}

	h.logger.Info("Content ingested via API", "grounding_id", item.ID, "tier", item.EffectiveTier().String())
	respond(w, r, http.StatusCreated, h.presenter.FormatItem(item))
}

// ListItems returns all stored grounding items without their content.
func (h *GroundingHandlers) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.groundingService.ListItems(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, h.presenter.FormatItems(items))
}

// GetItem returns a single grounding item by id.
func (h *GroundingHandlers) GetItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "groundingID")
	item, err := h.groundingService.GetItem(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, h.presenter.FormatItem(item))
}

// GetResponse builds the policy response for an item, honoring the label's
// allow lists for the requesting user.
func (h *GroundingHandlers) GetResponse(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "groundingID")
	user := r.URL.Query().Get("user")
	groups := r.URL.Query()["group"]

	resp, err := h.groundingService.BuildResponse(r.Context(), id, user, groups)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, h.classPresenter.FormatResponse(resp))
}

// Reclassify attaches a different stored label to an item. Lower-tier
// overrides are rejected.
func (h *GroundingHandlers) Reclassify(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "groundingID")

	var req struct {
		LabelID string `json:"label_id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	item, err := h.groundingService.Reclassify(r.Context(), id, req.LabelID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, h.presenter.FormatItem(item))
}

type decryptResult struct {
	Content string `json:"content" xml:"content"`
}

// Decrypt recovers plaintext from an envelope produced for the item's label.
func (h *GroundingHandlers) Decrypt(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "groundingID")

	var req struct {
		Ciphertext string `json:"ciphertext"`
	}
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	plaintext, err := h.groundingService.Decrypt(r.Context(), id, req.Ciphertext)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, decryptResult{Content: plaintext})
}

// MergeEffectiveLabel returns the single label governing a set of items.
func (h *GroundingHandlers) MergeEffectiveLabel(w http.ResponseWriter, r *http.Request) {
	var req struct {
		GroundingIDs []string `json:"grounding_ids"`
	}
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	merged, err := h.groundingService.MergeEffectiveLabel(r.Context(), req.GroundingIDs)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, h.labelPresenter.FormatLabel(merged))
}

// DeleteItem removes a grounding item.
func (h *GroundingHandlers) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "groundingID")
	deleted, err := h.groundingService.DeleteItem(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if !deleted {
		respond(w, r, http.StatusNotFound, errorBody{Error: "grounding item not found"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
