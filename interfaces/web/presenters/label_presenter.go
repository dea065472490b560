package presenters

import (
	"encoding/xml"
	"time"

	"labelguard/domain/labels"
)

// Label view data structures. Views carry both JSON and XML tags; the API
// negotiates the output format from the Accept header.

// ProtectionView represents protection settings for API responses.
type ProtectionView struct {
	RequireEncryption bool     `json:"require_encryption" xml:"requireEncryption"`
	PreventExtraction bool     `json:"prevent_extraction" xml:"preventExtraction"`
	PreventCopyPaste  bool     `json:"prevent_copy_paste" xml:"preventCopyPaste"`
	PreventGrounding  bool     `json:"prevent_grounding" xml:"preventGrounding"`
	AllowedUsers      []string `json:"allowed_users,omitempty" xml:"allowedUsers>user,omitempty"`
	AllowedGroups     []string `json:"allowed_groups,omitempty" xml:"allowedGroups>group,omitempty"`
	ExpiresAt         string   `json:"expires_at,omitempty" xml:"expiresAt,omitempty"`
}

// LabelView represents a label for API responses.
type LabelView struct {
	ID          string            `json:"id" xml:"id"`
	Name        string            `json:"name" xml:"name"`
	Description string            `json:"description" xml:"description"`
	Priority    string            `json:"priority" xml:"priority"`
	Protection  ProtectionView    `json:"protection" xml:"protection"`
	Properties  map[string]string `json:"custom_properties,omitempty" xml:"-"`
	Active      bool              `json:"active" xml:"active"`
	CreatedAt   string            `json:"created_at" xml:"createdAt"`
	UpdatedAt   string            `json:"updated_at" xml:"updatedAt"`
}

// LabelListView represents the label catalogue.
type LabelListView struct {
	XMLName xml.Name     `json:"-" xml:"labels"`
	Labels  []*LabelView `json:"labels" xml:"label"`
}

// LabelPresenter transforms label domain data into API-ready views.
type LabelPresenter struct{}

// NewLabelPresenter creates a label presenter.
func NewLabelPresenter() *LabelPresenter {
	return &LabelPresenter{}
}

// FormatLabel converts a label to its view model.
func (p *LabelPresenter) FormatLabel(l *labels.Label) *LabelView {
	view := &LabelView{
		ID:          l.ID,
		Name:        l.Name,
		Description: l.Description,
		Priority:    l.Priority.String(),
		Protection: ProtectionView{
			RequireEncryption: l.Protection.RequireEncryption,
			PreventExtraction: l.Protection.PreventExtraction,
			PreventCopyPaste:  l.Protection.PreventCopyPaste,
			PreventGrounding:  l.Protection.PreventGrounding,
			AllowedUsers:      l.Protection.AllowedUsers,
			AllowedGroups:     l.Protection.AllowedGroups,
		},
		Properties: l.CustomProperties,
		Active:     l.Active,
		CreatedAt:  l.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  l.UpdatedAt.Format(time.RFC3339),
	}
	if l.Protection.ExpiresAt != nil {
		view.Protection.ExpiresAt = l.Protection.ExpiresAt.Format(time.RFC3339)
	}
	return view
}

// FormatLabels converts a label slice to the catalogue view.
func (p *LabelPresenter) FormatLabels(ls []*labels.Label) *LabelListView {
	views := make([]*LabelView, 0, len(ls))
	for _, l := range ls {
		views = append(views, p.FormatLabel(l))
	}
	return &LabelListView{Labels: views}
}
