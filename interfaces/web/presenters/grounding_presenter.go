package presenters

import (
	"encoding/xml"
	"time"

	"labelguard/domain/grounding"
)

// GroundingItemView represents a stored grounding item for API responses.
type GroundingItemView struct {
	ID            string            `json:"id" xml:"id"`
	Source        string            `json:"source" xml:"source"`
	DataType      string            `json:"data_type" xml:"dataType"`
	IsClassified  bool              `json:"is_classified" xml:"isClassified"`
	EffectiveTier string            `json:"effective_tier" xml:"effectiveTier"`
	Label         *LabelView        `json:"label,omitempty" xml:"label,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty" xml:"-"`
	CreatedAt     string            `json:"created_at" xml:"createdAt"`
	UpdatedAt     string            `json:"updated_at" xml:"updatedAt"`
}

// GroundingListView represents a list of grounding items.
type GroundingListView struct {
	XMLName xml.Name             `json:"-" xml:"groundingItems"`
	Items   []*GroundingItemView `json:"items" xml:"item"`
	Count   int                  `json:"count" xml:"count,attr"`
}

// GroundingPresenter transforms grounding domain data into API-ready views.
// Raw content is never included in list or detail views; callers must go
// through the response endpoint, which applies policy flags first.
type GroundingPresenter struct {
	labelPresenter *LabelPresenter
}

// NewGroundingPresenter creates a grounding presenter.
func NewGroundingPresenter() *GroundingPresenter {
	return &GroundingPresenter{labelPresenter: NewLabelPresenter()}
}

// FormatItem converts a grounding item to its view model.
func (p *GroundingPresenter) FormatItem(item *grounding.GroundingData) *GroundingItemView {
	view := &GroundingItemView{
		ID:            item.ID,
		Source:        item.Source,
		DataType:      string(item.DataType),
		IsClassified:  item.IsClassified(),
		EffectiveTier: item.EffectiveTier().String(),
		Metadata:      item.Metadata,
		CreatedAt:     item.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     item.UpdatedAt.Format(time.RFC3339),
	}
	if item.Label != nil {
		view.Label = p.labelPresenter.FormatLabel(item.Label)
	}
	return view
}

// FormatItems converts grounding items to the list view.
func (p *GroundingPresenter) FormatItems(items []*grounding.GroundingData) *GroundingListView {
	views := make([]*GroundingItemView, 0, len(items))
	for _, item := range items {
		views = append(views, p.FormatItem(item))
	}
	return &GroundingListView{Items: views, Count: len(views)}
}
