// Package grounding models content items supplied to an LLM pipeline as
// grounding data and the rules for attaching sensitivity labels to them.
package grounding

import (
	"errors"
	"strconv"
	"time"

	"labelguard/domain/labels"
)

// MetaPatternCount is the metadata key recording how many sensitive
// patterns were detected when the item was classified.
const MetaPatternCount = "pattern_count"

// ErrLowerTierOverride is returned when a reclassification attempts to
// replace a label with one at a strictly lower tier. The original label is
// retained.
var ErrLowerTierOverride = errors.New("new label priority is lower than the existing label")

// DataType identifies the origin format of a grounding item.
type DataType string

const (
	DataTypeText     DataType = "text"
	DataTypeDocument DataType = "document"
	DataTypeLLMOut   DataType = "llm_output"
)

// GroundingData is a content item awaiting or carrying a sensitivity
// classification. Label is nullable: absence means unclassified, treated as
// Public pending classification. Labels are shared references; many items
// may point at the same stored label.
type GroundingData struct {
	ID        string            `json:"id"`
	Content   string            `json:"content"`
	Source    string            `json:"source"`
	DataType  DataType          `json:"data_type"`
	Label     *labels.Label     `json:"label,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// IsClassified reports whether a label is attached.
func (g *GroundingData) IsClassified() bool {
	return g.Label != nil
}

// EffectiveTier returns the tier governing the item. Unclassified items are
// treated as Public.
func (g *GroundingData) EffectiveTier() labels.PriorityTier {
	if g.Label == nil {
		return labels.TierPublic
	}
	return g.Label.Priority
}

// RecordPatternCount stores the number of detected patterns in the item's
// metadata.
func (g *GroundingData) RecordPatternCount(n int) {
	if g.Metadata == nil {
		g.Metadata = make(map[string]string, 1)
	}
	g.Metadata[MetaPatternCount] = strconv.Itoa(n)
}

// PatternCount reports how many sensitive patterns were detected at
// classification time, zero when the item carries no such record.
func (g *GroundingData) PatternCount() int {
	n, err := strconv.Atoi(g.Metadata[MetaPatternCount])
	if err != nil {
		return 0
	}
	return n
}

// AttachLabel classifies or reclassifies the item. A first classification
// always succeeds; a reclassification succeeds only when the new label's
// tier is at least the existing tier. Equal-tier overrides are allowed so a
// refreshed label at the same severity is not blocked.
func (g *GroundingData) AttachLabel(label *labels.Label, now time.Time) error {
	if g.Label != nil && !labels.CanOverride(label.Priority, g.Label.Priority) {
		return ErrLowerTierOverride
	}
	g.Label = label
	g.UpdatedAt = now
	return nil
}
