package serialization

import (
	"encoding/json"
	"fmt"

	"labelguard/domain/labels"
)

// LabelConfigSerializer handles the on-disk JSON label configuration: an
// array of label records. The shape is a boundary format that must
// round-trip losslessly.
type LabelConfigSerializer struct{}

// NewLabelConfigSerializer creates a new label config serializer.
func NewLabelConfigSerializer() *LabelConfigSerializer {
	return &LabelConfigSerializer{}
}

// Serialize converts labels to the JSON configuration document.
func (s *LabelConfigSerializer) Serialize(ls []*labels.Label) ([]byte, error) {
	if ls == nil {
		ls = []*labels.Label{}
	}
	data, err := json.MarshalIndent(ls, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal label config: %w", err)
	}
	return data, nil
}

// Deserialize converts a JSON configuration document to labels. Both a bare
// array and an object with a "labels" key are accepted.
func (s *LabelConfigSerializer) Deserialize(data []byte) ([]*labels.Label, error) {
	if len(data) == 0 {
		return []*labels.Label{}, nil
	}

	var ls []*labels.Label
	if err := json.Unmarshal(data, &ls); err == nil {
		return ls, nil
	}

	var wrapped struct {
		Labels []*labels.Label `json:"labels"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("failed to unmarshal label config: %w", err)
	}
	if wrapped.Labels == nil {
		wrapped.Labels = []*labels.Label{}
	}
	return wrapped.Labels, nil
}
