package labels

// Merger combines the labels attached to multiple grounding sources into the
// single effective label governing a combined response.
type Merger struct {
	validator *Validator
}

// NewMerger creates a merger that filters candidates through the given
// validator.
func NewMerger(validator *Validator) *Merger {
	return &Merger{validator: validator}
}

// MergeHighestPriority picks the highest-priority valid label from the
// candidates. Invalid labels are dropped before selection; if nothing valid
// remains (including the empty input) the default Internal label is returned.
// The operation never fails: a merged response must always end up governed by
// some label.
//
// Ties on the maximum tier keep the first-encountered label, so selection is
// stable with respect to input order.
func (m *Merger) MergeHighestPriority(candidates []*Label) *Label {
	valid := make([]*Label, 0, len(candidates))
	for _, l := range candidates {
		if l == nil {
			continue
		}
		if m.validator.Validate(l) {
			valid = append(valid, l)
		}
	}

	if winner := HighestPriorityLabel(valid); winner != nil {
		return winner
	}
	return DefaultInternal()
}
