package labels

// Compare returns -1, 0, or 1 as a orders before, equal to, or after b in
// the tier total order.
func Compare(a, b PriorityTier) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// HigherOf returns the higher of two tiers.
func HigherOf(a, b PriorityTier) PriorityTier {
	if a > b {
		return a
	}
	return b
}

// MaxOf returns the highest tier present in the set. An empty set yields
// TierPublic.
func MaxOf(tiers []PriorityTier) PriorityTier {
	max := TierPublic
	for _, t := range tiers {
		if t > max {
			max = t
		}
	}
	return max
}

// CanOverride reports whether a label at newTier may replace a label at
// existingTier on already-classified content. Equal tiers are overridable:
// re-classification at the same tier is allowed so descriptive content can
// be refreshed without being blocked.
func CanOverride(newTier, existingTier PriorityTier) bool {
	return newTier >= existingTier
}

// HighestPriorityLabel returns the first label carrying the maximum tier in
// the slice, preserving encounter order among equal-tier labels. Returns nil
// for an empty slice.
func HighestPriorityLabel(ls []*Label) *Label {
	var winner *Label
	for _, l := range ls {
		if l == nil {
			continue
		}
		if winner == nil || l.Priority > winner.Priority {
			winner = l
		}
	}
	return winner
}
