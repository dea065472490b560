package classification

import "labelguard/domain/labels"

// CleanConfidence is the confidence reported for content with no findings.
const CleanConfidence = 0.90

// Per-bucket confidence constants. The aggregate confidence is the constant
// of the highest risk bucket present, never a function of match count.
var bucketConfidence = map[RiskLevel]float64{
	RiskCritical: 0.95,
	RiskHigh:     0.85,
	RiskMedium:   0.70,
	RiskLow:      0.60,
}

// Aggregator converts a set of findings into a single confidence score and a
// suggested priority tier.
type Aggregator struct{}

// NewAggregator creates a risk aggregator. Aggregators are stateless and
// safe for concurrent use.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Aggregate applies the max-over-findings policy: the suggested tier comes
// from the single highest risk level present, so one Critical finding
// outweighs any number of Low findings. Averaging would let bulk low-risk
// text dilute a severe finding and under-classify.
func (a *Aggregator) Aggregate(patterns []DetectedPattern) (confidence float64, tier labels.PriorityTier) {
	highest := RiskNone
	for _, p := range patterns {
		if p.Risk > highest {
			highest = p.Risk
		}
	}

	if highest == RiskNone {
		return CleanConfidence, labels.TierPublic
	}
	return bucketConfidence[highest], highest.SuggestedTier()
}
