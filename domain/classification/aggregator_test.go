package classification

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"labelguard/domain/labels"
)

func TestAggregator_CleanContent(t *testing.T) {
	a := NewAggregator()

	confidence, tier := a.Aggregate(nil)

	assert.Equal(t, CleanConfidence, confidence)
	assert.Equal(t, labels.TierPublic, tier)
}

func TestAggregator_MaxOverFindings(t *testing.T) {
	tests := []struct {
		name       string
		risks      []RiskLevel
		tier       labels.PriorityTier
		confidence float64
	}{
		{"single low", []RiskLevel{RiskLow}, labels.TierInternal, 0.60},
		{"single medium", []RiskLevel{RiskMedium}, labels.TierConfidential, 0.70},
		{"single high", []RiskLevel{RiskHigh}, labels.TierHighlyConfidential, 0.85},
		{"single critical", []RiskLevel{RiskCritical}, labels.TierRestricted, 0.95},
		{
			"one critical outweighs many lows",
			[]RiskLevel{RiskLow, RiskLow, RiskLow, RiskLow, RiskCritical, RiskLow},
			labels.TierRestricted,
			0.95,
		},
		{
			"high beats medium regardless of counts",
			[]RiskLevel{RiskMedium, RiskMedium, RiskHigh},
			labels.TierHighlyConfidential,
			0.85,
		},
	}

	a := NewAggregator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			patterns := make([]DetectedPattern, 0, len(tt.risks))
			for _, r := range tt.risks {
				patterns = append(patterns, DetectedPattern{PatternType: "x", Risk: r})
			}

			confidence, tier := a.Aggregate(patterns)

			assert.Equal(t, tt.tier, tier)
			assert.InDelta(t, tt.confidence, confidence, 1e-9)
		})
	}
}

func TestRiskLevel_SuggestedTier(t *testing.T) {
	assert.Equal(t, labels.TierPublic, RiskNone.SuggestedTier())
	assert.Equal(t, labels.TierInternal, RiskLow.SuggestedTier())
	assert.Equal(t, labels.TierConfidential, RiskMedium.SuggestedTier())
	assert.Equal(t, labels.TierHighlyConfidential, RiskHigh.SuggestedTier())
	assert.Equal(t, labels.TierRestricted, RiskCritical.SuggestedTier())
}

func TestRecommendedProtection_AccumulatesWithTier(t *testing.T) {
	public := RecommendedProtection(labels.TierPublic)
	assert.False(t, public.RequireEncryption)
	assert.False(t, public.PreventGrounding)

	confidential := RecommendedProtection(labels.TierConfidential)
	assert.True(t, confidential.RequireEncryption)
	assert.False(t, confidential.PreventCopyPaste)

	high := RecommendedProtection(labels.TierHighlyConfidential)
	assert.True(t, high.RequireEncryption)
	assert.True(t, high.PreventCopyPaste)
	assert.True(t, high.PreventExtraction)
	assert.False(t, high.PreventGrounding)

	restricted := RecommendedProtection(labels.TierRestricted)
	assert.True(t, restricted.RequireEncryption)
	assert.True(t, restricted.PreventGrounding)
}
