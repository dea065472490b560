// Package classification implements the content classification core:
// pattern-based sensitive data detection and risk aggregation into a
// suggested priority tier.
package classification

import (
	"fmt"

	"labelguard/domain/labels"
)

// RiskLevel ranks the severity of a detected pattern.
type RiskLevel int

const (
	RiskNone RiskLevel = iota
	RiskLow
	RiskMedium
	RiskHigh
	RiskCritical
)

// String returns the canonical name for the risk level.
func (r RiskLevel) String() string {
	switch r {
	case RiskNone:
		return "none"
	case RiskLow:
		return "low"
	case RiskMedium:
		return "medium"
	case RiskHigh:
		return "high"
	case RiskCritical:
		return "critical"
	default:
		return fmt.Sprintf("unknown(%d)", int(r))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (r RiskLevel) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// SuggestedTier maps a risk level to the priority tier it implies.
func (r RiskLevel) SuggestedTier() labels.PriorityTier {
	switch r {
	case RiskCritical:
		return labels.TierRestricted
	case RiskHigh:
		return labels.TierHighlyConfidential
	case RiskMedium:
		return labels.TierConfidential
	case RiskLow:
		return labels.TierInternal
	default:
		return labels.TierPublic
	}
}

// DetectedPattern is a single sensitive-data finding in a piece of content.
// Findings are ephemeral: produced per classification call, never persisted.
type DetectedPattern struct {
	PatternType string    `json:"pattern_type"`
	Risk        RiskLevel `json:"risk"`
	Confidence  float64   `json:"confidence"`
	Start       int       `json:"start"`
	End         int       `json:"end"`
}

// ClassificationResult aggregates the findings for one piece of content.
// It is consumed immediately by the label resolver and never stored.
type ClassificationResult struct {
	SuggestedLabelID      string                    `json:"suggested_label_id,omitempty"`
	SuggestedTier         labels.PriorityTier       `json:"suggested_tier"`
	Confidence            float64                   `json:"confidence"`
	Patterns              []DetectedPattern         `json:"patterns"`
	RecommendedProtection labels.ProtectionSettings `json:"recommended_protection"`
}

// RecommendedProtection derives the protection settings a label at the given
// tier should carry. Higher tiers accumulate the restrictions of lower ones.
func RecommendedProtection(tier labels.PriorityTier) labels.ProtectionSettings {
	var p labels.ProtectionSettings
	if tier >= labels.TierConfidential {
		p.RequireEncryption = true
	}
	if tier >= labels.TierHighlyConfidential {
		p.PreventCopyPaste = true
		p.PreventExtraction = true
	}
	if tier >= labels.TierRestricted {
		p.PreventGrounding = true
	}
	return p
}
