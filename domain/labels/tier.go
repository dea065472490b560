package labels

import "fmt"

// PriorityTier is the ordinal sensitivity rank of a label.
// Tiers form a total order: Public < Internal < Confidential <
// HighlyConfidential < Restricted.
type PriorityTier int

const (
	TierPublic PriorityTier = iota
	TierInternal
	TierConfidential
	TierHighlyConfidential
	TierRestricted
)

// AllTiers lists every defined tier in ascending order.
var AllTiers = []PriorityTier{
	TierPublic,
	TierInternal,
	TierConfidential,
	TierHighlyConfidential,
	TierRestricted,
}

// String returns the canonical name for the tier.
func (t PriorityTier) String() string {
	switch t {
	case TierPublic:
		return "public"
	case TierInternal:
		return "internal"
	case TierConfidential:
		return "confidential"
	case TierHighlyConfidential:
		return "highly_confidential"
	case TierRestricted:
		return "restricted"
	default:
		return fmt.Sprintf("unknown(%d)", int(t))
	}
}

// IsValid reports whether the tier is one of the five defined values.
func (t PriorityTier) IsValid() bool {
	return t >= TierPublic && t <= TierRestricted
}

// ParseTier converts a tier name to its PriorityTier value.
func ParseTier(s string) (PriorityTier, error) {
	switch s {
	case "public":
		return TierPublic, nil
	case "internal":
		return TierInternal, nil
	case "confidential":
		return TierConfidential, nil
	case "highly_confidential":
		return TierHighlyConfidential, nil
	case "restricted":
		return TierRestricted, nil
	default:
		return TierPublic, fmt.Errorf("unknown priority tier: %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler so tiers serialize as names.
func (t PriorityTier) MarshalText() ([]byte, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("cannot marshal invalid priority tier %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *PriorityTier) UnmarshalText(text []byte) error {
	parsed, err := ParseTier(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
