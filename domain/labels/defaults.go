package labels

import "time"

// DefaultInternalName is the store label name the resolver falls back to
// when no label exists at a suggested tier.
const DefaultInternalName = "Internal"

// DefaultInternal synthesizes the in-memory fallback label used when the
// store has no usable label at all. It carries no encryption requirement and
// no restrictions so classification can always complete.
func DefaultInternal() *Label {
	now := time.Now().UTC()
	return &Label{
		ID:          "default-internal",
		Name:        DefaultInternalName,
		Description: "Default internal sensitivity label",
		Priority:    TierInternal,
		Protection:  ProtectionSettings{},
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
