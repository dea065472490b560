// Package policy translates a resolved label's protection settings into
// actionable response flags.
package policy

import (
	"labelguard/domain/grounding"
	"labelguard/domain/labels"
)

// Enforcer derives response flags from labels. It is a pure function over
// the label's protection settings and tier; no state, safe for concurrent
// use.
type Enforcer struct{}

// NewEnforcer creates a policy enforcer.
func NewEnforcer() *Enforcer {
	return &Enforcer{}
}

// DeriveFlags maps protection settings to response flags. Encryption is
// gated on both the explicit flag and a minimum tier of Confidential: a
// misconfigured low-sensitivity label never triggers encryption.
func (e *Enforcer) DeriveFlags(label *labels.Label) grounding.ResponseFlags {
	return grounding.ResponseFlags{
		ShouldDisplay:      !label.Protection.PreventExtraction,
		AllowCopyPaste:     !label.Protection.PreventCopyPaste,
		AllowGrounding:     !label.Protection.PreventGrounding,
		RequiresEncryption: RequiresEncryption(label),
	}
}

// RequiresEncryption reports whether content under the label must be
// encrypted before formatting.
func RequiresEncryption(label *labels.Label) bool {
	return label.Protection.RequireEncryption && label.Priority >= labels.TierConfidential
}
