package grounding

import "labelguard/domain/labels"

// ResponseFlags are the actionable policy flags derived from a label's
// protection settings.
type ResponseFlags struct {
	ShouldDisplay      bool `json:"should_display"`
	AllowCopyPaste     bool `json:"allow_copy_paste"`
	AllowGrounding     bool `json:"allow_grounding"`
	RequiresEncryption bool `json:"requires_encryption"`
}

// SensitivityLabelResponse is the externally visible result of classifying
// and protecting one piece of content.
type SensitivityLabelResponse struct {
	Label            *labels.Label `json:"label"`
	OriginalContent  string        `json:"original_content"`
	ProtectedContent string        `json:"protected_content"`
	Flags            ResponseFlags `json:"flags"`
}
