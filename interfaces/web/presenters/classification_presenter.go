package presenters

import (
	"encoding/xml"

	"labelguard/domain/classification"
	"labelguard/domain/grounding"
)

// PatternView represents one detected pattern for API responses.
type PatternView struct {
	PatternType string  `json:"pattern_type" xml:"patternType"`
	Risk        string  `json:"risk" xml:"risk"`
	Confidence  float64 `json:"confidence" xml:"confidence"`
	Start       int     `json:"start" xml:"start"`
	End         int     `json:"end" xml:"end"`
}

// ClassificationView represents a classification result for API responses.
type ClassificationView struct {
	XMLName       xml.Name      `json:"-" xml:"classification"`
	SuggestedTier string        `json:"suggested_tier" xml:"suggestedTier"`
	Confidence    float64       `json:"confidence" xml:"confidence"`
	Patterns      []PatternView `json:"patterns" xml:"patterns>pattern"`
}

// ResponseFlagsView represents the derived policy flags.
type ResponseFlagsView struct {
	ShouldDisplay      bool `json:"should_display" xml:"shouldDisplay"`
	AllowCopyPaste     bool `json:"allow_copy_paste" xml:"allowCopyPaste"`
	AllowGrounding     bool `json:"allow_grounding" xml:"allowGrounding"`
	RequiresEncryption bool `json:"requires_encryption" xml:"requiresEncryption"`
}

// SensitivityResponseView represents the full policy response for content.
type SensitivityResponseView struct {
	XMLName          xml.Name          `json:"-" xml:"response"`
	Label            *LabelView        `json:"label" xml:"label"`
	ProtectedContent string            `json:"protected_content" xml:"protectedContent"`
	Flags            ResponseFlagsView `json:"flags" xml:"flags"`
}

// ClassificationPresenter transforms classification results into API views.
type ClassificationPresenter struct {
	labelPresenter *LabelPresenter
}

// NewClassificationPresenter creates a classification presenter.
func NewClassificationPresenter() *ClassificationPresenter {
	return &ClassificationPresenter{labelPresenter: NewLabelPresenter()}
}

// FormatResult converts a classification result to its view model.
func (p *ClassificationPresenter) FormatResult(result *classification.ClassificationResult) *ClassificationView {
	patterns := make([]PatternView, 0, len(result.Patterns))
	for _, pattern := range result.Patterns {
		patterns = append(patterns, PatternView{
			PatternType: pattern.PatternType,
			Risk:        pattern.Risk.String(),
			Confidence:  pattern.Confidence,
			Start:       pattern.Start,
			End:         pattern.End,
		})
	}
	return &ClassificationView{
		SuggestedTier: result.SuggestedTier.String(),
		Confidence:    result.Confidence,
		Patterns:      patterns,
	}
}

// FormatResponse converts a sensitivity label response to its view model.
// The original content is deliberately omitted: callers get the protected
// form only.
func (p *ClassificationPresenter) FormatResponse(resp *grounding.SensitivityLabelResponse) *SensitivityResponseView {
	view := &SensitivityResponseView{
		ProtectedContent: resp.ProtectedContent,
		Flags: ResponseFlagsView{
			ShouldDisplay:      resp.Flags.ShouldDisplay,
			AllowCopyPaste:     resp.Flags.AllowCopyPaste,
			AllowGrounding:     resp.Flags.AllowGrounding,
			RequiresEncryption: resp.Flags.RequiresEncryption,
		},
	}
	if resp.Label != nil {
		view.Label = p.labelPresenter.FormatLabel(resp.Label)
	}
	if !resp.Flags.ShouldDisplay {
		view.ProtectedContent = ""
	}
	return view
}
