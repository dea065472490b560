package application

import (
	"context"
	"fmt"
	"time"

	"labelguard/domain/classification"
	"labelguard/domain/contracts"
	"labelguard/domain/grounding"
	"labelguard/domain/labels"
	"labelguard/domain/policy"
	"labelguard/logging"
)

// ClassificationService defines the content classification operations used
// by handler and job layers.
type ClassificationService interface {
	// Classify runs pattern detection and risk aggregation over raw content.
	Classify(ctx context.Context, content string) (*classification.ClassificationResult, error)

	// ClassifyAndLabel classifies content and resolves the suggested tier to
	// a concrete label, producing the full policy response.
	ClassifyAndLabel(ctx context.Context, content string) (*grounding.SensitivityLabelResponse, error)

	// ApplyLabel validates a caller-supplied label and produces the policy
	// response for content under it. Invalid labels are rejected, never
	// silently downgraded.
	ApplyLabel(ctx context.Context, content string, label *labels.Label) (*grounding.SensitivityLabelResponse, error)

	// ResolveLabel maps a suggested tier to a stored label with fallbacks.
	// It never fails for missing configuration.
	ResolveLabel(ctx context.Context, tier labels.PriorityTier) *labels.Label

	// MergeEffective combines per-source labels into the single label
	// governing a combined response.
	MergeEffective(candidates []*labels.Label) *labels.Label
}

// ClassificationServiceImpl is the production implementation of
// ClassificationService.
type ClassificationServiceImpl struct {
	detector   *classification.Detector
	aggregator *classification.Aggregator
	enforcer   *policy.Enforcer
	validator  *labels.Validator
	merger     *labels.Merger
	labelRepo  contracts.LabelRepository
	encryptor  contracts.Encryptor
	logger     *logging.Logger
}

// NewClassificationService creates a classification service with its
// collaborators injected explicitly.
func NewClassificationService(
	labelRepo contracts.LabelRepository,
	encryptor contracts.Encryptor,
	validator *labels.Validator,
) ClassificationService {
	return &ClassificationServiceImpl{
		detector:   classification.NewDetector(),
		aggregator: classification.NewAggregator(),
		enforcer:   policy.NewEnforcer(),
		validator:  validator,
		merger:     labels.NewMerger(validator),
		labelRepo:  labelRepo,
		encryptor:  encryptor,
		logger:     logging.Default().WithComponent("classification_service"),
	}
}

// Classify runs the detector and aggregator over the content. Empty content
// is not an error: it yields no findings and the clean confidence.
func (s *ClassificationServiceImpl) Classify(ctx context.Context, content string) (result *classification.ClassificationResult, err error) {
	// Detection and aggregation are pure computations; a panic here is a
	// bug in the rule table and surfaces as a ClassificationFailure.
	defer func() {
		if r := recover(); r != nil {
			err = contracts.NewClassificationFailure("", fmt.Errorf("panic during classification: %v", r))
		}
	}()

	start := time.Now()
	patterns := s.detector.Detect(content)
	confidence, tier := s.aggregator.Aggregate(patterns)

	result = &classification.ClassificationResult{
		SuggestedTier:         tier,
		Confidence:            confidence,
		Patterns:              patterns,
		RecommendedProtection: classification.RecommendedProtection(tier),
	}

	s.logger.Performance("classify", time.Since(start))
	s.logger.Debug("Content classified",
		"patterns", len(patterns),
		"suggested_tier", tier.String(),
		"confidence", confidence)

	return result, nil
}

// ClassifyAndLabel classifies content, resolves the label, and derives the
// policy response.
func (s *ClassificationServiceImpl) ClassifyAndLabel(ctx context.Context, content string) (*grounding.SensitivityLabelResponse, error) {
	result, err := s.Classify(ctx, content)
	if err != nil {
		return nil, err
	}

	label := s.ResolveLabel(ctx, result.SuggestedTier)
	result.SuggestedLabelID = label.ID

	return s.buildResponse(content, label)
}

// ApplyLabel uses a caller-supplied label after validating it.
func (s *ClassificationServiceImpl) ApplyLabel(ctx context.Context, content string, label *labels.Label) (*grounding.SensitivityLabelResponse, error) {
	if detail := s.validator.ValidateDetailed(label, nil); !detail.Valid() {
		id := ""
		if label != nil {
			id = label.ID
		}
		return nil, contracts.NewInvalidLabel(id, detail.Summary())
	}
	return s.buildResponse(content, label)
}

// ResolveLabel looks up active labels at the tier, falling back to the
// store's Internal label, then to the synthesized default. Classification
// must never fail because labels are missing from configuration.
func (s *ClassificationServiceImpl) ResolveLabel(ctx context.Context, tier labels.PriorityTier) *labels.Label {
	candidates, err := s.labelRepo.GetByPriority(ctx, tier)
	if err == nil && len(candidates) > 0 {
		return candidates[0]
	}
	if err != nil {
		s.logger.Warn("Label lookup by priority failed, falling back",
			"tier", tier.String(), "error", err)
	}

	internal, err := s.labelRepo.GetByName(ctx, labels.DefaultInternalName)
	if err == nil {
		return internal
	}

	return labels.DefaultInternal()
}

// MergeEffective delegates to the label merger.
func (s *ClassificationServiceImpl) MergeEffective(candidates []*labels.Label) *labels.Label {
	return s.merger.MergeHighestPriority(candidates)
}

// buildResponse derives the policy flags and, when required, wraps the
// content in the encryption envelope.
func (s *ClassificationServiceImpl) buildResponse(content string, label *labels.Label) (*grounding.SensitivityLabelResponse, error) {
	flags := s.enforcer.DeriveFlags(label)

	protected := content
	if flags.RequiresEncryption {
		encrypted, err := s.encryptor.Encrypt(content, label)
		if err != nil {
			return nil, err
		}
		protected = encrypted
	}

	s.logger.Policy("Policy flags derived",
		"label_id", label.ID,
		"tier", label.Priority.String(),
		"requires_encryption", flags.RequiresEncryption,
		"allow_grounding", flags.AllowGrounding)

	return &grounding.SensitivityLabelResponse{
		Label:            label,
		OriginalContent:  content,
		ProtectedContent: protected,
		Flags:            flags,
	}, nil
}
