package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"labelguard/domain/contracts"
	"labelguard/domain/events"
	"labelguard/domain/grounding"
	"labelguard/domain/labels"
	"labelguard/logging"
)

// GroundingService manages grounding data items: ingestion with automatic
// classification, reclassification under the override rule, and producing
// policy responses for stored items.
type GroundingService struct {
	groundingRepo  contracts.GroundingRepository
	labelRepo      contracts.LabelRepository
	classification ClassificationService
	encryptor      contracts.Encryptor
	publisher      events.Publisher
	logger         *logging.Logger
}

// NewGroundingService creates a grounding service.
func NewGroundingService(
	groundingRepo contracts.GroundingRepository,
	labelRepo contracts.LabelRepository,
	classification ClassificationService,
	encryptor contracts.Encryptor,
	publisher events.Publisher,
) *GroundingService {
	return &GroundingService{
		groundingRepo:  groundingRepo,
		labelRepo:      labelRepo,
		classification: classification,
		encryptor:      encryptor,
		publisher:      publisher,
		logger:         logging.Default().WithComponent("grounding_service"),
	}
}

// IngestContent stores new grounding content, classifying it and attaching
// the resolved label.
func (s *GroundingService) IngestContent(ctx context.Context, content, source string, dataType grounding.DataType) (*grounding.GroundingData, error) {
	result, err := s.classification.Classify(ctx, content)
	if err != nil {
		return nil, err
	}

	label := s.classification.ResolveLabel(ctx, result.SuggestedTier)
	now := time.Now().UTC()

	item := &grounding.GroundingData{
		ID:        uuid.NewString(),
		Content:   content,
		Source:    source,
		DataType:  dataType,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if n := len(result.Patterns); n > 0 {
		item.RecordPatternCount(n)
	}
	if err := item.AttachLabel(label, now); err != nil {
		// Unreachable for a first classification; kept for symmetry.
		return nil, contracts.NewClassificationFailure(label.ID, err)
	}

	if err := s.groundingRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Classification("Grounding content classified", item.ID)
	s.publisher.PublishContentClassified(events.ContentClassifiedEvent{
		GroundingID: item.ID,
		LabelID:     label.ID,
		Tier:        label.Priority,
		Confidence:  result.Confidence,
		Timestamp:   now,
	})
	return item, nil
}

// Reclassify attaches the given stored label to an existing grounding item.
// The override rule applies: the new label's tier must be at least the
// existing tier, otherwise the request is rejected and the original label
// retained.
func (s *GroundingService) Reclassify(ctx context.Context, groundingID, labelID string) (*grounding.GroundingData, error) {
	item, err := s.groundingRepo.GetByID(ctx, groundingID)
	if err != nil {
		return nil, err
	}
	label, err := s.labelRepo.GetByID(ctx, labelID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := item.AttachLabel(label, now); err != nil {
		if errors.Is(err, grounding.ErrLowerTierOverride) {
			return nil, contracts.NewInvalidLabel(labelID, err.Error())
		}
		return nil, err
	}

	if err := s.groundingRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Classification("Grounding content reclassified", item.ID)
	s.publisher.PublishContentClassified(events.ContentClassifiedEvent{
		GroundingID: item.ID,
		LabelID:     label.ID,
		Tier:        label.Priority,
		Timestamp:   now,
	})
	return item, nil
}

// GetItem retrieves a grounding item by id.
func (s *GroundingService) GetItem(ctx context.Context, id string) (*grounding.GroundingData, error) {
	return s.groundingRepo.GetByID(ctx, id)
}

// ListItems retrieves every stored grounding item.
func (s *GroundingService) ListItems(ctx context.Context) ([]*grounding.GroundingData, error) {
	return s.groundingRepo.ListAll(ctx)
}

// DeleteItem removes a grounding item.
func (s *GroundingService) DeleteItem(ctx context.Context, id string) (bool, error) {
	return s.groundingRepo.Delete(ctx, id)
}

// BuildResponse produces the policy response for a stored item, applying
// the allow-list check for the requesting user. Unclassified items are
// governed by the synthesized default label.
func (s *GroundingService) BuildResponse(ctx context.Context, id, user string, groups []string) (*grounding.SensitivityLabelResponse, error) {
	item, err := s.groundingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	label := item.Label
	if label == nil {
		label = labels.DefaultInternal()
	}

	resp, err := s.classification.ApplyLabel(ctx, item.Content, label)
	if err != nil {
		return nil, err
	}

	// Allow-list failures suppress display but keep the rest of the policy
	// flags intact so callers can still see what governs the item.
	if user != "" && !label.Protection.AllowsUser(user, groups) {
		resp.Flags.ShouldDisplay = false
		resp.ProtectedContent = ""
		s.logger.Security("Allow-list check failed",
			"grounding_id", item.ID, "label_id", label.ID, "user", user)
	}
	return resp, nil
}

// MergeEffectiveLabel computes the single label governing a combined
// response over the given grounding items.
func (s *GroundingService) MergeEffectiveLabel(ctx context.Context, ids []string) (*labels.Label, error) {
	candidates := make([]*labels.Label, 0, len(ids))
	for _, id := range ids {
		item, err := s.groundingRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if item.Label != nil {
			candidates = append(candidates, item.Label)
		}
	}
	return s.classification.MergeEffective(candidates), nil
}

// Decrypt recovers protected content for a grounding item using its own
// label. Envelope/label mismatches surface as EncryptionFailure.
func (s *GroundingService) Decrypt(ctx context.Context, id, ciphertext string) (string, error) {
	item, err := s.groundingRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if item.Label == nil {
		return "", contracts.NewEncryptionFailure("unknown", "decrypt",
			errors.New("grounding item has no label"))
	}
	return s.encryptor.Decrypt(ciphertext, item.Label)
}
