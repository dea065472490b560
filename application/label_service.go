package application

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"labelguard/domain/contracts"
	"labelguard/domain/events"
	"labelguard/domain/labels"
	"labelguard/infrastructure/serialization"
	"labelguard/logging"
)

// LabelService manages the stored label catalogue: CRUD, validation, and
// JSON import/export.
type LabelService struct {
	labelRepo  contracts.LabelRepository
	validator  *labels.Validator
	serializer *serialization.LabelConfigSerializer
	publisher  events.Publisher
	logger     *logging.Logger
}

// NewLabelService creates a label service.
func NewLabelService(
	labelRepo contracts.LabelRepository,
	validator *labels.Validator,
	publisher events.Publisher,
) *LabelService {
	return &LabelService{
		labelRepo:  labelRepo,
		validator:  validator,
		serializer: serialization.NewLabelConfigSerializer(),
		publisher:  publisher,
		logger:     logging.Default().WithComponent("label_service"),
	}
}

// GetLabel retrieves a label by id.
func (s *LabelService) GetLabel(ctx context.Context, id string) (*labels.Label, error) {
	return s.labelRepo.GetByID(ctx, id)
}

// ListLabels retrieves every stored label.
func (s *LabelService) ListLabels(ctx context.Context) ([]*labels.Label, error) {
	return s.labelRepo.GetAll(ctx)
}

// CreateLabel validates and persists a new label. A missing id is generated
// from the name.
func (s *LabelService) CreateLabel(ctx context.Context, label *labels.Label) (*labels.Label, error) {
	if label.ID == "" {
		label.ID = generateLabelID(label.Name)
	}

	otherNames, err := s.storedNamesExcept(ctx, label.ID)
	if err != nil {
		return nil, err
	}
	if detail := s.validator.ValidateDetailed(label, otherNames); !detail.Valid() {
		return nil, contracts.NewInvalidLabel(label.ID, detail.Summary())
	}

	created, err := s.labelRepo.Create(ctx, label)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Label created", "label_id", created.ID, "tier", created.Priority.String())
	s.publisher.PublishLabelUpdated(events.LabelUpdatedEvent{Label: created, Timestamp: time.Now()})
	return created, nil
}

// UpdateLabel validates and persists changes to an existing label.
func (s *LabelService) UpdateLabel(ctx context.Context, label *labels.Label) (*labels.Label, error) {
	otherNames, err := s.storedNamesExcept(ctx, label.ID)
	if err != nil {
		return nil, err
	}
	if detail := s.validator.ValidateDetailed(label, otherNames); !detail.Valid() {
		return nil, contracts.NewInvalidLabel(label.ID, detail.Summary())
	}

	updated, err := s.labelRepo.Update(ctx, label)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Label updated", "label_id", updated.ID, "tier", updated.Priority.String())
	s.publisher.PublishLabelUpdated(events.LabelUpdatedEvent{Label: updated, Timestamp: time.Now()})
	return updated, nil
}

// DeleteLabel removes a label by id.
func (s *LabelService) DeleteLabel(ctx context.Context, id string) (bool, error) {
	deleted, err := s.labelRepo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.logger.Info("Label deleted", "label_id", id)
		s.publisher.PublishLabelDeleted(events.LabelDeletedEvent{LabelID: id, Timestamp: time.Now()})
	}
	return deleted, nil
}

// ExportLabels serializes the full catalogue to the JSON boundary format.
func (s *LabelService) ExportLabels(ctx context.Context) ([]byte, error) {
	ls, err := s.labelRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.serializer.Serialize(ls)
}

// ImportLabels loads labels from the JSON boundary format, creating new ids
// and updating existing ones. Returns the number imported.
func (s *LabelService) ImportLabels(ctx context.Context, data []byte) (int, error) {
	ls, err := s.serializer.Deserialize(data)
	if err != nil {
		return 0, err
	}

	imported := 0
	for _, label := range ls {
		if _, err := s.labelRepo.GetByID(ctx, label.ID); err == nil {
			if _, err := s.UpdateLabel(ctx, label); err != nil {
				return imported, err
			}
		} else {
			if _, err := s.CreateLabel(ctx, label); err != nil {
				return imported, err
			}
		}
		imported++
	}

	s.logger.Info("Labels imported", "count", imported)
	return imported, nil
}

// storedNamesExcept collects names of stored labels other than the given
// id, for the uniqueness check.
func (s *LabelService) storedNamesExcept(ctx context.Context, id string) ([]string, error) {
	stored, err := s.labelRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, l := range stored {
		if l.ID != id && l.Active {
			names = append(names, l.Name)
		}
	}
	return names, nil
}

// generateLabelID derives a store id from the label name, suffixed for
// uniqueness.
func generateLabelID(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ', r == '_', r == '-':
			return '-'
		default:
			return -1
		}
	}, slug)
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "label"
	}
	return slug + "-" + uuid.NewString()[:8]
}
