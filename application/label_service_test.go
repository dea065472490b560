package application

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"labelguard/domain/contracts"
	"labelguard/domain/events"
	"labelguard/domain/labels"
	"labelguard/test/helpers"
)

func newLabelServiceFixture() (*LabelService, *helpers.MockCollaborators) {
	mocks := helpers.NewMockCollaborators()
	svc := NewLabelService(mocks.LabelRepo, labels.NewValidator(), mocks.Publisher)
	return svc, mocks
}

func TestCreateLabel_GeneratesIDFromName(t *testing.T) {
	svc, mocks := newLabelServiceFixture()

	mocks.LabelRepo.On("GetAll", mock.Anything).Return([]*labels.Label{}, nil)
	mocks.LabelRepo.On("Create", mock.Anything, mock.MatchedBy(func(l *labels.Label) bool {
		return strings.HasPrefix(l.ID, "quarterly-finance-")
	})).Return(&labels.Label{ID: "quarterly-finance-abc12345", Name: "Quarterly Finance", Priority: labels.TierConfidential, Active: true}, nil)
	mocks.Publisher.On("PublishLabelUpdated", mock.Anything).Return()

	created, err := svc.CreateLabel(helpers.TestContext(), &labels.Label{
		Name:     "Quarterly Finance",
		Priority: labels.TierConfidential,
		Active:   true,
	})

	require.NoError(t, err)
	assert.Equal(t, "quarterly-finance-abc12345", created.ID)
	mocks.Publisher.AssertCalled(t, "PublishLabelUpdated", mock.Anything)
}

func TestCreateLabel_RejectsDuplicateName(t *testing.T) {
	svc, mocks := newLabelServiceFixture()
	data := helpers.NewTestData()

	existing := data.SimpleLabel("finance-1", labels.TierInternal)
	existing.Name = "Finance"
	mocks.LabelRepo.On("GetAll", mock.Anything).Return([]*labels.Label{existing}, nil)

	_, err := svc.CreateLabel(helpers.TestContext(), &labels.Label{
		ID:       "finance-2",
		Name:     "finance",
		Priority: labels.TierInternal,
		Active:   true,
	})

	require.Error(t, err)
	assert.True(t, contracts.IsKind(err, contracts.KindInvalidLabel))
	mocks.LabelRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	mocks.Publisher.AssertNotCalled(t, "PublishLabelUpdated", mock.Anything)
}

func TestUpdateLabel_AllowsKeepingOwnName(t *testing.T) {
	svc, mocks := newLabelServiceFixture()
	data := helpers.NewTestData()

	stored := data.SimpleLabel("finance-1", labels.TierInternal)
	stored.Name = "Finance"
	mocks.LabelRepo.On("GetAll", mock.Anything).Return([]*labels.Label{stored}, nil)

	updated := stored.Clone()
	updated.Priority = labels.TierConfidential
	mocks.LabelRepo.On("Update", mock.Anything, updated).Return(updated, nil)
	mocks.Publisher.On("PublishLabelUpdated", mock.Anything).Return()

	got, err := svc.UpdateLabel(helpers.TestContext(), updated)

	require.NoError(t, err)
	assert.Equal(t, labels.TierConfidential, got.Priority)
}

func TestDeleteLabel_PublishesOnlyWhenDeleted(t *testing.T) {
	svc, mocks := newLabelServiceFixture()

	mocks.LabelRepo.On("Delete", mock.Anything, "gone").Return(true, nil)
	mocks.LabelRepo.On("Delete", mock.Anything, "missing").Return(false, nil)
	mocks.Publisher.On("PublishLabelDeleted", mock.MatchedBy(func(e events.LabelDeletedEvent) bool {
		return e.LabelID == "gone"
	})).Return().Once()

	deleted, err := svc.DeleteLabel(helpers.TestContext(), "gone")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = svc.DeleteLabel(helpers.TestContext(), "missing")
	require.NoError(t, err)
	assert.False(t, deleted)

	mocks.Publisher.AssertExpectations(t)
}

func TestImportLabels_CreatesNewAndUpdatesExisting(t *testing.T) {
	svc, mocks := newLabelServiceFixture()
	data := helpers.NewTestData()

	existing := data.SimpleLabel("known", labels.TierInternal)
	existing.Name = "Known"

	mocks.LabelRepo.On("GetByID", mock.Anything, "known").Return(existing, nil)
	mocks.LabelRepo.On("GetByID", mock.Anything, "fresh").
		Return(nil, contracts.NewLabelNotFound("fresh"))
	mocks.LabelRepo.On("GetAll", mock.Anything).Return([]*labels.Label{existing}, nil)
	mocks.LabelRepo.On("Update", mock.Anything, mock.MatchedBy(func(l *labels.Label) bool {
		return l.ID == "known"
	})).Return(existing, nil)
	mocks.LabelRepo.On("Create", mock.Anything, mock.MatchedBy(func(l *labels.Label) bool {
		return l.ID == "fresh"
	})).Return(data.SimpleLabel("fresh", labels.TierConfidential), nil)
	mocks.Publisher.On("PublishLabelUpdated", mock.Anything).Return()

	doc := []byte(`[
		{"id": "known", "name": "Known", "priority": "internal", "active": true},
		{"id": "fresh", "name": "Fresh", "priority": "confidential", "active": true}
	]`)

	count, err := svc.ImportLabels(helpers.TestContext(), doc)

	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestExportLabels_SerializesCatalogue(t *testing.T) {
	svc, mocks := newLabelServiceFixture()
	data := helpers.NewTestData()

	mocks.LabelRepo.On("GetAll", mock.Anything).
		Return([]*labels.Label{data.SimpleLabel("only", labels.TierPublic)}, nil)

	out, err := svc.ExportLabels(helpers.TestContext())

	require.NoError(t, err)
	assert.Contains(t, string(out), `"only"`)
}

func TestGenerateLabelID_SlugRules(t *testing.T) {
	id := generateLabelID("  My Fancy Label! ")
	assert.True(t, strings.HasPrefix(id, "my-fancy-label-"))
	assert.Regexp(t, `^[a-z0-9-]+$`, id)

	fallback := generateLabelID("!!!")
	assert.True(t, strings.HasPrefix(fallback, "label-"))
}
