package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"labelguard/domain/classification"
	"labelguard/domain/contracts"
	"labelguard/domain/labels"
	"labelguard/test/helpers"
)

func newClassificationFixture() (ClassificationService, *helpers.MockCollaborators) {
	mocks := helpers.NewMockCollaborators()
	svc := NewClassificationService(mocks.LabelRepo, mocks.Encryptor, labels.NewValidator())
	return svc, mocks
}

func TestClassify_CleanContentIsPublic(t *testing.T) {
	svc, _ := newClassificationFixture()

	result, err := svc.Classify(helpers.TestContext(), "nothing sensitive here")

	require.NoError(t, err)
	assert.Equal(t, labels.TierPublic, result.SuggestedTier)
	assert.Equal(t, classification.CleanConfidence, result.Confidence)
	assert.Empty(t, result.Patterns)
}

func TestClassify_CriticalFindingSuggestsRestricted(t *testing.T) {
	svc, _ := newClassificationFixture()

	result, err := svc.Classify(helpers.TestContext(), "ssn on record: 123-45-6789")

	require.NoError(t, err)
	assert.Equal(t, labels.TierRestricted, result.SuggestedTier)
	assert.InDelta(t, 0.95, result.Confidence, 1e-9)
	assert.NotEmpty(t, result.Patterns)
	assert.True(t, result.RecommendedProtection.RequireEncryption)
	assert.True(t, result.RecommendedProtection.PreventGrounding)
}

func TestClassify_EmptyContentIsNotAnError(t *testing.T) {
	svc, _ := newClassificationFixture()

	result, err := svc.Classify(helpers.TestContext(), "")

	require.NoError(t, err)
	assert.Equal(t, labels.TierPublic, result.SuggestedTier)
	assert.Empty(t, result.Patterns)
}

func TestResolveLabel_PrefersStoredLabelAtTier(t *testing.T) {
	svc, mocks := newClassificationFixture()
	data := helpers.NewTestData()
	stored := data.SimpleLabel("restricted-default", labels.TierRestricted)
	mocks.ExpectLabelsAtTier(labels.TierRestricted, []*labels.Label{stored})

	resolved := svc.ResolveLabel(helpers.TestContext(), labels.TierRestricted)

	assert.Same(t, stored, resolved)
	mocks.LabelRepo.AssertExpectations(t)
}

func TestResolveLabel_FallsBackToInternalByName(t *testing.T) {
	svc, mocks := newClassificationFixture()
	data := helpers.NewTestData()
	internal := data.SimpleLabel("internal-stored", labels.TierInternal)

	mocks.LabelRepo.On("GetByPriority", mock.Anything, labels.TierConfidential).
		Return(nil, contracts.NewLabelNotFound("confidential"))
	mocks.LabelRepo.On("GetByName", mock.Anything, labels.DefaultInternalName).
		Return(internal, nil)

	resolved := svc.ResolveLabel(helpers.TestContext(), labels.TierConfidential)

	assert.Same(t, internal, resolved)
}

func TestResolveLabel_SynthesizesDefaultWhenStoreIsEmpty(t *testing.T) {
	svc, mocks := newClassificationFixture()

	mocks.LabelRepo.On("GetByPriority", mock.Anything, mock.Anything).
		Return(nil, contracts.NewLabelNotFound("tier"))
	mocks.LabelRepo.On("GetByName", mock.Anything, labels.DefaultInternalName).
		Return(nil, contracts.NewLabelNotFound(labels.DefaultInternalName))

	resolved := svc.ResolveLabel(helpers.TestContext(), labels.TierHighlyConfidential)

	require.NotNil(t, resolved)
	assert.Equal(t, labels.DefaultInternalName, resolved.Name)
	assert.Equal(t, labels.TierInternal, resolved.Priority)
}

func TestClassifyAndLabel_NoEncryptionBelowConfidential(t *testing.T) {
	svc, mocks := newClassificationFixture()
	data := helpers.NewTestData()
	internal := data.SimpleLabel("general-internal", labels.TierInternal)
	mocks.ExpectLabelsAtTier(labels.TierInternal, []*labels.Label{internal})

	// "internal use only" is a Low finding, suggesting Internal.
	resp, err := svc.ClassifyAndLabel(helpers.TestContext(), "internal use only")

	require.NoError(t, err)
	assert.Same(t, internal, resp.Label)
	assert.Equal(t, "internal use only", resp.ProtectedContent)
	assert.False(t, resp.Flags.RequiresEncryption)
	mocks.Encryptor.AssertNotCalled(t, "Encrypt", mock.Anything, mock.Anything)
}

func TestClassifyAndLabel_EncryptsWhenPolicyRequires(t *testing.T) {
	svc, mocks := newClassificationFixture()
	data := helpers.NewTestData()
	restricted := data.EncryptedLabel("pii-restricted", labels.TierRestricted)
	content := "ssn 123-45-6789"
	envelope := "ENCRYPTED:pii-restricted:payload"

	mocks.ExpectLabelsAtTier(labels.TierRestricted, []*labels.Label{restricted})
	mocks.Encryptor.On("Encrypt", content, restricted).Return(envelope, nil)

	resp, err := svc.ClassifyAndLabel(helpers.TestContext(), content)

	require.NoError(t, err)
	assert.True(t, resp.Flags.RequiresEncryption)
	assert.Equal(t, envelope, resp.ProtectedContent)
	assert.Equal(t, content, resp.OriginalContent)
	mocks.Encryptor.AssertExpectations(t)
}

func TestApplyLabel_RejectsInvalidLabel(t *testing.T) {
	svc, _ := newClassificationFixture()
	bad := &labels.Label{ID: "Bad ID!", Name: "Broken", Priority: labels.TierInternal}

	_, err := svc.ApplyLabel(helpers.TestContext(), "content", bad)

	require.Error(t, err)
	assert.True(t, contracts.IsKind(err, contracts.KindInvalidLabel))
}

func TestApplyLabel_DerivesFlagsFromSuppliedLabel(t *testing.T) {
	svc, mocks := newClassificationFixture()
	data := helpers.NewTestData()
	label := data.SimpleLabel("plain-internal", labels.TierInternal)
	label.Protection.PreventCopyPaste = true

	resp, err := svc.ApplyLabel(helpers.TestContext(), "content", label)

	require.NoError(t, err)
	assert.False(t, resp.Flags.AllowCopyPaste)
	assert.True(t, resp.Flags.ShouldDisplay)
	mocks.Encryptor.AssertNotCalled(t, "Encrypt", mock.Anything, mock.Anything)
}

func TestMergeEffective_DefaultsWhenNothingValid(t *testing.T) {
	svc, _ := newClassificationFixture()

	merged := svc.MergeEffective(nil)

	require.NotNil(t, merged)
	assert.Equal(t, labels.DefaultInternalName, merged.Name)
}

func TestMergeEffective_HighestTierWins(t *testing.T) {
	svc, _ := newClassificationFixture()
	data := helpers.NewTestData()
	low := data.SimpleLabel("low-internal", labels.TierInternal)
	high := data.SimpleLabel("high-restricted", labels.TierRestricted)

	merged := svc.MergeEffective([]*labels.Label{low, high})

	assert.Same(t, high, merged)
}
