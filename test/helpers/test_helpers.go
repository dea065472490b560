package helpers

import (
	"context"
	"fmt"
	"time"

	"github.com/stretchr/testify/mock"

	"labelguard/domain/grounding"
	"labelguard/domain/labels"
	"labelguard/test/mocks"
)

// MockCollaborators holds the common mock set for service tests
type MockCollaborators struct {
	LabelRepo     *mocks.MockLabelRepository
	GroundingRepo *mocks.MockGroundingRepository
	Encryptor     *mocks.MockEncryptor
	Publisher     *mocks.MockPublisher
}

// NewMockCollaborators creates a fresh mock set
func NewMockCollaborators() *MockCollaborators {
	return &MockCollaborators{
		LabelRepo:     &mocks.MockLabelRepository{},
		GroundingRepo: &mocks.MockGroundingRepository{},
		Encryptor:     &mocks.MockEncryptor{},
		Publisher:     &mocks.MockPublisher{},
	}
}

// ExpectLabelByID sets up a successful label retrieval by id
func (m *MockCollaborators) ExpectLabelByID(id string, label *labels.Label) {
	m.LabelRepo.On("GetByID", mock.Anything, id).Return(label, nil)
}

// ExpectLabelsAtTier sets up a priority lookup returning the given labels
func (m *MockCollaborators) ExpectLabelsAtTier(tier labels.PriorityTier, ls []*labels.Label) {
	m.LabelRepo.On("GetByPriority", mock.Anything, tier).Return(ls, nil)
}

// ExpectNoEncryption marks every label as not requiring encryption
func (m *MockCollaborators) ExpectNoEncryption() {
	m.Encryptor.On("ShouldEncrypt", mock.Anything).Return(false)
}

// AssertAllExpectations verifies all mock expectations were met
func (m *MockCollaborators) AssertAllExpectations(t mock.TestingT) {
	m.LabelRepo.AssertExpectations(t)
	m.GroundingRepo.AssertExpectations(t)
	m.Encryptor.AssertExpectations(t)
	m.Publisher.AssertExpectations(t)
}

// TestData provides simple builders for test data
type TestData struct{}

// NewTestData creates a test data builder
func NewTestData() *TestData {
	return &TestData{}
}

// SimpleLabel creates a basic active label at the given tier
func (td *TestData) SimpleLabel(id string, tier labels.PriorityTier) *labels.Label {
	now := time.Now()
	return &labels.Label{
		ID:        id,
		Name:      "Label " + id,
		Priority:  tier,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// EncryptedLabel creates a label whose policy requires encryption
func (td *TestData) EncryptedLabel(id string, tier labels.PriorityTier) *labels.Label {
	label := td.SimpleLabel(id, tier)
	label.Protection.RequireEncryption = true
	label.Protection.PreventCopyPaste = true
	return label
}

// SimpleGroundingItem creates an unclassified grounding item
func (td *TestData) SimpleGroundingItem(id, content string) *grounding.GroundingData {
	now := time.Now()
	return &grounding.GroundingData{
		ID:        id,
		Content:   content,
		Source:    "test-source",
		DataType:  grounding.DataTypeText,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// LabelSet creates count labels with ascending ids at the given tier
func (td *TestData) LabelSet(tier labels.PriorityTier, count int) []*labels.Label {
	ls := make([]*labels.Label, 0, count)
	for i := 0; i < count; i++ {
		ls = append(ls, td.SimpleLabel(fmt.Sprintf("label-%d", i), tier))
	}
	return ls
}

// Helper for common test context
func TestContext() context.Context {
	return context.Background()
}

// Helper for time-based tests
func TestTime(daysAgo int) *time.Time {
	t := time.Now().AddDate(0, 0, -daysAgo)
	return &t
}
