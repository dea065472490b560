package mocks

import (
	"github.com/stretchr/testify/mock"

	"labelguard/domain/events"
)

// MockPublisher is a mock implementation of events.Publisher for testing
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishContentClassified(event events.ContentClassifiedEvent) {
	m.Called(event)
}

func (m *MockPublisher) PublishLabelUpdated(event events.LabelUpdatedEvent) {
	m.Called(event)
}

func (m *MockPublisher) PublishLabelDeleted(event events.LabelDeletedEvent) {
	m.Called(event)
}

func (m *MockPublisher) PublishBatchCompleted(event events.BatchCompletedEvent) {
	m.Called(event)
}
