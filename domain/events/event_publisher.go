package events

// Publisher defines the interface for publishing classification and label
// lifecycle events.
type Publisher interface {
	PublishContentClassified(event ContentClassifiedEvent)
	PublishLabelUpdated(event LabelUpdatedEvent)
	PublishLabelDeleted(event LabelDeletedEvent)
	PublishBatchCompleted(event BatchCompletedEvent)
}
