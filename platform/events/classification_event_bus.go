package events

import (
	"sync"

	"labelguard/domain/events"
	"labelguard/logging"
)

// ClassificationEventBus provides type-safe event publishing and
// subscription for classification and label lifecycle events.
type ClassificationEventBus struct {
	mu     sync.RWMutex
	logger *logging.Logger

	// Event handler slices for each event type
	contentClassifiedHandlers []func(events.ContentClassifiedEvent)
	labelUpdatedHandlers      []func(events.LabelUpdatedEvent)
	labelDeletedHandlers      []func(events.LabelDeletedEvent)
	batchCompletedHandlers    []func(events.BatchCompletedEvent)
}

// NewClassificationEventBus creates a new typed classification event bus.
func NewClassificationEventBus() *ClassificationEventBus {
	return &ClassificationEventBus{
		logger:                    logging.Default().WithComponent("classification_event_bus"),
		contentClassifiedHandlers: make([]func(events.ContentClassifiedEvent), 0),
		labelUpdatedHandlers:      make([]func(events.LabelUpdatedEvent), 0),
		labelDeletedHandlers:      make([]func(events.LabelDeletedEvent), 0),
		batchCompletedHandlers:    make([]func(events.BatchCompletedEvent), 0),
	}
}

// Subscribe methods for each event type

func (bus *ClassificationEventBus) OnContentClassified(handler func(events.ContentClassifiedEvent)) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.contentClassifiedHandlers = append(bus.contentClassifiedHandlers, handler)
}

func (bus *ClassificationEventBus) OnLabelUpdated(handler func(events.LabelUpdatedEvent)) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.labelUpdatedHandlers = append(bus.labelUpdatedHandlers, handler)
}

func (bus *ClassificationEventBus) OnLabelDeleted(handler func(events.LabelDeletedEvent)) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.labelDeletedHandlers = append(bus.labelDeletedHandlers, handler)
}

func (bus *ClassificationEventBus) OnBatchCompleted(handler func(events.BatchCompletedEvent)) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.batchCompletedHandlers = append(bus.batchCompletedHandlers, handler)
}

// Publish methods for each event type

func (bus *ClassificationEventBus) PublishContentClassified(event events.ContentClassifiedEvent) {
	bus.mu.RLock()
	handlers := make([]func(events.ContentClassifiedEvent), len(bus.contentClassifiedHandlers))
	copy(handlers, bus.contentClassifiedHandlers)
	bus.mu.RUnlock()

	// Execute handlers asynchronously to avoid blocking the publisher
	for _, handler := range handlers {
		go func(h func(events.ContentClassifiedEvent)) {
			defer func() {
				if r := recover(); r != nil {
					bus.logger.Error("Event handler panicked in ContentClassified",
						"grounding_id", event.GroundingID,
						"panic", r)
				}
			}()
			h(event)
		}(handler)
	}
}

func (bus *ClassificationEventBus) PublishLabelUpdated(event events.LabelUpdatedEvent) {
	bus.mu.RLock()
	handlers := make([]func(events.LabelUpdatedEvent), len(bus.labelUpdatedHandlers))
	copy(handlers, bus.labelUpdatedHandlers)
	bus.mu.RUnlock()

	for _, handler := range handlers {
		go func(h func(events.LabelUpdatedEvent)) {
			defer func() {
				if r := recover(); r != nil {
					labelID := "unknown"
					if event.Label != nil {
						labelID = event.Label.ID
					}
					bus.logger.Error("Event handler panicked in LabelUpdated",
						"label_id", labelID,
						"panic", r)
				}
			}()
			h(event)
		}(handler)
	}
}

func (bus *ClassificationEventBus) PublishLabelDeleted(event events.LabelDeletedEvent) {
	bus.mu.RLock()
	handlers := make([]func(events.LabelDeletedEvent), len(bus.labelDeletedHandlers))
	copy(handlers, bus.labelDeletedHandlers)
	bus.mu.RUnlock()

	for _, handler := range handlers {
		go func(h func(events.LabelDeletedEvent)) {
			defer func() {
				if r := recover(); r != nil {
					bus.logger.Error("Event handler panicked in LabelDeleted",
						"label_id", event.LabelID,
						"panic", r)
				}
			}()
			h(event)
		}(handler)
	}
}

func (bus *ClassificationEventBus) PublishBatchCompleted(event events.BatchCompletedEvent) {
	bus.mu.RLock()
	handlers := make([]func(events.BatchCompletedEvent), len(bus.batchCompletedHandlers))
	copy(handlers, bus.batchCompletedHandlers)
	bus.mu.RUnlock()

	for _, handler := range handlers {
		go func(h func(events.BatchCompletedEvent)) {
			defer func() {
				if r := recover(); r != nil {
					bus.logger.Error("Event handler panicked in BatchCompleted",
						"job_id", event.JobID,
						"panic", r)
				}
			}()
			h(event)
		}(handler)
	}
}
