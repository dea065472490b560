package events

import (
	"time"

	"labelguard/domain/labels"
)

// ContentClassifiedEvent is published when a grounding item receives a
// label, whether from pattern-based classification or an explicit attach.
type ContentClassifiedEvent struct {
	GroundingID string
	LabelID     string
	Tier        labels.PriorityTier
	Confidence  float64
	Timestamp   time.Time
}

// LabelUpdatedEvent is published when a stored label is created or updated.
type LabelUpdatedEvent struct {
	Label     *labels.Label
	Timestamp time.Time
}

// LabelDeletedEvent is published when a stored label is removed.
type LabelDeletedEvent struct {
	LabelID   string
	Timestamp time.Time
}

// BatchCompletedEvent is published when a batch classification job finishes.
type BatchCompletedEvent struct {
	JobID       string
	ItemsTotal  int
	ItemsFailed int
	Duration    time.Duration
	Timestamp   time.Time
}
