package events

import (
	"labelguard/domain/events"
	"labelguard/logging"
)

// AuditLogEventHandlers subscribes to classification events and writes them
// to the security log, giving operators a trace of every label decision.
type AuditLogEventHandlers struct {
	logger *logging.Logger
}

// NewAuditLogEventHandlers creates the audit log subscriber.
func NewAuditLogEventHandlers() *AuditLogEventHandlers {
	return &AuditLogEventHandlers{
		logger: logging.Default().WithComponent("audit_log_events"),
	}
}

// RegisterHandlers registers all audit log handlers with the event bus.
func (h *AuditLogEventHandlers) RegisterHandlers(eventBus *ClassificationEventBus) {
	eventBus.OnContentClassified(h.handleContentClassified)
	eventBus.OnLabelUpdated(h.handleLabelUpdated)
	eventBus.OnLabelDeleted(h.handleLabelDeleted)
	eventBus.OnBatchCompleted(h.handleBatchCompleted)
}

func (h *AuditLogEventHandlers) handleContentClassified(event events.ContentClassifiedEvent) {
	h.logger.Security("Content classified",
		"grounding_id", event.GroundingID,
		"label_id", event.LabelID,
		"tier", event.Tier.String(),
		"confidence", event.Confidence)
}

func (h *AuditLogEventHandlers) handleLabelUpdated(event events.LabelUpdatedEvent) {
	labelID := "unknown"
	tier := ""
	if event.Label != nil {
		labelID = event.Label.ID
		tier = event.Label.Priority.String()
	}
	h.logger.Security("Label updated", "label_id", labelID, "tier", tier)
}

func (h *AuditLogEventHandlers) handleLabelDeleted(event events.LabelDeletedEvent) {
	h.logger.Security("Label deleted", "label_id", event.LabelID)
}

func (h *AuditLogEventHandlers) handleBatchCompleted(event events.BatchCompletedEvent) {
	h.logger.Security("Batch classification completed",
		"job_id", event.JobID,
		"items_total", event.ItemsTotal,
		"items_failed", event.ItemsFailed,
		"duration_ms", event.Duration.Milliseconds())
}
