package webhook_handlers

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"shopsync-ingestion-layer/internal/domain"
	"shopsync-ingestion-layer/internal/ports"
)

// EventHandler records cart and checkout notifications in the event log.
// These topics carry no entity to persist; the payload is stored opaque.
type EventHandler struct {
	eventLog ports.EventLogRepository
	logger   zerolog.Logger
}

// NewEventHandler creates a new behavioral event handler
func NewEventHandler(eventLog ports.EventLogRepository, logger zerolog.Logger) *EventHandler {
	return &EventHandler{
		eventLog: eventLog,
		logger:   logger,
	}
}

// CanHandle returns true if this handler can process the given topic
func (h *EventHandler) CanHandle(topic string) bool {
	return topic == domain.TopicCartAbandoned ||
		topic == domain.TopicCheckoutCreated
}

// Handle appends the notification to the custom event log.
func (h *EventHandler) Handle(ctx context.Context, event *domain.WebhookEvent) error {
	eventType := domain.EventTypeCartAbandoned
	if event.Topic == domain.TopicCheckoutCreated {
		eventType = domain.EventTypeCheckoutStarted
	}

	// The customer reference is optional on these payloads.
	var envelope struct {
		CustomerID int64 `json:"customer_id"`
		Customer   *struct {
			ID int64 `json:"id"`
		} `json:"customer"`
	}
	_ = json.Unmarshal(event.Payload, &envelope)
	customerID := envelope.CustomerID
	if customerID == 0 && envelope.Customer != nil {
		customerID = envelope.Customer.ID
	}

	custom := &domain.CustomEvent{
		EventType:  eventType,
		TenantID:   event.TenantID,
		CustomerID: customerID,
		Payload:    event.Payload,
		ReceivedAt: time.Now().UTC(),
	}
	if err := h.eventLog.LogCustomEvent(ctx, custom); err != nil {
		return &domain.PersistenceError{Op: "log custom event", Err: err}
	}

	h.logger.Info().
		Str("topic", event.Topic).
		Str("tenantId", event.TenantID).
		Str("eventType", eventType).
		Int64("customerId", customerID).
		Msg("Behavioral event recorded")
	return nil
}
