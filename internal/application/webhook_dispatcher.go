package application

import (
	"context"

	"github.com/rs/zerolog"

	"shopsync-ingestion-layer/internal/domain"
	"shopsync-ingestion-layer/internal/ports"
)

// WebhookHandler processes events for the topics it declares.
type WebhookHandler interface {
	// CanHandle returns true if this handler can process the given topic
	CanHandle(topic string) bool

	// Handle processes a webhook event
	Handle(ctx context.Context, event *domain.WebhookEvent) error
}

// WebhookDispatcher routes verified webhook events to their handlers. Every
// event is appended to the audit log before dispatch, whether or not a
// handler exists for its topic.
type WebhookDispatcher struct {
	handlers []WebhookHandler
	eventLog ports.EventLogRepository
	metrics  ports.MetricsRecorder
	logger   zerolog.Logger
}

// NewWebhookDispatcher creates a new webhook dispatcher
func NewWebhookDispatcher(eventLog ports.EventLogRepository, metrics ports.MetricsRecorder, logger zerolog.Logger) *WebhookDispatcher {
	return &WebhookDispatcher{
		eventLog: eventLog,
		metrics:  metrics,
		logger:   logger,
	}
}

// Register adds a handler to the dispatch chain.
func (d *WebhookDispatcher) Register(handler WebhookHandler) {
	d.handlers = append(d.handlers, handler)
}

// Dispatch logs the event and hands it to the first handler claiming its
// topic. Events with an unclaimed topic are logged and acknowledged.
func (d *WebhookDispatcher) Dispatch(ctx context.Context, event *domain.WebhookEvent) error {
	if d.eventLog != nil {
		if err := d.eventLog.LogWebhook(ctx, event); err != nil {
			// delivery processing continues; the audit trail is best effort
			d.logger.Error().Err(err).Str("topic", event.Topic).Msg("Failed to log webhook event")
		}
	}

	if d.metrics != nil {
		d.metrics.RecordWebhook(event.Topic, event.Verified)
	}

	for _, handler := range d.handlers {
		if !handler.CanHandle(event.Topic) {
			continue
		}
		if err := handler.Handle(ctx, event); err != nil {
			d.logger.Error().Err(err).
				Str("topic", event.Topic).
				Str("tenantId", event.TenantID).
				Msg("Webhook handler failed")
			return err
		}
		return nil
	}

	d.logger.Warn().Str("topic", event.Topic).Msg("No handler registered for webhook topic")
	return nil
}
