package webhook_handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"shopsync-ingestion-layer/internal/domain"
	"shopsync-ingestion-layer/internal/ports"
)

// OrderHandler handles order-related webhook events
type OrderHandler struct {
	orders ports.OrderRepository
	logger zerolog.Logger
}

// NewOrderHandler creates a new order webhook handler
func NewOrderHandler(orders ports.OrderRepository, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		orders: orders,
		logger: logger,
	}
}

// CanHandle returns true if this handler can process the given topic
func (h *OrderHandler) CanHandle(topic string) bool {
	return topic == domain.TopicOrderPaid
}

// Handle upserts the order carried by the event payload.
func (h *OrderHandler) Handle(ctx context.Context, event *domain.WebhookEvent) error {
	var raw domain.UpstreamOrder
	if err := json.Unmarshal(event.Payload, &raw); err != nil {
		return fmt.Errorf("failed to parse order webhook payload: %w", err)
	}

	order, err := domain.MapOrder(event.TenantID, raw)
	if err != nil {
		return err
	}

	if err := h.orders.Upsert(ctx, order); err != nil {
		return &domain.PersistenceError{Op: "upsert order from webhook", Err: err}
	}

	h.logger.Info().
		Str("topic", event.Topic).
		Str("tenantId", event.TenantID).
		Int64("orderId", order.ID).
		Str("name", order.Name).
		Msg("Order upserted from webhook")
	return nil
}
