package webhook_handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"shopsync-ingestion-layer/internal/domain"
	"shopsync-ingestion-layer/internal/ports"
)

// CustomerHandler handles customer-related webhook events
type CustomerHandler struct {
	customers ports.CustomerRepository
	logger    zerolog.Logger
}

// NewCustomerHandler creates a new customer webhook handler
func NewCustomerHandler(customers ports.CustomerRepository, logger zerolog.Logger) *CustomerHandler {
	return &CustomerHandler{
		customers: customers,
		logger:    logger,
	}
}

// CanHandle returns true if this handler can process the given topic
func (h *CustomerHandler) CanHandle(topic string) bool {
	return topic == domain.TopicCustomerUpdate
}

// Handle upserts the customer carried by the event payload.
func (h *CustomerHandler) Handle(ctx context.Context, event *domain.WebhookEvent) error {
	var raw domain.UpstreamCustomer
	if err := json.Unmarshal(event.Payload, &raw); err != nil {
		return fmt.Errorf("failed to parse customer webhook payload: %w", err)
	}

	customer, err := domain.MapCustomer(event.TenantID, raw)
	if err != nil {
		return err
	}

	if err := h.customers.Upsert(ctx, customer); err != nil {
		return &domain.PersistenceError{Op: "upsert customer from webhook", Err: err}
	}

	h.logger.Info().
		Str("topic", event.Topic).
		Str("tenantId", event.TenantID).
		Int64("customerId", customer.ID).
		Str("email", customer.Email).
		Msg("Customer upserted from webhook")
	return nil
}
