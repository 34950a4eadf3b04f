package webhook_handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"shopsync-ingestion-layer/internal/domain"
	"shopsync-ingestion-layer/internal/ports"
)

// ProductHandler handles product-related webhook events
type ProductHandler struct {
	products ports.ProductRepository
	logger   zerolog.Logger
}

// NewProductHandler creates a new product webhook handler
func NewProductHandler(products ports.ProductRepository, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		products: products,
		logger:   logger,
	}
}

// CanHandle returns true if this handler can process the given topic
func (h *ProductHandler) CanHandle(topic string) bool {
	return topic == domain.TopicProductUpdate
}

// Handle upserts the product carried by the event payload. The stored state
// is replaced wholesale with the webhook's version.
func (h *ProductHandler) Handle(ctx context.Context, event *domain.WebhookEvent) error {
	var raw domain.UpstreamProduct
	if err := json.Unmarshal(event.Payload, &raw); err != nil {
		return fmt.Errorf("failed to parse product webhook payload: %w", err)
	}

	product, err := domain.MapProduct(event.TenantID, raw)
	if err != nil {
		return err
	}

	if err := h.products.Upsert(ctx, product); err != nil {
		return &domain.PersistenceError{Op: "upsert product from webhook", Err: err}
	}

	h.logger.Info().
		Str("topic", event.Topic).
		Str("tenantId", event.TenantID).
		Int64("productId", product.ID).
		Str("title", product.Title).
		Msg("Product upserted from webhook")
	return nil
}
