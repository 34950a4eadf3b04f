package webhook_handlers

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopsync-ingestion-layer/internal/domain"
)

type productSpy struct {
	products []domain.Product
}

func (s *productSpy) ExistingIDs(ctx context.Context, tenantID string, ids []int64) (map[int64]struct{}, error) {
	return nil, nil
}

func (s *productSpy) CreateBatch(ctx context.Context, products []domain.Product) error { return nil }

func (s *productSpy) Upsert(ctx context.Context, product domain.Product) error {
	s.products = append(s.products, product)
	return nil
}

type customerSpy struct {
	customers []domain.Customer
}

func (s *customerSpy) ExistingIDs(ctx context.Context, tenantID string, ids []int64) (map[int64]struct{}, error) {
	return nil, nil
}

func (s *customerSpy) CreateBatch(ctx context.Context, customers []domain.Customer) error {
	return nil
}

func (s *customerSpy) Upsert(ctx context.Context, customer domain.Customer) error {
	s.customers = append(s.customers, customer)
	return nil
}

type orderSpy struct {
	orders []domain.Order
}

func (s *orderSpy) ExistingIDs(ctx context.Context, tenantID string, ids []int64) (map[int64]struct{}, error) {
	return nil, nil
}

func (s *orderSpy) CreateBatch(ctx context.Context, orders []domain.Order) error { return nil }

func (s *orderSpy) Upsert(ctx context.Context, order domain.Order) error {
	s.orders = append(s.orders, order)
	return nil
}

type eventLogSpy struct {
	custom []*domain.CustomEvent
}

func (l *eventLogSpy) LogWebhook(ctx context.Context, event *domain.WebhookEvent) error { return nil }

func (l *eventLogSpy) LogCustomEvent(ctx context.Context, event *domain.CustomEvent) error {
	l.custom = append(l.custom, event)
	return nil
}

func TestProductHandler(t *testing.T) {
	ctx := context.Background()
	spy := &productSpy{}
	h := NewProductHandler(spy, zerolog.Nop())

	assert.True(t, h.CanHandle(domain.TopicProductUpdate))
	assert.False(t, h.CanHandle(domain.TopicOrderPaid))

	t.Run("upserts the normalized product", func(t *testing.T) {
		payload := []byte(`{"id":100,"title":"Widget","status":"draft","tags":"Sale,Sale, VIP","variants":[{"id":1,"price":"9.99"}]}`)
		err := h.Handle(ctx, &domain.WebhookEvent{Topic: domain.TopicProductUpdate, TenantID: "acme", Payload: payload})
		require.NoError(t, err)

		require.Len(t, spy.products, 1)
		p := spy.products[0]
		assert.Equal(t, int64(100), p.ID)
		assert.Equal(t, "acme", p.TenantID)
		assert.Equal(t, domain.ProductStatusDraft, p.Status)
		assert.Equal(t, "fallback-sku-100-1", p.Variants[0].SKU)
		require.Len(t, p.Tags, 2)
	})

	t.Run("malformed payload is rejected", func(t *testing.T) {
		err := h.Handle(ctx, &domain.WebhookEvent{Topic: domain.TopicProductUpdate, TenantID: "acme", Payload: []byte(`{`)})
		require.Error(t, err)
	})

	t.Run("bad price surfaces as validation error", func(t *testing.T) {
		payload := []byte(`{"id":100,"variants":[{"id":1,"price":"oops"}]}`)
		err := h.Handle(ctx, &domain.WebhookEvent{Topic: domain.TopicProductUpdate, TenantID: "acme", Payload: payload})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
	})
}

func TestCustomerHandler(t *testing.T) {
	spy := &customerSpy{}
	h := NewCustomerHandler(spy, zerolog.Nop())

	assert.True(t, h.CanHandle(domain.TopicCustomerUpdate))

	payload := []byte(`{"id":200,"email":"jo@example.com","state":"enabled","total_spent":"12.00"}`)
	err := h.Handle(context.Background(), &domain.WebhookEvent{Topic: domain.TopicCustomerUpdate, TenantID: "acme", Payload: payload})
	require.NoError(t, err)

	require.Len(t, spy.customers, 1)
	assert.Equal(t, domain.CustomerStateEnabled, spy.customers[0].State)
}

func TestOrderHandler(t *testing.T) {
	spy := &orderSpy{}
	h := NewOrderHandler(spy, zerolog.Nop())

	assert.True(t, h.CanHandle(domain.TopicOrderPaid))

	payload := []byte(`{"id":300,"name":"#1001","financial_status":"paid","total_price":"50.00","customer":{"id":200}}`)
	err := h.Handle(context.Background(), &domain.WebhookEvent{Topic: domain.TopicOrderPaid, TenantID: "acme", Payload: payload})
	require.NoError(t, err)

	require.Len(t, spy.orders, 1)
	assert.Equal(t, domain.OrderFinancialPaid, spy.orders[0].FinancialStatus)
	require.NotNil(t, spy.orders[0].CustomerID)
	assert.Equal(t, int64(200), *spy.orders[0].CustomerID)
}

func TestEventHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("cart abandoned with nested customer", func(t *testing.T) {
		log := &eventLogSpy{}
		h := NewEventHandler(log, zerolog.Nop())
		assert.True(t, h.CanHandle(domain.TopicCartAbandoned))
		assert.True(t, h.CanHandle(domain.TopicCheckoutCreated))
		assert.False(t, h.CanHandle(domain.TopicProductUpdate))

		payload := []byte(`{"token":"abc","customer":{"id":77}}`)
		err := h.Handle(ctx, &domain.WebhookEvent{Topic: domain.TopicCartAbandoned, TenantID: "acme", Payload: payload})
		require.NoError(t, err)

		require.Len(t, log.custom, 1)
		assert.Equal(t, domain.EventTypeCartAbandoned, log.custom[0].EventType)
		assert.Equal(t, int64(77), log.custom[0].CustomerID)
		assert.Equal(t, payload, []byte(log.custom[0].Payload))
	})

	t.Run("checkout started without customer", func(t *testing.T) {
		log := &eventLogSpy{}
		h := NewEventHandler(log, zerolog.Nop())

		err := h.Handle(ctx, &domain.WebhookEvent{Topic: domain.TopicCheckoutCreated, TenantID: "acme", Payload: []byte(`{"token":"xyz"}`)})
		require.NoError(t, err)

		require.Len(t, log.custom, 1)
		assert.Equal(t, domain.EventTypeCheckoutStarted, log.custom[0].EventType)
		assert.Zero(t, log.custom[0].CustomerID)
	})
}
