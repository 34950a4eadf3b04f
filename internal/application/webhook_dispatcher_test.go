package application

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopsync-ingestion-layer/internal/domain"
)

type memEventLog struct {
	mu       sync.Mutex
	webhooks []*domain.WebhookEvent
	custom   []*domain.CustomEvent
	failLog  error
}

func (l *memEventLog) LogWebhook(ctx context.Context, event *domain.WebhookEvent) error {
	if l.failLog != nil {
		return l.failLog
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.webhooks = append(l.webhooks, event)
	return nil
}

func (l *memEventLog) LogCustomEvent(ctx context.Context, event *domain.CustomEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.custom = append(l.custom, event)
	return nil
}

type stubHandler struct {
	topic   string
	handled []*domain.WebhookEvent
	err     error
}

func (h *stubHandler) CanHandle(topic string) bool { return topic == h.topic }

func (h *stubHandler) Handle(ctx context.Context, event *domain.WebhookEvent) error {
	h.handled = append(h.handled, event)
	return h.err
}

func TestWebhookDispatcher(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.Nop()

	event := func(topic string) *domain.WebhookEvent {
		return &domain.WebhookEvent{Topic: topic, TenantID: "acme", Payload: []byte(`{}`), Verified: true}
	}

	t.Run("routes to the claiming handler", func(t *testing.T) {
		log := &memEventLog{}
		products := &stubHandler{topic: domain.TopicProductUpdate}
		orders := &stubHandler{topic: domain.TopicOrderPaid}

		d := NewWebhookDispatcher(log, nil, logger)
		d.Register(products)
		d.Register(orders)

		require.NoError(t, d.Dispatch(ctx, event(domain.TopicOrderPaid)))
		assert.Empty(t, products.handled)
		require.Len(t, orders.handled, 1)
		assert.Len(t, log.webhooks, 1)
	})

	t.Run("unclaimed topic is logged and acknowledged", func(t *testing.T) {
		log := &memEventLog{}
		d := NewWebhookDispatcher(log, nil, logger)

		require.NoError(t, d.Dispatch(ctx, event("refunds/create")))
		assert.Len(t, log.webhooks, 1)
	})

	t.Run("handler failure propagates", func(t *testing.T) {
		log := &memEventLog{}
		failing := &stubHandler{topic: domain.TopicProductUpdate, err: errors.New("boom")}
		d := NewWebhookDispatcher(log, nil, logger)
		d.Register(failing)

		err := d.Dispatch(ctx, event(domain.TopicProductUpdate))
		require.Error(t, err)
	})

	t.Run("audit log failure does not block dispatch", func(t *testing.T) {
		log := &memEventLog{failLog: errors.New("mongo down")}
		h := &stubHandler{topic: domain.TopicProductUpdate}
		d := NewWebhookDispatcher(log, nil, logger)
		d.Register(h)

		require.NoError(t, d.Dispatch(ctx, event(domain.TopicProductUpdate)))
		assert.Len(t, h.handled, 1)
	})
}
