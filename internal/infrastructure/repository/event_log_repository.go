package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"shopsync-ingestion-layer/internal/domain"
	"shopsync-ingestion-layer/internal/ports"
)

// EventLogRepository implements the append-only event log using MongoDB.
// Webhook deliveries and behavioral events are schemaless by nature, so they
// go to the document store rather than the relational one.
type EventLogRepository struct {
	webhooksCollection *mongo.Collection
	eventsCollection   *mongo.Collection
}

var _ ports.EventLogRepository = (*EventLogRepository)(nil)

// NewEventLogRepository creates a new MongoDB event log repository
func NewEventLogRepository(db *mongo.Database) *EventLogRepository {
	return &EventLogRepository{
		webhooksCollection: db.Collection("webhook_events"),
		eventsCollection:   db.Collection("custom_events"),
	}
}

// LogWebhook appends a webhook delivery record.
func (r *EventLogRepository) LogWebhook(ctx context.Context, event *domain.WebhookEvent) error {
	receivedAt := event.ReceivedAt
	if receivedAt.IsZero() {
		receivedAt = time.Now().UTC()
	}

	doc := bson.M{
		"topic":       event.Topic,
		"tenant_id":   event.TenantID,
		"payload":     string(event.Payload),
		"verified":    event.Verified,
		"received_at": receivedAt,
	}
	if _, err := r.webhooksCollection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to log webhook event: %w", err)
	}
	return nil
}

// LogCustomEvent appends a behavioral event record.
func (r *EventLogRepository) LogCustomEvent(ctx context.Context, event *domain.CustomEvent) error {
	receivedAt := event.ReceivedAt
	if receivedAt.IsZero() {
		receivedAt = time.Now().UTC()
	}

	doc := bson.M{
		"event_type":  event.EventType,
		"tenant_id":   event.TenantID,
		"customer_id": event.CustomerID,
		"payload":     string(event.Payload),
		"received_at": receivedAt,
	}
	if _, err := r.eventsCollection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to log custom event: %w", err)
	}
	return nil
}
