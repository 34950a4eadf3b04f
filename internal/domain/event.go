package domain

import "time"

// Webhook topics accepted on the inbound endpoints.
const (
	TopicProductUpdate   = "products/update"
	TopicCustomerUpdate  = "customers/update"
	TopicOrderPaid       = "orders/paid"
	TopicCartAbandoned   = "carts/abandoned"
	TopicCheckoutCreated = "checkouts/created"
)

// WebhookEvent is a verified inbound change notification. Payload is the raw
// request body exactly as received.
type WebhookEvent struct {
	Topic      string    `json:"topic"`
	TenantID   string    `json:"tenant_id"`
	Payload    []byte    `json:"payload"`
	Verified   bool      `json:"verified"`
	ReceivedAt time.Time `json:"received_at"`
}

// Custom event types recorded for notifications that are not persisted as
// domain entities.
const (
	EventTypeCartAbandoned   = "cart_abandoned"
	EventTypeCheckoutStarted = "checkout_started"
)

// CustomEvent is an opaque event-log entry for cart/checkout notifications.
type CustomEvent struct {
	EventType  string    `json:"event_type"`
	TenantID   string    `json:"tenant_id"`
	CustomerID int64     `json:"customer_id"`
	Payload    []byte    `json:"payload"`
	ReceivedAt time.Time `json:"received_at"`
}
