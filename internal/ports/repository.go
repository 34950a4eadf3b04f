package ports

import (
	"context"
	"time"

	"shopsync-ingestion-layer/internal/domain"
)

// TenantRepository defines the interface for tenant persistence
type TenantRepository interface {
	Create(ctx context.Context, tenant *domain.Tenant) error
	GetByID(ctx context.Context, tenantID string) (*domain.Tenant, error)
	List(ctx context.Context) ([]*domain.Tenant, error)
	Delete(ctx context.Context, tenantID string) error
}

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// ExistingIDs returns which of the given upstream ids are already
	// stored for the tenant.
	ExistingIDs(ctx context.Context, tenantID string, ids []int64) (map[int64]struct{}, error)

	// CreateBatch inserts the products and their sub-entities in one
	// transaction. Tags are connected to existing rows or created.
	CreateBatch(ctx context.Context, products []domain.Product) error

	// Upsert replaces the stored product and its sub-entities with the
	// given state, creating it when absent.
	Upsert(ctx context.Context, product domain.Product) error
}

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	ExistingIDs(ctx context.Context, tenantID string, ids []int64) (map[int64]struct{}, error)
	CreateBatch(ctx context.Context, customers []domain.Customer) error
	Upsert(ctx context.Context, customer domain.Customer) error
}

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	ExistingIDs(ctx context.Context, tenantID string, ids []int64) (map[int64]struct{}, error)
	CreateBatch(ctx context.Context, orders []domain.Order) error
	Upsert(ctx context.Context, order domain.Order) error
}

// SyncRunRepository defines the interface for sync history persistence
type SyncRunRepository interface {
	Create(ctx context.Context, run *domain.SyncRun) error
	ListByTenant(ctx context.Context, tenantID string, limit int) ([]*domain.SyncRun, error)
}

// EventLogRepository defines the interface for the append-only event log
type EventLogRepository interface {
	// LogWebhook records a received webhook delivery for audit.
	LogWebhook(ctx context.Context, event *domain.WebhookEvent) error

	// LogCustomEvent records an opaque behavioral event.
	LogCustomEvent(ctx context.Context, event *domain.CustomEvent) error
}

// CredentialCache caches resolved tenant credentials. A miss returns
// (nil, nil).
type CredentialCache interface {
	Get(ctx context.Context, tenantID string) (*domain.TenantCredentials, error)
	Set(ctx context.Context, creds domain.TenantCredentials, ttl time.Duration) error
	Invalidate(ctx context.Context, tenantID string) error
}

// AnalyticsRepository defines the read-side aggregation queries
type AnalyticsRepository interface {
	Overview(ctx context.Context, tenantID string) (*domain.AnalyticsOverview, error)
	TopCustomers(ctx context.Context, tenantID string, limit int) ([]domain.TopCustomer, error)
	OrdersByDate(ctx context.Context, tenantID string, from, to time.Time) ([]domain.DailyOrderStat, error)
	RevenueRows(ctx context.Context, tenantID string, from, to time.Time) ([]domain.RevenueRow, error)
	ProductPerformance(ctx context.Context, tenantID string) ([]domain.ProductPerformance, error)
}
