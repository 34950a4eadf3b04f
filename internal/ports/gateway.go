package ports

import (
	"context"

	"shopsync-ingestion-layer/internal/domain"
)

// FetchOptions controls one page request against the upstream store API.
type FetchOptions struct {
	// PageSize is the number of records requested per page.
	PageSize int
	// Cursor resumes a paginated fetch. Empty means the first page. A
	// cursor is opaque and only valid for the resource that produced it.
	Cursor string
	// Full requests records regardless of local sync watermarks.
	Full bool
}

// StoreGateway fetches raw records from a tenant's upstream store. Each call
// returns one page and the cursor for the next one; an empty cursor means
// the listing is exhausted. Credentials are passed per call so a single
// gateway serves every tenant.
type StoreGateway interface {
	FetchProducts(ctx context.Context, creds domain.TenantCredentials, opts FetchOptions) ([]domain.UpstreamProduct, string, error)
	FetchCustomers(ctx context.Context, creds domain.TenantCredentials, opts FetchOptions) ([]domain.UpstreamCustomer, string, error)
	FetchOrders(ctx context.Context, creds domain.TenantCredentials, opts FetchOptions) ([]domain.UpstreamOrder, string, error)
}

// WebhookVerifier checks a webhook payload against its transmitted digest.
type WebhookVerifier interface {
	Verify(payload []byte, signature string) error
}
