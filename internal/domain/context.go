package domain

import "context"

type contextKey string

const tenantIDKey contextKey = "tenant_id"

// DefaultTenantID is the sentinel tenant used when an inbound request carries
// no tenant identification. Single-tenant deployments rely on this fallback.
const DefaultTenantID = "default"

// WithTenantID returns a context carrying the tenant identifier.
func WithTenantID(ctx context.Context, tenantID string) context.Context {
	return context.WithValue(ctx, tenantIDKey, tenantID)
}

// TenantIDFromContext extracts the tenant identifier from the context, or ""
// when none was set.
func TenantIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(tenantIDKey).(string); ok {
		return v
	}
	return ""
}
