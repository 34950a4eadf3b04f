package middleware

import (
	"net/http"
	"strings"

	"shopsync-ingestion-layer/internal/domain"
)

// TenantID resolves the tenant for a request and stores it on the context.
// The X-Tenant-ID header wins, then the tenantId query parameter; requests
// carrying neither run against the default tenant. Public routes are passed
// through untouched.
func TenantID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			if path == "/health" || path == "/metrics" || strings.HasPrefix(path, "/swagger") {
				next.ServeHTTP(w, r)
				return
			}

			tenantID := r.Header.Get("X-Tenant-ID")
			if tenantID == "" {
				tenantID = r.URL.Query().Get("tenantId")
			}
			if tenantID == "" {
				tenantID = domain.DefaultTenantID
			}

			ctx := domain.WithTenantID(r.Context(), tenantID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
