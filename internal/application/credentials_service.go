package application

import (
	"context"
	"time"

	"shopsync-ingestion-layer/internal/domain"
	"shopsync-ingestion-layer/internal/ports"

	"github.com/rs/zerolog"
)

// CredentialsService resolves the upstream credentials for a tenant. Every
// lookup goes through the cache first and falls back to the tenant store;
// callers never read credentials from anywhere else.
type CredentialsService struct {
	tenants  ports.TenantRepository
	cache    ports.CredentialCache
	cacheTTL time.Duration
	logger   zerolog.Logger
}

// NewCredentialsService creates a new credentials service
func NewCredentialsService(tenants ports.TenantRepository, cache ports.CredentialCache, cacheTTL time.Duration, logger zerolog.Logger) *CredentialsService {
	return &CredentialsService{
		tenants:  tenants,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// Resolve returns the credentials for tenantID. A tenant that does not exist
// yields *domain.UnknownTenantError.
func (s *CredentialsService) Resolve(ctx context.Context, tenantID string) (domain.TenantCredentials, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, tenantID)
		if err != nil {
			// fall through to the repository on cache trouble
			s.logger.Warn().Err(err).Str("tenantId", tenantID).Msg("Credential cache lookup failed")
		} else if cached != nil {
			return *cached, nil
		}
	}

	tenant, err := s.tenants.GetByID(ctx, tenantID)
	if err != nil {
		return domain.TenantCredentials{}, &domain.PersistenceError{Op: "resolve tenant credentials", Err: err}
	}
	if tenant == nil {
		return domain.TenantCredentials{}, &domain.UnknownTenantError{TenantID: tenantID}
	}

	creds := domain.TenantCredentials{
		TenantID:    tenant.ID,
		StoreDomain: tenant.StoreDomain,
		AccessToken: tenant.AccessToken,
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, creds, s.cacheTTL); err != nil {
			s.logger.Warn().Err(err).Str("tenantId", tenantID).Msg("Failed to cache tenant credentials")
		}
	}

	return creds, nil
}

// Invalidate drops a tenant's cached credentials, forcing the next Resolve
// to hit the store.
func (s *CredentialsService) Invalidate(ctx context.Context, tenantID string) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Invalidate(ctx, tenantID)
}
