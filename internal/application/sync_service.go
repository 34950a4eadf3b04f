package application

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"shopsync-ingestion-layer/internal/domain"
	"shopsync-ingestion-layer/internal/ports"
)

// SyncConfig tunes a sync pass.
type SyncConfig struct {
	// PageSize is the per-page record count requested upstream.
	PageSize int
	// MaxConcurrentTenants bounds tenant parallelism during a full pass.
	MaxConcurrentTenants int
	// RequestTimeout bounds a single upstream page request.
	RequestTimeout time.Duration
	// TenantTimeout bounds one tenant's whole pass.
	TenantTimeout time.Duration
}

// DefaultSyncConfig returns the production defaults.
func DefaultSyncConfig() SyncConfig {
	return SyncConfig{
		PageSize:             50,
		MaxConcurrentTenants: 4,
		RequestTimeout:       30 * time.Second,
		TenantTimeout:        10 * time.Minute,
	}
}

func (c SyncConfig) withDefaults() SyncConfig {
	d := DefaultSyncConfig()
	if c.PageSize <= 0 {
		c.PageSize = d.PageSize
	}
	if c.MaxConcurrentTenants <= 0 {
		c.MaxConcurrentTenants = d.MaxConcurrentTenants
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = d.RequestTimeout
	}
	if c.TenantTimeout <= 0 {
		c.TenantTimeout = d.TenantTimeout
	}
	return c
}

// SyncService drives the fetch, deduplicate, persist pipeline for every
// tenant. Resources within a tenant run sequentially; a failure in one
// resource never aborts the others, and a failure in one tenant never
// aborts another tenant's pass.
type SyncService struct {
	gateway   ports.StoreGateway
	creds     *CredentialsService
	tenants   ports.TenantRepository
	products  ports.ProductRepository
	customers ports.CustomerRepository
	orders    ports.OrderRepository
	runs      ports.SyncRunRepository
	metrics   ports.MetricsRecorder
	cfg       SyncConfig
	logger    zerolog.Logger
}

// NewSyncService creates a new sync service
func NewSyncService(
	gateway ports.StoreGateway,
	creds *CredentialsService,
	tenants ports.TenantRepository,
	products ports.ProductRepository,
	customers ports.CustomerRepository,
	orders ports.OrderRepository,
	runs ports.SyncRunRepository,
	metrics ports.MetricsRecorder,
	cfg SyncConfig,
	logger zerolog.Logger,
) *SyncService {
	return &SyncService{
		gateway:   gateway,
		creds:     creds,
		tenants:   tenants,
		products:  products,
		customers: customers,
		orders:    orders,
		runs:      runs,
		metrics:   metrics,
		cfg:       cfg.withDefaults(),
		logger:    logger,
	}
}

// SyncAllTenants runs one pass over every registered tenant with bounded
// parallelism and returns the per-tenant reports. Tenant order in the result
// matches the tenant listing.
func (s *SyncService) SyncAllTenants(ctx context.Context, mode domain.SyncMode) ([]*domain.SyncReport, error) {
	tenants, err := s.tenants.List(ctx)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "list tenants", Err: err}
	}

	s.logger.Info().Str("mode", string(mode)).Int("tenants", len(tenants)).Msg("Starting sync pass")

	reports := make([]*domain.SyncReport, len(tenants))
	sem := make(chan struct{}, s.cfg.MaxConcurrentTenants)
	var wg sync.WaitGroup

	for i, tenant := range tenants {
		wg.Add(1)
		go func(i int, tenantID string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			tenantCtx, cancel := context.WithTimeout(ctx, s.cfg.TenantTimeout)
			defer cancel()

			report, _ := s.SyncTenant(tenantCtx, tenantID, mode)
			reports[i] = report
		}(i, tenant.ID)
	}
	wg.Wait()

	return reports, nil
}

// SyncTenant runs one pass for a single tenant and records it in the sync
// history. The returned error is the first resource-level failure, if any;
// the report always covers all three resources.
func (s *SyncService) SyncTenant(ctx context.Context, tenantID string, mode domain.SyncMode) (*domain.SyncReport, error) {
	report := &domain.SyncReport{
		TenantID:  tenantID,
		Mode:      mode,
		StartedAt: time.Now().UTC(),
	}

	creds, err := s.creds.Resolve(ctx, tenantID)
	if err != nil {
		s.logger.Error().Err(err).Str("tenantId", tenantID).Msg("Cannot resolve tenant credentials")
		for _, resource := range domain.AllResourceTypes() {
			report.Results = append(report.Results, domain.ResourceSyncResult{
				Resource: resource,
				State:    domain.SyncStateFailed,
				Error:    err.Error(),
			})
		}
		report.FinishedAt = time.Now().UTC()
		s.recordRun(ctx, report)
		return report, err
	}

	full := mode == domain.SyncModeFull
	var firstErr error

	for _, resource := range domain.AllResourceTypes() {
		var result domain.ResourceSyncResult
		var resErr error

		switch resource {
		case domain.ResourceProducts:
			result, resErr = s.syncProducts(ctx, creds, full)
		case domain.ResourceCustomers:
			result, resErr = s.syncCustomers(ctx, creds, full)
		case domain.ResourceOrders:
			result, resErr = s.syncOrders(ctx, creds, full)
		}

		if resErr != nil {
			s.logger.Error().Err(resErr).
				Str("tenantId", tenantID).
				Str("resource", string(resource)).
				Msg("Resource sync failed")
			if firstErr == nil {
				firstErr = resErr
			}
		} else {
			s.logger.Info().
				Str("tenantId", tenantID).
				Str("resource", string(resource)).
				Int("fetched", result.Fetched).
				Int("created", result.Created).
				Int("alreadyPresent", result.AlreadyPresent).
				Msg("Resource sync completed")
		}

		if s.metrics != nil {
			s.metrics.RecordFetched(tenantID, resource, result.Fetched)
			s.metrics.RecordCreated(tenantID, resource, result.Created)
			s.metrics.RecordSkipped(tenantID, resource, result.AlreadyPresent)
			s.metrics.RecordSyncResult(tenantID, resource, resErr == nil)
		}

		report.Results = append(report.Results, result)
	}

	report.FinishedAt = time.Now().UTC()
	s.recordRun(ctx, report)
	return report, firstErr
}

func (s *SyncService) recordRun(ctx context.Context, report *domain.SyncReport) {
	if s.runs == nil {
		return
	}
	run := &domain.SyncRun{
		ID:         uuid.New(),
		TenantID:   report.TenantID,
		Mode:       report.Mode,
		StartedAt:  report.StartedAt,
		FinishedAt: report.FinishedAt,
		Succeeded:  report.Succeeded(),
		Results:    report.Results,
	}
	if err := s.runs.Create(ctx, run); err != nil {
		s.logger.Error().Err(err).Str("tenantId", report.TenantID).Msg("Failed to record sync run")
	}
}

func (s *SyncService) syncProducts(ctx context.Context, creds domain.TenantCredentials, full bool) (domain.ResourceSyncResult, error) {
	return syncResource(ctx, s, creds, domain.ResourceProducts, full,
		s.gateway.FetchProducts,
		domain.MapProduct,
		func(p domain.Product) int64 { return p.ID },
		s.products.ExistingIDs,
		s.products.CreateBatch,
	)
}

func (s *SyncService) syncCustomers(ctx context.Context, creds domain.TenantCredentials, full bool) (domain.ResourceSyncResult, error) {
	return syncResource(ctx, s, creds, domain.ResourceCustomers, full,
		s.gateway.FetchCustomers,
		domain.MapCustomer,
		func(c domain.Customer) int64 { return c.ID },
		s.customers.ExistingIDs,
		s.customers.CreateBatch,
	)
}

func (s *SyncService) syncOrders(ctx context.Context, creds domain.TenantCredentials, full bool) (domain.ResourceSyncResult, error) {
	return syncResource(ctx, s, creds, domain.ResourceOrders, full,
		s.gateway.FetchOrders,
		domain.MapOrder,
		func(o domain.Order) int64 { return o.ID },
		s.orders.ExistingIDs,
		s.orders.CreateBatch,
	)
}

// syncResource runs the fetch, deduplicate, persist loop for one resource.
// Each page is a full pipeline round: the next page is fetched only after
// the current one is persisted, so an interrupted pass leaves complete
// pages behind and the cursor can restart cleanly.
func syncResource[W any, M any](
	ctx context.Context,
	s *SyncService,
	creds domain.TenantCredentials,
	resource domain.ResourceType,
	full bool,
	fetch func(context.Context, domain.TenantCredentials, ports.FetchOptions) ([]W, string, error),
	mapRecord func(string, W) (M, error),
	idOf func(M) int64,
	existing existingIDsFunc,
	createBatch func(context.Context, []M) error,
) (domain.ResourceSyncResult, error) {
	result := domain.ResourceSyncResult{Resource: resource, State: domain.SyncStateIdle}

	fail := func(err error) (domain.ResourceSyncResult, error) {
		result.State = domain.SyncStateFailed
		result.Error = err.Error()
		return result, err
	}

	cursor := ""
	for {
		result.State = domain.SyncStateFetching

		reqCtx, cancel := context.WithTimeout(ctx, s.cfg.RequestTimeout)
		page, next, err := fetch(reqCtx, creds, ports.FetchOptions{
			PageSize: s.cfg.PageSize,
			Cursor:   cursor,
			Full:     full,
		})
		cancel()
		if err != nil {
			return fail(err)
		}
		result.Fetched += len(page)

		mapped := make([]M, 0, len(page))
		for _, raw := range page {
			rec, err := mapRecord(creds.TenantID, raw)
			if err != nil {
				return fail(err)
			}
			mapped = append(mapped, rec)
		}

		result.State = domain.SyncStateDeduplicating
		fresh, skipped, err := partition(ctx, creds.TenantID, mapped, idOf, existing)
		if err != nil {
			return fail(&domain.PersistenceError{Op: "query existing ids", Err: err})
		}
		result.AlreadyPresent += skipped

		if len(fresh) > 0 {
			result.State = domain.SyncStatePersisting
			if err := createBatch(ctx, fresh); err != nil {
				return fail(&domain.PersistenceError{Op: "persist " + string(resource) + " batch", Err: err})
			}
			result.Created += len(fresh)
		}

		if next == "" {
			break
		}
		cursor = next

		if err := ctx.Err(); err != nil {
			return fail(err)
		}
	}

	result.State = domain.SyncStateCompleted
	return result, nil
}
