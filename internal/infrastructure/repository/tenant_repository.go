package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"shopsync-ingestion-layer/internal/domain"
	"shopsync-ingestion-layer/internal/ports"
)

// TenantRepository implements tenant persistence on the relational store.
type TenantRepository struct {
	db *gorm.DB
}

var _ ports.TenantRepository = (*TenantRepository)(nil)

// NewTenantRepository creates a new tenant repository
func NewTenantRepository(db *gorm.DB) *TenantRepository {
	return &TenantRepository{db: db}
}

// Create inserts a tenant.
func (r *TenantRepository) Create(ctx context.Context, tenant *domain.Tenant) error {
	return r.db.WithContext(ctx).Create(tenant).Error
}

// GetByID returns the tenant or (nil, nil) when it does not exist.
func (r *TenantRepository) GetByID(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	var tenant domain.Tenant
	err := r.db.WithContext(ctx).First(&tenant, "id = ?", tenantID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

// List returns all registered tenants ordered by id.
func (r *TenantRepository) List(ctx context.Context) ([]*domain.Tenant, error) {
	var tenants []*domain.Tenant
	if err := r.db.WithContext(ctx).Order("id").Find(&tenants).Error; err != nil {
		return nil, err
	}
	return tenants, nil
}

// Delete removes a tenant record. Domain rows keyed by the tenant are left
// to offline cleanup.
func (r *TenantRepository) Delete(ctx context.Context, tenantID string) error {
	return r.db.WithContext(ctx).Delete(&domain.Tenant{}, "id = ?", tenantID).Error
}
