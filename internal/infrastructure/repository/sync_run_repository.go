package repository

import (
	"context"

	"gorm.io/gorm"

	"shopsync-ingestion-layer/internal/domain"
	"shopsync-ingestion-layer/internal/ports"
)

// SyncRunRepository implements sync history persistence on the relational
// store.
type SyncRunRepository struct {
	db *gorm.DB
}

var _ ports.SyncRunRepository = (*SyncRunRepository)(nil)

// NewSyncRunRepository creates a new sync run repository
func NewSyncRunRepository(db *gorm.DB) *SyncRunRepository {
	return &SyncRunRepository{db: db}
}

// Create appends a run record.
func (r *SyncRunRepository) Create(ctx context.Context, run *domain.SyncRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

// ListByTenant returns the tenant's most recent runs, newest first.
func (r *SyncRunRepository) ListByTenant(ctx context.Context, tenantID string, limit int) ([]*domain.SyncRun, error) {
	if limit <= 0 {
		limit = 20
	}
	var runs []*domain.SyncRun
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("started_at DESC").
		Limit(limit).
		Find(&runs).Error
	if err != nil {
		return nil, err
	}
	return runs, nil
}
