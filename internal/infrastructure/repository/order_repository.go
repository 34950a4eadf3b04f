package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"shopsync-ingestion-layer/internal/domain"
	"shopsync-ingestion-layer/internal/ports"
)

// OrderRepository implements order persistence on the relational store.
type OrderRepository struct {
	db *gorm.DB
}

var _ ports.OrderRepository = (*OrderRepository)(nil)

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// ExistingIDs returns which of ids already have an order row for tenantID.
func (r *OrderRepository) ExistingIDs(ctx context.Context, tenantID string, ids []int64) (map[int64]struct{}, error) {
	return existingIDs(r.db.WithContext(ctx), &domain.Order{}, tenantID, ids)
}

// CreateBatch inserts the orders and their tag links in one transaction.
func (r *OrderRepository) CreateBatch(ctx context.Context, orders []domain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range orders {
			order := orders[i]
			tags := order.Tags
			order.Tags = nil
			if err := tx.Create(&order).Error; err != nil {
				return err
			}
			if err := connectTags(tx, &order, "Tags", order.TenantID, tags); err != nil {
				return err
			}
		}
		return nil
	})
}

// Upsert replaces the stored order wholesale with the given state.
func (r *OrderRepository) Upsert(ctx context.Context, order domain.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Select(clause.Associations).
			Delete(&domain.Order{ID: order.ID}, "tenant_id = ?", order.TenantID).Error
		if err != nil {
			return err
		}
		tags := order.Tags
		order.Tags = nil
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		return connectTags(tx, &order, "Tags", order.TenantID, tags)
	})
}
