package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"shopsync-ingestion-layer/internal/domain"
	"shopsync-ingestion-layer/internal/ports"
)

// ProductRepository implements product persistence on the relational store.
type ProductRepository struct {
	db *gorm.DB
}

var _ ports.ProductRepository = (*ProductRepository)(nil)

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// ExistingIDs returns which of ids already have a product row for tenantID.
func (r *ProductRepository) ExistingIDs(ctx context.Context, tenantID string, ids []int64) (map[int64]struct{}, error) {
	return existingIDs(r.db.WithContext(ctx), &domain.Product{}, tenantID, ids)
}

// CreateBatch inserts the products with their variants, images, options and
// tag links in one transaction. Either every product lands or none does.
func (r *ProductRepository) CreateBatch(ctx context.Context, products []domain.Product) error {
	if len(products) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range products {
			product := products[i]
			tags := product.Tags
			product.Tags = nil
			if err := tx.Create(&product).Error; err != nil {
				return err
			}
			if err := connectTags(tx, &product, "Tags", product.TenantID, tags); err != nil {
				return err
			}
		}
		return nil
	})
}

// Upsert replaces the stored product wholesale with the given state. The
// previous row and its sub-entities are removed first so stale variants or
// images never survive an update.
func (r *ProductRepository) Upsert(ctx context.Context, product domain.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Select(clause.Associations).
			Delete(&domain.Product{ID: product.ID}, "tenant_id = ?", product.TenantID).Error
		if err != nil {
			return err
		}
		tags := product.Tags
		product.Tags = nil
		if err := tx.Create(&product).Error; err != nil {
			return err
		}
		return connectTags(tx, &product, "Tags", product.TenantID, tags)
	})
}
