package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"shopsync-ingestion-layer/internal/domain"
	"shopsync-ingestion-layer/internal/ports"
)

// CustomerRepository implements customer persistence on the relational store.
type CustomerRepository struct {
	db *gorm.DB
}

var _ ports.CustomerRepository = (*CustomerRepository)(nil)

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// ExistingIDs returns which of ids already have a customer row for tenantID.
func (r *CustomerRepository) ExistingIDs(ctx context.Context, tenantID string, ids []int64) (map[int64]struct{}, error) {
	return existingIDs(r.db.WithContext(ctx), &domain.Customer{}, tenantID, ids)
}

// CreateBatch inserts the customers with their addresses and tag links in
// one transaction.
func (r *CustomerRepository) CreateBatch(ctx context.Context, customers []domain.Customer) error {
	if len(customers) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range customers {
			customer := customers[i]
			tags := customer.Tags
			customer.Tags = nil
			if err := tx.Create(&customer).Error; err != nil {
				return err
			}
			if err := connectTags(tx, &customer, "Tags", customer.TenantID, tags); err != nil {
				return err
			}
		}
		return nil
	})
}

// Upsert replaces the stored customer wholesale with the given state.
func (r *CustomerRepository) Upsert(ctx context.Context, customer domain.Customer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Select(clause.Associations).
			Delete(&domain.Customer{ID: customer.ID}, "tenant_id = ?", customer.TenantID).Error
		if err != nil {
			return err
		}
		tags := customer.Tags
		customer.Tags = nil
		if err := tx.Create(&customer).Error; err != nil {
			return err
		}
		return connectTags(tx, &customer, "Tags", customer.TenantID, tags)
	})
}
