package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"shopsync-ingestion-layer/internal/domain"
	"shopsync-ingestion-layer/internal/ports"
)

// AnalyticsRepository implements the read-side aggregations on the
// relational store.
type AnalyticsRepository struct {
	db *gorm.DB
}

var _ ports.AnalyticsRepository = (*AnalyticsRepository)(nil)

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

// Overview returns tenant-wide totals.
func (r *AnalyticsRepository) Overview(ctx context.Context, tenantID string) (*domain.AnalyticsOverview, error) {
	tx := r.db.WithContext(ctx)
	overview := &domain.AnalyticsOverview{TenantID: tenantID}

	if err := tx.Model(&domain.Customer{}).Where("tenant_id = ?", tenantID).Count(&overview.TotalCustomers).Error; err != nil {
		return nil, err
	}
	if err := tx.Model(&domain.Order{}).Where("tenant_id = ?", tenantID).Count(&overview.TotalOrders).Error; err != nil {
		return nil, err
	}
	if err := tx.Model(&domain.Product{}).Where("tenant_id = ?", tenantID).Count(&overview.TotalProducts).Error; err != nil {
		return nil, err
	}

	var revenue struct {
		Total decimal.Decimal
	}
	err := tx.Model(&domain.Order{}).
		Where("tenant_id = ?", tenantID).
		Select("COALESCE(SUM(total_price), 0) AS total").
		Scan(&revenue).Error
	if err != nil {
		return nil, err
	}
	overview.TotalRevenue = revenue.Total

	return overview, nil
}

// TopCustomers ranks customers by total spend.
func (r *AnalyticsRepository) TopCustomers(ctx context.Context, tenantID string, limit int) ([]domain.TopCustomer, error) {
	var customers []domain.TopCustomer
	err := r.db.WithContext(ctx).
		Model(&domain.Customer{}).
		Select("id AS customer_id, email, first_name, last_name, total_spent").
		Where("tenant_id = ?", tenantID).
		Order("total_spent DESC").
		Limit(limit).
		Scan(&customers).Error
	if err != nil {
		return nil, err
	}
	return customers, nil
}

// OrdersByDate returns daily order counts and revenue for the range,
// bucketed on the upstream creation timestamp.
func (r *AnalyticsRepository) OrdersByDate(ctx context.Context, tenantID string, from, to time.Time) ([]domain.DailyOrderStat, error) {
	var stats []domain.DailyOrderStat
	err := r.db.WithContext(ctx).
		Model(&domain.Order{}).
		Select("DATE(created_at) AS date, COUNT(*) AS orders, COALESCE(SUM(total_price), 0) AS revenue").
		Where("tenant_id = ? AND created_at >= ? AND created_at < ?", tenantID, from, to).
		Group("DATE(created_at)").
		Order("date").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// RevenueRows returns per-order revenue contributions in the range, oldest
// first. Bucketing happens in the service so one query serves every period.
func (r *AnalyticsRepository) RevenueRows(ctx context.Context, tenantID string, from, to time.Time) ([]domain.RevenueRow, error) {
	var rows []domain.RevenueRow
	err := r.db.WithContext(ctx).
		Model(&domain.Order{}).
		Select("created_at, total_price").
		Where("tenant_id = ? AND created_at >= ? AND created_at < ?", tenantID, from, to).
		Order("created_at").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ProductPerformance aggregates line-item sales per product, highest revenue
// first. Products without sales appear with zero units.
func (r *AnalyticsRepository) ProductPerformance(ctx context.Context, tenantID string) ([]domain.ProductPerformance, error) {
	var rows []domain.ProductPerformance
	err := r.db.WithContext(ctx).
		Model(&domain.Product{}).
		Select("products.id AS product_id, products.title, products.vendor, "+
			"COALESCE(SUM(order_line_items.quantity), 0) AS units_sold, "+
			"COALESCE(SUM(order_line_items.price * order_line_items.quantity), 0) AS revenue").
		Joins("LEFT JOIN order_line_items ON order_line_items.product_id = products.id AND order_line_items.tenant_id = products.tenant_id").
		Where("products.tenant_id = ?", tenantID).
		Group("products.id, products.title, products.vendor").
		Order("revenue DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
