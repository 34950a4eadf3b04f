package application

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"shopsync-ingestion-layer/internal/domain"
	"shopsync-ingestion-layer/internal/ports"
)

const defaultTopCustomersLimit = 10

// AnalyticsService exposes read-side aggregations over synced data.
type AnalyticsService struct {
	analytics ports.AnalyticsRepository
	logger    zerolog.Logger
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(analytics ports.AnalyticsRepository, logger zerolog.Logger) *AnalyticsService {
	return &AnalyticsService{
		analytics: analytics,
		logger:    logger,
	}
}

// Overview returns tenant-wide totals.
func (s *AnalyticsService) Overview(ctx context.Context, tenantID string) (*domain.AnalyticsOverview, error) {
	overview, err := s.analytics.Overview(ctx, tenantID)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "analytics overview", Err: err}
	}
	return overview, nil
}

// TopCustomers ranks a tenant's customers by total spend.
func (s *AnalyticsService) TopCustomers(ctx context.Context, tenantID string, limit int) ([]domain.TopCustomer, error) {
	if limit <= 0 {
		limit = defaultTopCustomersLimit
	}
	customers, err := s.analytics.TopCustomers(ctx, tenantID, limit)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "analytics top customers", Err: err}
	}
	return customers, nil
}

// OrdersByDate returns daily order counts and revenue for the range. A zero
// from/to defaults to the trailing 30 days.
func (s *AnalyticsService) OrdersByDate(ctx context.Context, tenantID string, from, to time.Time) ([]domain.DailyOrderStat, error) {
	if to.IsZero() {
		to = time.Now().UTC()
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -30)
	}
	stats, err := s.analytics.OrdersByDate(ctx, tenantID, from, to)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "analytics orders by date", Err: err}
	}
	return stats, nil
}

// RevenuePeriod selects the range and bucket granularity of the revenue
// series. An unrecognized value falls back to the trailing 30 days.
type RevenuePeriod string

const (
	RevenuePeriod7d  RevenuePeriod = "7d"
	RevenuePeriod30d RevenuePeriod = "30d"
	RevenuePeriod90d RevenuePeriod = "90d"
	RevenuePeriod1y  RevenuePeriod = "1y"
)

// RevenueByPeriod returns the revenue series for the period, bucketed by day
// for 7d/30d, by week for 90d, and by month for 1y.
func (s *AnalyticsService) RevenueByPeriod(ctx context.Context, tenantID string, period RevenuePeriod) ([]domain.RevenuePoint, error) {
	to := time.Now().UTC()
	var from time.Time
	switch period {
	case RevenuePeriod7d:
		from = to.AddDate(0, 0, -7)
	case RevenuePeriod90d:
		from = to.AddDate(0, 0, -90)
	case RevenuePeriod1y:
		from = to.AddDate(-1, 0, 0)
	default:
		period = RevenuePeriod30d
		from = to.AddDate(0, 0, -30)
	}

	rows, err := s.analytics.RevenueRows(ctx, tenantID, from, to)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "analytics revenue", Err: err}
	}
	return bucketRevenue(rows, period), nil
}

// bucketRevenue folds ordered rows into period buckets, preserving the
// chronological order of first appearance.
func bucketRevenue(rows []domain.RevenueRow, period RevenuePeriod) []domain.RevenuePoint {
	points := make([]domain.RevenuePoint, 0)
	index := make(map[string]int)
	for _, row := range rows {
		key := revenueBucket(row.CreatedAt.UTC(), period)
		i, ok := index[key]
		if !ok {
			i = len(points)
			index[key] = i
			points = append(points, domain.RevenuePoint{Bucket: key})
		}
		points[i].Orders++
		points[i].Revenue = points[i].Revenue.Add(row.TotalPrice)
	}
	return points
}

func revenueBucket(t time.Time, period RevenuePeriod) string {
	switch period {
	case RevenuePeriod90d:
		// week bucket keyed by its Sunday
		weekStart := t.AddDate(0, 0, -int(t.Weekday()))
		return weekStart.Format("2006-01-02")
	case RevenuePeriod1y:
		return t.Format("2006-01")
	default:
		return t.Format("2006-01-02")
	}
}

// ProductPerformance ranks a tenant's products by line-item revenue.
func (s *AnalyticsService) ProductPerformance(ctx context.Context, tenantID string) ([]domain.ProductPerformance, error) {
	rows, err := s.analytics.ProductPerformance(ctx, tenantID)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "analytics product performance", Err: err}
	}
	return rows, nil
}
