package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AnalyticsOverview aggregates a tenant's synced data for the dashboard.
type AnalyticsOverview struct {
	TenantID       string          `json:"tenant_id"`
	TotalCustomers int64           `json:"total_customers"`
	TotalOrders    int64           `json:"total_orders"`
	TotalProducts  int64           `json:"total_products"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
}

// TopCustomer is one row of the by-spend customer ranking.
type TopCustomer struct {
	CustomerID int64           `json:"customer_id"`
	Email      string          `json:"email"`
	FirstName  string          `json:"first_name"`
	LastName   string          `json:"last_name"`
	TotalSpent decimal.Decimal `json:"total_spent"`
}

// DailyOrderStat is one day of order counts and revenue within a range.
type DailyOrderStat struct {
	Date    time.Time       `json:"date"`
	Orders  int64           `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

// RevenueRow is one order's contribution to the revenue series.
type RevenueRow struct {
	CreatedAt  time.Time       `json:"created_at"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// RevenuePoint is one bucket of the period-grouped revenue series. Bucket is
// a day, week-start day, or month label depending on the requested period.
type RevenuePoint struct {
	Bucket  string          `json:"bucket"`
	Orders  int64           `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

// ProductPerformance ranks a product by units sold and line-item revenue.
type ProductPerformance struct {
	ProductID int64           `json:"product_id"`
	Title     string          `json:"title"`
	Vendor    string          `json:"vendor"`
	UnitsSold int64           `json:"units_sold"`
	Revenue   decimal.Decimal `json:"revenue"`
}
