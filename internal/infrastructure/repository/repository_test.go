package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"shopsync-ingestion-layer/internal/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&domain.Tenant{},
		&domain.Tag{},
		&domain.Product{},
		&domain.ProductVariant{},
		&domain.ProductImage{},
		&domain.ProductOption{},
		&domain.Customer{},
		&domain.CustomerAddress{},
		&domain.Order{},
		&domain.OrderLineItem{},
		&domain.SyncRun{},
	))
	return db
}

func TestTenantRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewTenantRepository(newTestDB(t))

	t.Run("create and get", func(t *testing.T) {
		tenant := &domain.Tenant{ID: "acme", Name: "Acme", StoreDomain: "acme.example.com", AccessToken: "tok"}
		require.NoError(t, repo.Create(ctx, tenant))

		found, err := repo.GetByID(ctx, "acme")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "acme.example.com", found.StoreDomain)
		assert.Equal(t, "tok", found.AccessToken)
	})

	t.Run("missing tenant yields nil", func(t *testing.T) {
		found, err := repo.GetByID(ctx, "ghost")
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("list and delete", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, &domain.Tenant{ID: "beta", StoreDomain: "beta.example.com"}))

		tenants, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, tenants, 2)

		require.NoError(t, repo.Delete(ctx, "beta"))
		tenants, err = repo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, tenants, 1)
	})
}

func testProduct(id int64, tenantID string, tags ...string) domain.Product {
	p := domain.Product{
		ID:        id,
		TenantID:  tenantID,
		Title:     "Widget",
		Status:    domain.ProductStatusActive,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
		Variants: []domain.ProductVariant{
			{ID: id*10 + 1, ProductID: id, SKU: "SKU-1", Price: decimal.RequireFromString("9.99")},
		},
	}
	for _, name := range tags {
		p.Tags = append(p.Tags, domain.Tag{TenantID: tenantID, Name: name})
	}
	return p
}

func TestProductRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewProductRepository(db)

	t.Run("batch insert with shared tags", func(t *testing.T) {
		batch := []domain.Product{
			testProduct(1, "acme", "Sale", "VIP"),
			testProduct(2, "acme", "Sale"),
		}
		require.NoError(t, repo.CreateBatch(ctx, batch))

		// tag rows are connected, not duplicated
		var tagCount int64
		require.NoError(t, db.Model(&domain.Tag{}).Where("tenant_id = ?", "acme").Count(&tagCount).Error)
		assert.EqualValues(t, 2, tagCount)

		var stored domain.Product
		require.NoError(t, db.Preload("Variants").Preload("Tags").First(&stored, "id = ?", 1).Error)
		assert.Len(t, stored.Variants, 1)
		assert.Len(t, stored.Tags, 2)
	})

	t.Run("existing ids", func(t *testing.T) {
		set, err := repo.ExistingIDs(ctx, "acme", []int64{1, 2, 3})
		require.NoError(t, err)
		assert.Contains(t, set, int64(1))
		assert.Contains(t, set, int64(2))
		assert.NotContains(t, set, int64(3))
	})

	t.Run("existing ids are tenant scoped", func(t *testing.T) {
		set, err := repo.ExistingIDs(ctx, "other", []int64{1, 2})
		require.NoError(t, err)
		assert.Empty(t, set)
	})

	t.Run("upsert replaces sub-entities", func(t *testing.T) {
		updated := domain.Product{
			ID:       1,
			TenantID: "acme",
			Title:    "Widget v2",
			Status:   domain.ProductStatusArchived,
			Variants: []domain.ProductVariant{
				{ID: 99, ProductID: 1, SKU: "SKU-99", Price: decimal.RequireFromString("19.99")},
			},
			Tags: []domain.Tag{{TenantID: "acme", Name: "Clearance"}},
		}
		require.NoError(t, repo.Upsert(ctx, updated))

		var stored domain.Product
		require.NoError(t, db.Preload("Variants").Preload("Tags").First(&stored, "id = ?", 1).Error)
		assert.Equal(t, "Widget v2", stored.Title)
		require.Len(t, stored.Variants, 1)
		assert.Equal(t, int64(99), stored.Variants[0].ID)
		require.Len(t, stored.Tags, 1)
		assert.Equal(t, "Clearance", stored.Tags[0].Name)

		// the replaced variant is gone
		var variantCount int64
		require.NoError(t, db.Model(&domain.ProductVariant{}).Where("product_id = ?", 1).Count(&variantCount).Error)
		assert.EqualValues(t, 1, variantCount)
	})

	t.Run("upsert creates when absent", func(t *testing.T) {
		require.NoError(t, repo.Upsert(ctx, testProduct(50, "acme")))
		set, err := repo.ExistingIDs(ctx, "acme", []int64{50})
		require.NoError(t, err)
		assert.Contains(t, set, int64(50))
	})
}

func TestCustomerRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewCustomerRepository(db)

	customer := domain.Customer{
		ID:                  200,
		TenantID:            "acme",
		Email:               "jo@example.com",
		State:               domain.CustomerStateEnabled,
		TotalSpent:          decimal.RequireFromString("150.50"),
		EmailMarketingState: domain.MarketingStateSubscribed,
		SMSMarketingState:   domain.MarketingStateNotSubscribed,
		CreatedAt:           time.Now().UTC(),
		UpdatedAt:           time.Now().UTC(),
		Addresses: []domain.CustomerAddress{
			{ID: 10, CustomerID: 200, City: "Lyon"},
			{ID: 11, CustomerID: 200, City: "Paris", IsDefault: true},
		},
		Tags: []domain.Tag{{TenantID: "acme", Name: "wholesale"}},
	}

	require.NoError(t, repo.CreateBatch(ctx, []domain.Customer{customer}))

	var stored domain.Customer
	require.NoError(t, db.Preload("Addresses").Preload("Tags").First(&stored, "id = ?", 200).Error)
	assert.Len(t, stored.Addresses, 2)
	assert.Len(t, stored.Tags, 1)
	assert.True(t, stored.TotalSpent.Equal(decimal.RequireFromString("150.50")))

	t.Run("upsert replaces addresses", func(t *testing.T) {
		updated := customer
		updated.Addresses = []domain.CustomerAddress{{ID: 12, CustomerID: 200, City: "Nice", IsDefault: true}}
		updated.Tags = nil
		require.NoError(t, repo.Upsert(ctx, updated))

		var after domain.Customer
		require.NoError(t, db.Preload("Addresses").First(&after, "id = ?", 200).Error)
		require.Len(t, after.Addresses, 1)
		assert.Equal(t, "Nice", after.Addresses[0].City)
	})
}

func TestOrderRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewOrderRepository(db)

	customerID := int64(200)
	order := domain.Order{
		ID:              300,
		TenantID:        "acme",
		Name:            "#1001",
		OrderNumber:     1001,
		FinancialStatus: domain.OrderFinancialPaid,
		TotalPrice:      decimal.RequireFromString("99.00"),
		CustomerID:      &customerID,
		CreatedAt:       time.Now().UTC(),
		UpdatedAt:       time.Now().UTC(),
		Tags:            []domain.Tag{{TenantID: "acme", Name: "rush"}},
		LineItems: []domain.OrderLineItem{
			{ID: 900, OrderID: 300, TenantID: "acme", Title: "Widget", Quantity: 2, Price: decimal.RequireFromString("10.00")},
		},
	}

	require.NoError(t, repo.CreateBatch(ctx, []domain.Order{order}))

	set, err := repo.ExistingIDs(ctx, "acme", []int64{300})
	require.NoError(t, err)
	assert.Contains(t, set, int64(300))

	var itemCount int64
	require.NoError(t, db.Model(&domain.OrderLineItem{}).Where("order_id = ?", 300).Count(&itemCount).Error)
	assert.EqualValues(t, 1, itemCount)

	t.Run("upsert overwrites fields and replaces line items", func(t *testing.T) {
		updated := order
		updated.FinancialStatus = domain.OrderFinancialRefunded
		updated.Tags = nil
		updated.LineItems = []domain.OrderLineItem{
			{ID: 901, OrderID: 300, TenantID: "acme", Title: "Gadget", Quantity: 1, Price: decimal.RequireFromString("4.00")},
		}
		require.NoError(t, repo.Upsert(ctx, updated))

		var after domain.Order
		require.NoError(t, db.Preload("LineItems").First(&after, "id = ?", 300).Error)
		assert.Equal(t, domain.OrderFinancialRefunded, after.FinancialStatus)
		require.Len(t, after.LineItems, 1)
		assert.Equal(t, int64(901), after.LineItems[0].ID)
	})
}

func TestSyncRunRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewSyncRunRepository(newTestDB(t))

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		run := &domain.SyncRun{
			ID:        uuid.New(),
			TenantID:  "acme",
			Mode:      domain.SyncModeIncremental,
			StartedAt: base.Add(time.Duration(i) * time.Hour),
			Succeeded: true,
			Results: []domain.ResourceSyncResult{
				{Resource: domain.ResourceProducts, State: domain.SyncStateCompleted, Fetched: i},
			},
		}
		require.NoError(t, repo.Create(ctx, run))
	}

	runs, err := repo.ListByTenant(ctx, "acme", 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// newest first, serialized results survive the round trip
	assert.True(t, runs[0].StartedAt.After(runs[1].StartedAt))
	require.Len(t, runs[0].Results, 1)
	assert.Equal(t, domain.ResourceProducts, runs[0].Results[0].Resource)
}

func TestAnalyticsRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewAnalyticsRepository(db)

	customers := []domain.Customer{
		{ID: 1, TenantID: "acme", Email: "a@x.io", TotalSpent: decimal.RequireFromString("10.00")},
		{ID: 2, TenantID: "acme", Email: "b@x.io", TotalSpent: decimal.RequireFromString("30.00")},
		{ID: 3, TenantID: "other", Email: "c@x.io", TotalSpent: decimal.RequireFromString("99.00")},
	}
	require.NoError(t, db.Create(&customers).Error)

	orders := []domain.Order{
		{ID: 10, TenantID: "acme", TotalPrice: decimal.RequireFromString("25.00"), CreatedAt: time.Now().UTC()},
		{ID: 11, TenantID: "acme", TotalPrice: decimal.RequireFromString("75.00"), CreatedAt: time.Now().UTC()},
	}
	require.NoError(t, db.Create(&orders).Error)

	t.Run("overview aggregates one tenant", func(t *testing.T) {
		overview, err := repo.Overview(ctx, "acme")
		require.NoError(t, err)
		assert.EqualValues(t, 2, overview.TotalCustomers)
		assert.EqualValues(t, 2, overview.TotalOrders)
		assert.EqualValues(t, 0, overview.TotalProducts)
		assert.True(t, overview.TotalRevenue.Equal(decimal.RequireFromString("100.00")))
	})

	t.Run("top customers are ranked by spend", func(t *testing.T) {
		top, err := repo.TopCustomers(ctx, "acme", 10)
		require.NoError(t, err)
		require.Len(t, top, 2)
		assert.Equal(t, int64(2), top[0].CustomerID)
		assert.Equal(t, int64(1), top[1].CustomerID)
	})

	t.Run("revenue rows are tenant scoped and range bound", func(t *testing.T) {
		now := time.Now().UTC()
		rows, err := repo.RevenueRows(ctx, "acme", now.AddDate(0, 0, -1), now.AddDate(0, 0, 1))
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.True(t, rows[0].TotalPrice.Add(rows[1].TotalPrice).Equal(decimal.RequireFromString("100.00")))

		empty, err := repo.RevenueRows(ctx, "acme", now.AddDate(0, 0, -30), now.AddDate(0, 0, -10))
		require.NoError(t, err)
		assert.Empty(t, empty)
	})

	t.Run("product performance ranks by line item revenue", func(t *testing.T) {
		products := []domain.Product{
			{ID: 100, TenantID: "acme", Title: "Widget"},
			{ID: 101, TenantID: "acme", Title: "Gadget"},
		}
		require.NoError(t, db.Create(&products).Error)

		widgetID, gadgetID := int64(100), int64(101)
		items := []domain.OrderLineItem{
			{ID: 900, OrderID: 10, TenantID: "acme", ProductID: &widgetID, Quantity: 2, Price: decimal.RequireFromString("10.00")},
			{ID: 901, OrderID: 11, TenantID: "acme", ProductID: &widgetID, Quantity: 1, Price: decimal.RequireFromString("10.00")},
			{ID: 902, OrderID: 11, TenantID: "acme", ProductID: &gadgetID, Quantity: 1, Price: decimal.RequireFromString("5.00")},
		}
		require.NoError(t, db.Create(&items).Error)

		perf, err := repo.ProductPerformance(ctx, "acme")
		require.NoError(t, err)
		require.Len(t, perf, 2)

		assert.Equal(t, int64(100), perf[0].ProductID)
		assert.EqualValues(t, 3, perf[0].UnitsSold)
		assert.True(t, perf[0].Revenue.Equal(decimal.RequireFromString("30.00")))

		assert.Equal(t, int64(101), perf[1].ProductID)
		assert.True(t, perf[1].Revenue.Equal(decimal.RequireFromString("5.00")))
	})
}
