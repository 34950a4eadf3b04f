package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderFinancialStatus is the upstream financial status, upper-cased on
// ingestion. Empty when the upstream omitted it.
type OrderFinancialStatus string

const (
	OrderFinancialPending           OrderFinancialStatus = "PENDING"
	OrderFinancialAuthorized        OrderFinancialStatus = "AUTHORIZED"
	OrderFinancialPaid              OrderFinancialStatus = "PAID"
	OrderFinancialPartiallyPaid     OrderFinancialStatus = "PARTIALLY_PAID"
	OrderFinancialRefunded          OrderFinancialStatus = "REFUNDED"
	OrderFinancialPartiallyRefunded OrderFinancialStatus = "PARTIALLY_REFUNDED"
	OrderFinancialVoided            OrderFinancialStatus = "VOIDED"
)

// OrderFulfillmentStatus is the upstream fulfillment status, upper-cased on
// ingestion. Empty when the upstream omitted it.
type OrderFulfillmentStatus string

const (
	OrderFulfillmentFulfilled OrderFulfillmentStatus = "FULFILLED"
	OrderFulfillmentPartial   OrderFulfillmentStatus = "PARTIAL"
	OrderFulfillmentRestocked OrderFulfillmentStatus = "RESTOCKED"
)

// Order mirrors an upstream order. The id is the upstream identifier.
type Order struct {
	ID          int64  `gorm:"primaryKey;autoIncrement:false" json:"id"`
	TenantID    string `gorm:"size:64;not null;index" json:"tenant_id"`
	Name        string `gorm:"size:64" json:"name"`
	OrderNumber int    `json:"order_number"`
	Email       string `gorm:"size:255" json:"email"`
	Phone       string `gorm:"size:64" json:"phone"`

	FinancialStatus   OrderFinancialStatus   `gorm:"size:32" json:"financial_status"`
	FulfillmentStatus OrderFulfillmentStatus `gorm:"size:32" json:"fulfillment_status"`
	Currency          string                 `gorm:"size:8" json:"currency"`

	SubtotalPrice       decimal.Decimal `gorm:"type:numeric(12,2)" json:"subtotal_price"`
	TotalTax            decimal.Decimal `gorm:"type:numeric(12,2)" json:"total_tax"`
	TotalDiscounts      decimal.Decimal `gorm:"type:numeric(12,2)" json:"total_discounts"`
	TotalLineItemsPrice decimal.Decimal `gorm:"type:numeric(12,2)" json:"total_line_items_price"`
	TotalPrice          decimal.Decimal `gorm:"type:numeric(12,2)" json:"total_price"`

	CreatedAt    time.Time  `gorm:"autoCreateTime:false" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime:false" json:"updated_at"`
	ProcessedAt  *time.Time `json:"processed_at"`
	CancelledAt  *time.Time `json:"cancelled_at"`
	CancelReason string     `gorm:"size:64" json:"cancel_reason"`

	Note           string `json:"note"`
	Token          string `gorm:"size:128" json:"token"`
	OrderStatusURL string `json:"order_status_url"`

	// Optional back-reference to the ingested customer.
	CustomerID *int64 `gorm:"index" json:"customer_id"`

	LineItems []OrderLineItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"line_items"`
	Tags      []Tag           `gorm:"many2many:order_tags;constraint:OnDelete:CASCADE" json:"tags"`
}

// OrderLineItem is an owned sub-entity of Order. ProductID and VariantID
// reference ingested catalog rows when the upstream supplied them.
type OrderLineItem struct {
	ID        int64           `gorm:"primaryKey;autoIncrement:false" json:"id"`
	OrderID   int64           `gorm:"not null;index" json:"order_id"`
	TenantID  string          `gorm:"size:64;not null;index" json:"tenant_id"`
	ProductID *int64          `gorm:"index" json:"product_id"`
	VariantID *int64          `json:"variant_id"`
	Title     string          `gorm:"size:255" json:"title"`
	SKU       string          `gorm:"size:255" json:"sku"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2)" json:"price"`
}
