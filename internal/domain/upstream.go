package domain

import "time"

// Wire shapes of the upstream admin REST API. Values are kept exactly as
// received (raw status casing, decimal strings, possibly empty SKUs); all
// normalization happens in mapping.go. The same shapes are used for webhook
// payloads.

// UpstreamProduct is the wire form of a product.
type UpstreamProduct struct {
	ID          int64             `json:"id"`
	Title       string            `json:"title"`
	Handle      string            `json:"handle"`
	BodyHTML    string            `json:"body_html"`
	Vendor      string            `json:"vendor"`
	ProductType string            `json:"product_type"`
	Status      string            `json:"status"`
	Tags        string            `json:"tags"`
	CreatedAt   *time.Time        `json:"created_at"`
	UpdatedAt   *time.Time        `json:"updated_at"`
	PublishedAt *time.Time        `json:"published_at"`
	Variants    []UpstreamVariant `json:"variants"`
	Images      []UpstreamImage   `json:"images"`
	Options     []UpstreamOption  `json:"options"`
}

// UpstreamVariant is the wire form of a product variant.
type UpstreamVariant struct {
	ID                int64   `json:"id"`
	Title             string  `json:"title"`
	SKU               string  `json:"sku"`
	Price             string  `json:"price"`
	CompareAtPrice    string  `json:"compare_at_price"`
	Position          int     `json:"position"`
	InventoryPolicy   string  `json:"inventory_policy"`
	InventoryQuantity int     `json:"inventory_quantity"`
	RequiresShipping  bool    `json:"requires_shipping"`
	Taxable           bool    `json:"taxable"`
	Barcode           string  `json:"barcode"`
	Weight            float64 `json:"weight"`
	WeightUnit        string  `json:"weight_unit"`
}

// UpstreamImage is the wire form of a product image.
type UpstreamImage struct {
	ID       int64  `json:"id"`
	Alt      string `json:"alt"`
	Src      string `json:"src"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Position int    `json:"position"`
}

// UpstreamOption is the wire form of a product option.
type UpstreamOption struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Position int      `json:"position"`
	Values   []string `json:"values"`
}

// UpstreamCustomer is the wire form of a customer.
type UpstreamCustomer struct {
	ID            int64      `json:"id"`
	Email         string     `json:"email"`
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name"`
	Phone         string     `json:"phone"`
	OrdersCount   int        `json:"orders_count"`
	State         string     `json:"state"`
	TotalSpent    string     `json:"total_spent"`
	Note          string     `json:"note"`
	VerifiedEmail bool       `json:"verified_email"`
	TaxExempt     bool       `json:"tax_exempt"`
	Currency      string     `json:"currency"`
	Tags          string     `json:"tags"`
	CreatedAt     *time.Time `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at"`

	EmailMarketingConsent *UpstreamMarketingConsent `json:"email_marketing_consent"`
	SMSMarketingConsent   *UpstreamMarketingConsent `json:"sms_marketing_consent"`

	DefaultAddress *UpstreamAddress  `json:"default_address"`
	Addresses      []UpstreamAddress `json:"addresses"`
}

// UpstreamMarketingConsent is the wire form of a marketing-consent
// sub-record.
type UpstreamMarketingConsent struct {
	State            string     `json:"state"`
	OptInLevel       string     `json:"opt_in_level"`
	ConsentUpdatedAt *time.Time `json:"consent_updated_at"`
}

// UpstreamAddress is the wire form of a customer address.
type UpstreamAddress struct {
	ID          int64  `json:"id"`
	Address1    string `json:"address1"`
	Address2    string `json:"address2"`
	City        string `json:"city"`
	Province    string `json:"province"`
	Country     string `json:"country"`
	Zip         string `json:"zip"`
	Phone       string `json:"phone"`
	Company     string `json:"company"`
	CountryCode string `json:"country_code"`
}

// UpstreamOrder is the wire form of an order.
type UpstreamOrder struct {
	ID                  int64                `json:"id"`
	Name                string               `json:"name"`
	OrderNumber         int                  `json:"order_number"`
	Email               string               `json:"email"`
	Phone               string               `json:"phone"`
	FinancialStatus     string               `json:"financial_status"`
	FulfillmentStatus   string               `json:"fulfillment_status"`
	Currency            string               `json:"currency"`
	TotalPrice          string               `json:"total_price"`
	SubtotalPrice       string               `json:"subtotal_price"`
	TotalTax            string               `json:"total_tax"`
	TotalDiscounts      string               `json:"total_discounts"`
	TotalLineItemsPrice string               `json:"total_line_items_price"`
	CreatedAt           *time.Time           `json:"created_at"`
	UpdatedAt           *time.Time           `json:"updated_at"`
	ProcessedAt         *time.Time           `json:"processed_at"`
	CancelledAt         *time.Time           `json:"cancelled_at"`
	CancelReason        string               `json:"cancel_reason"`
	Note                string               `json:"note"`
	Token               string               `json:"token"`
	OrderStatusURL      string               `json:"order_status_url"`
	Customer            *UpstreamCustomerRef `json:"customer"`
	LineItems           []UpstreamLineItem   `json:"line_items"`
	Tags                string               `json:"tags"`
}

// UpstreamLineItem is the wire form of an order line item.
type UpstreamLineItem struct {
	ID        int64  `json:"id"`
	ProductID *int64 `json:"product_id"`
	VariantID *int64 `json:"variant_id"`
	Title     string `json:"title"`
	SKU       string `json:"sku"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price"`
}

// UpstreamCustomerRef is the embedded customer reference on an order.
type UpstreamCustomerRef struct {
	ID int64 `json:"id"`
}
