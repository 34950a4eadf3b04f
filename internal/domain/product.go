package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductStatus is the upstream product status, upper-cased on ingestion.
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "ACTIVE"
	ProductStatusArchived ProductStatus = "ARCHIVED"
	ProductStatusDraft    ProductStatus = "DRAFT"
)

// Product mirrors an upstream product. The id is the upstream identifier.
type Product struct {
	ID          int64         `gorm:"primaryKey;autoIncrement:false" json:"id"`
	TenantID    string        `gorm:"size:64;not null;index" json:"tenant_id"`
	Title       string        `gorm:"size:255" json:"title"`
	Handle      string        `gorm:"size:255" json:"handle"`
	BodyHTML    string        `json:"body_html"`
	Vendor      string        `gorm:"size:255" json:"vendor"`
	ProductType string        `gorm:"size:255" json:"product_type"`
	Status      ProductStatus `gorm:"size:32" json:"status"`

	CreatedAt   time.Time  `gorm:"autoCreateTime:false" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime:false" json:"updated_at"`
	PublishedAt *time.Time `json:"published_at"`

	Variants []ProductVariant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"variants"`
	Images   []ProductImage   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"images"`
	Options  []ProductOption  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"options"`
	Tags     []Tag            `gorm:"many2many:product_tags;constraint:OnDelete:CASCADE" json:"tags"`
}

// ProductVariant is an owned sub-entity of Product. SKU is never empty: when
// the upstream omits it, a deterministic fallback derived from the product
// and variant ids is synthesized during mapping.
type ProductVariant struct {
	ID                int64            `gorm:"primaryKey;autoIncrement:false" json:"id"`
	ProductID         int64            `gorm:"not null;index" json:"product_id"`
	Title             string           `gorm:"size:255" json:"title"`
	SKU               string           `gorm:"column:sku;size:255;not null" json:"sku"`
	Price             decimal.Decimal  `gorm:"type:numeric(12,2)" json:"price"`
	CompareAtPrice    *decimal.Decimal `gorm:"type:numeric(12,2)" json:"compare_at_price"`
	Position          int              `json:"position"`
	InventoryPolicy   string           `gorm:"size:32" json:"inventory_policy"`
	InventoryQuantity int              `json:"inventory_quantity"`
	RequiresShipping  bool             `json:"requires_shipping"`
	Taxable           bool             `json:"taxable"`
	Barcode           string           `gorm:"size:128" json:"barcode"`
	Weight            float64          `json:"weight"`
	WeightUnit        string           `gorm:"size:16" json:"weight_unit"`
}

// ProductImage is an owned sub-entity of Product.
type ProductImage struct {
	ID        int64  `gorm:"primaryKey;autoIncrement:false" json:"id"`
	ProductID int64  `gorm:"not null;index" json:"product_id"`
	Src       string `json:"src"`
	AltText   string `gorm:"size:512" json:"alt_text"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Position  int    `json:"position"`
}

// ProductOption is an owned sub-entity of Product.
type ProductOption struct {
	ID        int64    `gorm:"primaryKey;autoIncrement:false" json:"id"`
	ProductID int64    `gorm:"not null;index" json:"product_id"`
	Name      string   `gorm:"size:255" json:"name"`
	Position  int      `json:"position"`
	Values    []string `gorm:"serializer:json" json:"values"`
}
