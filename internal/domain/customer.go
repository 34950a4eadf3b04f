package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerState is the upstream lifecycle state, upper-cased on ingestion.
type CustomerState string

const (
	CustomerStateEnabled  CustomerState = "ENABLED"
	CustomerStateDisabled CustomerState = "DISABLED"
	CustomerStateInvited  CustomerState = "INVITED"
	CustomerStateDeclined CustomerState = "DECLINED"
)

// MarketingState is the marketing-consent state for a channel.
type MarketingState string

const (
	MarketingStateSubscribed    MarketingState = "SUBSCRIBED"
	MarketingStateNotSubscribed MarketingState = "NOT_SUBSCRIBED"
	MarketingStateUnsubscribed  MarketingState = "UNSUBSCRIBED"
	MarketingStatePending       MarketingState = "PENDING"
)

// Customer mirrors an upstream customer. The id is the upstream identifier
// and is never regenerated locally.
type Customer struct {
	ID          int64           `gorm:"primaryKey;autoIncrement:false" json:"id"`
	TenantID    string          `gorm:"size:64;not null;index" json:"tenant_id"`
	Email       string          `gorm:"size:255" json:"email"`
	FirstName   string          `gorm:"size:255" json:"first_name"`
	LastName    string          `gorm:"size:255" json:"last_name"`
	Phone       string          `gorm:"size:64" json:"phone"`
	OrdersCount int             `json:"orders_count"`
	State       CustomerState   `gorm:"size:32" json:"state"`
	TotalSpent  decimal.Decimal `gorm:"type:numeric(12,2)" json:"total_spent"`
	Note        string          `json:"note"`
	VerifiedEmail bool          `json:"verified_email"`
	TaxExempt     bool          `json:"tax_exempt"`
	Currency      string        `gorm:"size:8" json:"currency"`

	EmailMarketingState            MarketingState `gorm:"size:32" json:"email_marketing_state"`
	EmailMarketingOptInLevel       string         `gorm:"size:64" json:"email_marketing_opt_in_level"`
	EmailMarketingConsentUpdatedAt *time.Time     `json:"email_marketing_consent_updated_at"`
	SMSMarketingState              MarketingState `gorm:"size:32" json:"sms_marketing_state"`
	SMSMarketingOptInLevel         string         `gorm:"size:64" json:"sms_marketing_opt_in_level"`
	SMSMarketingConsentUpdatedAt   *time.Time     `json:"sms_marketing_consent_updated_at"`

	// Upstream timestamps, stored as received.
	CreatedAt time.Time `gorm:"autoCreateTime:false" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false" json:"updated_at"`

	Addresses []CustomerAddress `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"addresses"`
	Tags      []Tag             `gorm:"many2many:customer_tags;constraint:OnDelete:CASCADE" json:"tags"`
}

// CustomerAddress is an owned sub-entity of Customer. Exactly one address of
// a customer carries the default flag.
type CustomerAddress struct {
	ID          int64  `gorm:"primaryKey;autoIncrement:false" json:"id"`
	CustomerID  int64  `gorm:"not null;index" json:"customer_id"`
	Address1    string `gorm:"size:255" json:"address1"`
	Address2    string `gorm:"size:255" json:"address2"`
	City        string `gorm:"size:128" json:"city"`
	Province    string `gorm:"size:128" json:"province"`
	Country     string `gorm:"size:128" json:"country"`
	Zip         string `gorm:"size:32" json:"zip"`
	Phone       string `gorm:"size:64" json:"phone"`
	Company     string `gorm:"size:255" json:"company"`
	CountryCode string `gorm:"size:8" json:"country_code"`
	IsDefault   bool   `json:"is_default"`
}
