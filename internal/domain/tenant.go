package domain

import "time"

// Tenant is an isolated store context. Every domain row is partitioned by its
// id. Tenants are created at onboarding and never deleted during normal
// operation.
type Tenant struct {
	ID          string    `gorm:"primaryKey;size:64" json:"id"`
	Name        string    `gorm:"size:255" json:"name"`
	StoreDomain string    `gorm:"size:255;uniqueIndex" json:"store_domain"`
	AccessToken string    `gorm:"size:255" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TenantCredentials is the immutable credential value resolved for one sync
// attempt. It is passed explicitly through every fetch/persist call and never
// shared through ambient state.
type TenantCredentials struct {
	TenantID    string
	StoreDomain string
	AccessToken string
}
