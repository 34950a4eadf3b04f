package domain

import (
	"time"

	"github.com/google/uuid"
)

// ResourceType identifies one of the three synced upstream collections.
type ResourceType string

const (
	ResourceProducts  ResourceType = "products"
	ResourceCustomers ResourceType = "customers"
	ResourceOrders    ResourceType = "orders"
)

// AllResourceTypes returns the resource types in sync order.
func AllResourceTypes() []ResourceType {
	return []ResourceType{ResourceProducts, ResourceCustomers, ResourceOrders}
}

// SyncMode distinguishes scheduler-driven passes from on-demand ones.
type SyncMode string

const (
	SyncModeIncremental SyncMode = "incremental"
	SyncModeFull        SyncMode = "full"
	SyncModeOnDemand    SyncMode = "on-demand"
)

// SyncState is the state of one (tenant, resource) sync attempt.
type SyncState string

const (
	SyncStateIdle          SyncState = "idle"
	SyncStateFetching      SyncState = "fetching"
	SyncStateDeduplicating SyncState = "deduplicating"
	SyncStatePersisting    SyncState = "persisting"
	SyncStateCompleted     SyncState = "completed"
	SyncStateFailed        SyncState = "failed"
)

// ResourceSyncResult is the terminal outcome of one (tenant, resource)
// attempt within a pass.
type ResourceSyncResult struct {
	Resource       ResourceType `json:"resource"`
	State          SyncState    `json:"state"`
	Fetched        int          `json:"fetched"`
	Created        int          `json:"created"`
	AlreadyPresent int          `json:"already_present"`
	Error          string       `json:"error,omitempty"`
}

// SyncReport is the structured result of one tenant pass.
type SyncReport struct {
	TenantID   string               `json:"tenant_id"`
	Mode       SyncMode             `json:"mode"`
	StartedAt  time.Time            `json:"started_at"`
	FinishedAt time.Time            `json:"finished_at"`
	Results    []ResourceSyncResult `json:"results"`
}

// Succeeded reports whether every resource attempt completed.
func (r *SyncReport) Succeeded() bool {
	for _, res := range r.Results {
		if res.State != SyncStateCompleted {
			return false
		}
	}
	return true
}

// SyncRun is the persisted history record of one tenant pass.
type SyncRun struct {
	ID         uuid.UUID            `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID   string               `gorm:"size:64;not null;index" json:"tenant_id"`
	Mode       SyncMode             `gorm:"size:16" json:"mode"`
	StartedAt  time.Time            `json:"started_at"`
	FinishedAt time.Time            `json:"finished_at"`
	Succeeded  bool                 `json:"succeeded"`
	Results    []ResourceSyncResult `gorm:"serializer:json" json:"results"`
}
