package domain

// Tag is a deduplicated label attached to customers, orders and products via
// join tables. Tags are tenant-scoped: the same label used by two tenants
// yields two rows.
type Tag struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	TenantID string `gorm:"size:64;not null;uniqueIndex:ux_tags_tenant_name" json:"tenant_id"`
	Name     string `gorm:"size:255;not null;uniqueIndex:ux_tags_tenant_name" json:"name"`
}
