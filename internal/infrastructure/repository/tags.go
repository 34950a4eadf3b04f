package repository

import (
	"gorm.io/gorm"

	"shopsync-ingestion-layer/internal/domain"
)

// connectTags resolves each tag name to the tenant's existing tag row,
// creating rows for names seen for the first time, and appends them to the
// model's association. Must run inside the caller's transaction.
func connectTags(tx *gorm.DB, model any, association string, tenantID string, tags []domain.Tag) error {
	if len(tags) == 0 {
		return nil
	}
	resolved := make([]domain.Tag, 0, len(tags))
	for _, t := range tags {
		var tag domain.Tag
		err := tx.Where("tenant_id = ? AND name = ?", tenantID, t.Name).
			FirstOrCreate(&tag, domain.Tag{TenantID: tenantID, Name: t.Name}).Error
		if err != nil {
			return err
		}
		resolved = append(resolved, tag)
	}
	return tx.Model(model).Association(association).Append(&resolved)
}

// existingIDs returns which of ids already have a row of the given model for
// the tenant.
func existingIDs(tx *gorm.DB, model any, tenantID string, ids []int64) (map[int64]struct{}, error) {
	if len(ids) == 0 {
		return map[int64]struct{}{}, nil
	}
	var found []int64
	err := tx.Model(model).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Pluck("id", &found).Error
	if err != nil {
		return nil, err
	}
	set := make(map[int64]struct{}, len(found))
	for _, id := range found {
		set[id] = struct{}{}
	}
	return set, nil
}
