package application

import "context"

// existingIDsFunc queries which of the given upstream ids are already stored
// for a tenant.
type existingIDsFunc func(ctx context.Context, tenantID string, ids []int64) (map[int64]struct{}, error)

// partition splits a fetched batch into records to insert and the count of
// records skipped. A record is skipped when its upstream id is already
// stored or already appeared earlier in the same batch; the first occurrence
// wins within a batch.
func partition[T any](ctx context.Context, tenantID string, batch []T, idOf func(T) int64, existing existingIDsFunc) (fresh []T, skipped int, err error) {
	if len(batch) == 0 {
		return nil, 0, nil
	}

	ids := make([]int64, 0, len(batch))
	for _, rec := range batch {
		ids = append(ids, idOf(rec))
	}

	stored, err := existing(ctx, tenantID, ids)
	if err != nil {
		return nil, 0, err
	}

	seen := make(map[int64]struct{}, len(batch))
	for _, rec := range batch {
		id := idOf(rec)
		if _, dup := seen[id]; dup {
			skipped++
			continue
		}
		seen[id] = struct{}{}
		if _, dup := stored[id]; dup {
			skipped++
			continue
		}
		fresh = append(fresh, rec)
	}
	return fresh, skipped, nil
}
