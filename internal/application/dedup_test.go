package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct{ id int64 }

func staticExisting(stored ...int64) existingIDsFunc {
	return func(ctx context.Context, tenantID string, ids []int64) (map[int64]struct{}, error) {
		set := make(map[int64]struct{}, len(stored))
		for _, id := range stored {
			set[id] = struct{}{}
		}
		return set, nil
	}
}

func TestPartition(t *testing.T) {
	ctx := context.Background()
	idOf := func(r record) int64 { return r.id }

	t.Run("splits against stored ids", func(t *testing.T) {
		batch := []record{{2}, {3}, {4}, {5}}
		fresh, skipped, err := partition(ctx, "acme", batch, idOf, staticExisting(1, 2, 3))
		require.NoError(t, err)
		assert.Equal(t, []record{{4}, {5}}, fresh)
		assert.Equal(t, 2, skipped)
	})

	t.Run("collapses intra-batch duplicates, first wins", func(t *testing.T) {
		batch := []record{{7}, {7}, {8}}
		fresh, skipped, err := partition(ctx, "acme", batch, idOf, staticExisting())
		require.NoError(t, err)
		assert.Equal(t, []record{{7}, {8}}, fresh)
		assert.Equal(t, 1, skipped)
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		fresh, skipped, err := partition(ctx, "acme", nil, idOf, staticExisting())
		require.NoError(t, err)
		assert.Nil(t, fresh)
		assert.Zero(t, skipped)
	})

	t.Run("all duplicates yields nothing to insert", func(t *testing.T) {
		batch := []record{{1}, {2}}
		fresh, skipped, err := partition(ctx, "acme", batch, idOf, staticExisting(1, 2))
		require.NoError(t, err)
		assert.Empty(t, fresh)
		assert.Equal(t, 2, skipped)
	})
}
