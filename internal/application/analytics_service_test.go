package application

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopsync-ingestion-layer/internal/domain"
)

func revenueRow(day string, amount string) domain.RevenueRow {
	ts, err := time.Parse("2006-01-02", day)
	if err != nil {
		panic(err)
	}
	return domain.RevenueRow{CreatedAt: ts, TotalPrice: decimal.RequireFromString(amount)}
}

func TestBucketRevenue(t *testing.T) {
	t.Run("daily buckets sum same-day orders", func(t *testing.T) {
		rows := []domain.RevenueRow{
			revenueRow("2026-08-01", "10.00"),
			revenueRow("2026-08-01", "5.00"),
			revenueRow("2026-08-03", "7.00"),
		}

		points := bucketRevenue(rows, RevenuePeriod30d)

		require.Len(t, points, 2)
		assert.Equal(t, "2026-08-01", points[0].Bucket)
		assert.Equal(t, int64(2), points[0].Orders)
		assert.True(t, points[0].Revenue.Equal(decimal.RequireFromString("15.00")))
		assert.Equal(t, "2026-08-03", points[1].Bucket)
	})

	t.Run("90d groups by week start", func(t *testing.T) {
		// 2026-08-04 is a Tuesday; its week starts Sunday 2026-08-02
		rows := []domain.RevenueRow{
			revenueRow("2026-08-02", "1.00"),
			revenueRow("2026-08-04", "2.00"),
			revenueRow("2026-08-09", "4.00"),
		}

		points := bucketRevenue(rows, RevenuePeriod90d)

		require.Len(t, points, 2)
		assert.Equal(t, "2026-08-02", points[0].Bucket)
		assert.True(t, points[0].Revenue.Equal(decimal.RequireFromString("3.00")))
		assert.Equal(t, "2026-08-09", points[1].Bucket)
	})

	t.Run("1y groups by month", func(t *testing.T) {
		rows := []domain.RevenueRow{
			revenueRow("2026-07-15", "1.00"),
			revenueRow("2026-07-31", "1.00"),
			revenueRow("2026-08-01", "1.00"),
		}

		points := bucketRevenue(rows, RevenuePeriod1y)

		require.Len(t, points, 2)
		assert.Equal(t, "2026-07", points[0].Bucket)
		assert.Equal(t, int64(2), points[0].Orders)
		assert.Equal(t, "2026-08", points[1].Bucket)
	})

	t.Run("no rows yields an empty series", func(t *testing.T) {
		points := bucketRevenue(nil, RevenuePeriod7d)
		assert.Empty(t, points)
	})
}
