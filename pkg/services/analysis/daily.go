package analysis

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/de-tools/shop-pulse/pkg/models/domain"
)

// DailySeries buckets records by calendar day (UTC): summed revenue,
// distinct orders and AOV per day, sorted ascending by date.
func DailySeries(records []domain.LineItemRecord) []domain.DailyMetrics {
	type bucket struct {
		revenue decimal.Decimal
		orders  map[int64]struct{}
	}

	buckets := make(map[time.Time]*bucket)
	for _, r := range records {
		day := r.OrderDate.UTC().Truncate(24 * time.Hour)
		b := buckets[day]
		if b == nil {
			b = &bucket{orders: make(map[int64]struct{})}
			buckets[day] = b
		}
		b.revenue = b.revenue.Add(r.LineTotal)
		b.orders[r.OrderID] = struct{}{}
	}

	series := make([]domain.DailyMetrics, 0, len(buckets))
	for day, b := range buckets {
		orders := len(b.orders)
		aov := decimal.Zero
		if orders > 0 {
			aov = b.revenue.Div(decimal.NewFromInt(int64(orders)))
		}
		series = append(series, domain.DailyMetrics{
			Date:          day,
			Revenue:       b.revenue,
			Orders:        orders,
			AvgOrderValue: aov,
		})
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Date.Before(series[j].Date) })
	return series
}
