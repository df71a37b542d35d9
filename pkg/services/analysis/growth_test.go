package analysis

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/shop-pulse/pkg/models/domain"
)

func metricsWith(revenue string, orders int) *domain.AggregateMetrics {
	total := decimal.RequireFromString(revenue)
	aov := decimal.Zero
	if orders > 0 {
		aov = total.Div(decimal.NewFromInt(int64(orders)))
	}
	return &domain.AggregateMetrics{
		TotalRevenue:  total,
		OrderCount:    orders,
		AvgOrderValue: aov,
	}
}

func TestCompare(t *testing.T) {
	current := metricsWith("1500.00", 30)
	previous := metricsWith("1000.00", 20)

	g, err := Compare(current, previous)
	require.NoError(t, err)

	assert.InDelta(t, 50.0, g.RevenueGrowthPct, 1e-9)
	assert.InDelta(t, 50.0, g.OrdersGrowthPct, 1e-9)
	assert.InDelta(t, 0.0, g.AOVGrowthPct, 1e-9) // both AOVs are 50
	assert.True(t, g.Current.TotalRevenue.Equal(current.TotalRevenue))
	assert.True(t, g.Previous.TotalRevenue.Equal(previous.TotalRevenue))
}

func TestCompare_Decline(t *testing.T) {
	g, err := Compare(metricsWith("500.00", 10), metricsWith("1000.00", 10))
	require.NoError(t, err)

	assert.InDelta(t, -50.0, g.RevenueGrowthPct, 1e-9)
	assert.InDelta(t, 0.0, g.OrdersGrowthPct, 1e-9)
}

func TestCompare_ZeroPreviousRevenueReportsZeroDelta(t *testing.T) {
	// Previous window had orders but no revenue (full refunds): the
	// comparison is valid, the revenue delta degrades to 0.
	g, err := Compare(metricsWith("100.00", 5), metricsWith("0.00", 5))
	require.NoError(t, err)

	assert.Zero(t, g.RevenueGrowthPct)
	assert.Zero(t, g.AOVGrowthPct)
	assert.Zero(t, g.OrdersGrowthPct)
}

func TestCompare_ZeroOrderWindowIsIncomparable(t *testing.T) {
	valid := metricsWith("100.00", 5)
	empty := metricsWith("0.00", 0)

	_, err := Compare(valid, empty)
	assert.ErrorIs(t, err, ErrIncomparableWindow)

	_, err = Compare(empty, valid)
	assert.ErrorIs(t, err, ErrIncomparableWindow)

	_, err = Compare(nil, valid)
	assert.ErrorIs(t, err, ErrIncomparableWindow)
}
