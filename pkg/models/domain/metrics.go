package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// GroupRevenue is one category or vendor bucket in a top-N breakdown.
type GroupRevenue struct {
	Name    string
	Revenue decimal.Decimal
}

// AggregateMetrics summarizes a line-item record collection over a stated
// window length. Derived on demand, never persisted.
type AggregateMetrics struct {
	TotalRevenue  decimal.Decimal
	OrderCount    int
	AvgOrderValue decimal.Decimal
	WindowWeeks   float64
	WeeklyRevenue decimal.Decimal
	WeeklyOrders  float64
	TopCategories []GroupRevenue
	TopVendors    []GroupRevenue
}

// GrowthMetrics pairs two adjacent equal-length windows with their
// percentage deltas. Deltas are 0 when the previous value is 0.
type GrowthMetrics struct {
	Current          AggregateMetrics
	Previous         AggregateMetrics
	RevenueGrowthPct float64
	OrdersGrowthPct  float64
	AOVGrowthPct     float64
}

// TrendProjection is a weekly rate extrapolated over a fixed horizon.
// Values[i] is the projected rate for week i+1. GrowthPct compares the
// input rate with the final projected week and is 0 for a zero rate.
type TrendProjection struct {
	Values    []float64
	GrowthPct float64
}

// Forecast bundles the revenue and order-rate projections for a store.
type Forecast struct {
	Revenue TrendProjection
	Orders  TrendProjection
}

// DailyMetrics is one day's slice of a window: summed revenue, distinct
// orders and average order value.
type DailyMetrics struct {
	Date          time.Time
	Revenue       decimal.Decimal
	Orders        int
	AvgOrderValue decimal.Decimal
}
