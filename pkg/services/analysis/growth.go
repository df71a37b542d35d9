package analysis

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/de-tools/shop-pulse/pkg/models/domain"
)

// ErrIncomparableWindow reports a growth comparison against a window with
// zero orders. A zero-order window is a missing baseline, not a zero one.
var ErrIncomparableWindow = errors.New("analysis: zero-order window, growth comparison unavailable")

// Compare diffs two adjacent equal-length windows into percentage deltas.
// A delta against a zero previous value is reported as 0, never infinity.
func Compare(current, previous *domain.AggregateMetrics) (*domain.GrowthMetrics, error) {
	if current == nil || previous == nil {
		return nil, ErrIncomparableWindow
	}
	if current.OrderCount == 0 || previous.OrderCount == 0 {
		return nil, ErrIncomparableWindow
	}

	return &domain.GrowthMetrics{
		Current:          *current,
		Previous:         *previous,
		RevenueGrowthPct: pctChange(current.TotalRevenue, previous.TotalRevenue),
		OrdersGrowthPct:  pctChangeInt(current.OrderCount, previous.OrderCount),
		AOVGrowthPct:     pctChange(current.AvgOrderValue, previous.AvgOrderValue),
	}, nil
}

func pctChange(current, previous decimal.Decimal) float64 {
	if previous.IsZero() {
		return 0
	}
	return current.Sub(previous).Div(previous).InexactFloat64() * 100
}

func pctChangeInt(current, previous int) float64 {
	if previous == 0 {
		return 0
	}
	return float64(current-previous) / float64(previous) * 100
}
