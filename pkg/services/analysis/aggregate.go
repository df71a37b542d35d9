package analysis

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/de-tools/shop-pulse/pkg/models/domain"
)

const (
	// CategoryFallback is the canonical label for records whose product
	// type is empty or unresolved. Normalization happens here, once, for
	// every caller.
	CategoryFallback = "Uncategorized"
	// VendorFallback is the canonical label for unresolved vendors.
	VendorFallback = "Unknown Vendor"

	unknownValue = "Unknown"

	defaultTopN = 10
)

// Aggregate computes summary metrics over records for a window of the
// given length in weeks. An empty record set yields zero metrics, not an
// error; a non-positive window length is a programming error.
func Aggregate(records []domain.LineItemRecord, weeks float64, topN int) (*domain.AggregateMetrics, error) {
	if weeks <= 0 {
		return nil, fmt.Errorf("analysis: window length must be positive, got %v weeks", weeks)
	}
	if topN <= 0 {
		topN = defaultTopN
	}

	total := decimal.Zero
	seen := make(map[int64]struct{})
	for _, r := range records {
		total = total.Add(r.LineTotal)
		seen[r.OrderID] = struct{}{}
	}
	orders := len(seen)

	aov := decimal.Zero
	if orders > 0 {
		aov = total.Div(decimal.NewFromInt(int64(orders)))
	}

	return &domain.AggregateMetrics{
		TotalRevenue:  total,
		OrderCount:    orders,
		AvgOrderValue: aov,
		WindowWeeks:   weeks,
		WeeklyRevenue: total.Div(decimal.NewFromFloat(weeks)),
		WeeklyOrders:  float64(orders) / weeks,
		TopCategories: topGroups(records, topN, categoryOf),
		TopVendors:    topGroups(records, topN, vendorOf),
	}, nil
}

func categoryOf(r domain.LineItemRecord) string {
	switch r.ProductType {
	case "", unknownValue:
		return CategoryFallback
	}
	return r.ProductType
}

func vendorOf(r domain.LineItemRecord) string {
	switch r.Vendor {
	case "", unknownValue:
		return VendorFallback
	}
	return r.Vendor
}

// topGroups sums line totals per group and keeps the first n groups by
// descending revenue. The sort is stable, so ties keep first-encountered
// order.
func topGroups(records []domain.LineItemRecord, n int, key func(domain.LineItemRecord) string) []domain.GroupRevenue {
	totals := make(map[string]decimal.Decimal)
	var order []string
	for _, r := range records {
		k := key(r)
		if _, ok := totals[k]; !ok {
			order = append(order, k)
		}
		totals[k] = totals[k].Add(r.LineTotal)
	}

	groups := make([]domain.GroupRevenue, 0, len(order))
	for _, k := range order {
		groups = append(groups, domain.GroupRevenue{Name: k, Revenue: totals[k]})
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Revenue.GreaterThan(groups[j].Revenue)
	})
	if len(groups) > n {
		groups = groups[:n]
	}
	return groups
}
