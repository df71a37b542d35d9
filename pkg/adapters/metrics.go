package adapters

import (
	"fmt"

	"github.com/de-tools/shop-pulse/pkg/models/api"
	"github.com/de-tools/shop-pulse/pkg/models/domain"
)

func MapStoreDomainToApi(store domain.Store) api.Store {
	return api.Store{Name: store.Name}
}

func MapSummaryDomainToApi(store string, metrics domain.AggregateMetrics) api.Summary {
	return api.Summary{
		Store:         store,
		NoData:        metrics.OrderCount == 0,
		TotalRevenue:  metrics.TotalRevenue.StringFixed(2),
		OrderCount:    metrics.OrderCount,
		AvgOrderValue: metrics.AvgOrderValue.StringFixed(2),
		WeeklyRevenue: metrics.WeeklyRevenue.StringFixed(2),
		WeeklyOrders:  metrics.WeeklyOrders,
		TopCategories: mapGroupsDomainToApi(metrics.TopCategories),
		TopVendors:    mapGroupsDomainToApi(metrics.TopVendors),
	}
}

func MapGrowthDomainToApi(store string, growth domain.GrowthMetrics) api.Growth {
	return api.Growth{
		Store:            store,
		Available:        true,
		Current:          MapSummaryDomainToApi(store, growth.Current),
		Previous:         MapSummaryDomainToApi(store, growth.Previous),
		RevenueGrowthPct: fmt.Sprintf("%.2f", growth.RevenueGrowthPct),
		OrdersGrowthPct:  fmt.Sprintf("%.2f", growth.OrdersGrowthPct),
		AOVGrowthPct:     fmt.Sprintf("%.2f", growth.AOVGrowthPct),
	}
}

func MapForecastDomainToApi(store string, forecast domain.Forecast) api.Forecast {
	return api.Forecast{
		Store:   store,
		Weeks:   len(forecast.Revenue.Values),
		Revenue: mapProjectionDomainToApi(forecast.Revenue),
		Orders:  mapProjectionDomainToApi(forecast.Orders),
	}
}

func MapDailyDomainToApi(days []domain.DailyMetrics) []api.DailyMetric {
	out := make([]api.DailyMetric, 0, len(days))
	for _, d := range days {
		out = append(out, api.DailyMetric{
			Date:          d.Date.Format("2006-01-02"),
			Revenue:       d.Revenue.StringFixed(2),
			Orders:        d.Orders,
			AvgOrderValue: d.AvgOrderValue.StringFixed(2),
		})
	}
	return out
}

func mapGroupsDomainToApi(groups []domain.GroupRevenue) []api.GroupRevenue {
	out := make([]api.GroupRevenue, 0, len(groups))
	for _, g := range groups {
		out = append(out, api.GroupRevenue{Name: g.Name, Revenue: g.Revenue.StringFixed(2)})
	}
	return out
}

func mapProjectionDomainToApi(p domain.TrendProjection) api.Projection {
	return api.Projection{Values: p.Values, GrowthPct: p.GrowthPct}
}
