package shop

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/de-tools/shop-pulse/pkg/models/domain"
	"github.com/de-tools/shop-pulse/pkg/services/analysis"
	"github.com/de-tools/shop-pulse/pkg/services/catalog"
	"github.com/de-tools/shop-pulse/pkg/store/shopify"
)

// Source is the upstream data access an analyzer needs.
type Source interface {
	Ping(ctx context.Context) (string, error)
	FetchOrders(ctx context.Context, window domain.Window) (*shopify.OrdersResult, error)
	FetchProducts(ctx context.Context) (*shopify.ProductsResult, error)
}

// Analyzer runs the per-store pipeline: fetch orders and products, join
// them through the product index, and derive metrics. Every operation
// re-fetches from upstream; nothing is persisted between runs.
type Analyzer interface {
	// Probe checks connectivity and returns the shop's display name.
	Probe(ctx context.Context) (string, error)
	// Summary aggregates the last days. A non-positive days value means
	// full history, with the window length derived from the data span.
	Summary(ctx context.Context, days int, topN int) (*domain.AggregateMetrics, error)
	// Growth compares the last days against the immediately preceding
	// window of equal length.
	Growth(ctx context.Context, days int, topN int) (*domain.GrowthMetrics, error)
	// Forecast projects the window's weekly rates 52 weeks forward.
	Forecast(ctx context.Context, days int) (*domain.Forecast, error)
	// Daily buckets the window per calendar day.
	Daily(ctx context.Context, days int) ([]domain.DailyMetrics, error)
}

type analyzer struct {
	store  domain.Store
	source Source
}

func NewAnalyzer(store domain.Store, source Source) Analyzer {
	return &analyzer{store: store, source: source}
}

func (a *analyzer) Probe(ctx context.Context) (string, error) {
	return a.source.Ping(ctx)
}

func (a *analyzer) Summary(ctx context.Context, days, topN int) (*domain.AggregateMetrics, error) {
	window := lookback(days)
	records, err := a.flatten(ctx, window)
	if err != nil {
		return nil, err
	}
	return analysis.Aggregate(records, windowWeeks(window, records), topN)
}

func (a *analyzer) Growth(ctx context.Context, days, topN int) (*domain.GrowthMetrics, error) {
	if days <= 0 {
		return nil, fmt.Errorf("store %s: growth comparison needs a bounded window", a.store.Name)
	}
	window := lookback(days)
	previous := window.Previous()

	currentRecords, err := a.flatten(ctx, window)
	if err != nil && !errors.Is(err, catalog.ErrNoData) {
		return nil, err
	}
	previousRecords, err := a.flatten(ctx, previous)
	if err != nil && !errors.Is(err, catalog.ErrNoData) {
		return nil, err
	}
	// The fetch already filters [start, end), but the baseline must never
	// bleed into the current window.
	previousRecords = recordsBefore(previousRecords, window.Start)

	currentMetrics, err := analysis.Aggregate(currentRecords, window.Weeks(), topN)
	if err != nil {
		return nil, err
	}
	previousMetrics, err := analysis.Aggregate(previousRecords, previous.Weeks(), topN)
	if err != nil {
		return nil, err
	}
	return analysis.Compare(currentMetrics, previousMetrics)
}

func (a *analyzer) Forecast(ctx context.Context, days int) (*domain.Forecast, error) {
	summary, err := a.Summary(ctx, days, 5)
	if err != nil {
		return nil, err
	}
	return &domain.Forecast{
		Revenue: analysis.Project(summary.WeeklyRevenue.InexactFloat64()),
		Orders:  analysis.Project(summary.WeeklyOrders),
	}, nil
}

func (a *analyzer) Daily(ctx context.Context, days int) ([]domain.DailyMetrics, error) {
	records, err := a.flatten(ctx, lookback(days))
	if err != nil {
		return nil, err
	}
	return analysis.DailySeries(records), nil
}

// flatten is the shared front half of every pipeline run: fetch both
// collections, build the index, join into line-item records.
func (a *analyzer) flatten(ctx context.Context, window domain.Window) ([]domain.LineItemRecord, error) {
	logger := zerolog.Ctx(ctx).With().
		Str("store", a.store.Name).
		Str("run_id", uuid.NewString()).
		Logger()
	ctx = logger.WithContext(ctx)

	ordersResult, err := a.source.FetchOrders(ctx, window)
	if err != nil {
		return nil, fmt.Errorf("store %s: fetch orders: %w", a.store.Name, err)
	}
	productsResult, err := a.source.FetchProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("store %s: fetch products: %w", a.store.Name, err)
	}

	index := catalog.BuildIndex(productsResult.Products)
	records, err := catalog.Flatten(ordersResult.Orders, index)
	if err != nil {
		return nil, fmt.Errorf("store %s: %w", a.store.Name, err)
	}

	logger.Info().
		Int("orders", len(ordersResult.Orders)).
		Int("line_items", len(records)).
		Int("variants", len(index)).
		Str("api_version", ordersResult.APIVersion).
		Msg("window flattened")
	return records, nil
}

func lookback(days int) domain.Window {
	if days <= 0 {
		return domain.Window{} // full history
	}
	return domain.LookbackWindow(time.Now().UTC(), days)
}

// windowWeeks resolves the aggregation window length. Bounded windows use
// their own span; full history derives it from the record date range with
// a one-day floor.
func windowWeeks(window domain.Window, records []domain.LineItemRecord) float64 {
	if !window.IsZero() {
		return window.Weeks()
	}
	var min, max time.Time
	for _, r := range records {
		if min.IsZero() || r.OrderDate.Before(min) {
			min = r.OrderDate
		}
		if r.OrderDate.After(max) {
			max = r.OrderDate
		}
	}
	span := max.Sub(min)
	if span < 24*time.Hour {
		span = 24 * time.Hour
	}
	return span.Hours() / (24 * 7)
}

func recordsBefore(records []domain.LineItemRecord, cutoff time.Time) []domain.LineItemRecord {
	filtered := records[:0]
	for _, r := range records {
		if r.OrderDate.Before(cutoff) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
