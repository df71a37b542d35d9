package shop

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/de-tools/shop-pulse/pkg/models/domain"
)

// StoreReport is the outcome of a single store's analysis run. Either
// Summary is set, or Err explains why the store was skipped.
type StoreReport struct {
	Store   domain.Store
	Summary *domain.AggregateMetrics
	Growth  *domain.GrowthMetrics
	Err     error
}

// RunAll analyzes every configured store concurrently and returns one
// report per store, in registry order. A failing store never blocks or
// poisons the others.
func RunAll(ctx context.Context, explorer Explorer, days, topN int, withGrowth bool) ([]StoreReport, error) {
	stores, err := explorer.ListStores(ctx)
	if err != nil {
		return nil, err
	}

	reports := make([]StoreReport, len(stores))
	var wg sync.WaitGroup
	for i, store := range stores {
		wg.Add(1)
		go func(i int, store domain.Store) {
			defer wg.Done()
			reports[i] = runStore(ctx, explorer, store, days, topN, withGrowth)
		}(i, store)
	}
	wg.Wait()
	return reports, nil
}

func runStore(ctx context.Context, explorer Explorer, store domain.Store, days, topN int, withGrowth bool) StoreReport {
	report := StoreReport{Store: store}

	analyzer, err := explorer.GetStoreAnalyzer(ctx, store)
	if err != nil {
		report.Err = err
		return report
	}

	report.Summary, report.Err = analyzer.Summary(ctx, days, topN)
	if report.Err != nil {
		zerolog.Ctx(ctx).Warn().Err(report.Err).Str("store", store.Name).Msg("store analysis failed")
		return report
	}
	if withGrowth {
		growth, err := analyzer.Growth(ctx, days, topN)
		if err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("store", store.Name).Msg("growth comparison unavailable")
		} else {
			report.Growth = growth
		}
	}
	return report
}
