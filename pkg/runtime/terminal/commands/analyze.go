package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/de-tools/shop-pulse/pkg/models/domain"
	"github.com/de-tools/shop-pulse/pkg/runtime/terminal/export"
	"github.com/de-tools/shop-pulse/pkg/services/shop"
)

type AnalyzeCmd struct {
	store    string
	days     int
	topN     int
	growth   bool
	forecast bool

	explorer shop.Explorer
	reporter *export.Reporter
}

func NewAnalyzeCmd(explorer shop.Explorer, reporter *export.Reporter) *cobra.Command {
	ac := &AnalyzeCmd{explorer: explorer, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze store revenue",
		RunE:  ac.run,
	}

	cmd.Flags().StringVar(&ac.store, "store", "", "Store to analyze (default is every configured store)")
	cmd.Flags().IntVar(&ac.days, "days", 30, "Lookback window in days, 0 means full history")
	cmd.Flags().IntVar(&ac.topN, "top", 10, "Number of categories and vendors to list")
	cmd.Flags().BoolVar(&ac.growth, "growth", false, "Compare against the preceding window")
	cmd.Flags().BoolVar(&ac.forecast, "forecast", false, "Project weekly rates 52 weeks forward")

	return cmd
}

func (ac *AnalyzeCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Minute)
	defer cancel()

	if ac.store == "" {
		reports, err := shop.RunAll(ctx, ac.explorer, ac.days, ac.topN, ac.growth)
		if err != nil {
			return fmt.Errorf("failed to analyze stores: %w", err)
		}
		return ac.reporter.HandleReports(reports)
	}

	store := domain.Store{Name: ac.store}
	analyzer, err := ac.explorer.GetStoreAnalyzer(ctx, store)
	if err != nil {
		return err
	}

	report := shop.StoreReport{Store: store}
	report.Summary, report.Err = analyzer.Summary(ctx, ac.days, ac.topN)
	if report.Err == nil && ac.growth {
		growth, err := analyzer.Growth(ctx, ac.days, ac.topN)
		if err != nil {
			return fmt.Errorf("growth comparison failed: %w", err)
		}
		report.Growth = growth
	}
	if err := ac.reporter.HandleReports([]shop.StoreReport{report}); err != nil {
		return err
	}

	if ac.forecast && report.Err == nil {
		forecast, err := analyzer.Forecast(ctx, ac.days)
		if err != nil {
			return fmt.Errorf("forecast failed: %w", err)
		}
		return ac.reporter.HandleForecast(ac.store, forecast)
	}
	return nil
}
