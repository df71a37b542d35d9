package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/de-tools/shop-pulse/pkg/runtime/terminal/export"
	"github.com/de-tools/shop-pulse/pkg/services/shop"
)

type StoresCmd struct {
	explorer shop.Explorer
	reporter *export.Reporter
}

func NewStoresCmd(explorer shop.Explorer, reporter *export.Reporter) *cobra.Command {
	sc := &StoresCmd{explorer: explorer, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "stores",
		Short: "List configured stores and probe connectivity",
		RunE:  sc.run,
	}
	return cmd
}

func (sc *StoresCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
	defer cancel()

	stores, err := sc.explorer.ListStores(ctx)
	if err != nil {
		return fmt.Errorf("failed to list stores: %w", err)
	}

	probes := make([]export.StoreProbe, 0, len(stores))
	for _, store := range stores {
		probe := export.StoreProbe{Store: store}
		analyzer, err := sc.explorer.GetStoreAnalyzer(ctx, store)
		if err != nil {
			probe.Error = err.Error()
			probes = append(probes, probe)
			continue
		}
		name, err := analyzer.Probe(ctx)
		if err != nil {
			probe.Error = err.Error()
		} else {
			probe.Connected = true
			probe.ShopName = name
		}
		probes = append(probes, probe)
	}

	return sc.reporter.HandleStores(probes)
}
