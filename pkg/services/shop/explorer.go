package shop

import (
	"context"
	"fmt"

	"github.com/de-tools/shop-pulse/pkg/models/domain"
	"github.com/de-tools/shop-pulse/pkg/services/config"
	"github.com/de-tools/shop-pulse/pkg/store/shopify"
)

// Explorer resolves configured stores into ready-to-run analyzers.
type Explorer interface {
	ListStores(ctx context.Context) ([]domain.Store, error)
	GetStoreAnalyzer(ctx context.Context, store domain.Store) (Analyzer, error)
}

type explorer struct {
	registry config.Registry
	options  shopify.Options
}

func NewExplorer(registry config.Registry, options shopify.Options) Explorer {
	return &explorer{registry: registry, options: options}
}

func (e *explorer) ListStores(ctx context.Context) ([]domain.Store, error) {
	return e.registry.GetStores(ctx)
}

func (e *explorer) GetStoreAnalyzer(ctx context.Context, store domain.Store) (Analyzer, error) {
	cfg, err := e.registry.GetClientConfig(ctx, store.Name)
	if err != nil {
		return nil, fmt.Errorf("store %s: %w", store.Name, err)
	}
	client, err := shopify.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("store %s: %w", store.Name, err)
	}
	return NewAnalyzer(store, shopify.NewFetcher(client, e.options)), nil
}
