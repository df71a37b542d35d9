package config

import (
	"context"
	"errors"
	"fmt"

	"gopkg.in/ini.v1"

	"github.com/de-tools/shop-pulse/pkg/models/domain"
	"github.com/de-tools/shop-pulse/pkg/store/shopify"
)

// Registry exposes the configured store profiles. The file format mirrors
// cli config conventions: one ini section per store, e.g.
//
//	[batterbox]
//	domain = batterboxsports
//	token  = shpat_...
type Registry interface {
	GetStores(ctx context.Context) ([]domain.Store, error)
	GetClientConfig(ctx context.Context, store string) (shopify.Config, error)
}

// ErrStoreNotFound marks lookups for stores absent from the config file.
var ErrStoreNotFound = errors.New("store not configured")

type storesRegistry struct {
	cfg      *ini.File
	settings Settings
}

func NewRegistry(path string, settings Settings) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load stores config %q: %w", path, err)
	}
	return &storesRegistry{cfg: cfg, settings: settings}, nil
}

func (r *storesRegistry) GetStores(_ context.Context) ([]domain.Store, error) {
	var stores []domain.Store
	for _, section := range r.cfg.Sections() {
		if len(section.Keys()) > 0 {
			stores = append(stores, domain.Store{Name: section.Name()})
		}
	}
	return stores, nil
}

func (r *storesRegistry) GetClientConfig(_ context.Context, store string) (shopify.Config, error) {
	section, err := r.cfg.GetSection(store)
	if err != nil {
		return shopify.Config{}, fmt.Errorf("store %q: %w", store, ErrStoreNotFound)
	}

	cfg := shopify.Config{
		Store:       store,
		Domain:      section.Key("domain").String(),
		Token:       section.Key("token").String(),
		APIVersions: r.settings.APIVersions,
		Timeout:     r.settings.RequestTimeout,
	}
	if err := cfg.Validate(); err != nil {
		return shopify.Config{}, fmt.Errorf("store %q: %w", store, err)
	}
	return cfg, nil
}
