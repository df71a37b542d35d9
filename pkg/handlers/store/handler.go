package store

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/de-tools/shop-pulse/pkg/adapters"
	"github.com/de-tools/shop-pulse/pkg/models/api"
	"github.com/de-tools/shop-pulse/pkg/models/domain"
	"github.com/de-tools/shop-pulse/pkg/services/analysis"
	"github.com/de-tools/shop-pulse/pkg/services/catalog"
	"github.com/de-tools/shop-pulse/pkg/services/config"
	"github.com/de-tools/shop-pulse/pkg/services/shop"
	"github.com/de-tools/shop-pulse/pkg/store/shopify"
)

const (
	defaultDays = 30
	defaultTopN = 10
)

type Handler struct {
	explorer shop.Explorer
	cache    *summaryCache
}

func NewHandler(explorer shop.Explorer, cacheTTL time.Duration) *Handler {
	return &Handler{
		explorer: explorer,
		cache:    newSummaryCache(cacheTTL),
	}
}

func (h *Handler) ListStores(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	stores, err := h.explorer.ListStores(ctx)
	if err != nil {
		http.Error(w, "failed to list stores", http.StatusInternalServerError)
		return
	}

	response := make([]api.Store, len(stores))
	for i, s := range stores {
		response[i] = adapters.MapStoreDomainToApi(s)
	}

	if r.URL.Query().Has("probe") {
		var wg sync.WaitGroup
		for i, s := range stores {
			wg.Add(1)
			go func(i int, s domain.Store) {
				defer wg.Done()
				response[i] = h.probeStore(ctx, s)
			}(i, s)
		}
		wg.Wait()
	}

	writeJSON(w, logger, response)
}

func (h *Handler) probeStore(ctx context.Context, s domain.Store) api.Store {
	probe := api.Store{Name: s.Name}
	analyzer, err := h.explorer.GetStoreAnalyzer(ctx, s)
	if err != nil {
		probe.Error = err.Error()
		return probe
	}
	name, err := analyzer.Probe(ctx)
	if err != nil {
		probe.Error = err.Error()
		return probe
	}
	probe.Connected = true
	probe.ShopName = name
	return probe
}

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	store := chi.URLParam(r, "store")
	days := queryInt(r, "days", defaultDays)
	topN := queryInt(r, "top", defaultTopN)

	if cached, ok := h.cache.get(store, days, topN); ok {
		writeJSON(w, logger, cached)
		return
	}

	analyzer, ok := h.analyzer(w, r, store)
	if !ok {
		return
	}

	metrics, err := analyzer.Summary(ctx, days, topN)
	if err != nil {
		if errors.Is(err, catalog.ErrNoData) {
			writeJSON(w, logger, api.Summary{Store: store, NoData: true})
			return
		}
		h.upstreamError(w, logger, store, err)
		return
	}

	response := adapters.MapSummaryDomainToApi(store, *metrics)
	h.cache.put(store, days, topN, response)
	writeJSON(w, logger, response)
}

func (h *Handler) GetGrowth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	store := chi.URLParam(r, "store")
	days := queryInt(r, "days", defaultDays)
	topN := queryInt(r, "top", defaultTopN)

	analyzer, ok := h.analyzer(w, r, store)
	if !ok {
		return
	}

	growth, err := analyzer.Growth(ctx, days, topN)
	if err != nil {
		if errors.Is(err, analysis.ErrIncomparableWindow) {
			writeJSON(w, logger, api.Growth{Store: store, Available: false})
			return
		}
		h.upstreamError(w, logger, store, err)
		return
	}

	writeJSON(w, logger, adapters.MapGrowthDomainToApi(store, *growth))
}

func (h *Handler) GetForecast(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	store := chi.URLParam(r, "store")
	days := queryInt(r, "days", defaultDays)

	analyzer, ok := h.analyzer(w, r, store)
	if !ok {
		return
	}

	forecast, err := analyzer.Forecast(ctx, days)
	if err != nil {
		h.upstreamError(w, logger, store, err)
		return
	}

	writeJSON(w, logger, adapters.MapForecastDomainToApi(store, *forecast))
}

func (h *Handler) GetDaily(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	store := chi.URLParam(r, "store")
	days := queryInt(r, "days", defaultDays)

	analyzer, ok := h.analyzer(w, r, store)
	if !ok {
		return
	}

	series, err := analyzer.Daily(ctx, days)
	if err != nil {
		if errors.Is(err, catalog.ErrNoData) {
			writeJSON(w, logger, []api.DailyMetric{})
			return
		}
		h.upstreamError(w, logger, store, err)
		return
	}

	writeJSON(w, logger, adapters.MapDailyDomainToApi(series))
}

func (h *Handler) analyzer(w http.ResponseWriter, r *http.Request, store string) (shop.Analyzer, bool) {
	analyzer, err := h.explorer.GetStoreAnalyzer(r.Context(), domain.Store{Name: store})
	if err != nil {
		if errors.Is(err, config.ErrStoreNotFound) {
			http.Error(w, "unknown store: "+store, http.StatusNotFound)
			return nil, false
		}
		http.Error(w, "store is misconfigured: "+store, http.StatusInternalServerError)
		return nil, false
	}
	return analyzer, true
}

// upstreamError maps upstream failures onto response codes. Credential
// problems become 502 so callers can tell a bad token apart from a bug.
func (h *Handler) upstreamError(w http.ResponseWriter, logger *zerolog.Logger, store string, err error) {
	logger.Error().Err(err).Str("store", store).Msg("store analysis failed")

	var authErr *shopify.AuthError
	var permErr *shopify.PermissionError
	switch {
	case errors.As(err, &authErr), errors.As(err, &permErr):
		http.Error(w, "upstream rejected credentials for store "+store, http.StatusBadGateway)
	default:
		http.Error(w, "analysis failed for store "+store, http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, logger *zerolog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error().Err(err).Msg("failed to encode response")
	}
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
