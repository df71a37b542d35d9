package shopify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/de-tools/shop-pulse/pkg/models/domain"
)

const (
	// Orders use a smaller page than products to keep per-call latency down.
	ordersPageSize   = 50
	productsPageSize = 250

	DefaultOrdersMaxPages   = 50
	DefaultProductsMaxPages = 20

	defaultPageDelay = 500 * time.Millisecond

	dateFormat = "2006-01-02"
)

// Options bound a fetch walk.
type Options struct {
	OrdersMaxPages   int
	ProductsMaxPages int
	// PageDelay is the fixed delay between page requests. Pagination is
	// strictly sequential, so this is the whole rate-limit strategy.
	PageDelay time.Duration
}

// Fetcher walks the paginated orders and products collections of one
// store. Each fetch tries the configured API versions newest-first;
// credential failures abort the ladder immediately.
type Fetcher struct {
	client           *Client
	limiter          *rate.Limiter
	ordersMaxPages   int
	productsMaxPages int
}

func NewFetcher(client *Client, opts Options) *Fetcher {
	delay := opts.PageDelay
	if delay <= 0 {
		delay = defaultPageDelay
	}
	ordersMax := opts.OrdersMaxPages
	if ordersMax <= 0 {
		ordersMax = DefaultOrdersMaxPages
	}
	productsMax := opts.ProductsMaxPages
	if productsMax <= 0 {
		productsMax = DefaultProductsMaxPages
	}
	// The bucket starts full; drain it so the wait before page 2 paces
	// instead of passing through.
	limiter := rate.NewLimiter(rate.Every(delay), 1)
	limiter.Allow()
	return &Fetcher{
		client:           client,
		limiter:          limiter,
		ordersMaxPages:   ordersMax,
		productsMaxPages: productsMax,
	}
}

// Ping delegates the connectivity probe to the underlying client.
func (f *Fetcher) Ping(ctx context.Context) (string, error) {
	return f.client.Ping(ctx)
}

// OrdersResult is one complete orders fetch.
type OrdersResult struct {
	Orders []domain.Order
	// APIVersion is the ladder rung that succeeded.
	APIVersion string
	Pages      int
}

// ProductsResult is one complete products fetch.
type ProductsResult struct {
	Products   []domain.Product
	APIVersion string
	Pages      int
}

// FetchOrders returns every order in the half-open window, oldest first.
// A zero window fetches the full history unfiltered. The window is sent
// as a server-side filter and re-applied client-side, since upstream
// date filters are closed on both ends.
func (f *Fetcher) FetchOrders(ctx context.Context, window domain.Window) (*OrdersResult, error) {
	logger := zerolog.Ctx(ctx)

	var attempts []VersionAttempt
	for _, version := range f.client.versions {
		orders, pages, err := f.collectOrders(ctx, f.ordersURL(version, window))
		if err == nil {
			if !window.IsZero() {
				orders = filterWindow(orders, window)
			}
			logger.Info().
				Str("api_version", version).
				Int("orders", len(orders)).
				Int("pages", pages).
				Msg("orders fetch complete")
			return &OrdersResult{Orders: orders, APIVersion: version, Pages: pages}, nil
		}
		if fatalFetchErr(err) {
			return nil, err
		}
		attempts = append(attempts, VersionAttempt{Version: version, Status: statusOf(err), Err: err})
		logger.Warn().
			Str("api_version", version).
			Err(err).
			Msg("api version failed, falling back to older version")
	}
	return nil, &VersionExhaustedError{Store: f.client.store, Resource: "orders", Attempts: attempts}
}

// FetchProducts returns the current catalog. Products are not windowed:
// the catalog is current state, not history.
func (f *Fetcher) FetchProducts(ctx context.Context) (*ProductsResult, error) {
	logger := zerolog.Ctx(ctx)

	var attempts []VersionAttempt
	for _, version := range f.client.versions {
		products, pages, err := f.collectProducts(ctx, f.productsURL(version))
		if err == nil {
			logger.Info().
				Str("api_version", version).
				Int("products", len(products)).
				Int("pages", pages).
				Msg("products fetch complete")
			return &ProductsResult{Products: products, APIVersion: version, Pages: pages}, nil
		}
		if fatalFetchErr(err) {
			return nil, err
		}
		attempts = append(attempts, VersionAttempt{Version: version, Status: statusOf(err), Err: err})
		logger.Warn().
			Str("api_version", version).
			Err(err).
			Msg("api version failed, falling back to older version")
	}
	return nil, &VersionExhaustedError{Store: f.client.store, Resource: "products", Attempts: attempts}
}

func (f *Fetcher) ordersURL(version string, window domain.Window) string {
	q := url.Values{}
	q.Set("status", "any")
	q.Set("limit", strconv.Itoa(ordersPageSize))
	q.Set("order", "created_at asc")
	if !window.IsZero() {
		q.Set("created_at_min", window.Start.UTC().Format(dateFormat))
		q.Set("created_at_max", window.End.UTC().Format(dateFormat))
	}
	return f.client.endpoint(version, "orders") + "?" + q.Encode()
}

func (f *Fetcher) productsURL(version string) string {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(productsPageSize))
	return f.client.endpoint(version, "products") + "?" + q.Encode()
}

func (f *Fetcher) collectOrders(ctx context.Context, firstURL string) ([]domain.Order, int, error) {
	logger := zerolog.Ctx(ctx)

	var orders []domain.Order
	walk := newPageWalk(f, firstURL, f.ordersMaxPages)
	pages, err := walk.run(ctx, func(body io.Reader) error {
		var page ordersEnvelope
		if err := json.NewDecoder(body).Decode(&page); err != nil {
			return err
		}
		for _, o := range page.Orders {
			orders = append(orders, o.toDomain())
		}
		logger.Debug().
			Int("page_orders", len(page.Orders)).
			Int("total", len(orders)).
			Msg("orders page fetched")
		return nil
	})
	if err != nil {
		return nil, pages, err
	}
	return orders, pages, nil
}

func (f *Fetcher) collectProducts(ctx context.Context, firstURL string) ([]domain.Product, int, error) {
	logger := zerolog.Ctx(ctx)

	var products []domain.Product
	walk := newPageWalk(f, firstURL, f.productsMaxPages)
	pages, err := walk.run(ctx, func(body io.Reader) error {
		var page productsEnvelope
		if err := json.NewDecoder(body).Decode(&page); err != nil {
			return err
		}
		for _, p := range page.Products {
			products = append(products, p.toDomain())
		}
		logger.Debug().
			Int("page_products", len(page.Products)).
			Int("total", len(products)).
			Msg("products page fetched")
		return nil
	})
	if err != nil {
		return nil, pages, err
	}
	return products, pages, nil
}

type walkState int

const (
	walkFetching walkState = iota
	walkDone
	walkFailed
)

// pageWalk drives one cursor walk across a collection endpoint. Subsequent
// requests use only the opaque cursor URL from the Link header; the page
// cap bounds worst-case latency against unbounded upstream history.
type pageWalk struct {
	fetcher  *Fetcher
	state    walkState
	url      string
	maxPages int
	pages    int
	err      error
}

func newPageWalk(f *Fetcher, firstURL string, maxPages int) *pageWalk {
	return &pageWalk{fetcher: f, state: walkFetching, url: firstURL, maxPages: maxPages}
}

func (w *pageWalk) run(ctx context.Context, decode func(io.Reader) error) (int, error) {
	for w.state == walkFetching {
		w.step(ctx, decode)
	}
	if w.state == walkFailed {
		return w.pages, w.err
	}
	return w.pages, nil
}

func (w *pageWalk) step(ctx context.Context, decode func(io.Reader) error) {
	if w.pages >= w.maxPages {
		w.state = walkDone
		return
	}
	if w.pages > 0 {
		if err := w.fetcher.limiter.Wait(ctx); err != nil {
			w.fail(err)
			return
		}
	}

	resp, err := w.fetcher.client.get(ctx, w.url)
	if err != nil {
		w.fail(err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		w.fail(w.fetcher.client.statusErr(resp.StatusCode))
		return
	}
	if err := decode(io.LimitReader(resp.Body, maxResponseSize)); err != nil {
		w.fail(fmt.Errorf("decode page %d: %w", w.pages+1, err))
		return
	}
	w.pages++

	next := nextPageURL(resp.Header.Get("Link"))
	if next == "" {
		w.state = walkDone
		return
	}
	w.url = next
}

func (w *pageWalk) fail(err error) {
	if w.pages > 0 {
		err = &PartialPageError{Page: w.pages + 1, Err: err}
	}
	w.state = walkFailed
	w.err = err
}

func filterWindow(orders []domain.Order, window domain.Window) []domain.Order {
	filtered := orders[:0]
	for _, o := range orders {
		if window.Contains(o.CreatedAt) {
			filtered = append(filtered, o)
		}
	}
	return filtered
}

// fatalFetchErr reports errors the version ladder cannot help with:
// rejected credentials, missing scopes, and network failures.
func fatalFetchErr(err error) bool {
	var authErr *AuthError
	var permErr *PermissionError
	var netErr *NetworkError
	return errors.As(err, &authErr) || errors.As(err, &permErr) || errors.As(err, &netErr)
}

func statusOf(err error) int {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Status
	}
	return 0
}
