package shopify

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/shop-pulse/pkg/models/domain"
)

func testOptions() Options {
	return Options{PageDelay: time.Millisecond}
}

func orderJSON(id int, createdAt time.Time) string {
	return fmt.Sprintf(`{
		"id": %d,
		"order_number": %d,
		"created_at": %q,
		"currency": "USD",
		"total_price": "20.00",
		"subtotal_price": "18.00",
		"total_tax": "2.00",
		"line_items": [
			{"id": %d, "variant_id": 111, "title": "Widget", "quantity": 2, "price": "10.00"}
		]
	}`, id, id, createdAt.Format(time.RFC3339), id*10)
}

func ordersPage(firstID, count int, createdAt time.Time) string {
	orders := make([]string, 0, count)
	for i := 0; i < count; i++ {
		orders = append(orders, orderJSON(firstID+i, createdAt))
	}
	return `{"orders":[` + strings.Join(orders, ",") + `]}`
}

func TestFetchOrders_ThreePageWalk(t *testing.T) {
	createdAt := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	window := domain.Window{
		Start: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}

	var requests []*http.Request
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.Clone(context.Background()))
		switch r.URL.Query().Get("page_info") {
		case "":
			w.Header().Set("Link", fmt.Sprintf(`<%s%s?limit=50&page_info=p2>; rel="next"`, srv.URL, r.URL.Path))
			_, _ = w.Write([]byte(ordersPage(1, 50, createdAt)))
		case "p2":
			w.Header().Set("Link", fmt.Sprintf(
				`<%s%s?limit=50&page_info=p1>; rel="previous", <%s%s?limit=50&page_info=p3>; rel="next"`,
				srv.URL, r.URL.Path, srv.URL, r.URL.Path))
			_, _ = w.Write([]byte(ordersPage(51, 50, createdAt)))
		case "p3":
			_, _ = w.Write([]byte(ordersPage(101, 12, createdAt)))
		default:
			t.Errorf("unexpected cursor %q", r.URL.Query().Get("page_info"))
		}
	}))
	defer srv.Close()

	fetcher := NewFetcher(newTestClient(srv.URL), testOptions())
	result, err := fetcher.FetchOrders(context.Background(), window)
	require.NoError(t, err)

	assert.Len(t, result.Orders, 112)
	assert.Equal(t, 3, result.Pages)
	assert.Equal(t, "2023-10", result.APIVersion)
	require.Len(t, requests, 3)

	first := requests[0].URL.Query()
	assert.Equal(t, "any", first.Get("status"))
	assert.Equal(t, "50", first.Get("limit"))
	assert.Equal(t, "2024-05-01", first.Get("created_at_min"))

	// Cursor pages must carry only the opaque cursor, never the filters.
	second := requests[1].URL.Query()
	assert.Equal(t, "p2", second.Get("page_info"))
	assert.Empty(t, second.Get("status"))
	assert.Empty(t, second.Get("created_at_min"))
	assert.Empty(t, second.Get("order"))
}

func TestFetchOrders_PageDelayPacesSecondPage(t *testing.T) {
	createdAt := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page_info") == "" {
			w.Header().Set("Link", fmt.Sprintf(`<%s%s?limit=50&page_info=p2>; rel="next"`, srv.URL, r.URL.Path))
			_, _ = w.Write([]byte(ordersPage(1, 50, createdAt)))
			return
		}
		_, _ = w.Write([]byte(ordersPage(51, 5, createdAt)))
	}))
	defer srv.Close()

	delay := 100 * time.Millisecond
	fetcher := NewFetcher(newTestClient(srv.URL), Options{PageDelay: delay})

	start := time.Now()
	result, err := fetcher.FetchOrders(context.Background(), domain.Window{})
	require.NoError(t, err)
	require.Equal(t, 2, result.Pages)

	// The delay must apply before the very second page, not only from
	// page 3 onward.
	assert.GreaterOrEqual(t, time.Since(start), delay)
}

func TestFetchOrders_VersionFallback(t *testing.T) {
	createdAt := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "2023-10") {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(ordersPage(1, 3, createdAt)))
	}))
	defer srv.Close()

	fetcher := NewFetcher(newTestClient(srv.URL), testOptions())
	result, err := fetcher.FetchOrders(context.Background(), domain.Window{})
	require.NoError(t, err)

	assert.Equal(t, "2023-07", result.APIVersion)
	assert.Len(t, result.Orders, 3)
}

func TestFetchOrders_AuthFailureSkipsLadder(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	fetcher := NewFetcher(newTestClient(srv.URL), testOptions())
	_, err := fetcher.FetchOrders(context.Background(), domain.Window{})

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, 1, calls, "a rejected credential must not be retried on older versions")
}

func TestFetchOrders_PermissionFailureSkipsLadder(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	fetcher := NewFetcher(newTestClient(srv.URL), testOptions())
	_, err := fetcher.FetchOrders(context.Background(), domain.Window{})

	var permErr *PermissionError
	require.ErrorAs(t, err, &permErr)
	assert.Equal(t, 1, calls)
}

func TestFetchOrders_VersionExhausted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	fetcher := NewFetcher(newTestClient(srv.URL), testOptions())
	_, err := fetcher.FetchOrders(context.Background(), domain.Window{})

	var exhausted *VersionExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Len(t, exhausted.Attempts, len(DefaultAPIVersions))
	for _, attempt := range exhausted.Attempts {
		assert.Equal(t, http.StatusInternalServerError, attempt.Status)
	}
}

func TestFetchOrders_PageCap(t *testing.T) {
	createdAt := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Endless next links; only the cap stops the walk.
		w.Header().Set("Link", fmt.Sprintf(`<%s%s?limit=50&page_info=more>; rel="next"`, srv.URL, r.URL.Path))
		_, _ = w.Write([]byte(ordersPage(1, 50, createdAt)))
	}))
	defer srv.Close()

	opts := testOptions()
	opts.OrdersMaxPages = 2
	fetcher := NewFetcher(newTestClient(srv.URL), opts)
	result, err := fetcher.FetchOrders(context.Background(), domain.Window{})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Pages)
	assert.Len(t, result.Orders, 100)
}

func TestCollectOrders_MidPaginationFailureDiscardsPartial(t *testing.T) {
	createdAt := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page_info") == "" {
			w.Header().Set("Link", fmt.Sprintf(`<%s%s?limit=50&page_info=p2>; rel="next"`, srv.URL, r.URL.Path))
			_, _ = w.Write([]byte(ordersPage(1, 50, createdAt)))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	fetcher := NewFetcher(newTestClient(srv.URL), testOptions())
	orders, _, err := fetcher.collectOrders(context.Background(), fetcher.ordersURL("2023-10", domain.Window{}))

	var partial *PartialPageError
	require.ErrorAs(t, err, &partial)
	assert.Equal(t, 2, partial.Page)
	assert.Nil(t, orders, "partial accumulator must be discarded, not returned as complete")
}

func TestFetchOrders_ClientSideWindowFilter(t *testing.T) {
	window := domain.Window{
		Start: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC),
	}
	page := `{"orders":[` + strings.Join([]string{
		orderJSON(1, window.Start),                    // at start: in
		orderJSON(2, window.Start.Add(-time.Second)),  // before start: out
		orderJSON(3, window.End.Add(-time.Second)),    // just inside end: in
		orderJSON(4, window.End),                      // exactly end: out, half-open
	}, ",") + `]}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	fetcher := NewFetcher(newTestClient(srv.URL), testOptions())
	result, err := fetcher.FetchOrders(context.Background(), window)
	require.NoError(t, err)

	require.Len(t, result.Orders, 2)
	assert.Equal(t, int64(1), result.Orders[0].ID)
	assert.Equal(t, int64(3), result.Orders[1].ID)
}

func TestFetchProducts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/api/2023-10/products.json", r.URL.Path)
		assert.Equal(t, "250", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`{"products":[
			{"id": 7, "title": "Bat", "product_type": "Baseball", "vendor": "BatterBox",
			 "variants": [{"id": 111, "title": "Default", "sku": "BAT-1", "price": "49.99"}]}
		]}`))
	}))
	defer srv.Close()

	fetcher := NewFetcher(newTestClient(srv.URL), testOptions())
	result, err := fetcher.FetchProducts(context.Background())
	require.NoError(t, err)

	require.Len(t, result.Products, 1)
	product := result.Products[0]
	assert.Equal(t, "Baseball", product.Type)
	require.Len(t, product.Variants, 1)
	assert.Equal(t, int64(111), product.Variants[0].ID)
	assert.Equal(t, "49.99", product.Variants[0].Price.StringFixed(2))
}
