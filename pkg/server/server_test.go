package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/shop-pulse/pkg/models/api"
	"github.com/de-tools/shop-pulse/pkg/models/domain"
	"github.com/de-tools/shop-pulse/pkg/services/shop"
)

type mockExplorer struct {
	mock.Mock
}

func (m *mockExplorer) ListStores(ctx context.Context) ([]domain.Store, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Store), args.Error(1)
}

func (m *mockExplorer) GetStoreAnalyzer(ctx context.Context, store domain.Store) (shop.Analyzer, error) {
	args := m.Called(ctx, store)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(shop.Analyzer), args.Error(1)
}

type mockAnalyzer struct {
	mock.Mock
}

func (m *mockAnalyzer) Probe(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *mockAnalyzer) Summary(ctx context.Context, days, topN int) (*domain.AggregateMetrics, error) {
	args := m.Called(ctx, days, topN)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AggregateMetrics), args.Error(1)
}

func (m *mockAnalyzer) Growth(ctx context.Context, days, topN int) (*domain.GrowthMetrics, error) {
	args := m.Called(ctx, days, topN)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GrowthMetrics), args.Error(1)
}

func (m *mockAnalyzer) Forecast(ctx context.Context, days int) (*domain.Forecast, error) {
	args := m.Called(ctx, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Forecast), args.Error(1)
}

func (m *mockAnalyzer) Daily(ctx context.Context, days int) ([]domain.DailyMetrics, error) {
	args := m.Called(ctx, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DailyMetrics), args.Error(1)
}

func TestWebAPI_Endpoints(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(nil))

	mockExp := new(mockExplorer)
	mockAn := new(mockAnalyzer)

	config := Config{
		Addr:            ":8080",
		ShutdownTimeout: 10 * time.Second,
		Dependencies: Dependencies{
			Shop: mockExp,
		},
	}
	router := ConfigureRouter(logger, config)
	testServer := httptest.NewServer(router)
	defer testServer.Close()

	tests := []struct {
		name           string
		path           string
		setupMocks     func()
		expectedStatus int
		expected       interface{}
		parseResponse  func([]byte) (interface{}, error)
	}{
		{
			name: "ListStores",
			path: "/api/v1/stores",
			setupMocks: func() {
				mockExp.On("ListStores", mock.Anything).
					Return([]domain.Store{{Name: "batterbox"}}, nil)
			},
			expectedStatus: http.StatusOK,
			expected:       []api.Store{{Name: "batterbox"}},
			parseResponse:  unmarshalResponse[[]api.Store](),
		},
		{
			name: "GetSummary",
			path: "/api/v1/stores/batterbox/summary?days=14&top=3",
			setupMocks: func() {
				mockExp.On("GetStoreAnalyzer", mock.Anything, domain.Store{Name: "batterbox"}).
					Return(mockAn, nil)
				mockAn.On("Summary", mock.Anything, 14, 3).
					Return(&domain.AggregateMetrics{
						TotalRevenue:  decimal.RequireFromString("400"),
						OrderCount:    2,
						AvgOrderValue: decimal.RequireFromString("200"),
						WindowWeeks:   2,
						WeeklyRevenue: decimal.RequireFromString("200"),
						WeeklyOrders:  1,
					}, nil)
			},
			expectedStatus: http.StatusOK,
			expected: api.Summary{
				Store:         "batterbox",
				TotalRevenue:  "400.00",
				OrderCount:    2,
				AvgOrderValue: "200.00",
				WeeklyRevenue: "200.00",
				WeeklyOrders:  1,
				TopCategories: []api.GroupRevenue{},
				TopVendors:    []api.GroupRevenue{},
			},
			parseResponse: unmarshalResponse[api.Summary](),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMocks()
			resp, err := http.Get(testServer.URL + tc.path)
			require.NoError(t, err, "Failed to send request")
			defer resp.Body.Close()

			assert.Equal(t, tc.expectedStatus, resp.StatusCode, "Status code mismatch")

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err, "Failed to read response body")

			actual, err := tc.parseResponse(body)
			require.NoError(t, err, "Failed to parse response")

			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestWebAPI_RequestIDHeader(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(nil))

	mockExp := new(mockExplorer)
	mockExp.On("ListStores", mock.Anything).Return([]domain.Store{}, nil)

	router := ConfigureRouter(logger, Config{Dependencies: Dependencies{Shop: mockExp}})
	testServer := httptest.NewServer(router)
	defer testServer.Close()

	resp, err := http.Get(testServer.URL + "/api/v1/stores")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))
}

func unmarshalResponse[T any]() func([]byte) (interface{}, error) {
	return func(data []byte) (interface{}, error) {
		var response T
		err := json.Unmarshal(data, &response)
		return response, err
	}
}
