package api

type Store struct {
	Name string `json:"name"`
	// Probe fields are set only when the caller asked for connectivity
	// checks.
	Connected bool   `json:"connected,omitempty"`
	ShopName  string `json:"shop_name,omitempty"`
	Error     string `json:"error,omitempty"`
}

type GroupRevenue struct {
	Name    string `json:"name"`
	Revenue string `json:"revenue"`
}

type Summary struct {
	Store         string         `json:"store"`
	NoData        bool           `json:"no_data,omitempty"`
	TotalRevenue  string         `json:"total_revenue"`
	OrderCount    int            `json:"order_count"`
	AvgOrderValue string         `json:"avg_order_value"`
	WeeklyRevenue string         `json:"weekly_revenue"`
	WeeklyOrders  float64        `json:"weekly_orders"`
	TopCategories []GroupRevenue `json:"top_categories"`
	TopVendors    []GroupRevenue `json:"top_vendors"`
}

type Growth struct {
	Store     string  `json:"store"`
	Available bool    `json:"available"`
	Current   Summary `json:"current,omitempty"`
	Previous  Summary `json:"previous,omitempty"`
	// Percentage deltas between the two windows, zero when the previous
	// value was zero.
	RevenueGrowthPct string `json:"revenue_growth_pct,omitempty"`
	OrdersGrowthPct  string `json:"orders_growth_pct,omitempty"`
	AOVGrowthPct     string `json:"aov_growth_pct,omitempty"`
}

type Projection struct {
	Values    []float64 `json:"values"`
	GrowthPct float64   `json:"growth_pct"`
}

type Forecast struct {
	Store   string     `json:"store"`
	Weeks   int        `json:"weeks"`
	Revenue Projection `json:"revenue"`
	Orders  Projection `json:"orders"`
}

type DailyMetric struct {
	Date          string `json:"date"`
	Revenue       string `json:"revenue"`
	Orders        int    `json:"orders"`
	AvgOrderValue string `json:"avg_order_value"`
}
