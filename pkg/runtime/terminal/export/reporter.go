package export

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/shopspring/decimal"

	"github.com/de-tools/shop-pulse/pkg/models/domain"
	"github.com/de-tools/shop-pulse/pkg/services/shop"
)

type Reporter struct {
	writer io.Writer
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

var funcMap = template.FuncMap{
	"money": func(d decimal.Decimal) string {
		return d.StringFixed(2)
	},
	"pct": func(v float64) string {
		return fmt.Sprintf("%+.1f%%", v)
	},
	"rate": func(v float64) string {
		return fmt.Sprintf("%.1f", v)
	},
}

// StoreProbe is one row of the stores listing.
type StoreProbe struct {
	Store     domain.Store
	Connected bool
	ShopName  string
	Error     string
}

const storesTmpl = `Configured stores:
{{range .}}  {{.Store.Name}}{{if .Connected}}  (connected: {{.ShopName}}){{else}}  (unreachable: {{.Error}}){{end}}
{{end}}`

func (r *Reporter) HandleStores(probes []StoreProbe) error {
	t, err := template.New("stores").Parse(storesTmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	return t.Execute(r.writer, probes)
}

const summaryTmpl = `
=== {{.Store.Name}} ===
{{if .Err}}analysis failed: {{.Err}}
{{else}}{{with .Summary}}Total revenue:    {{money .TotalRevenue}}
Orders:           {{.OrderCount}}
Avg order value:  {{money .AvgOrderValue}}
Weekly revenue:   {{money .WeeklyRevenue}} ({{rate .WeeklyOrders}} orders/week)
{{if .TopCategories}}
Top categories:
{{range .TopCategories}}  {{printf "%-30s" .Name}} {{money .Revenue}}
{{end}}{{end}}{{if .TopVendors}}
Top vendors:
{{range .TopVendors}}  {{printf "%-30s" .Name}} {{money .Revenue}}
{{end}}{{end}}{{end}}{{with .Growth}}
Growth vs previous window:
  Revenue:          {{pct .RevenueGrowthPct}}
  Orders:           {{pct .OrdersGrowthPct}}
  Avg order value:  {{pct .AOVGrowthPct}}
{{end}}{{end}}`

func (r *Reporter) HandleReports(reports []shop.StoreReport) error {
	t, err := template.New("summary").Funcs(funcMap).Parse(summaryTmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	for _, report := range reports {
		if err := t.Execute(r.writer, report); err != nil {
			return err
		}
	}
	return nil
}

const forecastTmpl = `
Projection for {{.Store}} (52 weeks out):
  Weekly revenue by week 52:  {{printf "%.2f" (last .Forecast.Revenue.Values)}} ({{pct .Forecast.Revenue.GrowthPct}})
  Weekly orders by week 52:   {{printf "%.1f" (last .Forecast.Orders.Values)}} ({{pct .Forecast.Orders.GrowthPct}})
`

func (r *Reporter) HandleForecast(store string, forecast *domain.Forecast) error {
	t, err := template.New("forecast").Funcs(funcMap).Funcs(template.FuncMap{
		"last": func(values []float64) float64 {
			if len(values) == 0 {
				return 0
			}
			return values[len(values)-1]
		},
	}).Parse(forecastTmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	return t.Execute(r.writer, struct {
		Store    string
		Forecast *domain.Forecast
	}{Store: store, Forecast: forecast})
}
