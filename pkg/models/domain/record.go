package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItemRecord is the flattened join of one line item with its order
// context and, when the variant is still in the catalog, its product
// metadata. ProductType and Vendor carry "Unknown" placeholders on an
// index miss; ProductTitle then falls back to the title the order itself
// captured at purchase time.
type LineItemRecord struct {
	OrderID       int64
	OrderDate     time.Time
	OrderTotal    decimal.Decimal
	OrderSubtotal decimal.Decimal
	OrderTax      decimal.Decimal
	OrderShipping decimal.Decimal
	LineItemID    int64
	ProductID     int64
	ProductTitle  string
	ProductType   string
	Vendor        string
	VariantTitle  string
	SKU           string
	Quantity      int64
	UnitPrice     decimal.Decimal
	LineTotal     decimal.Decimal
	Currency      string
}
