package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is one upstream order as fetched. Immutable after decoding.
type Order struct {
	ID        int64
	Number    int64
	CreatedAt time.Time
	Currency  string
	Subtotal  decimal.Decimal
	Tax       decimal.Decimal
	Shipping  decimal.Decimal
	Total     decimal.Decimal
	LineItems []LineItem
}

// LineItem is one purchased position within an order. VariantID is 0 when
// the upstream omitted the variant reference (custom or deleted items).
type LineItem struct {
	ID        int64
	VariantID int64
	Title     string
	Quantity  int64
	UnitPrice decimal.Decimal
}

// Total is the line's contribution to revenue. It is always unit price
// times quantity; order-level discounts and shipping are not reflected
// per line.
func (li LineItem) Total() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(li.Quantity))
}
