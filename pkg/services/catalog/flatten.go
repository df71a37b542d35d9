package catalog

import (
	"errors"

	"github.com/de-tools/shop-pulse/pkg/models/domain"
)

// ErrNoData reports a window that produced no orders at all. Distinct from
// a zero-revenue result, which still carries records.
var ErrNoData = errors.New("catalog: no orders to flatten")

// UnknownPlaceholder marks catalog fields that could not be resolved.
const UnknownPlaceholder = "Unknown"

// Flatten joins orders with the product index into one record per
// (order, line item) pair, order-major then line-item-minor. On an index
// miss the record keeps the title the order captured at purchase time and
// carries "Unknown" placeholders for type and vendor.
func Flatten(orders []domain.Order, idx Index) ([]domain.LineItemRecord, error) {
	if len(orders) == 0 {
		return nil, ErrNoData
	}

	var records []domain.LineItemRecord
	for _, order := range orders {
		for _, item := range order.LineItems {
			record := domain.LineItemRecord{
				OrderID:       order.ID,
				OrderDate:     order.CreatedAt,
				OrderTotal:    order.Total,
				OrderSubtotal: order.Subtotal,
				OrderTax:      order.Tax,
				OrderShipping: order.Shipping,
				LineItemID:    item.ID,
				Quantity:      item.Quantity,
				UnitPrice:     item.UnitPrice,
				LineTotal:     item.Total(),
				Currency:      order.Currency,
			}
			if info, ok := idx.Lookup(item.VariantID); ok {
				record.ProductID = info.ProductID
				record.ProductTitle = info.ProductTitle
				record.ProductType = info.ProductType
				record.Vendor = info.Vendor
				record.VariantTitle = info.VariantTitle
				record.SKU = info.SKU
			} else {
				record.ProductTitle = item.Title
				record.ProductType = UnknownPlaceholder
				record.Vendor = UnknownPlaceholder
			}
			records = append(records, record)
		}
	}
	return records, nil
}
