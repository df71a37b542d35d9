package shopify

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/de-tools/shop-pulse/pkg/models/domain"
)

// Wire types for the Admin API payloads. Prices arrive as quoted decimal
// strings, which shopspring/decimal unmarshals directly.

type ordersEnvelope struct {
	Orders []wireOrder `json:"orders"`
}

type wireOrder struct {
	ID                    int64           `json:"id"`
	OrderNumber           int64           `json:"order_number"`
	CreatedAt             time.Time       `json:"created_at"`
	Currency              string          `json:"currency"`
	TotalPrice            decimal.Decimal `json:"total_price"`
	SubtotalPrice         decimal.Decimal `json:"subtotal_price"`
	TotalTax              decimal.Decimal `json:"total_tax"`
	TotalShippingPriceSet struct {
		ShopMoney struct {
			Amount decimal.Decimal `json:"amount"`
		} `json:"shop_money"`
	} `json:"total_shipping_price_set"`
	LineItems []wireLineItem `json:"line_items"`
}

type wireLineItem struct {
	ID        int64           `json:"id"`
	VariantID *int64          `json:"variant_id"`
	Title     string          `json:"title"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

func (w wireOrder) toDomain() domain.Order {
	order := domain.Order{
		ID:        w.ID,
		Number:    w.OrderNumber,
		CreatedAt: w.CreatedAt,
		Currency:  w.Currency,
		Subtotal:  w.SubtotalPrice,
		Tax:       w.TotalTax,
		Shipping:  w.TotalShippingPriceSet.ShopMoney.Amount,
		Total:     w.TotalPrice,
		LineItems: make([]domain.LineItem, 0, len(w.LineItems)),
	}
	for _, item := range w.LineItems {
		li := domain.LineItem{
			ID:        item.ID,
			Title:     item.Title,
			Quantity:  item.Quantity,
			UnitPrice: item.Price,
		}
		if item.VariantID != nil {
			li.VariantID = *item.VariantID
		}
		order.LineItems = append(order.LineItems, li)
	}
	return order
}

type productsEnvelope struct {
	Products []wireProduct `json:"products"`
}

type wireProduct struct {
	ID          int64         `json:"id"`
	Title       string        `json:"title"`
	ProductType string        `json:"product_type"`
	Vendor      string        `json:"vendor"`
	Variants    []wireVariant `json:"variants"`
}

type wireVariant struct {
	ID    int64           `json:"id"`
	Title string          `json:"title"`
	SKU   string          `json:"sku"`
	Price decimal.Decimal `json:"price"`
}

func (w wireProduct) toDomain() domain.Product {
	product := domain.Product{
		ID:       w.ID,
		Title:    w.Title,
		Type:     w.ProductType,
		Vendor:   w.Vendor,
		Variants: make([]domain.ProductVariant, 0, len(w.Variants)),
	}
	for _, v := range w.Variants {
		product.Variants = append(product.Variants, domain.ProductVariant{
			ID:    v.ID,
			Title: v.Title,
			SKU:   v.SKU,
			Price: v.Price,
		})
	}
	return product
}
