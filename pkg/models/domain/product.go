package domain

import "github.com/shopspring/decimal"

// Product is one catalog entry with its nested variants, as fetched.
type Product struct {
	ID       int64
	Title    string
	Type     string
	Vendor   string
	Variants []ProductVariant
}

type ProductVariant struct {
	ID    int64
	Title string
	SKU   string
	Price decimal.Decimal
}

// VariantInfo is the denormalized catalog metadata for a single variant,
// the value side of the product index. Many orders reference one variant.
type VariantInfo struct {
	VariantID    int64
	ProductID    int64
	ProductTitle string
	ProductType  string
	Vendor       string
	VariantTitle string
	SKU          string
	Price        decimal.Decimal
}
