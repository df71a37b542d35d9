package catalog

import "github.com/de-tools/shop-pulse/pkg/models/domain"

// Index resolves a variant id to its denormalized catalog metadata.
// Variants deleted from the catalog after an order referenced them are
// simply absent; callers handle the miss, it is never fatal.
type Index map[int64]domain.VariantInfo

// BuildIndex flattens the nested product catalog into a variant lookup.
// O(variants) construction; built once per analysis run and read-only
// afterwards.
func BuildIndex(products []domain.Product) Index {
	idx := make(Index)
	for _, product := range products {
		for _, variant := range product.Variants {
			idx[variant.ID] = domain.VariantInfo{
				VariantID:    variant.ID,
				ProductID:    product.ID,
				ProductTitle: product.Title,
				ProductType:  product.Type,
				Vendor:       product.Vendor,
				VariantTitle: variant.Title,
				SKU:          variant.SKU,
				Price:        variant.Price,
			}
		}
	}
	return idx
}

func (idx Index) Lookup(variantID int64) (domain.VariantInfo, bool) {
	info, ok := idx[variantID]
	return info, ok
}
