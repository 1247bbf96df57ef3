package product

import "github.com/shopspring/decimal"

type Product struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	CategoryID string `json:"cate_id"`
	Detail     string `json:"detail,omitempty"`
	Image      string `json:"image,omitempty"`
}

type Variant struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Name      string          `json:"variant_name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int64           `json:"quantity"`
}

// InStock reports whether the snapshot had any stock when it was fetched.
func (v Variant) InStock() bool {
	return v.Quantity > 0
}

// Listing is a product annotated with its variants.
type Listing struct {
	Product
	Variants []Variant
}

// AttachVariants pairs every product with the variants that reference it.
// Product order and variant order are preserved.
func AttachVariants(products []Product, variants []Variant) []Listing {
	byProduct := make(map[string][]Variant, len(products))
	for _, v := range variants {
		byProduct[v.ProductID] = append(byProduct[v.ProductID], v)
	}

	listings := make([]Listing, 0, len(products))
	for _, p := range products {
		vs := byProduct[p.ID]
		if vs == nil {
			vs = []Variant{}
		}
		listings = append(listings, Listing{Product: p, Variants: vs})
	}
	return listings
}

func VariantsOf(productID string, variants []Variant) []Variant {
	result := make([]Variant, 0)
	for _, v := range variants {
		if v.ProductID == productID {
			result = append(result, v)
		}
	}
	return result
}
