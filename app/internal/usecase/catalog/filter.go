package catalog

import (
	"github.com/shopspring/decimal"

	domproduct "example.com/susan-shop/app/internal/domain/product"
)

// defaultMaxPrice is the upper end of the storefront price slider.
const defaultMaxPrice = 10_000_000

func DefaultMaxPrice() decimal.Decimal {
	return decimal.NewFromInt(defaultMaxPrice)
}

// Criteria narrows a listing. An empty CategoryID matches every category
// and a nil MaxPrice leaves the range open-ended.
type Criteria struct {
	CategoryID string
	MinPrice   decimal.Decimal
	MaxPrice   *decimal.Decimal
}

func DefaultCriteria() Criteria {
	maxPrice := DefaultMaxPrice()
	return Criteria{MinPrice: decimal.Zero, MaxPrice: &maxPrice}
}

// Normalize pulls MinPrice down to MaxPrice when the two cross, the way the
// slider does. ApplyFilter never calls it.
func (c Criteria) Normalize() Criteria {
	if c.MaxPrice != nil && c.MinPrice.GreaterThan(*c.MaxPrice) {
		c.MinPrice = *c.MaxPrice
	}
	return c
}

func (c Criteria) matches(l domproduct.Listing) bool {
	if c.CategoryID != "" && l.CategoryID != c.CategoryID {
		return false
	}
	p := MinPrice(l)
	if p.LessThan(c.MinPrice) {
		return false
	}
	if c.MaxPrice != nil && p.GreaterThan(*c.MaxPrice) {
		return false
	}
	return true
}

// MinPrice is the "from" price of a listing: the cheapest variant, or zero
// when there are no variants.
func MinPrice(l domproduct.Listing) decimal.Decimal {
	if len(l.Variants) == 0 {
		return decimal.Zero
	}
	lowest := l.Variants[0].Price
	for _, v := range l.Variants[1:] {
		if v.Price.LessThan(lowest) {
			lowest = v.Price
		}
	}
	return lowest
}

func HasStock(l domproduct.Listing) bool {
	for _, v := range l.Variants {
		if v.InStock() {
			return true
		}
	}
	return false
}

// DefaultVariant picks the variant used for one-click add to cart: the
// first in-stock variant, falling back to the first variant.
func DefaultVariant(l domproduct.Listing) (domproduct.Variant, bool) {
	for _, v := range l.Variants {
		if v.InStock() {
			return v, true
		}
	}
	if len(l.Variants) > 0 {
		return l.Variants[0], true
	}
	return domproduct.Variant{}, false
}

// ApplyFilter returns the listings matching c in their original order.
func ApplyFilter(listings []domproduct.Listing, c Criteria) []domproduct.Listing {
	result := make([]domproduct.Listing, 0, len(listings))
	for _, l := range listings {
		if c.matches(l) {
			result = append(result, l)
		}
	}
	return result
}

func ResetFilter(listings []domproduct.Listing) []domproduct.Listing {
	result := make([]domproduct.Listing, len(listings))
	copy(result, listings)
	return result
}
