package cart

import (
	"math"

	"github.com/shopspring/decimal"

	domproduct "example.com/susan-shop/app/internal/domain/product"
)

// DefaultKey is the storage key the cart snapshot is persisted under.
const DefaultKey = "cart"

// AddedMessage is shown to the shopper after a successful add.
const AddedMessage = "Đã thêm vào giỏ hàng"

type Key struct {
	ProductID string
	VariantID string
}

type Line struct {
	Product  domproduct.Product `json:"product"`
	Variant  domproduct.Variant `json:"variant"`
	Quantity int64              `json:"quantity"`
}

func (l Line) Key() Key {
	return Key{ProductID: l.Product.ID, VariantID: l.Variant.ID}
}

func (l Line) Subtotal() decimal.Decimal {
	return l.Variant.Price.Mul(decimal.NewFromInt(l.Quantity))
}

type AddResult struct {
	Success bool
	Message string
}

type EventKind string

const (
	EventAdded   EventKind = "added"
	EventUpdated EventKind = "updated"
	EventRemoved EventKind = "removed"
	EventCleared EventKind = "cleared"
)

// Event describes the cart right after a persisted mutation.
type Event struct {
	Kind  EventKind
	Key   Key
	Lines []Line
	Count int64
	Total decimal.Decimal
}

// Total sums price times quantity over lines.
func Total(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// ItemCount sums the line quantities, saturating at math.MaxInt64.
func ItemCount(lines []Line) int64 {
	var count int64
	for _, l := range lines {
		if l.Quantity > math.MaxInt64-count {
			return math.MaxInt64
		}
		count += l.Quantity
	}
	return count
}
