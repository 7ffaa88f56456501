package cart

import (
	"math"

	"github.com/shopspring/decimal"
)

// MaxQuantity is the largest quantity a single entry can hold. It fits the integer
// types of every storage backend.
const MaxQuantity = math.MaxInt32

// Entry is a single line in the cart. Two entries are the same item when both
// Name and Price match; Image and ID never take part in that comparison.
type Entry struct {
	Name     string
	Price    string
	Image    string
	Quantity int
	ID       string
}

func (e Entry) sameItem(name, price string) bool {
	return e.Name == name && e.Price == price
}

func (e Entry) LineTotal() decimal.Decimal {
	return ParsePrice(e.Price).Mul(decimal.NewFromInt(int64(e.Quantity)))
}
