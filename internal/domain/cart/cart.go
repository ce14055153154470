// Package cart holds the session-local cart aggregate. Carts are never
// persisted; they live only for the duration of a session and are
// cleared on checkout or an explicit clear action.
package cart

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/souvikdhua/cosmeticking/internal/domain/shared"
)

// Cart maps product id to requested quantity. Quantities stored are
// always >= 1; removal deletes the key, so a zero or negative quantity
// is never observable.
type Cart map[int64]int

// PriceLookup resolves a product id to its current sale price. The
// second return value is false when the product no longer exists in the
// catalog.
type PriceLookup func(id int64) (decimal.Decimal, bool)

// New returns an empty cart.
func New() Cart {
	return make(Cart)
}

// Add increments the requested quantity for the product by one. The
// increment is refused when the cart already holds everything the
// ledger has on hand for that product.
func (c Cart) Add(productID int64, stock int) error {
	if c[productID] >= stock {
		return shared.ErrOutOfStock
	}
	c[productID]++
	return nil
}

// Remove decrements the quantity by one, dropping the line entirely at
// quantity one. Removing an absent product is a no-op.
func (c Cart) Remove(productID int64) {
	qty, ok := c[productID]
	if !ok {
		return
	}
	if qty > 1 {
		c[productID] = qty - 1
		return
	}
	delete(c, productID)
}

// TotalItems returns the sum of all requested quantities.
func (c Cart) TotalItems() int {
	total := 0
	for _, qty := range c {
		total += qty
	}
	return total
}

// TotalPrice sums quantity times current catalog price over every line.
// Lines whose product has since been deleted from the catalog
// contribute zero, silently; the recorded order total can therefore
// differ from a later line-item re-sum.
func (c Cart) TotalPrice(lookup PriceLookup) decimal.Decimal {
	total := decimal.Zero
	for id, qty := range c {
		price, ok := lookup(id)
		if !ok {
			continue
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(qty))))
	}
	return total
}

// Clone returns an independent copy of the cart.
func (c Cart) Clone() Cart {
	out := make(Cart, len(c))
	for id, qty := range c {
		out[id] = qty
	}
	return out
}

// ProductIDs returns the carted product ids in ascending order, the
// order lines appear on the receipt.
func (c Cart) ProductIDs() []int64 {
	ids := make([]int64, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
