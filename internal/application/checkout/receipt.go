package checkout

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/souvikdhua/cosmeticking/internal/domain/cart"
	catalogdomain "github.com/souvikdhua/cosmeticking/internal/domain/catalog"
	"github.com/souvikdhua/cosmeticking/internal/domain/order"
)

const receiptDivider = "------------------------------"

// ProductLookup resolves a product id for receipt rendering.
type ProductLookup func(id int64) (catalogdomain.Product, bool)

// RenderReceipt formats the order as the multi-line text block pasted
// into the messaging channel. Lines for products deleted from the
// catalog are skipped and the line index follows the rendered lines,
// so the listed lines can sum to less than the recorded grand total.
func RenderReceipt(o order.Order, items cart.Cart, lookup ProductLookup) string {
	var b strings.Builder
	b.WriteString("*\U0001F6CD️ COSMETIC KING ORDER* \n")
	fmt.Fprintf(&b, "\U0001F4C5 Date: %s at %s\n%s\n", o.Date, o.Time, receiptDivider)

	idx := 1
	for _, id := range items.ProductIDs() {
		p, ok := lookup(id)
		if !ok {
			continue
		}
		qty := items[id]
		lineTotal := p.Price.Mul(decimal.NewFromInt(int64(qty)))
		fmt.Fprintf(&b, "*%d. %s (%s)*\n   %d x %s = %s\n", idx, p.Name, p.Size, qty, p.Price, lineTotal)
		idx++
	}

	fmt.Fprintf(&b, "%s\n*\U0001F4B0 GRAND TOTAL: %s*\n%s\nCustomer Signature:", receiptDivider, o.Total, receiptDivider)
	return b.String()
}
