// Package inventory holds the stock ledger: the per-product
// quantity-on-hand mapping synchronized from the document store.
package inventory

// Ledger maps product id to quantity on hand. An absent entry means
// zero stock. The store is the source of truth; a Ledger held by the
// application is a cache that subscription pushes overwrite wholesale.
type Ledger map[int64]int

// Stock returns the quantity on hand, zero when the product is absent.
func (l Ledger) Stock(id int64) int {
	return l[id]
}

// Clone returns an independent copy of the ledger.
func (l Ledger) Clone() Ledger {
	out := make(Ledger, len(l))
	for id, qty := range l {
		out[id] = qty
	}
	return out
}

// Reconcile computes the post-checkout stock level for every cart line:
// newStock = max(0, stock - qty). Mismatch reports whether any line
// requested more than was on hand; the caller surfaces it as a warning
// and proceeds regardless, stock never goes negative.
func (l Ledger) Reconcile(lines map[int64]int) (updates Ledger, mismatch bool) {
	updates = make(Ledger, len(lines))
	for id, qty := range lines {
		stock := l.Stock(id)
		if stock < qty {
			mismatch = true
		}
		newStock := stock - qty
		if newStock < 0 {
			newStock = 0
		}
		updates[id] = newStock
	}
	return updates, mismatch
}
