package order

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Date and time layouts used for the human-readable order fields.
const (
	DateLayout = "02/01/2006"
	TimeLayout = "15:04:05"
)

// Order is an immutable record of one checkout. The id is the checkout
// time in Unix milliseconds and doubles as the document key; history is
// append-only and only removable in bulk.
type Order struct {
	ID    int64           `json:"id"`
	Date  string          `json:"date"`
	Time  string          `json:"time"`
	Items map[int64]int   `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// New freezes the given cart lines into an order stamped with now.
// The total is the caller's pre-decrement snapshot total, computed from
// requested quantities even when stock turned out to be short.
func New(now time.Time, items map[int64]int, total decimal.Decimal) Order {
	frozen := make(map[int64]int, len(items))
	for id, qty := range items {
		frozen[id] = qty
	}
	return Order{
		ID:    now.UnixMilli(),
		Date:  now.Format(DateLayout),
		Time:  now.Format(TimeLayout),
		Items: frozen,
		Total: total,
	}
}

// Key returns the document key for this order.
func (o Order) Key() string {
	return strconv.FormatInt(o.ID, 10)
}
