package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/souvikdhua/cosmeticking/internal/domain/cart"
	catalogdomain "github.com/souvikdhua/cosmeticking/internal/domain/catalog"
	"github.com/souvikdhua/cosmeticking/internal/domain/inventory"
	"github.com/souvikdhua/cosmeticking/internal/domain/order"
	"github.com/souvikdhua/cosmeticking/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeCarts struct {
	carts   map[string]cart.Cart
	cleared []string
}

func (f *fakeCarts) Get(sessionID string) cart.Cart { return f.carts[sessionID] }
func (f *fakeCarts) Clear(sessionID string) {
	delete(f.carts, sessionID)
	f.cleared = append(f.cleared, sessionID)
}

type fakeCatalog struct {
	products map[int64]catalogdomain.Product
}

func (f *fakeCatalog) Get(id int64) (catalogdomain.Product, bool) {
	p, ok := f.products[id]
	return p, ok
}

func (f *fakeCatalog) Price(id int64) (decimal.Decimal, bool) {
	p, ok := f.products[id]
	return p.Price, ok
}

type fakeLedger struct {
	stock   inventory.Ledger
	applied []inventory.Ledger
	err     error
}

func (f *fakeLedger) Snapshot() inventory.Ledger { return f.stock.Clone() }
func (f *fakeLedger) Apply(_ context.Context, updates inventory.Ledger) error {
	f.applied = append(f.applied, updates)
	if f.err != nil {
		return f.err
	}
	for id, qty := range updates {
		f.stock[id] = qty
	}
	return nil
}

type fakeHistory struct {
	orders []order.Order
	err    error
}

func (f *fakeHistory) Append(_ context.Context, o order.Order) error {
	if f.err != nil {
		return f.err
	}
	f.orders = append(f.orders, o)
	return nil
}

type fakeClipboard struct {
	texts []string
	err   error
}

func (f *fakeClipboard) Copy(_ context.Context, text string) error {
	if f.err != nil {
		return f.err
	}
	f.texts = append(f.texts, text)
	return nil
}

type fixture struct {
	carts     *fakeCarts
	catalog   *fakeCatalog
	ledger    *fakeLedger
	history   *fakeHistory
	clipboard *fakeClipboard
	svc       *Service
}

func newFixture(stock inventory.Ledger, items cart.Cart) *fixture {
	f := &fixture{
		carts: &fakeCarts{carts: map[string]cart.Cart{"sess": items}},
		catalog: &fakeCatalog{products: map[int64]catalogdomain.Product{
			1: {ID: 1, Name: "Argan Serum", Size: "30ml", Price: decimal.NewFromInt(150)},
			2: {ID: 2, Name: "Rose Mist", Size: "100ml", Price: decimal.NewFromInt(80)},
		}},
		ledger:    &fakeLedger{stock: stock},
		history:   &fakeHistory{},
		clipboard: &fakeClipboard{},
	}
	f.svc = NewService(f.carts, f.catalog, f.ledger, f.history, f.clipboard, zap.NewNop()).
		WithClock(func() time.Time {
			return time.Date(2024, 6, 15, 14, 30, 5, 0, time.UTC)
		})
	return f
}

func TestService_Checkout_SufficientStock(t *testing.T) {
	f := newFixture(inventory.Ledger{1: 5, 2: 1}, cart.Cart{1: 2, 2: 1})

	result, err := f.svc.Checkout(context.Background(), "sess")
	require.NoError(t, err)

	assert.False(t, result.Mismatch)
	assert.True(t, result.Copied)
	assert.Equal(t, 3, f.ledger.stock.Stock(1))
	assert.Equal(t, 0, f.ledger.stock.Stock(2))

	// 2x150 + 1x80
	assert.True(t, result.Order.Total.Equal(decimal.NewFromInt(380)))
	require.Len(t, f.history.orders, 1)
	assert.Equal(t, map[int64]int{1: 2, 2: 1}, f.history.orders[0].Items)
}

func TestService_Checkout_OversoldClampsAndProceeds(t *testing.T) {
	f := newFixture(inventory.Ledger{1: 3}, cart.Cart{1: 10})

	result, err := f.svc.Checkout(context.Background(), "sess")
	require.NoError(t, err)

	assert.True(t, result.Mismatch)
	assert.Equal(t, 0, f.ledger.stock.Stock(1))

	// Total reflects the requested 10 units, not the 3 on hand.
	assert.True(t, result.Order.Total.Equal(decimal.NewFromInt(1500)))
	require.Len(t, f.history.orders, 1)
	assert.Equal(t, 10, f.history.orders[0].Items[1])
}

func TestService_Checkout_EmptyCart(t *testing.T) {
	f := newFixture(inventory.Ledger{1: 5}, cart.Cart{})

	result, err := f.svc.Checkout(context.Background(), "sess")
	assert.Nil(t, result)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "EMPTY_CART", domainErr.Code)
	assert.Empty(t, f.carts.cleared)
}

func TestService_Checkout_ClearsCartUnconditionally(t *testing.T) {
	f := newFixture(inventory.Ledger{1: 5}, cart.Cart{1: 1})
	f.ledger.err = errors.New("store down")
	f.history.err = errors.New("store down")

	result, err := f.svc.Checkout(context.Background(), "sess")
	require.NoError(t, err)
	assert.NotNil(t, result)

	assert.Equal(t, []string{"sess"}, f.carts.cleared)
	assert.Empty(t, f.carts.Get("sess"))
}

func TestService_Checkout_ClipboardFailureDoesNotBlock(t *testing.T) {
	f := newFixture(inventory.Ledger{1: 5}, cart.Cart{1: 1})
	f.clipboard.err = errors.New("unavailable")

	result, err := f.svc.Checkout(context.Background(), "sess")
	require.NoError(t, err)

	assert.False(t, result.Copied)
	require.Len(t, f.history.orders, 1)
	assert.Equal(t, []string{"sess"}, f.carts.cleared)
}

func TestService_Checkout_ReceiptContent(t *testing.T) {
	f := newFixture(inventory.Ledger{1: 5, 2: 5}, cart.Cart{1: 2, 2: 1})

	result, err := f.svc.Checkout(context.Background(), "sess")
	require.NoError(t, err)

	assert.Contains(t, result.Receipt, "COSMETIC KING ORDER")
	assert.Contains(t, result.Receipt, "15/06/2024")
	assert.Contains(t, result.Receipt, "14:30:05")
	assert.Contains(t, result.Receipt, "*1. Argan Serum (30ml)*")
	assert.Contains(t, result.Receipt, "2 x 150 = 300")
	assert.Contains(t, result.Receipt, "*2. Rose Mist (100ml)*")
	assert.Contains(t, result.Receipt, "GRAND TOTAL: 380")
	assert.Contains(t, result.Receipt, "Customer Signature:")
	assert.Equal(t, []string{result.Receipt}, f.clipboard.texts)
}

func TestService_Checkout_DeletedProductSkippedInReceipt(t *testing.T) {
	f := newFixture(inventory.Ledger{1: 5, 2: 5}, cart.Cart{1: 1, 2: 1})
	delete(f.catalog.products, 1)

	result, err := f.svc.Checkout(context.Background(), "sess")
	require.NoError(t, err)

	assert.NotContains(t, result.Receipt, "Argan Serum")
	// Numbering follows rendered lines, so the surviving product is 1.
	assert.Contains(t, result.Receipt, "*1. Rose Mist (100ml)*")
	// The deleted line contributes nothing to the total.
	assert.True(t, result.Order.Total.Equal(decimal.NewFromInt(80)))
}
