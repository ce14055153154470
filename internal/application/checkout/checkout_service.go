// Package checkout implements the cart/inventory reconciliation that
// turns a session cart into an order record, an inventory decrement,
// and a receipt handed off for external paste.
package checkout

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/souvikdhua/cosmeticking/internal/domain/cart"
	catalogdomain "github.com/souvikdhua/cosmeticking/internal/domain/catalog"
	"github.com/souvikdhua/cosmeticking/internal/domain/inventory"
	"github.com/souvikdhua/cosmeticking/internal/domain/order"
	"github.com/souvikdhua/cosmeticking/internal/domain/shared"
	"go.uber.org/zap"
)

// Carts supplies and clears session carts.
type Carts interface {
	Get(sessionID string) cart.Cart
	Clear(sessionID string)
}

// Catalog resolves products for pricing and receipt lines.
type Catalog interface {
	Get(id int64) (catalogdomain.Product, bool)
	Price(id int64) (decimal.Decimal, bool)
}

// Ledger supplies the stock snapshot and commits the batched decrement.
type Ledger interface {
	Snapshot() inventory.Ledger
	Apply(ctx context.Context, updates inventory.Ledger) error
}

// History appends completed orders.
type History interface {
	Append(ctx context.Context, o order.Order) error
}

// Copier makes the receipt text available for external paste.
type Copier interface {
	Copy(ctx context.Context, text string) error
}

// Result reports one completed checkout. Mismatch flags lines that
// requested more than was on hand; it is a warning, never a block.
// Copied reports the clipboard handoff separately from the order.
type Result struct {
	Order    order.Order `json:"order"`
	Receipt  string      `json:"receipt"`
	Mismatch bool        `json:"mismatch"`
	Copied   bool        `json:"copied"`
}

// Service executes the checkout reconciliation.
type Service struct {
	carts     Carts
	catalog   Catalog
	ledger    Ledger
	history   History
	clipboard Copier
	logger    *zap.Logger
	now       func() time.Time
}

// NewService wires the reconciler.
func NewService(carts Carts, catalog Catalog, ledger Ledger, history History, clipboard Copier, logger *zap.Logger) *Service {
	return &Service{
		carts:     carts,
		catalog:   catalog,
		ledger:    ledger,
		history:   history,
		clipboard: clipboard,
		logger:    logger,
		now:       time.Now,
	}
}

// WithClock overrides the clock, for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Checkout runs the reconciliation as one synchronous step:
// compute the pre-decrement total from requested quantities, clamp each
// ledger line to max(0, stock-qty) and commit the batch, freeze the
// cart into an order, persist it, hand the receipt to the clipboard,
// and clear the cart. Oversold lines flag Mismatch but never block;
// the inventory decrement and the order append are two independent
// writes with no transaction across them. The cart is cleared no
// matter what happened before.
func (s *Service) Checkout(ctx context.Context, sessionID string) (*Result, error) {
	items := s.carts.Get(sessionID)
	if len(items) == 0 {
		return nil, shared.NewDomainError("EMPTY_CART", "Cart is empty")
	}

	// Total from the pre-decrement snapshot, requested quantities even
	// when stock turns out short.
	total := items.TotalPrice(s.catalog.Price)

	updates, mismatch := s.ledger.Snapshot().Reconcile(items)
	if mismatch {
		s.logger.Warn("stock mismatch at checkout, clamping to zero",
			zap.String("session_id", sessionID),
		)
	}
	if err := s.ledger.Apply(ctx, updates); err != nil {
		// Optimistic local ledger already holds the decrement; the
		// store corrects it on the next push. Checkout proceeds.
		s.logger.Warn("inventory push failed during checkout", zap.Error(err))
	}

	o := order.New(s.now(), items, total)
	if err := s.history.Append(ctx, o); err != nil {
		s.logger.Warn("order append failed", zap.Int64("order_id", o.ID), zap.Error(err))
	}

	receipt := RenderReceipt(o, items, s.catalog.Get)

	copied := true
	if err := s.clipboard.Copy(ctx, receipt); err != nil {
		copied = false
		s.logger.Warn("receipt copy failed", zap.Int64("order_id", o.ID), zap.Error(err))
	}

	s.carts.Clear(sessionID)

	return &Result{
		Order:    o,
		Receipt:  receipt,
		Mismatch: mismatch,
		Copied:   copied,
	}, nil
}
