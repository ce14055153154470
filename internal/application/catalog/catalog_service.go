// Package catalog serves the filterable product view and the admin
// mutation surface over the products collection.
package catalog

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/souvikdhua/cosmeticking/internal/domain/catalog"
	"github.com/souvikdhua/cosmeticking/internal/domain/shared"
	"github.com/souvikdhua/cosmeticking/internal/domain/store"
	"go.uber.org/zap"
)

// StockWriter records initial stock for newly created products.
type StockWriter interface {
	SetStock(ctx context.Context, id int64, qty int) error
}

// Service maintains the catalog cache from the products subscription
// and issues admin mutations. Mutations are written to the store only;
// the cache updates when the resulting snapshot push arrives, so local
// reads always reflect acknowledged store state.
type Service struct {
	store  store.Store
	stocks StockWriter
	logger *zap.Logger
	now    func() time.Time

	mu       sync.RWMutex
	products []catalog.Product // id descending, newest first
	byID     map[int64]catalog.Product
	sub      store.Subscription
}

// NewService creates a catalog service bound to the given store.
func NewService(st store.Store, stocks StockWriter, logger *zap.Logger) *Service {
	return &Service{
		store:  st,
		stocks: stocks,
		logger: logger,
		now:    time.Now,
		byID:   make(map[int64]catalog.Product),
	}
}

// WithClock overrides the clock, for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Start subscribes to the products collection.
func (s *Service) Start(ctx context.Context) error {
	sub, err := s.store.Subscribe(ctx, store.Products, func(snap store.Snapshot) {
		s.load(snap)
	})
	if err != nil {
		return err
	}
	s.sub = sub
	return nil
}

// Stop cancels the store subscription.
func (s *Service) Stop() {
	if s.sub != nil {
		s.sub.Unsubscribe()
	}
}

func (s *Service) load(snap store.Snapshot) {
	products := make([]catalog.Product, 0, len(snap))
	byID := make(map[int64]catalog.Product, len(snap))
	for key, raw := range snap {
		var p catalog.Product
		if err := json.Unmarshal(raw, &p); err != nil {
			s.logger.Warn("skipping malformed product document",
				zap.String("key", key),
				zap.Error(err),
			)
			continue
		}
		products = append(products, p)
		byID[p.ID] = p
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID > products[j].ID })

	s.mu.Lock()
	s.products = products
	s.byID = byID
	s.mu.Unlock()
}

// List returns the catalog filtered by free-text term and category,
// newest first. An empty term matches everything; CategoryAll matches
// every category.
func (s *Service) List(term, category string) []catalog.Product {
	if category == "" {
		category = catalog.CategoryAll
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]catalog.Product, 0, len(s.products))
	for _, p := range s.products {
		if p.Matches(term, category) {
			out = append(out, p)
		}
	}
	return out
}

// Categories returns the distinct categories plus the synthetic "All"
// entry, sorted lexicographically.
func (s *Service) Categories() []string {
	s.mu.RLock()
	seen := map[string]struct{}{catalog.CategoryAll: {}}
	for _, p := range s.products {
		seen[p.Category] = struct{}{}
	}
	s.mu.RUnlock()

	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Get returns the product by id and whether it exists.
func (s *Service) Get(id int64) (catalog.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.byID[id]
	return p, ok
}

// Price resolves a product id to its current sale price. Satisfies
// cart.PriceLookup.
func (s *Service) Price(id int64) (decimal.Decimal, bool) {
	p, ok := s.Get(id)
	if !ok {
		return decimal.Zero, false
	}
	return p.Price, true
}

// Create adds a product with the storefront defaults for omitted
// fields and records its initial stock. The list price is back-computed
// from the sale price; the product id is the creation timestamp.
func (s *Service) Create(ctx context.Context, req CreateProductRequest) (*catalog.Product, error) {
	p, err := catalog.NewProduct(s.now(), req.Name, req.Price, req.Category, req.Brand, req.Size, req.Desc, req.Off)
	if err != nil {
		return nil, err
	}

	if err := s.store.Set(ctx, store.Products, p.Key(), p); err != nil {
		s.logger.Warn("failed to create product", zap.Int64("id", p.ID), zap.Error(err))
		return nil, shared.NewDomainError("PRODUCT_WRITE_FAILED", "Failed to create product")
	}

	stock := catalog.DefaultStock
	if req.Stock != nil {
		stock = *req.Stock
	}
	if stock < 0 {
		stock = 0
	}
	if err := s.stocks.SetStock(ctx, p.ID, stock); err != nil {
		// The product exists either way; the ledger corrects on the
		// next admin stock write or subscription push.
		s.logger.Warn("failed to record initial stock",
			zap.Int64("id", p.ID),
			zap.Error(err),
		)
	}
	return p, nil
}

// Update overwrites the product's editable fields and writes the full
// document back.
func (s *Service) Update(ctx context.Context, id int64, req UpdateProductRequest) (*catalog.Product, error) {
	p, ok := s.Get(id)
	if !ok {
		return nil, shared.ErrNotFound
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Brand != nil {
		p.Brand = *req.Brand
	}
	if req.Size != nil {
		p.Size = *req.Size
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.Desc != nil {
		p.Desc = *req.Desc
	}

	if err := s.store.Set(ctx, store.Products, p.Key(), &p); err != nil {
		return nil, shared.NewDomainError("PRODUCT_WRITE_FAILED", "Failed to update product")
	}
	return &p, nil
}

// SetDiscount sets the discount percentage and recomputes the sale
// price from the stored list price. The percentage is passed through
// unvalidated; out-of-range values produce out-of-range prices.
func (s *Service) SetDiscount(ctx context.Context, id int64, off int) (*catalog.Product, error) {
	p, ok := s.Get(id)
	if !ok {
		return nil, shared.ErrNotFound
	}

	p.ApplyDiscount(off)
	if err := s.store.Set(ctx, store.Products, p.Key(), &p); err != nil {
		return nil, shared.NewDomainError("PRODUCT_WRITE_FAILED", "Failed to update discount")
	}
	return &p, nil
}

// SetImage merges the uploaded image URL onto the product document,
// leaving every other field untouched.
func (s *Service) SetImage(ctx context.Context, id int64, url string) error {
	p, ok := s.Get(id)
	if !ok {
		return shared.ErrNotFound
	}
	if err := s.store.Merge(ctx, store.Products, p.Key(), map[string]any{"image": url}); err != nil {
		return shared.NewDomainError("PRODUCT_WRITE_FAILED", "Failed to update product image")
	}
	return nil
}

// Delete removes the product permanently. The inventory map keeps its
// entry in the store; absent products simply read as zero stock.
func (s *Service) Delete(ctx context.Context, id int64) error {
	p, ok := s.Get(id)
	if !ok {
		return shared.ErrNotFound
	}
	if err := s.store.Delete(ctx, store.Products, p.Key()); err != nil {
		return shared.NewDomainError("PRODUCT_WRITE_FAILED", "Failed to delete product")
	}
	return nil
}
