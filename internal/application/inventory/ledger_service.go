// Package inventory keeps the stock ledger cache in sync with the
// document store and pushes local mutations back out.
package inventory

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"

	"github.com/souvikdhua/cosmeticking/internal/domain/inventory"
	"github.com/souvikdhua/cosmeticking/internal/domain/shared"
	"github.com/souvikdhua/cosmeticking/internal/domain/store"
	"go.uber.org/zap"
)

// Service owns the in-memory stock ledger. Local mutations are
// optimistic: the cache is updated first and the store write follows;
// on write failure the cache is left as-is and the next subscription
// push from the store corrects it.
type Service struct {
	store  store.Store
	logger *zap.Logger

	mu     sync.RWMutex
	ledger inventory.Ledger
	sub    store.Subscription
}

// NewService creates a ledger service bound to the given store.
func NewService(st store.Store, logger *zap.Logger) *Service {
	return &Service{
		store:  st,
		logger: logger,
		ledger: make(inventory.Ledger),
	}
}

// Start subscribes to the inventory collection. Every push replaces the
// whole cache, last write wins.
func (s *Service) Start(ctx context.Context) error {
	sub, err := s.store.Subscribe(ctx, store.Inventory, func(snap store.Snapshot) {
		ledger := parseLedger(snap, s.logger)
		s.mu.Lock()
		s.ledger = ledger
		s.mu.Unlock()
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

// Stock returns the quantity on hand for the product, zero if absent.
func (s *Service) Stock(id int64) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.Stock(id)
}

// Snapshot returns a copy of the current ledger.
func (s *Service) Snapshot() inventory.Ledger {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.Clone()
}

// SetStock writes the quantity for one product, locally first and then
// as a merge into the store's inventory document so other products'
// levels are preserved. Quantity must already be clamped to >= 0 by the
// caller. A failed store write is reported but the optimistic local
// update stays.
func (s *Service) SetStock(ctx context.Context, id int64, qty int) error {
	s.mu.Lock()
	s.ledger[id] = qty
	s.mu.Unlock()

	return s.push(ctx, map[string]any{strconv.FormatInt(id, 10): qty})
}

// Apply merges a batch of stock levels in one store update, applied
// locally first. Used by checkout to commit all decremented lines
// together.
func (s *Service) Apply(ctx context.Context, updates inventory.Ledger) error {
	fields := make(map[string]any, len(updates))
	s.mu.Lock()
	for id, qty := range updates {
		s.ledger[id] = qty
		fields[strconv.FormatInt(id, 10)] = qty
	}
	s.mu.Unlock()

	return s.push(ctx, fields)
}

func (s *Service) push(ctx context.Context, fields map[string]any) error {
	if err := s.store.Merge(ctx, store.Inventory, store.InventoryDoc, fields); err != nil {
		s.logger.Warn("failed to push stock update, local cache may diverge until next sync",
			zap.Error(err),
		)
		return shared.NewDomainError("STOCK_UPDATE_FAILED", "Failed to update stock")
	}
	return nil
}

// parseLedger decodes the single inventory document out of a snapshot.
// A missing or malformed document yields an empty ledger (all zero
// stock) rather than an error.
func parseLedger(snap store.Snapshot, logger *zap.Logger) inventory.Ledger {
	ledger := make(inventory.Ledger)
	raw, ok := snap[store.InventoryDoc]
	if !ok {
		return ledger
	}
	var doc map[string]int
	if err := json.Unmarshal(raw, &doc); err != nil {
		logger.Warn("malformed inventory document, treating as empty", zap.Error(err))
		return ledger
	}
	for key, qty := range doc {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			logger.Warn("skipping inventory entry with non-numeric product id",
				zap.String("key", key),
			)
			continue
		}
		ledger[id] = qty
	}
	return ledger
}
