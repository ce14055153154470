// Package order maintains the order history projection and its
// append/bulk-clear operations.
package order

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/souvikdhua/cosmeticking/internal/domain/order"
	"github.com/souvikdhua/cosmeticking/internal/domain/shared"
	"github.com/souvikdhua/cosmeticking/internal/domain/store"
	"go.uber.org/zap"
)

// Service mirrors the orders collection. Orders are immutable: the
// only writes are appends at checkout and the unconditional bulk clear.
type Service struct {
	store  store.Store
	logger *zap.Logger

	mu     sync.RWMutex
	orders []order.Order // id descending, newest first
	sub    store.Subscription
}

// NewService creates a history service bound to the given store.
func NewService(st store.Store, logger *zap.Logger) *Service {
	return &Service{store: st, logger: logger}
}

// Start subscribes to the orders collection.
func (s *Service) Start(ctx context.Context) error {
	sub, err := s.store.Subscribe(ctx, store.Orders, func(snap store.Snapshot) {
		orders := make([]order.Order, 0, len(snap))
		for key, raw := range snap {
			var o order.Order
			if err := json.Unmarshal(raw, &o); err != nil {
				s.logger.Warn("skipping malformed order document",
					zap.String("key", key),
					zap.Error(err),
				)
				continue
			}
			orders = append(orders, o)
		}
		sort.Slice(orders, func(i, j int) bool { return orders[i].ID > orders[j].ID })

		s.mu.Lock()
		s.orders = orders
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

// List returns the order history, newest first.
func (s *Service) List() []order.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]order.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

// Append persists a new order.
func (s *Service) Append(ctx context.Context, o order.Order) error {
	if err := s.store.Set(ctx, store.Orders, o.Key(), o); err != nil {
		s.logger.Warn("failed to persist order", zap.Int64("id", o.ID), zap.Error(err))
		return shared.NewDomainError("ORDER_WRITE_FAILED", "Failed to save order")
	}
	return nil
}

// Clear deletes every order unconditionally. Irreversible.
func (s *Service) Clear(ctx context.Context) error {
	if err := s.store.Clear(ctx, store.Orders); err != nil {
		return shared.NewDomainError("ORDER_WRITE_FAILED", "Failed to clear order history")
	}
	return nil
}
