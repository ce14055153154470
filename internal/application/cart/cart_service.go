// Package cart keeps one cart per active session. Carts are purely
// in-memory; nothing here touches the document store.
package cart

import (
	"sync"

	"github.com/souvikdhua/cosmeticking/internal/domain/cart"
)

// Service holds the session carts.
type Service struct {
	mu    sync.Mutex
	carts map[string]cart.Cart
}

// NewService creates an empty cart registry.
func NewService() *Service {
	return &Service{carts: make(map[string]cart.Cart)}
}

// Add puts one unit of the product into the session's cart, subject to
// the stock limit. Returns shared.ErrOutOfStock when the cart already
// holds all available stock.
func (s *Service) Add(sessionID string, productID int64, stock int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[sessionID]
	if !ok {
		c = cart.New()
		s.carts[sessionID] = c
	}
	return c.Add(productID, stock)
}

// Remove decrements the product by one in the session's cart.
func (s *Service) Remove(sessionID string, productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.carts[sessionID]; ok {
		c.Remove(productID)
	}
}

// Get returns a copy of the session's cart, empty if none exists.
func (s *Service) Get(sessionID string) cart.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.carts[sessionID]; ok {
		return c.Clone()
	}
	return cart.New()
}

// Clear empties the session's cart.
func (s *Service) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
}

// Evict drops the product from every session's cart. Called when a
// product is deleted from the catalog.
func (s *Service) Evict(productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.carts {
		delete(c, productID)
	}
}
